package contract_test

import (
	"encoding/json"
	"testing"

	"github.com/almoelda/restful-booker-automation/internal/contract"
	"github.com/almoelda/restful-booker-automation/internal/schema"
	"github.com/stretchr/testify/assert"
)

func TestValidateBooking(t *testing.T) {
	t.Run("should accept a complete booking payload", func(t *testing.T) {
		payload := []byte(`{
			"firstname": "Jim",
			"lastname": "Brown",
			"totalprice": 111,
			"depositpaid": true,
			"bookingdates": {"checkin": "2026-09-10", "checkout": "2026-09-12"},
			"additionalneeds": "Breakfast"
		}`)

		assert.Nil(t, contract.ValidateBooking(payload))
	})

	t.Run("should accept what the domain type serializes to", func(t *testing.T) {
		booking := schema.Booking{
			Firstname:    "Jim",
			Lastname:     "Brown",
			TotalPrice:   111,
			DepositPaid:  true,
			BookingDates: schema.BookingDates{},
		}

		encoded, err := json.Marshal(booking)
		assert.Nil(t, err)

		assert.Nil(t, contract.ValidateBooking(encoded))
	})

	t.Run("should reject a booking missing required fields", func(t *testing.T) {
		payload := []byte(`{"firstname": "Jim"}`)

		err := contract.ValidateBooking(payload)

		assert.NotNil(t, err)
		assert.Contains(t, err.Error(), "Booking")
	})

	t.Run("should reject a booking with a mistyped price", func(t *testing.T) {
		payload := []byte(`{
			"firstname": "Jim",
			"lastname": "Brown",
			"totalprice": "not-a-number",
			"depositpaid": true,
			"bookingdates": {"checkin": "2026-09-10", "checkout": "2026-09-12"}
		}`)

		assert.NotNil(t, contract.ValidateBooking(payload))
	})

	t.Run("should reject a payload that is not JSON", func(t *testing.T) {
		assert.NotNil(t, contract.ValidateBooking([]byte("not json at all")))
	})
}

func TestValidateMessage(t *testing.T) {
	t.Run("should accept a complete message payload", func(t *testing.T) {
		payload := []byte(`{
			"name": "Mark",
			"email": "mark@example.com",
			"phone": "01234567890",
			"subject": "Room enquiry",
			"description": "Is the double room available next weekend?"
		}`)

		assert.Nil(t, contract.ValidateMessage(payload))
	})

	t.Run("should reject a message missing its subject", func(t *testing.T) {
		payload := []byte(`{
			"name": "Mark",
			"email": "mark@example.com",
			"phone": "01234567890",
			"description": "Hello"
		}`)

		assert.NotNil(t, contract.ValidateMessage(payload))
	})
}
