package schema_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/almoelda/restful-booker-automation/internal/schema"
	"github.com/stretchr/testify/assert"
)

func TestBookingDatesWireFormat(t *testing.T) {
	t.Run("should serialize dates as plain YYYY-MM-DD", func(t *testing.T) {
		checkin := time.Date(2026, time.September, 10, 0, 0, 0, 0, time.UTC)
		dates := schema.NewBookingDates(checkin, checkin.AddDate(0, 0, 2))

		encoded, err := json.Marshal(dates)

		assert.Nil(t, err)
		assert.JSONEq(t, `{"checkin":"2026-09-10","checkout":"2026-09-12"}`, string(encoded))
	})

	t.Run("should expose the same layout through the string accessors", func(t *testing.T) {
		checkin := time.Date(2026, time.January, 2, 0, 0, 0, 0, time.UTC)
		dates := schema.NewBookingDates(checkin, checkin.AddDate(0, 0, 1))

		assert.Equal(t, "2026-01-02", dates.CheckinString())
		assert.Equal(t, "2026-01-03", dates.CheckoutString())
	})
}

func TestBookingPatchOmitsUnsetFields(t *testing.T) {
	price := 200

	encoded, err := json.Marshal(schema.BookingPatch{TotalPrice: &price})

	assert.Nil(t, err)
	assert.JSONEq(t, `{"totalprice":200}`, string(encoded))
}

func TestAuthResult(t *testing.T) {
	assert.True(t, schema.AuthResult{Token: "abc"}.Authenticated())
	assert.False(t, schema.AuthResult{Reason: "Bad credentials"}.Authenticated())
	assert.False(t, schema.AuthResult{}.Authenticated())
}

func TestCallError(t *testing.T) {
	err := schema.NewStatusError("expected status code 200, got 418")

	assert.Equal(t, schema.StatusError, err.Code)
	assert.Equal(t, "unexpected-status: expected status code 200, got 418", err.Error())
}

func TestRecording(t *testing.T) {
	t.Run("should keep records in arrival order", func(t *testing.T) {
		recording := schema.NewRecording()
		recording.FinishedCall(schema.CallRecord{Name: "auth"})
		recording.FinishedCall(schema.CallRecord{Name: "create-booking"})

		calls := recording.Calls()
		assert.Len(t, calls, 2)
		assert.Equal(t, "auth", calls[0].Name)

		last, ok := recording.Last()
		assert.True(t, ok)
		assert.Equal(t, "create-booking", last.Name)
	})

	t.Run("should report no last record when empty", func(t *testing.T) {
		_, ok := schema.NewRecording().Last()
		assert.False(t, ok)
	})
}
