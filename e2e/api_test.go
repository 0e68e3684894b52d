//go:build e2e

package e2e

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/almoelda/restful-booker-automation/internal/booker"
	"github.com/almoelda/restful-booker-automation/internal/contract"
	"github.com/almoelda/restful-booker-automation/internal/schema"
	"github.com/almoelda/restful-booker-automation/internal/testdata"
	"github.com/almoelda/restful-booker-automation/internal/tools/converting"
	"github.com/almoelda/restful-booker-automation/internal/tools/requesting"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHealthEndpoint(t *testing.T) {
	client := newAPIClient()
	dumpCallsOnFailure(t, client)

	_, err := client.HealthCheck(context.Background())
	require.Nil(t, err, "platform is not reachable, check BASE_URL")
}

func TestAuthentication(t *testing.T) {
	t.Run("should issue a token for valid credentials", func(t *testing.T) {
		client := newAPIClient()
		dumpCallsOnFailure(t, client)

		result, err := client.Authenticate(context.Background(), adminCredentials())

		require.Nil(t, err)
		assert.True(t, result.Authenticated())
		assert.NotEmpty(t, client.CachedToken())
	})

	t.Run("should report bad credentials inside a 200 response", func(t *testing.T) {
		client := newAPIClient()
		dumpCallsOnFailure(t, client)

		result, err := client.Authenticate(context.Background(), schema.AuthCredentials{
			Username: "admin",
			Password: "definitely-wrong",
		})

		require.Nil(t, err)
		assert.False(t, result.Authenticated())
		assert.Equal(t, "Bad credentials", result.Reason)
	})
}

func TestBookingRoundTrip(t *testing.T) {
	client := newAPIClient()
	dumpCallsOnFailure(t, client)

	generator := testdata.New()
	booking := generator.Booking()

	created, err := client.CreateBooking(context.Background(), booking)
	require.Nil(t, err)
	require.NotZero(t, created.BookingID)

	fetched, err := client.BookingByID(context.Background(), created.BookingID)
	require.Nil(t, err)

	assert.Equal(t, booking.Firstname, fetched.Firstname)
	assert.Equal(t, booking.Lastname, fetched.Lastname)
	assert.Equal(t, booking.TotalPrice, fetched.TotalPrice)
	assert.Equal(t, booking.BookingDates.CheckinString(), fetched.BookingDates.CheckinString())
	assert.Equal(t, booking.BookingDates.CheckoutString(), fetched.BookingDates.CheckoutString())

	encoded, err := json.Marshal(fetched)
	require.Nil(t, err)
	assert.Nil(t, contract.ValidateBooking(encoded))

	_, err = client.Authenticate(context.Background(), adminCredentials())
	require.Nil(t, err)

	err = client.DeleteBooking(context.Background(), created.BookingID, "")
	assert.Nil(t, err)
}

func TestBookingMutations(t *testing.T) {
	client := newAPIClient()
	dumpCallsOnFailure(t, client)

	_, err := client.Authenticate(context.Background(), adminCredentials())
	require.Nil(t, err)

	generator := testdata.New()

	created, err := client.CreateBooking(context.Background(), generator.Booking())
	require.Nil(t, err)

	t.Cleanup(func() {
		client.DeleteBooking(context.Background(), created.BookingID, "")
	})

	t.Run("should replace the whole booking with PUT", func(t *testing.T) {
		replacement := generator.Booking()
		replacement.Firstname = "Replaced"

		updated, err := client.UpdateBooking(context.Background(), created.BookingID, replacement, "")

		require.Nil(t, err)
		assert.Equal(t, "Replaced", updated.Firstname)
	})

	t.Run("should change only the patched fields", func(t *testing.T) {
		patched, err := client.PartialUpdateBooking(context.Background(), created.BookingID, schema.BookingPatch{
			TotalPrice: converting.PointerToValue(555),
		}, "")

		require.Nil(t, err)
		assert.Equal(t, 555, patched.TotalPrice)
		assert.Equal(t, "Replaced", patched.Firstname)
	})

	t.Run("should refuse mutations without a token", func(t *testing.T) {
		fresh := newAPIClient()

		err := fresh.DeleteBooking(context.Background(), created.BookingID, "bogus")

		var callErr schema.CallError
		require.ErrorAs(t, err, &callErr)
		assert.Equal(t, schema.StatusError, callErr.Code)
	})
}

func TestContactMessage(t *testing.T) {
	client := newAPIClient()
	dumpCallsOnFailure(t, client)

	message := testdata.New().ContactMessage()

	created, err := client.CreateMessage(context.Background(), message)
	require.Nil(t, err)

	assert.Equal(t, message.Name, created.Name)
	assert.Equal(t, message.Subject, created.Subject)

	encoded, err := json.Marshal(created)
	require.Nil(t, err)
	assert.Nil(t, contract.ValidateMessage(encoded))
}

func TestBookingFilterQueries(t *testing.T) {
	client := newAPIClient()
	dumpCallsOnFailure(t, client)

	generator := testdata.New()

	booking := generator.Booking()
	booking.Firstname = "Filtertest"
	booking.Lastname = generator.Booking().Lastname

	created, err := client.CreateBooking(context.Background(), booking)
	require.Nil(t, err)

	t.Cleanup(func() {
		if _, err := client.Authenticate(context.Background(), adminCredentials()); err == nil {
			client.DeleteBooking(context.Background(), created.BookingID, "")
		}
	})

	refs, err := client.BookingsWithFilters(context.Background(), schema.BookingFilters{
		Firstname: booking.Firstname,
		Lastname:  booking.Lastname,
	})
	require.Nil(t, err)

	found := false
	for _, ref := range refs {
		if ref.BookingID == created.BookingID {
			found = true
		}
	}
	assert.True(t, found, "filtered listing does not contain the created booking")

	all, err := client.AllBookings(context.Background())
	require.Nil(t, err)
	assert.True(t, len(all) >= len(refs))
}

// TestAdversarialAuthInput probes /auth with hostile payloads over raw HTTP.
// Injection strings must come back as an ordinary rejection, never a token and
// never a 5xx.
func TestAdversarialAuthInput(t *testing.T) {
	t.Run("should survive malformed JSON", func(t *testing.T) {
		response := postRaw(t, "/auth", `{"username": "admin", `)
		defer response.Body.Close()

		assert.True(t, requesting.StatusOneOf(response.StatusCode,
			http.StatusBadRequest, http.StatusInternalServerError),
			"service answered %d", response.StatusCode)
	})

	t.Run("should survive an oversized credential", func(t *testing.T) {
		huge := make([]byte, 64*1024)
		for i := range huge {
			huge[i] = 'a'
		}

		response := postRaw(t, "/auth", `{"username":"`+string(huge)+`","password":"x"}`)
		defer response.Body.Close()

		assert.True(t, requesting.StatusOneOf(response.StatusCode,
			http.StatusOK, http.StatusBadRequest, http.StatusRequestEntityTooLarge),
			"service answered %d", response.StatusCode)
	})

	t.Run("should treat injection strings as plain bad credentials", func(t *testing.T) {
		client := newAPIClient()
		dumpCallsOnFailure(t, client)

		payloads := []string{
			`' OR '1'='1`,
			`admin"; DROP TABLE users; --`,
			`<script>alert(1)</script>`,
		}

		for _, payload := range payloads {
			result, err := client.Authenticate(context.Background(), schema.AuthCredentials{
				Username: payload,
				Password: payload,
			})

			require.Nil(t, err)
			assert.False(t, result.Authenticated())
			assert.Equal(t, "Bad credentials", result.Reason)
		}
	})
}

func postRaw(t *testing.T, path, payload string) *http.Response {
	t.Helper()

	request, err := http.NewRequestWithContext(context.Background(),
		http.MethodPost, cfg.APIBaseURL+path, bytes.NewBufferString(payload))
	require.Nil(t, err)
	request.Header.Set("Content-Type", "application/json")

	response, err := http.DefaultClient.Do(request)
	require.Nil(t, err)

	return response
}

// TestAdversarialBookingInput sends malformed payloads straight over HTTP.
// The platform's behavior here is not pinned down, so each probe accepts a
// set of tolerable codes; the spec fails only on codes that indicate the
// service fell over.
func TestAdversarialBookingInput(t *testing.T) {
	tests := []struct {
		name     string
		payload  string
		accepted []int
	}{
		{
			"rejects or tolerates a negative price",
			`{"firstname":"A","lastname":"B","totalprice":-50,"depositpaid":true,"bookingdates":{"checkin":"2026-09-10","checkout":"2026-09-12"}}`,
			[]int{http.StatusOK, http.StatusBadRequest},
		},
		{
			"rejects or tolerates checkout before checkin",
			`{"firstname":"A","lastname":"B","totalprice":100,"depositpaid":true,"bookingdates":{"checkin":"2026-09-12","checkout":"2026-09-10"}}`,
			[]int{http.StatusOK, http.StatusBadRequest},
		},
		{
			"survives a malformed date",
			`{"firstname":"A","lastname":"B","totalprice":100,"depositpaid":true,"bookingdates":{"checkin":"not-a-date","checkout":"2026-09-12"}}`,
			[]int{http.StatusOK, http.StatusBadRequest, http.StatusInternalServerError},
		},
		{
			"survives a truncated body",
			`{"firstname":"A"`,
			[]int{http.StatusBadRequest, http.StatusInternalServerError},
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			request, err := http.NewRequestWithContext(context.Background(),
				http.MethodPost, cfg.APIBaseURL+"/booking", bytes.NewBufferString(test.payload))
			require.Nil(t, err)
			request.Header.Set("Content-Type", "application/json")

			response, err := http.DefaultClient.Do(request)
			require.Nil(t, err)
			defer response.Body.Close()

			assert.True(t, requesting.StatusOneOf(response.StatusCode, test.accepted...),
				"service answered %d, accepted set %v", response.StatusCode, test.accepted)
		})
	}
}

func TestGeneratedDatesAreUsableRemotely(t *testing.T) {
	client := newAPIClient()
	dumpCallsOnFailure(t, client)

	booking := testdata.New().Booking()
	booking.BookingDates = booker.GenerateBookingDates(7, 3)

	created, err := client.CreateBooking(context.Background(), booking)
	require.Nil(t, err)

	fetched, err := client.BookingByID(context.Background(), created.BookingID)
	require.Nil(t, err)
	assert.Equal(t, booking.BookingDates.CheckinString(), fetched.BookingDates.CheckinString())

	if _, err := client.Authenticate(context.Background(), adminCredentials()); err == nil {
		client.DeleteBooking(context.Background(), created.BookingID, "")
	}
}
