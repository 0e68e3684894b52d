package booker_test

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/almoelda/restful-booker-automation/internal/booker"
	"github.com/almoelda/restful-booker-automation/internal/bookermock"
	"github.com/almoelda/restful-booker-automation/internal/schema"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestAuthenticate(t *testing.T) {
	out := &bytes.Buffer{}
	log := zerolog.New(out)

	t.Run("should return and cache a token for valid credentials", func(t *testing.T) {
		testServer := httptest.NewServer(bookermock.New().Handler())
		defer testServer.Close()

		client := booker.New(&log, booker.WithBaseURL(testServer.URL))

		result, err := client.Authenticate(context.Background(), schema.AuthCredentials{
			Username: bookermock.DefaultUsername,
			Password: bookermock.DefaultPassword,
		})

		assert.Nil(t, err)
		assert.True(t, result.Authenticated())
		assert.NotEmpty(t, result.Token)
		assert.Empty(t, result.Reason)
		assert.Equal(t, result.Token, client.CachedToken())
	})

	t.Run("should surface bad credentials as a reason, not an error", func(t *testing.T) {
		testServer := httptest.NewServer(bookermock.New().Handler())
		defer testServer.Close()

		client := booker.New(&log, booker.WithBaseURL(testServer.URL))

		result, err := client.Authenticate(context.Background(), schema.AuthCredentials{
			Username: "admin",
			Password: "wrong",
		})

		assert.Nil(t, err)
		assert.False(t, result.Authenticated())
		assert.Equal(t, "Bad credentials", result.Reason)
		assert.Empty(t, client.CachedToken())
	})

	t.Run("should reject a response with neither token nor reason", func(t *testing.T) {
		testServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
			w.Write([]byte(`{}`))
		}))
		defer testServer.Close()

		client := booker.New(&log, booker.WithBaseURL(testServer.URL))

		_, err := client.Authenticate(context.Background(), schema.AuthCredentials{
			Username: "admin",
			Password: "password",
		})

		assert.NotNil(t, err)
	})

	t.Run("should classify a non-200 auth response as a status error", func(t *testing.T) {
		testServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer testServer.Close()

		client := booker.New(&log, booker.WithBaseURL(testServer.URL))

		_, err := client.Authenticate(context.Background(), schema.AuthCredentials{
			Username: "admin",
			Password: "password",
		})

		var callErr schema.CallError
		assert.True(t, errors.As(err, &callErr))
		assert.Equal(t, schema.StatusError, callErr.Code)
	})

	t.Run("should classify a slow auth endpoint as a timeout", func(t *testing.T) {
		testServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			time.Sleep(50 * time.Millisecond)
			w.WriteHeader(http.StatusOK)
		}))
		defer testServer.Close()

		client := booker.New(&log,
			booker.WithBaseURL(testServer.URL),
			booker.WithTimeout(5*time.Millisecond),
		)

		_, err := client.Authenticate(context.Background(), schema.AuthCredentials{
			Username: "admin",
			Password: "password",
		})

		var callErr schema.CallError
		assert.True(t, errors.As(err, &callErr))
		assert.Equal(t, schema.TimeoutError, callErr.Code)
	})

	t.Run("should classify an unreachable host as a connection error", func(t *testing.T) {
		testServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		testServer.Close() // nothing listens there anymore

		client := booker.New(&log, booker.WithBaseURL(testServer.URL))

		_, err := client.Authenticate(context.Background(), schema.AuthCredentials{
			Username: "admin",
			Password: "password",
		})

		var callErr schema.CallError
		assert.True(t, errors.As(err, &callErr))
		assert.Equal(t, schema.ConnectionError, callErr.Code)
	})
}
