package requesting

import (
	"fmt"
	"net/http"
	"os"

	"github.com/almoelda/restful-booker-automation/internal/schema"
)

// RequestErrors classifies the outcome of an HTTP call. The booking service
// uses non-conventional success codes (201 for delete and ping), so the exact
// expected status is checked rather than any 2xx.
func RequestErrors(response *http.Response, err error, wantStatus int) (*http.Response, *schema.CallError) {
	if err != nil {
		if os.IsTimeout(err) {
			e := schema.NewTimeoutError(err.Error())
			return nil, &e
		}

		e := schema.NewConnectionError(err.Error())
		return nil, &e
	}

	if response.StatusCode != wantStatus {
		e := schema.NewStatusError(fmt.Sprintf("service returned status code %d, want %d", response.StatusCode, wantStatus))
		return nil, &e
	}

	return response, nil
}

// StatusOneOf reports whether code is in the accepted set. Specs probing the
// remote with adversarial input accept a set of tolerable codes instead of
// asserting a single one.
func StatusOneOf(code int, accepted ...int) bool {
	for _, a := range accepted {
		if a == code {
			return true
		}
	}

	return false
}
