package booker

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/almoelda/restful-booker-automation/internal/schema"
)

// Authenticate exchanges credentials for a bearer token and caches it for
// subsequent mutating calls. The remote reports bad credentials with HTTP 200
// and a reason field, never a 4xx, so a populated Reason is a normal result
// here rather than an error.
func (c *Client) Authenticate(ctx context.Context, credentials schema.AuthCredentials) (schema.AuthResult, error) {
	c.logger.Info().
		Str("username", credentials.Username).
		Msg("authenticating")

	responseBytes, err := c.roundTrip(ctx, "auth", http.MethodPost, c.baseURL+"/auth", credentials, "", http.StatusOK)
	if err != nil {
		return schema.AuthResult{}, err
	}

	var result schema.AuthResult
	if err := json.Unmarshal(responseBytes, &result); err != nil {
		return schema.AuthResult{}, fmt.Errorf("auth: decode response: %w", err)
	}

	if result.Token == "" && result.Reason == "" {
		return result, fmt.Errorf("auth: %w", schema.NewStatusError("response carries neither token nor reason"))
	}

	if result.Authenticated() {
		c.setToken(result.Token)
		c.logger.Info().Msg("authentication successful")
	} else {
		c.logger.Warn().Str("reason", result.Reason).Msg("authentication rejected")
	}

	return result, nil
}
