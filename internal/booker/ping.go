package booker

import (
	"context"
	"net/http"
)

// HealthCheck probes the liveness endpoint. The remote answers 201 with a
// plain-text body; any other code is a failure.
func (c *Client) HealthCheck(ctx context.Context) (string, error) {
	responseBytes, err := c.roundTrip(ctx, "ping", http.MethodGet, c.baseURL+"/ping", nil, "", http.StatusCreated)
	if err != nil {
		return "", err
	}

	c.logger.Info().Str("response", string(responseBytes)).Msg("health check successful")

	return string(responseBytes), nil
}
