package booker

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/almoelda/restful-booker-automation/internal/schema"
)

// CreateMessage submits a contact-form message. No token required; the
// remote answers 201 and echoes the message.
func (c *Client) CreateMessage(ctx context.Context, message schema.ContactMessage) (schema.ContactMessage, error) {
	c.logger.Info().
		Str("name", message.Name).
		Str("subject", message.Subject).
		Msg("submitting contact message")

	responseBytes, err := c.roundTrip(ctx, "create-message", http.MethodPost, c.baseURL+"/message", message, "", http.StatusCreated)
	if err != nil {
		return schema.ContactMessage{}, err
	}

	var created schema.ContactMessage
	if err := json.Unmarshal(responseBytes, &created); err != nil {
		return schema.ContactMessage{}, fmt.Errorf("create-message: decode response: %w", err)
	}

	return created, nil
}

// Messages lists submitted contact messages; the listing endpoint is
// admin-only and needs a token.
func (c *Client) Messages(ctx context.Context, token string) ([]schema.ContactMessage, error) {
	authToken, err := c.tokenOr(token)
	if err != nil {
		return nil, fmt.Errorf("list-messages: %w", err)
	}

	responseBytes, err := c.roundTrip(ctx, "list-messages", http.MethodGet, c.baseURL+"/message", nil, authToken, http.StatusOK)
	if err != nil {
		return nil, err
	}

	var messages []schema.ContactMessage
	if err := json.Unmarshal(responseBytes, &messages); err != nil {
		return nil, fmt.Errorf("list-messages: decode response: %w", err)
	}

	c.logger.Info().Int("count", len(messages)).Msg("messages retrieved")

	return messages, nil
}
