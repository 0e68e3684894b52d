package booker

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/almoelda/restful-booker-automation/internal/schema"
	"github.com/google/go-querystring/query"
)

// CreateBooking submits a new booking. No token required; the remote assigns
// the id and echoes the record back.
func (c *Client) CreateBooking(ctx context.Context, booking schema.Booking) (schema.BookingResult, error) {
	c.logger.Info().
		Str("firstname", booking.Firstname).
		Msg("creating booking")

	responseBytes, err := c.roundTrip(ctx, "create-booking", http.MethodPost, c.baseURL+"/booking", booking, "", http.StatusOK)
	if err != nil {
		return schema.BookingResult{}, err
	}

	var result schema.BookingResult
	if err := json.Unmarshal(responseBytes, &result); err != nil {
		return schema.BookingResult{}, fmt.Errorf("create-booking: decode response: %w", err)
	}

	c.logger.Info().Int("bookingid", result.BookingID).Msg("booking created")

	return result, nil
}

// BookingByID fetches one booking record.
func (c *Client) BookingByID(ctx context.Context, bookingID int) (schema.Booking, error) {
	url := fmt.Sprintf("%s/booking/%d", c.baseURL, bookingID)

	responseBytes, err := c.roundTrip(ctx, "get-booking", http.MethodGet, url, nil, "", http.StatusOK)
	if err != nil {
		return schema.Booking{}, err
	}

	var booking schema.Booking
	if err := json.Unmarshal(responseBytes, &booking); err != nil {
		return schema.Booking{}, fmt.Errorf("get-booking: decode response: %w", err)
	}

	return booking, nil
}

// AllBookings lists every booking id known to the remote.
func (c *Client) AllBookings(ctx context.Context) ([]schema.BookingRef, error) {
	return c.bookings(ctx, "list-bookings", c.baseURL+"/booking")
}

// BookingsWithFilters lists bookings matching the query filters. Empty filter
// fields are left out of the query string.
func (c *Client) BookingsWithFilters(ctx context.Context, filters schema.BookingFilters) ([]schema.BookingRef, error) {
	values, err := query.Values(filters)
	if err != nil {
		return nil, fmt.Errorf("filter-bookings: encode filters: %w", err)
	}

	url := c.baseURL + "/booking"
	if encoded := values.Encode(); encoded != "" {
		url += "?" + encoded
	}

	return c.bookings(ctx, "filter-bookings", url)
}

func (c *Client) bookings(ctx context.Context, name, url string) ([]schema.BookingRef, error) {
	responseBytes, err := c.roundTrip(ctx, name, http.MethodGet, url, nil, "", http.StatusOK)
	if err != nil {
		return nil, err
	}

	var refs []schema.BookingRef
	if err := json.Unmarshal(responseBytes, &refs); err != nil {
		return nil, fmt.Errorf("%s: decode response: %w", name, err)
	}

	c.logger.Info().Int("count", len(refs)).Msg("bookings retrieved")

	return refs, nil
}

// UpdateBooking replaces a booking record. A token is mandatory: the explicit
// argument wins, otherwise the cached one; with neither the call fails before
// touching the network.
func (c *Client) UpdateBooking(ctx context.Context, bookingID int, booking schema.Booking, token string) (schema.Booking, error) {
	authToken, err := c.tokenOr(token)
	if err != nil {
		return schema.Booking{}, fmt.Errorf("update-booking: %w", err)
	}

	c.logger.Info().Int("bookingid", bookingID).Msg("updating booking")

	url := fmt.Sprintf("%s/booking/%d", c.baseURL, bookingID)

	responseBytes, err := c.roundTrip(ctx, "update-booking", http.MethodPut, url, booking, authToken, http.StatusOK)
	if err != nil {
		return schema.Booking{}, err
	}

	var updated schema.Booking
	if err := json.Unmarshal(responseBytes, &updated); err != nil {
		return schema.Booking{}, fmt.Errorf("update-booking: decode response: %w", err)
	}

	return updated, nil
}

// PartialUpdateBooking patches only the fields set on the patch.
func (c *Client) PartialUpdateBooking(ctx context.Context, bookingID int, patch schema.BookingPatch, token string) (schema.Booking, error) {
	authToken, err := c.tokenOr(token)
	if err != nil {
		return schema.Booking{}, fmt.Errorf("patch-booking: %w", err)
	}

	c.logger.Info().Int("bookingid", bookingID).Msg("partially updating booking")

	url := fmt.Sprintf("%s/booking/%d", c.baseURL, bookingID)

	responseBytes, err := c.roundTrip(ctx, "patch-booking", http.MethodPatch, url, patch, authToken, http.StatusOK)
	if err != nil {
		return schema.Booking{}, err
	}

	var updated schema.Booking
	if err := json.Unmarshal(responseBytes, &updated); err != nil {
		return schema.Booking{}, fmt.Errorf("patch-booking: decode response: %w", err)
	}

	return updated, nil
}

// DeleteBooking removes a booking. The remote signals deletion success with
// 201, not 204.
func (c *Client) DeleteBooking(ctx context.Context, bookingID int, token string) error {
	authToken, err := c.tokenOr(token)
	if err != nil {
		return fmt.Errorf("delete-booking: %w", err)
	}

	c.logger.Info().Int("bookingid", bookingID).Msg("deleting booking")

	url := fmt.Sprintf("%s/booking/%d", c.baseURL, bookingID)

	_, err = c.roundTrip(ctx, "delete-booking", http.MethodDelete, url, nil, authToken, http.StatusCreated)

	return err
}
