package schema

import (
	"time"

	openapitypes "github.com/oapi-codegen/runtime/types"
)

// Booking is the remote system's booking record. The id lives outside the
// record itself, see BookingResult.
type Booking struct {
	Firstname       string       `json:"firstname"`
	Lastname        string       `json:"lastname"`
	TotalPrice      int          `json:"totalprice"`
	DepositPaid     bool         `json:"depositpaid"`
	BookingDates    BookingDates `json:"bookingdates"`
	AdditionalNeeds string       `json:"additionalneeds,omitempty"`
}

// BookingDates carries check-in/check-out as YYYY-MM-DD on the wire.
// The remote assumes checkin <= checkout; this code does not enforce it.
type BookingDates struct {
	Checkin  openapitypes.Date `json:"checkin"`
	Checkout openapitypes.Date `json:"checkout"`
}

// DateLayout is the remote API's wire format for dates.
const DateLayout = "2006-01-02"

func (d BookingDates) CheckinString() string {
	return d.Checkin.Format(DateLayout)
}

func (d BookingDates) CheckoutString() string {
	return d.Checkout.Format(DateLayout)
}

func NewBookingDates(checkin, checkout time.Time) BookingDates {
	return BookingDates{
		Checkin:  openapitypes.Date{Time: checkin},
		Checkout: openapitypes.Date{Time: checkout},
	}
}

// BookingResult is the create-booking response: the assigned id plus an echo
// of the submitted booking.
type BookingResult struct {
	BookingID int     `json:"bookingid"`
	Booking   Booking `json:"booking"`
}

// BookingRef identifies one booking in a listing response.
type BookingRef struct {
	BookingID int `json:"bookingid"`
}

// BookingPatch is a partial update; nil fields are omitted from the PATCH body.
type BookingPatch struct {
	Firstname       *string       `json:"firstname,omitempty"`
	Lastname        *string       `json:"lastname,omitempty"`
	TotalPrice      *int          `json:"totalprice,omitempty"`
	DepositPaid     *bool         `json:"depositpaid,omitempty"`
	BookingDates    *BookingDates `json:"bookingdates,omitempty"`
	AdditionalNeeds *string       `json:"additionalneeds,omitempty"`
}

// BookingFilters serializes to /booking query parameters. Empty fields are
// omitted from the query string.
type BookingFilters struct {
	Firstname string `url:"firstname,omitempty"`
	Lastname  string `url:"lastname,omitempty"`
	Checkin   string `url:"checkin,omitempty"`
	Checkout  string `url:"checkout,omitempty"`
}

type AuthCredentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// AuthResult is the /auth response. The remote signals bad credentials with
// HTTP 200 and a populated Reason, so callers must inspect Token vs Reason,
// never the status code alone.
type AuthResult struct {
	Token  string `json:"token,omitempty"`
	Reason string `json:"reason,omitempty"`
}

func (a AuthResult) Authenticated() bool {
	return a.Token != ""
}

// ContactMessage is a contact-form submission. ID and Read are populated only
// on read-back through the authenticated listing endpoint.
type ContactMessage struct {
	ID          int    `json:"id,omitempty"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	Subject     string `json:"subject"`
	Description string `json:"description"`
	Read        bool   `json:"read,omitempty"`
}
