// Package pages holds the page objects for the booking platform UI. Each
// page object owns an immutable selector map and translates domain actions
// into ordered driver calls; selectors never leak past their owning object.
package pages

import (
	"fmt"
	"strings"
	"time"

	"github.com/almoelda/restful-booker-automation/internal/browser"
	"github.com/almoelda/restful-booker-automation/internal/logging"
	"github.com/almoelda/restful-booker-automation/internal/schema"
	"github.com/rs/zerolog"
)

// Outcome signals of a submitted form.
const (
	SignalSuccess   browser.Signal = "success"
	SignalError     browser.Signal = "error"
	SignalModal     browser.Signal = "modal"
	SignalDashboard browser.Signal = "dashboard"
)

const submitSignalTimeout = 5 * time.Second

type bookingSelectors struct {
	bookingSection  string
	roomListing     string
	roomTitle       string
	roomDescription string
	roomPrice       string
	roomImage       string

	bookNowButton           string
	checkAvailabilityButton string
	roomsNav                string
	bookingNav              string
	amenitiesNav            string
	locationNav             string
	contactNav              string

	firstNameInput string
	lastNameInput  string
	emailInput     string
	phoneInput     string

	checkinPicker      string
	checkoutPicker     string
	datePickerCalendar string
	calendarNext       string

	reserveButton    string
	doReservation    string
	bookButton       string
	successMessage   string
	errorMessage     string
	validationError  string
	confirmationCard string

	contactSection     string
	contactName        string
	contactEmail       string
	contactPhone       string
	contactSubject     string
	contactDescription string
	contactSubmit      string
}

func newBookingSelectors() bookingSelectors {
	return bookingSelectors{
		bookingSection:  `.row.room-header`,
		roomListing:     `[data-testid="roomlisting"]`,
		roomTitle:       `.room-title`,
		roomDescription: `.room-description`,
		roomPrice:       `.room-price`,
		roomImage:       `.room-image img`,

		bookNowButton:           `a.btn.btn-primary.btn-lg`,
		checkAvailabilityButton: `button.btn.btn-primary`,
		roomsNav:                `a[href="/#rooms"]`,
		bookingNav:              `a[href="/#booking"]`,
		amenitiesNav:            `a[href="/#amenities"]`,
		locationNav:             `a[href="/#location"]`,
		contactNav:              `a[href="/#contact"]`,

		firstNameInput: `input[name="firstname"]`,
		lastNameInput:  `input[name="lastname"]`,
		emailInput:     `input[name="email"]`,
		phoneInput:     `input[name="phone"]`,

		checkinPicker:      `input.form-control[placeholder="Check In"]`,
		checkoutPicker:     `input.form-control[placeholder="Check Out"]`,
		datePickerCalendar: `.react-datepicker`,
		calendarNext:       `button[aria-label="Next Month"]`,

		reserveButton:    `#doReservation`,
		doReservation:    `#doReservation`,
		bookButton:       `button[type="submit"]`,
		successMessage:   `.alert-success`,
		errorMessage:     `.alert-danger`,
		validationError:  `.invalid-feedback`,
		confirmationCard: `.booking-card`,

		contactSection:     `#contact`,
		contactName:        `[data-testid="ContactName"]`,
		contactEmail:       `[data-testid="ContactEmail"]`,
		contactPhone:       `[data-testid="ContactPhone"]`,
		contactSubject:     `[data-testid="ContactSubject"]`,
		contactDescription: `[data-testid="ContactDescription"]`,
		contactSubmit:      `#contact button.btn.btn-primary`,
	}
}

type BookingPage struct {
	driver    *browser.Driver
	logger    *zerolog.Logger
	selectors bookingSelectors
}

func NewBookingPage(driver *browser.Driver, logger *zerolog.Logger) *BookingPage {
	return &BookingPage{
		driver:    driver,
		logger:    logging.ForComponent(logger, "BookingPage"),
		selectors: newBookingSelectors(),
	}
}

// NavigateToMainPage loads the home page, which carries the room listing, the
// availability form and the contact form.
func (p *BookingPage) NavigateToMainPage() error {
	if err := p.driver.Navigate("/"); err != nil {
		return err
	}

	p.logger.Info().Msg("main page open")

	return nil
}

// NavigateToReservation opens the booking flow for one room.
func (p *BookingPage) NavigateToReservation(roomID int, checkin, checkout string) error {
	path := fmt.Sprintf("/reservation/%d?checkin=%s&checkout=%s", roomID, checkin, checkout)

	return p.driver.Navigate(path)
}

func (p *BookingPage) IsHomepageLoaded() bool {
	return p.driver.IsVisible(p.selectors.bookNowButton)
}

// OpenRooms scrolls the room listing into view via the Book Now button.
func (p *BookingPage) OpenRooms() error {
	return p.driver.Click(p.selectors.bookNowButton)
}

func (p *BookingPage) ClickCheckAvailability() error {
	return p.driver.Click(p.selectors.checkAvailabilityButton)
}

func (p *BookingPage) OpenNavSection(section string) error {
	selector, ok := map[string]string{
		"rooms":     p.selectors.roomsNav,
		"booking":   p.selectors.bookingNav,
		"amenities": p.selectors.amenitiesNav,
		"location":  p.selectors.locationNav,
		"contact":   p.selectors.contactNav,
	}[section]
	if !ok {
		return fmt.Errorf("unknown nav section %q", section)
	}

	return p.driver.Click(selector)
}

// AssertRoomTypesVisible verifies that at least one room card rendered.
func (p *BookingPage) AssertRoomTypesVisible() error {
	return p.driver.AssertVisible(p.selectors.roomListing)
}

func (p *BookingPage) RoomCount() (int, error) {
	return p.driver.Count(p.selectors.roomListing)
}

// SelectStayDates drives the date pickers through the calendar popups,
// clicking a day in the following month for each end of the stay.
func (p *BookingPage) SelectStayDates(checkinDay, checkoutDay string) error {
	steps := []struct {
		picker string
		day    string
	}{
		{p.selectors.checkinPicker, checkinDay},
		{p.selectors.checkoutPicker, checkoutDay},
	}

	for _, step := range steps {
		if err := p.driver.Click(step.picker); err != nil {
			return err
		}

		if err := p.driver.WaitForElement(p.selectors.datePickerCalendar); err != nil {
			return err
		}

		if err := p.driver.Click(p.selectors.calendarNext); err != nil {
			return err
		}

		daySelector := fmt.Sprintf(".react-datepicker__day--%s", step.day)
		if err := p.driver.Click(daySelector); err != nil {
			return err
		}
	}

	p.logger.Info().
		Str("checkin_day", checkinDay).
		Str("checkout_day", checkoutDay).
		Msg("stay dates selected")

	return nil
}

// FillDateDirect types a date straight into a picker input and closes the
// calendar with Tab.
func (p *BookingPage) FillDateDirect(checkin, checkout string) error {
	if err := p.driver.Fill(p.selectors.checkinPicker, checkin); err != nil {
		return err
	}

	if err := p.driver.PressKey("Tab"); err != nil {
		return err
	}

	if err := p.driver.Fill(p.selectors.checkoutPicker, checkout); err != nil {
		return err
	}

	return p.driver.PressKey("Tab")
}

// OpenRoomByIndex clicks the nth "Book now" link in the room listing
// (zero-based).
func (p *BookingPage) OpenRoomByIndex(index int) error {
	selector := fmt.Sprintf(`[data-testid="roomlisting"]:nth-of-type(%d) a`, index+1)

	if err := p.driver.Click(selector); err != nil {
		// Room cards on some deployments render as siblings without the
		// testid on the anchor's ancestor; fall back to link text.
		return p.driver.ClickByText("Book now", "a")
	}

	return nil
}

// FillGuestForm fills the reservation guest details.
func (p *BookingPage) FillGuestForm(form schema.BookingFormData) error {
	p.logger.Info().
		Str("firstname", form.FirstName).
		Str("lastname", form.LastName).
		Msg("filling booking form")

	fields := []struct {
		selector string
		value    string
	}{
		{p.selectors.firstNameInput, form.FirstName},
		{p.selectors.lastNameInput, form.LastName},
		{p.selectors.emailInput, form.Email},
		{p.selectors.phoneInput, form.Phone},
	}

	for _, field := range fields {
		if err := p.driver.Fill(field.selector, field.value); err != nil {
			return err
		}
	}

	return nil
}

// BeginReservation opens the guest-details step of the reservation page.
func (p *BookingPage) BeginReservation() error {
	return p.driver.Click(p.selectors.doReservation)
}

// SubmitBooking triggers the reservation and races the success, error and
// confirmation signals. The ambiguous no-signal case comes back as
// SignalNone; the calling spec decides whether that is fatal.
func (p *BookingPage) SubmitBooking() (browser.Signal, error) {
	if err := p.driver.ClickByText("Reserve Now", "button"); err != nil {
		return browser.SignalNone, err
	}

	signal, err := p.driver.FirstVisible([]browser.Condition{
		{Signal: SignalSuccess, Selector: p.selectors.successMessage, Timeout: submitSignalTimeout},
		{Signal: SignalError, Selector: p.selectors.errorMessage, Timeout: submitSignalTimeout},
		{Signal: SignalModal, Selector: p.selectors.confirmationCard, Timeout: submitSignalTimeout},
	})
	if err != nil {
		return browser.SignalNone, err
	}

	if signal == browser.SignalNone {
		p.logger.Warn().Msg("no success or error signal after booking submission")
	}

	return signal, nil
}

// CompleteBooking runs the whole reservation: guest form, dates, submission.
func (p *BookingPage) CompleteBooking(form schema.BookingFormData, checkin, checkout string) (browser.Signal, error) {
	if err := p.FillGuestForm(form); err != nil {
		return browser.SignalNone, err
	}

	if err := p.FillDateDirect(checkin, checkout); err != nil {
		return browser.SignalNone, err
	}

	return p.SubmitBooking()
}

// AssertPriceSummary verifies the nightly-rate line and the computed total on
// the reservation page.
func (p *BookingPage) AssertPriceSummary(nightlyLine, total string) error {
	if err := p.driver.AssertPageContains(nightlyLine); err != nil {
		return err
	}

	return p.driver.AssertPageContains(total)
}

func (p *BookingPage) AssertBookingConfirmed() error {
	return p.driver.AssertPageContains("Booking Confirmed")
}

func (p *BookingPage) SuccessMessage() (string, error) {
	if !p.driver.IsVisible(p.selectors.successMessage) {
		return "", nil
	}

	return p.driver.Text(p.selectors.successMessage)
}

func (p *BookingPage) ErrorMessage() (string, error) {
	if !p.driver.IsVisible(p.selectors.errorMessage) {
		return "", nil
	}

	return p.driver.Text(p.selectors.errorMessage)
}

// ValidationErrors reads every inline validation message currently rendered.
func (p *BookingPage) ValidationErrors() ([]string, error) {
	texts, err := p.driver.TextOfAll(p.selectors.validationError)
	if err != nil {
		return nil, err
	}

	errors := texts[:0]
	for _, text := range texts {
		if trimmed := strings.TrimSpace(text); trimmed != "" {
			errors = append(errors, trimmed)
		}
	}

	return errors, nil
}

// RoomInfo reads the displayed room card.
func (p *BookingPage) RoomInfo() (schema.RoomInfo, error) {
	title, err := p.driver.Text(p.selectors.roomTitle)
	if err != nil {
		return schema.RoomInfo{}, err
	}

	description, err := p.driver.Text(p.selectors.roomDescription)
	if err != nil {
		return schema.RoomInfo{}, err
	}

	price, err := p.driver.Text(p.selectors.roomPrice)
	if err != nil {
		return schema.RoomInfo{}, err
	}

	return schema.RoomInfo{Title: title, Description: description, Price: price}, nil
}

func (p *BookingPage) IsRoomImageDisplayed() bool {
	return p.driver.IsVisible(p.selectors.roomImage)
}

// FillContactForm populates the Send Us a Message form.
func (p *BookingPage) FillContactForm(form schema.ContactFormData) error {
	p.logger.Info().Str("name", form.Name).Msg("filling contact form")

	if err := p.driver.ScrollTo(p.selectors.contactSection); err != nil {
		return err
	}

	fields := []struct {
		selector string
		value    string
	}{
		{p.selectors.contactName, form.Name},
		{p.selectors.contactEmail, form.Email},
		{p.selectors.contactPhone, form.Phone},
		{p.selectors.contactSubject, form.Subject},
		{p.selectors.contactDescription, form.Message},
	}

	for _, field := range fields {
		if err := p.driver.Fill(field.selector, field.value); err != nil {
			return err
		}
	}

	return nil
}

// SubmitContactForm submits and races the outcome signals.
func (p *BookingPage) SubmitContactForm() (browser.Signal, error) {
	if err := p.driver.ClickByText("Submit", "button"); err != nil {
		return browser.SignalNone, err
	}

	signal, err := p.driver.FirstVisible([]browser.Condition{
		{Signal: SignalSuccess, Selector: p.selectors.successMessage, Timeout: submitSignalTimeout},
		{Signal: SignalError, Selector: p.selectors.errorMessage, Timeout: submitSignalTimeout},
	})
	if err != nil {
		return browser.SignalNone, err
	}

	if signal == browser.SignalNone {
		p.logger.Warn().Msg("no success or error signal after contact form submission")
	}

	return signal, nil
}

// CompleteContactForm fills and submits in one step.
func (p *BookingPage) CompleteContactForm(form schema.ContactFormData) (browser.Signal, error) {
	if err := p.FillContactForm(form); err != nil {
		return browser.SignalNone, err
	}

	return p.SubmitContactForm()
}

// AssertContactThanks verifies the post-submission acknowledgement, which
// echoes the sender's name.
func (p *BookingPage) AssertContactThanks(name string) error {
	return p.driver.AssertPageContains(fmt.Sprintf("Thanks for getting in touch %s!", name))
}

// ContactFormValues reads the current form state back.
func (p *BookingPage) ContactFormValues() (schema.ContactFormData, error) {
	var (
		form schema.ContactFormData
		err  error
	)

	reads := []struct {
		selector string
		target   *string
	}{
		{p.selectors.contactName, &form.Name},
		{p.selectors.contactEmail, &form.Email},
		{p.selectors.contactPhone, &form.Phone},
		{p.selectors.contactSubject, &form.Subject},
		{p.selectors.contactDescription, &form.Message},
	}

	for _, read := range reads {
		*read.target, err = p.driver.Value(read.selector)
		if err != nil {
			return schema.ContactFormData{}, err
		}
	}

	return form, nil
}

// ClearContactForm blanks every contact field.
func (p *BookingPage) ClearContactForm() error {
	for _, selector := range []string{
		p.selectors.contactName,
		p.selectors.contactEmail,
		p.selectors.contactPhone,
		p.selectors.contactSubject,
		p.selectors.contactDescription,
	} {
		if err := p.driver.Fill(selector, ""); err != nil {
			return err
		}
	}

	p.logger.Info().Msg("contact form cleared")

	return nil
}

// AssertContactFormValid checks that every contact element rendered.
func (p *BookingPage) AssertContactFormValid() error {
	for _, selector := range []string{
		p.selectors.contactName,
		p.selectors.contactEmail,
		p.selectors.contactPhone,
		p.selectors.contactSubject,
		p.selectors.contactDescription,
	} {
		if err := p.driver.AssertVisible(selector); err != nil {
			return err
		}
	}

	return nil
}

// AssertGuestFormValid checks that every reservation guest field rendered.
func (p *BookingPage) AssertGuestFormValid() error {
	for _, selector := range []string{
		p.selectors.firstNameInput,
		p.selectors.lastNameInput,
		p.selectors.emailInput,
		p.selectors.phoneInput,
	} {
		if err := p.driver.AssertVisible(selector); err != nil {
			return err
		}
	}

	return nil
}
