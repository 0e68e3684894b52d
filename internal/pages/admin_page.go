package pages

import (
	"fmt"
	"time"

	"github.com/almoelda/restful-booker-automation/internal/browser"
	"github.com/almoelda/restful-booker-automation/internal/logging"
	"github.com/almoelda/restful-booker-automation/internal/schema"
	"github.com/rs/zerolog"
)

const (
	loginDashboardTimeout = 10 * time.Second
	loginErrorTimeout     = 5 * time.Second
)

type adminSelectors struct {
	usernameInput string
	passwordInput string
	loginButton   string
	loginError    string

	dashboard    string
	brandLink    string
	logoutButton string
	roomListing  string

	messagesLink string
	unreadBadge  string
	messageRows  string

	bookingsTable   string
	bookingRows     string
	rowID           string
	rowCustomer     string
	rowDates        string
	rowStatus       string
	searchInput     string
	searchButton    string
	statusFilter    string
	clearFilters    string
	prevPageButton  string
	nextPageButton  string
	editButton      string
	deleteButton    string
	viewButton      string
	detailsModal    string
	detailsBody     string
	detailsClose    string
	deleteModal     string
	confirmDelete   string
	editForm        string
	editFirstName   string
	editLastName    string
	saveChanges     string
	successAlert    string
	errorAlert      string
	totalBookings   string
	activeBookings  string
	revenueTotal    string
}

func newAdminSelectors() adminSelectors {
	return adminSelectors{
		usernameInput: `#username`,
		passwordInput: `#password`,
		loginButton:   `button[type="submit"]`,
		loginError:    `.alert-danger`,

		dashboard:    `.container-fluid`,
		brandLink:    `a.navbar-brand`,
		logoutButton: `a[href="/admin/logout"]`,
		roomListing:  `[data-testid="roomlisting"]`,

		messagesLink: `a[href="/admin/message"]`,
		unreadBadge:  `span.badge.bg-danger.text-white`,
		messageRows:  `.message-list .row.detail`,

		bookingsTable:  `.bookings-table`,
		bookingRows:    `.booking-row`,
		rowID:          `.booking-id`,
		rowCustomer:    `.booking-customer`,
		rowDates:       `.booking-dates`,
		rowStatus:      `.booking-status`,
		searchInput:    `input[name="search"]`,
		searchButton:   `.btn-search`,
		statusFilter:   `select[name="status"]`,
		clearFilters:   `.btn-clear-filters`,
		prevPageButton: `.pagination .prev`,
		nextPageButton: `.pagination .next`,
		editButton:     `.btn-edit`,
		deleteButton:   `.btn-delete`,
		viewButton:     `.btn-view`,
		detailsModal:   `#bookingDetailsModal`,
		detailsBody:    `.modal-body`,
		detailsClose:   `.modal-close`,
		deleteModal:    `#deleteConfirmModal`,
		confirmDelete:  `.btn-confirm-delete`,
		editForm:       `.edit-booking-form`,
		editFirstName:  `input[name="edit-firstname"]`,
		editLastName:   `input[name="edit-lastname"]`,
		saveChanges:    `.btn-save`,
		successAlert:   `.alert-success`,
		errorAlert:     `.alert-danger`,
		totalBookings:  `.total-bookings`,
		activeBookings: `.active-bookings`,
		revenueTotal:   `.revenue-total`,
	}
}

type AdminPage struct {
	driver    *browser.Driver
	logger    *zerolog.Logger
	selectors adminSelectors
}

func NewAdminPage(driver *browser.Driver, logger *zerolog.Logger) *AdminPage {
	return &AdminPage{
		driver:    driver,
		logger:    logging.ForComponent(logger, "AdminPage"),
		selectors: newAdminSelectors(),
	}
}

// NavigateToLogin opens the admin login screen.
func (p *AdminPage) NavigateToLogin() error {
	if err := p.driver.Navigate("/admin"); err != nil {
		return err
	}

	return p.driver.WaitForElement(p.selectors.usernameInput)
}

// Login fills credentials and races the dashboard signal against the error
// signal. The dashboard gets the longer budget so a slow success is not
// misread as failure. SignalNone means neither appeared; the caller decides
// whether that is fatal.
func (p *AdminPage) Login(credentials schema.AdminCredentials) (browser.Signal, error) {
	p.logger.Info().Str("username", credentials.Username).Msg("attempting admin login")

	if err := p.driver.Fill(p.selectors.usernameInput, credentials.Username); err != nil {
		return browser.SignalNone, err
	}

	if err := p.driver.Fill(p.selectors.passwordInput, credentials.Password); err != nil {
		return browser.SignalNone, err
	}

	if err := p.driver.Click(p.selectors.loginButton); err != nil {
		return browser.SignalNone, err
	}

	signal, err := p.driver.FirstVisible([]browser.Condition{
		{Signal: SignalDashboard, Selector: p.selectors.roomListing, Timeout: loginDashboardTimeout},
		{Signal: SignalError, Selector: p.selectors.loginError, Timeout: loginErrorTimeout},
	})
	if err != nil {
		return browser.SignalNone, err
	}

	if signal == browser.SignalNone {
		p.logger.Warn().Msg("neither dashboard nor error appeared after login")
	}

	return signal, nil
}

func (p *AdminPage) IsLoginSuccessful() bool {
	return p.driver.IsVisible(p.selectors.roomListing)
}

func (p *AdminPage) LoginError() (string, error) {
	if !p.driver.IsVisible(p.selectors.loginError) {
		return "", nil
	}

	return p.driver.Text(p.selectors.loginError)
}

// Logout returns to the login screen.
func (p *AdminPage) Logout() error {
	if err := p.driver.Click(p.selectors.logoutButton); err != nil {
		return err
	}

	return p.driver.WaitForElement(p.selectors.usernameInput)
}

// OpenMessages navigates to the admin message list.
func (p *AdminPage) OpenMessages() error {
	return p.driver.Click(p.selectors.messagesLink)
}

// HasUnreadMessages reports whether the unread badge is rendered.
func (p *AdminPage) HasUnreadMessages() bool {
	return p.driver.IsVisible(p.selectors.unreadBadge)
}

// AssertMessageFrom verifies a sender name appears in the message list.
func (p *AdminPage) AssertMessageFrom(name string) error {
	return p.driver.AssertPageContains(name)
}

// AllBookings enumerates the bookings table. The row count is read fresh on
// every call since pagination and filters change the table underneath.
func (p *AdminPage) AllBookings() ([]schema.AdminBookingRow, error) {
	if err := p.driver.WaitForElement(p.selectors.bookingsTable); err != nil {
		return nil, err
	}

	count, err := p.driver.Count(p.selectors.bookingRows)
	if err != nil {
		return nil, err
	}

	rows := make([]schema.AdminBookingRow, 0, count)

	for i := 1; i <= count; i++ {
		row, err := p.bookingRow(i)
		if err != nil {
			return nil, err
		}

		rows = append(rows, row)
	}

	p.logger.Info().Int("count", len(rows)).Msg("bookings read from table")

	return rows, nil
}

func (p *AdminPage) bookingRow(position int) (schema.AdminBookingRow, error) {
	var (
		row schema.AdminBookingRow
		err error
	)

	base := fmt.Sprintf("%s:nth-of-type(%d)", p.selectors.bookingRows, position)

	reads := []struct {
		column string
		target *string
	}{
		{p.selectors.rowID, &row.ID},
		{p.selectors.rowCustomer, &row.Customer},
		{p.selectors.rowDates, &row.Dates},
		{p.selectors.rowStatus, &row.Status},
	}

	for _, read := range reads {
		*read.target, err = p.driver.Text(base + " " + read.column)
		if err != nil {
			return schema.AdminBookingRow{}, err
		}
	}

	return row, nil
}

func (p *AdminPage) BookingsCount() (int, error) {
	return p.driver.Count(p.selectors.bookingRows)
}

// SearchBookings filters the table by a search term.
func (p *AdminPage) SearchBookings(term string) error {
	if err := p.driver.Fill(p.selectors.searchInput, term); err != nil {
		return err
	}

	if err := p.driver.Click(p.selectors.searchButton); err != nil {
		return err
	}

	p.logger.Info().Str("term", term).Msg("bookings searched")

	return nil
}

// FilterByStatus narrows the table to one booking status.
func (p *AdminPage) FilterByStatus(status string) error {
	return p.driver.SelectOption(p.selectors.statusFilter, status)
}

func (p *AdminPage) ClearFilters() error {
	return p.driver.Click(p.selectors.clearFilters)
}

// GoToNextPage advances pagination; when the button is disabled it logs and
// no-ops rather than attempting a doomed click.
func (p *AdminPage) GoToNextPage() error {
	return p.pageStep(p.selectors.nextPageButton, "next")
}

func (p *AdminPage) GoToPreviousPage() error {
	return p.pageStep(p.selectors.prevPageButton, "previous")
}

func (p *AdminPage) pageStep(selector, direction string) error {
	enabled, err := p.driver.IsEnabled(selector)
	if err != nil {
		return err
	}

	if !enabled {
		p.logger.Warn().Str("direction", direction).Msg("pagination button is disabled")
		return nil
	}

	if err := p.driver.Click(selector); err != nil {
		return err
	}

	p.logger.Info().Str("direction", direction).Msg("pagination advanced")

	return nil
}

// EditBooking opens a row's edit form, rewrites the given names and saves.
func (p *AdminPage) EditBooking(bookingID string, firstName, lastName string) error {
	rowSelector := fmt.Sprintf(`[data-booking-id=%q] %s`, bookingID, p.selectors.editButton)

	if err := p.driver.Click(rowSelector); err != nil {
		return err
	}

	if err := p.driver.WaitForElement(p.selectors.editForm); err != nil {
		return err
	}

	if firstName != "" {
		if err := p.driver.Fill(p.selectors.editFirstName, firstName); err != nil {
			return err
		}
	}

	if lastName != "" {
		if err := p.driver.Fill(p.selectors.editLastName, lastName); err != nil {
			return err
		}
	}

	if err := p.driver.Click(p.selectors.saveChanges); err != nil {
		return err
	}

	p.logger.Info().Str("bookingid", bookingID).Msg("booking edited")

	return nil
}

// DeleteBooking removes a row via its delete button and the confirm modal.
func (p *AdminPage) DeleteBooking(bookingID string) error {
	rowSelector := fmt.Sprintf(`[data-booking-id=%q] %s`, bookingID, p.selectors.deleteButton)

	if err := p.driver.Click(rowSelector); err != nil {
		return err
	}

	if err := p.driver.WaitForElement(p.selectors.deleteModal); err != nil {
		return err
	}

	if err := p.driver.Click(p.selectors.confirmDelete); err != nil {
		return err
	}

	p.logger.Info().Str("bookingid", bookingID).Msg("booking deleted")

	return nil
}

// ViewBookingDetails opens a row's details modal, reads it and closes it.
func (p *AdminPage) ViewBookingDetails(bookingID string) (string, error) {
	rowSelector := fmt.Sprintf(`[data-booking-id=%q] %s`, bookingID, p.selectors.viewButton)

	if err := p.driver.Click(rowSelector); err != nil {
		return "", err
	}

	if err := p.driver.WaitForElement(p.selectors.detailsModal); err != nil {
		return "", err
	}

	details, err := p.driver.Text(p.selectors.detailsBody)
	if err != nil {
		return "", err
	}

	if err := p.driver.Click(p.selectors.detailsClose); err != nil {
		return "", err
	}

	return details, nil
}

// BookingStats reads the dashboard summary block.
func (p *AdminPage) BookingStats() (map[string]string, error) {
	stats := map[string]string{}

	reads := map[string]string{
		"total":   p.selectors.totalBookings,
		"active":  p.selectors.activeBookings,
		"revenue": p.selectors.revenueTotal,
	}

	for name, selector := range reads {
		value, err := p.driver.Text(selector)
		if err != nil {
			return nil, err
		}

		stats[name] = value
	}

	return stats, nil
}

func (p *AdminPage) SuccessMessage() (string, error) {
	if !p.driver.IsVisible(p.selectors.successAlert) {
		return "", nil
	}

	return p.driver.Text(p.selectors.successAlert)
}

// AssertDashboardLoaded verifies the landing state after a login.
func (p *AdminPage) AssertDashboardLoaded() error {
	if err := p.driver.AssertVisible(p.selectors.brandLink); err != nil {
		return err
	}

	return p.driver.AssertVisible(p.selectors.roomListing)
}
