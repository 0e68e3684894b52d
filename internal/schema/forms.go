package schema

// Inputs to page-object operations. These have no identity beyond the call
// that constructs them.

type BookingFormData struct {
	FirstName string
	LastName  string
	Email     string
	Phone     string
}

type ContactFormData struct {
	Name    string
	Email   string
	Phone   string
	Subject string
	Message string
}

type AdminCredentials struct {
	Username string
	Password string
}

// AdminBookingRow is one row of the admin bookings table, read fresh on every
// enumeration since the table changes underneath (pagination, filters).
type AdminBookingRow struct {
	ID       string
	Customer string
	Dates    string
	Status   string
}

type RoomInfo struct {
	Title       string
	Description string
	Price       string
}
