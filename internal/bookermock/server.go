// Package bookermock is an in-process stand-in for the remote booking
// service, used by unit tests so the client's contract handling is verified
// without network access. It reproduces the remote's quirks exactly: HTTP 200
// for rejected credentials, 201 for successful deletes and pings.
package bookermock

import (
	"net/http"
	"strconv"
	"sync"

	"github.com/almoelda/restful-booker-automation/internal/schema"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	DefaultUsername = "admin"
	DefaultPassword = "password"

	badCredentialsReason = "Bad credentials"
)

type Server struct {
	router *gin.Engine

	mu            sync.Mutex
	bookings      map[int]schema.Booking
	messages      []schema.ContactMessage
	tokens        map[string]bool
	nextBookingID int
	nextMessageID int

	username string
	password string
}

func New() *Server {
	gin.SetMode(gin.TestMode)

	s := &Server{
		bookings:      map[int]schema.Booking{},
		messages:      []schema.ContactMessage{},
		tokens:        map[string]bool{},
		nextBookingID: 1,
		nextMessageID: 1,
		username:      DefaultUsername,
		password:      DefaultPassword,
	}

	router := gin.New()

	router.POST("/auth", s.authenticate)
	router.GET("/booking", s.listBookings)
	router.GET("/booking/:id", s.getBooking)
	router.POST("/booking", s.createBooking)
	router.PUT("/booking/:id", s.updateBooking)
	router.PATCH("/booking/:id", s.patchBooking)
	router.DELETE("/booking/:id", s.deleteBooking)
	router.GET("/ping", s.ping)
	router.POST("/message", s.createMessage)
	router.GET("/message", s.listMessages)

	s.router = router

	return s
}

// Handler exposes the router for httptest.NewServer.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Seed installs a booking directly, returning its id.
func (s *Server) Seed(booking schema.Booking) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextBookingID
	s.nextBookingID++
	s.bookings[id] = booking

	return id
}

// IssueToken mints a valid token without going through /auth.
func (s *Server) IssueToken() string {
	token := uuid.NewString()

	s.mu.Lock()
	s.tokens[token] = true
	s.mu.Unlock()

	return token
}

func (s *Server) authenticate(c *gin.Context) {
	var credentials schema.AuthCredentials
	if err := c.ShouldBindJSON(&credentials); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "malformed request"})
		return
	}

	if credentials.Username != s.username || credentials.Password != s.password {
		// The real service reports rejection with a 200 and a reason.
		c.JSON(http.StatusOK, schema.AuthResult{Reason: badCredentialsReason})
		return
	}

	c.JSON(http.StatusOK, schema.AuthResult{Token: s.IssueToken()})
}

func (s *Server) authorized(c *gin.Context) bool {
	token, err := c.Cookie("token")
	if err != nil || token == "" {
		return false
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	return s.tokens[token]
}

func (s *Server) listBookings(c *gin.Context) {
	filters := schema.BookingFilters{
		Firstname: c.Query("firstname"),
		Lastname:  c.Query("lastname"),
		Checkin:   c.Query("checkin"),
		Checkout:  c.Query("checkout"),
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	refs := []schema.BookingRef{}
	for id, booking := range s.bookings {
		if matches(booking, filters) {
			refs = append(refs, schema.BookingRef{BookingID: id})
		}
	}

	c.JSON(http.StatusOK, refs)
}

// matches applies the remote's filter semantics: names match exactly, checkin
// keeps bookings starting on or after the date, checkout those ending on or
// before it. ISO dates compare correctly as strings.
func matches(booking schema.Booking, filters schema.BookingFilters) bool {
	if filters.Firstname != "" && booking.Firstname != filters.Firstname {
		return false
	}

	if filters.Lastname != "" && booking.Lastname != filters.Lastname {
		return false
	}

	if filters.Checkin != "" && booking.BookingDates.CheckinString() < filters.Checkin {
		return false
	}

	if filters.Checkout != "" && booking.BookingDates.CheckoutString() > filters.Checkout {
		return false
	}

	return true
}

func (s *Server) getBooking(c *gin.Context) {
	id, ok := bookingID(c)
	if !ok {
		return
	}

	s.mu.Lock()
	booking, found := s.bookings[id]
	s.mu.Unlock()

	if !found {
		c.Status(http.StatusNotFound)
		return
	}

	c.JSON(http.StatusOK, booking)
}

func (s *Server) createBooking(c *gin.Context) {
	var booking schema.Booking
	if err := c.ShouldBindJSON(&booking); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "malformed request"})
		return
	}

	id := s.Seed(booking)

	c.JSON(http.StatusOK, schema.BookingResult{BookingID: id, Booking: booking})
}

func (s *Server) updateBooking(c *gin.Context) {
	if !s.authorized(c) {
		c.Status(http.StatusForbidden)
		return
	}

	id, ok := bookingID(c)
	if !ok {
		return
	}

	var booking schema.Booking
	if err := c.ShouldBindJSON(&booking); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "malformed request"})
		return
	}

	s.mu.Lock()
	_, found := s.bookings[id]
	if found {
		s.bookings[id] = booking
	}
	s.mu.Unlock()

	if !found {
		c.Status(http.StatusNotFound)
		return
	}

	c.JSON(http.StatusOK, booking)
}

func (s *Server) patchBooking(c *gin.Context) {
	if !s.authorized(c) {
		c.Status(http.StatusForbidden)
		return
	}

	id, ok := bookingID(c)
	if !ok {
		return
	}

	var patch schema.BookingPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "malformed request"})
		return
	}

	s.mu.Lock()
	booking, found := s.bookings[id]
	if found {
		booking = applyPatch(booking, patch)
		s.bookings[id] = booking
	}
	s.mu.Unlock()

	if !found {
		c.Status(http.StatusNotFound)
		return
	}

	c.JSON(http.StatusOK, booking)
}

func applyPatch(booking schema.Booking, patch schema.BookingPatch) schema.Booking {
	if patch.Firstname != nil {
		booking.Firstname = *patch.Firstname
	}

	if patch.Lastname != nil {
		booking.Lastname = *patch.Lastname
	}

	if patch.TotalPrice != nil {
		booking.TotalPrice = *patch.TotalPrice
	}

	if patch.DepositPaid != nil {
		booking.DepositPaid = *patch.DepositPaid
	}

	if patch.BookingDates != nil {
		booking.BookingDates = *patch.BookingDates
	}

	if patch.AdditionalNeeds != nil {
		booking.AdditionalNeeds = *patch.AdditionalNeeds
	}

	return booking
}

func (s *Server) deleteBooking(c *gin.Context) {
	if !s.authorized(c) {
		c.Status(http.StatusForbidden)
		return
	}

	id, ok := bookingID(c)
	if !ok {
		return
	}

	s.mu.Lock()
	_, found := s.bookings[id]
	delete(s.bookings, id)
	s.mu.Unlock()

	if !found {
		c.Status(http.StatusNotFound)
		return
	}

	// Deletion success is 201 on the real service, not 204.
	c.Status(http.StatusCreated)
}

func (s *Server) ping(c *gin.Context) {
	c.String(http.StatusCreated, "Created")
}

func (s *Server) createMessage(c *gin.Context) {
	var message schema.ContactMessage
	if err := c.ShouldBindJSON(&message); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "malformed request"})
		return
	}

	if message.Name == "" || message.Email == "" || message.Phone == "" ||
		message.Subject == "" || message.Description == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing required fields"})
		return
	}

	s.mu.Lock()
	message.ID = s.nextMessageID
	s.nextMessageID++
	s.messages = append(s.messages, message)
	s.mu.Unlock()

	c.JSON(http.StatusCreated, message)
}

func (s *Server) listMessages(c *gin.Context) {
	if !s.authorized(c) {
		c.Status(http.StatusForbidden)
		return
	}

	s.mu.Lock()
	messages := make([]schema.ContactMessage, len(s.messages))
	copy(messages, s.messages)
	s.mu.Unlock()

	c.JSON(http.StatusOK, messages)
}

func bookingID(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.Status(http.StatusNotFound)
		return 0, false
	}

	return id, true
}
