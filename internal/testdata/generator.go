// Package testdata produces randomized but well-formed domain payloads for
// the suites. Every generator is deterministic once seeded, so a failing run
// can be replayed with the same data.
package testdata

import (
	"fmt"
	"strings"
	"time"

	"github.com/almoelda/restful-booker-automation/internal/schema"
	"github.com/brianvoe/gofakeit/v6"
	"github.com/google/uuid"
)

type Generator struct {
	faker *gofakeit.Faker
}

// New builds a generator seeded from the clock. Use NewSeeded to replay a run.
func New() *Generator {
	return NewSeeded(time.Now().UnixNano())
}

func NewSeeded(seed int64) *Generator {
	return &Generator{faker: gofakeit.New(seed)}
}

// RunID returns a unique tag for correlating artifacts of a single run.
func (g *Generator) RunID() string {
	return uuid.New().String()
}

// Booking produces an API payload with a stay starting tomorrow.
func (g *Generator) Booking() schema.Booking {
	checkin := g.FutureDate(1)
	checkout := checkin.AddDate(0, 0, g.faker.Number(1, 14))

	return schema.Booking{
		Firstname:       g.faker.FirstName(),
		Lastname:        g.faker.LastName(),
		TotalPrice:      g.faker.Number(50, 999),
		DepositPaid:     g.faker.Bool(),
		BookingDates:    schema.NewBookingDates(checkin, checkout),
		AdditionalNeeds: g.faker.RandomString([]string{"Breakfast", "Late checkout", "Extra towels", ""}),
	}
}

// BookingForm produces guest details for the reservation form.
func (g *Generator) BookingForm() schema.BookingFormData {
	return schema.BookingFormData{
		FirstName: g.faker.FirstName(),
		LastName:  g.faker.LastName(),
		Email:     g.ValidEmail(),
		Phone:     g.Phone(),
	}
}

// ContactForm produces a message long enough to clear the form's minimum
// length validation.
func (g *Generator) ContactForm() schema.ContactFormData {
	return schema.ContactFormData{
		Name:    g.faker.Name(),
		Email:   g.ValidEmail(),
		Phone:   g.Phone(),
		Subject: g.faker.Sentence(3),
		Message: g.faker.Paragraph(1, 3, 12, " "),
	}
}

// ContactMessage produces an API payload for the message endpoint.
func (g *Generator) ContactMessage() schema.ContactMessage {
	form := g.ContactForm()

	return schema.ContactMessage{
		Name:        form.Name,
		Email:       form.Email,
		Phone:       form.Phone,
		Subject:     form.Subject,
		Description: form.Message,
	}
}

func (g *Generator) ValidEmail() string {
	return g.faker.Email()
}

// InvalidEmail returns an address missing its domain part.
func (g *Generator) InvalidEmail() string {
	return strings.Split(g.faker.Email(), "@")[0] + "@"
}

// Phone returns eleven digits, matching the platform's phone validation.
func (g *Generator) Phone() string {
	return fmt.Sprintf("0%s", g.faker.Numerify("##########"))
}

// FutureDate returns midnight UTC at least daysFromNow days ahead.
func (g *Generator) FutureDate(daysFromNow int) time.Time {
	day := time.Now().UTC().AddDate(0, 0, daysFromNow+g.faker.Number(0, 30))

	return time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC)
}

// PastDate returns midnight UTC at least daysAgo days back.
func (g *Generator) PastDate(daysAgo int) time.Time {
	day := time.Now().UTC().AddDate(0, 0, -(daysAgo + g.faker.Number(0, 30)))

	return time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC)
}

func (g *Generator) AdminCredentials() schema.AdminCredentials {
	return schema.AdminCredentials{
		Username: g.faker.Username(),
		Password: g.faker.Password(true, true, true, false, false, 12),
	}
}
