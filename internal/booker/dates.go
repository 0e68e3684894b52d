package booker

import (
	"time"

	"github.com/almoelda/restful-booker-automation/internal/schema"
)

// GenerateBookingDates computes a check-in date daysFromNow ahead of today and
// a check-out stayDuration days after that. Pure apart from the clock read.
func GenerateBookingDates(daysFromNow, stayDuration int) schema.BookingDates {
	return generateBookingDatesAt(time.Now(), daysFromNow, stayDuration)
}

func generateBookingDatesAt(reference time.Time, daysFromNow, stayDuration int) schema.BookingDates {
	checkin := reference.AddDate(0, 0, daysFromNow)
	checkout := checkin.AddDate(0, 0, stayDuration)

	return schema.NewBookingDates(checkin, checkout)
}
