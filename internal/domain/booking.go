package domain

import (
	"time"

	"github.com/m04kA/SMC-CourtBookingService/pkg/types"
)

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	StatusBooked    BookingStatus = "BOOKED"
	StatusCancelled BookingStatus = "CANCELLED"
	// StatusCompleted is reserved for bookings whose slot has passed; nothing transitions to it yet.
	StatusCompleted BookingStatus = "COMPLETED"
)

// IsValid returns true for a known status
func (s BookingStatus) IsValid() bool {
	switch s {
	case StatusBooked, StatusCancelled, StatusCompleted:
		return true
	}
	return false
}

// Booking is a reservation of one court for one time slot on one date.
// StartTime and EndTime are copied from the slot at admission time.
type Booking struct {
	ID          int64
	UserMobile  string
	LocationID  int64
	CourtID     int64
	SlotID      int64
	BookingDate time.Time
	StartTime   types.TimeString
	EndTime     types.TimeString
	Status      BookingStatus

	CancelledAt *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive returns true if the booking still occupies its slot
func (b *Booking) IsActive() bool {
	return b.Status == StatusBooked
}

// IsCancelled returns true if the booking has been cancelled
func (b *Booking) IsCancelled() bool {
	return b.Status == StatusCancelled
}

// IsOwnedBy returns true if the booking was made by the given mobile number
func (b *Booking) IsOwnedBy(mobile string) bool {
	return b.UserMobile == mobile
}

// StartsAt returns the scheduled start instant in loc
func (b *Booking) StartsAt(loc *time.Location) time.Time {
	return b.StartTime.OnDate(b.BookingDate, loc)
}

// Overlaps reports whether [b.StartTime, b.EndTime) intersects [start, end)
func (b *Booking) Overlaps(start, end types.TimeString) bool {
	return IntervalsOverlap(b.StartTime, b.EndTime, start, end)
}

// IntervalsOverlap проверяет пересечение полуоткрытых интервалов [aStart, aEnd) и [bStart, bEnd).
// Интервалы, которые только касаются границами, не пересекаются.
func IntervalsOverlap(aStart, aEnd, bStart, bEnd types.TimeString) bool {
	return aStart.IsBefore(bEnd) && bStart.IsBefore(aEnd)
}

// DateOnly отбрасывает время, оставляя календарную дату в UTC
func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
