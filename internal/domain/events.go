package domain

import "time"

// Routing keys событий бронирования
const (
	EventBookingCreated   = "booking.created"
	EventBookingCancelled = "booking.cancelled"
)

// BookingEvent публикуется после фиксации транзакции
type BookingEvent struct {
	BookingID   int64     `json:"booking_id"`
	UserMobile  string    `json:"user_mobile"`
	LocationID  int64     `json:"location_id"`
	CourtID     int64     `json:"court_id"`
	SlotID      int64     `json:"slot_id"`
	BookingDate string    `json:"booking_date"`
	StartTime   string    `json:"start_time"`
	EndTime     string    `json:"end_time"`
	Status      string    `json:"status"`
	OccurredAt  time.Time `json:"occurred_at"`
}

// NewBookingEvent собирает событие из бронирования
func NewBookingEvent(b *Booking, occurredAt time.Time) BookingEvent {
	return BookingEvent{
		BookingID:   b.ID,
		UserMobile:  b.UserMobile,
		LocationID:  b.LocationID,
		CourtID:     b.CourtID,
		SlotID:      b.SlotID,
		BookingDate: b.BookingDate.Format(DateFormat),
		StartTime:   b.StartTime.String(),
		EndTime:     b.EndTime.String(),
		Status:      string(b.Status),
		OccurredAt:  occurredAt,
	}
}
