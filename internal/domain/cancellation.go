package domain

import (
	"fmt"
	"time"
)

var (
	// ErrBookingAlreadyCancelled возвращается при повторной отмене
	ErrBookingAlreadyCancelled = fmt.Errorf("%w: booking already cancelled", ErrInvalidState)

	// ErrBookingAlreadyStarted возвращается, когда слот уже начался или прошел
	ErrBookingAlreadyStarted = fmt.Errorf("%w: past booking cannot be cancelled", ErrInvalidState)

	// ErrCancellationWindowClosed возвращается, когда до начала осталось меньше минимального времени
	ErrCancellationWindowClosed = fmt.Errorf("%w: cancellation window closed", ErrInvalidState)
)

// CancellationPolicy decides whether a booking may still be cancelled.
// The mutating cancel path and read-only list views share this type,
// so both see the same cutoff.
type CancellationPolicy struct {
	// MinLeadTime is the minimum time between now and the slot start; exactly MinLeadTime is allowed.
	MinLeadTime time.Duration
	// Location is the timezone in which booking dates and slot times are interpreted.
	Location *time.Location
}

// NewCancellationPolicy creates a policy; a nil location means UTC.
func NewCancellationPolicy(minLeadTime time.Duration, loc *time.Location) CancellationPolicy {
	if loc == nil {
		loc = time.UTC
	}
	return CancellationPolicy{MinLeadTime: minLeadTime, Location: loc}
}

// Check returns nil if the booking can be cancelled at now, or the reason it cannot.
// Ownership is not checked here.
func (p CancellationPolicy) Check(b *Booking, now time.Time) error {
	if b.IsCancelled() {
		return ErrBookingAlreadyCancelled
	}
	if !b.IsActive() {
		return fmt.Errorf("%w: status %s", ErrInvalidState, b.Status)
	}

	start := b.StartsAt(p.location())
	if start.Before(now) {
		return ErrBookingAlreadyStarted
	}

	if lead := start.Sub(now); lead < p.MinLeadTime {
		return fmt.Errorf("%w: %s left, %s required", ErrCancellationWindowClosed,
			lead.Truncate(time.Minute), p.MinLeadTime)
	}

	return nil
}

// CanCancel is the predicate form of Check, for list views
func (p CancellationPolicy) CanCancel(b *Booking, now time.Time) bool {
	return p.Check(b, now) == nil
}

func (p CancellationPolicy) location() *time.Location {
	if p.Location == nil {
		return time.UTC
	}
	return p.Location
}
