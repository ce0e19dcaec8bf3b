package domain

import (
	"fmt"

	"github.com/m04kA/SMC-CourtBookingService/pkg/types"
)

// TimeSlot is a global, date-independent wall-clock window shared by all locations
type TimeSlot struct {
	ID        int64
	StartTime types.TimeString
	EndTime   types.TimeString
}

// Validate checks that the slot has a well-formed, non-empty interval
func (s *TimeSlot) Validate() error {
	if err := s.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: slot start: %v", ErrValidation, err)
	}
	if err := s.EndTime.Validate(); err != nil {
		return fmt.Errorf("%w: slot end: %v", ErrValidation, err)
	}
	if !s.StartTime.IsBefore(s.EndTime) {
		return fmt.Errorf("%w: slot start %s must be before end %s", ErrValidation, s.StartTime, s.EndTime)
	}
	return nil
}

// DurationMinutes returns the length of the slot
func (s *TimeSlot) DurationMinutes() int {
	return s.EndTime.Minutes() - s.StartTime.Minutes()
}

// AvailabilityStatus is the computed state of a court×slot×date cell
type AvailabilityStatus string

const (
	AvailabilityAvailable AvailabilityStatus = "AVAILABLE"
	AvailabilityBooked    AvailabilityStatus = "BOOKED"
)

// CourtSlotKey identifies a court×slot pair within one date
type CourtSlotKey struct {
	CourtID int64
	SlotID  int64
}
