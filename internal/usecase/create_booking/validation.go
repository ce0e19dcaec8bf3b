package create_booking

import (
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-CourtBookingService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if strings.TrimSpace(req.UserMobile) == "" {
		return fmt.Errorf("%w: userMobile is required", ErrInvalidInput)
	}

	if req.LocationID <= 0 {
		return fmt.Errorf("%w: locationID must be positive", ErrInvalidInput)
	}

	if req.CourtID <= 0 {
		return fmt.Errorf("%w: courtID must be positive", ErrInvalidInput)
	}

	if req.SlotID <= 0 {
		return fmt.Errorf("%w: slotID must be positive", ErrInvalidInput)
	}

	// Проверяем, что дата не является нулевой
	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	return nil
}

// validateSlotNotInPast проверяет, что слот на указанную дату еще не начался
func validateSlotNotInPast(date time.Time, slot *domain.TimeSlot, now time.Time, loc *time.Location) error {
	start := slot.StartTime.OnDate(date, loc)
	if start.Before(now) {
		return fmt.Errorf("%w: %s %s", ErrSlotInPast, date.Format(domain.DateFormat), slot.StartTime)
	}
	return nil
}

// lockKey ключ блокировки (корт, дата)
func lockKey(courtID int64, date time.Time) string {
	return fmt.Sprintf("court:%d:%s", courtID, date.Format(domain.DateFormat))
}
