package get_availability

import (
	"time"

	"github.com/m04kA/SMC-CourtBookingService/internal/domain"
	"github.com/m04kA/SMC-CourtBookingService/pkg/types"
)

// Request модель запроса доступности на дату
type Request struct {
	Date time.Time // Дата (без времени); прошедшие даты допустимы
}

// Response вложенное представление Location -> Court -> Slot
type Response struct {
	Date      time.Time
	Locations []LocationAvailability
}

// LocationAvailability доступность кортов одной локации
type LocationAvailability struct {
	LocationID  int64
	Name        string
	ComplexName string
	ImageURL    *string
	Courts      []CourtAvailability
}

// CourtAvailability статусы всех слотов одного корта
type CourtAvailability struct {
	CourtID int64
	Name    string
	Slots   []SlotAvailability
}

// SlotAvailability статус ячейки корт×слот×дата
type SlotAvailability struct {
	SlotID    int64
	StartTime types.TimeString
	EndTime   types.TimeString
	Status    domain.AvailabilityStatus
}
