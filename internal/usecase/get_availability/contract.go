package get_availability

import (
	"context"
	"time"

	"github.com/m04kA/SMC-CourtBookingService/internal/domain"
)

// BookingRepository интерфейс хранилища бронирований
type BookingRepository interface {
	// GetByDate получает бронирования на дату; activeOnly оставляет только BOOKED
	GetByDate(ctx context.Context, date time.Time, activeOnly bool) ([]*domain.Booking, error)
}

// CatalogRepository интерфейс справочника
type CatalogRepository interface {
	ListLocationsWithCourts(ctx context.Context) ([]*domain.Location, error)
	ListTimeSlots(ctx context.Context) ([]*domain.TimeSlot, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
