package bookings

import (
	"context"
	"time"

	"github.com/m04kA/SMC-CourtBookingService/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	GetByUserMobile(ctx context.Context, mobile string) ([]*domain.Booking, error)
	GetByCourtID(ctx context.Context, courtID int64) ([]*domain.Booking, error)
}

// CatalogRepository интерфейс справочника
type CatalogRepository interface {
	GetLocation(ctx context.Context, id int64) (*domain.Location, error)
	ListLocationsByAdmin(ctx context.Context, adminMobile string) ([]*domain.Location, error)
}

// UserResolver разрешает ссылку на пользователя по номеру телефона
type UserResolver interface {
	GetUserByMobile(ctx context.Context, mobile string) (*domain.User, error)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
