package create_booking

import (
	"context"
	"time"

	"github.com/m04kA/SMC-CourtBookingService/internal/domain"
	"github.com/m04kA/SMC-CourtBookingService/pkg/types"
)

// BookingRepository интерфейс хранилища бронирований
type BookingRepository interface {
	ExistsOverlapping(ctx context.Context, courtID, locationID int64, date time.Time, start, end types.TimeString) (bool, error)
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
}

// CatalogRepository интерфейс справочника локаций, кортов и слотов
type CatalogRepository interface {
	GetLocation(ctx context.Context, id int64) (*domain.Location, error)
	GetCourt(ctx context.Context, id int64) (*domain.Court, error)
	GetTimeSlot(ctx context.Context, id int64) (*domain.TimeSlot, error)
}

// UserResolver разрешает ссылку на пользователя по номеру телефона
type UserResolver interface {
	GetUserByMobile(ctx context.Context, mobile string) (*domain.User, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// KeyLocker сериализует попытки бронирования одного корта на одну дату
type KeyLocker interface {
	Lock(ctx context.Context, key string) (func(), error)
}

// EventPublisher публикует события бронирования
type EventPublisher interface {
	PublishJSON(ctx context.Context, key string, v interface{}) error
}

// Metrics счетчик исходов бронирования
type Metrics interface {
	ObserveAdmission(outcome string)
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
