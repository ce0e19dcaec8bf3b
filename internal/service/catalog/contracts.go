package catalog

import (
	"context"

	"github.com/m04kA/SMC-CourtBookingService/internal/domain"
)

// CatalogRepository интерфейс справочника локаций, кортов и слотов
type CatalogRepository interface {
	GetLocation(ctx context.Context, id int64) (*domain.Location, error)
	CountLocationsByAdmin(ctx context.Context, adminMobile string) (int, error)
	CreateLocation(ctx context.Context, location *domain.Location) (*domain.Location, error)
	CreateCourt(ctx context.Context, court *domain.Court) (*domain.Court, error)
	DeleteCourtsByLocation(ctx context.Context, locationID int64) (int64, error)
	DeleteLocation(ctx context.Context, id int64) error
	ListTimeSlots(ctx context.Context) ([]*domain.TimeSlot, error)
}

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	CountByLocation(ctx context.Context, locationID int64) (int, error)
}

// UserResolver разрешает ссылку на пользователя по номеру телефона
type UserResolver interface {
	GetUserByMobile(ctx context.Context, mobile string) (*domain.User, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
