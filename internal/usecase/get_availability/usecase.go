package get_availability

import (
	"context"
	"fmt"

	"github.com/m04kA/SMC-CourtBookingService/internal/domain"
)

// UseCase use case для расчета доступности кортов на дату
type UseCase struct {
	bookingRepo BookingRepository
	catalogRepo CatalogRepository
	logger      Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	catalogRepo CatalogRepository,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo: bookingRepo,
		catalogRepo: catalogRepo,
		logger:      logger,
	}
}

// Execute строит для каждой локации, каждого корта и каждого слота статус AVAILABLE или BOOKED.
// Ничего не изменяет; пустой каталог дает пустой ответ.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Валидация входных данных
	if req.Date.IsZero() {
		uc.logger.Warn("GetAvailability: date is required")
		return nil, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	date := domain.DateOnly(req.Date)
	uc.logger.Info("GetAvailability: date=%s", date.Format(domain.DateFormat))

	// 2. Получаем каталог локаций с кортами
	locations, err := uc.catalogRepo.ListLocationsWithCourts(ctx)
	if err != nil {
		uc.logger.Error("GetAvailability: failed to list locations: %v", err)
		return nil, fmt.Errorf("%w: failed to list locations: %v", ErrInternal, err)
	}

	// 3. Получаем глобальный каталог слотов
	slots, err := uc.catalogRepo.ListTimeSlots(ctx)
	if err != nil {
		uc.logger.Error("GetAvailability: failed to list time slots: %v", err)
		return nil, fmt.Errorf("%w: failed to list time slots: %v", ErrInternal, err)
	}

	// 4. Получаем только активные бронирования: отмененное бронирование освобождает слот
	bookings, err := uc.bookingRepo.GetByDate(ctx, date, true)
	if err != nil {
		uc.logger.Error("GetAvailability: failed to get bookings: %v", err)
		return nil, fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
	}

	// 5. Строим множество занятых пар и раскладываем каталог
	occupied := occupiedSet(bookings)
	result := buildLocations(locations, slots, occupied)

	uc.logger.Info("GetAvailability: date=%s, locations=%d, slots=%d, occupied=%d",
		date.Format(domain.DateFormat), len(result), len(slots), len(occupied))

	return &Response{
		Date:      date,
		Locations: result,
	}, nil
}
