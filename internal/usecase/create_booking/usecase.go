package create_booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-CourtBookingService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-CourtBookingService/internal/infra/storage/booking"
	catalogRepo "github.com/m04kA/SMC-CourtBookingService/internal/infra/storage/catalog"
	userClient "github.com/m04kA/SMC-CourtBookingService/internal/integrations/userservice"
	"github.com/m04kA/SMC-CourtBookingService/pkg/metrics"
)

// UseCase use case для бронирования корта
type UseCase struct {
	bookingRepo  BookingRepository
	catalogRepo  CatalogRepository
	users        UserResolver
	txManager    TransactionManager
	locker       KeyLocker
	publisher    EventPublisher
	metrics      Metrics
	location     *time.Location
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	catalogRepo CatalogRepository,
	users UserResolver,
	txManager TransactionManager,
	locker KeyLocker,
	publisher EventPublisher,
	metrics Metrics,
	location *time.Location,
	logger Logger,
) *UseCase {
	if location == nil {
		location = time.UTC
	}
	return &UseCase{
		bookingRepo:  bookingRepo,
		catalogRepo:  catalogRepo,
		users:        users,
		txManager:    txManager,
		locker:       locker,
		publisher:    publisher,
		metrics:      metrics,
		location:     location,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// WithTimeProvider подменяет источник времени
func (uc *UseCase) WithTimeProvider(tp TimeProvider) *UseCase {
	uc.timeProvider = tp
	return uc
}

// Execute выполняет use case бронирования корта.
// Проверка пересечения и вставка выполняются под блокировкой (корт, дата)
// внутри сериализуемой транзакции.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	resp, err := uc.execute(ctx, req)
	uc.metrics.ObserveAdmission(outcomeOf(err))
	return resp, err
}

func (uc *UseCase) execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: user=%s, location=%d, court=%d, slot=%d, date=%s",
		req.UserMobile, req.LocationID, req.CourtID, req.SlotID, req.Date.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	date := domain.DateOnly(req.Date)

	// 2. Проверяем пользователя
	user, err := uc.users.GetUserByMobile(ctx, req.UserMobile)
	if err != nil {
		if errors.Is(err, userClient.ErrUserNotFound) {
			uc.logger.Warn("CreateBooking: user mobile=%s not registered", req.UserMobile)
			return nil, ErrUserNotRegistered
		}
		uc.logger.Error("CreateBooking: failed to resolve user mobile=%s: %v", req.UserMobile, err)
		return nil, fmt.Errorf("%w: failed to resolve user: %v", ErrInternal, err)
	}
	if !user.Active {
		uc.logger.Warn("CreateBooking: user mobile=%s is inactive", req.UserMobile)
		return nil, ErrUserNotRegistered
	}

	// 3. Получаем локацию, корт и слот из справочника
	location, err := uc.catalogRepo.GetLocation(ctx, req.LocationID)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrLocationNotFound) {
			uc.logger.Warn("CreateBooking: location id=%d not found", req.LocationID)
			return nil, ErrLocationNotFound
		}
		uc.logger.Error("CreateBooking: failed to get location id=%d: %v", req.LocationID, err)
		return nil, fmt.Errorf("%w: failed to get location: %v", ErrInternal, err)
	}

	court, err := uc.catalogRepo.GetCourt(ctx, req.CourtID)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrCourtNotFound) {
			uc.logger.Warn("CreateBooking: court id=%d not found", req.CourtID)
			return nil, ErrCourtNotFound
		}
		uc.logger.Error("CreateBooking: failed to get court id=%d: %v", req.CourtID, err)
		return nil, fmt.Errorf("%w: failed to get court: %v", ErrInternal, err)
	}
	if court.LocationID != location.ID {
		uc.logger.Warn("CreateBooking: court id=%d does not belong to location id=%d", court.ID, location.ID)
		return nil, ErrCourtNotFound
	}

	slot, err := uc.catalogRepo.GetTimeSlot(ctx, req.SlotID)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrSlotNotFound) {
			uc.logger.Warn("CreateBooking: slot id=%d not found", req.SlotID)
			return nil, ErrSlotNotFound
		}
		uc.logger.Error("CreateBooking: failed to get slot id=%d: %v", req.SlotID, err)
		return nil, fmt.Errorf("%w: failed to get slot: %v", ErrInternal, err)
	}

	// 4. Нельзя бронировать слот, который уже начался
	now := uc.timeProvider.Now()
	if err := validateSlotNotInPast(date, slot, now, uc.location); err != nil {
		uc.logger.Warn("CreateBooking: %v", err)
		return nil, err
	}

	// 5-6. Проверка пересечения и вставка под блокировкой (корт, дата)
	result, err := uc.admit(ctx, req.UserMobile, location, court, slot, date)
	if err != nil {
		switch {
		case errors.Is(err, ErrSlotAlreadyBooked):
			return nil, err
		case bookingRepo.IsConcurrentWriteConflict(err):
			// Хранилище отклонило проигравшую конкурентную запись
			uc.logger.Warn("CreateBooking: concurrent admission lost for court=%d slot=%d: %v", court.ID, slot.ID, err)
			return nil, ErrSlotAlreadyBooked
		case errors.Is(err, ErrInternal):
			return nil, err
		default:
			uc.logger.Error("CreateBooking: failed to create booking: %v", err)
			return nil, fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
		}
	}

	uc.logger.Info("CreateBooking: successfully created booking id=%d", result.ID)

	// 7. Публикуем событие после фиксации
	if err := uc.publisher.PublishJSON(ctx, domain.EventBookingCreated, domain.NewBookingEvent(result, now)); err != nil {
		uc.logger.Error("CreateBooking: failed to publish event for booking id=%d: %v", result.ID, err)
	}

	// Конвертируем в response
	return &Response{
		ID:           result.ID,
		LocationName: location.Name,
		CourtName:    court.Name,
		BookingDate:  result.BookingDate,
		StartTime:    result.StartTime,
		EndTime:      result.EndTime,
		Status:       string(result.Status),
	}, nil
}

// admit сериализует попытки по (корт, дата) и внутри сериализуемой транзакции
// проверяет пересечение и создает бронирование. Блокировка держится до фиксации.
func (uc *UseCase) admit(
	ctx context.Context,
	mobile string,
	location *domain.Location,
	court *domain.Court,
	slot *domain.TimeSlot,
	date time.Time,
) (*domain.Booking, error) {
	unlock, err := uc.locker.Lock(ctx, lockKey(court.ID, date))
	if err != nil {
		uc.logger.Warn("CreateBooking: lock wait aborted for court=%d date=%s: %v",
			court.ID, date.Format(domain.DateFormat), err)
		return nil, fmt.Errorf("%w: lock wait aborted: %v", ErrInternal, err)
	}
	defer unlock()

	var result *domain.Booking

	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// Ищем активное бронирование, пересекающее [slot.start, slot.end)
		exists, err := uc.bookingRepo.ExistsOverlapping(txCtx, court.ID, location.ID, date, slot.StartTime, slot.EndTime)
		if err != nil {
			if bookingRepo.IsConcurrentWriteConflict(err) {
				uc.logger.Warn("CreateBooking: concurrent admission on court=%d %s: %v",
					court.ID, date.Format(domain.DateFormat), err)
				return ErrSlotAlreadyBooked
			}
			uc.logger.Error("CreateBooking: failed to check overlap: %v", err)
			return fmt.Errorf("%w: failed to check overlap: %v", ErrInternal, err)
		}
		if exists {
			uc.logger.Warn("CreateBooking: court=%d %s %s-%s already booked",
				court.ID, date.Format(domain.DateFormat), slot.StartTime, slot.EndTime)
			return ErrSlotAlreadyBooked
		}

		// Время слота копируется в запись
		created, err := uc.bookingRepo.Create(txCtx, &domain.Booking{
			UserMobile:  mobile,
			LocationID:  location.ID,
			CourtID:     court.ID,
			SlotID:      slot.ID,
			BookingDate: date,
			StartTime:   slot.StartTime,
			EndTime:     slot.EndTime,
			Status:      domain.StatusBooked,
		})
		if err != nil {
			return err
		}

		result = created
		return nil
	})

	return result, err
}

// outcomeOf классифицирует результат для метрики
func outcomeOf(err error) string {
	switch {
	case err == nil:
		return metrics.OutcomeSuccess
	case errors.Is(err, domain.ErrConflict):
		return metrics.OutcomeConflict
	case errors.Is(err, domain.ErrNotFound), errors.Is(err, domain.ErrValidation):
		return metrics.OutcomeRejected
	default:
		return metrics.OutcomeError
	}
}
