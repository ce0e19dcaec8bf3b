package cancel_booking

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/m04kA/SMC-CourtBookingService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-CourtBookingService/internal/infra/storage/booking"
	"github.com/m04kA/SMC-CourtBookingService/pkg/metrics"
)

// UseCase use case для отмены бронирования
type UseCase struct {
	bookingRepo  BookingRepository
	txManager    TransactionManager
	policy       domain.CancellationPolicy
	publisher    EventPublisher
	metrics      Metrics
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	txManager TransactionManager,
	policy domain.CancellationPolicy,
	publisher EventPublisher,
	metrics Metrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		txManager:    txManager,
		policy:       policy,
		publisher:    publisher,
		metrics:      metrics,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// WithTimeProvider подменяет источник времени
func (uc *UseCase) WithTimeProvider(tp TimeProvider) *UseCase {
	uc.timeProvider = tp
	return uc
}

// Execute отменяет бронирование от имени владельца.
// Чтение, проверки и условное обновление выполняются в одной транзакции,
// повторная отмена получает ErrBookingAlreadyCancelled.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	resp, err := uc.execute(ctx, req)
	uc.metrics.ObserveCancellation(outcomeOf(err))
	return resp, err
}

func (uc *UseCase) execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CancelBooking: booking=%d, requester=%s", req.BookingID, req.RequesterMobile)

	// 1. Валидация входных данных
	if req.BookingID <= 0 {
		return nil, fmt.Errorf("%w: bookingID must be positive", ErrInvalidInput)
	}
	if strings.TrimSpace(req.RequesterMobile) == "" {
		return nil, fmt.Errorf("%w: requesterMobile is required", ErrInvalidInput)
	}

	now := uc.timeProvider.Now()
	var cancelled *domain.Booking

	// 2. Read-modify-write в транзакции
	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 2.1. Получаем бронирование с блокировкой строки
		booking, err := uc.bookingRepo.GetByID(txCtx, req.BookingID)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				uc.logger.Warn("CancelBooking: booking id=%d not found", req.BookingID)
				return ErrBookingNotFound
			}
			if bookingRepo.IsConcurrentWriteConflict(err) {
				// Строку изменила конкурентная транзакция; единственная мутация бронирования это отмена
				uc.logger.Warn("CancelBooking: booking id=%d is being cancelled concurrently: %v", req.BookingID, err)
				return domain.ErrBookingAlreadyCancelled
			}
			uc.logger.Error("CancelBooking: failed to get booking id=%d: %v", req.BookingID, err)
			return fmt.Errorf("%w: failed to get booking: %v", ErrInternal, err)
		}

		// 2.2. Владелец проверяется до времени
		if !booking.IsOwnedBy(req.RequesterMobile) {
			uc.logger.Warn("CancelBooking: requester=%s is not owner of booking id=%d", req.RequesterMobile, booking.ID)
			return ErrNotBookingOwner
		}

		// 2.3. Статус и окно отмены
		if err := uc.policy.Check(booking, now); err != nil {
			uc.logger.Warn("CancelBooking: booking id=%d cannot be cancelled: %v", booking.ID, err)
			return err
		}

		// 2.4. Условное обновление BOOKED -> CANCELLED
		if err := uc.bookingRepo.CancelIfBooked(txCtx, booking.ID); err != nil {
			if errors.Is(err, bookingRepo.ErrCannotCancel) || bookingRepo.IsConcurrentWriteConflict(err) {
				uc.logger.Warn("CancelBooking: booking id=%d was cancelled concurrently", booking.ID)
				return domain.ErrBookingAlreadyCancelled
			}
			uc.logger.Error("CancelBooking: failed to cancel booking id=%d: %v", booking.ID, err)
			return fmt.Errorf("%w: failed to cancel booking: %v", ErrInternal, err)
		}

		booking.Status = domain.StatusCancelled
		booking.CancelledAt = &now
		cancelled = booking
		return nil
	})

	if err != nil {
		if bookingRepo.IsConcurrentWriteConflict(err) {
			// Сбой сериализации: конкурентная транзакция изменила ту же строку
			return nil, domain.ErrBookingAlreadyCancelled
		}
		return nil, err
	}

	uc.logger.Info("CancelBooking: successfully cancelled booking id=%d", cancelled.ID)

	// 3. Публикуем событие после фиксации
	if err := uc.publisher.PublishJSON(ctx, domain.EventBookingCancelled, domain.NewBookingEvent(cancelled, now)); err != nil {
		uc.logger.Error("CancelBooking: failed to publish event for booking id=%d: %v", cancelled.ID, err)
	}

	return &Response{
		BookingID: cancelled.ID,
		Status:    string(cancelled.Status),
		Message:   MsgCancelled,
	}, nil
}

// outcomeOf классифицирует результат для метрики
func outcomeOf(err error) string {
	switch {
	case err == nil:
		return metrics.OutcomeSuccess
	case errors.Is(err, domain.ErrNotFound),
		errors.Is(err, domain.ErrForbidden),
		errors.Is(err, domain.ErrInvalidState),
		errors.Is(err, domain.ErrValidation):
		return metrics.OutcomeRejected
	default:
		return metrics.OutcomeError
	}
}
