package cancel_booking

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-CourtBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-CourtBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-CourtBookingService/internal/domain"
	cancelBooking "github.com/m04kA/SMC-CourtBookingService/internal/usecase/cancel_booking"
)

const (
	msgInvalidBookingID = "некорректный ID бронирования"
	msgMissingMobile    = "отсутствует номер телефона пользователя"
	msgNotFound         = "бронирование не найдено"
	msgForbidden        = "можно отменить только своё бронирование"
	msgAlreadyCancelled = "бронирование уже отменено"
	msgAlreadyStarted   = "бронирование уже началось"
	msgWindowClosed     = "окно отмены бронирования закрыто"
	msgCannotCancel     = "бронирование не может быть отменено"
)

type Handler struct {
	useCase CancelBookingUseCase
	logger  Logger
}

func NewHandler(useCase CancelBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings/{bookingId}/cancel
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Извлекаем bookingId из URL
	bookingID, err := strconv.ParseInt(mux.Vars(r)["bookingId"], 10, 64)
	if err != nil {
		h.logger.Warn("POST /bookings/{id}/cancel - Invalid booking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	mobile, ok := middleware.GetMobile(r.Context())
	if !ok {
		h.logger.Warn("POST /bookings/{id}/cancel - Missing mobile number")
		handlers.RespondUnauthorized(w, msgMissingMobile)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &cancelBooking.Request{
		BookingID:       bookingID,
		RequesterMobile: mobile,
	})
	if err != nil {
		switch {
		case errors.Is(err, cancelBooking.ErrBookingNotFound):
			h.logger.Warn("POST /bookings/{id}/cancel - Booking not found: booking_id=%d", bookingID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, cancelBooking.ErrNotBookingOwner):
			h.logger.Warn("POST /bookings/{id}/cancel - Not owner: booking_id=%d, mobile=%s", bookingID, mobile)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, domain.ErrBookingAlreadyCancelled):
			h.logger.Warn("POST /bookings/{id}/cancel - Already cancelled: booking_id=%d", bookingID)
			handlers.RespondUnprocessable(w, msgAlreadyCancelled)

		case errors.Is(err, domain.ErrBookingAlreadyStarted):
			h.logger.Warn("POST /bookings/{id}/cancel - Already started: booking_id=%d", bookingID)
			handlers.RespondUnprocessable(w, msgAlreadyStarted)

		case errors.Is(err, domain.ErrCancellationWindowClosed):
			h.logger.Warn("POST /bookings/{id}/cancel - Cancellation window closed: booking_id=%d", bookingID)
			handlers.RespondUnprocessable(w, msgWindowClosed)

		default:
			h.logger.Error("POST /bookings/{id}/cancel - Failed to cancel booking: booking_id=%d, error=%v", bookingID, err)
			handlers.RespondDomainError(w, err, msgCannotCancel)
		}
		return
	}

	h.logger.Info("POST /bookings/{id}/cancel - Booking cancelled successfully: booking_id=%d, mobile=%s", bookingID, mobile)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
