package create_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-CourtBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-CourtBookingService/internal/api/middleware"
	createBooking "github.com/m04kA/SMC-CourtBookingService/internal/usecase/create_booking"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDate        = "некорректный формат даты бронирования, ожидается YYYY-MM-DD"
	msgMissingMobile      = "отсутствует номер телефона пользователя"
	msgSlotAlreadyBooked  = "выбранный слот уже забронирован"
	msgUserNotRegistered  = "пользователь не зарегистрирован"
	msgLocationNotFound   = "локация не найдена"
	msgCourtNotFound      = "корт не найден"
	msgSlotNotFound       = "временной слот не найден"
	msgSlotInPast         = "нельзя забронировать слот в прошлом"
	msgInvalidInput       = "некорректные параметры бронирования"
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	mobile, ok := middleware.GetMobile(r.Context())
	if !ok {
		h.logger.Warn("POST /bookings - Missing mobile number")
		handlers.RespondUnauthorized(w, msgMissingMobile)
		return
	}

	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(mobile)
	if err != nil {
		h.logger.Warn("POST /bookings - Invalid booking date %q: %v", req.BookingDate, err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createBooking.ErrSlotAlreadyBooked):
			h.logger.Warn("POST /bookings - Slot already booked: court_id=%d, slot_id=%d, date=%s",
				req.CourtID, req.SlotID, req.BookingDate)
			handlers.RespondConflict(w, msgSlotAlreadyBooked)

		case errors.Is(err, createBooking.ErrUserNotRegistered):
			h.logger.Warn("POST /bookings - User not registered: mobile=%s", mobile)
			handlers.RespondNotFound(w, msgUserNotRegistered)

		case errors.Is(err, createBooking.ErrLocationNotFound):
			h.logger.Warn("POST /bookings - Location not found: location_id=%d", req.LocationID)
			handlers.RespondNotFound(w, msgLocationNotFound)

		case errors.Is(err, createBooking.ErrCourtNotFound):
			h.logger.Warn("POST /bookings - Court not found: location_id=%d, court_id=%d", req.LocationID, req.CourtID)
			handlers.RespondNotFound(w, msgCourtNotFound)

		case errors.Is(err, createBooking.ErrSlotNotFound):
			h.logger.Warn("POST /bookings - Slot not found: slot_id=%d", req.SlotID)
			handlers.RespondNotFound(w, msgSlotNotFound)

		case errors.Is(err, createBooking.ErrSlotInPast):
			h.logger.Warn("POST /bookings - Slot in the past: slot_id=%d, date=%s", req.SlotID, req.BookingDate)
			handlers.RespondBadRequest(w, msgSlotInPast)

		case errors.Is(err, createBooking.ErrInvalidInput):
			h.logger.Warn("POST /bookings - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /bookings - Failed to create booking: mobile=%s, court_id=%d, error=%v",
				mobile, req.CourtID, err)
			handlers.RespondDomainError(w, err, msgInvalidInput)
		}
		return
	}

	h.logger.Info("POST /bookings - Booking created successfully: booking_id=%d, mobile=%s, court_id=%d",
		result.ID, mobile, req.CourtID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
