package get_user_bookings

import (
	"net/http"

	"github.com/m04kA/SMC-CourtBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-CourtBookingService/internal/api/middleware"
)

const (
	msgMissingMobile = "отсутствует номер телефона пользователя"
	msgInvalidMobile = "некорректный номер телефона"
)

type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/users/me/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	mobile, ok := middleware.GetMobile(r.Context())
	if !ok {
		h.logger.Warn("GET /users/me/bookings - Missing mobile number")
		handlers.RespondUnauthorized(w, msgMissingMobile)
		return
	}

	result, err := h.service.GetUserBookings(r.Context(), mobile)
	if err != nil {
		h.logger.Error("GET /users/me/bookings - Failed to get bookings: mobile=%s, error=%v", mobile, err)
		handlers.RespondDomainError(w, err, msgInvalidMobile)
		return
	}

	h.logger.Info("GET /users/me/bookings - Bookings retrieved successfully: mobile=%s, count=%d",
		mobile, result.Total)
	handlers.RespondJSON(w, http.StatusOK, result)
}
