package get_admin_dashboard

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-CourtBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-CourtBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-CourtBookingService/internal/service/bookings"
)

const (
	msgMissingMobile     = "отсутствует номер телефона пользователя"
	msgUserNotRegistered = "пользователь не зарегистрирован"
	msgNotAdmin          = "доступно только администраторам"
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

// Handle GET /api/v1/admin/dashboard
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	mobile, ok := middleware.GetMobile(r.Context())
	if !ok {
		h.logger.Warn("GET /admin/dashboard - Missing mobile number")
		handlers.RespondUnauthorized(w, msgMissingMobile)
		return
	}

	result, err := h.service.GetAdminDashboard(r.Context(), mobile)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrUserNotRegistered):
			h.logger.Warn("GET /admin/dashboard - User not registered: mobile=%s", mobile)
			handlers.RespondNotFound(w, msgUserNotRegistered)

		case errors.Is(err, bookings.ErrNotAdmin):
			h.logger.Warn("GET /admin/dashboard - Not an admin: mobile=%s", mobile)
			handlers.RespondForbidden(w, msgNotAdmin)

		default:
			h.logger.Error("GET /admin/dashboard - Failed to build dashboard: mobile=%s, error=%v", mobile, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /admin/dashboard - Dashboard retrieved: mobile=%s, locations=%d, bookings=%d",
		mobile, len(result.Locations), result.TotalBookings)
	handlers.RespondJSON(w, http.StatusOK, result)
}
