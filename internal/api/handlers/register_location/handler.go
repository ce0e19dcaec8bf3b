package register_location

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-CourtBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-CourtBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-CourtBookingService/internal/service/catalog"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingMobile      = "отсутствует номер телефона пользователя"
	msgUserNotRegistered  = "пользователь не зарегистрирован"
	msgNotAdmin           = "доступно только администраторам"
	msgLimitReached       = "достигнут лимит локаций администратора"
	msgInvalidCourtCount  = "недопустимое количество кортов"
	msgAlreadyExists      = "локация с таким названием уже существует"
	msgInvalidInput       = "некорректные данные локации"
	msgRetry              = "конкурентное изменение, повторите запрос"
)

type Handler struct {
	service CatalogService
	logger  Logger
}

func NewHandler(service CatalogService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/admin/locations
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	mobile, ok := middleware.GetMobile(r.Context())
	if !ok {
		h.logger.Warn("POST /admin/locations - Missing mobile number")
		handlers.RespondUnauthorized(w, msgMissingMobile)
		return
	}

	var req RegisterLocationRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /admin/locations - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	location, err := h.service.RegisterLocation(r.Context(), req.ToServiceRequest(mobile))
	if err != nil {
		switch {
		case errors.Is(err, catalog.ErrUserNotRegistered):
			h.logger.Warn("POST /admin/locations - User not registered: mobile=%s", mobile)
			handlers.RespondNotFound(w, msgUserNotRegistered)

		case errors.Is(err, catalog.ErrNotAdmin):
			h.logger.Warn("POST /admin/locations - Not an admin: mobile=%s", mobile)
			handlers.RespondForbidden(w, msgNotAdmin)

		case errors.Is(err, catalog.ErrLocationLimitReached):
			h.logger.Warn("POST /admin/locations - Location limit reached: mobile=%s", mobile)
			handlers.RespondBadRequest(w, msgLimitReached)

		case errors.Is(err, catalog.ErrInvalidCourtCount):
			h.logger.Warn("POST /admin/locations - Invalid court count: %d", req.CourtCount)
			handlers.RespondBadRequest(w, msgInvalidCourtCount)

		case errors.Is(err, catalog.ErrLocationAlreadyExists):
			h.logger.Warn("POST /admin/locations - Location already exists: name=%s, mobile=%s", req.Name, mobile)
			handlers.RespondConflict(w, msgAlreadyExists)

		case errors.Is(err, catalog.ErrConcurrentModification):
			h.logger.Warn("POST /admin/locations - Concurrent modification: mobile=%s, error=%v", mobile, err)
			handlers.RespondConflict(w, msgRetry)

		case errors.Is(err, catalog.ErrInvalidInput):
			h.logger.Warn("POST /admin/locations - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /admin/locations - Failed to register location: mobile=%s, error=%v", mobile, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /admin/locations - Location registered: location_id=%d, courts=%d, mobile=%s",
		location.ID, len(location.Courts), mobile)
	handlers.RespondJSON(w, http.StatusCreated, location)
}
