package delete_location

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-CourtBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-CourtBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-CourtBookingService/internal/service/catalog"
)

const (
	msgInvalidLocationID = "некорректный ID локации"
	msgMissingMobile     = "отсутствует номер телефона пользователя"
	msgNotFound          = "локация не найдена"
	msgForbidden         = "локация принадлежит другому администратору"
	msgHasBookings       = "нельзя удалить локацию с бронированиями"
	msgRetry             = "конкурентное изменение, повторите запрос"
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

// Handle DELETE /api/v1/admin/locations/{locationId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	locationID, err := strconv.ParseInt(mux.Vars(r)["locationId"], 10, 64)
	if err != nil {
		h.logger.Warn("DELETE /admin/locations/{id} - Invalid location ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidLocationID)
		return
	}

	mobile, ok := middleware.GetMobile(r.Context())
	if !ok {
		h.logger.Warn("DELETE /admin/locations/{id} - Missing mobile number")
		handlers.RespondUnauthorized(w, msgMissingMobile)
		return
	}

	if err := h.service.DeleteLocation(r.Context(), locationID, mobile); err != nil {
		switch {
		case errors.Is(err, catalog.ErrLocationNotFound):
			h.logger.Warn("DELETE /admin/locations/{id} - Location not found: location_id=%d", locationID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, catalog.ErrNotLocationOwner):
			h.logger.Warn("DELETE /admin/locations/{id} - Not owner: location_id=%d, mobile=%s", locationID, mobile)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, catalog.ErrLocationHasBookings):
			h.logger.Warn("DELETE /admin/locations/{id} - Location has bookings: location_id=%d", locationID)
			handlers.RespondUnprocessable(w, msgHasBookings)

		case errors.Is(err, catalog.ErrConcurrentModification):
			h.logger.Warn("DELETE /admin/locations/{id} - Concurrent modification: location_id=%d, error=%v", locationID, err)
			handlers.RespondConflict(w, msgRetry)

		default:
			h.logger.Error("DELETE /admin/locations/{id} - Failed to delete location: location_id=%d, error=%v", locationID, err)
			handlers.RespondDomainError(w, err, msgInvalidLocationID)
		}
		return
	}

	h.logger.Info("DELETE /admin/locations/{id} - Location deleted: location_id=%d, mobile=%s", locationID, mobile)
	w.WriteHeader(http.StatusNoContent)
}
