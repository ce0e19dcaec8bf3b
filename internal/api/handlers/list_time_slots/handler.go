package list_time_slots

import (
	"net/http"

	"github.com/m04kA/SMC-CourtBookingService/internal/api/handlers"
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

// Handle GET /api/v1/time-slots
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	slots, err := h.service.ListTimeSlots(r.Context())
	if err != nil {
		h.logger.Error("GET /time-slots - Failed to list time slots: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /time-slots - Time slots retrieved: count=%d", len(slots))
	handlers.RespondJSON(w, http.StatusOK, slots)
}
