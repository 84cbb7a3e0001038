package list_category_rooms

import (
	"net/http"

	"github.com/m04kA/SMC-RoomBookingService/internal/api/handlers"
)

const msgInvalidCategoryID = "invalid category id"

type Handler struct {
	service CatalogService
	logger  Logger
	errOpts handlers.ErrorOptions
}

func NewHandler(service CatalogService, logger Logger, debug bool) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
		errOpts: handlers.ErrorOptions{Debug: debug},
	}
}

// Handle GET /api/v1/room-categories/{categoryId}/rooms
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	categoryID, err := handlers.PathID(r, "categoryId")
	if err != nil {
		h.logger.Warn("GET /room-categories/{id}/rooms - Invalid category ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidCategoryID)
		return
	}

	result, err := h.service.ListRooms(r.Context(), categoryID)
	if err != nil {
		if handlers.IsInternal(err) {
			h.logger.Error("GET /room-categories/{id}/rooms - Failed to list rooms: category_id=%d, error=%v", categoryID, err)
		} else {
			h.logger.Warn("GET /room-categories/{id}/rooms - Category not found: category_id=%d", categoryID)
		}
		handlers.RespondDomainError(w, err, h.errOpts)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
