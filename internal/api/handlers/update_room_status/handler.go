package update_room_status

import (
	"net/http"

	"github.com/m04kA/SMC-RoomBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-RoomBookingService/internal/service/catalog/models"
)

const (
	msgInvalidRoomID      = "invalid room id"
	msgInvalidRequestBody = "invalid request body"
	msgValidationFailed   = "request validation failed"
)

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

// Handle PATCH /api/v1/rooms/{roomId}/status
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	roomID, err := handlers.PathID(r, "roomId")
	if err != nil {
		h.logger.Warn("PATCH /rooms/{id}/status - Invalid room ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRoomID)
		return
	}

	var req models.UpdateRoomStatusRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /rooms/{id}/status - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	if fields := handlers.Validate(&req); fields != nil {
		h.logger.Warn("PATCH /rooms/{id}/status - Validation failed: room_id=%d, %v", roomID, fields)
		handlers.RespondValidationErrors(w, msgValidationFailed, fields)
		return
	}

	room, err := h.service.UpdateRoomStatus(r.Context(), roomID, &req)
	if err != nil {
		if handlers.IsInternal(err) {
			h.logger.Error("PATCH /rooms/{id}/status - Failed to update room: room_id=%d, error=%v", roomID, err)
		} else {
			h.logger.Warn("PATCH /rooms/{id}/status - Rejected: room_id=%d, error=%v", roomID, err)
		}
		handlers.RespondDomainError(w, err, h.errOpts)
		return
	}

	h.logger.Info("PATCH /rooms/{id}/status - Room status updated: room_id=%d, status=%s", roomID, room.Status)
	handlers.RespondJSON(w, http.StatusOK, room)
}
