package get_booking_assignments

import (
	"net/http"

	"github.com/m04kA/SMC-RoomBookingService/internal/api/handlers"
)

const msgInvalidBookingID = "invalid booking id"

type Handler struct {
	service BookingService
	logger  Logger
	errOpts handlers.ErrorOptions
}

func NewHandler(service BookingService, logger Logger, debug bool) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
		errOpts: handlers.ErrorOptions{Debug: debug},
	}
}

// Handle GET /api/v1/bookings/{bookingId}/assignments
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	bookingID, err := handlers.PathID(r, "bookingId")
	if err != nil {
		h.logger.Warn("GET /bookings/{id}/assignments - Invalid booking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	result, err := h.service.ListAssignments(r.Context(), bookingID)
	if err != nil {
		if handlers.IsInternal(err) {
			h.logger.Error("GET /bookings/{id}/assignments - Failed to list assignments: booking_id=%d, error=%v", bookingID, err)
		} else {
			h.logger.Warn("GET /bookings/{id}/assignments - Booking not found: booking_id=%d", bookingID)
		}
		handlers.RespondDomainError(w, err, h.errOpts)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
