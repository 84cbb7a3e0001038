package check_in

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

// Handle POST /api/v1/bookings/{bookingId}/check-in
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	bookingID, err := handlers.PathID(r, "bookingId")
	if err != nil {
		h.logger.Warn("POST /bookings/{id}/check-in - Invalid booking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	result, err := h.service.CheckIn(r.Context(), bookingID)
	if err != nil {
		if handlers.IsInternal(err) {
			h.logger.Error("POST /bookings/{id}/check-in - Failed: booking_id=%d, error=%v", bookingID, err)
		} else {
			h.logger.Warn("POST /bookings/{id}/check-in - Rejected: booking_id=%d, error=%v", bookingID, err)
		}
		handlers.RespondDomainError(w, err, h.errOpts)
		return
	}

	h.logger.Info("POST /bookings/{id}/check-in - Booking checked in: booking_id=%d, status=%s", bookingID, result.Status)
	handlers.RespondJSON(w, http.StatusOK, result)
}
