package get_booking_invoice

import (
	"net/http"

	"github.com/m04kA/SMC-RoomBookingService/internal/api/handlers"
)

const msgInvalidBookingID = "invalid booking id"

type Handler struct {
	service InvoiceService
	logger  Logger
	errOpts handlers.ErrorOptions
}

func NewHandler(service InvoiceService, logger Logger, debug bool) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
		errOpts: handlers.ErrorOptions{Debug: debug},
	}
}

// Handle GET /api/v1/bookings/{bookingId}/invoice
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	bookingID, err := handlers.PathID(r, "bookingId")
	if err != nil {
		h.logger.Warn("GET /bookings/{id}/invoice - Invalid booking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	invoice, err := h.service.GetByBooking(r.Context(), bookingID)
	if err != nil {
		if handlers.IsInternal(err) {
			h.logger.Error("GET /bookings/{id}/invoice - Failed to get invoice: booking_id=%d, error=%v", bookingID, err)
		} else {
			h.logger.Warn("GET /bookings/{id}/invoice - Invoice not found: booking_id=%d", bookingID)
		}
		handlers.RespondDomainError(w, err, h.errOpts)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, invoice)
}
