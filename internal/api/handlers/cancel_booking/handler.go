package cancel_booking

import (
	"net/http"

	"github.com/m04kA/SMC-RoomBookingService/internal/api/handlers"
)

const (
	msgInvalidBookingID   = "invalid booking id"
	msgInvalidRequestBody = "invalid request body"
	msgValidationFailed   = "request validation failed"
)

type Handler struct {
	useCase CancelBookingUseCase
	logger  Logger
	errOpts handlers.ErrorOptions
}

func NewHandler(useCase CancelBookingUseCase, logger Logger, debug bool) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
		errOpts: handlers.ErrorOptions{Debug: debug},
	}
}

// Handle PATCH /api/v1/bookings/{bookingId}/cancel
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	bookingID, err := handlers.PathID(r, "bookingId")
	if err != nil {
		h.logger.Warn("PATCH /bookings/{id}/cancel - Invalid booking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	var req CancelBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /bookings/{id}/cancel - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	if fields := handlers.Validate(&req); fields != nil {
		h.logger.Warn("PATCH /bookings/{id}/cancel - Validation failed: booking_id=%d, %v", bookingID, fields)
		handlers.RespondValidationErrors(w, msgValidationFailed, fields)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(bookingID))
	if err != nil {
		if handlers.IsInternal(err) {
			h.logger.Error("PATCH /bookings/{id}/cancel - Failed to cancel booking: booking_id=%d, error=%v", bookingID, err)
		} else {
			h.logger.Warn("PATCH /bookings/{id}/cancel - Cannot cancel: booking_id=%d, error=%v", bookingID, err)
		}
		handlers.RespondDomainError(w, err, h.errOpts)
		return
	}

	h.logger.Info("PATCH /bookings/{id}/cancel - Booking cancelled successfully: booking_id=%d, refunded=%d",
		bookingID, result.RefundedTransactions)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
