package confirm_payment

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
	useCase ConfirmPaymentUseCase
	logger  Logger
	errOpts handlers.ErrorOptions
}

func NewHandler(useCase ConfirmPaymentUseCase, logger Logger, debug bool) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
		errOpts: handlers.ErrorOptions{Debug: debug},
	}
}

// Handle POST /api/v1/bookings/{bookingId}/payment
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	bookingID, err := handlers.PathID(r, "bookingId")
	if err != nil {
		h.logger.Warn("POST /bookings/{id}/payment - Invalid booking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	var req ConfirmPaymentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings/{id}/payment - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	if fields := handlers.Validate(&req); fields != nil {
		h.logger.Warn("POST /bookings/{id}/payment - Validation failed: booking_id=%d, %v", bookingID, fields)
		handlers.RespondValidationErrors(w, msgValidationFailed, fields)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(bookingID))
	if err != nil {
		if handlers.IsInternal(err) {
			h.logger.Error("POST /bookings/{id}/payment - Failed to confirm payment: booking_id=%d, transaction_id=%d, error=%v",
				bookingID, req.TransactionID, err)
		} else {
			h.logger.Warn("POST /bookings/{id}/payment - Payment rejected: booking_id=%d, transaction_id=%d, error=%v",
				bookingID, req.TransactionID, err)
		}
		handlers.RespondDomainError(w, err, h.errOpts)
		return
	}

	h.logger.Info("POST /bookings/{id}/payment - Payment confirmed: booking_id=%d, transaction_id=%d",
		bookingID, result.TransactionID)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
