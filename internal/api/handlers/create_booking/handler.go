package create_booking

import (
	"net/http"

	"github.com/m04kA/SMC-RoomBookingService/internal/api/handlers"
)

const (
	msgInvalidRequestBody = "invalid request body"
	msgValidationFailed   = "request validation failed"
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
	errOpts handlers.ErrorOptions
}

func NewHandler(useCase CreateBookingUseCase, logger Logger, debug bool) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
		errOpts: handlers.ErrorOptions{Debug: debug},
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	if fields := handlers.Validate(&req); fields != nil {
		h.logger.Warn("POST /bookings - Validation failed: %v", fields)
		handlers.RespondValidationErrors(w, msgValidationFailed, fields)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest())
	if err != nil {
		if handlers.IsInternal(err) {
			h.logger.Error("POST /bookings - Failed to create booking: category_id=%d, error=%v", req.CategoryID, err)
		} else {
			h.logger.Warn("POST /bookings - Booking rejected: category_id=%d, check_in=%s, check_out=%s, error=%v",
				req.CategoryID, req.CheckIn, req.CheckOut, err)
		}
		handlers.RespondDomainError(w, err, h.errOpts)
		return
	}

	h.logger.Info("POST /bookings - Booking created successfully: booking_id=%d, reference=%s, category_id=%d",
		result.BookingID, result.Reference, result.CategoryID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
