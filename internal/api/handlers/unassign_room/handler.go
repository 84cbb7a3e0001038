package unassign_room

import (
	"net/http"

	"github.com/m04kA/SMC-RoomBookingService/internal/api/handlers"
)

const (
	msgInvalidRequestBody = "invalid request body"
	msgValidationFailed   = "request validation failed"
)

type Handler struct {
	useCase UnassignUseCase
	logger  Logger
	errOpts handlers.ErrorOptions
}

func NewHandler(useCase UnassignUseCase, logger Logger, debug bool) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
		errOpts: handlers.ErrorOptions{Debug: debug},
	}
}

// Handle POST /api/v1/assignments/unassign
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req UnassignRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /assignments/unassign - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	if fields := handlers.Validate(&req); fields != nil {
		h.logger.Warn("POST /assignments/unassign - Validation failed: %v", fields)
		handlers.RespondValidationErrors(w, msgValidationFailed, fields)
		return
	}

	result, err := h.useCase.Unassign(r.Context(), req.ToUseCaseRequest())
	if err != nil {
		if handlers.IsInternal(err) {
			h.logger.Error("POST /assignments/unassign - Failed to unassign: booking_id=%d, error=%v", req.BookingID, err)
		} else {
			h.logger.Warn("POST /assignments/unassign - Rejected: booking_id=%d, error=%v", req.BookingID, err)
		}
		handlers.RespondDomainError(w, err, h.errOpts)
		return
	}

	h.logger.Info("POST /assignments/unassign - Room released: booking_id=%d, changed=%t", result.BookingID, result.Changed)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
