package bulk_auto_assign

import (
	"net/http"

	"github.com/m04kA/SMC-RoomBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-RoomBookingService/internal/api/middleware"
)

const (
	msgInvalidRequestBody = "invalid request body"
	msgValidationFailed   = "request validation failed"
)

type Handler struct {
	useCase BulkAssignUseCase
	logger  Logger
	errOpts handlers.ErrorOptions
}

func NewHandler(useCase BulkAssignUseCase, logger Logger, debug bool) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
		errOpts: handlers.ErrorOptions{Debug: debug},
	}
}

// Handle POST /api/v1/assignments/bulk-auto-assign
// Per-booking failures are reported in the body; the status stays 200.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req BulkAutoAssignRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /assignments/bulk-auto-assign - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	if fields := handlers.Validate(&req); fields != nil {
		h.logger.Warn("POST /assignments/bulk-auto-assign - Validation failed: %v", fields)
		handlers.RespondValidationErrors(w, msgValidationFailed, fields)
		return
	}

	result, err := h.useCase.BulkAutoAssign(r.Context(), req.ToUseCaseRequest(middleware.StaffIDPtr(r.Context())))
	if err != nil {
		if handlers.IsInternal(err) {
			h.logger.Error("POST /assignments/bulk-auto-assign - Failed: bookings=%d, error=%v", len(req.BookingIDs), err)
		} else {
			h.logger.Warn("POST /assignments/bulk-auto-assign - Rejected: %v", err)
		}
		handlers.RespondDomainError(w, err, h.errOpts)
		return
	}

	h.logger.Info("POST /assignments/bulk-auto-assign - Done: assigned=%d, failed=%d", result.Assigned, result.Failed)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
