package assign_room

import (
	"net/http"

	"github.com/m04kA/SMC-RoomBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-RoomBookingService/internal/api/middleware"
)

const (
	msgInvalidRequestBody = "invalid request body"
	msgValidationFailed   = "request validation failed"
)

// Handler manual assignment
type Handler struct {
	useCase AssignRoomUseCase
	logger  Logger
	errOpts handlers.ErrorOptions
}

func NewHandler(useCase AssignRoomUseCase, logger Logger, debug bool) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
		errOpts: handlers.ErrorOptions{Debug: debug, ConflictStatus: http.StatusConflict},
	}
}

// Handle POST /api/v1/assignments/assign
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req AssignRoomRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /assignments/assign - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	if fields := handlers.Validate(&req); fields != nil {
		h.logger.Warn("POST /assignments/assign - Validation failed: %v", fields)
		handlers.RespondValidationErrors(w, msgValidationFailed, fields)
		return
	}

	result, err := h.useCase.Assign(r.Context(), req.ToUseCaseRequest(middleware.StaffIDPtr(r.Context())))
	if err != nil {
		if handlers.IsInternal(err) {
			h.logger.Error("POST /assignments/assign - Failed to assign room: booking_id=%d, room_id=%d, error=%v",
				req.BookingID, req.RoomID, err)
		} else {
			h.logger.Warn("POST /assignments/assign - Assignment rejected: booking_id=%d, room_id=%d, error=%v",
				req.BookingID, req.RoomID, err)
		}
		handlers.RespondDomainError(w, err, h.errOpts)
		return
	}

	h.logger.Info("POST /assignments/assign - Room assigned: booking_id=%d, room=%s, changed=%t",
		result.BookingID, result.RoomNumber, result.Changed)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}

// AutoHandler automatic assignment of a single booking
type AutoHandler struct {
	useCase AssignRoomUseCase
	logger  Logger
	errOpts handlers.ErrorOptions
}

func NewAutoHandler(useCase AssignRoomUseCase, logger Logger, debug bool) *AutoHandler {
	return &AutoHandler{
		useCase: useCase,
		logger:  logger,
		errOpts: handlers.ErrorOptions{Debug: debug, ConflictStatus: http.StatusConflict},
	}
}

// Handle POST /api/v1/assignments/auto-assign
func (h *AutoHandler) Handle(w http.ResponseWriter, r *http.Request) {
	var req AutoAssignRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /assignments/auto-assign - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	if fields := handlers.Validate(&req); fields != nil {
		h.logger.Warn("POST /assignments/auto-assign - Validation failed: %v", fields)
		handlers.RespondValidationErrors(w, msgValidationFailed, fields)
		return
	}

	result, err := h.useCase.AutoAssign(r.Context(), req.ToUseCaseRequest(middleware.StaffIDPtr(r.Context())))
	if err != nil {
		if handlers.IsInternal(err) {
			h.logger.Error("POST /assignments/auto-assign - Failed to assign room: booking_id=%d, error=%v", req.BookingID, err)
		} else {
			h.logger.Warn("POST /assignments/auto-assign - Assignment rejected: booking_id=%d, error=%v", req.BookingID, err)
		}
		handlers.RespondDomainError(w, err, h.errOpts)
		return
	}

	h.logger.Info("POST /assignments/auto-assign - Room assigned: booking_id=%d, room=%s, changed=%t",
		result.BookingID, result.RoomNumber, result.Changed)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
