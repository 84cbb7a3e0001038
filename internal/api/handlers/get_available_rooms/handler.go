package get_available_rooms

import (
	"net/http"

	"github.com/m04kA/SMC-RoomBookingService/internal/api/handlers"
)

const msgInvalidQuery = "invalid query parameters"

type Handler struct {
	useCase AvailableRoomsUseCase
	logger  Logger
	errOpts handlers.ErrorOptions
}

func NewHandler(useCase AvailableRoomsUseCase, logger Logger, debug bool) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
		errOpts: handlers.ErrorOptions{Debug: debug},
	}
}

// Handle GET /api/v1/assignments/available-rooms
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	req, err := ParseRequest(r)
	if err != nil {
		h.logger.Warn("GET /assignments/available-rooms - Invalid query: %v", err)
		handlers.RespondBadRequest(w, msgInvalidQuery)
		return
	}

	result, err := h.useCase.AvailableRooms(r.Context(), req)
	if err != nil {
		if handlers.IsInternal(err) {
			h.logger.Error("GET /assignments/available-rooms - Failed to list rooms: error=%v", err)
		} else {
			h.logger.Warn("GET /assignments/available-rooms - Rejected: %v", err)
		}
		handlers.RespondDomainError(w, err, h.errOpts)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
