package list_bookings

import (
	"net/http"
	"strings"

	"github.com/m04kA/SMC-RoomBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-RoomBookingService/internal/service/bookings/models"
)

const msgInvalidQuery = "invalid query parameters"

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

// Handle GET /api/v1/bookings?status=&categoryId=&from=&to=&search=&limit=&offset=
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	req, err := parseQuery(r)
	if err != nil {
		h.logger.Warn("GET /bookings - Invalid query: %v", err)
		handlers.RespondBadRequest(w, msgInvalidQuery)
		return
	}

	result, err := h.service.List(r.Context(), req)
	if err != nil {
		if handlers.IsInternal(err) {
			h.logger.Error("GET /bookings - Failed to list bookings: error=%v", err)
		} else {
			h.logger.Warn("GET /bookings - Invalid filter: %v", err)
		}
		handlers.RespondDomainError(w, err, h.errOpts)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

func parseQuery(r *http.Request) (*models.ListBookingsRequest, error) {
	req := &models.ListBookingsRequest{
		Status: handlers.QueryString(r, "status"),
		Search: strings.TrimSpace(r.URL.Query().Get("search")),
	}

	var err error
	if req.CategoryID, err = handlers.QueryInt64(r, "categoryId"); err != nil {
		return nil, err
	}
	if req.From, err = handlers.QueryDate(r, "from"); err != nil {
		return nil, err
	}
	if req.To, err = handlers.QueryDate(r, "to"); err != nil {
		return nil, err
	}
	if req.Limit, err = handlers.QueryInt(r, "limit", 0); err != nil {
		return nil, err
	}
	if req.Offset, err = handlers.QueryInt(r, "offset", 0); err != nil {
		return nil, err
	}
	return req, nil
}
