package generate_invoice

import (
	"net/http"

	"github.com/m04kA/SMC-RoomBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-RoomBookingService/internal/service/invoices/models"
)

const (
	msgInvalidBookingID   = "invalid booking id"
	msgInvalidRequestBody = "invalid request body"
	msgValidationFailed   = "request validation failed"
)

type Handler struct {
	useCase GenerateInvoiceUseCase
	logger  Logger
	errOpts handlers.ErrorOptions
}

func NewHandler(useCase GenerateInvoiceUseCase, logger Logger, debug bool) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
		errOpts: handlers.ErrorOptions{Debug: debug},
	}
}

// Handle POST /api/v1/invoices/generate/{bookingId}
// The body is optional; configured rates apply when omitted.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	bookingID, err := handlers.PathID(r, "bookingId")
	if err != nil {
		h.logger.Warn("POST /invoices/generate/{id} - Invalid booking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	var req GenerateInvoiceRequest
	if err := handlers.DecodeOptionalJSON(r, &req); err != nil {
		h.logger.Warn("POST /invoices/generate/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	if fields := handlers.Validate(&req); fields != nil {
		h.logger.Warn("POST /invoices/generate/{id} - Validation failed: booking_id=%d, %v", bookingID, fields)
		handlers.RespondValidationErrors(w, msgValidationFailed, fields)
		return
	}

	invoice, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(bookingID))
	if err != nil {
		if handlers.IsInternal(err) {
			h.logger.Error("POST /invoices/generate/{id} - Failed to generate invoice: booking_id=%d, error=%v", bookingID, err)
		} else {
			h.logger.Warn("POST /invoices/generate/{id} - Rejected: booking_id=%d, error=%v", bookingID, err)
		}
		handlers.RespondDomainError(w, err, h.errOpts)
		return
	}

	h.logger.Info("POST /invoices/generate/{id} - Invoice issued: booking_id=%d, number=%s, total=%s",
		bookingID, invoice.Number, invoice.Total)
	handlers.RespondJSON(w, http.StatusCreated, models.FromDomainInvoice(invoice))
}
