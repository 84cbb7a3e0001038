package record_invoice_payment

import (
	"net/http"

	"github.com/m04kA/SMC-RoomBookingService/internal/api/handlers"
)

const (
	msgInvalidInvoiceID   = "invalid invoice id"
	msgInvalidRequestBody = "invalid request body"
	msgValidationFailed   = "request validation failed"
)

type Handler struct {
	useCase RecordPaymentUseCase
	logger  Logger
	errOpts handlers.ErrorOptions
}

func NewHandler(useCase RecordPaymentUseCase, logger Logger, debug bool) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
		errOpts: handlers.ErrorOptions{Debug: debug},
	}
}

// Handle POST /api/v1/invoices/{invoiceId}/payment
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	invoiceID, err := handlers.PathID(r, "invoiceId")
	if err != nil {
		h.logger.Warn("POST /invoices/{id}/payment - Invalid invoice ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidInvoiceID)
		return
	}

	var req RecordPaymentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /invoices/{id}/payment - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	if fields := handlers.Validate(&req); fields != nil {
		h.logger.Warn("POST /invoices/{id}/payment - Validation failed: invoice_id=%d, %v", invoiceID, fields)
		handlers.RespondValidationErrors(w, msgValidationFailed, fields)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(invoiceID))
	if err != nil {
		if handlers.IsInternal(err) {
			h.logger.Error("POST /invoices/{id}/payment - Failed to record payment: invoice_id=%d, error=%v", invoiceID, err)
		} else {
			h.logger.Warn("POST /invoices/{id}/payment - Rejected: invoice_id=%d, error=%v", invoiceID, err)
		}
		handlers.RespondDomainError(w, err, h.errOpts)
		return
	}

	h.logger.Info("POST /invoices/{id}/payment - Payment recorded: invoice_id=%d, amount=%s, balance=%s",
		invoiceID, result.Amount, result.BalanceDue)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
