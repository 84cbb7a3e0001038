package get_invoice

import (
	"net/http"

	"github.com/m04kA/SMC-RoomBookingService/internal/api/handlers"
)

const msgInvalidInvoiceID = "invalid invoice id"

type Handler struct {
	service InvoiceService
	logger  Logger
	errOpts handlers.ErrorOptions
}

func NewHandler(service InvoiceService, logger Logger, debug bool) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
		errOpts: handlers.ErrorOptions{Debug: debug},
	}
}

// Handle GET /api/v1/invoices/{invoiceId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	invoiceID, err := handlers.PathID(r, "invoiceId")
	if err != nil {
		h.logger.Warn("GET /invoices/{id} - Invalid invoice ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidInvoiceID)
		return
	}

	invoice, err := h.service.GetByID(r.Context(), invoiceID)
	if err != nil {
		if handlers.IsInternal(err) {
			h.logger.Error("GET /invoices/{id} - Failed to get invoice: invoice_id=%d, error=%v", invoiceID, err)
		} else {
			h.logger.Warn("GET /invoices/{id} - Invoice not found: invoice_id=%d", invoiceID)
		}
		handlers.RespondDomainError(w, err, h.errOpts)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, invoice)
}
