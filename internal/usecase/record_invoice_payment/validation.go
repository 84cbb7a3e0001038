package record_invoice_payment

import (
	"fmt"
	"strings"
)

func validateRequest(req *Request) error {
	if req.InvoiceID <= 0 {
		return fmt.Errorf("%w: invoiceId must be positive", ErrInvalidInput)
	}
	if req.Amount <= 0 {
		return fmt.Errorf("%w: amount must be positive", ErrInvalidInput)
	}
	method := strings.TrimSpace(req.Method)
	if method == "" {
		return fmt.Errorf("%w: paymentMethod is required", ErrInvalidInput)
	}
	if len(method) > maxMethodLength {
		return fmt.Errorf("%w: paymentMethod exceeds %d characters", ErrInvalidInput, maxMethodLength)
	}
	return nil
}
