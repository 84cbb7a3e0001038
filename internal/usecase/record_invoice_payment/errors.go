package record_invoice_payment

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
)

var (
	// ErrInvalidInput malformed request
	ErrInvalidInput = fmt.Errorf("%w: record_invoice_payment: invalid input data", domain.ErrValidation)

	// ErrInvoiceNotFound invoice does not exist
	ErrInvoiceNotFound = fmt.Errorf("%w: record_invoice_payment: invoice not found", domain.ErrNotFound)

	// ErrAlreadyPaid nothing is due on the invoice
	ErrAlreadyPaid = fmt.Errorf("%w: record_invoice_payment: invoice is already paid", domain.ErrConflict)

	// ErrBookingCancelled the invoiced booking was cancelled
	ErrBookingCancelled = fmt.Errorf("%w: record_invoice_payment: booking is cancelled", domain.ErrState)

	// ErrInternal persistence failure
	ErrInternal = errors.New("record_invoice_payment: internal error")
)
