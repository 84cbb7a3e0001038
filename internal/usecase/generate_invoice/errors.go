package generate_invoice

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
)

var (
	// ErrInvalidInput malformed request
	ErrInvalidInput = fmt.Errorf("%w: generate_invoice: invalid input data", domain.ErrValidation)

	// ErrBookingNotFound booking does not exist
	ErrBookingNotFound = fmt.Errorf("%w: generate_invoice: booking not found", domain.ErrNotFound)

	// ErrBookingCancelled cancelled bookings are not invoiced
	ErrBookingCancelled = fmt.Errorf("%w: generate_invoice: booking is cancelled", domain.ErrState)

	// ErrInvoiceExists booking already has an invoice
	ErrInvoiceExists = fmt.Errorf("%w: generate_invoice: invoice already exists for booking", domain.ErrConflict)

	// ErrInternal persistence failure
	ErrInternal = errors.New("generate_invoice: internal error")
)
