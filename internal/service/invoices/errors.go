package invoices

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
)

var (
	// ErrInvoiceNotFound invoice does not exist
	ErrInvoiceNotFound = fmt.Errorf("%w: invoices: invoice not found", domain.ErrNotFound)

	// ErrInternal persistence failure
	ErrInternal = errors.New("invoices: internal error")
)
