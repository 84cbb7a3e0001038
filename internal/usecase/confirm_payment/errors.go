package confirm_payment

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
)

var (
	// ErrInvalidInput malformed request
	ErrInvalidInput = fmt.Errorf("%w: confirm_payment: invalid input data", domain.ErrValidation)

	// ErrBookingNotFound booking does not exist
	ErrBookingNotFound = fmt.Errorf("%w: confirm_payment: booking not found", domain.ErrNotFound)

	// ErrTransactionNotFound transaction does not exist or belongs to another booking
	ErrTransactionNotFound = fmt.Errorf("%w: confirm_payment: payment transaction not found", domain.ErrNotFound)

	// ErrAlreadyCompleted transaction was captured or refunded before
	ErrAlreadyCompleted = fmt.Errorf("%w: confirm_payment: payment transaction already completed", domain.ErrConflict)

	// ErrBookingNotPayable booking is cancelled or checked out
	ErrBookingNotPayable = fmt.Errorf("%w: confirm_payment: booking cannot accept payment", domain.ErrState)

	// ErrInternal persistence failure
	ErrInternal = errors.New("confirm_payment: internal error")
)
