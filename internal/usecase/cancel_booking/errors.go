package cancel_booking

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
)

var (
	// ErrInvalidInput malformed request
	ErrInvalidInput = fmt.Errorf("%w: cancel_booking: invalid input data", domain.ErrValidation)

	// ErrBookingNotFound booking does not exist
	ErrBookingNotFound = fmt.Errorf("%w: cancel_booking: booking not found", domain.ErrNotFound)

	// ErrAlreadyFinal booking is already cancelled or checked out
	ErrAlreadyFinal = fmt.Errorf("%w: cancel_booking: booking is already cancelled or completed", domain.ErrConflict)

	// ErrInternal persistence failure
	ErrInternal = errors.New("cancel_booking: internal error")
)
