package pricing

import (
	"fmt"

	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
)

var (
	// ErrInvalidNights stay must last at least one night
	ErrInvalidNights = fmt.Errorf("%w: pricing: nights must be positive", domain.ErrValidation)

	// ErrNegativeInput rates, fees and counts cannot be negative
	ErrNegativeInput = fmt.Errorf("%w: pricing: negative input", domain.ErrValidation)
)
