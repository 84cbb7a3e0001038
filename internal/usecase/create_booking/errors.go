package create_booking

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
)

var (
	// ErrInvalidInput malformed or missing request fields
	ErrInvalidInput = fmt.Errorf("%w: create_booking: invalid input data", domain.ErrValidation)

	// ErrInvalidDateRange check-out is not after check-in
	ErrInvalidDateRange = fmt.Errorf("%w: create_booking: check-out must be after check-in", domain.ErrValidation)

	// ErrCategoryNotFound room category does not exist
	ErrCategoryNotFound = fmt.Errorf("%w: create_booking: room category not found", domain.ErrNotFound)

	// ErrOccupancyExceeded more guests than the category can host
	ErrOccupancyExceeded = fmt.Errorf("%w: create_booking: guests exceed category max occupancy", domain.ErrValidation)

	// ErrReferenceCollision generated reference already taken; the request may be retried
	ErrReferenceCollision = fmt.Errorf("%w: create_booking: booking reference collision", domain.ErrConflict)

	// ErrInternal persistence failure
	ErrInternal = errors.New("create_booking: internal error")
)
