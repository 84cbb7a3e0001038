package availability

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
)

var (
	// ErrCategoryNotFound room category does not exist
	ErrCategoryNotFound = fmt.Errorf("%w: availability: room category not found", domain.ErrNotFound)

	// ErrInternal repository failure
	ErrInternal = errors.New("availability: internal error")
)
