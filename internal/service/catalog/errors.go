package catalog

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
)

var (
	// ErrInvalidInput malformed request
	ErrInvalidInput = fmt.Errorf("%w: catalog: invalid input data", domain.ErrValidation)

	// ErrCategoryNotFound room category does not exist
	ErrCategoryNotFound = fmt.Errorf("%w: catalog: room category not found", domain.ErrNotFound)

	// ErrRoomNotFound room does not exist
	ErrRoomNotFound = fmt.Errorf("%w: catalog: room not found", domain.ErrNotFound)

	// ErrInternal persistence failure
	ErrInternal = errors.New("catalog: internal error")
)
