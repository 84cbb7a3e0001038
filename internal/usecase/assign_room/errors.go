package assign_room

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
)

var (
	// ErrInvalidInput malformed request
	ErrInvalidInput = fmt.Errorf("%w: assign_room: invalid input data", domain.ErrValidation)

	// ErrInvalidDateRange check-out is not after check-in
	ErrInvalidDateRange = fmt.Errorf("%w: assign_room: check-out must be after check-in", domain.ErrValidation)

	// ErrBookingNotFound booking does not exist
	ErrBookingNotFound = fmt.Errorf("%w: assign_room: booking not found", domain.ErrNotFound)

	// ErrRoomNotFound room does not exist
	ErrRoomNotFound = fmt.Errorf("%w: assign_room: room not found", domain.ErrNotFound)

	// ErrCategoryNotFound room category does not exist
	ErrCategoryNotFound = fmt.Errorf("%w: assign_room: room category not found", domain.ErrNotFound)

	// ErrInvalidBookingState booking is not pending or confirmed
	ErrInvalidBookingState = fmt.Errorf("%w: assign_room: room binding can only change for pending or confirmed bookings", domain.ErrState)

	// ErrAlreadyAssigned booking is bound to another room
	ErrAlreadyAssigned = fmt.Errorf("%w: assign_room: booking already has a room, unassign first", domain.ErrConflict)

	// ErrCategoryMismatch room belongs to another category than the booking
	ErrCategoryMismatch = fmt.Errorf("%w: assign_room: room category does not match the booking", domain.ErrValidation)

	// ErrOccupancyExceeded more guests than the category hosts
	ErrOccupancyExceeded = fmt.Errorf("%w: assign_room: guests exceed category max occupancy", domain.ErrValidation)

	// ErrRoomUnavailable room is under maintenance or out of order
	ErrRoomUnavailable = fmt.Errorf("%w: assign_room: room cannot be assigned in its current status", domain.ErrState)

	// ErrRoomOccupied room is bound to an overlapping active stay
	ErrRoomOccupied = fmt.Errorf("%w: assign_room: room is already assigned for overlapping dates", domain.ErrConflict)

	// ErrNoRoomAvailable no free room of the category matches
	ErrNoRoomAvailable = fmt.Errorf("%w: assign_room: no room available for automatic assignment", domain.ErrConflict)

	// ErrInternal persistence failure
	ErrInternal = errors.New("assign_room: internal error")
)
