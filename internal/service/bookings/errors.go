package bookings

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
)

var (
	// ErrBookingNotFound booking does not exist
	ErrBookingNotFound = fmt.Errorf("%w: bookings: booking not found", domain.ErrNotFound)

	// ErrInvalidInput malformed request
	ErrInvalidInput = fmt.Errorf("%w: bookings: invalid input data", domain.ErrValidation)

	// ErrCannotCheckIn only confirmed bookings may check in
	ErrCannotCheckIn = fmt.Errorf("%w: bookings: booking cannot be checked in", domain.ErrState)

	// ErrCannotCheckOut only checked-in bookings may check out
	ErrCannotCheckOut = fmt.Errorf("%w: bookings: booking cannot be checked out", domain.ErrState)

	// ErrRoomNotAssigned check-in needs a bound room
	ErrRoomNotAssigned = fmt.Errorf("%w: bookings: no room assigned to booking", domain.ErrState)

	// ErrInternal persistence failure
	ErrInternal = errors.New("bookings: internal error")
)
