package booking

import "errors"

var (
	// ErrBookingNotFound booking does not exist
	ErrBookingNotFound = errors.New("booking.repository: booking not found")

	// ErrStayNotFound booking has no stay detail
	ErrStayNotFound = errors.New("booking.repository: stay detail not found")

	// ErrDuplicateReference reference collided with an existing booking
	ErrDuplicateReference = errors.New("booking.repository: duplicate booking reference")

	// ErrRoomOverlap the room is already bound to an overlapping active stay
	ErrRoomOverlap = errors.New("booking.repository: room already bound for overlapping dates")

	// ErrBuildQuery failed to build SQL query
	ErrBuildQuery = errors.New("booking.repository: failed to build query")

	// ErrExecQuery failed to execute SQL query
	ErrExecQuery = errors.New("booking.repository: failed to execute query")

	// ErrScanRow failed to scan query result
	ErrScanRow = errors.New("booking.repository: failed to scan row")
)
