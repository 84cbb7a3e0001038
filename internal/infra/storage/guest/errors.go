package guest

import "errors"

var (
	// ErrGuestNotFound guest profile does not exist
	ErrGuestNotFound = errors.New("guest.repository: guest not found")

	// ErrBuildQuery failed to build SQL query
	ErrBuildQuery = errors.New("guest.repository: failed to build query")

	// ErrExecQuery failed to execute SQL query
	ErrExecQuery = errors.New("guest.repository: failed to execute query")

	// ErrScanRow failed to scan query result
	ErrScanRow = errors.New("guest.repository: failed to scan row")
)
