package charge

import "errors"

var (
	// ErrBuildQuery failed to build SQL query
	ErrBuildQuery = errors.New("charge.repository: failed to build query")

	// ErrExecQuery failed to execute SQL query
	ErrExecQuery = errors.New("charge.repository: failed to execute query")

	// ErrScanRow failed to scan query result
	ErrScanRow = errors.New("charge.repository: failed to scan row")
)
