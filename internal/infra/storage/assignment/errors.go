package assignment

import "errors"

var (
	// ErrBuildQuery failed to build SQL query
	ErrBuildQuery = errors.New("assignment.repository: failed to build query")

	// ErrExecQuery failed to execute SQL query
	ErrExecQuery = errors.New("assignment.repository: failed to execute query")

	// ErrScanRow failed to scan query result
	ErrScanRow = errors.New("assignment.repository: failed to scan row")
)
