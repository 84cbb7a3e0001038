package room

import "errors"

var (
	// ErrCategoryNotFound room category does not exist
	ErrCategoryNotFound = errors.New("room.repository: room category not found")

	// ErrRoomNotFound room does not exist
	ErrRoomNotFound = errors.New("room.repository: room not found")

	// ErrBuildQuery failed to build SQL query
	ErrBuildQuery = errors.New("room.repository: failed to build query")

	// ErrExecQuery failed to execute SQL query
	ErrExecQuery = errors.New("room.repository: failed to execute query")

	// ErrScanRow failed to scan query result
	ErrScanRow = errors.New("room.repository: failed to scan row")
)
