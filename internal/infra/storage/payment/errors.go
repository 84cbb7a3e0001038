package payment

import "errors"

var (
	// ErrTransactionNotFound payment transaction does not exist
	ErrTransactionNotFound = errors.New("payment.repository: transaction not found")

	// ErrBuildQuery failed to build SQL query
	ErrBuildQuery = errors.New("payment.repository: failed to build query")

	// ErrExecQuery failed to execute SQL query
	ErrExecQuery = errors.New("payment.repository: failed to execute query")

	// ErrScanRow failed to scan query result
	ErrScanRow = errors.New("payment.repository: failed to scan row")
)
