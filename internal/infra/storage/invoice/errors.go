package invoice

import "errors"

var (
	// ErrInvoiceNotFound invoice does not exist
	ErrInvoiceNotFound = errors.New("invoice.repository: invoice not found")

	// ErrInvoiceExists the booking already has an invoice
	ErrInvoiceExists = errors.New("invoice.repository: invoice already exists for booking")

	// ErrBuildQuery failed to build SQL query
	ErrBuildQuery = errors.New("invoice.repository: failed to build query")

	// ErrExecQuery failed to execute SQL query
	ErrExecQuery = errors.New("invoice.repository: failed to execute query")

	// ErrScanRow failed to scan query result
	ErrScanRow = errors.New("invoice.repository: failed to scan row")
)
