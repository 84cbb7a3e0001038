package invoices

import (
	"context"

	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
)

// InvoiceRepository invoice reads
type InvoiceRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Invoice, error)
	GetByBookingID(ctx context.Context, bookingID int64) (*domain.Invoice, error)
}

// Logger interface for logging
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
