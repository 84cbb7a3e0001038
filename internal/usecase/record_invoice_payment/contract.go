package record_invoice_payment

import (
	"context"
	"time"

	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
)

// InvoiceRepository invoice settlement
type InvoiceRepository interface {
	LockByID(ctx context.Context, id int64) (*domain.Invoice, error)
	UpdatePayment(ctx context.Context, inv *domain.Invoice) error
	AddPayment(ctx context.Context, p *domain.InvoicePayment) (*domain.InvoicePayment, error)
}

// BookingRepository booking payment status
type BookingRepository interface {
	LockByID(ctx context.Context, id int64) (*domain.Booking, error)
	Update(ctx context.Context, booking *domain.Booking) error
}

// TransactionManager interface for managing transactions
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider interface for getting the current time (for testing)
type TimeProvider interface {
	Now() time.Time
}

// Logger interface for logging
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider production time provider
type RealTimeProvider struct{}

// Now returns the current UTC time
func (p *RealTimeProvider) Now() time.Time {
	return time.Now().UTC()
}
