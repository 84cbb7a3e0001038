package generate_invoice

import (
	"context"
	"time"

	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
)

// BookingRepository bookings and stays
type BookingRepository interface {
	LockByID(ctx context.Context, id int64) (*domain.Booking, error)
	GetStay(ctx context.Context, bookingID int64) (*domain.StayDetail, error)
}

// ChargeRepository billable charges collected from other modules
type ChargeRepository interface {
	ListByBooking(ctx context.Context, bookingID int64) ([]domain.Charge, error)
}

// InvoiceRepository invoices and their numbering
type InvoiceRepository interface {
	ExistsForBooking(ctx context.Context, bookingID int64) (bool, error)
	NextNumber(ctx context.Context, period string) (int64, error)
	Create(ctx context.Context, inv *domain.Invoice) (*domain.Invoice, error)
}

// TransactionManager interface for managing transactions
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// EventPublisher best-effort delivery of committed changes
type EventPublisher interface {
	Publish(ctx context.Context, event domain.Event)
}

// Metrics invoice counters
type Metrics interface {
	InvoiceIssued()
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
