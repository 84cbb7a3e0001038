package cancel_booking

import (
	"context"
	"time"

	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
)

// BookingRepository bookings and stays
type BookingRepository interface {
	LockByID(ctx context.Context, id int64) (*domain.Booking, error)
	Update(ctx context.Context, booking *domain.Booking) error
	GetStay(ctx context.Context, bookingID int64) (*domain.StayDetail, error)
	SetRoom(ctx context.Context, bookingID int64, binding domain.RoomBinding) error
}

// PaymentRepository payment transactions
type PaymentRepository interface {
	RefundCompleted(ctx context.Context, bookingID int64, at time.Time) (int, error)
}

// AssignmentRepository assignment audit trail
type AssignmentRepository interface {
	CloseOpen(ctx context.Context, bookingID int64, reason string, at time.Time) (bool, error)
}

// TransactionManager interface for managing transactions
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// EventPublisher best-effort delivery of committed changes
type EventPublisher interface {
	Publish(ctx context.Context, event domain.Event)
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
