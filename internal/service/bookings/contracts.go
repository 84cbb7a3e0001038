package bookings

import (
	"context"
	"time"

	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
)

// BookingRepository booking read model and status updates
type BookingRepository interface {
	GetDetails(ctx context.Context, id int64) (*domain.BookingDetails, error)
	List(ctx context.Context, filter domain.BookingsFilter) ([]*domain.BookingDetails, error)
	LockByID(ctx context.Context, id int64) (*domain.Booking, error)
	Update(ctx context.Context, booking *domain.Booking) error
	GetStay(ctx context.Context, bookingID int64) (*domain.StayDetail, error)
}

// PaymentRepository payment transactions of a booking
type PaymentRepository interface {
	ListByBooking(ctx context.Context, bookingID int64) ([]*domain.PaymentTransaction, error)
}

// AssignmentRepository room assignment audit trail
type AssignmentRepository interface {
	ListByBooking(ctx context.Context, bookingID int64) ([]*domain.RoomAssignment, error)
}

// RoomRepository housekeeping status of the bound room
type RoomRepository interface {
	UpdateStatus(ctx context.Context, id int64, status domain.RoomStatus, cleanedAt *time.Time, updatedAt time.Time) error
}

// TransactionManager interface for managing transactions
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider current time source
type TimeProvider interface {
	Now() time.Time
}

// Logger interface for logging
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

type realTime struct{}

func (realTime) Now() time.Time { return time.Now().UTC() }
