package assign_room

import (
	"context"
	"time"

	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
)

// BookingRepository bookings and their room bindings
type BookingRepository interface {
	LockByID(ctx context.Context, id int64) (*domain.Booking, error)
	GetStay(ctx context.Context, bookingID int64) (*domain.StayDetail, error)
	SetRoom(ctx context.Context, bookingID int64, binding domain.RoomBinding) error
	ListActiveStaysForRooms(ctx context.Context, roomIDs []int64, dates domain.DateRange, excludeBookingID int64) ([]domain.ActiveStay, error)
}

// RoomRepository rooms and categories
type RoomRepository interface {
	GetCategory(ctx context.Context, id int64) (*domain.RoomCategory, error)
	ListCategories(ctx context.Context) ([]*domain.RoomCategory, error)
	LockRoom(ctx context.Context, id int64) (*domain.Room, error)
	ListRooms(ctx context.Context, categoryID int64, statuses ...domain.RoomStatus) ([]*domain.Room, error)
	LockRooms(ctx context.Context, categoryID int64, statuses ...domain.RoomStatus) ([]*domain.Room, error)
}

// AssignmentRepository assignment audit trail
type AssignmentRepository interface {
	Create(ctx context.Context, a *domain.RoomAssignment) (*domain.RoomAssignment, error)
	CloseOpen(ctx context.Context, bookingID int64, reason string, at time.Time) (bool, error)
}

// AvailabilityChecker category availability
type AvailabilityChecker interface {
	CheckCategory(ctx context.Context, category *domain.RoomCategory, dates domain.DateRange) (*domain.Availability, error)
}

// TransactionManager interface for managing transactions
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error
}

// EventPublisher best-effort delivery of committed changes
type EventPublisher interface {
	Publish(ctx context.Context, event domain.Event)
}

// Metrics assignment counters
type Metrics interface {
	RoomAssignment(mode, outcome string)
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
