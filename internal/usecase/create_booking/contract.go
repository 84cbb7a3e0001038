package create_booking

import (
	"context"
	"time"

	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
	"github.com/m04kA/SMC-RoomBookingService/internal/service/pricing"
)

// BookingRepository bookings and stays
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
	CreateStay(ctx context.Context, stay *domain.StayDetail) error
}

// RoomRepository room categories
type RoomRepository interface {
	LockCategory(ctx context.Context, id int64) (*domain.RoomCategory, error)
}

// GuestRepository guest profiles
type GuestRepository interface {
	Upsert(ctx context.Context, guest *domain.GuestProfile, spent domain.Money, at time.Time) (*domain.GuestProfile, error)
	AddToBooking(ctx context.Context, link domain.BookingGuest) error
}

// PaymentRepository payment transactions
type PaymentRepository interface {
	Create(ctx context.Context, tx *domain.PaymentTransaction) (*domain.PaymentTransaction, error)
}

// AvailabilityChecker category availability
type AvailabilityChecker interface {
	Require(ctx context.Context, category *domain.RoomCategory, dates domain.DateRange) (*domain.Availability, error)
}

// PriceCalculator stay pricing
type PriceCalculator interface {
	Quote(in pricing.QuoteInput) (domain.PriceBreakdown, error)
}

// TransactionManager interface for managing transactions
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// EventPublisher best-effort delivery of committed changes
type EventPublisher interface {
	Publish(ctx context.Context, event domain.Event)
}

// Metrics domain counters
type Metrics interface {
	BookingCreated()
	CapacityRejected(categoryID int64)
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
