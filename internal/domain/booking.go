package domain

import (
	"time"

	"github.com/m04kA/SMC-RoomBookingService/pkg/types"
)

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	StatusPending    BookingStatus = "pending"
	StatusConfirmed  BookingStatus = "confirmed"
	StatusCheckedIn  BookingStatus = "checked_in"
	StatusCheckedOut BookingStatus = "checked_out" // completed
	StatusCancelled  BookingStatus = "cancelled"
)

// PaymentStatus represents the payment state of a booking
type PaymentStatus string

const (
	PaymentPending       PaymentStatus = "pending"
	PaymentPaid          PaymentStatus = "paid"
	PaymentPartiallyPaid PaymentStatus = "partially_paid"
	PaymentRefunded      PaymentStatus = "refunded"
)

// Booking represents a room-type reservation
type Booking struct {
	ID            int64
	Reference     string
	Status        BookingStatus
	PaymentStatus PaymentStatus
	TotalAmount   Money
	Notes         *string

	CancellationReason *string
	CancelledAt        *time.Time
	ConfirmedAt        *time.Time
	CheckedInAt        *time.Time
	CheckedOutAt       *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive returns true if the booking holds inventory
func (b *Booking) IsActive() bool {
	return b.Status == StatusPending ||
		b.Status == StatusConfirmed ||
		b.Status == StatusCheckedIn
}

// CanBeCancelled returns true if the booking can be cancelled
func (b *Booking) CanBeCancelled() bool {
	return b.IsActive()
}

// CanAssignRoom returns true if a room may be bound or unbound
func (b *Booking) CanAssignRoom() bool {
	return b.Status == StatusPending || b.Status == StatusConfirmed
}

// CanCheckIn returns true if the guest may check in
func (b *Booking) CanCheckIn() bool {
	return b.Status == StatusConfirmed
}

// CanCheckOut returns true if the guest may check out
func (b *Booking) CanCheckOut() bool {
	return b.Status == StatusCheckedIn
}

// IsCancelled returns true if the booking has been cancelled
func (b *Booking) IsCancelled() bool {
	return b.Status == StatusCancelled
}

// IsCompleted returns true if the guest has checked out
func (b *Booking) IsCompleted() bool {
	return b.Status == StatusCheckedOut
}

// BookingDetails booking with its stay and primary guest, the read model
type BookingDetails struct {
	Booking Booking
	Stay    StayDetail
	Guest   *GuestProfile
}

// BookingsFilter filter for listing bookings
type BookingsFilter struct {
	Status     *BookingStatus // optional
	CategoryID *int64         // optional
	From       *types.Date    // stays overlapping [From, To)
	To         *types.Date
	Search     string // reference, guest email or name
	Limit      int
	Offset     int
}
