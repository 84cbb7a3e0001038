package create_booking

import (
	"time"

	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
	"github.com/m04kA/SMC-RoomBookingService/pkg/types"
)

// GuestInput primary guest of the booking
type GuestInput struct {
	Email     string
	FirstName string
	LastName  string
	Phone     *string
}

// Request create booking request
type Request struct {
	CategoryID    int64
	CheckIn       types.Date
	CheckOut      types.Date
	Adults        int
	Children      int
	EarlyCheckIn  bool
	LateCheckOut  bool
	ExtraBeds     int
	Guest         GuestInput
	PaymentMethod *string // opens a pending payment transaction when set
	Notes         *string
}

// Response booking confirmation
type Response struct {
	BookingID     int64
	Reference     string
	Status        domain.BookingStatus
	PaymentStatus domain.PaymentStatus
	CategoryID    int64
	CheckIn       types.Date
	CheckOut      types.Date
	Price         domain.PriceBreakdown
	GuestID       int64

	// set when a payment method was supplied
	PaymentTransactionID *int64
	ContinuationToken    *string

	CreatedAt time.Time
}
