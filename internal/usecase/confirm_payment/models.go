package confirm_payment

import (
	"time"

	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
)

// Request confirm payment request
type Request struct {
	BookingID     int64
	TransactionID int64
}

// Response confirmed booking
type Response struct {
	BookingID     int64
	Reference     string
	TransactionID int64
	Status        domain.BookingStatus
	PaymentStatus domain.PaymentStatus
	ConfirmedAt   time.Time
}
