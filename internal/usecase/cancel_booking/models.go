package cancel_booking

import (
	"time"

	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
)

// UnassignReason recorded on the audit row closed by a cancellation
const UnassignReason = "booking cancelled"

// Request cancel booking request
type Request struct {
	BookingID int64
	Reason    string
}

// Response cancelled booking
type Response struct {
	BookingID            int64
	Reference            string
	Status               domain.BookingStatus
	PaymentStatus        domain.PaymentStatus
	CancellationReason   string
	CancelledAt          time.Time
	RefundedTransactions int
	ReleasedRoomID       *int64
}
