package cancel_booking

import (
	"time"

	cancelBooking "github.com/m04kA/SMC-RoomBookingService/internal/usecase/cancel_booking"
)

// CancelBookingRequest HTTP request model
type CancelBookingRequest struct {
	Reason string `json:"reason" validate:"required,max=500"`
}

// ToUseCaseRequest converts the HTTP request into the use case model
func (r *CancelBookingRequest) ToUseCaseRequest(bookingID int64) *cancelBooking.Request {
	return &cancelBooking.Request{
		BookingID: bookingID,
		Reason:    r.Reason,
	}
}

// CancelBookingResponse HTTP response model
type CancelBookingResponse struct {
	BookingID            int64     `json:"bookingId"`
	Reference            string    `json:"reference"`
	Status               string    `json:"status"`
	PaymentStatus        string    `json:"paymentStatus"`
	CancellationReason   string    `json:"cancellationReason"`
	CancelledAt          time.Time `json:"cancelledAt"`
	RefundedTransactions int       `json:"refundedTransactions"`
	ReleasedRoomID       *int64    `json:"releasedRoomId,omitempty"`
}

// FromUseCaseResponse converts the use case response into the HTTP model
func FromUseCaseResponse(resp *cancelBooking.Response) *CancelBookingResponse {
	return &CancelBookingResponse{
		BookingID:            resp.BookingID,
		Reference:            resp.Reference,
		Status:               string(resp.Status),
		PaymentStatus:        string(resp.PaymentStatus),
		CancellationReason:   resp.CancellationReason,
		CancelledAt:          resp.CancelledAt,
		RefundedTransactions: resp.RefundedTransactions,
		ReleasedRoomID:       resp.ReleasedRoomID,
	}
}
