package confirm_payment

import (
	"time"

	confirmPayment "github.com/m04kA/SMC-RoomBookingService/internal/usecase/confirm_payment"
)

// ConfirmPaymentRequest HTTP request model
type ConfirmPaymentRequest struct {
	TransactionID int64 `json:"transactionId" validate:"required,gt=0"`
}

// ToUseCaseRequest converts the HTTP request into the use case model
func (r *ConfirmPaymentRequest) ToUseCaseRequest(bookingID int64) *confirmPayment.Request {
	return &confirmPayment.Request{
		BookingID:     bookingID,
		TransactionID: r.TransactionID,
	}
}

// ConfirmPaymentResponse HTTP response model
type ConfirmPaymentResponse struct {
	BookingID     int64     `json:"bookingId"`
	Reference     string    `json:"reference"`
	TransactionID int64     `json:"transactionId"`
	Status        string    `json:"status"`
	PaymentStatus string    `json:"paymentStatus"`
	ConfirmedAt   time.Time `json:"confirmedAt"`
}

// FromUseCaseResponse converts the use case response into the HTTP model
func FromUseCaseResponse(resp *confirmPayment.Response) *ConfirmPaymentResponse {
	return &ConfirmPaymentResponse{
		BookingID:     resp.BookingID,
		Reference:     resp.Reference,
		TransactionID: resp.TransactionID,
		Status:        string(resp.Status),
		PaymentStatus: string(resp.PaymentStatus),
		ConfirmedAt:   resp.ConfirmedAt,
	}
}
