package record_invoice_payment

import (
	"time"

	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
	recordPayment "github.com/m04kA/SMC-RoomBookingService/internal/usecase/record_invoice_payment"
)

// RecordPaymentRequest HTTP request model, amount in minor units
type RecordPaymentRequest struct {
	Amount    int64   `json:"amount" validate:"required,gt=0"`
	Method    string  `json:"method" validate:"required,max=50"`
	Reference *string `json:"reference,omitempty" validate:"omitempty,max=100"`
}

// ToUseCaseRequest converts the HTTP request into the use case model
func (r *RecordPaymentRequest) ToUseCaseRequest(invoiceID int64) *recordPayment.Request {
	return &recordPayment.Request{
		InvoiceID: invoiceID,
		Amount:    domain.Money(r.Amount),
		Method:    r.Method,
		Reference: r.Reference,
	}
}

// RecordPaymentResponse HTTP response model
type RecordPaymentResponse struct {
	InvoiceID            int64     `json:"invoiceId"`
	Number               string    `json:"invoiceNumber"`
	PaymentID            int64     `json:"paymentId"`
	Amount               int64     `json:"amount"`
	AmountPaid           int64     `json:"amountPaid"`
	BalanceDue           int64     `json:"balanceDue"`
	Status               string    `json:"status"`
	BookingPaymentStatus string    `json:"bookingPaymentStatus"`
	RecordedAt           time.Time `json:"recordedAt"`
}

// FromUseCaseResponse converts the use case response into the HTTP model
func FromUseCaseResponse(resp *recordPayment.Response) *RecordPaymentResponse {
	return &RecordPaymentResponse{
		InvoiceID:            resp.InvoiceID,
		Number:               resp.Number,
		PaymentID:            resp.PaymentID,
		Amount:               int64(resp.Amount),
		AmountPaid:           int64(resp.AmountPaid),
		BalanceDue:           int64(resp.BalanceDue),
		Status:               string(resp.Status),
		BookingPaymentStatus: string(resp.BookingPaymentStatus),
		RecordedAt:           resp.RecordedAt,
	}
}
