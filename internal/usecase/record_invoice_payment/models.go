package record_invoice_payment

import (
	"time"

	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
)

const maxMethodLength = 50

// Request record payment request
type Request struct {
	InvoiceID int64
	Amount    domain.Money
	Method    string
	Reference *string
}

// Response settlement state after the payment
type Response struct {
	InvoiceID            int64
	Number               string
	PaymentID            int64
	Amount               domain.Money
	AmountPaid           domain.Money
	BalanceDue           domain.Money
	Status               domain.InvoiceStatus
	BookingPaymentStatus domain.PaymentStatus
	RecordedAt           time.Time
}
