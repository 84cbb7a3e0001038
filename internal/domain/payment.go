package domain

import "time"

// PaymentTransactionStatus status of a payment transaction
type PaymentTransactionStatus string

const (
	TransactionPending   PaymentTransactionStatus = "pending"
	TransactionCompleted PaymentTransactionStatus = "completed"
	TransactionRefunded  PaymentTransactionStatus = "refunded"
)

// PaymentTransaction payment opened at booking time
type PaymentTransaction struct {
	ID                int64
	BookingID         int64
	Method            string
	Amount            Money
	Status            PaymentTransactionStatus
	ContinuationToken string
	CreatedAt         time.Time
	CompletedAt       *time.Time
	RefundedAt        *time.Time
}

// IsPending returns true if the transaction has not been captured yet
func (p *PaymentTransaction) IsPending() bool {
	return p.Status == TransactionPending
}
