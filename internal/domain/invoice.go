package domain

import (
	"fmt"
	"time"
)

// InvoiceStatus settlement state of an invoice
type InvoiceStatus string

const (
	InvoiceIssued        InvoiceStatus = "issued"
	InvoicePartiallyPaid InvoiceStatus = "partially_paid"
	InvoicePaid          InvoiceStatus = "paid"
)

// ChargeSource origin of an invoice line
type ChargeSource string

const (
	SourceRoom         ChargeSource = "room"
	SourceIncidental   ChargeSource = "incidental"
	SourceFood         ChargeSource = "food"
	SourceGuestRequest ChargeSource = "guest_request"
)

// Charge billable amount collected from one of the charge sources
type Charge struct {
	Source      ChargeSource
	SourceID    *int64
	Description string
	Quantity    int
	UnitPrice   Money
	Amount      Money
}

// Invoice settlement document of a booking, one per booking
type Invoice struct {
	ID            int64
	BookingID     int64
	Number        string
	Status        InvoiceStatus
	Subtotal      Money
	TaxRate       Rate
	Tax           Money
	ServiceRate   Rate
	ServiceCharge Money
	Discount      Money
	Total         Money
	AmountPaid    Money
	BalanceDue    Money
	Notes         *string
	IssuedAt      time.Time
	UpdatedAt     time.Time
	Items         []InvoiceLineItem
}

// InvoiceLineItem one contributing charge
type InvoiceLineItem struct {
	ID          int64
	InvoiceID   int64
	Source      ChargeSource
	SourceID    *int64
	Description string
	Quantity    int
	UnitPrice   Money
	Amount      Money
}

// InvoicePayment payment recorded against an invoice
type InvoicePayment struct {
	ID         int64
	InvoiceID  int64
	Amount     Money
	Method     string
	Reference  *string
	RecordedAt time.Time
}

// ApplyPayment adds amount to the paid total and recomputes balance and status
func (i *Invoice) ApplyPayment(amount Money) {
	i.AmountPaid += amount
	i.BalanceDue = i.Total - i.AmountPaid
	if i.BalanceDue <= 0 {
		i.Status = InvoicePaid
	} else {
		i.Status = InvoicePartiallyPaid
	}
}

// IsPaid returns true if nothing is due
func (i *Invoice) IsPaid() bool {
	return i.Status == InvoicePaid
}

// InvoicePeriod numbering scope of an invoice issued at t: YYYYMM
func InvoicePeriod(t time.Time) string {
	return t.UTC().Format("200601")
}

// FormatInvoiceNumber INV-YYYYMM-NNNN
func FormatInvoiceNumber(period string, seq int64) string {
	return fmt.Sprintf("INV-%s-%04d", period, seq)
}
