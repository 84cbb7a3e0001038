package models

import (
	"time"

	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
)

// LineItemResponse one contributing charge
type LineItemResponse struct {
	ID          int64  `json:"id"`
	Source      string `json:"source"`
	SourceID    *int64 `json:"sourceId,omitempty"`
	Description string `json:"description"`
	Quantity    int    `json:"quantity"`
	UnitPrice   int64  `json:"unitPrice"`
	Amount      int64  `json:"amount"`
}

// InvoiceResponse invoice with its line items, money in minor units and rates in percent
type InvoiceResponse struct {
	ID                int64              `json:"id"`
	BookingID         int64              `json:"bookingId"`
	Number            string             `json:"invoiceNumber"`
	Status            string             `json:"status"`
	Subtotal          int64              `json:"subtotal"`
	TaxRate           float64            `json:"taxRate"`
	Tax               int64              `json:"tax"`
	ServiceChargeRate float64            `json:"serviceChargeRate"`
	ServiceCharge     int64              `json:"serviceCharge"`
	Discount          int64              `json:"discount"`
	Total             int64              `json:"total"`
	AmountPaid        int64              `json:"amountPaid"`
	BalanceDue        int64              `json:"balanceDue"`
	Notes             *string            `json:"notes,omitempty"`
	IssuedAt          time.Time          `json:"issuedAt"`
	UpdatedAt         time.Time          `json:"updatedAt"`
	Items             []LineItemResponse `json:"lineItems"`
}

// FromDomainInvoice converts an invoice to its DTO
func FromDomainInvoice(inv *domain.Invoice) *InvoiceResponse {
	if inv == nil {
		return nil
	}

	resp := &InvoiceResponse{
		ID:                inv.ID,
		BookingID:         inv.BookingID,
		Number:            inv.Number,
		Status:            string(inv.Status),
		Subtotal:          int64(inv.Subtotal),
		TaxRate:           inv.TaxRate.Percent(),
		Tax:               int64(inv.Tax),
		ServiceChargeRate: inv.ServiceRate.Percent(),
		ServiceCharge:     int64(inv.ServiceCharge),
		Discount:          int64(inv.Discount),
		Total:             int64(inv.Total),
		AmountPaid:        int64(inv.AmountPaid),
		BalanceDue:        int64(inv.BalanceDue),
		Notes:             inv.Notes,
		IssuedAt:          inv.IssuedAt,
		UpdatedAt:         inv.UpdatedAt,
		Items:             make([]LineItemResponse, 0, len(inv.Items)),
	}
	for _, item := range inv.Items {
		resp.Items = append(resp.Items, LineItemResponse{
			ID:          item.ID,
			Source:      string(item.Source),
			SourceID:    item.SourceID,
			Description: item.Description,
			Quantity:    item.Quantity,
			UnitPrice:   int64(item.UnitPrice),
			Amount:      int64(item.Amount),
		})
	}
	return resp
}
