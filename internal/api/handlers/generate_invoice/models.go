package generate_invoice

import (
	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
	generateInvoice "github.com/m04kA/SMC-RoomBookingService/internal/usecase/generate_invoice"
)

// GenerateInvoiceRequest HTTP request model; rates are percentages, 18 = 18%
type GenerateInvoiceRequest struct {
	TaxRate           *float64 `json:"taxRate,omitempty" validate:"omitempty,gte=0,lte=100"`
	ServiceChargeRate *float64 `json:"serviceChargeRate,omitempty" validate:"omitempty,gte=0,lte=100"`
	Discount          int64    `json:"discount" validate:"gte=0"`
	Notes             *string  `json:"notes,omitempty" validate:"omitempty,max=500"`
}

// ToUseCaseRequest converts the HTTP request into the use case model
func (r *GenerateInvoiceRequest) ToUseCaseRequest(bookingID int64) *generateInvoice.Request {
	req := &generateInvoice.Request{
		BookingID: bookingID,
		Discount:  domain.Money(r.Discount),
		Notes:     r.Notes,
	}
	if r.TaxRate != nil {
		rate := domain.RateFromPercent(*r.TaxRate)
		req.TaxRate = &rate
	}
	if r.ServiceChargeRate != nil {
		rate := domain.RateFromPercent(*r.ServiceChargeRate)
		req.ServiceRate = &rate
	}
	return req
}
