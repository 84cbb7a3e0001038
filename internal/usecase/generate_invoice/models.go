package generate_invoice

import "github.com/m04kA/SMC-RoomBookingService/internal/domain"

// Rates applied when the request does not override them
type Rates struct {
	TaxRate     domain.Rate
	ServiceRate domain.Rate
}

// DefaultRates standard tax and service rates
func DefaultRates() Rates {
	return Rates{TaxRate: domain.DefaultTaxRate, ServiceRate: domain.DefaultServiceRate}
}

// Request generate invoice request
type Request struct {
	BookingID   int64
	TaxRate     *domain.Rate // defaults to the configured rate
	ServiceRate *domain.Rate // defaults to the configured rate
	Discount    domain.Money
	Notes       *string
}
