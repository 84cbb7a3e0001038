package pricing

import (
	"fmt"

	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
)

// Calculator itemizes the price of a stay. It holds no state besides its rates.
type Calculator struct {
	TaxRate          domain.Rate
	ServiceRate      domain.Rate
	EarlyCheckInRate domain.Rate  // share of the nightly base rate, charged once
	LateCheckOutRate domain.Rate  // share of the nightly base rate, charged once
	ExtraBedRate     domain.Money // per bed per night
}

// DefaultCalculator calculator with the standard rates
func DefaultCalculator() Calculator {
	return Calculator{
		TaxRate:          domain.DefaultTaxRate,
		ServiceRate:      domain.DefaultServiceRate,
		EarlyCheckInRate: domain.DefaultEarlyCheckInRate,
		LateCheckOutRate: domain.DefaultLateCheckOutRate,
		ExtraBedRate:     domain.DefaultExtraBedRate,
	}
}

// QuoteInput stay parameters that affect price
type QuoteInput struct {
	BaseRate     domain.Money
	Nights       int
	EarlyCheckIn bool
	LateCheckOut bool
	ExtraBeds    int
}

// Quote computes the price breakdown:
//
//	room_subtotal = base × nights
//	early / late  = base × rate, once each when requested
//	extra_bed     = per_bed × beds × nights
//	tax, service  = pre_tax × rate
//	final         = pre_tax + tax + service
func (c Calculator) Quote(in QuoteInput) (domain.PriceBreakdown, error) {
	if in.Nights <= 0 {
		return domain.PriceBreakdown{}, fmt.Errorf("%w: got %d", ErrInvalidNights, in.Nights)
	}
	if in.BaseRate < 0 || in.ExtraBeds < 0 {
		return domain.PriceBreakdown{}, fmt.Errorf("%w: base rate %d, extra beds %d", ErrNegativeInput, in.BaseRate, in.ExtraBeds)
	}
	if c.TaxRate < 0 || c.ServiceRate < 0 || c.EarlyCheckInRate < 0 || c.LateCheckOutRate < 0 || c.ExtraBedRate < 0 {
		return domain.PriceBreakdown{}, fmt.Errorf("%w: calculator rates", ErrNegativeInput)
	}

	b := domain.PriceBreakdown{
		BaseRate:     in.BaseRate,
		Nights:       in.Nights,
		RoomSubtotal: in.BaseRate.Times(in.Nights),
		TaxRate:      c.TaxRate,
		ServiceRate:  c.ServiceRate,
	}

	if in.EarlyCheckIn {
		b.EarlyCheckInFee = in.BaseRate.MulRate(c.EarlyCheckInRate)
	}
	if in.LateCheckOut {
		b.LateCheckOutFee = in.BaseRate.MulRate(c.LateCheckOutRate)
	}
	b.ExtraBedFee = c.ExtraBedRate.Times(in.ExtraBeds).Times(in.Nights)

	b.PreTaxSubtotal = b.RoomSubtotal + b.EarlyCheckInFee + b.LateCheckOutFee + b.ExtraBedFee
	b.Tax = b.PreTaxSubtotal.MulRate(c.TaxRate)
	b.ServiceCharge = b.PreTaxSubtotal.MulRate(c.ServiceRate)
	b.FinalTotal = b.PreTaxSubtotal + b.Tax + b.ServiceCharge

	return b, nil
}
