package generate_invoice

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-RoomBookingService/internal/infra/storage/booking"
	invoiceRepo "github.com/m04kA/SMC-RoomBookingService/internal/infra/storage/invoice"
)

// UseCase issues the settlement invoice of a booking
type UseCase struct {
	bookingRepo  BookingRepository
	chargeRepo   ChargeRepository
	invoiceRepo  InvoiceRepository
	txManager    TransactionManager
	publisher    EventPublisher
	metrics      Metrics
	rates        Rates
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase creates a new generate invoice use case
func NewUseCase(
	bookingRepo BookingRepository,
	chargeRepo ChargeRepository,
	invoiceRepo InvoiceRepository,
	txManager TransactionManager,
	publisher EventPublisher,
	metrics Metrics,
	rates Rates,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		chargeRepo:   chargeRepo,
		invoiceRepo:  invoiceRepo,
		txManager:    txManager,
		publisher:    publisher,
		metrics:      metrics,
		rates:        rates,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// WithTimeProvider overrides the clock
func (uc *UseCase) WithTimeProvider(tp TimeProvider) *UseCase {
	uc.timeProvider = tp
	return uc
}

// Execute collects the stay price and every billable charge of the booking
// into one numbered invoice
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*domain.Invoice, error) {
	uc.logger.Info("GenerateInvoice: booking=%d", req.BookingID)

	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GenerateInvoice: validation failed: %v", err)
		return nil, err
	}

	taxRate, serviceRate := uc.rates.TaxRate, uc.rates.ServiceRate
	if req.TaxRate != nil {
		taxRate = *req.TaxRate
	}
	if req.ServiceRate != nil {
		serviceRate = *req.ServiceRate
	}

	now := uc.timeProvider.Now()
	var (
		invoice *domain.Invoice
		booking *domain.Booking
	)

	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		var err error

		// 1. Booking must exist, not be cancelled and not be invoiced yet
		booking, err = uc.bookingRepo.LockByID(txCtx, req.BookingID)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				uc.logger.Warn("GenerateInvoice: booking id=%d not found", req.BookingID)
				return ErrBookingNotFound
			}
			uc.logger.Error("GenerateInvoice: failed to lock booking id=%d: %v", req.BookingID, err)
			return fmt.Errorf("%w: failed to lock booking: %w", ErrInternal, err)
		}

		if booking.IsCancelled() {
			uc.logger.Warn("GenerateInvoice: booking id=%d is cancelled", booking.ID)
			return ErrBookingCancelled
		}

		exists, err := uc.invoiceRepo.ExistsForBooking(txCtx, booking.ID)
		if err != nil {
			uc.logger.Error("GenerateInvoice: failed to check invoice of booking id=%d: %v", booking.ID, err)
			return fmt.Errorf("%w: failed to check invoice: %w", ErrInternal, err)
		}
		if exists {
			uc.logger.Warn("GenerateInvoice: booking id=%d already invoiced", booking.ID)
			return ErrInvoiceExists
		}

		// 2. Line items
		stay, err := uc.bookingRepo.GetStay(txCtx, booking.ID)
		if err != nil {
			uc.logger.Error("GenerateInvoice: failed to get stay of booking id=%d: %v", booking.ID, err)
			return fmt.Errorf("%w: failed to get stay: %w", ErrInternal, err)
		}

		charges, err := uc.chargeRepo.ListByBooking(txCtx, booking.ID)
		if err != nil {
			uc.logger.Error("GenerateInvoice: failed to list charges of booking id=%d: %v", booking.ID, err)
			return fmt.Errorf("%w: failed to list charges: %w", ErrInternal, err)
		}

		items := append(stayItems(stay), chargeItems(charges)...)

		// 3. Totals
		var subtotal domain.Money
		for _, item := range items {
			subtotal += item.Amount
		}
		tax := subtotal.MulRate(taxRate)
		service := subtotal.MulRate(serviceRate)
		total := subtotal + tax + service - req.Discount
		if total < 0 {
			total = 0
		}

		// 4. Number and insert
		period := domain.InvoicePeriod(now)
		seq, err := uc.invoiceRepo.NextNumber(txCtx, period)
		if err != nil {
			uc.logger.Error("GenerateInvoice: failed to allocate number for %s: %v", period, err)
			return fmt.Errorf("%w: failed to allocate invoice number: %w", ErrInternal, err)
		}

		invoice, err = uc.invoiceRepo.Create(txCtx, &domain.Invoice{
			BookingID:     booking.ID,
			Number:        domain.FormatInvoiceNumber(period, seq),
			Status:        domain.InvoiceIssued,
			Subtotal:      subtotal,
			TaxRate:       taxRate,
			Tax:           tax,
			ServiceRate:   serviceRate,
			ServiceCharge: service,
			Discount:      req.Discount,
			Total:         total,
			AmountPaid:    0,
			BalanceDue:    total,
			Notes:         req.Notes,
			IssuedAt:      now,
			Items:         items,
		})
		if err != nil {
			if errors.Is(err, invoiceRepo.ErrInvoiceExists) {
				uc.logger.Warn("GenerateInvoice: booking id=%d invoiced concurrently", booking.ID)
				return ErrInvoiceExists
			}
			uc.logger.Error("GenerateInvoice: failed to create invoice for booking id=%d: %v", booking.ID, err)
			return fmt.Errorf("%w: failed to create invoice: %w", ErrInternal, err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.metrics.InvoiceIssued()
	uc.publisher.Publish(ctx, domain.Event{
		Type:      domain.EventInvoiceIssued,
		BookingID: booking.ID,
		Reference: booking.Reference,
		Attributes: map[string]string{
			"invoiceNumber": invoice.Number,
			"total":         invoice.Total.String(),
		},
		OccurredAt: now,
	})

	uc.logger.Info("GenerateInvoice: invoice %s issued for booking id=%d, total=%s",
		invoice.Number, booking.ID, invoice.Total)

	return invoice, nil
}

// stayItems room nights and every non-zero add-on of the stay
func stayItems(stay *domain.StayDetail) []domain.InvoiceLineItem {
	p := stay.Price
	items := []domain.InvoiceLineItem{{
		Source:      domain.SourceRoom,
		Description: fmt.Sprintf("Room, %d night(s) at %s", p.Nights, p.BaseRate),
		Quantity:    p.Nights,
		UnitPrice:   p.BaseRate,
		Amount:      p.RoomSubtotal,
	}}

	if p.EarlyCheckInFee > 0 {
		items = append(items, singleItem("Early check-in", p.EarlyCheckInFee))
	}
	if p.LateCheckOutFee > 0 {
		items = append(items, singleItem("Late check-out", p.LateCheckOutFee))
	}
	if p.ExtraBedFee > 0 {
		qty := stay.ExtraBeds * p.Nights
		if qty <= 0 {
			qty = 1
		}
		items = append(items, domain.InvoiceLineItem{
			Source:      domain.SourceRoom,
			Description: fmt.Sprintf("Extra bed, %d bed(s) × %d night(s)", stay.ExtraBeds, p.Nights),
			Quantity:    qty,
			UnitPrice:   p.ExtraBedFee / domain.Money(qty),
			Amount:      p.ExtraBedFee,
		})
	}

	return items
}

func singleItem(description string, amount domain.Money) domain.InvoiceLineItem {
	return domain.InvoiceLineItem{
		Source:      domain.SourceRoom,
		Description: description,
		Quantity:    1,
		UnitPrice:   amount,
		Amount:      amount,
	}
}

func chargeItems(charges []domain.Charge) []domain.InvoiceLineItem {
	items := make([]domain.InvoiceLineItem, 0, len(charges))
	for _, c := range charges {
		items = append(items, domain.InvoiceLineItem{
			Source:      c.Source,
			SourceID:    c.SourceID,
			Description: c.Description,
			Quantity:    c.Quantity,
			UnitPrice:   c.UnitPrice,
			Amount:      c.Amount,
		})
	}
	return items
}
