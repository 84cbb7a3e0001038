package record_invoice_payment

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
	invoiceRepo "github.com/m04kA/SMC-RoomBookingService/internal/infra/storage/invoice"
)

// UseCase records payments against invoices
type UseCase struct {
	invoiceRepo  InvoiceRepository
	bookingRepo  BookingRepository
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase creates a new record invoice payment use case
func NewUseCase(
	invoiceRepo InvoiceRepository,
	bookingRepo BookingRepository,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		invoiceRepo:  invoiceRepo,
		bookingRepo:  bookingRepo,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// WithTimeProvider overrides the clock
func (uc *UseCase) WithTimeProvider(tp TimeProvider) *UseCase {
	uc.timeProvider = tp
	return uc
}

// Execute applies a payment to the invoice balance and mirrors the result on the booking.
// Overpayment is accepted and leaves a negative balance.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("RecordInvoicePayment: invoice=%d, amount=%s", req.InvoiceID, req.Amount)

	if err := validateRequest(req); err != nil {
		uc.logger.Warn("RecordInvoicePayment: validation failed: %v", err)
		return nil, err
	}

	now := uc.timeProvider.Now()
	var (
		invoice *domain.Invoice
		payment *domain.InvoicePayment
		booking *domain.Booking
	)

	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		var err error

		// 1. Lock the invoice
		invoice, err = uc.invoiceRepo.LockByID(txCtx, req.InvoiceID)
		if err != nil {
			if errors.Is(err, invoiceRepo.ErrInvoiceNotFound) {
				uc.logger.Warn("RecordInvoicePayment: invoice id=%d not found", req.InvoiceID)
				return ErrInvoiceNotFound
			}
			uc.logger.Error("RecordInvoicePayment: failed to lock invoice id=%d: %v", req.InvoiceID, err)
			return fmt.Errorf("%w: failed to lock invoice: %w", ErrInternal, err)
		}

		if invoice.IsPaid() {
			uc.logger.Warn("RecordInvoicePayment: invoice %s is already paid", invoice.Number)
			return ErrAlreadyPaid
		}

		// 2. The booking must still be billable
		booking, err = uc.bookingRepo.LockByID(txCtx, invoice.BookingID)
		if err != nil {
			uc.logger.Error("RecordInvoicePayment: failed to lock booking id=%d of invoice %s: %v", invoice.BookingID, invoice.Number, err)
			return fmt.Errorf("%w: failed to lock booking: %w", ErrInternal, err)
		}

		if booking.IsCancelled() {
			uc.logger.Warn("RecordInvoicePayment: booking id=%d of invoice %s is cancelled", booking.ID, invoice.Number)
			return fmt.Errorf("%w: payment status %s", ErrBookingCancelled, booking.PaymentStatus)
		}

		// 3. Apply and persist
		invoice.ApplyPayment(req.Amount)
		invoice.UpdatedAt = now
		if err := uc.invoiceRepo.UpdatePayment(txCtx, invoice); err != nil {
			uc.logger.Error("RecordInvoicePayment: failed to update invoice id=%d: %v", invoice.ID, err)
			return fmt.Errorf("%w: failed to update invoice: %w", ErrInternal, err)
		}

		payment, err = uc.invoiceRepo.AddPayment(txCtx, &domain.InvoicePayment{
			InvoiceID:  invoice.ID,
			Amount:     req.Amount,
			Method:     strings.TrimSpace(req.Method),
			Reference:  req.Reference,
			RecordedAt: now,
		})
		if err != nil {
			uc.logger.Error("RecordInvoicePayment: failed to add payment to invoice id=%d: %v", invoice.ID, err)
			return fmt.Errorf("%w: failed to add payment: %w", ErrInternal, err)
		}

		// 4. Mirror on the booking
		next := bookingPaymentStatus(booking.PaymentStatus, invoice)
		if next == booking.PaymentStatus {
			return nil
		}

		booking.PaymentStatus = next
		booking.UpdatedAt = now
		if err := uc.bookingRepo.Update(txCtx, booking); err != nil {
			uc.logger.Error("RecordInvoicePayment: failed to update booking id=%d: %v", booking.ID, err)
			return fmt.Errorf("%w: failed to update booking: %w", ErrInternal, err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Info("RecordInvoicePayment: invoice %s status=%s, balance=%s",
		invoice.Number, invoice.Status, invoice.BalanceDue)

	return &Response{
		InvoiceID:            invoice.ID,
		Number:               invoice.Number,
		PaymentID:            payment.ID,
		Amount:               payment.Amount,
		AmountPaid:           invoice.AmountPaid,
		BalanceDue:           invoice.BalanceDue,
		Status:               invoice.Status,
		BookingPaymentStatus: booking.PaymentStatus,
		RecordedAt:           payment.RecordedAt,
	}, nil
}

// bookingPaymentStatus payment status of the booking after an invoice payment.
// paid and refunded are kept as they are.
func bookingPaymentStatus(current domain.PaymentStatus, invoice *domain.Invoice) domain.PaymentStatus {
	switch {
	case current == domain.PaymentPaid || current == domain.PaymentRefunded:
		return current
	case invoice.IsPaid():
		return domain.PaymentPaid
	default:
		return domain.PaymentPartiallyPaid
	}
}
