package confirm_payment

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-RoomBookingService/internal/infra/storage/booking"
	paymentRepo "github.com/m04kA/SMC-RoomBookingService/internal/infra/storage/payment"
)

// UseCase captures the payment opened at booking time and confirms the booking
type UseCase struct {
	bookingRepo  BookingRepository
	paymentRepo  PaymentRepository
	txManager    TransactionManager
	publisher    EventPublisher
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase creates a new confirm payment use case
func NewUseCase(
	bookingRepo BookingRepository,
	paymentRepo PaymentRepository,
	txManager TransactionManager,
	publisher EventPublisher,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		paymentRepo:  paymentRepo,
		txManager:    txManager,
		publisher:    publisher,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// WithTimeProvider overrides the clock
func (uc *UseCase) WithTimeProvider(tp TimeProvider) *UseCase {
	uc.timeProvider = tp
	return uc
}

// Execute marks the transaction completed and the booking paid.
// A pending booking becomes confirmed; a confirmed or checked-in one keeps its status.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("ConfirmPayment: booking=%d, transaction=%d", req.BookingID, req.TransactionID)

	if err := validateRequest(req); err != nil {
		uc.logger.Warn("ConfirmPayment: validation failed: %v", err)
		return nil, err
	}

	now := uc.timeProvider.Now()
	var booking *domain.Booking

	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 1. Transaction must belong to the booking and still be pending
		tx, err := uc.paymentRepo.LockByID(txCtx, req.TransactionID)
		if err != nil {
			if errors.Is(err, paymentRepo.ErrTransactionNotFound) {
				uc.logger.Warn("ConfirmPayment: transaction id=%d not found", req.TransactionID)
				return ErrTransactionNotFound
			}
			uc.logger.Error("ConfirmPayment: failed to lock transaction id=%d: %v", req.TransactionID, err)
			return fmt.Errorf("%w: failed to lock transaction: %w", ErrInternal, err)
		}

		if tx.BookingID != req.BookingID {
			uc.logger.Warn("ConfirmPayment: transaction id=%d belongs to booking id=%d, not %d",
				tx.ID, tx.BookingID, req.BookingID)
			return ErrTransactionNotFound
		}

		if !tx.IsPending() {
			uc.logger.Warn("ConfirmPayment: transaction id=%d is already %s", tx.ID, tx.Status)
			return fmt.Errorf("%w: status %s", ErrAlreadyCompleted, tx.Status)
		}

		// 2. Booking must still be payable
		booking, err = uc.bookingRepo.LockByID(txCtx, req.BookingID)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				uc.logger.Warn("ConfirmPayment: booking id=%d not found", req.BookingID)
				return ErrBookingNotFound
			}
			uc.logger.Error("ConfirmPayment: failed to lock booking id=%d: %v", req.BookingID, err)
			return fmt.Errorf("%w: failed to lock booking: %w", ErrInternal, err)
		}

		if booking.IsCancelled() || booking.IsCompleted() {
			uc.logger.Warn("ConfirmPayment: booking id=%d is %s", booking.ID, booking.Status)
			return fmt.Errorf("%w: status %s", ErrBookingNotPayable, booking.Status)
		}

		// 3. Capture and confirm
		if err := uc.paymentRepo.MarkCompleted(txCtx, tx.ID, now); err != nil {
			uc.logger.Error("ConfirmPayment: failed to complete transaction id=%d: %v", tx.ID, err)
			return fmt.Errorf("%w: failed to complete transaction: %w", ErrInternal, err)
		}

		if booking.Status == domain.StatusPending {
			booking.Status = domain.StatusConfirmed
		}
		if booking.ConfirmedAt == nil {
			booking.ConfirmedAt = &now
		}
		booking.PaymentStatus = domain.PaymentPaid
		booking.UpdatedAt = now

		if err := uc.bookingRepo.Update(txCtx, booking); err != nil {
			uc.logger.Error("ConfirmPayment: failed to update booking id=%d: %v", booking.ID, err)
			return fmt.Errorf("%w: failed to update booking: %w", ErrInternal, err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.publisher.Publish(ctx, domain.Event{
		Type:       domain.EventBookingConfirmed,
		BookingID:  booking.ID,
		Reference:  booking.Reference,
		Attributes: map[string]string{"transactionId": fmt.Sprintf("%d", req.TransactionID)},
		OccurredAt: now,
	})

	uc.logger.Info("ConfirmPayment: booking id=%d confirmed", booking.ID)

	return &Response{
		BookingID:     booking.ID,
		Reference:     booking.Reference,
		TransactionID: req.TransactionID,
		Status:        booking.Status,
		PaymentStatus: booking.PaymentStatus,
		ConfirmedAt:   *booking.ConfirmedAt,
	}, nil
}
