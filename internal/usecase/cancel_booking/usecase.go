package cancel_booking

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-RoomBookingService/internal/infra/storage/booking"
)

// UseCase cancels bookings
type UseCase struct {
	bookingRepo    BookingRepository
	paymentRepo    PaymentRepository
	assignmentRepo AssignmentRepository
	txManager      TransactionManager
	publisher      EventPublisher
	timeProvider   TimeProvider
	logger         Logger
}

// NewUseCase creates a new cancel booking use case
func NewUseCase(
	bookingRepo BookingRepository,
	paymentRepo PaymentRepository,
	assignmentRepo AssignmentRepository,
	txManager TransactionManager,
	publisher EventPublisher,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:    bookingRepo,
		paymentRepo:    paymentRepo,
		assignmentRepo: assignmentRepo,
		txManager:      txManager,
		publisher:      publisher,
		timeProvider:   &RealTimeProvider{},
		logger:         logger,
	}
}

// WithTimeProvider overrides the clock
func (uc *UseCase) WithTimeProvider(tp TimeProvider) *UseCase {
	uc.timeProvider = tp
	return uc
}

// Execute cancels the booking, refunds captured payments and releases the room.
// The room is free for overlapping bookings as soon as the transaction commits.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CancelBooking: booking=%d", req.BookingID)

	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CancelBooking: validation failed: %v", err)
		return nil, err
	}

	now := uc.timeProvider.Now()
	reason := strings.TrimSpace(req.Reason)

	var (
		booking  *domain.Booking
		refunded int
		released *int64
	)

	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		var err error

		// 1. Lock the booking and check its state
		booking, err = uc.bookingRepo.LockByID(txCtx, req.BookingID)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				uc.logger.Warn("CancelBooking: booking id=%d not found", req.BookingID)
				return ErrBookingNotFound
			}
			uc.logger.Error("CancelBooking: failed to lock booking id=%d: %v", req.BookingID, err)
			return fmt.Errorf("%w: failed to lock booking: %w", ErrInternal, err)
		}

		if !booking.CanBeCancelled() {
			uc.logger.Warn("CancelBooking: booking id=%d is already %s", booking.ID, booking.Status)
			return fmt.Errorf("%w: status %s", ErrAlreadyFinal, booking.Status)
		}

		// 2. Refund captured payments
		if booking.PaymentStatus == domain.PaymentPaid {
			refunded, err = uc.paymentRepo.RefundCompleted(txCtx, booking.ID, now)
			if err != nil {
				uc.logger.Error("CancelBooking: failed to refund transactions of booking id=%d: %v", booking.ID, err)
				return fmt.Errorf("%w: failed to refund transactions: %w", ErrInternal, err)
			}
			booking.PaymentStatus = domain.PaymentRefunded
		}

		// 3. Release the room
		stay, err := uc.bookingRepo.GetStay(txCtx, booking.ID)
		if err != nil {
			uc.logger.Error("CancelBooking: failed to get stay of booking id=%d: %v", booking.ID, err)
			return fmt.Errorf("%w: failed to get stay: %w", ErrInternal, err)
		}

		if roomID, assigned := stay.Room.RoomID(); assigned {
			if err := uc.bookingRepo.SetRoom(txCtx, booking.ID, domain.Unassigned()); err != nil {
				uc.logger.Error("CancelBooking: failed to clear room of booking id=%d: %v", booking.ID, err)
				return fmt.Errorf("%w: failed to clear room: %w", ErrInternal, err)
			}
			if _, err := uc.assignmentRepo.CloseOpen(txCtx, booking.ID, UnassignReason, now); err != nil {
				uc.logger.Error("CancelBooking: failed to close assignment of booking id=%d: %v", booking.ID, err)
				return fmt.Errorf("%w: failed to close assignment: %w", ErrInternal, err)
			}
			released = &roomID
		}

		// 4. Persist the cancellation
		booking.Status = domain.StatusCancelled
		booking.CancellationReason = &reason
		booking.CancelledAt = &now
		booking.UpdatedAt = now

		if err := uc.bookingRepo.Update(txCtx, booking); err != nil {
			uc.logger.Error("CancelBooking: failed to update booking id=%d: %v", booking.ID, err)
			return fmt.Errorf("%w: failed to update booking: %w", ErrInternal, err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.publisher.Publish(ctx, domain.Event{
		Type:       domain.EventBookingCancelled,
		BookingID:  booking.ID,
		Reference:  booking.Reference,
		Attributes: map[string]string{"reason": reason},
		OccurredAt: now,
	})
	if released != nil {
		uc.publisher.Publish(ctx, domain.Event{
			Type:       domain.EventRoomUnassigned,
			BookingID:  booking.ID,
			Reference:  booking.Reference,
			Attributes: map[string]string{"roomId": fmt.Sprintf("%d", *released), "reason": UnassignReason},
			OccurredAt: now,
		})
	}

	uc.logger.Info("CancelBooking: booking id=%d cancelled, refunded=%d", booking.ID, refunded)

	return &Response{
		BookingID:            booking.ID,
		Reference:            booking.Reference,
		Status:               booking.Status,
		PaymentStatus:        booking.PaymentStatus,
		CancellationReason:   reason,
		CancelledAt:          now,
		RefundedTransactions: refunded,
		ReleasedRoomID:       released,
	}, nil
}
