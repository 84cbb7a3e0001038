package assign_room

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-RoomBookingService/internal/infra/storage/booking"
)

// Unassign releases the room of a booking. Unassigning a booking without a
// room is a no-op.
func (uc *UseCase) Unassign(ctx context.Context, req *UnassignRequest) (*UnassignResponse, error) {
	uc.logger.Info("Unassign: booking=%d", req.BookingID)

	if err := validateUnassign(req); err != nil {
		uc.logger.Warn("Unassign: validation failed: %v", err)
		return nil, err
	}

	reason := strings.TrimSpace(req.Reason)
	if reason == "" {
		reason = DefaultUnassignReason
	}

	now := uc.timeProvider.Now()
	resp := &UnassignResponse{BookingID: req.BookingID}
	var booking *domain.Booking

	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		var err error

		booking, err = uc.bookingRepo.LockByID(txCtx, req.BookingID)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				uc.logger.Warn("Unassign: booking id=%d not found", req.BookingID)
				return ErrBookingNotFound
			}
			uc.logger.Error("Unassign: failed to lock booking id=%d: %v", req.BookingID, err)
			return fmt.Errorf("%w: failed to lock booking: %w", ErrInternal, err)
		}

		stay, err := uc.bookingRepo.GetStay(txCtx, booking.ID)
		if err != nil {
			uc.logger.Error("Unassign: failed to get stay of booking id=%d: %v", booking.ID, err)
			return fmt.Errorf("%w: failed to get stay: %w", ErrInternal, err)
		}

		roomID, assigned := stay.Room.RoomID()
		if !assigned {
			return nil
		}

		if !booking.CanAssignRoom() {
			uc.logger.Warn("Unassign: booking id=%d is %s", booking.ID, booking.Status)
			return fmt.Errorf("%w: status %s", ErrInvalidBookingState, booking.Status)
		}

		if err := uc.bookingRepo.SetRoom(txCtx, booking.ID, domain.Unassigned()); err != nil {
			uc.logger.Error("Unassign: failed to clear room of booking id=%d: %v", booking.ID, err)
			return fmt.Errorf("%w: failed to clear room: %w", ErrInternal, err)
		}

		if _, err := uc.assignmentRepo.CloseOpen(txCtx, booking.ID, reason, now); err != nil {
			uc.logger.Error("Unassign: failed to close assignment of booking id=%d: %v", booking.ID, err)
			return fmt.Errorf("%w: failed to close assignment: %w", ErrInternal, err)
		}

		resp.ReleasedRoomID = &roomID
		resp.Changed = true
		return nil
	})
	if err != nil {
		return nil, err
	}

	if !resp.Changed {
		uc.logger.Info("Unassign: booking id=%d has no room", booking.ID)
		return resp, nil
	}

	uc.publisher.Publish(ctx, domain.Event{
		Type:       domain.EventRoomUnassigned,
		BookingID:  booking.ID,
		Reference:  booking.Reference,
		Attributes: map[string]string{"roomId": strconv.FormatInt(*resp.ReleasedRoomID, 10), "reason": reason},
		OccurredAt: now,
	})

	uc.logger.Info("Unassign: booking id=%d released room id=%d", booking.ID, *resp.ReleasedRoomID)
	return resp, nil
}
