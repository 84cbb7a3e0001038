package assign_room

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
	roomRepo "github.com/m04kA/SMC-RoomBookingService/internal/infra/storage/room"
	"github.com/m04kA/SMC-RoomBookingService/internal/service/roomscoring"
	"github.com/m04kA/SMC-RoomBookingService/pkg/ptr"
)

// AutoAssign picks the best free room of the booking's category.
// A booking that already holds a room is returned unchanged.
func (uc *UseCase) AutoAssign(ctx context.Context, req *AutoAssignRequest) (*AssignResponse, error) {
	uc.logger.Info("AutoAssign: booking=%d", req.BookingID)

	if err := validateAutoAssign(req); err != nil {
		uc.logger.Warn("AutoAssign: validation failed: %v", err)
		return nil, err
	}

	return uc.autoAssign(ctx, req, modeAuto)
}

// BulkAutoAssign auto-assigns each booking in its own transaction.
// A failure of one booking does not affect the others. Once ctx is done the
// remaining bookings are reported with the context error.
func (uc *UseCase) BulkAutoAssign(ctx context.Context, req *BulkAutoAssignRequest) (*BulkAutoAssignResponse, error) {
	uc.logger.Info("BulkAutoAssign: %d bookings", len(req.BookingIDs))

	if err := validateBulk(req); err != nil {
		uc.logger.Warn("BulkAutoAssign: validation failed: %v", err)
		return nil, err
	}

	resp := &BulkAutoAssignResponse{Results: make([]BulkResult, 0, len(req.BookingIDs))}
	for _, id := range req.BookingIDs {
		result := BulkResult{BookingID: id}

		if err := ctx.Err(); err != nil {
			result.ErrorCode = ptr.Ptr(domain.Category(err))
			result.Message = ptr.Ptr(err.Error())
			resp.Failed++
			resp.Results = append(resp.Results, result)
			continue
		}

		assigned, err := uc.autoAssign(ctx, &AutoAssignRequest{
			BookingID:   id,
			Preferences: req.Preferences,
			AssignedBy:  req.AssignedBy,
		}, modeBulk)
		if err != nil {
			result.ErrorCode = ptr.Ptr(domain.Category(err))
			result.Message = ptr.Ptr(err.Error())
			resp.Failed++
		} else {
			result.RoomID = ptr.Ptr(assigned.RoomID)
			result.RoomNumber = ptr.Ptr(assigned.RoomNumber)
			resp.Assigned++
		}
		resp.Results = append(resp.Results, result)
	}

	uc.logger.Info("BulkAutoAssign: assigned=%d, failed=%d", resp.Assigned, resp.Failed)
	return resp, nil
}

func (uc *UseCase) autoAssign(ctx context.Context, req *AutoAssignRequest, mode string) (*AssignResponse, error) {
	now := uc.timeProvider.Now()
	var (
		resp    *AssignResponse
		booking *domain.Booking
	)

	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		var (
			stay *domain.StayDetail
			err  error
		)

		// 1. Booking must accept a room
		booking, stay, err = uc.lockAssignable(txCtx, req.BookingID, "AutoAssign")
		if err != nil {
			return err
		}

		if current, assigned := stay.Room.RoomID(); assigned {
			room, err := uc.roomRepo.LockRoom(txCtx, current)
			if err != nil {
				if errors.Is(err, roomRepo.ErrRoomNotFound) {
					return ErrRoomNotFound
				}
				return fmt.Errorf("%w: failed to lock room: %w", ErrInternal, err)
			}
			resp = &AssignResponse{
				BookingID:  booking.ID,
				RoomID:     room.ID,
				RoomNumber: room.Number,
				Mode:       domain.AssignAuto,
			}
			return nil
		}

		// 2. Lock available rooms of the category in id order
		rooms, err := uc.roomRepo.LockRooms(txCtx, stay.CategoryID, domain.RoomAvailable)
		if err != nil {
			uc.logger.Error("AutoAssign: failed to lock rooms of category id=%d: %v", stay.CategoryID, err)
			return fmt.Errorf("%w: failed to lock rooms: %w", ErrInternal, err)
		}

		candidates, err := uc.freeRooms(txCtx, rooms, stay.Dates, booking.ID)
		if err != nil {
			return err
		}
		if len(candidates) == 0 {
			uc.logger.Warn("AutoAssign: no free room in category id=%d for %s..%s",
				stay.CategoryID, stay.Dates.CheckIn, stay.Dates.CheckOut)
			return ErrNoRoomAvailable
		}

		// 3. Highest score wins
		best := roomscoring.Best(uc.scorer, candidates, req.Preferences, now)
		score := uc.scorer.Score(best, req.Preferences, now)

		assignment, err := uc.bind(txCtx, booking.ID, best, domain.AssignAuto, req.AssignedBy, nil, now)
		if err != nil {
			return err
		}

		resp = &AssignResponse{
			BookingID:    booking.ID,
			RoomID:       best.ID,
			RoomNumber:   best.Number,
			Mode:         domain.AssignAuto,
			Changed:      true,
			AssignmentID: &assignment.ID,
			AssignedAt:   &assignment.AssignedAt,
			Score:        &score,
		}
		return nil
	})
	if err != nil {
		uc.metrics.RoomAssignment(mode, outcomeFailed)
		return nil, err
	}

	uc.afterAssign(ctx, booking, resp, mode, now)
	return resp, nil
}

// freeRooms filters out rooms bound to an active stay overlapping dates
func (uc *UseCase) freeRooms(ctx context.Context, rooms []*domain.Room, dates domain.DateRange, excludeBookingID int64) ([]*domain.Room, error) {
	if len(rooms) == 0 {
		return []*domain.Room{}, nil
	}

	ids := make([]int64, len(rooms))
	for i, room := range rooms {
		ids[i] = room.ID
	}

	stays, err := uc.bookingRepo.ListActiveStaysForRooms(ctx, ids, dates, excludeBookingID)
	if err != nil {
		uc.logger.Error("freeRooms: failed to list stays of %d rooms: %v", len(ids), err)
		return nil, fmt.Errorf("%w: failed to list room stays: %w", ErrInternal, err)
	}

	busy := make(map[int64]bool, len(stays))
	for _, stay := range stays {
		if id, ok := stay.Room.RoomID(); ok {
			busy[id] = true
		}
	}

	free := make([]*domain.Room, 0, len(rooms))
	for _, room := range rooms {
		if !busy[room.ID] {
			free = append(free, room)
		}
	}
	return free, nil
}
