package assign_room

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-RoomBookingService/internal/infra/storage/booking"
	roomRepo "github.com/m04kA/SMC-RoomBookingService/internal/infra/storage/room"
	"github.com/m04kA/SMC-RoomBookingService/internal/service/roomscoring"
)

// UseCase binds physical rooms to bookings
type UseCase struct {
	bookingRepo    BookingRepository
	roomRepo       RoomRepository
	assignmentRepo AssignmentRepository
	availability   AvailabilityChecker
	scorer         roomscoring.Scorer
	txManager      TransactionManager
	publisher      EventPublisher
	metrics        Metrics
	timeProvider   TimeProvider
	logger         Logger
}

// NewUseCase creates a new room assignment use case
func NewUseCase(
	bookingRepo BookingRepository,
	roomRepo RoomRepository,
	assignmentRepo AssignmentRepository,
	availability AvailabilityChecker,
	scorer roomscoring.Scorer,
	txManager TransactionManager,
	publisher EventPublisher,
	metrics Metrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:    bookingRepo,
		roomRepo:       roomRepo,
		assignmentRepo: assignmentRepo,
		availability:   availability,
		scorer:         scorer,
		txManager:      txManager,
		publisher:      publisher,
		metrics:        metrics,
		timeProvider:   &RealTimeProvider{},
		logger:         logger,
	}
}

// WithTimeProvider overrides the clock
func (uc *UseCase) WithTimeProvider(tp TimeProvider) *UseCase {
	uc.timeProvider = tp
	return uc
}

// Assign binds the room chosen by staff. Re-assigning the same room is a no-op.
func (uc *UseCase) Assign(ctx context.Context, req *AssignRequest) (*AssignResponse, error) {
	uc.logger.Info("Assign: booking=%d, room=%d", req.BookingID, req.RoomID)

	if err := validateAssign(req); err != nil {
		uc.logger.Warn("Assign: validation failed: %v", err)
		return nil, err
	}

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
		booking, stay, err = uc.lockAssignable(txCtx, req.BookingID, "Assign")
		if err != nil {
			return err
		}

		// 2. Existing binding
		if current, assigned := stay.Room.RoomID(); assigned {
			if current != req.RoomID {
				uc.logger.Warn("Assign: booking id=%d already holds room id=%d", booking.ID, current)
				return fmt.Errorf("%w: current room %d", ErrAlreadyAssigned, current)
			}
		}

		// 3. Room must exist, match and be usable
		room, err := uc.roomRepo.LockRoom(txCtx, req.RoomID)
		if err != nil {
			if errors.Is(err, roomRepo.ErrRoomNotFound) {
				uc.logger.Warn("Assign: room id=%d not found", req.RoomID)
				return ErrRoomNotFound
			}
			uc.logger.Error("Assign: failed to lock room id=%d: %v", req.RoomID, err)
			return fmt.Errorf("%w: failed to lock room: %w", ErrInternal, err)
		}

		if stay.Room.IsAssigned() {
			resp = &AssignResponse{
				BookingID:  booking.ID,
				RoomID:     room.ID,
				RoomNumber: room.Number,
				Mode:       domain.AssignManual,
			}
			return nil
		}

		if room.CategoryID != stay.CategoryID {
			uc.logger.Warn("Assign: room id=%d is in category id=%d, booking id=%d in id=%d",
				room.ID, room.CategoryID, booking.ID, stay.CategoryID)
			return fmt.Errorf("%w: room category %d, booking category %d", ErrCategoryMismatch, room.CategoryID, stay.CategoryID)
		}

		if !room.CanBeAssigned() {
			uc.logger.Warn("Assign: room id=%d is %s", room.ID, room.Status)
			return fmt.Errorf("%w: status %s", ErrRoomUnavailable, room.Status)
		}

		// 4. No overlapping active stay on that room
		overlapping, err := uc.bookingRepo.ListActiveStaysForRooms(txCtx, []int64{room.ID}, stay.Dates, booking.ID)
		if err != nil {
			uc.logger.Error("Assign: failed to list stays of room id=%d: %v", room.ID, err)
			return fmt.Errorf("%w: failed to list room stays: %w", ErrInternal, err)
		}
		if len(overlapping) > 0 {
			uc.logger.Warn("Assign: room id=%d is held by booking id=%d for %s..%s",
				room.ID, overlapping[0].BookingID, overlapping[0].Dates.CheckIn, overlapping[0].Dates.CheckOut)
			return fmt.Errorf("%w: held by booking %d", ErrRoomOccupied, overlapping[0].BookingID)
		}

		// 5. Bind and audit
		assignment, err := uc.bind(txCtx, booking.ID, room, domain.AssignManual, req.AssignedBy, req.Note, now)
		if err != nil {
			return err
		}

		resp = &AssignResponse{
			BookingID:    booking.ID,
			RoomID:       room.ID,
			RoomNumber:   room.Number,
			Mode:         domain.AssignManual,
			Changed:      true,
			AssignmentID: &assignment.ID,
			AssignedAt:   &assignment.AssignedAt,
		}
		return nil
	})
	if err != nil {
		uc.metrics.RoomAssignment(modeManual, outcomeFailed)
		return nil, err
	}

	uc.afterAssign(ctx, booking, resp, modeManual, now)
	return resp, nil
}

// lockAssignable locks the booking and loads its stay; the booking must be
// pending or confirmed
func (uc *UseCase) lockAssignable(txCtx context.Context, bookingID int64, op string) (*domain.Booking, *domain.StayDetail, error) {
	booking, err := uc.bookingRepo.LockByID(txCtx, bookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			uc.logger.Warn("%s: booking id=%d not found", op, bookingID)
			return nil, nil, ErrBookingNotFound
		}
		uc.logger.Error("%s: failed to lock booking id=%d: %v", op, bookingID, err)
		return nil, nil, fmt.Errorf("%w: failed to lock booking: %w", ErrInternal, err)
	}

	if !booking.CanAssignRoom() {
		uc.logger.Warn("%s: booking id=%d is %s", op, booking.ID, booking.Status)
		return nil, nil, fmt.Errorf("%w: status %s", ErrInvalidBookingState, booking.Status)
	}

	stay, err := uc.bookingRepo.GetStay(txCtx, booking.ID)
	if err != nil {
		uc.logger.Error("%s: failed to get stay of booking id=%d: %v", op, booking.ID, err)
		return nil, nil, fmt.Errorf("%w: failed to get stay: %w", ErrInternal, err)
	}

	return booking, stay, nil
}

// bind writes the binding and opens an audit row
func (uc *UseCase) bind(
	txCtx context.Context,
	bookingID int64,
	room *domain.Room,
	mode domain.AssignMode,
	assignedBy, note *string,
	now time.Time,
) (*domain.RoomAssignment, error) {
	if err := uc.bookingRepo.SetRoom(txCtx, bookingID, domain.AssignedTo(room.ID)); err != nil {
		if errors.Is(err, bookingRepo.ErrRoomOverlap) {
			uc.logger.Warn("bind: room id=%d taken concurrently", room.ID)
			return nil, fmt.Errorf("%w: room %s", ErrRoomOccupied, room.Number)
		}
		uc.logger.Error("bind: failed to bind room id=%d to booking id=%d: %v", room.ID, bookingID, err)
		return nil, fmt.Errorf("%w: failed to bind room: %w", ErrInternal, err)
	}

	assignment, err := uc.assignmentRepo.Create(txCtx, &domain.RoomAssignment{
		BookingID:  bookingID,
		RoomID:     room.ID,
		Mode:       mode,
		AssignedBy: assignedBy,
		Note:       note,
		AssignedAt: now,
	})
	if err != nil {
		uc.logger.Error("bind: failed to audit assignment of booking id=%d: %v", bookingID, err)
		return nil, fmt.Errorf("%w: failed to create assignment: %w", ErrInternal, err)
	}

	return assignment, nil
}

// afterAssign records metrics and publishes the event of a committed binding
func (uc *UseCase) afterAssign(ctx context.Context, booking *domain.Booking, resp *AssignResponse, mode string, now time.Time) {
	if !resp.Changed {
		uc.metrics.RoomAssignment(mode, outcomeNoop)
		uc.logger.Info("%s assign: booking id=%d already holds room %s", mode, booking.ID, resp.RoomNumber)
		return
	}

	uc.metrics.RoomAssignment(mode, outcomeAssigned)
	uc.publisher.Publish(ctx, domain.Event{
		Type:      domain.EventRoomAssigned,
		BookingID: booking.ID,
		Reference: booking.Reference,
		Attributes: map[string]string{
			"roomId":     strconv.FormatInt(resp.RoomID, 10),
			"roomNumber": resp.RoomNumber,
			"mode":       string(resp.Mode),
		},
		OccurredAt: now,
	})
	uc.logger.Info("%s assign: booking id=%d bound to room %s", mode, booking.ID, resp.RoomNumber)
}
