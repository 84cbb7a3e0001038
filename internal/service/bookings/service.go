package bookings

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-RoomBookingService/internal/infra/storage/booking"
	"github.com/m04kA/SMC-RoomBookingService/internal/service/bookings/models"
)

// Service booking reads and the check-in / check-out transitions
type Service struct {
	bookingRepo    BookingRepository
	paymentRepo    PaymentRepository
	assignmentRepo AssignmentRepository
	roomRepo       RoomRepository
	txManager      TransactionManager
	timeProvider   TimeProvider
	logger         Logger
}

// NewService creates a bookings service
func NewService(
	bookingRepo BookingRepository,
	paymentRepo PaymentRepository,
	assignmentRepo AssignmentRepository,
	roomRepo RoomRepository,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo:    bookingRepo,
		paymentRepo:    paymentRepo,
		assignmentRepo: assignmentRepo,
		roomRepo:       roomRepo,
		txManager:      txManager,
		timeProvider:   realTime{},
		logger:         logger,
	}
}

// WithTimeProvider overrides the clock
func (s *Service) WithTimeProvider(tp TimeProvider) *Service {
	s.timeProvider = tp
	return s
}

// GetByID booking with stay, primary guest and payment transactions
func (s *Service) GetByID(ctx context.Context, id int64) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%d", id)

	details, err := s.getDetails(ctx, "GetByID", id)
	if err != nil {
		return nil, err
	}

	txs, err := s.paymentRepo.ListByBooking(ctx, id)
	if err != nil {
		s.logger.Error("GetByID: failed to list payments of booking id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - list payments: %w", ErrInternal, err)
	}

	resp := models.FromDomainDetails(details)
	resp.Payments = models.FromDomainPayments(txs)
	return &resp, nil
}

// List bookings newest first. Dates select stays overlapping [From, To).
func (s *Service) List(ctx context.Context, req *models.ListBookingsRequest) (*models.BookingListResponse, error) {
	filter, err := s.toFilter(req)
	if err != nil {
		s.logger.Warn("List: invalid filter: %v", err)
		return nil, err
	}

	s.logger.Info("List: status=%v, category=%v, search=%q, limit=%d, offset=%d",
		filter.Status, filter.CategoryID, filter.Search, filter.Limit, filter.Offset)

	items, err := s.bookingRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %w", ErrInternal, err)
	}

	resp := &models.BookingListResponse{
		Bookings: make([]models.BookingResponse, 0, len(items)),
		Limit:    filter.Limit,
		Offset:   filter.Offset,
	}
	for _, d := range items {
		resp.Bookings = append(resp.Bookings, models.FromDomainDetails(d))
	}
	return resp, nil
}

// ListAssignments audit trail of room bindings of a booking
func (s *Service) ListAssignments(ctx context.Context, bookingID int64) (*models.AssignmentListResponse, error) {
	if _, err := s.getDetails(ctx, "ListAssignments", bookingID); err != nil {
		return nil, err
	}

	items, err := s.assignmentRepo.ListByBooking(ctx, bookingID)
	if err != nil {
		s.logger.Error("ListAssignments: repository error for booking id=%d: %v", bookingID, err)
		return nil, fmt.Errorf("%w: ListAssignments - repository error: %w", ErrInternal, err)
	}

	return models.FromDomainAssignments(bookingID, items), nil
}

// CheckIn moves a confirmed booking with a bound room to checked_in and marks the room occupied
func (s *Service) CheckIn(ctx context.Context, bookingID int64) (*models.StatusChangeResponse, error) {
	s.logger.Info("CheckIn: booking=%d", bookingID)

	now := s.timeProvider.Now()
	var (
		booking *domain.Booking
		roomID  int64
	)

	err := s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		var err error
		booking, err = s.lockBooking(txCtx, "CheckIn", bookingID)
		if err != nil {
			return err
		}

		if !booking.CanCheckIn() {
			s.logger.Warn("CheckIn: booking id=%d has status %s", booking.ID, booking.Status)
			return fmt.Errorf("%w: status is %s", ErrCannotCheckIn, booking.Status)
		}

		stay, err := s.bookingRepo.GetStay(txCtx, booking.ID)
		if err != nil {
			s.logger.Error("CheckIn: failed to get stay of booking id=%d: %v", booking.ID, err)
			return fmt.Errorf("%w: CheckIn - get stay: %w", ErrInternal, err)
		}

		var assigned bool
		roomID, assigned = stay.Room.RoomID()
		if !assigned {
			s.logger.Warn("CheckIn: booking id=%d has no room", booking.ID)
			return ErrRoomNotAssigned
		}

		booking.Status = domain.StatusCheckedIn
		booking.CheckedInAt = &now
		booking.UpdatedAt = now
		if err := s.bookingRepo.Update(txCtx, booking); err != nil {
			s.logger.Error("CheckIn: failed to update booking id=%d: %v", booking.ID, err)
			return fmt.Errorf("%w: CheckIn - update booking: %w", ErrInternal, err)
		}

		if err := s.roomRepo.UpdateStatus(txCtx, roomID, domain.RoomOccupied, nil, now); err != nil {
			s.logger.Error("CheckIn: failed to mark room id=%d occupied: %v", roomID, err)
			return fmt.Errorf("%w: CheckIn - update room: %w", ErrInternal, err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("CheckIn: booking %s checked in to room id=%d", booking.Reference, roomID)
	return &models.StatusChangeResponse{
		BookingID: booking.ID,
		Reference: booking.Reference,
		Status:    string(booking.Status),
		RoomID:    &roomID,
		At:        now,
	}, nil
}

// CheckOut completes a checked-in booking and sends its room to cleaning
func (s *Service) CheckOut(ctx context.Context, bookingID int64) (*models.StatusChangeResponse, error) {
	s.logger.Info("CheckOut: booking=%d", bookingID)

	now := s.timeProvider.Now()
	var (
		booking *domain.Booking
		room    domain.RoomBinding
	)

	err := s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		var err error
		booking, err = s.lockBooking(txCtx, "CheckOut", bookingID)
		if err != nil {
			return err
		}

		if !booking.CanCheckOut() {
			s.logger.Warn("CheckOut: booking id=%d has status %s", booking.ID, booking.Status)
			return fmt.Errorf("%w: status is %s", ErrCannotCheckOut, booking.Status)
		}

		stay, err := s.bookingRepo.GetStay(txCtx, booking.ID)
		if err != nil {
			s.logger.Error("CheckOut: failed to get stay of booking id=%d: %v", booking.ID, err)
			return fmt.Errorf("%w: CheckOut - get stay: %w", ErrInternal, err)
		}
		room = stay.Room

		booking.Status = domain.StatusCheckedOut
		booking.CheckedOutAt = &now
		booking.UpdatedAt = now
		if err := s.bookingRepo.Update(txCtx, booking); err != nil {
			s.logger.Error("CheckOut: failed to update booking id=%d: %v", booking.ID, err)
			return fmt.Errorf("%w: CheckOut - update booking: %w", ErrInternal, err)
		}

		if roomID, ok := room.RoomID(); ok {
			if err := s.roomRepo.UpdateStatus(txCtx, roomID, domain.RoomCleaning, nil, now); err != nil {
				s.logger.Error("CheckOut: failed to send room id=%d to cleaning: %v", roomID, err)
				return fmt.Errorf("%w: CheckOut - update room: %w", ErrInternal, err)
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("CheckOut: booking %s checked out", booking.Reference)
	return &models.StatusChangeResponse{
		BookingID: booking.ID,
		Reference: booking.Reference,
		Status:    string(booking.Status),
		RoomID:    room.Ptr(),
		At:        now,
	}, nil
}

func (s *Service) getDetails(ctx context.Context, op string, id int64) (*domain.BookingDetails, error) {
	details, err := s.bookingRepo.GetDetails(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("%s: booking id=%d not found", op, id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("%s: repository error for booking id=%d: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %w", ErrInternal, op, err)
	}
	return details, nil
}

func (s *Service) lockBooking(ctx context.Context, op string, id int64) (*domain.Booking, error) {
	booking, err := s.bookingRepo.LockByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("%s: booking id=%d not found", op, id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("%s: failed to lock booking id=%d: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - lock booking: %w", ErrInternal, op, err)
	}
	return booking, nil
}

func (s *Service) toFilter(req *models.ListBookingsRequest) (domain.BookingsFilter, error) {
	filter := domain.BookingsFilter{
		CategoryID: req.CategoryID,
		From:       req.From,
		To:         req.To,
		Search:     strings.TrimSpace(req.Search),
		Limit:      req.Limit,
		Offset:     req.Offset,
	}

	if req.Status != nil {
		status, err := models.ToDomainBookingStatus(*req.Status)
		if err != nil {
			return filter, fmt.Errorf("%w: unknown status %q", ErrInvalidInput, *req.Status)
		}
		filter.Status = &status
	}

	if filter.From != nil && filter.To != nil && !filter.To.After(*filter.From) {
		return filter, fmt.Errorf("%w: to must be after from", ErrInvalidInput)
	}

	switch {
	case filter.Limit < 0 || filter.Offset < 0:
		return filter, fmt.Errorf("%w: limit and offset must not be negative", ErrInvalidInput)
	case filter.Limit == 0:
		filter.Limit = domain.DefaultListLimit
	case filter.Limit > domain.MaxListLimit:
		filter.Limit = domain.MaxListLimit
	}

	return filter, nil
}
