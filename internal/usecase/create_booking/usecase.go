package create_booking

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-RoomBookingService/internal/infra/storage/booking"
	roomRepo "github.com/m04kA/SMC-RoomBookingService/internal/infra/storage/room"
	"github.com/m04kA/SMC-RoomBookingService/internal/service/pricing"
	"github.com/m04kA/SMC-RoomBookingService/pkg/ptr"
)

const referenceSuffixLength = 6

// UseCase creates room-type bookings
type UseCase struct {
	bookingRepo  BookingRepository
	roomRepo     RoomRepository
	guestRepo    GuestRepository
	paymentRepo  PaymentRepository
	availability AvailabilityChecker
	calculator   PriceCalculator
	txManager    TransactionManager
	publisher    EventPublisher
	metrics      Metrics
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase creates a new create booking use case
func NewUseCase(
	bookingRepo BookingRepository,
	roomRepo RoomRepository,
	guestRepo GuestRepository,
	paymentRepo PaymentRepository,
	availability AvailabilityChecker,
	calculator PriceCalculator,
	txManager TransactionManager,
	publisher EventPublisher,
	metrics Metrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		roomRepo:     roomRepo,
		guestRepo:    guestRepo,
		paymentRepo:  paymentRepo,
		availability: availability,
		calculator:   calculator,
		txManager:    txManager,
		publisher:    publisher,
		metrics:      metrics,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// WithTimeProvider overrides the clock
func (uc *UseCase) WithTimeProvider(tp TimeProvider) *UseCase {
	uc.timeProvider = tp
	return uc
}

// Execute creates a booking.
// The category row is locked inside a serializable transaction, so two
// requests for the last free room of a category cannot both succeed.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: category=%d, dates=%s..%s, adults=%d, children=%d, email=%s",
		req.CategoryID, req.CheckIn, req.CheckOut, req.Adults, req.Children, req.Guest.Email)

	// 1. Validate input
	dates, err := validateRequest(req)
	if err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	now := uc.timeProvider.Now()

	var (
		booking *domain.Booking
		stay    *domain.StayDetail
		guest   *domain.GuestProfile
		payment *domain.PaymentTransaction
	)

	// 2. Everything below runs in one serializable transaction
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 2.1. Lock the category to serialize bookings competing for it
		category, err := uc.roomRepo.LockCategory(txCtx, req.CategoryID)
		if err != nil {
			if errors.Is(err, roomRepo.ErrCategoryNotFound) {
				uc.logger.Warn("CreateBooking: category id=%d not found", req.CategoryID)
				return ErrCategoryNotFound
			}
			uc.logger.Error("CreateBooking: failed to lock category id=%d: %v", req.CategoryID, err)
			return fmt.Errorf("%w: failed to lock category: %w", ErrInternal, err)
		}

		// 2.2. Occupancy
		guests := req.Adults + req.Children
		if !category.Fits(guests) {
			uc.logger.Warn("CreateBooking: %d guests exceed max occupancy %d of category id=%d",
				guests, category.MaxOccupancy, category.ID)
			return fmt.Errorf("%w: %d guests, max %d", ErrOccupancyExceeded, guests, category.MaxOccupancy)
		}

		// 2.3. Capacity for the whole interval
		if _, err := uc.availability.Require(txCtx, category, dates); err != nil {
			var capErr *domain.CapacityError
			if errors.As(err, &capErr) {
				uc.logger.Warn("CreateBooking: category id=%d is full for %s..%s (%d/%d)",
					category.ID, dates.CheckIn, dates.CheckOut, capErr.CommittedRooms, capErr.TotalRooms)
				return capErr
			}
			return fmt.Errorf("%w: failed to check availability: %w", ErrInternal, err)
		}

		// 2.4. Price
		price, err := uc.calculator.Quote(pricing.QuoteInput{
			BaseRate:     category.BaseRate,
			Nights:       dates.Nights(),
			EarlyCheckIn: req.EarlyCheckIn,
			LateCheckOut: req.LateCheckOut,
			ExtraBeds:    req.ExtraBeds,
		})
		if err != nil {
			uc.logger.Warn("CreateBooking: failed to quote price: %v", err)
			return err
		}

		// 2.5. Booking row
		created, err := uc.bookingRepo.Create(txCtx, &domain.Booking{
			Reference:     newReference(now),
			Status:        domain.StatusPending,
			PaymentStatus: domain.PaymentPending,
			TotalAmount:   price.FinalTotal,
			Notes:         req.Notes,
			CreatedAt:     now,
			UpdatedAt:     now,
		})
		if err != nil {
			if errors.Is(err, bookingRepo.ErrDuplicateReference) {
				uc.logger.Warn("CreateBooking: generated reference collided")
				return ErrReferenceCollision
			}
			uc.logger.Error("CreateBooking: failed to create booking: %v", err)
			return fmt.Errorf("%w: failed to create booking: %w", ErrInternal, err)
		}
		booking = created

		// 2.6. Stay, unassigned
		stay = &domain.StayDetail{
			BookingID:    booking.ID,
			CategoryID:   category.ID,
			Room:         domain.Unassigned(),
			Dates:        dates,
			Adults:       req.Adults,
			Children:     req.Children,
			EarlyCheckIn: req.EarlyCheckIn,
			LateCheckOut: req.LateCheckOut,
			ExtraBeds:    req.ExtraBeds,
			Price:        price,
		}
		if err := uc.bookingRepo.CreateStay(txCtx, stay); err != nil {
			uc.logger.Error("CreateBooking: failed to create stay for booking id=%d: %v", booking.ID, err)
			return fmt.Errorf("%w: failed to create stay: %w", ErrInternal, err)
		}

		// 2.7. Guest profile and link
		guest, err = uc.guestRepo.Upsert(txCtx, &domain.GuestProfile{
			Email:     req.Guest.Email,
			FirstName: strings.TrimSpace(req.Guest.FirstName),
			LastName:  strings.TrimSpace(req.Guest.LastName),
			Phone:     req.Guest.Phone,
		}, price.FinalTotal, now)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to upsert guest %s: %v", req.Guest.Email, err)
			return fmt.Errorf("%w: failed to upsert guest: %w", ErrInternal, err)
		}

		err = uc.guestRepo.AddToBooking(txCtx, domain.BookingGuest{
			BookingID: booking.ID,
			GuestID:   guest.ID,
			IsPrimary: true,
		})
		if err != nil {
			uc.logger.Error("CreateBooking: failed to link guest id=%d to booking id=%d: %v", guest.ID, booking.ID, err)
			return fmt.Errorf("%w: failed to link guest: %w", ErrInternal, err)
		}

		// 2.8. Optional payment transaction
		if req.PaymentMethod != nil {
			payment, err = uc.paymentRepo.Create(txCtx, &domain.PaymentTransaction{
				BookingID:         booking.ID,
				Method:            strings.TrimSpace(*req.PaymentMethod),
				Amount:            price.FinalTotal,
				Status:            domain.TransactionPending,
				ContinuationToken: uuid.NewString(),
				CreatedAt:         now,
			})
			if err != nil {
				uc.logger.Error("CreateBooking: failed to open payment for booking id=%d: %v", booking.ID, err)
				return fmt.Errorf("%w: failed to create payment transaction: %w", ErrInternal, err)
			}
		}

		return nil
	})
	if err != nil {
		var capErr *domain.CapacityError
		if errors.As(err, &capErr) {
			uc.metrics.CapacityRejected(req.CategoryID)
		}
		return nil, err
	}

	uc.metrics.BookingCreated()
	uc.publisher.Publish(ctx, domain.Event{
		Type:       domain.EventBookingCreated,
		BookingID:  booking.ID,
		Reference:  booking.Reference,
		GuestEmail: guest.Email,
		Attributes: map[string]string{
			"categoryId": fmt.Sprintf("%d", stay.CategoryID),
			"checkIn":    stay.Dates.CheckIn.String(),
			"checkOut":   stay.Dates.CheckOut.String(),
			"total":      stay.Price.FinalTotal.String(),
		},
		OccurredAt: now,
	})

	uc.logger.Info("CreateBooking: booking id=%d reference=%s created, total=%s",
		booking.ID, booking.Reference, booking.TotalAmount)

	resp := &Response{
		BookingID:     booking.ID,
		Reference:     booking.Reference,
		Status:        booking.Status,
		PaymentStatus: booking.PaymentStatus,
		CategoryID:    stay.CategoryID,
		CheckIn:       stay.Dates.CheckIn,
		CheckOut:      stay.Dates.CheckOut,
		Price:         stay.Price,
		GuestID:       guest.ID,
		CreatedAt:     booking.CreatedAt,
	}
	if payment != nil {
		resp.PaymentTransactionID = ptr.Ptr(payment.ID)
		resp.ContinuationToken = ptr.Ptr(payment.ContinuationToken)
	}

	return resp, nil
}

// newReference BK-YYMMDD-XXXXXX with a random uppercase hex suffix
func newReference(now time.Time) string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))[:referenceSuffixLength]
	return fmt.Sprintf("%s-%s-%s", domain.ReferencePrefix, now.Format("060102"), suffix)
}
