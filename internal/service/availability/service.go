package availability

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
	roomRepo "github.com/m04kA/SMC-RoomBookingService/internal/infra/storage/room"
)

// Checker counts committed against total rooms of a category.
// Nothing is cached: every call recomputes from the store.
type Checker struct {
	roomRepo    RoomRepository
	bookingRepo BookingRepository
	logger      Logger
}

// NewChecker creates an availability checker
func NewChecker(roomRepo RoomRepository, bookingRepo BookingRepository, logger Logger) *Checker {
	return &Checker{
		roomRepo:    roomRepo,
		bookingRepo: bookingRepo,
		logger:      logger,
	}
}

// Check availability of the category for dates
func (c *Checker) Check(ctx context.Context, categoryID int64, dates domain.DateRange) (*domain.Availability, error) {
	category, err := c.roomRepo.GetCategory(ctx, categoryID)
	if err != nil {
		if errors.Is(err, roomRepo.ErrCategoryNotFound) {
			return nil, ErrCategoryNotFound
		}
		c.logger.Error("Check: failed to get category id=%d: %v", categoryID, err)
		return nil, fmt.Errorf("%w: Check - get category: %w", ErrInternal, err)
	}

	return c.CheckCategory(ctx, category, dates)
}

// CheckCategory availability of an already loaded (and possibly locked) category
func (c *Checker) CheckCategory(ctx context.Context, category *domain.RoomCategory, dates domain.DateRange) (*domain.Availability, error) {
	total, err := c.roomRepo.CountInventory(ctx, category.ID)
	if err != nil {
		c.logger.Error("Check: failed to count rooms of category id=%d: %v", category.ID, err)
		return nil, fmt.Errorf("%w: Check - count inventory: %w", ErrInternal, err)
	}

	committed, err := c.bookingRepo.CountCommitted(ctx, category.ID, dates)
	if err != nil {
		c.logger.Error("Check: failed to count committed stays of category id=%d: %v", category.ID, err)
		return nil, fmt.Errorf("%w: Check - count committed: %w", ErrInternal, err)
	}

	return &domain.Availability{
		CategoryID:     category.ID,
		CategoryName:   category.Name,
		TotalRooms:     total,
		CommittedRooms: committed,
		FreeRooms:      total - committed,
	}, nil
}

// Require returns a *domain.CapacityError when no room of the category is free.
// Call it inside the transaction that performs the write, after locking the category.
func (c *Checker) Require(ctx context.Context, category *domain.RoomCategory, dates domain.DateRange) (*domain.Availability, error) {
	a, err := c.CheckCategory(ctx, category, dates)
	if err != nil {
		return nil, err
	}

	if a.IsFull() {
		c.logger.Warn("Require: category id=%d full for %s..%s: %d rooms, %d committed",
			category.ID, dates.CheckIn, dates.CheckOut, a.TotalRooms, a.CommittedRooms)
		return a, a.CapacityError()
	}

	return a, nil
}
