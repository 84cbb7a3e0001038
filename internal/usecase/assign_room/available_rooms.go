package assign_room

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-RoomBookingService/internal/infra/storage/booking"
	roomRepo "github.com/m04kA/SMC-RoomBookingService/internal/infra/storage/room"
)

// AvailableRooms availability counts and free rooms per category.
// Free rooms are in status available with no overlapping active binding.
func (uc *UseCase) AvailableRooms(ctx context.Context, req *AvailableRoomsRequest) (*AvailableRoomsResponse, error) {
	if err := validateAvailableRooms(req); err != nil {
		uc.logger.Warn("AvailableRooms: validation failed: %v", err)
		return nil, err
	}

	var resp *AvailableRoomsResponse

	err := uc.txManager.DoReadOnly(ctx, func(txCtx context.Context) error {
		categoryID := req.CategoryID
		guests := req.Guests
		var (
			dates   domain.DateRange
			exclude int64
		)

		// 1. Booking defaults
		if req.BookingID != nil {
			stay, err := uc.bookingRepo.GetStay(txCtx, *req.BookingID)
			if err != nil {
				if errors.Is(err, bookingRepo.ErrStayNotFound) {
					uc.logger.Warn("AvailableRooms: booking id=%d not found", *req.BookingID)
					return ErrBookingNotFound
				}
				return fmt.Errorf("%w: failed to get stay: %w", ErrInternal, err)
			}
			exclude = stay.BookingID
			dates = stay.Dates
			if categoryID == nil {
				categoryID = &stay.CategoryID
			}
			if guests == 0 {
				guests = stay.Guests()
			}
		}

		if req.CheckIn != nil {
			var err error
			dates, err = domain.NewDateRange(*req.CheckIn, *req.CheckOut)
			if err != nil {
				return fmt.Errorf("%w: %s..%s", ErrInvalidDateRange, *req.CheckIn, *req.CheckOut)
			}
		}

		// 2. Categories to report
		categories, err := uc.categories(txCtx, categoryID, guests)
		if err != nil {
			return err
		}

		// 3. Counts and free rooms per category
		resp = &AvailableRoomsResponse{
			CheckIn:    dates.CheckIn,
			CheckOut:   dates.CheckOut,
			Categories: make([]CategoryRooms, 0, len(categories)),
		}
		for _, category := range categories {
			a, err := uc.availability.CheckCategory(txCtx, category, dates)
			if err != nil {
				return fmt.Errorf("%w: failed to check availability: %w", ErrInternal, err)
			}

			rooms, err := uc.roomRepo.ListRooms(txCtx, category.ID, domain.RoomAvailable)
			if err != nil {
				return fmt.Errorf("%w: failed to list rooms: %w", ErrInternal, err)
			}

			free, err := uc.freeRooms(txCtx, rooms, dates, exclude)
			if err != nil {
				return err
			}

			resp.Categories = append(resp.Categories, CategoryRooms{
				Category:     category,
				Availability: a,
				Rooms:        free,
			})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return resp, nil
}

func (uc *UseCase) categories(ctx context.Context, categoryID *int64, guests int) ([]*domain.RoomCategory, error) {
	if categoryID != nil {
		category, err := uc.roomRepo.GetCategory(ctx, *categoryID)
		if err != nil {
			if errors.Is(err, roomRepo.ErrCategoryNotFound) {
				return nil, ErrCategoryNotFound
			}
			return nil, fmt.Errorf("%w: failed to get category: %w", ErrInternal, err)
		}
		if guests > 0 && !category.Fits(guests) {
			return nil, fmt.Errorf("%w: %d guests, max %d", ErrOccupancyExceeded, guests, category.MaxOccupancy)
		}
		return []*domain.RoomCategory{category}, nil
	}

	all, err := uc.roomRepo.ListCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to list categories: %w", ErrInternal, err)
	}

	fitting := make([]*domain.RoomCategory, 0, len(all))
	for _, category := range all {
		if guests == 0 || category.Fits(guests) {
			fitting = append(fitting, category)
		}
	}
	return fitting, nil
}
