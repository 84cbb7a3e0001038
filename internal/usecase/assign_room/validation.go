package assign_room

import (
	"fmt"

	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
)

func validateAssign(req *AssignRequest) error {
	if req.BookingID <= 0 {
		return fmt.Errorf("%w: bookingId must be positive", ErrInvalidInput)
	}
	if req.RoomID <= 0 {
		return fmt.Errorf("%w: roomId must be positive", ErrInvalidInput)
	}
	if req.Note != nil && len(*req.Note) > domain.MaxNotesLength {
		return fmt.Errorf("%w: note exceeds %d characters", ErrInvalidInput, domain.MaxNotesLength)
	}
	return nil
}

func validatePreferences(prefs domain.AssignmentPreferences) error {
	if prefs.PreferredFloor != nil && *prefs.PreferredFloor < 0 {
		return fmt.Errorf("%w: preferredFloor must not be negative", ErrInvalidInput)
	}
	return nil
}

func validateAutoAssign(req *AutoAssignRequest) error {
	if req.BookingID <= 0 {
		return fmt.Errorf("%w: bookingId must be positive", ErrInvalidInput)
	}
	return validatePreferences(req.Preferences)
}

func validateUnassign(req *UnassignRequest) error {
	if req.BookingID <= 0 {
		return fmt.Errorf("%w: bookingId must be positive", ErrInvalidInput)
	}
	if len(req.Reason) > domain.MaxNotesLength {
		return fmt.Errorf("%w: reason exceeds %d characters", ErrInvalidInput, domain.MaxNotesLength)
	}
	return nil
}

func validateBulk(req *BulkAutoAssignRequest) error {
	if len(req.BookingIDs) == 0 {
		return fmt.Errorf("%w: bookingIds must not be empty", ErrInvalidInput)
	}
	if len(req.BookingIDs) > domain.MaxBulkAssignBookings {
		return fmt.Errorf("%w: at most %d bookings per request", ErrInvalidInput, domain.MaxBulkAssignBookings)
	}
	for _, id := range req.BookingIDs {
		if id <= 0 {
			return fmt.Errorf("%w: bookingIds must be positive", ErrInvalidInput)
		}
	}
	return validatePreferences(req.Preferences)
}

func validateAvailableRooms(req *AvailableRoomsRequest) error {
	if req.CategoryID != nil && *req.CategoryID <= 0 {
		return fmt.Errorf("%w: categoryId must be positive", ErrInvalidInput)
	}
	if req.BookingID != nil && *req.BookingID <= 0 {
		return fmt.Errorf("%w: bookingId must be positive", ErrInvalidInput)
	}
	if req.Guests < 0 {
		return fmt.Errorf("%w: guests must not be negative", ErrInvalidInput)
	}
	if req.BookingID == nil && (req.CheckIn == nil || req.CheckOut == nil) {
		return fmt.Errorf("%w: checkIn and checkOut are required without bookingId", ErrInvalidInput)
	}
	if (req.CheckIn == nil) != (req.CheckOut == nil) {
		return fmt.Errorf("%w: checkIn and checkOut must be given together", ErrInvalidInput)
	}
	return nil
}
