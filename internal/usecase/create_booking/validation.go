package create_booking

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
)

var validate = validator.New()

// validateRequest checks the request before any store access
func validateRequest(req *Request) (domain.DateRange, error) {
	if req.CategoryID <= 0 {
		return domain.DateRange{}, fmt.Errorf("%w: categoryId must be positive", ErrInvalidInput)
	}

	if req.CheckIn.IsZero() || req.CheckOut.IsZero() {
		return domain.DateRange{}, fmt.Errorf("%w: checkIn and checkOut are required", ErrInvalidInput)
	}

	dates, err := domain.NewDateRange(req.CheckIn, req.CheckOut)
	if err != nil {
		return domain.DateRange{}, fmt.Errorf("%w: %s..%s", ErrInvalidDateRange, req.CheckIn, req.CheckOut)
	}

	if req.Adults < 1 {
		return domain.DateRange{}, fmt.Errorf("%w: at least one adult is required", ErrInvalidInput)
	}

	if req.Children < 0 {
		return domain.DateRange{}, fmt.Errorf("%w: children must not be negative", ErrInvalidInput)
	}

	if req.ExtraBeds < 0 || req.ExtraBeds > domain.MaxExtraBeds {
		return domain.DateRange{}, fmt.Errorf("%w: extraBeds must be between 0 and %d", ErrInvalidInput, domain.MaxExtraBeds)
	}

	email := strings.TrimSpace(req.Guest.Email)
	if email == "" {
		return domain.DateRange{}, fmt.Errorf("%w: guest email is required", ErrInvalidInput)
	}
	if err := validate.Var(email, "email"); err != nil {
		return domain.DateRange{}, fmt.Errorf("%w: invalid guest email", ErrInvalidInput)
	}

	if strings.TrimSpace(req.Guest.FirstName) == "" || strings.TrimSpace(req.Guest.LastName) == "" {
		return domain.DateRange{}, fmt.Errorf("%w: guest first and last name are required", ErrInvalidInput)
	}

	if req.PaymentMethod != nil && strings.TrimSpace(*req.PaymentMethod) == "" {
		return domain.DateRange{}, fmt.Errorf("%w: paymentMethod must not be empty", ErrInvalidInput)
	}

	if req.Notes != nil && len(*req.Notes) > domain.MaxNotesLength {
		return domain.DateRange{}, fmt.Errorf("%w: notes exceed %d characters", ErrInvalidInput, domain.MaxNotesLength)
	}

	return dates, nil
}
