package generate_invoice

import (
	"fmt"

	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
)

const maxRate domain.Rate = 10000 // 100%

func validateRequest(req *Request) error {
	if req.BookingID <= 0 {
		return fmt.Errorf("%w: bookingId must be positive", ErrInvalidInput)
	}
	if req.Discount < 0 {
		return fmt.Errorf("%w: discount must not be negative", ErrInvalidInput)
	}
	if req.TaxRate != nil && (*req.TaxRate < 0 || *req.TaxRate > maxRate) {
		return fmt.Errorf("%w: taxRate must be between 0 and 100", ErrInvalidInput)
	}
	if req.ServiceRate != nil && (*req.ServiceRate < 0 || *req.ServiceRate > maxRate) {
		return fmt.Errorf("%w: serviceChargeRate must be between 0 and 100", ErrInvalidInput)
	}
	if req.Notes != nil && len(*req.Notes) > domain.MaxNotesLength {
		return fmt.Errorf("%w: notes exceed %d characters", ErrInvalidInput, domain.MaxNotesLength)
	}
	return nil
}
