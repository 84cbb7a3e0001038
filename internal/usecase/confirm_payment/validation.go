package confirm_payment

import "fmt"

func validateRequest(req *Request) error {
	if req.BookingID <= 0 {
		return fmt.Errorf("%w: bookingId must be positive", ErrInvalidInput)
	}
	if req.TransactionID <= 0 {
		return fmt.Errorf("%w: transactionId must be positive", ErrInvalidInput)
	}
	return nil
}
