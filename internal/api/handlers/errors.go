package handlers

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
)

const (
	codeValidation = domain.CodeValidation
	codeNotFound   = domain.CodeNotFound
	codeInternal   = domain.CodeInternal
)

// ErrorOptions per-endpoint tweaks of domain error responses
type ErrorOptions struct {
	// Debug adds the raw error text to the body
	Debug bool
	// ConflictStatus status of conflict errors, 400 when zero
	ConflictStatus int
}

// StatusOf HTTP status of a categorized error
func StatusOf(err error, opts ErrorOptions) int {
	switch domain.Category(err) {
	case domain.CodeValidation, domain.CodeState, domain.CodeCapacity:
		return http.StatusBadRequest
	case domain.CodeConflict:
		if opts.ConflictStatus != 0 {
			return opts.ConflictStatus
		}
		return http.StatusBadRequest
	case domain.CodeNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// RespondDomainError writes err with its category code. Internal errors
// never expose their text unless opts.Debug is set.
func RespondDomainError(w http.ResponseWriter, err error, opts ErrorOptions) {
	code := domain.Category(err)
	resp := ErrorResponse{Code: code, Message: err.Error()}

	if code == domain.CodeInternal {
		resp.Message = msgInternalError
	}

	var capacityErr *domain.CapacityError
	if errors.As(err, &capacityErr) {
		resp.Details = map[string]interface{}{
			"categoryId":     capacityErr.CategoryID,
			"categoryName":   capacityErr.CategoryName,
			"totalRooms":     capacityErr.TotalRooms,
			"committedRooms": capacityErr.CommittedRooms,
		}
	}

	if opts.Debug {
		resp.Debug = err.Error()
	}

	RespondError(w, StatusOf(err, opts), resp)
}

// IsInternal reports whether err carries no domain category
func IsInternal(err error) bool {
	return domain.Category(err) == domain.CodeInternal
}
