package availability

import (
	"context"

	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
)

// RoomRepository room categories and inventory
type RoomRepository interface {
	GetCategory(ctx context.Context, id int64) (*domain.RoomCategory, error)
	CountInventory(ctx context.Context, categoryID int64) (int, error)
}

// BookingRepository committed stays
type BookingRepository interface {
	CountCommitted(ctx context.Context, categoryID int64, dates domain.DateRange) (int, error)
}

// Logger interface for logging
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
