package catalog

import (
	"context"
	"time"

	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
)

// RoomRepository room categories and physical rooms
type RoomRepository interface {
	ListCategories(ctx context.Context) ([]*domain.RoomCategory, error)
	GetCategory(ctx context.Context, id int64) (*domain.RoomCategory, error)
	CountInventory(ctx context.Context, categoryID int64) (int, error)
	ListRooms(ctx context.Context, categoryID int64, statuses ...domain.RoomStatus) ([]*domain.Room, error)
	LockRoom(ctx context.Context, id int64) (*domain.Room, error)
	UpdateStatus(ctx context.Context, id int64, status domain.RoomStatus, cleanedAt *time.Time, updatedAt time.Time) error
}

// TransactionManager interface for managing transactions
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider current time source
type TimeProvider interface {
	Now() time.Time
}

// Logger interface for logging
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

type realTime struct{}

func (realTime) Now() time.Time { return time.Now().UTC() }
