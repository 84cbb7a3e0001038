package list_category_rooms

import (
	"context"

	"github.com/m04kA/SMC-RoomBookingService/internal/service/catalog/models"
)

type CatalogService interface {
	ListRooms(ctx context.Context, categoryID int64) (*models.RoomListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
