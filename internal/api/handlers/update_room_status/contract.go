package update_room_status

import (
	"context"

	"github.com/m04kA/SMC-RoomBookingService/internal/service/catalog/models"
)

type CatalogService interface {
	UpdateRoomStatus(ctx context.Context, roomID int64, req *models.UpdateRoomStatusRequest) (*models.RoomResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
