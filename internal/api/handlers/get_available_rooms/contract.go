package get_available_rooms

import (
	"context"

	assignRoom "github.com/m04kA/SMC-RoomBookingService/internal/usecase/assign_room"
)

type AvailableRoomsUseCase interface {
	AvailableRooms(ctx context.Context, req *assignRoom.AvailableRoomsRequest) (*assignRoom.AvailableRoomsResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
