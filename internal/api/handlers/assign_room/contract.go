package assign_room

import (
	"context"

	assignRoom "github.com/m04kA/SMC-RoomBookingService/internal/usecase/assign_room"
)

type AssignRoomUseCase interface {
	Assign(ctx context.Context, req *assignRoom.AssignRequest) (*assignRoom.AssignResponse, error)
	AutoAssign(ctx context.Context, req *assignRoom.AutoAssignRequest) (*assignRoom.AssignResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
