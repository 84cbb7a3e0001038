package unassign_room

import (
	"context"

	assignRoom "github.com/m04kA/SMC-RoomBookingService/internal/usecase/assign_room"
)

type UnassignUseCase interface {
	Unassign(ctx context.Context, req *assignRoom.UnassignRequest) (*assignRoom.UnassignResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
