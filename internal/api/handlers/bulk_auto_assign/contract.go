package bulk_auto_assign

import (
	"context"

	assignRoom "github.com/m04kA/SMC-RoomBookingService/internal/usecase/assign_room"
)

type BulkAssignUseCase interface {
	BulkAutoAssign(ctx context.Context, req *assignRoom.BulkAutoAssignRequest) (*assignRoom.BulkAutoAssignResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
