package charge

import (
	"github.com/m04kA/SMC-RoomBookingService/pkg/dbmetrics"
)

// DBExecutor query interface shared with dbmetrics
type DBExecutor = dbmetrics.DBExecutor
