package booking

import (
	"github.com/m04kA/SMC-RoomBookingService/pkg/dbmetrics"
)

// DBExecutor query interface shared with dbmetrics; *dbmetrics.DB and transactions implement it
type DBExecutor = dbmetrics.DBExecutor
