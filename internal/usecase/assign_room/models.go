package assign_room

import (
	"time"

	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
	"github.com/m04kA/SMC-RoomBookingService/pkg/types"
)

// DefaultUnassignReason recorded when staff give no reason
const DefaultUnassignReason = "unassigned by staff"

const (
	modeManual = "manual"
	modeAuto   = "auto"
	modeBulk   = "bulk"

	outcomeAssigned = "assigned"
	outcomeNoop     = "noop"
	outcomeFailed   = "failed"
)

// AssignRequest manual assignment
type AssignRequest struct {
	BookingID  int64
	RoomID     int64
	Note       *string
	AssignedBy *string
}

// AutoAssignRequest automatic assignment
type AutoAssignRequest struct {
	BookingID   int64
	Preferences domain.AssignmentPreferences
	AssignedBy  *string
}

// AssignResponse resulting binding. Changed is false when the booking
// already held the room and nothing was written.
type AssignResponse struct {
	BookingID    int64
	RoomID       int64
	RoomNumber   string
	Mode         domain.AssignMode
	Changed      bool
	AssignmentID *int64
	AssignedAt   *time.Time
	Score        *float64 // automatic assignment only
}

// UnassignRequest release of a room binding
type UnassignRequest struct {
	BookingID int64
	Reason    string
}

// UnassignResponse released binding
type UnassignResponse struct {
	BookingID      int64
	ReleasedRoomID *int64
	Changed        bool
}

// BulkAutoAssignRequest automatic assignment of many bookings
type BulkAutoAssignRequest struct {
	BookingIDs  []int64
	Preferences domain.AssignmentPreferences
	AssignedBy  *string
}

// BulkResult outcome for one booking
type BulkResult struct {
	BookingID  int64
	RoomID     *int64
	RoomNumber *string
	ErrorCode  *string
	Message    *string
}

// BulkAutoAssignResponse per-booking outcomes in request order
type BulkAutoAssignResponse struct {
	Results  []BulkResult
	Assigned int
	Failed   int
}

// AvailableRoomsRequest free rooms query. With BookingID the booking's
// category, dates and party size are used unless overridden.
type AvailableRoomsRequest struct {
	CategoryID *int64
	BookingID  *int64
	CheckIn    *types.Date
	CheckOut   *types.Date
	Guests     int
}

// CategoryRooms availability counts and free rooms of one category
type CategoryRooms struct {
	Category     *domain.RoomCategory
	Availability *domain.Availability
	Rooms        []*domain.Room
}

// AvailableRoomsResponse free rooms per category
type AvailableRoomsResponse struct {
	CheckIn    types.Date
	CheckOut   types.Date
	Categories []CategoryRooms
}
