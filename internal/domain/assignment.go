package domain

import "time"

// AssignMode how a room got bound
type AssignMode string

const (
	AssignManual AssignMode = "manual"
	AssignAuto   AssignMode = "auto"
)

// RoomAssignment audit entry of a room binding
type RoomAssignment struct {
	ID             int64
	BookingID      int64
	RoomID         int64
	Mode           AssignMode
	AssignedBy     *string
	Note           *string
	AssignedAt     time.Time
	UnassignedAt   *time.Time
	UnassignReason *string
}

// IsOpen returns true if the binding has not been released
func (a *RoomAssignment) IsOpen() bool {
	return a.UnassignedAt == nil
}

// AssignmentPreferences guest preferences used when scoring candidate rooms
type AssignmentPreferences struct {
	PreferredFloor *int
	NearElevator   bool
}
