package domain

import "time"

// RoomStatus real-time status of a physical room, owned by housekeeping/maintenance
type RoomStatus string

const (
	RoomAvailable   RoomStatus = "available"
	RoomOccupied    RoomStatus = "occupied"
	RoomReserved    RoomStatus = "reserved"
	RoomCleaning    RoomStatus = "cleaning"
	RoomMaintenance RoomStatus = "maintenance"
	RoomOutOfOrder  RoomStatus = "out_of_order"
)

// RoomStatuses all known room statuses
var RoomStatuses = []RoomStatus{
	RoomAvailable,
	RoomOccupied,
	RoomReserved,
	RoomCleaning,
	RoomMaintenance,
	RoomOutOfOrder,
}

// IsValid returns true for a known status
func (s RoomStatus) IsValid() bool {
	for _, known := range RoomStatuses {
		if s == known {
			return true
		}
	}
	return false
}

// RoomCategory class of interchangeable rooms sharing price and capacity
type RoomCategory struct {
	ID           int64
	PropertyID   int64
	Name         string
	BaseRate     Money // nightly
	MaxOccupancy int
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Fits returns true if the category can host the given number of guests
func (c *RoomCategory) Fits(guests int) bool {
	return guests <= c.MaxOccupancy
}

// Room physical room
type Room struct {
	ID            int64
	PropertyID    int64
	CategoryID    int64
	Number        string
	Floor         int
	NearElevator  bool
	Status        RoomStatus
	LastCleanedAt *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// IsRetired returns true if the room does not count towards category inventory
func (r *Room) IsRetired() bool {
	return r.Status == RoomOutOfOrder
}

// CanBeAssigned returns true if staff may bind the room to a booking.
// Occupied and cleaning rooms are allowed: they may be vacated before arrival.
func (r *Room) CanBeAssigned() bool {
	return r.Status != RoomMaintenance && r.Status != RoomOutOfOrder
}

// CanBeAutoAssigned returns true if the room is a candidate for automatic assignment
func (r *Room) CanBeAutoAssigned() bool {
	return r.Status == RoomAvailable
}
