package domain

import (
	"errors"

	"github.com/m04kA/SMC-RoomBookingService/pkg/types"
)

var ErrInvalidDateRange = errors.New("check-out date must be after check-in date")

// DateRange half-open interval of nights [CheckIn, CheckOut)
type DateRange struct {
	CheckIn  types.Date
	CheckOut types.Date
}

// NewDateRange validates that check-out is strictly after check-in
func NewDateRange(checkIn, checkOut types.Date) (DateRange, error) {
	if checkIn.IsZero() || checkOut.IsZero() || !checkOut.After(checkIn) {
		return DateRange{}, ErrInvalidDateRange
	}
	return DateRange{CheckIn: checkIn, CheckOut: checkOut}, nil
}

// Nights number of nights in the range
func (r DateRange) Nights() int {
	return r.CheckIn.DaysUntil(r.CheckOut)
}

// Overlaps half-open overlap test: a.in < b.out AND a.out > b.in
func (r DateRange) Overlaps(other DateRange) bool {
	return r.CheckIn.Before(other.CheckOut) && r.CheckOut.After(other.CheckIn)
}

// RoomBinding physical room bound to a stay: either Unassigned or Assigned(roomID).
// The zero value is Unassigned.
type RoomBinding struct {
	roomID   int64
	assigned bool
}

// Unassigned binding without a room
func Unassigned() RoomBinding {
	return RoomBinding{}
}

// AssignedTo binding to roomID
func AssignedTo(roomID int64) RoomBinding {
	return RoomBinding{roomID: roomID, assigned: true}
}

// RoomID returns the bound room and true, or 0 and false when unassigned
func (b RoomBinding) RoomID() (int64, bool) {
	return b.roomID, b.assigned
}

// IsAssigned returns true if a room is bound
func (b RoomBinding) IsAssigned() bool {
	return b.assigned
}

// Ptr nullable column representation
func (b RoomBinding) Ptr() *int64 {
	if !b.assigned {
		return nil
	}
	id := b.roomID
	return &id
}

// BindingFromPtr builds a binding from a nullable column
func BindingFromPtr(roomID *int64) RoomBinding {
	if roomID == nil {
		return Unassigned()
	}
	return AssignedTo(*roomID)
}

// PriceBreakdown itemized price of a stay, persisted verbatim
type PriceBreakdown struct {
	BaseRate        Money
	Nights          int
	RoomSubtotal    Money
	EarlyCheckInFee Money
	LateCheckOutFee Money
	ExtraBedFee     Money
	PreTaxSubtotal  Money
	TaxRate         Rate
	Tax             Money
	ServiceRate     Rate
	ServiceCharge   Money
	FinalTotal      Money
}

// StayDetail dates, occupancy, room binding and price of a booking
type StayDetail struct {
	BookingID    int64
	CategoryID   int64
	Room         RoomBinding
	Dates        DateRange
	Adults       int
	Children     int
	EarlyCheckIn bool
	LateCheckOut bool
	ExtraBeds    int
	Price        PriceBreakdown
}

// Guests total number of guests
func (s *StayDetail) Guests() int {
	return s.Adults + s.Children
}

// ActiveStay stay of an active booking, used for overlap checks
type ActiveStay struct {
	BookingID int64
	Room      RoomBinding
	Dates     DateRange
}
