package domain

// Default pricing values
const (
	DefaultTaxRate          Rate  = 1800 // 18%
	DefaultServiceRate      Rate  = 500  // 5%
	DefaultEarlyCheckInRate Rate  = 5000 // 50% of the nightly base rate, once
	DefaultLateCheckOutRate Rate  = 5000 // 50% of the nightly base rate, once
	DefaultExtraBedRate     Money = 2500 // per bed per night
)

// Business validation constants
const (
	MaxNotesLength              = 500
	MaxCancellationReasonLength = 500
	MaxExtraBeds                = 4
	MaxBulkAssignBookings       = 200
	DefaultListLimit            = 50
	MaxListLimit                = 200
)

// ReferencePrefix prefix of booking references: BK-YYMMDD-XXXXXX
const ReferencePrefix = "BK"

// ActiveStatuses statuses that hold inventory
// Used when counting committed rooms and checking room overlaps
var ActiveStatuses = []BookingStatus{
	StatusPending,
	StatusConfirmed,
	StatusCheckedIn,
}

// InactiveStatuses statuses that no longer hold inventory
var InactiveStatuses = []BookingStatus{
	StatusCheckedOut,
	StatusCancelled,
}
