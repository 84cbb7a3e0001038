package domain

// Availability committed-vs-total room counts of a category for a date range
type Availability struct {
	CategoryID     int64
	CategoryName   string
	TotalRooms     int
	CommittedRooms int
	FreeRooms      int
}

// IsFull returns true if no room of the category is free
func (a *Availability) IsFull() bool {
	return a.FreeRooms <= 0
}

// OccupancyRate returns the committed share as a percentage (0-100)
func (a *Availability) OccupancyRate() float64 {
	if a.TotalRooms == 0 {
		return 0
	}
	return float64(a.CommittedRooms) / float64(a.TotalRooms) * 100
}

// CapacityError builds the error reported when the category is full
func (a *Availability) CapacityError() *CapacityError {
	return &CapacityError{
		CategoryID:     a.CategoryID,
		CategoryName:   a.CategoryName,
		TotalRooms:     a.TotalRooms,
		CommittedRooms: a.CommittedRooms,
	}
}
