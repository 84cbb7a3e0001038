package domain

import (
	"strings"
	"time"
)

// GuestProfile guest identified by e-mail with lifetime counters
type GuestProfile struct {
	ID            int64
	Email         string
	FirstName     string
	LastName      string
	Phone         *string
	TotalBookings int
	TotalSpent    Money
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// FullName first and last name joined
func (g *GuestProfile) FullName() string {
	return strings.TrimSpace(g.FirstName + " " + g.LastName)
}

// BookingGuest link between a booking and a guest
type BookingGuest struct {
	BookingID int64
	GuestID   int64
	IsPrimary bool
}

// NormalizeEmail natural key form of an e-mail address
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
