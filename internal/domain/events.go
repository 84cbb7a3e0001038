package domain

import "time"

// EventType kind of domain event published after commit
type EventType string

const (
	EventBookingCreated   EventType = "booking.created"
	EventBookingConfirmed EventType = "booking.confirmed"
	EventBookingCancelled EventType = "booking.cancelled"
	EventRoomAssigned     EventType = "room.assigned"
	EventRoomUnassigned   EventType = "room.unassigned"
	EventInvoiceIssued    EventType = "invoice.issued"
)

// Event notification about a committed change.
// Delivery is best-effort: consumers must not rely on it for consistency.
type Event struct {
	Type       EventType         `json:"type"`
	BookingID  int64             `json:"bookingId"`
	Reference  string            `json:"reference,omitempty"`
	GuestEmail string            `json:"guestEmail,omitempty"`
	Attributes map[string]string `json:"attributes,omitempty"`
	OccurredAt time.Time         `json:"occurredAt"`
}
