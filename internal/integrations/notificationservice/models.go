package notificationservice

import "time"

// Notification guest-facing message request sent to the notification service
type Notification struct {
	Event      string            `json:"event"`
	BookingID  int64             `json:"booking_id"`
	Reference  string            `json:"reference,omitempty"`
	Recipient  string            `json:"recipient,omitempty"`
	Attributes map[string]string `json:"attributes,omitempty"`
	OccurredAt time.Time         `json:"occurred_at"`
}

// ErrorResponse error body of the notification service
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
