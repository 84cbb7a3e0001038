package notificationservice

import "errors"

var (
	// ErrInternal request could not be built or sent
	ErrInternal = errors.New("notificationservice client: internal error")

	// ErrInvalidResponse unexpected status from the service
	ErrInvalidResponse = errors.New("notificationservice client: invalid response")

	// ErrRejected the service refused the notification as malformed
	ErrRejected = errors.New("notificationservice client: notification rejected")
)
