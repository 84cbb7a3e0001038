package unassign_room

import (
	assignRoom "github.com/m04kA/SMC-RoomBookingService/internal/usecase/assign_room"
)

// UnassignRequest HTTP request model
type UnassignRequest struct {
	BookingID int64  `json:"bookingId" validate:"required,gt=0"`
	Reason    string `json:"reason,omitempty" validate:"max=500"`
}

// ToUseCaseRequest converts the HTTP request into the use case model
func (r *UnassignRequest) ToUseCaseRequest() *assignRoom.UnassignRequest {
	return &assignRoom.UnassignRequest{
		BookingID: r.BookingID,
		Reason:    r.Reason,
	}
}

// UnassignResponse HTTP response model
type UnassignResponse struct {
	BookingID      int64  `json:"bookingId"`
	ReleasedRoomID *int64 `json:"releasedRoomId,omitempty"`
	Changed        bool   `json:"changed"`
}

// FromUseCaseResponse converts the use case response into the HTTP model
func FromUseCaseResponse(resp *assignRoom.UnassignResponse) *UnassignResponse {
	return &UnassignResponse{
		BookingID:      resp.BookingID,
		ReleasedRoomID: resp.ReleasedRoomID,
		Changed:        resp.Changed,
	}
}
