package assign_room

import (
	"time"

	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
	assignRoom "github.com/m04kA/SMC-RoomBookingService/internal/usecase/assign_room"
)

// PreferencesRequest guest wishes used to rank candidate rooms
type PreferencesRequest struct {
	PreferredFloor *int `json:"preferredFloor,omitempty" validate:"omitempty,gte=0"`
	NearElevator   bool `json:"nearElevator"`
}

// ToDomain converts preferences into the domain model
func (p *PreferencesRequest) ToDomain() domain.AssignmentPreferences {
	if p == nil {
		return domain.AssignmentPreferences{}
	}
	return domain.AssignmentPreferences{
		PreferredFloor: p.PreferredFloor,
		NearElevator:   p.NearElevator,
	}
}

// AssignRoomRequest HTTP request model of a manual assignment
type AssignRoomRequest struct {
	BookingID int64   `json:"bookingId" validate:"required,gt=0"`
	RoomID    int64   `json:"roomId" validate:"required,gt=0"`
	Note      *string `json:"note,omitempty" validate:"omitempty,max=500"`
}

// ToUseCaseRequest converts the HTTP request into the use case model
func (r *AssignRoomRequest) ToUseCaseRequest(assignedBy *string) *assignRoom.AssignRequest {
	return &assignRoom.AssignRequest{
		BookingID:  r.BookingID,
		RoomID:     r.RoomID,
		Note:       r.Note,
		AssignedBy: assignedBy,
	}
}

// AutoAssignRequest HTTP request model of an automatic assignment
type AutoAssignRequest struct {
	BookingID   int64               `json:"bookingId" validate:"required,gt=0"`
	Preferences *PreferencesRequest `json:"preferences,omitempty"`
}

// ToUseCaseRequest converts the HTTP request into the use case model
func (r *AutoAssignRequest) ToUseCaseRequest(assignedBy *string) *assignRoom.AutoAssignRequest {
	return &assignRoom.AutoAssignRequest{
		BookingID:   r.BookingID,
		Preferences: r.Preferences.ToDomain(),
		AssignedBy:  assignedBy,
	}
}

// AssignmentResponse HTTP response model
type AssignmentResponse struct {
	BookingID    int64      `json:"bookingId"`
	RoomID       int64      `json:"roomId"`
	RoomNumber   string     `json:"roomNumber"`
	Mode         string     `json:"mode"`
	Changed      bool       `json:"changed"`
	AssignmentID *int64     `json:"assignmentId,omitempty"`
	AssignedAt   *time.Time `json:"assignedAt,omitempty"`
	Score        *float64   `json:"score,omitempty"`
}

// FromUseCaseResponse converts the use case response into the HTTP model
func FromUseCaseResponse(resp *assignRoom.AssignResponse) *AssignmentResponse {
	return &AssignmentResponse{
		BookingID:    resp.BookingID,
		RoomID:       resp.RoomID,
		RoomNumber:   resp.RoomNumber,
		Mode:         string(resp.Mode),
		Changed:      resp.Changed,
		AssignmentID: resp.AssignmentID,
		AssignedAt:   resp.AssignedAt,
		Score:        resp.Score,
	}
}
