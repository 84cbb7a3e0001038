package bulk_auto_assign

import (
	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
	assignRoom "github.com/m04kA/SMC-RoomBookingService/internal/usecase/assign_room"
)

// BulkAutoAssignRequest HTTP request model
type BulkAutoAssignRequest struct {
	BookingIDs  []int64 `json:"bookingIds" validate:"required,min=1,max=200,dive,gt=0"`
	Preferences *struct {
		PreferredFloor *int `json:"preferredFloor,omitempty" validate:"omitempty,gte=0"`
		NearElevator   bool `json:"nearElevator"`
	} `json:"preferences,omitempty"`
}

// ToUseCaseRequest converts the HTTP request into the use case model
func (r *BulkAutoAssignRequest) ToUseCaseRequest(assignedBy *string) *assignRoom.BulkAutoAssignRequest {
	var prefs domain.AssignmentPreferences
	if r.Preferences != nil {
		prefs.PreferredFloor = r.Preferences.PreferredFloor
		prefs.NearElevator = r.Preferences.NearElevator
	}
	return &assignRoom.BulkAutoAssignRequest{
		BookingIDs:  r.BookingIDs,
		Preferences: prefs,
		AssignedBy:  assignedBy,
	}
}

// ResultResponse outcome for one booking
type ResultResponse struct {
	BookingID  int64   `json:"bookingId"`
	RoomID     *int64  `json:"roomId,omitempty"`
	RoomNumber *string `json:"roomNumber,omitempty"`
	Error      *string `json:"error,omitempty"`
	Message    *string `json:"message,omitempty"`
}

// BulkAutoAssignResponse HTTP response model
type BulkAutoAssignResponse struct {
	Results  []ResultResponse `json:"results"`
	Assigned int              `json:"assigned"`
	Failed   int              `json:"failed"`
}

// FromUseCaseResponse converts the use case response into the HTTP model
func FromUseCaseResponse(resp *assignRoom.BulkAutoAssignResponse) *BulkAutoAssignResponse {
	results := make([]ResultResponse, 0, len(resp.Results))
	for _, r := range resp.Results {
		results = append(results, ResultResponse{
			BookingID:  r.BookingID,
			RoomID:     r.RoomID,
			RoomNumber: r.RoomNumber,
			Error:      r.ErrorCode,
			Message:    r.Message,
		})
	}
	return &BulkAutoAssignResponse{
		Results:  results,
		Assigned: resp.Assigned,
		Failed:   resp.Failed,
	}
}
