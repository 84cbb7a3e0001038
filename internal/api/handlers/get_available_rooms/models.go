package get_available_rooms

import (
	"net/http"

	"github.com/m04kA/SMC-RoomBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-RoomBookingService/internal/service/catalog/models"
	assignRoom "github.com/m04kA/SMC-RoomBookingService/internal/usecase/assign_room"
	"github.com/m04kA/SMC-RoomBookingService/pkg/types"
)

// ParseRequest reads the query ?categoryId=&bookingId=&checkIn=&checkOut=&guests=
func ParseRequest(r *http.Request) (*assignRoom.AvailableRoomsRequest, error) {
	req := &assignRoom.AvailableRoomsRequest{}

	var err error
	if req.CategoryID, err = handlers.QueryInt64(r, "categoryId"); err != nil {
		return nil, err
	}
	if req.BookingID, err = handlers.QueryInt64(r, "bookingId"); err != nil {
		return nil, err
	}
	if req.CheckIn, err = handlers.QueryDate(r, "checkIn"); err != nil {
		return nil, err
	}
	if req.CheckOut, err = handlers.QueryDate(r, "checkOut"); err != nil {
		return nil, err
	}
	if req.Guests, err = handlers.QueryInt(r, "guests", 0); err != nil {
		return nil, err
	}
	return req, nil
}

// CategoryRoomsResponse counts and free rooms of one category
type CategoryRoomsResponse struct {
	CategoryID     int64                 `json:"categoryId"`
	CategoryName   string                `json:"categoryName"`
	BaseRate       int64                 `json:"baseRate"`
	MaxOccupancy   int                   `json:"maxOccupancy"`
	TotalRooms     int                   `json:"totalRooms"`
	CommittedRooms int                   `json:"committedRooms"`
	FreeRooms      int                   `json:"freeRooms"`
	Rooms          []models.RoomResponse `json:"rooms"`
}

// AvailableRoomsResponse HTTP response model
type AvailableRoomsResponse struct {
	CheckIn    types.Date              `json:"checkIn"`
	CheckOut   types.Date              `json:"checkOut"`
	Categories []CategoryRoomsResponse `json:"categories"`
}

// FromUseCaseResponse converts the use case response into the HTTP model
func FromUseCaseResponse(resp *assignRoom.AvailableRoomsResponse) *AvailableRoomsResponse {
	categories := make([]CategoryRoomsResponse, 0, len(resp.Categories))
	for _, c := range resp.Categories {
		categories = append(categories, CategoryRoomsResponse{
			CategoryID:     c.Category.ID,
			CategoryName:   c.Category.Name,
			BaseRate:       int64(c.Category.BaseRate),
			MaxOccupancy:   c.Category.MaxOccupancy,
			TotalRooms:     c.Availability.TotalRooms,
			CommittedRooms: c.Availability.CommittedRooms,
			FreeRooms:      c.Availability.FreeRooms,
			Rooms:          models.FromDomainRooms(c.Rooms),
		})
	}
	return &AvailableRoomsResponse{
		CheckIn:    resp.CheckIn,
		CheckOut:   resp.CheckOut,
		Categories: categories,
	}
}
