package models

import (
	"time"

	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
)

// Request models

// UpdateRoomStatusRequest housekeeping status change
type UpdateRoomStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=available occupied reserved cleaning maintenance out_of_order"`
}

// Response models

// CategoryResponse room category with its countable inventory
type CategoryResponse struct {
	ID           int64  `json:"id"`
	PropertyID   int64  `json:"propertyId"`
	Name         string `json:"name"`
	BaseRate     int64  `json:"baseRate"`
	MaxOccupancy int    `json:"maxOccupancy"`
	TotalRooms   int    `json:"totalRooms"`
}

// CategoryListResponse catalog listing
type CategoryListResponse struct {
	Categories []CategoryResponse `json:"categories"`
}

// RoomResponse physical room
type RoomResponse struct {
	ID            int64      `json:"id"`
	CategoryID    int64      `json:"categoryId"`
	Number        string     `json:"number"`
	Floor         int        `json:"floor"`
	NearElevator  bool       `json:"nearElevator"`
	Status        string     `json:"status"`
	LastCleanedAt *time.Time `json:"lastCleanedAt,omitempty"`
	UpdatedAt     time.Time  `json:"updatedAt"`
}

// RoomListResponse rooms of a category
type RoomListResponse struct {
	Category CategoryResponse `json:"category"`
	Rooms    []RoomResponse   `json:"rooms"`
}

// Conversion

// FromDomainCategory converts the domain model to its DTO
func FromDomainCategory(c *domain.RoomCategory, totalRooms int) CategoryResponse {
	return CategoryResponse{
		ID:           c.ID,
		PropertyID:   c.PropertyID,
		Name:         c.Name,
		BaseRate:     int64(c.BaseRate),
		MaxOccupancy: c.MaxOccupancy,
		TotalRooms:   totalRooms,
	}
}

// FromDomainRoom converts the domain model to its DTO
func FromDomainRoom(r *domain.Room) RoomResponse {
	return RoomResponse{
		ID:            r.ID,
		CategoryID:    r.CategoryID,
		Number:        r.Number,
		Floor:         r.Floor,
		NearElevator:  r.NearElevator,
		Status:        string(r.Status),
		LastCleanedAt: r.LastCleanedAt,
		UpdatedAt:     r.UpdatedAt,
	}
}

// FromDomainRooms converts domain rooms to DTOs
func FromDomainRooms(rooms []*domain.Room) []RoomResponse {
	result := make([]RoomResponse, 0, len(rooms))
	for _, r := range rooms {
		result = append(result, FromDomainRoom(r))
	}
	return result
}
