package create_booking

import (
	"time"

	"github.com/m04kA/SMC-RoomBookingService/internal/service/bookings/models"
	createBooking "github.com/m04kA/SMC-RoomBookingService/internal/usecase/create_booking"
	"github.com/m04kA/SMC-RoomBookingService/pkg/types"
)

// GuestRequest primary guest
type GuestRequest struct {
	Email     string  `json:"email" validate:"required,email,max=255"`
	FirstName string  `json:"firstName" validate:"required,max=100"`
	LastName  string  `json:"lastName" validate:"required,max=100"`
	Phone     *string `json:"phone,omitempty" validate:"omitempty,max=30"`
}

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	CategoryID    int64        `json:"categoryId" validate:"gt=0"`
	CheckIn       types.Date   `json:"checkIn"`  // "2025-06-01"
	CheckOut      types.Date   `json:"checkOut"` // "2025-06-03"
	Adults        int          `json:"adults" validate:"gte=1"`
	Children      int          `json:"children" validate:"gte=0"`
	EarlyCheckIn  bool         `json:"earlyCheckIn"`
	LateCheckOut  bool         `json:"lateCheckOut"`
	ExtraBeds     int          `json:"extraBeds" validate:"gte=0"`
	Guest         GuestRequest `json:"guest"`
	PaymentMethod *string      `json:"paymentMethod,omitempty" validate:"omitempty,min=1,max=50"`
	Notes         *string      `json:"notes,omitempty" validate:"omitempty,max=500"`
}

// ToUseCaseRequest converts the HTTP request into the use case model
func (r *CreateBookingRequest) ToUseCaseRequest() *createBooking.Request {
	return &createBooking.Request{
		CategoryID:   r.CategoryID,
		CheckIn:      r.CheckIn,
		CheckOut:     r.CheckOut,
		Adults:       r.Adults,
		Children:     r.Children,
		EarlyCheckIn: r.EarlyCheckIn,
		LateCheckOut: r.LateCheckOut,
		ExtraBeds:    r.ExtraBeds,
		Guest: createBooking.GuestInput{
			Email:     r.Guest.Email,
			FirstName: r.Guest.FirstName,
			LastName:  r.Guest.LastName,
			Phone:     r.Guest.Phone,
		},
		PaymentMethod: r.PaymentMethod,
		Notes:         r.Notes,
	}
}

// BookingResponse HTTP response model
type BookingResponse struct {
	ID                   int64                `json:"id"`
	Reference            string               `json:"reference"`
	Status               string               `json:"status"`
	PaymentStatus        string               `json:"paymentStatus"`
	CategoryID           int64                `json:"categoryId"`
	CheckIn              types.Date           `json:"checkIn"`
	CheckOut             types.Date           `json:"checkOut"`
	GuestID              int64                `json:"guestId"`
	Price                models.PriceResponse `json:"price"`
	PaymentTransactionID *int64               `json:"paymentTransactionId,omitempty"`
	ContinuationToken    *string              `json:"continuationToken,omitempty"`
	CreatedAt            time.Time            `json:"createdAt"`
}

// FromUseCaseResponse converts the use case response into the HTTP model
func FromUseCaseResponse(resp *createBooking.Response) *BookingResponse {
	return &BookingResponse{
		ID:                   resp.BookingID,
		Reference:            resp.Reference,
		Status:               string(resp.Status),
		PaymentStatus:        string(resp.PaymentStatus),
		CategoryID:           resp.CategoryID,
		CheckIn:              resp.CheckIn,
		CheckOut:             resp.CheckOut,
		GuestID:              resp.GuestID,
		Price:                models.FromDomainPrice(resp.Price),
		PaymentTransactionID: resp.PaymentTransactionID,
		ContinuationToken:    resp.ContinuationToken,
		CreatedAt:            resp.CreatedAt,
	}
}
