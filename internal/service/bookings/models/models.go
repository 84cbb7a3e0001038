package models

import (
	"errors"
	"time"

	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
	"github.com/m04kA/SMC-RoomBookingService/pkg/types"
)

var (
	// ErrInvalidStatus unknown booking status
	ErrInvalidStatus = errors.New("invalid booking status")
)

// Request models

// ListBookingsRequest filter and page of the booking list
type ListBookingsRequest struct {
	Status     *string
	CategoryID *int64
	From       *types.Date
	To         *types.Date
	Search     string
	Limit      int
	Offset     int
}

// Response models

// PriceResponse itemized price, money in minor units and rates in percent
type PriceResponse struct {
	BaseRate          int64   `json:"baseRate"`
	Nights            int     `json:"nights"`
	RoomSubtotal      int64   `json:"roomSubtotal"`
	EarlyCheckInFee   int64   `json:"earlyCheckInFee"`
	LateCheckOutFee   int64   `json:"lateCheckOutFee"`
	ExtraBedFee       int64   `json:"extraBedFee"`
	PreTaxSubtotal    int64   `json:"preTaxSubtotal"`
	TaxRate           float64 `json:"taxRate"`
	Tax               int64   `json:"tax"`
	ServiceChargeRate float64 `json:"serviceChargeRate"`
	ServiceCharge     int64   `json:"serviceCharge"`
	FinalTotal        int64   `json:"finalTotal"`
}

// StayResponse dates, occupancy and room of a booking
type StayResponse struct {
	CategoryID   int64         `json:"categoryId"`
	RoomID       *int64        `json:"roomId"`
	CheckIn      types.Date    `json:"checkIn"`
	CheckOut     types.Date    `json:"checkOut"`
	Adults       int           `json:"adults"`
	Children     int           `json:"children"`
	EarlyCheckIn bool          `json:"earlyCheckIn"`
	LateCheckOut bool          `json:"lateCheckOut"`
	ExtraBeds    int           `json:"extraBeds"`
	Price        PriceResponse `json:"price"`
}

// GuestResponse primary guest
type GuestResponse struct {
	ID            int64   `json:"id"`
	Email         string  `json:"email"`
	FirstName     string  `json:"firstName"`
	LastName      string  `json:"lastName"`
	Phone         *string `json:"phone,omitempty"`
	TotalBookings int     `json:"totalBookings"`
	TotalSpent    int64   `json:"totalSpent"`
}

// PaymentResponse payment transaction
type PaymentResponse struct {
	ID          int64      `json:"id"`
	Method      string     `json:"method"`
	Amount      int64      `json:"amount"`
	Status      string     `json:"status"`
	CreatedAt   time.Time  `json:"createdAt"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`
	RefundedAt  *time.Time `json:"refundedAt,omitempty"`
}

// BookingResponse booking read model
type BookingResponse struct {
	ID                 int64             `json:"id"`
	Reference          string            `json:"reference"`
	Status             string            `json:"status"`
	PaymentStatus      string            `json:"paymentStatus"`
	TotalAmount        int64             `json:"totalAmount"`
	Notes              *string           `json:"notes,omitempty"`
	CancellationReason *string           `json:"cancellationReason,omitempty"`
	CancelledAt        *time.Time        `json:"cancelledAt,omitempty"`
	ConfirmedAt        *time.Time        `json:"confirmedAt,omitempty"`
	CheckedInAt        *time.Time        `json:"checkedInAt,omitempty"`
	CheckedOutAt       *time.Time        `json:"checkedOutAt,omitempty"`
	Stay               StayResponse      `json:"stay"`
	Guest              *GuestResponse    `json:"guest,omitempty"`
	Payments           []PaymentResponse `json:"payments,omitempty"`
	CreatedAt          time.Time         `json:"createdAt"`
	UpdatedAt          time.Time         `json:"updatedAt"`
}

// BookingListResponse page of bookings
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
	Limit    int               `json:"limit"`
	Offset   int               `json:"offset"`
}

// AssignmentResponse audit entry of a room binding
type AssignmentResponse struct {
	ID             int64      `json:"id"`
	RoomID         int64      `json:"roomId"`
	Mode           string     `json:"mode"`
	AssignedBy     *string    `json:"assignedBy,omitempty"`
	Note           *string    `json:"note,omitempty"`
	AssignedAt     time.Time  `json:"assignedAt"`
	UnassignedAt   *time.Time `json:"unassignedAt,omitempty"`
	UnassignReason *string    `json:"unassignReason,omitempty"`
}

// AssignmentListResponse audit trail of a booking, oldest first
type AssignmentListResponse struct {
	BookingID   int64                `json:"bookingId"`
	Assignments []AssignmentResponse `json:"assignments"`
}

// StatusChangeResponse result of check-in or check-out
type StatusChangeResponse struct {
	BookingID int64     `json:"bookingId"`
	Reference string    `json:"reference"`
	Status    string    `json:"status"`
	RoomID    *int64    `json:"roomId"`
	At        time.Time `json:"at"`
}

// Conversion

// ToDomainBookingStatus parses a booking status
func ToDomainBookingStatus(status string) (domain.BookingStatus, error) {
	switch s := domain.BookingStatus(status); s {
	case domain.StatusPending,
		domain.StatusConfirmed,
		domain.StatusCheckedIn,
		domain.StatusCheckedOut,
		domain.StatusCancelled:
		return s, nil
	default:
		return "", ErrInvalidStatus
	}
}

// FromDomainPrice converts a price breakdown to its DTO
func FromDomainPrice(p domain.PriceBreakdown) PriceResponse {
	return PriceResponse{
		BaseRate:          int64(p.BaseRate),
		Nights:            p.Nights,
		RoomSubtotal:      int64(p.RoomSubtotal),
		EarlyCheckInFee:   int64(p.EarlyCheckInFee),
		LateCheckOutFee:   int64(p.LateCheckOutFee),
		ExtraBedFee:       int64(p.ExtraBedFee),
		PreTaxSubtotal:    int64(p.PreTaxSubtotal),
		TaxRate:           p.TaxRate.Percent(),
		Tax:               int64(p.Tax),
		ServiceChargeRate: p.ServiceRate.Percent(),
		ServiceCharge:     int64(p.ServiceCharge),
		FinalTotal:        int64(p.FinalTotal),
	}
}

// FromDomainStay converts a stay to its DTO
func FromDomainStay(s *domain.StayDetail) StayResponse {
	return StayResponse{
		CategoryID:   s.CategoryID,
		RoomID:       s.Room.Ptr(),
		CheckIn:      s.Dates.CheckIn,
		CheckOut:     s.Dates.CheckOut,
		Adults:       s.Adults,
		Children:     s.Children,
		EarlyCheckIn: s.EarlyCheckIn,
		LateCheckOut: s.LateCheckOut,
		ExtraBeds:    s.ExtraBeds,
		Price:        FromDomainPrice(s.Price),
	}
}

// FromDomainGuest converts a guest profile to its DTO
func FromDomainGuest(g *domain.GuestProfile) *GuestResponse {
	if g == nil {
		return nil
	}
	return &GuestResponse{
		ID:            g.ID,
		Email:         g.Email,
		FirstName:     g.FirstName,
		LastName:      g.LastName,
		Phone:         g.Phone,
		TotalBookings: g.TotalBookings,
		TotalSpent:    int64(g.TotalSpent),
	}
}

// FromDomainDetails converts the booking read model to its DTO
func FromDomainDetails(d *domain.BookingDetails) BookingResponse {
	b := &d.Booking
	return BookingResponse{
		ID:                 b.ID,
		Reference:          b.Reference,
		Status:             string(b.Status),
		PaymentStatus:      string(b.PaymentStatus),
		TotalAmount:        int64(b.TotalAmount),
		Notes:              b.Notes,
		CancellationReason: b.CancellationReason,
		CancelledAt:        b.CancelledAt,
		ConfirmedAt:        b.ConfirmedAt,
		CheckedInAt:        b.CheckedInAt,
		CheckedOutAt:       b.CheckedOutAt,
		Stay:               FromDomainStay(&d.Stay),
		Guest:              FromDomainGuest(d.Guest),
		CreatedAt:          b.CreatedAt,
		UpdatedAt:          b.UpdatedAt,
	}
}

// FromDomainPayments converts payment transactions to DTOs
func FromDomainPayments(txs []*domain.PaymentTransaction) []PaymentResponse {
	result := make([]PaymentResponse, 0, len(txs))
	for _, tx := range txs {
		result = append(result, PaymentResponse{
			ID:          tx.ID,
			Method:      tx.Method,
			Amount:      int64(tx.Amount),
			Status:      string(tx.Status),
			CreatedAt:   tx.CreatedAt,
			CompletedAt: tx.CompletedAt,
			RefundedAt:  tx.RefundedAt,
		})
	}
	return result
}

// FromDomainAssignments converts audit entries to DTOs
func FromDomainAssignments(bookingID int64, items []*domain.RoomAssignment) *AssignmentListResponse {
	resp := &AssignmentListResponse{
		BookingID:   bookingID,
		Assignments: make([]AssignmentResponse, 0, len(items)),
	}
	for _, a := range items {
		resp.Assignments = append(resp.Assignments, AssignmentResponse{
			ID:             a.ID,
			RoomID:         a.RoomID,
			Mode:           string(a.Mode),
			AssignedBy:     a.AssignedBy,
			Note:           a.Note,
			AssignedAt:     a.AssignedAt,
			UnassignedAt:   a.UnassignedAt,
			UnassignReason: a.UnassignReason,
		})
	}
	return resp
}
