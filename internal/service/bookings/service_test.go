package bookings

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
	"github.com/m04kA/SMC-RoomBookingService/internal/service/bookings/models"
	"github.com/m04kA/SMC-RoomBookingService/internal/testutil/memstore"
	"github.com/m04kA/SMC-RoomBookingService/pkg/logger"
	"github.com/m04kA/SMC-RoomBookingService/pkg/ptr"
	"github.com/m04kA/SMC-RoomBookingService/pkg/types"
)

type fixedTime struct{ t time.Time }

func (f fixedTime) Now() time.Time { return f.t }

var now = time.Date(2025, 6, 10, 14, 0, 0, 0, time.UTC)

type fixture struct {
	store    *memstore.Store
	svc      *Service
	category domain.RoomCategory
	room     domain.Room
}

func setup(t *testing.T) *fixture {
	t.Helper()
	store := memstore.New()
	f := &fixture{store: store}
	f.category = store.AddCategory(domain.RoomCategory{Name: "Deluxe", BaseRate: 10000, MaxOccupancy: 2})
	f.room = store.AddRoom(domain.Room{CategoryID: f.category.ID, Number: "101", Status: domain.RoomReserved})
	f.svc = NewService(
		store.Bookings(),
		store.Payments(),
		store.Assignments(),
		store.Rooms(),
		store.TxManager(),
		logger.NewNop(),
	).WithTimeProvider(fixedTime{now})
	return f
}

func (f *fixture) addBooking(status domain.BookingStatus, checkIn, checkOut string, room domain.RoomBinding, createdAt time.Time) domain.Booking {
	return f.store.AddBooking(
		domain.Booking{Status: status, CreatedAt: createdAt, TotalAmount: 24600},
		domain.StayDetail{
			CategoryID: f.category.ID,
			Room:       room,
			Dates:      domain.DateRange{CheckIn: types.MustParseDate(checkIn), CheckOut: types.MustParseDate(checkOut)},
			Adults:     2,
			Price:      domain.PriceBreakdown{BaseRate: 10000, Nights: 2, FinalTotal: 24600, TaxRate: 1800},
		},
	)
}

func (f *fixture) addGuest(t *testing.T, bookingID int64, email string) {
	t.Helper()
	ctx := context.Background()
	guest, err := f.store.Guests().Upsert(ctx, &domain.GuestProfile{Email: email, FirstName: "Ada", LastName: "Lovelace"}, 24600, now)
	require.NoError(t, err)
	require.NoError(t, f.store.Guests().AddToBooking(ctx, domain.BookingGuest{BookingID: bookingID, GuestID: guest.ID, IsPrimary: true}))
}

func TestGetByID(t *testing.T) {
	f := setup(t)
	booking := f.addBooking(domain.StatusPending, "2025-07-01", "2025-07-03", domain.Unassigned(), now)
	f.addGuest(t, booking.ID, "ada@example.com")
	f.store.AddPayment(domain.PaymentTransaction{BookingID: booking.ID, Method: "card", Amount: 24600})

	resp, err := f.svc.GetByID(context.Background(), booking.ID)
	require.NoError(t, err)

	assert.Equal(t, booking.Reference, resp.Reference)
	assert.Equal(t, "pending", resp.Status)
	assert.Equal(t, "2025-07-01", resp.Stay.CheckIn.String())
	assert.Nil(t, resp.Stay.RoomID)
	assert.Equal(t, 18.0, resp.Stay.Price.TaxRate)
	require.NotNil(t, resp.Guest)
	assert.Equal(t, "ada@example.com", resp.Guest.Email)
	require.Len(t, resp.Payments, 1)
	assert.Equal(t, "pending", resp.Payments[0].Status)

	_, err = f.svc.GetByID(context.Background(), 9999)
	assert.ErrorIs(t, err, ErrBookingNotFound)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestList_Filters(t *testing.T) {
	f := setup(t)
	july := f.addBooking(domain.StatusConfirmed, "2025-07-01", "2025-07-03", domain.Unassigned(), now.Add(-3*time.Hour))
	august := f.addBooking(domain.StatusPending, "2025-08-10", "2025-08-12", domain.Unassigned(), now.Add(-2*time.Hour))
	cancelled := f.addBooking(domain.StatusCancelled, "2025-07-02", "2025-07-04", domain.Unassigned(), now.Add(-time.Hour))
	f.addGuest(t, august.ID, "grace@example.com")

	ids := func(resp *models.BookingListResponse) []int64 {
		result := make([]int64, 0, len(resp.Bookings))
		for _, b := range resp.Bookings {
			result = append(result, b.ID)
		}
		return result
	}

	tests := []struct {
		name string
		req  *models.ListBookingsRequest
		want []int64
	}{
		{"all newest first", &models.ListBookingsRequest{}, []int64{cancelled.ID, august.ID, july.ID}},
		{"by status", &models.ListBookingsRequest{Status: ptr.Ptr("confirmed")}, []int64{july.ID}},
		{"overlapping july", &models.ListBookingsRequest{
			From: ptr.Ptr(types.MustParseDate("2025-07-01")),
			To:   ptr.Ptr(types.MustParseDate("2025-07-31")),
		}, []int64{cancelled.ID, july.ID}},
		{"check-out day does not overlap", &models.ListBookingsRequest{
			From: ptr.Ptr(types.MustParseDate("2025-07-04")),
			To:   ptr.Ptr(types.MustParseDate("2025-07-05")),
		}, []int64{}},
		{"search by guest email", &models.ListBookingsRequest{Search: " GRACE@"}, []int64{august.ID}},
		{"search by reference", &models.ListBookingsRequest{Search: july.Reference}, []int64{july.ID}},
		{"paged", &models.ListBookingsRequest{Limit: 1, Offset: 1}, []int64{august.ID}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := f.svc.List(context.Background(), tt.req)
			require.NoError(t, err)
			assert.Equal(t, tt.want, ids(resp))
		})
	}
}

func TestList_Paging(t *testing.T) {
	f := setup(t)

	resp, err := f.svc.List(context.Background(), &models.ListBookingsRequest{})
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultListLimit, resp.Limit)
	assert.Empty(t, resp.Bookings)

	resp, err = f.svc.List(context.Background(), &models.ListBookingsRequest{Limit: 5000})
	require.NoError(t, err)
	assert.Equal(t, domain.MaxListLimit, resp.Limit)
}

func TestList_InvalidFilter(t *testing.T) {
	f := setup(t)

	tests := []struct {
		name string
		req  *models.ListBookingsRequest
	}{
		{"unknown status", &models.ListBookingsRequest{Status: ptr.Ptr("lost")}},
		{"empty range", &models.ListBookingsRequest{
			From: ptr.Ptr(types.MustParseDate("2025-07-05")),
			To:   ptr.Ptr(types.MustParseDate("2025-07-05")),
		}},
		{"negative limit", &models.ListBookingsRequest{Limit: -1}},
		{"negative offset", &models.ListBookingsRequest{Offset: -1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.svc.List(context.Background(), tt.req)
			assert.ErrorIs(t, err, ErrInvalidInput)
			assert.ErrorIs(t, err, domain.ErrValidation)
		})
	}
}

func TestListAssignments(t *testing.T) {
	f := setup(t)
	booking := f.addBooking(domain.StatusConfirmed, "2025-07-01", "2025-07-03", domain.AssignedTo(f.room.ID), now)
	closedAt := now.Add(-time.Hour)
	f.store.AddAssignment(domain.RoomAssignment{
		BookingID: booking.ID, RoomID: 77, Mode: domain.AssignAuto,
		AssignedAt: now.Add(-2 * time.Hour), UnassignedAt: &closedAt, UnassignReason: ptr.Ptr("guest request"),
	})
	f.store.AddAssignment(domain.RoomAssignment{
		BookingID: booking.ID, RoomID: f.room.ID, Mode: domain.AssignManual,
		AssignedBy: ptr.Ptr("staff-1"), AssignedAt: closedAt,
	})

	resp, err := f.svc.ListAssignments(context.Background(), booking.ID)
	require.NoError(t, err)
	require.Len(t, resp.Assignments, 2)
	assert.Equal(t, "auto", resp.Assignments[0].Mode)
	require.NotNil(t, resp.Assignments[0].UnassignReason)
	assert.Equal(t, f.room.ID, resp.Assignments[1].RoomID)
	assert.Nil(t, resp.Assignments[1].UnassignedAt)

	_, err = f.svc.ListAssignments(context.Background(), 9999)
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestCheckIn(t *testing.T) {
	f := setup(t)
	booking := f.addBooking(domain.StatusConfirmed, "2025-06-10", "2025-06-12", domain.AssignedTo(f.room.ID), now)

	resp, err := f.svc.CheckIn(context.Background(), booking.ID)
	require.NoError(t, err)
	assert.Equal(t, "checked_in", resp.Status)
	require.NotNil(t, resp.RoomID)
	assert.Equal(t, f.room.ID, *resp.RoomID)
	assert.Equal(t, now, resp.At)

	stored, _ := f.store.Booking(booking.ID)
	assert.Equal(t, domain.StatusCheckedIn, stored.Status)
	require.NotNil(t, stored.CheckedInAt)

	room, _ := f.store.Room(f.room.ID)
	assert.Equal(t, domain.RoomOccupied, room.Status)
}

func TestCheckIn_Errors(t *testing.T) {
	f := setup(t)
	pending := f.addBooking(domain.StatusPending, "2025-06-10", "2025-06-12", domain.AssignedTo(f.room.ID), now)
	unassigned := f.addBooking(domain.StatusConfirmed, "2025-06-10", "2025-06-12", domain.Unassigned(), now)

	_, err := f.svc.CheckIn(context.Background(), pending.ID)
	assert.ErrorIs(t, err, ErrCannotCheckIn)
	assert.ErrorIs(t, err, domain.ErrState)

	_, err = f.svc.CheckIn(context.Background(), unassigned.ID)
	assert.ErrorIs(t, err, ErrRoomNotAssigned)

	_, err = f.svc.CheckIn(context.Background(), 9999)
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestCheckIn_RollsBackWhenRoomUpdateFails(t *testing.T) {
	f := setup(t)
	booking := f.addBooking(domain.StatusConfirmed, "2025-06-10", "2025-06-12", domain.AssignedTo(f.room.ID), now)
	f.store.FailOn("rooms.UpdateStatus", errors.New("lock timeout"))

	_, err := f.svc.CheckIn(context.Background(), booking.ID)
	require.ErrorIs(t, err, ErrInternal)

	stored, _ := f.store.Booking(booking.ID)
	assert.Equal(t, domain.StatusConfirmed, stored.Status)
	assert.Nil(t, stored.CheckedInAt)
}

func TestCheckOut(t *testing.T) {
	f := setup(t)
	f.store.SetRoomStatus(f.room.ID, domain.RoomOccupied)
	booking := f.addBooking(domain.StatusCheckedIn, "2025-06-08", "2025-06-10", domain.AssignedTo(f.room.ID), now)

	resp, err := f.svc.CheckOut(context.Background(), booking.ID)
	require.NoError(t, err)
	assert.Equal(t, "checked_out", resp.Status)

	stored, _ := f.store.Booking(booking.ID)
	assert.Equal(t, domain.StatusCheckedOut, stored.Status)
	require.NotNil(t, stored.CheckedOutAt)

	room, _ := f.store.Room(f.room.ID)
	assert.Equal(t, domain.RoomCleaning, room.Status)

	_, err = f.svc.CheckOut(context.Background(), booking.ID)
	assert.ErrorIs(t, err, ErrCannotCheckOut)
}
