package create_booking

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
	"github.com/m04kA/SMC-RoomBookingService/internal/service/availability"
	"github.com/m04kA/SMC-RoomBookingService/internal/service/pricing"
	"github.com/m04kA/SMC-RoomBookingService/internal/testutil/memstore"
	"github.com/m04kA/SMC-RoomBookingService/internal/testutil/recorder"
	"github.com/m04kA/SMC-RoomBookingService/pkg/logger"
	"github.com/m04kA/SMC-RoomBookingService/pkg/ptr"
	"github.com/m04kA/SMC-RoomBookingService/pkg/types"
)

type fixedTime struct{ t time.Time }

func (f fixedTime) Now() time.Time { return f.t }

var now = time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)

type fixture struct {
	store    *memstore.Store
	events   *recorder.Events
	metrics  *recorder.Metrics
	category domain.RoomCategory
	uc       *UseCase
}

func newFixture(t *testing.T, rooms int) *fixture {
	t.Helper()

	store := memstore.New()
	category := store.AddCategory(domain.RoomCategory{Name: "Deluxe", BaseRate: 10000, MaxOccupancy: 2})
	for i := 0; i < rooms; i++ {
		store.AddRoom(domain.Room{CategoryID: category.ID, Number: string(rune('1'+i)) + "01", Floor: i + 1})
	}

	log := logger.NewNop()
	events := recorder.NewEvents()
	metrics := recorder.NewMetrics()

	uc := NewUseCase(
		store.Bookings(),
		store.Rooms(),
		store.Guests(),
		store.Payments(),
		availability.NewChecker(store.Rooms(), store.Bookings(), log),
		pricing.DefaultCalculator(),
		store.TxManager(),
		events,
		metrics,
		log,
	).WithTimeProvider(fixedTime{now})

	return &fixture{store: store, events: events, metrics: metrics, category: category, uc: uc}
}

func (f *fixture) request(checkIn, checkOut string) *Request {
	return &Request{
		CategoryID: f.category.ID,
		CheckIn:    types.MustParseDate(checkIn),
		CheckOut:   types.MustParseDate(checkOut),
		Adults:     2,
		Guest: GuestInput{
			Email:     "Ann.Lee@Example.com ",
			FirstName: "Ann",
			LastName:  "Lee",
		},
	}
}

func TestExecute_Success(t *testing.T) {
	f := newFixture(t, 2)

	resp, err := f.uc.Execute(context.Background(), f.request("2025-06-10", "2025-06-12"))
	require.NoError(t, err)

	assert.Regexp(t, `^BK-250601-[0-9A-F]{6}$`, resp.Reference)
	assert.Equal(t, domain.StatusPending, resp.Status)
	assert.Equal(t, domain.PaymentPending, resp.PaymentStatus)
	assert.Equal(t, 2, resp.Price.Nights)
	assert.Equal(t, domain.Money(24600), resp.Price.FinalTotal)
	assert.Nil(t, resp.PaymentTransactionID)
	assert.Nil(t, resp.ContinuationToken)

	booking, ok := f.store.Booking(resp.BookingID)
	require.True(t, ok)
	assert.Equal(t, domain.Money(24600), booking.TotalAmount)
	assert.Equal(t, now, booking.CreatedAt)

	stay, ok := f.store.Stay(resp.BookingID)
	require.True(t, ok)
	assert.False(t, stay.Room.IsAssigned())
	assert.Equal(t, f.category.ID, stay.CategoryID)
	assert.Equal(t, resp.Price, stay.Price)

	guests := f.store.GuestProfiles()
	require.Len(t, guests, 1)
	assert.Equal(t, "ann.lee@example.com", guests[0].Email)
	assert.Equal(t, 1, guests[0].TotalBookings)
	assert.Equal(t, domain.Money(24600), guests[0].TotalSpent)

	assert.Equal(t, []domain.EventType{domain.EventBookingCreated}, f.events.Types())
	assert.Equal(t, "ann.lee@example.com", f.events.All()[0].GuestEmail)
	assert.Equal(t, 1, f.metrics.BookingsCreated)
}

func TestExecute_WithPaymentMethod(t *testing.T) {
	f := newFixture(t, 1)

	req := f.request("2025-06-10", "2025-06-11")
	req.PaymentMethod = ptr.Ptr("card")

	resp, err := f.uc.Execute(context.Background(), req)
	require.NoError(t, err)
	require.NotNil(t, resp.PaymentTransactionID)
	require.NotNil(t, resp.ContinuationToken)
	assert.NotEmpty(t, *resp.ContinuationToken)

	tx, ok := f.store.Payment(*resp.PaymentTransactionID)
	require.True(t, ok)
	assert.Equal(t, domain.TransactionPending, tx.Status)
	assert.Equal(t, resp.Price.FinalTotal, tx.Amount)
	assert.Equal(t, "card", tx.Method)
	assert.Equal(t, resp.BookingID, tx.BookingID)
}

func TestExecute_RepeatGuestUpdatesProfile(t *testing.T) {
	f := newFixture(t, 2)

	first, err := f.uc.Execute(context.Background(), f.request("2025-06-10", "2025-06-11"))
	require.NoError(t, err)

	req := f.request("2025-07-01", "2025-07-03")
	req.Guest.Email = "ann.lee@example.com"
	second, err := f.uc.Execute(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, first.GuestID, second.GuestID)

	guests := f.store.GuestProfiles()
	require.Len(t, guests, 1)
	assert.Equal(t, 2, guests[0].TotalBookings)
	assert.Equal(t, first.Price.FinalTotal+second.Price.FinalTotal, guests[0].TotalSpent)
}

func TestExecute_CapacityExhausted(t *testing.T) {
	f := newFixture(t, 1)

	_, err := f.uc.Execute(context.Background(), f.request("2025-06-10", "2025-06-13"))
	require.NoError(t, err)

	_, err = f.uc.Execute(context.Background(), f.request("2025-06-12", "2025-06-14"))
	require.Error(t, err)

	var capErr *domain.CapacityError
	require.True(t, errors.As(err, &capErr))
	assert.ErrorIs(t, err, domain.ErrCapacity)
	assert.Equal(t, f.category.ID, capErr.CategoryID)
	assert.Equal(t, 1, capErr.TotalRooms)
	assert.Equal(t, 1, capErr.CommittedRooms)

	assert.Equal(t, 1, f.store.BookingCount())
	assert.Equal(t, 1, f.metrics.CapacityRejections[f.category.ID])
	assert.Len(t, f.events.All(), 1)
}

func TestExecute_BackToBackStaysShareRoom(t *testing.T) {
	f := newFixture(t, 1)

	_, err := f.uc.Execute(context.Background(), f.request("2025-06-10", "2025-06-12"))
	require.NoError(t, err)

	_, err = f.uc.Execute(context.Background(), f.request("2025-06-12", "2025-06-14"))
	require.NoError(t, err)

	_, err = f.uc.Execute(context.Background(), f.request("2025-06-08", "2025-06-10"))
	require.NoError(t, err)
}

func TestExecute_OutOfOrderRoomsNotCounted(t *testing.T) {
	f := newFixture(t, 0)
	room := f.store.AddRoom(domain.Room{CategoryID: f.category.ID, Number: "101"})
	f.store.AddRoom(domain.Room{CategoryID: f.category.ID, Number: "102", Status: domain.RoomOutOfOrder})

	_, err := f.uc.Execute(context.Background(), f.request("2025-06-10", "2025-06-11"))
	require.NoError(t, err)

	_, err = f.uc.Execute(context.Background(), f.request("2025-06-10", "2025-06-11"))
	assert.ErrorIs(t, err, domain.ErrCapacity)

	// maintenance still counts towards inventory
	f.store.SetRoomStatus(room.ID, domain.RoomMaintenance)
	_, err = f.uc.Execute(context.Background(), f.request("2025-06-20", "2025-06-21"))
	assert.NoError(t, err)
}

func TestExecute_CategoryNotFound(t *testing.T) {
	f := newFixture(t, 1)

	req := f.request("2025-06-10", "2025-06-11")
	req.CategoryID = 999

	_, err := f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrCategoryNotFound)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestExecute_OccupancyExceeded(t *testing.T) {
	f := newFixture(t, 1)

	req := f.request("2025-06-10", "2025-06-11")
	req.Children = 1

	_, err := f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrOccupancyExceeded)
	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.Equal(t, 0, f.store.BookingCount())
}

func TestExecute_Validation(t *testing.T) {
	f := newFixture(t, 1)

	tests := []struct {
		name   string
		mutate func(r *Request)
		want   error
	}{
		{"check-out equals check-in", func(r *Request) { r.CheckOut = r.CheckIn }, ErrInvalidDateRange},
		{"check-out before check-in", func(r *Request) { r.CheckOut = r.CheckIn.AddDays(-1) }, ErrInvalidDateRange},
		{"missing dates", func(r *Request) { r.CheckIn = types.Date{} }, ErrInvalidInput},
		{"no adults", func(r *Request) { r.Adults = 0 }, ErrInvalidInput},
		{"negative children", func(r *Request) { r.Children = -1 }, ErrInvalidInput},
		{"too many extra beds", func(r *Request) { r.ExtraBeds = domain.MaxExtraBeds + 1 }, ErrInvalidInput},
		{"bad email", func(r *Request) { r.Guest.Email = "not-an-email" }, ErrInvalidInput},
		{"missing name", func(r *Request) { r.Guest.LastName = " " }, ErrInvalidInput},
		{"empty payment method", func(r *Request) { r.PaymentMethod = ptr.Ptr("") }, ErrInvalidInput},
		{"invalid category", func(r *Request) { r.CategoryID = 0 }, ErrInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := f.request("2025-06-10", "2025-06-11")
			tt.mutate(req)

			_, err := f.uc.Execute(context.Background(), req)
			assert.ErrorIs(t, err, tt.want)
			assert.ErrorIs(t, err, domain.ErrValidation)
		})
	}
	assert.Equal(t, 0, f.store.BookingCount())
}

func TestExecute_RollsBackOnFailure(t *testing.T) {
	f := newFixture(t, 1)
	f.store.FailOn("guests.AddToBooking", errors.New("connection reset"))

	_, err := f.uc.Execute(context.Background(), f.request("2025-06-10", "2025-06-11"))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInternal)
	assert.Equal(t, domain.CodeInternal, domain.Category(err))

	assert.Equal(t, 0, f.store.BookingCount())
	assert.Empty(t, f.store.GuestProfiles())
	assert.Empty(t, f.events.All())
	assert.Equal(t, 0, f.metrics.BookingsCreated)
}

func TestExecute_ConcurrentRequestsForLastRoom(t *testing.T) {
	f := newFixture(t, 1)

	const attempts = 8
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		succeeded int
		rejected  int
	)

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.uc.Execute(context.Background(), f.request("2025-06-10", "2025-06-12"))

			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				succeeded++
			case errors.Is(err, domain.ErrCapacity):
				rejected++
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, succeeded)
	assert.Equal(t, attempts-1, rejected)
	assert.Equal(t, 1, f.store.BookingCount())
}
