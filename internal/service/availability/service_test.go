package availability

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
	"github.com/m04kA/SMC-RoomBookingService/internal/testutil/memstore"
	"github.com/m04kA/SMC-RoomBookingService/pkg/logger"
	"github.com/m04kA/SMC-RoomBookingService/pkg/types"
)

func dates(in, out string) domain.DateRange {
	return domain.DateRange{CheckIn: types.MustParseDate(in), CheckOut: types.MustParseDate(out)}
}

func seedStay(t *testing.T, store *memstore.Store, categoryID int64, status domain.BookingStatus, d domain.DateRange) {
	t.Helper()
	ctx := context.Background()

	b, err := store.Bookings().Create(ctx, &domain.Booking{Reference: "BK-" + d.CheckIn.String() + string(status), Status: status})
	require.NoError(t, err)
	require.NoError(t, store.Bookings().CreateStay(ctx, &domain.StayDetail{BookingID: b.ID, CategoryID: categoryID, Dates: d}))
}

func TestChecker_Check(t *testing.T) {
	store := memstore.New()
	category := store.AddCategory(domain.RoomCategory{Name: "Standard", BaseRate: 8000, MaxOccupancy: 2})
	for _, number := range []string{"101", "102", "103"} {
		store.AddRoom(domain.Room{CategoryID: category.ID, Number: number})
	}
	store.AddRoom(domain.Room{CategoryID: category.ID, Number: "104", Status: domain.RoomOutOfOrder})

	seedStay(t, store, category.ID, domain.StatusConfirmed, dates("2025-06-10", "2025-06-12"))
	seedStay(t, store, category.ID, domain.StatusCheckedIn, dates("2025-06-11", "2025-06-15"))
	seedStay(t, store, category.ID, domain.StatusCancelled, dates("2025-06-10", "2025-06-12"))
	seedStay(t, store, category.ID, domain.StatusPending, dates("2025-06-12", "2025-06-13"))

	checker := NewChecker(store.Rooms(), store.Bookings(), logger.NewNop())

	tests := []struct {
		name      string
		dates     domain.DateRange
		committed int
	}{
		{"overlaps two active stays", dates("2025-06-11", "2025-06-12"), 2},
		{"adjacent stay is not counted", dates("2025-06-08", "2025-06-10"), 0},
		{"overlaps all active stays", dates("2025-06-09", "2025-06-20"), 3},
		{"after every stay", dates("2025-06-15", "2025-06-16"), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, err := checker.Check(context.Background(), category.ID, tt.dates)
			require.NoError(t, err)
			assert.Equal(t, 3, a.TotalRooms)
			assert.Equal(t, tt.committed, a.CommittedRooms)
			assert.Equal(t, 3-tt.committed, a.FreeRooms)
			assert.Equal(t, "Standard", a.CategoryName)
		})
	}
}

func TestChecker_Require(t *testing.T) {
	store := memstore.New()
	category := store.AddCategory(domain.RoomCategory{Name: "Suite", MaxOccupancy: 4})
	store.AddRoom(domain.Room{CategoryID: category.ID, Number: "501"})
	seedStay(t, store, category.ID, domain.StatusConfirmed, dates("2025-06-10", "2025-06-12"))

	checker := NewChecker(store.Rooms(), store.Bookings(), logger.NewNop())

	_, err := checker.Require(context.Background(), &category, dates("2025-06-11", "2025-06-13"))
	var capErr *domain.CapacityError
	require.True(t, errors.As(err, &capErr))
	assert.Equal(t, "Suite", capErr.CategoryName)
	assert.Equal(t, 1, capErr.CommittedRooms)

	a, err := checker.Require(context.Background(), &category, dates("2025-06-12", "2025-06-13"))
	require.NoError(t, err)
	assert.Equal(t, 1, a.FreeRooms)
}

func TestChecker_Errors(t *testing.T) {
	store := memstore.New()
	checker := NewChecker(store.Rooms(), store.Bookings(), logger.NewNop())

	_, err := checker.Check(context.Background(), 42, dates("2025-06-10", "2025-06-11"))
	assert.ErrorIs(t, err, ErrCategoryNotFound)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	category := store.AddCategory(domain.RoomCategory{Name: "Standard"})
	store.FailOn("bookings.CountCommitted", errors.New("timeout"))

	_, err = checker.Check(context.Background(), category.ID, dates("2025-06-10", "2025-06-11"))
	assert.ErrorIs(t, err, ErrInternal)
}

func TestChecker_FreeRoomsMonotonic(t *testing.T) {
	store := memstore.New()
	category := store.AddCategory(domain.RoomCategory{Name: "Deluxe", MaxOccupancy: 2})
	store.AddRoom(domain.Room{CategoryID: category.ID, Number: "D1"})
	store.AddRoom(domain.Room{CategoryID: category.ID, Number: "D2"})

	checker := NewChecker(store.Rooms(), store.Bookings(), logger.NewNop())
	window := dates("2025-06-01", "2025-06-03")

	free := func() int {
		a, err := checker.Check(context.Background(), category.ID, window)
		require.NoError(t, err)
		return a.FreeRooms
	}

	prev := free()
	assert.Equal(t, 2, prev)

	var ids []int64
	for _, d := range []domain.DateRange{
		dates("2025-06-02", "2025-06-04"),
		dates("2025-06-03", "2025-06-05"),
		dates("2025-05-30", "2025-06-02"),
	} {
		b := store.AddBooking(domain.Booking{Status: domain.StatusConfirmed}, domain.StayDetail{CategoryID: category.ID, Dates: d})
		ids = append(ids, b.ID)

		got := free()
		assert.LessOrEqual(t, got, prev)
		prev = got
	}
	assert.Equal(t, 0, prev)

	for _, id := range ids {
		b, ok := store.Booking(id)
		require.True(t, ok)
		b.Status = domain.StatusCancelled
		require.NoError(t, store.Bookings().Update(context.Background(), &b))

		got := free()
		assert.GreaterOrEqual(t, got, prev)
		prev = got
	}
	assert.Equal(t, 2, prev)
}
