package assign_room

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-RoomBookingService/internal/infra/storage/booking"
	"github.com/m04kA/SMC-RoomBookingService/internal/service/availability"
	"github.com/m04kA/SMC-RoomBookingService/internal/service/roomscoring"
	"github.com/m04kA/SMC-RoomBookingService/internal/testutil/memstore"
	"github.com/m04kA/SMC-RoomBookingService/internal/testutil/recorder"
	"github.com/m04kA/SMC-RoomBookingService/pkg/logger"
	"github.com/m04kA/SMC-RoomBookingService/pkg/ptr"
	"github.com/m04kA/SMC-RoomBookingService/pkg/types"
)

type fixedTime struct{ t time.Time }

func (f fixedTime) Now() time.Time { return f.t }

var now = time.Date(2025, 6, 9, 9, 0, 0, 0, time.UTC)

type fixture struct {
	store   *memstore.Store
	events  *recorder.Events
	metrics *recorder.Metrics
	uc      *UseCase

	deluxe domain.RoomCategory
	suite  domain.RoomCategory
	rooms  map[string]domain.Room
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	store := memstore.New()
	f := &fixture{
		store:   store,
		events:  recorder.NewEvents(),
		metrics: recorder.NewMetrics(),
		deluxe:  store.AddCategory(domain.RoomCategory{Name: "Deluxe", BaseRate: 10000, MaxOccupancy: 2}),
		suite:   store.AddCategory(domain.RoomCategory{Name: "Suite", BaseRate: 25000, MaxOccupancy: 4}),
		rooms:   make(map[string]domain.Room),
	}

	for _, r := range []domain.Room{
		{Number: "102", Floor: 1},
		{Number: "12", Floor: 1},
		{Number: "9", Floor: 2, NearElevator: true},
		{Number: "201", Floor: 2, Status: domain.RoomMaintenance},
	} {
		r.CategoryID = f.deluxe.ID
		f.rooms[r.Number] = store.AddRoom(r)
	}
	f.rooms["501"] = store.AddRoom(domain.Room{CategoryID: f.suite.ID, Number: "501", Floor: 5})

	log := logger.NewNop()
	scorer := roomscoring.WeightedScorer{FloorMatch: 3, ElevatorProximity: 2, CleanFreshness: 1, FreshnessWindow: 24 * time.Hour}

	f.uc = NewUseCase(
		store.Bookings(),
		store.Rooms(),
		store.Assignments(),
		availability.NewChecker(store.Rooms(), store.Bookings(), log),
		scorer,
		store.TxManager(),
		f.events,
		f.metrics,
		log,
	).WithTimeProvider(fixedTime{now})

	return f
}

func dates(in, out string) domain.DateRange {
	return domain.DateRange{CheckIn: types.MustParseDate(in), CheckOut: types.MustParseDate(out)}
}

func (f *fixture) booking(status domain.BookingStatus, category domain.RoomCategory, d domain.DateRange, binding domain.RoomBinding) domain.Booking {
	return f.store.AddBooking(
		domain.Booking{Status: status},
		domain.StayDetail{CategoryID: category.ID, Dates: d, Room: binding, Adults: 2},
	)
}

func (f *fixture) stayRoom(t *testing.T, bookingID int64) (int64, bool) {
	t.Helper()
	st, ok := f.store.Stay(bookingID)
	require.True(t, ok)
	return st.Room.RoomID()
}

func TestAssign_Success(t *testing.T) {
	f := newFixture(t)
	b := f.booking(domain.StatusConfirmed, f.deluxe, dates("2025-06-10", "2025-06-12"), domain.Unassigned())

	resp, err := f.uc.Assign(context.Background(), &AssignRequest{
		BookingID:  b.ID,
		RoomID:     f.rooms["12"].ID,
		Note:       ptr.Ptr("quiet room"),
		AssignedBy: ptr.Ptr("staff-7"),
	})
	require.NoError(t, err)

	assert.True(t, resp.Changed)
	assert.Equal(t, "12", resp.RoomNumber)
	assert.Equal(t, domain.AssignManual, resp.Mode)
	require.NotNil(t, resp.AssignmentID)

	roomID, assigned := f.stayRoom(t, b.ID)
	require.True(t, assigned)
	assert.Equal(t, f.rooms["12"].ID, roomID)

	stored, _ := f.store.Booking(b.ID)
	assert.Equal(t, domain.StatusConfirmed, stored.Status)

	audit := f.store.AssignmentsOf(b.ID)
	require.Len(t, audit, 1)
	assert.True(t, audit[0].IsOpen())
	assert.Equal(t, domain.AssignManual, audit[0].Mode)
	assert.Equal(t, "staff-7", *audit[0].AssignedBy)
	assert.Equal(t, "quiet room", *audit[0].Note)

	assert.Equal(t, []domain.EventType{domain.EventRoomAssigned}, f.events.Types())
	assert.Equal(t, 1, f.metrics.Assigned(modeManual, outcomeAssigned))
}

func TestAssign_SameRoomIsNoop(t *testing.T) {
	f := newFixture(t)
	b := f.booking(domain.StatusPending, f.deluxe, dates("2025-06-10", "2025-06-12"), domain.Unassigned())
	req := &AssignRequest{BookingID: b.ID, RoomID: f.rooms["102"].ID}

	_, err := f.uc.Assign(context.Background(), req)
	require.NoError(t, err)

	resp, err := f.uc.Assign(context.Background(), req)
	require.NoError(t, err)
	assert.False(t, resp.Changed)
	assert.Equal(t, "102", resp.RoomNumber)

	assert.Len(t, f.store.AssignmentsOf(b.ID), 1)
	assert.Len(t, f.events.All(), 1)
	assert.Equal(t, 1, f.metrics.Assigned(modeManual, outcomeNoop))
}

func TestAssign_OccupiedAndCleaningRoomsAllowed(t *testing.T) {
	f := newFixture(t)
	f.store.SetRoomStatus(f.rooms["12"].ID, domain.RoomOccupied)
	f.store.SetRoomStatus(f.rooms["102"].ID, domain.RoomCleaning)

	first := f.booking(domain.StatusConfirmed, f.deluxe, dates("2025-06-10", "2025-06-12"), domain.Unassigned())
	second := f.booking(domain.StatusConfirmed, f.deluxe, dates("2025-06-10", "2025-06-12"), domain.Unassigned())

	_, err := f.uc.Assign(context.Background(), &AssignRequest{BookingID: first.ID, RoomID: f.rooms["12"].ID})
	assert.NoError(t, err)
	_, err = f.uc.Assign(context.Background(), &AssignRequest{BookingID: second.ID, RoomID: f.rooms["102"].ID})
	assert.NoError(t, err)
}

func TestAssign_Errors(t *testing.T) {
	f := newFixture(t)
	stayDates := dates("2025-06-10", "2025-06-12")

	confirmed := f.booking(domain.StatusConfirmed, f.deluxe, stayDates, domain.Unassigned())
	bound := f.booking(domain.StatusConfirmed, f.deluxe, stayDates, domain.AssignedTo(f.rooms["9"].ID))
	cancelled := f.booking(domain.StatusCancelled, f.deluxe, stayDates, domain.Unassigned())
	checkedIn := f.booking(domain.StatusCheckedIn, f.deluxe, stayDates, domain.Unassigned())
	checkedOut := f.booking(domain.StatusCheckedOut, f.deluxe, stayDates, domain.Unassigned())

	tests := []struct {
		name     string
		req      AssignRequest
		want     error
		category error
	}{
		{"invalid room id", AssignRequest{BookingID: confirmed.ID}, ErrInvalidInput, domain.ErrValidation},
		{"unknown booking", AssignRequest{BookingID: 9999, RoomID: f.rooms["12"].ID}, ErrBookingNotFound, domain.ErrNotFound},
		{"unknown room", AssignRequest{BookingID: confirmed.ID, RoomID: 9999}, ErrRoomNotFound, domain.ErrNotFound},
		{"other category", AssignRequest{BookingID: confirmed.ID, RoomID: f.rooms["501"].ID}, ErrCategoryMismatch, domain.ErrValidation},
		{"room under maintenance", AssignRequest{BookingID: confirmed.ID, RoomID: f.rooms["201"].ID}, ErrRoomUnavailable, domain.ErrState},
		{"room held by overlapping stay", AssignRequest{BookingID: confirmed.ID, RoomID: f.rooms["9"].ID}, ErrRoomOccupied, domain.ErrConflict},
		{"booking bound to another room", AssignRequest{BookingID: bound.ID, RoomID: f.rooms["12"].ID}, ErrAlreadyAssigned, domain.ErrConflict},
		{"cancelled booking", AssignRequest{BookingID: cancelled.ID, RoomID: f.rooms["12"].ID}, ErrInvalidBookingState, domain.ErrState},
		{"checked-in booking", AssignRequest{BookingID: checkedIn.ID, RoomID: f.rooms["12"].ID}, ErrInvalidBookingState, domain.ErrState},
		{"checked-out booking", AssignRequest{BookingID: checkedOut.ID, RoomID: f.rooms["12"].ID}, ErrInvalidBookingState, domain.ErrState},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := tt.req
			_, err := f.uc.Assign(context.Background(), &req)
			assert.ErrorIs(t, err, tt.want)
			assert.ErrorIs(t, err, tt.category)
		})
	}

	_, assigned := f.stayRoom(t, confirmed.ID)
	assert.False(t, assigned)
	assert.Empty(t, f.events.All())
}

func TestAssign_InactiveOverlapDoesNotBlock(t *testing.T) {
	f := newFixture(t)
	stayDates := dates("2025-06-10", "2025-06-12")
	f.booking(domain.StatusCheckedOut, f.deluxe, stayDates, domain.AssignedTo(f.rooms["12"].ID))
	b := f.booking(domain.StatusConfirmed, f.deluxe, stayDates, domain.Unassigned())

	_, err := f.uc.Assign(context.Background(), &AssignRequest{BookingID: b.ID, RoomID: f.rooms["12"].ID})
	assert.NoError(t, err)
}

func TestAssign_BackToBackStaysShareRoom(t *testing.T) {
	f := newFixture(t)
	f.booking(domain.StatusConfirmed, f.deluxe, dates("2025-06-08", "2025-06-10"), domain.AssignedTo(f.rooms["12"].ID))
	b := f.booking(domain.StatusConfirmed, f.deluxe, dates("2025-06-10", "2025-06-12"), domain.Unassigned())

	_, err := f.uc.Assign(context.Background(), &AssignRequest{BookingID: b.ID, RoomID: f.rooms["12"].ID})
	assert.NoError(t, err)
}

func TestAutoAssign_Scoring(t *testing.T) {
	tests := []struct {
		name  string
		prefs domain.AssignmentPreferences
		want  string
	}{
		{"no preferences falls back to lowest room number", domain.AssignmentPreferences{}, "9"},
		{"preferred floor", domain.AssignmentPreferences{PreferredFloor: ptr.Ptr(1)}, "12"},
		{"elevator", domain.AssignmentPreferences{NearElevator: true}, "9"},
		{"floor outweighs elevator", domain.AssignmentPreferences{PreferredFloor: ptr.Ptr(1), NearElevator: true}, "12"},
		{"unknown floor", domain.AssignmentPreferences{PreferredFloor: ptr.Ptr(7)}, "9"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			b := f.booking(domain.StatusConfirmed, f.deluxe, dates("2025-06-10", "2025-06-12"), domain.Unassigned())

			resp, err := f.uc.AutoAssign(context.Background(), &AutoAssignRequest{BookingID: b.ID, Preferences: tt.prefs})
			require.NoError(t, err)
			assert.Equal(t, tt.want, resp.RoomNumber)
			assert.True(t, resp.Changed)
			require.NotNil(t, resp.Score)

			audit := f.store.AssignmentsOf(b.ID)
			require.Len(t, audit, 1)
			assert.Equal(t, domain.AssignAuto, audit[0].Mode)
		})
	}
}

func TestAutoAssign_FreshlyCleanedRoomWins(t *testing.T) {
	f := newFixture(t)
	cleaned := now.Add(-2 * time.Hour)
	require.NoError(t, f.store.Rooms().UpdateStatus(context.Background(), f.rooms["102"].ID, domain.RoomAvailable, &cleaned, now))
	b := f.booking(domain.StatusConfirmed, f.deluxe, dates("2025-06-10", "2025-06-12"), domain.Unassigned())

	resp, err := f.uc.AutoAssign(context.Background(), &AutoAssignRequest{BookingID: b.ID})
	require.NoError(t, err)
	assert.Equal(t, "102", resp.RoomNumber)
}

func TestAutoAssign_SkipsBusyAndNonAvailableRooms(t *testing.T) {
	f := newFixture(t)
	f.booking(domain.StatusCheckedIn, f.deluxe, dates("2025-06-08", "2025-06-11"), domain.AssignedTo(f.rooms["9"].ID))
	f.store.SetRoomStatus(f.rooms["12"].ID, domain.RoomCleaning)
	b := f.booking(domain.StatusConfirmed, f.deluxe, dates("2025-06-10", "2025-06-12"), domain.Unassigned())

	resp, err := f.uc.AutoAssign(context.Background(), &AutoAssignRequest{BookingID: b.ID})
	require.NoError(t, err)
	assert.Equal(t, "102", resp.RoomNumber)
}

func TestAutoAssign_NoRoomAvailable(t *testing.T) {
	f := newFixture(t)
	stayDates := dates("2025-06-10", "2025-06-12")
	for _, number := range []string{"102", "12", "9"} {
		f.booking(domain.StatusConfirmed, f.deluxe, stayDates, domain.AssignedTo(f.rooms[number].ID))
	}
	b := f.booking(domain.StatusConfirmed, f.deluxe, stayDates, domain.Unassigned())

	_, err := f.uc.AutoAssign(context.Background(), &AutoAssignRequest{BookingID: b.ID})
	assert.ErrorIs(t, err, ErrNoRoomAvailable)
	assert.ErrorIs(t, err, domain.ErrConflict)
	assert.NotErrorIs(t, err, domain.ErrCapacity)

	var capErr *domain.CapacityError
	assert.False(t, errors.As(err, &capErr))
	assert.Equal(t, 1, f.metrics.Assigned(modeAuto, outcomeFailed))
}

func TestAutoAssign_AlreadyAssigned(t *testing.T) {
	f := newFixture(t)
	b := f.booking(domain.StatusConfirmed, f.deluxe, dates("2025-06-10", "2025-06-12"), domain.AssignedTo(f.rooms["102"].ID))

	resp, err := f.uc.AutoAssign(context.Background(), &AutoAssignRequest{BookingID: b.ID})
	require.NoError(t, err)
	assert.False(t, resp.Changed)
	assert.Equal(t, "102", resp.RoomNumber)
	assert.Empty(t, f.store.AssignmentsOf(b.ID))
}

func TestAutoAssign_ConcurrentBindingIsRejected(t *testing.T) {
	f := newFixture(t)
	b := f.booking(domain.StatusConfirmed, f.deluxe, dates("2025-06-10", "2025-06-12"), domain.Unassigned())
	f.store.FailOn("bookings.SetRoom", bookingRepo.ErrRoomOverlap)

	_, err := f.uc.AutoAssign(context.Background(), &AutoAssignRequest{BookingID: b.ID})
	assert.ErrorIs(t, err, ErrRoomOccupied)
	assert.ErrorIs(t, err, domain.ErrConflict)
	assert.Empty(t, f.store.AssignmentsOf(b.ID))
}

func TestAutoAssign_RollsBackOnFailure(t *testing.T) {
	f := newFixture(t)
	b := f.booking(domain.StatusConfirmed, f.deluxe, dates("2025-06-10", "2025-06-12"), domain.Unassigned())
	f.store.FailOn("assignments.Create", errors.New("connection reset"))

	_, err := f.uc.AutoAssign(context.Background(), &AutoAssignRequest{BookingID: b.ID})
	assert.ErrorIs(t, err, ErrInternal)
	assert.Equal(t, domain.CodeInternal, domain.Category(err))

	_, assigned := f.stayRoom(t, b.ID)
	assert.False(t, assigned)
}

func TestBulkAutoAssign(t *testing.T) {
	f := newFixture(t)
	stayDates := dates("2025-06-10", "2025-06-12")
	f.booking(domain.StatusConfirmed, f.deluxe, stayDates, domain.AssignedTo(f.rooms["9"].ID))

	first := f.booking(domain.StatusConfirmed, f.deluxe, stayDates, domain.Unassigned())
	second := f.booking(domain.StatusPending, f.deluxe, stayDates, domain.Unassigned())
	third := f.booking(domain.StatusConfirmed, f.deluxe, stayDates, domain.Unassigned())

	resp, err := f.uc.BulkAutoAssign(context.Background(), &BulkAutoAssignRequest{
		BookingIDs: []int64{first.ID, 9999, second.ID, third.ID},
	})
	require.NoError(t, err)
	require.Len(t, resp.Results, 4)
	assert.Equal(t, 2, resp.Assigned)
	assert.Equal(t, 2, resp.Failed)

	assert.Equal(t, first.ID, resp.Results[0].BookingID)
	assert.Equal(t, "12", *resp.Results[0].RoomNumber)
	assert.Nil(t, resp.Results[0].ErrorCode)

	assert.Equal(t, int64(9999), resp.Results[1].BookingID)
	assert.Equal(t, domain.CodeNotFound, *resp.Results[1].ErrorCode)
	assert.NotEmpty(t, *resp.Results[1].Message)

	assert.Equal(t, "102", *resp.Results[2].RoomNumber)

	assert.Nil(t, resp.Results[3].RoomID)
	assert.Equal(t, domain.CodeConflict, *resp.Results[3].ErrorCode)

	assert.Equal(t, 2, f.metrics.Assigned(modeBulk, outcomeAssigned))
	assert.Equal(t, 2, f.metrics.Assigned(modeBulk, outcomeFailed))
}

// cancelAfterPublish cancels the request once the first assignment is published
type cancelAfterPublish struct {
	cancel context.CancelFunc
}

func (c cancelAfterPublish) Publish(context.Context, domain.Event) { c.cancel() }

func TestBulkAutoAssign_ReportsProgressWhenCancelled(t *testing.T) {
	f := newFixture(t)
	stayDates := dates("2025-06-10", "2025-06-12")
	first := f.booking(domain.StatusConfirmed, f.deluxe, stayDates, domain.Unassigned())
	second := f.booking(domain.StatusConfirmed, f.deluxe, stayDates, domain.Unassigned())
	third := f.booking(domain.StatusConfirmed, f.deluxe, stayDates, domain.Unassigned())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	f.uc.publisher = cancelAfterPublish{cancel: cancel}

	resp, err := f.uc.BulkAutoAssign(ctx, &BulkAutoAssignRequest{
		BookingIDs: []int64{first.ID, second.ID, third.ID},
	})
	require.NoError(t, err)
	require.Len(t, resp.Results, 3)
	assert.Equal(t, 1, resp.Assigned)
	assert.Equal(t, 2, resp.Failed)

	require.NotNil(t, resp.Results[0].RoomID)
	roomID, assigned := f.stayRoom(t, first.ID)
	require.True(t, assigned)
	assert.Equal(t, *resp.Results[0].RoomID, roomID)

	for _, r := range resp.Results[1:] {
		assert.Nil(t, r.RoomID)
		require.NotNil(t, r.ErrorCode)
		assert.Equal(t, domain.CodeInternal, *r.ErrorCode)
		assert.Equal(t, context.Canceled.Error(), *r.Message)
	}

	_, assigned = f.stayRoom(t, second.ID)
	assert.False(t, assigned)
}

func TestBulkAutoAssign_Validation(t *testing.T) {
	f := newFixture(t)

	_, err := f.uc.BulkAutoAssign(context.Background(), &BulkAutoAssignRequest{})
	assert.ErrorIs(t, err, ErrInvalidInput)

	ids := make([]int64, domain.MaxBulkAssignBookings+1)
	for i := range ids {
		ids[i] = int64(i + 1)
	}
	_, err = f.uc.BulkAutoAssign(context.Background(), &BulkAutoAssignRequest{BookingIDs: ids})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestUnassign(t *testing.T) {
	f := newFixture(t)
	stayDates := dates("2025-06-10", "2025-06-12")
	b := f.booking(domain.StatusConfirmed, f.deluxe, stayDates, domain.Unassigned())

	_, err := f.uc.Assign(context.Background(), &AssignRequest{BookingID: b.ID, RoomID: f.rooms["12"].ID})
	require.NoError(t, err)

	resp, err := f.uc.Unassign(context.Background(), &UnassignRequest{BookingID: b.ID, Reason: "guest asked for a sea view"})
	require.NoError(t, err)
	assert.True(t, resp.Changed)
	require.NotNil(t, resp.ReleasedRoomID)
	assert.Equal(t, f.rooms["12"].ID, *resp.ReleasedRoomID)

	_, assigned := f.stayRoom(t, b.ID)
	assert.False(t, assigned)

	audit := f.store.AssignmentsOf(b.ID)
	require.Len(t, audit, 1)
	assert.False(t, audit[0].IsOpen())
	assert.Equal(t, "guest asked for a sea view", *audit[0].UnassignReason)

	// second call is a no-op
	resp, err = f.uc.Unassign(context.Background(), &UnassignRequest{BookingID: b.ID})
	require.NoError(t, err)
	assert.False(t, resp.Changed)
	assert.Nil(t, resp.ReleasedRoomID)

	assert.Equal(t, []domain.EventType{domain.EventRoomAssigned, domain.EventRoomUnassigned}, f.events.Types())
}

func TestUnassign_DefaultReason(t *testing.T) {
	f := newFixture(t)
	b := f.booking(domain.StatusConfirmed, f.deluxe, dates("2025-06-10", "2025-06-12"), domain.Unassigned())
	_, err := f.uc.Assign(context.Background(), &AssignRequest{BookingID: b.ID, RoomID: f.rooms["9"].ID})
	require.NoError(t, err)

	_, err = f.uc.Unassign(context.Background(), &UnassignRequest{BookingID: b.ID, Reason: "  "})
	require.NoError(t, err)

	audit := f.store.AssignmentsOf(b.ID)
	require.Len(t, audit, 1)
	assert.Equal(t, DefaultUnassignReason, *audit[0].UnassignReason)
}

func TestUnassign_Errors(t *testing.T) {
	f := newFixture(t)
	inHouse := f.booking(domain.StatusCheckedIn, f.deluxe, dates("2025-06-08", "2025-06-12"), domain.AssignedTo(f.rooms["9"].ID))

	_, err := f.uc.Unassign(context.Background(), &UnassignRequest{BookingID: 9999})
	assert.ErrorIs(t, err, ErrBookingNotFound)

	_, err = f.uc.Unassign(context.Background(), &UnassignRequest{BookingID: inHouse.ID})
	assert.ErrorIs(t, err, ErrInvalidBookingState)

	_, assigned := f.stayRoom(t, inHouse.ID)
	assert.True(t, assigned)
}

func TestAvailableRooms_ByCategory(t *testing.T) {
	f := newFixture(t)
	f.booking(domain.StatusConfirmed, f.deluxe, dates("2025-06-10", "2025-06-12"), domain.AssignedTo(f.rooms["9"].ID))
	f.booking(domain.StatusPending, f.deluxe, dates("2025-06-11", "2025-06-13"), domain.Unassigned())

	resp, err := f.uc.AvailableRooms(context.Background(), &AvailableRoomsRequest{
		CategoryID: ptr.Ptr(f.deluxe.ID),
		CheckIn:    ptr.Ptr(types.MustParseDate("2025-06-11")),
		CheckOut:   ptr.Ptr(types.MustParseDate("2025-06-12")),
	})
	require.NoError(t, err)
	require.Len(t, resp.Categories, 1)

	c := resp.Categories[0]
	assert.Equal(t, f.deluxe.ID, c.Category.ID)
	assert.Equal(t, 4, c.Availability.TotalRooms)
	assert.Equal(t, 2, c.Availability.CommittedRooms)
	assert.Equal(t, 2, c.Availability.FreeRooms)

	numbers := make([]string, len(c.Rooms))
	for i, r := range c.Rooms {
		numbers[i] = r.Number
	}
	assert.Equal(t, []string{"12", "102"}, numbers)
}

func TestAvailableRooms_ByBooking(t *testing.T) {
	f := newFixture(t)
	b := f.booking(domain.StatusConfirmed, f.deluxe, dates("2025-06-10", "2025-06-12"), domain.AssignedTo(f.rooms["9"].ID))

	resp, err := f.uc.AvailableRooms(context.Background(), &AvailableRoomsRequest{BookingID: ptr.Ptr(b.ID)})
	require.NoError(t, err)
	require.Len(t, resp.Categories, 1)
	assert.Equal(t, types.MustParseDate("2025-06-10"), resp.CheckIn)
	assert.Equal(t, types.MustParseDate("2025-06-12"), resp.CheckOut)

	// the booking's own room counts as free for it
	assert.Len(t, resp.Categories[0].Rooms, 3)
}

func TestAvailableRooms_AllCategoriesFilteredByGuests(t *testing.T) {
	f := newFixture(t)

	resp, err := f.uc.AvailableRooms(context.Background(), &AvailableRoomsRequest{
		CheckIn:  ptr.Ptr(types.MustParseDate("2025-06-10")),
		CheckOut: ptr.Ptr(types.MustParseDate("2025-06-11")),
		Guests:   3,
	})
	require.NoError(t, err)
	require.Len(t, resp.Categories, 1)
	assert.Equal(t, "Suite", resp.Categories[0].Category.Name)
	assert.Len(t, resp.Categories[0].Rooms, 1)
}

func TestAvailableRooms_Errors(t *testing.T) {
	f := newFixture(t)
	in := ptr.Ptr(types.MustParseDate("2025-06-10"))
	out := ptr.Ptr(types.MustParseDate("2025-06-11"))

	tests := []struct {
		name string
		req  AvailableRoomsRequest
		want error
	}{
		{"no dates and no booking", AvailableRoomsRequest{CategoryID: ptr.Ptr(f.deluxe.ID)}, ErrInvalidInput},
		{"only check-in", AvailableRoomsRequest{CheckIn: in}, ErrInvalidInput},
		{"reversed dates", AvailableRoomsRequest{CheckIn: out, CheckOut: in}, ErrInvalidDateRange},
		{"unknown category", AvailableRoomsRequest{CategoryID: ptr.Ptr(int64(9999)), CheckIn: in, CheckOut: out}, ErrCategoryNotFound},
		{"unknown booking", AvailableRoomsRequest{BookingID: ptr.Ptr(int64(9999))}, ErrBookingNotFound},
		{"too many guests", AvailableRoomsRequest{CategoryID: ptr.Ptr(f.deluxe.ID), CheckIn: in, CheckOut: out, Guests: 3}, ErrOccupancyExceeded},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := tt.req
			_, err := f.uc.AvailableRooms(context.Background(), &req)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}
