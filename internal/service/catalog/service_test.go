package catalog

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
	"github.com/m04kA/SMC-RoomBookingService/internal/service/catalog/models"
	"github.com/m04kA/SMC-RoomBookingService/internal/testutil/memstore"
	"github.com/m04kA/SMC-RoomBookingService/pkg/logger"
)

type fixedTime struct{ t time.Time }

func (f fixedTime) Now() time.Time { return f.t }

var now = time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC)

func setup(t *testing.T) (*memstore.Store, *Service, domain.RoomCategory) {
	t.Helper()
	store := memstore.New()
	deluxe := store.AddCategory(domain.RoomCategory{Name: "Deluxe", BaseRate: 10000, MaxOccupancy: 2})
	store.AddCategory(domain.RoomCategory{Name: "Suite", BaseRate: 25000, MaxOccupancy: 4})
	store.AddRoom(domain.Room{CategoryID: deluxe.ID, Number: "102"})
	store.AddRoom(domain.Room{CategoryID: deluxe.ID, Number: "12", Status: domain.RoomCleaning})
	store.AddRoom(domain.Room{CategoryID: deluxe.ID, Number: "9", Status: domain.RoomOutOfOrder})

	svc := NewService(store.Rooms(), store.TxManager(), logger.NewNop()).WithTimeProvider(fixedTime{now})
	return store, svc, deluxe
}

func TestListCategories_CountsInventoryWithoutRetiredRooms(t *testing.T) {
	_, svc, deluxe := setup(t)

	resp, err := svc.ListCategories(context.Background())
	require.NoError(t, err)
	require.Len(t, resp.Categories, 2)

	assert.Equal(t, deluxe.ID, resp.Categories[0].ID)
	assert.Equal(t, int64(10000), resp.Categories[0].BaseRate)
	assert.Equal(t, 2, resp.Categories[0].TotalRooms)
	assert.Equal(t, "Suite", resp.Categories[1].Name)
	assert.Zero(t, resp.Categories[1].TotalRooms)
}

func TestListRooms(t *testing.T) {
	_, svc, deluxe := setup(t)

	resp, err := svc.ListRooms(context.Background(), deluxe.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, resp.Category.TotalRooms)

	numbers := make([]string, 0, len(resp.Rooms))
	for _, r := range resp.Rooms {
		numbers = append(numbers, r.Number)
	}
	assert.Equal(t, []string{"9", "12", "102"}, numbers)

	_, err = svc.ListRooms(context.Background(), 9999)
	assert.ErrorIs(t, err, ErrCategoryNotFound)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestUpdateRoomStatus_CleaningToAvailableRecordsCleaning(t *testing.T) {
	store, svc, deluxe := setup(t)
	rooms, err := store.Rooms().ListRooms(context.Background(), deluxe.ID, domain.RoomCleaning)
	require.NoError(t, err)
	require.Len(t, rooms, 1)

	resp, err := svc.UpdateRoomStatus(context.Background(), rooms[0].ID, &models.UpdateRoomStatusRequest{Status: "available"})
	require.NoError(t, err)
	assert.Equal(t, "available", resp.Status)
	require.NotNil(t, resp.LastCleanedAt)
	assert.Equal(t, now, *resp.LastCleanedAt)

	stored, _ := store.Room(rooms[0].ID)
	assert.Equal(t, domain.RoomAvailable, stored.Status)
	require.NotNil(t, stored.LastCleanedAt)
	assert.Equal(t, now, stored.UpdatedAt)
}

func TestUpdateRoomStatus_OtherTransitionsKeepCleaningTime(t *testing.T) {
	store, svc, deluxe := setup(t)
	rooms, err := store.Rooms().ListRooms(context.Background(), deluxe.ID, domain.RoomAvailable)
	require.NoError(t, err)
	require.Len(t, rooms, 1)

	resp, err := svc.UpdateRoomStatus(context.Background(), rooms[0].ID, &models.UpdateRoomStatusRequest{Status: "maintenance"})
	require.NoError(t, err)
	assert.Equal(t, "maintenance", resp.Status)
	assert.Nil(t, resp.LastCleanedAt)
}

func TestUpdateRoomStatus_Errors(t *testing.T) {
	store, svc, deluxe := setup(t)
	rooms, err := store.Rooms().ListRooms(context.Background(), deluxe.ID)
	require.NoError(t, err)

	_, err = svc.UpdateRoomStatus(context.Background(), rooms[0].ID, &models.UpdateRoomStatusRequest{Status: "flooded"})
	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = svc.UpdateRoomStatus(context.Background(), 9999, &models.UpdateRoomStatusRequest{Status: "available"})
	assert.ErrorIs(t, err, ErrRoomNotFound)

	store.FailOn("rooms.UpdateStatus", errors.New("timeout"))
	_, err = svc.UpdateRoomStatus(context.Background(), rooms[0].ID, &models.UpdateRoomStatusRequest{Status: "available"})
	assert.ErrorIs(t, err, ErrInternal)
}
