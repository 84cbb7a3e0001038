package memstore

import (
	"context"
	"sort"
	"time"

	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
	roomRepo "github.com/m04kA/SMC-RoomBookingService/internal/infra/storage/room"
	"github.com/m04kA/SMC-RoomBookingService/internal/service/roomscoring"
)

// RoomRepository in-memory room and category repository
type RoomRepository struct {
	store *Store
}

// Rooms room repository over the store
func (s *Store) Rooms() *RoomRepository {
	return &RoomRepository{store: s}
}

func (r *RoomRepository) GetCategory(_ context.Context, id int64) (*domain.RoomCategory, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.check("rooms.GetCategory"); err != nil {
		return nil, err
	}

	c, ok := s.data.categories[id]
	if !ok {
		return nil, roomRepo.ErrCategoryNotFound
	}
	return &c, nil
}

func (r *RoomRepository) LockCategory(ctx context.Context, id int64) (*domain.RoomCategory, error) {
	return r.GetCategory(ctx, id)
}

func (r *RoomRepository) ListCategories(_ context.Context) ([]*domain.RoomCategory, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.check("rooms.ListCategories"); err != nil {
		return nil, err
	}

	result := make([]*domain.RoomCategory, 0, len(s.data.categories))
	for _, c := range s.data.categories {
		c := c
		result = append(result, &c)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (r *RoomRepository) CountInventory(_ context.Context, categoryID int64) (int, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.check("rooms.CountInventory"); err != nil {
		return 0, err
	}

	count := 0
	for _, room := range s.data.rooms {
		if room.CategoryID == categoryID && !room.IsRetired() {
			count++
		}
	}
	return count, nil
}

func (r *RoomRepository) GetRoom(_ context.Context, id int64) (*domain.Room, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.check("rooms.GetRoom"); err != nil {
		return nil, err
	}

	room, ok := s.data.rooms[id]
	if !ok {
		return nil, roomRepo.ErrRoomNotFound
	}
	return &room, nil
}

func (r *RoomRepository) LockRoom(ctx context.Context, id int64) (*domain.Room, error) {
	return r.GetRoom(ctx, id)
}

// ListRooms ordered by room number, like the database
func (r *RoomRepository) ListRooms(_ context.Context, categoryID int64, statuses ...domain.RoomStatus) ([]*domain.Room, error) {
	rooms, err := r.list("rooms.ListRooms", categoryID, statuses)
	if err != nil {
		return nil, err
	}
	sort.Slice(rooms, func(i, j int) bool { return roomscoring.LessRoomNumber(rooms[i].Number, rooms[j].Number) })
	return rooms, nil
}

// LockRooms ordered by id, like the database
func (r *RoomRepository) LockRooms(_ context.Context, categoryID int64, statuses ...domain.RoomStatus) ([]*domain.Room, error) {
	rooms, err := r.list("rooms.LockRooms", categoryID, statuses)
	if err != nil {
		return nil, err
	}
	sort.Slice(rooms, func(i, j int) bool { return rooms[i].ID < rooms[j].ID })
	return rooms, nil
}

func (r *RoomRepository) list(method string, categoryID int64, statuses []domain.RoomStatus) ([]*domain.Room, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.check(method); err != nil {
		return nil, err
	}

	result := make([]*domain.Room, 0)
	for _, room := range s.data.rooms {
		if room.CategoryID != categoryID || !hasStatus(statuses, room.Status) {
			continue
		}
		room := room
		result = append(result, &room)
	}
	return result, nil
}

func (r *RoomRepository) UpdateStatus(_ context.Context, id int64, status domain.RoomStatus, cleanedAt *time.Time, updatedAt time.Time) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.check("rooms.UpdateStatus"); err != nil {
		return err
	}

	room, ok := s.data.rooms[id]
	if !ok {
		return roomRepo.ErrRoomNotFound
	}
	room.Status = status
	if cleanedAt != nil {
		room.LastCleanedAt = copyTime(cleanedAt)
	}
	room.UpdatedAt = updatedAt
	s.data.rooms[id] = room
	return nil
}

func hasStatus(statuses []domain.RoomStatus, status domain.RoomStatus) bool {
	if len(statuses) == 0 {
		return true
	}
	for _, s := range statuses {
		if s == status {
			return true
		}
	}
	return false
}
