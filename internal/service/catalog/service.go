package catalog

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
	roomRepo "github.com/m04kA/SMC-RoomBookingService/internal/infra/storage/room"
	"github.com/m04kA/SMC-RoomBookingService/internal/service/catalog/models"
)

// Service room catalog reads and housekeeping status updates
type Service struct {
	roomRepo     RoomRepository
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger
}

// NewService creates a catalog service
func NewService(roomRepo RoomRepository, txManager TransactionManager, logger Logger) *Service {
	return &Service{
		roomRepo:     roomRepo,
		txManager:    txManager,
		timeProvider: realTime{},
		logger:       logger,
	}
}

// WithTimeProvider overrides the clock
func (s *Service) WithTimeProvider(tp TimeProvider) *Service {
	s.timeProvider = tp
	return s
}

// ListCategories all categories with their countable inventory
func (s *Service) ListCategories(ctx context.Context) (*models.CategoryListResponse, error) {
	categories, err := s.roomRepo.ListCategories(ctx)
	if err != nil {
		s.logger.Error("ListCategories: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListCategories - repository error: %w", ErrInternal, err)
	}

	resp := &models.CategoryListResponse{Categories: make([]models.CategoryResponse, 0, len(categories))}
	for _, c := range categories {
		total, err := s.roomRepo.CountInventory(ctx, c.ID)
		if err != nil {
			s.logger.Error("ListCategories: failed to count rooms of category id=%d: %v", c.ID, err)
			return nil, fmt.Errorf("%w: ListCategories - count inventory: %w", ErrInternal, err)
		}
		resp.Categories = append(resp.Categories, models.FromDomainCategory(c, total))
	}

	return resp, nil
}

// ListRooms every room of a category regardless of status
func (s *Service) ListRooms(ctx context.Context, categoryID int64) (*models.RoomListResponse, error) {
	category, err := s.roomRepo.GetCategory(ctx, categoryID)
	if err != nil {
		if errors.Is(err, roomRepo.ErrCategoryNotFound) {
			s.logger.Warn("ListRooms: category id=%d not found", categoryID)
			return nil, ErrCategoryNotFound
		}
		s.logger.Error("ListRooms: failed to get category id=%d: %v", categoryID, err)
		return nil, fmt.Errorf("%w: ListRooms - get category: %w", ErrInternal, err)
	}

	rooms, err := s.roomRepo.ListRooms(ctx, categoryID)
	if err != nil {
		s.logger.Error("ListRooms: failed to list rooms of category id=%d: %v", categoryID, err)
		return nil, fmt.Errorf("%w: ListRooms - list rooms: %w", ErrInternal, err)
	}

	total := 0
	for _, r := range rooms {
		if !r.IsRetired() {
			total++
		}
	}

	return &models.RoomListResponse{
		Category: models.FromDomainCategory(category, total),
		Rooms:    models.FromDomainRooms(rooms),
	}, nil
}

// UpdateRoomStatus sets the housekeeping status of a room.
// Leaving cleaning for available records the cleaning time.
func (s *Service) UpdateRoomStatus(ctx context.Context, roomID int64, req *models.UpdateRoomStatusRequest) (*models.RoomResponse, error) {
	s.logger.Info("UpdateRoomStatus: room=%d, status=%s", roomID, req.Status)

	status := domain.RoomStatus(req.Status)
	if !status.IsValid() {
		s.logger.Warn("UpdateRoomStatus: invalid status=%s for room id=%d", req.Status, roomID)
		return nil, fmt.Errorf("%w: unknown room status %q", ErrInvalidInput, req.Status)
	}

	now := s.timeProvider.Now()
	var room *domain.Room

	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		var err error
		room, err = s.roomRepo.LockRoom(txCtx, roomID)
		if err != nil {
			if errors.Is(err, roomRepo.ErrRoomNotFound) {
				s.logger.Warn("UpdateRoomStatus: room id=%d not found", roomID)
				return ErrRoomNotFound
			}
			s.logger.Error("UpdateRoomStatus: failed to lock room id=%d: %v", roomID, err)
			return fmt.Errorf("%w: UpdateRoomStatus - lock room: %w", ErrInternal, err)
		}

		var cleanedAt *time.Time
		if room.Status == domain.RoomCleaning && status == domain.RoomAvailable {
			cleanedAt = &now
			room.LastCleanedAt = &now
		}

		if err := s.roomRepo.UpdateStatus(txCtx, roomID, status, cleanedAt, now); err != nil {
			s.logger.Error("UpdateRoomStatus: failed to update room id=%d: %v", roomID, err)
			return fmt.Errorf("%w: UpdateRoomStatus - update status: %w", ErrInternal, err)
		}

		room.Status = status
		room.UpdatedAt = now
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("UpdateRoomStatus: room %s is now %s", room.Number, room.Status)
	resp := models.FromDomainRoom(room)
	return &resp, nil
}
