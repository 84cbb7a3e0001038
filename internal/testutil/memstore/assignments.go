package memstore

import (
	"context"
	"sort"
	"time"

	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
)

// AssignmentRepository in-memory assignment audit repository
type AssignmentRepository struct {
	store *Store
}

// Assignments assignment repository over the store
func (s *Store) Assignments() *AssignmentRepository {
	return &AssignmentRepository{store: s}
}

func (r *AssignmentRepository) Create(_ context.Context, a *domain.RoomAssignment) (*domain.RoomAssignment, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.check("assignments.Create"); err != nil {
		return nil, err
	}

	a.ID = s.id()
	s.data.assignments[a.ID] = *a
	return a, nil
}

func (r *AssignmentRepository) CloseOpen(_ context.Context, bookingID int64, reason string, at time.Time) (bool, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.check("assignments.CloseOpen"); err != nil {
		return false, err
	}

	closed := false
	for id, a := range s.data.assignments {
		if a.BookingID != bookingID || !a.IsOpen() {
			continue
		}
		a.UnassignedAt = &at
		a.UnassignReason = &reason
		s.data.assignments[id] = a
		closed = true
	}
	return closed, nil
}

func (r *AssignmentRepository) ListByBooking(_ context.Context, bookingID int64) ([]*domain.RoomAssignment, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.check("assignments.ListByBooking"); err != nil {
		return nil, err
	}

	result := make([]*domain.RoomAssignment, 0)
	for _, a := range s.data.assignments {
		if a.BookingID == bookingID {
			a := a
			result = append(result, &a)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}
