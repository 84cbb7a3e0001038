package memstore

import (
	"context"
	"sort"
	"strings"

	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-RoomBookingService/internal/infra/storage/booking"
)

// BookingRepository in-memory booking repository
type BookingRepository struct {
	store *Store
}

// Bookings booking repository over the store
func (s *Store) Bookings() *BookingRepository {
	return &BookingRepository{store: s}
}

func (r *BookingRepository) Create(_ context.Context, booking *domain.Booking) (*domain.Booking, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.check("bookings.Create"); err != nil {
		return nil, err
	}

	for _, b := range s.data.bookings {
		if b.Reference == booking.Reference {
			return nil, bookingRepo.ErrDuplicateReference
		}
	}

	booking.ID = s.id()
	s.data.bookings[booking.ID] = *booking
	return booking, nil
}

func (r *BookingRepository) CreateStay(_ context.Context, stay *domain.StayDetail) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.check("bookings.CreateStay"); err != nil {
		return err
	}

	s.data.stays[stay.BookingID] = *stay
	return nil
}

func (r *BookingRepository) GetByID(_ context.Context, id int64) (*domain.Booking, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.check("bookings.GetByID"); err != nil {
		return nil, err
	}

	b, ok := s.data.bookings[id]
	if !ok {
		return nil, bookingRepo.ErrBookingNotFound
	}
	return &b, nil
}

func (r *BookingRepository) LockByID(ctx context.Context, id int64) (*domain.Booking, error) {
	return r.GetByID(ctx, id)
}

func (r *BookingRepository) Update(_ context.Context, booking *domain.Booking) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.check("bookings.Update"); err != nil {
		return err
	}

	if _, ok := s.data.bookings[booking.ID]; !ok {
		return bookingRepo.ErrBookingNotFound
	}
	s.data.bookings[booking.ID] = *booking
	return nil
}

func (r *BookingRepository) GetStay(_ context.Context, bookingID int64) (*domain.StayDetail, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.check("bookings.GetStay"); err != nil {
		return nil, err
	}

	st, ok := s.data.stays[bookingID]
	if !ok {
		return nil, bookingRepo.ErrStayNotFound
	}
	return &st, nil
}

// SetRoom enforces the same no-overlap rule as the database exclusion constraint
func (r *BookingRepository) SetRoom(_ context.Context, bookingID int64, binding domain.RoomBinding) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.check("bookings.SetRoom"); err != nil {
		return err
	}

	st, ok := s.data.stays[bookingID]
	if !ok {
		return bookingRepo.ErrStayNotFound
	}

	if roomID, assigned := binding.RoomID(); assigned && isActive(s.data.bookings[bookingID].Status) {
		for otherID, other := range s.data.stays {
			if otherID == bookingID || !isActive(s.data.bookings[otherID].Status) {
				continue
			}
			if id, ok := other.Room.RoomID(); ok && id == roomID && other.Dates.Overlaps(st.Dates) {
				return bookingRepo.ErrRoomOverlap
			}
		}
	}

	st.Room = binding
	s.data.stays[bookingID] = st
	return nil
}

func (r *BookingRepository) CountCommitted(_ context.Context, categoryID int64, dates domain.DateRange) (int, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.check("bookings.CountCommitted"); err != nil {
		return 0, err
	}

	count := 0
	for id, st := range s.data.stays {
		if st.CategoryID == categoryID && isActive(s.data.bookings[id].Status) && st.Dates.Overlaps(dates) {
			count++
		}
	}
	return count, nil
}

func (r *BookingRepository) ListActiveStaysForRooms(_ context.Context, roomIDs []int64, dates domain.DateRange, excludeBookingID int64) ([]domain.ActiveStay, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.check("bookings.ListActiveStaysForRooms"); err != nil {
		return nil, err
	}

	wanted := make(map[int64]bool, len(roomIDs))
	for _, id := range roomIDs {
		wanted[id] = true
	}

	result := make([]domain.ActiveStay, 0)
	for id, st := range s.data.stays {
		roomID, assigned := st.Room.RoomID()
		if !assigned || !wanted[roomID] || id == excludeBookingID {
			continue
		}
		if isActive(s.data.bookings[id].Status) && st.Dates.Overlaps(dates) {
			result = append(result, domain.ActiveStay{BookingID: id, Room: st.Room, Dates: st.Dates})
		}
	}
	return result, nil
}

func (r *BookingRepository) GetDetails(_ context.Context, id int64) (*domain.BookingDetails, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.check("bookings.GetDetails"); err != nil {
		return nil, err
	}

	if _, ok := s.data.bookings[id]; !ok {
		return nil, bookingRepo.ErrBookingNotFound
	}
	return s.details(id), nil
}

func (r *BookingRepository) List(_ context.Context, filter domain.BookingsFilter) ([]*domain.BookingDetails, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.check("bookings.List"); err != nil {
		return nil, err
	}

	search := strings.ToLower(strings.TrimSpace(filter.Search))
	result := make([]*domain.BookingDetails, 0)
	for id := range s.data.bookings {
		d := s.details(id)
		if filter.Status != nil && d.Booking.Status != *filter.Status {
			continue
		}
		if filter.CategoryID != nil && d.Stay.CategoryID != *filter.CategoryID {
			continue
		}
		if filter.From != nil && !d.Stay.Dates.CheckOut.After(*filter.From) {
			continue
		}
		if filter.To != nil && !d.Stay.Dates.CheckIn.Before(*filter.To) {
			continue
		}
		if search != "" && !matches(d, search) {
			continue
		}
		result = append(result, d)
	}

	sort.Slice(result, func(i, j int) bool {
		if !result[i].Booking.CreatedAt.Equal(result[j].Booking.CreatedAt) {
			return result[i].Booking.CreatedAt.After(result[j].Booking.CreatedAt)
		}
		return result[i].Booking.ID > result[j].Booking.ID
	})

	if filter.Offset >= len(result) {
		return []*domain.BookingDetails{}, nil
	}
	result = result[filter.Offset:]
	if filter.Limit > 0 && filter.Limit < len(result) {
		result = result[:filter.Limit]
	}
	return result, nil
}

// details must be called with mu held
func (s *Store) details(id int64) *domain.BookingDetails {
	d := &domain.BookingDetails{
		Booking: s.data.bookings[id],
		Stay:    s.data.stays[id],
	}
	for _, link := range s.data.bookingGuests {
		if link.BookingID == id && link.IsPrimary {
			g := s.data.guests[link.GuestID]
			d.Guest = &g
			break
		}
	}
	return d
}

func matches(d *domain.BookingDetails, search string) bool {
	if strings.Contains(strings.ToLower(d.Booking.Reference), search) {
		return true
	}
	if d.Guest == nil {
		return false
	}
	return strings.Contains(d.Guest.Email, search) ||
		strings.Contains(strings.ToLower(d.Guest.FirstName), search) ||
		strings.Contains(strings.ToLower(d.Guest.LastName), search)
}
