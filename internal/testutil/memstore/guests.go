package memstore

import (
	"context"
	"time"

	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
	guestRepo "github.com/m04kA/SMC-RoomBookingService/internal/infra/storage/guest"
)

// GuestRepository in-memory guest repository
type GuestRepository struct {
	store *Store
}

// Guests guest repository over the store
func (s *Store) Guests() *GuestRepository {
	return &GuestRepository{store: s}
}

func (r *GuestRepository) Upsert(_ context.Context, guest *domain.GuestProfile, spent domain.Money, at time.Time) (*domain.GuestProfile, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.check("guests.Upsert"); err != nil {
		return nil, err
	}

	email := domain.NormalizeEmail(guest.Email)
	for id, g := range s.data.guests {
		if g.Email != email {
			continue
		}
		g.FirstName = guest.FirstName
		g.LastName = guest.LastName
		if guest.Phone != nil {
			g.Phone = guest.Phone
		}
		g.TotalBookings++
		g.TotalSpent += spent
		g.UpdatedAt = at
		s.data.guests[id] = g
		return &g, nil
	}

	g := domain.GuestProfile{
		ID:            s.id(),
		Email:         email,
		FirstName:     guest.FirstName,
		LastName:      guest.LastName,
		Phone:         guest.Phone,
		TotalBookings: 1,
		TotalSpent:    spent,
		CreatedAt:     at,
		UpdatedAt:     at,
	}
	s.data.guests[g.ID] = g
	return &g, nil
}

func (r *GuestRepository) AddToBooking(_ context.Context, link domain.BookingGuest) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.check("guests.AddToBooking"); err != nil {
		return err
	}

	s.data.bookingGuests = append(s.data.bookingGuests, link)
	return nil
}

func (r *GuestRepository) GetPrimaryByBooking(_ context.Context, bookingID int64) (*domain.GuestProfile, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.check("guests.GetPrimaryByBooking"); err != nil {
		return nil, err
	}

	for _, link := range s.data.bookingGuests {
		if link.BookingID == bookingID && link.IsPrimary {
			g := s.data.guests[link.GuestID]
			return &g, nil
		}
	}
	return nil, guestRepo.ErrGuestNotFound
}
