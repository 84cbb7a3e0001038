package guest

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
	"github.com/m04kA/SMC-RoomBookingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-RoomBookingService/pkg/psqlbuilder"
)

// Repository guest profiles and their links to bookings
type Repository struct {
	db DBExecutor
}

// NewRepository creates a guest repository
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Upsert creates the guest identified by e-mail or updates the existing one,
// incrementing its booking counter and adding spent to its lifetime total.
// It is a single statement, so two concurrent bookings for a new e-mail
// cannot create duplicate profiles.
func (r *Repository) Upsert(ctx context.Context, guest *domain.GuestProfile, spent domain.Money, at time.Time) (*domain.GuestProfile, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("guest_profiles").
		Columns(
			"email",
			"first_name",
			"last_name",
			"phone",
			"total_bookings",
			"total_spent",
			"created_at",
			"updated_at",
		).
		Values(
			domain.NormalizeEmail(guest.Email),
			guest.FirstName,
			guest.LastName,
			guest.Phone,
			1,
			spent,
			at,
			at,
		).
		Suffix(`ON CONFLICT (email) DO UPDATE SET
			first_name = EXCLUDED.first_name,
			last_name = EXCLUDED.last_name,
			phone = COALESCE(EXCLUDED.phone, guest_profiles.phone),
			total_bookings = guest_profiles.total_bookings + 1,
			total_spent = guest_profiles.total_spent + EXCLUDED.total_spent,
			updated_at = EXCLUDED.updated_at
		RETURNING id, email, first_name, last_name, phone, total_bookings, total_spent, created_at, updated_at`).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - build insert query: %v", ErrBuildQuery, err)
	}

	var result domain.GuestProfile
	err = executor.QueryRowContext(ctx, query, args...).Scan(guestDest(&result)...)
	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - execute upsert: %w", ErrExecQuery, err)
	}

	return &result, nil
}

// AddToBooking links a guest to a booking
func (r *Repository) AddToBooking(ctx context.Context, link domain.BookingGuest) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("booking_guests").
		Columns("booking_id", "guest_id", "is_primary").
		Values(link.BookingID, link.GuestID, link.IsPrimary).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: AddToBooking - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: AddToBooking - execute insert: %w", ErrExecQuery, err)
	}

	return nil
}

// GetPrimaryByBooking primary guest of a booking
func (r *Repository) GetPrimaryByBooking(ctx context.Context, bookingID int64) (*domain.GuestProfile, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"g.id",
		"g.email",
		"g.first_name",
		"g.last_name",
		"g.phone",
		"g.total_bookings",
		"g.total_spent",
		"g.created_at",
		"g.updated_at",
	).
		From("guest_profiles g").
		Join("booking_guests bg ON bg.guest_id = g.id").
		Where(squirrel.Eq{"bg.booking_id": bookingID, "bg.is_primary": true}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetPrimaryByBooking - build select query: %v", ErrBuildQuery, err)
	}

	var result domain.GuestProfile
	err = executor.QueryRowContext(ctx, query, args...).Scan(guestDest(&result)...)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrGuestNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetPrimaryByBooking - scan guest: %w", ErrScanRow, err)
	}

	return &result, nil
}

func guestDest(g *domain.GuestProfile) []interface{} {
	return []interface{}{
		&g.ID,
		&g.Email,
		&g.FirstName,
		&g.LastName,
		&g.Phone,
		&g.TotalBookings,
		&g.TotalSpent,
		&g.CreatedAt,
		&g.UpdatedAt,
	}
}
