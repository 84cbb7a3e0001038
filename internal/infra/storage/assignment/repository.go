package assignment

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
	"github.com/m04kA/SMC-RoomBookingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-RoomBookingService/pkg/psqlbuilder"
)

// Repository room assignment audit trail
type Repository struct {
	db DBExecutor
}

// NewRepository creates an assignment repository
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create opens an audit entry
func (r *Repository) Create(ctx context.Context, a *domain.RoomAssignment) (*domain.RoomAssignment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("room_assignments").
		Columns("booking_id", "room_id", "mode", "assigned_by", "note", "assigned_at").
		Values(a.BookingID, a.RoomID, a.Mode, a.AssignedBy, a.Note, a.AssignedAt).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	if err := executor.QueryRowContext(ctx, query, args...).Scan(&a.ID); err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	return a, nil
}

// CloseOpen closes the open audit entries of a booking and reports whether any was open
func (r *Repository) CloseOpen(ctx context.Context, bookingID int64, reason string, at time.Time) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("room_assignments").
		Set("unassigned_at", at).
		Set("unassign_reason", reason).
		Where(squirrel.Eq{"booking_id": bookingID, "unassigned_at": nil}).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("%w: CloseOpen - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("%w: CloseOpen - execute update: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("%w: CloseOpen - get rows affected: %v", ErrExecQuery, err)
	}

	return rowsAffected > 0, nil
}

// ListByBooking audit trail of a booking, oldest first
func (r *Repository) ListByBooking(ctx context.Context, bookingID int64) ([]*domain.RoomAssignment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"booking_id",
		"room_id",
		"mode",
		"assigned_by",
		"note",
		"assigned_at",
		"unassigned_at",
		"unassign_reason",
	).
		From("room_assignments").
		Where(squirrel.Eq{"booking_id": bookingID}).
		OrderBy("assigned_at ASC", "id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListByBooking - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByBooking - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	result := make([]*domain.RoomAssignment, 0)
	for rows.Next() {
		var a domain.RoomAssignment
		err := rows.Scan(
			&a.ID,
			&a.BookingID,
			&a.RoomID,
			&a.Mode,
			&a.AssignedBy,
			&a.Note,
			&a.AssignedAt,
			&a.UnassignedAt,
			&a.UnassignReason,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: ListByBooking - scan row: %w", ErrScanRow, err)
		}
		result = append(result, &a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListByBooking - rows error: %w", ErrScanRow, err)
	}

	return result, nil
}
