package charge

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
	"github.com/m04kA/SMC-RoomBookingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-RoomBookingService/pkg/psqlbuilder"
)

const (
	foodOrderCancelled    = "cancelled"
	guestRequestCompleted = "completed"
)

// Repository read-only access to the charge sources owned by other modules:
// incidental charges, food orders and billable guest requests
type Repository struct {
	db DBExecutor
}

// NewRepository creates a charge repository
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// ListByBooking billable charges of a booking in source order:
// incidentals, then food orders, then guest requests
func (r *Repository) ListByBooking(ctx context.Context, bookingID int64) ([]domain.Charge, error) {
	sources := []struct {
		name    string
		source  domain.ChargeSource
		builder squirrel.SelectBuilder
	}{
		{
			name:   "booking_charges",
			source: domain.SourceIncidental,
			builder: psqlbuilder.Select("id", "description", "quantity", "unit_price", "amount").
				From("booking_charges").
				Where(squirrel.Eq{"booking_id": bookingID}),
		},
		{
			name:   "food_orders",
			source: domain.SourceFood,
			builder: psqlbuilder.Select("id", "description", "1", "total", "total").
				From("food_orders").
				Where(squirrel.Eq{"booking_id": bookingID}).
				Where(squirrel.NotEq{"status": foodOrderCancelled}),
		},
		{
			name:   "guest_requests",
			source: domain.SourceGuestRequest,
			builder: psqlbuilder.Select("id", "description", "1", "charge", "charge").
				From("guest_requests").
				Where(squirrel.Eq{"booking_id": bookingID, "billable": true, "status": guestRequestCompleted}),
		},
	}

	charges := make([]domain.Charge, 0)
	for _, s := range sources {
		items, err := r.list(ctx, s.name, s.source, s.builder.OrderBy("id ASC"))
		if err != nil {
			return nil, err
		}
		charges = append(charges, items...)
	}

	return charges, nil
}

func (r *Repository) list(ctx context.Context, table string, source domain.ChargeSource, builder squirrel.SelectBuilder) ([]domain.Charge, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListByBooking - build %s query: %v", ErrBuildQuery, table, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByBooking - execute %s query: %w", ErrExecQuery, table, err)
	}
	defer rows.Close()

	result := make([]domain.Charge, 0)
	for rows.Next() {
		var id int64
		c := domain.Charge{Source: source}
		if err := rows.Scan(&id, &c.Description, &c.Quantity, &c.UnitPrice, &c.Amount); err != nil {
			return nil, fmt.Errorf("%w: ListByBooking - scan %s row: %w", ErrScanRow, table, err)
		}
		c.SourceID = &id
		result = append(result, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListByBooking - %s rows error: %w", ErrScanRow, table, err)
	}

	return result, nil
}
