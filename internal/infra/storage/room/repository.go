package room

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

var categoryColumns = []string{
	"id",
	"property_id",
	"name",
	"base_rate",
	"max_occupancy",
	"created_at",
	"updated_at",
}

var roomColumns = []string{
	"id",
	"property_id",
	"category_id",
	"number",
	"floor",
	"near_elevator",
	"status",
	"last_cleaned_at",
	"created_at",
	"updated_at",
}

// Repository room categories and physical rooms
type Repository struct {
	db DBExecutor
}

// NewRepository creates a room repository
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetCategory returns a room category by id
func (r *Repository) GetCategory(ctx context.Context, id int64) (*domain.RoomCategory, error) {
	return r.getCategory(ctx, id, false)
}

// LockCategory returns a room category and locks its row so concurrent
// bookings of the same category serialize
func (r *Repository) LockCategory(ctx context.Context, id int64) (*domain.RoomCategory, error) {
	return r.getCategory(ctx, id, dbmetrics.IsInTransaction(ctx))
}

func (r *Repository) getCategory(ctx context.Context, id int64, forUpdate bool) (*domain.RoomCategory, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Select(categoryColumns...).
		From("room_categories").
		Where(squirrel.Eq{"id": id})
	if forUpdate {
		builder = builder.Suffix("FOR UPDATE")
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetCategory - build select query: %v", ErrBuildQuery, err)
	}

	var category domain.RoomCategory
	err = executor.QueryRowContext(ctx, query, args...).Scan(categoryDest(&category)...)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrCategoryNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetCategory - scan category: %w", ErrScanRow, err)
	}

	return &category, nil
}

// ListCategories all room categories ordered by name
func (r *Repository) ListCategories(ctx context.Context) ([]*domain.RoomCategory, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(categoryColumns...).
		From("room_categories").
		OrderBy("name ASC", "id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListCategories - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListCategories - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	categories := make([]*domain.RoomCategory, 0)
	for rows.Next() {
		var category domain.RoomCategory
		if err := rows.Scan(categoryDest(&category)...); err != nil {
			return nil, fmt.Errorf("%w: ListCategories - scan row: %w", ErrScanRow, err)
		}
		categories = append(categories, &category)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListCategories - rows error: %w", ErrScanRow, err)
	}

	return categories, nil
}

// CountInventory rooms of the category that count towards its total (everything but out_of_order)
func (r *Repository) CountInventory(ctx context.Context, categoryID int64) (int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("COUNT(*)").
		From("rooms").
		Where(squirrel.Eq{"category_id": categoryID}).
		Where(squirrel.NotEq{"status": domain.RoomOutOfOrder}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: CountInventory - build select query: %v", ErrBuildQuery, err)
	}

	var count int
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("%w: CountInventory - scan count: %w", ErrScanRow, err)
	}

	return count, nil
}

// GetRoom returns a room by id
func (r *Repository) GetRoom(ctx context.Context, id int64) (*domain.Room, error) {
	return r.getRoom(ctx, id, false)
}

// LockRoom returns a room and locks its row until the transaction ends
func (r *Repository) LockRoom(ctx context.Context, id int64) (*domain.Room, error) {
	return r.getRoom(ctx, id, dbmetrics.IsInTransaction(ctx))
}

func (r *Repository) getRoom(ctx context.Context, id int64, forUpdate bool) (*domain.Room, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Select(roomColumns...).
		From("rooms").
		Where(squirrel.Eq{"id": id})
	if forUpdate {
		builder = builder.Suffix("FOR UPDATE")
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetRoom - build select query: %v", ErrBuildQuery, err)
	}

	var room domain.Room
	err = executor.QueryRowContext(ctx, query, args...).Scan(roomDest(&room)...)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrRoomNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetRoom - scan room: %w", ErrScanRow, err)
	}

	return &room, nil
}

// ListRooms rooms of a category ordered by number.
// When statuses is not empty only rooms in those statuses are returned.
func (r *Repository) ListRooms(ctx context.Context, categoryID int64, statuses ...domain.RoomStatus) ([]*domain.Room, error) {
	return r.listRooms(ctx, categoryID, statuses, false)
}

// LockRooms same as ListRooms but locks the returned rows in id order
func (r *Repository) LockRooms(ctx context.Context, categoryID int64, statuses ...domain.RoomStatus) ([]*domain.Room, error) {
	return r.listRooms(ctx, categoryID, statuses, dbmetrics.IsInTransaction(ctx))
}

func (r *Repository) listRooms(ctx context.Context, categoryID int64, statuses []domain.RoomStatus, forUpdate bool) ([]*domain.Room, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Select(roomColumns...).
		From("rooms").
		Where(squirrel.Eq{"category_id": categoryID})

	if len(statuses) > 0 {
		values := make([]string, len(statuses))
		for i, s := range statuses {
			values[i] = string(s)
		}
		builder = builder.Where(squirrel.Eq{"status": values})
	}

	if forUpdate {
		// consistent lock order prevents deadlocks between concurrent auto-assignments
		builder = builder.OrderBy("id ASC").Suffix("FOR UPDATE")
	} else {
		builder = builder.OrderBy("LENGTH(number) ASC", "number ASC")
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListRooms - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListRooms - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	rooms := make([]*domain.Room, 0)
	for rows.Next() {
		var room domain.Room
		if err := rows.Scan(roomDest(&room)...); err != nil {
			return nil, fmt.Errorf("%w: ListRooms - scan row: %w", ErrScanRow, err)
		}
		rooms = append(rooms, &room)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListRooms - rows error: %w", ErrScanRow, err)
	}

	return rooms, nil
}

// UpdateStatus sets the housekeeping status of a room. A non-nil cleanedAt
// also records the cleaning time.
func (r *Repository) UpdateStatus(ctx context.Context, id int64, status domain.RoomStatus, cleanedAt *time.Time, updatedAt time.Time) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Update("rooms").
		Set("status", status).
		Set("updated_at", updatedAt).
		Where(squirrel.Eq{"id": id})
	if cleanedAt != nil {
		builder = builder.Set("last_cleaned_at", *cleanedAt)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - execute update: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrRoomNotFound
	}

	return nil
}

func categoryDest(c *domain.RoomCategory) []interface{} {
	return []interface{}{
		&c.ID,
		&c.PropertyID,
		&c.Name,
		&c.BaseRate,
		&c.MaxOccupancy,
		&c.CreatedAt,
		&c.UpdatedAt,
	}
}

func roomDest(room *domain.Room) []interface{} {
	return []interface{}{
		&room.ID,
		&room.PropertyID,
		&room.CategoryID,
		&room.Number,
		&room.Floor,
		&room.NearElevator,
		&room.Status,
		&room.LastCleanedAt,
		&room.CreatedAt,
		&room.UpdatedAt,
	}
}
