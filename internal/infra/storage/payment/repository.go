package payment

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

var transactionColumns = []string{
	"id",
	"booking_id",
	"method",
	"amount",
	"status",
	"continuation_token",
	"created_at",
	"completed_at",
	"refunded_at",
}

// Repository payment transactions opened at booking time
type Repository struct {
	db DBExecutor
}

// NewRepository creates a payment repository
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create inserts a payment transaction and fills its id
func (r *Repository) Create(ctx context.Context, tx *domain.PaymentTransaction) (*domain.PaymentTransaction, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("payment_transactions").
		Columns("booking_id", "method", "amount", "status", "continuation_token", "created_at").
		Values(tx.BookingID, tx.Method, tx.Amount, tx.Status, tx.ContinuationToken, tx.CreatedAt).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	if err := executor.QueryRowContext(ctx, query, args...).Scan(&tx.ID); err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	return tx, nil
}

// LockByID returns a transaction and locks its row
func (r *Repository) LockByID(ctx context.Context, id int64) (*domain.PaymentTransaction, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Select(transactionColumns...).
		From("payment_transactions").
		Where(squirrel.Eq{"id": id})
	if dbmetrics.IsInTransaction(ctx) {
		builder = builder.Suffix("FOR UPDATE")
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: LockByID - build select query: %v", ErrBuildQuery, err)
	}

	var tx domain.PaymentTransaction
	err = executor.QueryRowContext(ctx, query, args...).Scan(transactionDest(&tx)...)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrTransactionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: LockByID - scan transaction: %w", ErrScanRow, err)
	}

	return &tx, nil
}

// ListByBooking transactions of a booking, oldest first
func (r *Repository) ListByBooking(ctx context.Context, bookingID int64) ([]*domain.PaymentTransaction, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(transactionColumns...).
		From("payment_transactions").
		Where(squirrel.Eq{"booking_id": bookingID}).
		OrderBy("id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListByBooking - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByBooking - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	result := make([]*domain.PaymentTransaction, 0)
	for rows.Next() {
		var tx domain.PaymentTransaction
		if err := rows.Scan(transactionDest(&tx)...); err != nil {
			return nil, fmt.Errorf("%w: ListByBooking - scan row: %w", ErrScanRow, err)
		}
		result = append(result, &tx)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListByBooking - rows error: %w", ErrScanRow, err)
	}

	return result, nil
}

// MarkCompleted captures a transaction
func (r *Repository) MarkCompleted(ctx context.Context, id int64, at time.Time) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("payment_transactions").
		Set("status", domain.TransactionCompleted).
		Set("completed_at", at).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: MarkCompleted - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: MarkCompleted - execute update: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: MarkCompleted - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrTransactionNotFound
	}

	return nil
}

// RefundCompleted marks every completed transaction of a booking as refunded
// and returns how many were affected
func (r *Repository) RefundCompleted(ctx context.Context, bookingID int64, at time.Time) (int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("payment_transactions").
		Set("status", domain.TransactionRefunded).
		Set("refunded_at", at).
		Where(squirrel.Eq{"booking_id": bookingID, "status": domain.TransactionCompleted}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: RefundCompleted - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%w: RefundCompleted - execute update: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: RefundCompleted - get rows affected: %v", ErrExecQuery, err)
	}

	return int(rowsAffected), nil
}

func transactionDest(tx *domain.PaymentTransaction) []interface{} {
	return []interface{}{
		&tx.ID,
		&tx.BookingID,
		&tx.Method,
		&tx.Amount,
		&tx.Status,
		&tx.ContinuationToken,
		&tx.CreatedAt,
		&tx.CompletedAt,
		&tx.RefundedAt,
	}
}
