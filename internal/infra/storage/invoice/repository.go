package invoice

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
	"github.com/m04kA/SMC-RoomBookingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-RoomBookingService/pkg/pgerr"
	"github.com/m04kA/SMC-RoomBookingService/pkg/psqlbuilder"
)

const constraintBookingID = "invoices_booking_id_key"

var invoiceColumns = []string{
	"id",
	"booking_id",
	"number",
	"status",
	"subtotal",
	"tax_rate",
	"tax",
	"service_rate",
	"service_charge",
	"discount",
	"total",
	"amount_paid",
	"balance_due",
	"notes",
	"issued_at",
	"updated_at",
}

// Repository invoices, their line items, payments and numbering sequence
type Repository struct {
	db DBExecutor
}

// NewRepository creates an invoice repository
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// NextNumber atomically increments the sequence of period and returns the new value.
// The first call for a period returns 1.
func (r *Repository) NextNumber(ctx context.Context, period string) (int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("invoice_sequences").
		Columns("period", "last_value").
		Values(period, 1).
		Suffix("ON CONFLICT (period) DO UPDATE SET last_value = invoice_sequences.last_value + 1 RETURNING last_value").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: NextNumber - build upsert query: %v", ErrBuildQuery, err)
	}

	var value int64
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&value); err != nil {
		return 0, fmt.Errorf("%w: NextNumber - execute upsert: %w", ErrExecQuery, err)
	}

	return value, nil
}

// Create inserts an invoice together with its line items
func (r *Repository) Create(ctx context.Context, inv *domain.Invoice) (*domain.Invoice, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("invoices").
		Columns(
			"booking_id",
			"number",
			"status",
			"subtotal",
			"tax_rate",
			"tax",
			"service_rate",
			"service_charge",
			"discount",
			"total",
			"amount_paid",
			"balance_due",
			"notes",
			"issued_at",
			"updated_at",
		).
		Values(
			inv.BookingID,
			inv.Number,
			inv.Status,
			inv.Subtotal,
			inv.TaxRate,
			inv.Tax,
			inv.ServiceRate,
			inv.ServiceCharge,
			inv.Discount,
			inv.Total,
			inv.AmountPaid,
			inv.BalanceDue,
			inv.Notes,
			inv.IssuedAt,
			inv.IssuedAt,
		).
		Suffix("RETURNING id, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	if err := executor.QueryRowContext(ctx, query, args...).Scan(&inv.ID, &inv.UpdatedAt); err != nil {
		if pgerr.IsUniqueViolation(err, constraintBookingID) {
			return nil, ErrInvoiceExists
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	if len(inv.Items) == 0 {
		return inv, nil
	}

	items := psqlbuilder.Insert("invoice_line_items").
		Columns("invoice_id", "source", "source_id", "description", "quantity", "unit_price", "amount")
	for _, item := range inv.Items {
		items = items.Values(inv.ID, item.Source, item.SourceID, item.Description, item.Quantity, item.UnitPrice, item.Amount)
	}

	query, args, err = items.Suffix("RETURNING id").ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build line items query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - insert line items: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	for i := 0; rows.Next(); i++ {
		if err := rows.Scan(&inv.Items[i].ID); err != nil {
			return nil, fmt.Errorf("%w: Create - scan line item id: %w", ErrScanRow, err)
		}
		inv.Items[i].InvoiceID = inv.ID
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: Create - line items rows error: %w", ErrScanRow, err)
	}

	return inv, nil
}

// GetByID returns an invoice with its line items
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Invoice, error) {
	inv, err := r.get(ctx, squirrel.Eq{"id": id}, false)
	if err != nil {
		return nil, err
	}
	return r.withItems(ctx, inv)
}

// GetByBookingID returns the invoice of a booking with its line items
func (r *Repository) GetByBookingID(ctx context.Context, bookingID int64) (*domain.Invoice, error) {
	inv, err := r.get(ctx, squirrel.Eq{"booking_id": bookingID}, false)
	if err != nil {
		return nil, err
	}
	return r.withItems(ctx, inv)
}

// LockByID returns an invoice without line items and locks its row
func (r *Repository) LockByID(ctx context.Context, id int64) (*domain.Invoice, error) {
	return r.get(ctx, squirrel.Eq{"id": id}, dbmetrics.IsInTransaction(ctx))
}

// ExistsForBooking reports whether the booking already has an invoice
func (r *Repository) ExistsForBooking(ctx context.Context, bookingID int64) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("1").
		From("invoices").
		Where(squirrel.Eq{"booking_id": bookingID}).
		Prefix("SELECT EXISTS (").
		Suffix(")").
		ToSql()
	if err != nil {
		return false, fmt.Errorf("%w: ExistsForBooking - build select query: %v", ErrBuildQuery, err)
	}

	var exists bool
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&exists); err != nil {
		return false, fmt.Errorf("%w: ExistsForBooking - scan: %w", ErrScanRow, err)
	}

	return exists, nil
}

// UpdatePayment persists the settlement fields of an invoice
func (r *Repository) UpdatePayment(ctx context.Context, inv *domain.Invoice) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("invoices").
		Set("amount_paid", inv.AmountPaid).
		Set("balance_due", inv.BalanceDue).
		Set("status", inv.Status).
		Set("updated_at", inv.UpdatedAt).
		Where(squirrel.Eq{"id": inv.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpdatePayment - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdatePayment - execute update: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdatePayment - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrInvoiceNotFound
	}

	return nil
}

// AddPayment records a payment against an invoice
func (r *Repository) AddPayment(ctx context.Context, p *domain.InvoicePayment) (*domain.InvoicePayment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("invoice_payments").
		Columns("invoice_id", "amount", "method", "reference", "recorded_at").
		Values(p.InvoiceID, p.Amount, p.Method, p.Reference, p.RecordedAt).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: AddPayment - build insert query: %v", ErrBuildQuery, err)
	}

	if err := executor.QueryRowContext(ctx, query, args...).Scan(&p.ID); err != nil {
		return nil, fmt.Errorf("%w: AddPayment - execute insert: %w", ErrExecQuery, err)
	}

	return p, nil
}

func (r *Repository) get(ctx context.Context, where squirrel.Eq, forUpdate bool) (*domain.Invoice, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Select(invoiceColumns...).
		From("invoices").
		Where(where)
	if forUpdate {
		builder = builder.Suffix("FOR UPDATE")
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: get - build select query: %v", ErrBuildQuery, err)
	}

	var inv domain.Invoice
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&inv.ID,
		&inv.BookingID,
		&inv.Number,
		&inv.Status,
		&inv.Subtotal,
		&inv.TaxRate,
		&inv.Tax,
		&inv.ServiceRate,
		&inv.ServiceCharge,
		&inv.Discount,
		&inv.Total,
		&inv.AmountPaid,
		&inv.BalanceDue,
		&inv.Notes,
		&inv.IssuedAt,
		&inv.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrInvoiceNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: get - scan invoice: %w", ErrScanRow, err)
	}

	return &inv, nil
}

func (r *Repository) withItems(ctx context.Context, inv *domain.Invoice) (*domain.Invoice, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"invoice_id",
		"source",
		"source_id",
		"description",
		"quantity",
		"unit_price",
		"amount",
	).
		From("invoice_line_items").
		Where(squirrel.Eq{"invoice_id": inv.ID}).
		OrderBy("id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: withItems - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: withItems - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	inv.Items = make([]domain.InvoiceLineItem, 0)
	for rows.Next() {
		var item domain.InvoiceLineItem
		err := rows.Scan(
			&item.ID,
			&item.InvoiceID,
			&item.Source,
			&item.SourceID,
			&item.Description,
			&item.Quantity,
			&item.UnitPrice,
			&item.Amount,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: withItems - scan row: %w", ErrScanRow, err)
		}
		inv.Items = append(inv.Items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: withItems - rows error: %w", ErrScanRow, err)
	}

	return inv, nil
}
