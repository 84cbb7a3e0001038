package booking

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

const (
	constraintReference   = "bookings_reference_key"
	constraintRoomOverlap = "stay_details_room_overlap"
)

var bookingColumns = []string{
	"b.id",
	"b.reference",
	"b.status",
	"b.payment_status",
	"b.total_amount",
	"b.notes",
	"b.cancellation_reason",
	"b.cancelled_at",
	"b.confirmed_at",
	"b.checked_in_at",
	"b.checked_out_at",
	"b.created_at",
	"b.updated_at",
}

var stayColumns = []string{
	"s.booking_id",
	"s.category_id",
	"s.room_id",
	"s.check_in",
	"s.check_out",
	"s.nights",
	"s.adults",
	"s.children",
	"s.early_check_in",
	"s.late_check_out",
	"s.extra_beds",
	"s.base_rate",
	"s.room_subtotal",
	"s.early_check_in_fee",
	"s.late_check_out_fee",
	"s.extra_bed_fee",
	"s.pre_tax_subtotal",
	"s.tax_rate",
	"s.tax",
	"s.service_rate",
	"s.service_charge",
	"s.final_total",
}

var guestColumns = []string{
	"g.id",
	"g.email",
	"g.first_name",
	"g.last_name",
	"g.phone",
	"g.total_bookings",
	"g.total_spent",
}

// Repository bookings and their stay details
type Repository struct {
	db DBExecutor
}

// NewRepository creates a booking repository
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create inserts a booking and fills its id and timestamps
func (r *Repository) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("bookings").
		Columns(
			"reference",
			"status",
			"payment_status",
			"total_amount",
			"notes",
			"created_at",
			"updated_at",
		).
		Values(
			booking.Reference,
			booking.Status,
			booking.PaymentStatus,
			booking.TotalAmount,
			booking.Notes,
			booking.CreatedAt,
			booking.CreatedAt,
		).
		Suffix("RETURNING id, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(&booking.ID, &booking.UpdatedAt)
	if err != nil {
		if pgerr.IsUniqueViolation(err, constraintReference) {
			return nil, ErrDuplicateReference
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	return booking, nil
}

// CreateStay inserts the stay detail of a booking
func (r *Repository) CreateStay(ctx context.Context, stay *domain.StayDetail) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	p := stay.Price
	query, args, err := psqlbuilder.Insert("stay_details").
		Columns(
			"booking_id",
			"category_id",
			"room_id",
			"check_in",
			"check_out",
			"nights",
			"adults",
			"children",
			"early_check_in",
			"late_check_out",
			"extra_beds",
			"base_rate",
			"room_subtotal",
			"early_check_in_fee",
			"late_check_out_fee",
			"extra_bed_fee",
			"pre_tax_subtotal",
			"tax_rate",
			"tax",
			"service_rate",
			"service_charge",
			"final_total",
		).
		Values(
			stay.BookingID,
			stay.CategoryID,
			stay.Room.Ptr(),
			stay.Dates.CheckIn,
			stay.Dates.CheckOut,
			p.Nights,
			stay.Adults,
			stay.Children,
			stay.EarlyCheckIn,
			stay.LateCheckOut,
			stay.ExtraBeds,
			p.BaseRate,
			p.RoomSubtotal,
			p.EarlyCheckInFee,
			p.LateCheckOutFee,
			p.ExtraBedFee,
			p.PreTaxSubtotal,
			p.TaxRate,
			p.Tax,
			p.ServiceRate,
			p.ServiceCharge,
			p.FinalTotal,
		).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: CreateStay - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: CreateStay - execute insert: %w", ErrExecQuery, err)
	}

	return nil
}

// GetByID returns a booking by id
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	return r.getByID(ctx, id, false)
}

// LockByID returns a booking and locks its row until the transaction ends.
// Outside a transaction it behaves like GetByID.
func (r *Repository) LockByID(ctx context.Context, id int64) (*domain.Booking, error) {
	return r.getByID(ctx, id, dbmetrics.IsInTransaction(ctx))
}

func (r *Repository) getByID(ctx context.Context, id int64, forUpdate bool) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Select(bookingColumns...).
		From("bookings b").
		Where(squirrel.Eq{"b.id": id})
	if forUpdate {
		builder = builder.Suffix("FOR UPDATE")
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	var booking domain.Booking
	err = executor.QueryRowContext(ctx, query, args...).Scan(bookingDest(&booking)...)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan booking: %w", ErrScanRow, err)
	}

	return &booking, nil
}

// Update persists status, payment status, lifecycle timestamps and the
// cancellation reason. The stay stops holding inventory once the booking is inactive.
func (r *Repository) Update(ctx context.Context, booking *domain.Booking) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("status", booking.Status).
		Set("payment_status", booking.PaymentStatus).
		Set("cancellation_reason", booking.CancellationReason).
		Set("cancelled_at", booking.CancelledAt).
		Set("confirmed_at", booking.ConfirmedAt).
		Set("checked_in_at", booking.CheckedInAt).
		Set("checked_out_at", booking.CheckedOutAt).
		Set("updated_at", booking.UpdatedAt).
		Where(squirrel.Eq{"id": booking.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Update - execute update: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Update - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrBookingNotFound
	}

	query, args, err = psqlbuilder.Update("stay_details").
		Set("is_active", booking.IsActive()).
		Where(squirrel.Eq{"booking_id": booking.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Update - build stay update query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: Update - execute stay update: %w", ErrExecQuery, err)
	}

	return nil
}

// GetStay returns the stay detail of a booking
func (r *Repository) GetStay(ctx context.Context, bookingID int64) (*domain.StayDetail, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(stayColumns...).
		From("stay_details s").
		Where(squirrel.Eq{"s.booking_id": bookingID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetStay - build select query: %v", ErrBuildQuery, err)
	}

	var stay domain.StayDetail
	var roomID *int64
	err = executor.QueryRowContext(ctx, query, args...).Scan(stayDest(&stay, &roomID)...)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrStayNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetStay - scan stay: %w", ErrScanRow, err)
	}
	stay.Room = domain.BindingFromPtr(roomID)

	return &stay, nil
}

// SetRoom binds or unbinds the physical room of a stay
func (r *Repository) SetRoom(ctx context.Context, bookingID int64, binding domain.RoomBinding) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("stay_details").
		Set("room_id", binding.Ptr()).
		Where(squirrel.Eq{"booking_id": bookingID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: SetRoom - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		if pgerr.IsExclusionViolation(err, constraintRoomOverlap) {
			return ErrRoomOverlap
		}
		return fmt.Errorf("%w: SetRoom - execute update: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: SetRoom - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrStayNotFound
	}

	return nil
}

// CountCommitted number of active stays of the category overlapping dates
func (r *Repository) CountCommitted(ctx context.Context, categoryID int64, dates domain.DateRange) (int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("COUNT(*)").
		From("stay_details s").
		Join("bookings b ON b.id = s.booking_id").
		Where(squirrel.Eq{"s.category_id": categoryID}).
		Where(squirrel.Eq{"b.status": statusStrings(domain.ActiveStatuses)}).
		Where(squirrel.Lt{"s.check_in": dates.CheckOut}).
		Where(squirrel.Gt{"s.check_out": dates.CheckIn}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: CountCommitted - build select query: %v", ErrBuildQuery, err)
	}

	var count int
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("%w: CountCommitted - scan count: %w", ErrScanRow, err)
	}

	return count, nil
}

// ListActiveStaysForRooms active stays bound to any of roomIDs overlapping dates,
// ignoring excludeBookingID (0 ignores nothing)
func (r *Repository) ListActiveStaysForRooms(ctx context.Context, roomIDs []int64, dates domain.DateRange, excludeBookingID int64) ([]domain.ActiveStay, error) {
	if len(roomIDs) == 0 {
		return []domain.ActiveStay{}, nil
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Select("s.booking_id", "s.room_id", "s.check_in", "s.check_out").
		From("stay_details s").
		Join("bookings b ON b.id = s.booking_id").
		Where(squirrel.Eq{"s.room_id": roomIDs}).
		Where(squirrel.Eq{"b.status": statusStrings(domain.ActiveStatuses)}).
		Where(squirrel.Lt{"s.check_in": dates.CheckOut}).
		Where(squirrel.Gt{"s.check_out": dates.CheckIn}).
		OrderBy("s.room_id ASC", "s.check_in ASC")
	if excludeBookingID != 0 {
		builder = builder.Where(squirrel.NotEq{"s.booking_id": excludeBookingID})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListActiveStaysForRooms - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListActiveStaysForRooms - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	stays := make([]domain.ActiveStay, 0)
	for rows.Next() {
		var stay domain.ActiveStay
		var roomID int64
		if err := rows.Scan(&stay.BookingID, &roomID, &stay.Dates.CheckIn, &stay.Dates.CheckOut); err != nil {
			return nil, fmt.Errorf("%w: ListActiveStaysForRooms - scan row: %w", ErrScanRow, err)
		}
		stay.Room = domain.AssignedTo(roomID)
		stays = append(stays, stay)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListActiveStaysForRooms - rows error: %w", ErrScanRow, err)
	}

	return stays, nil
}

// GetDetails booking with stay and primary guest
func (r *Repository) GetDetails(ctx context.Context, id int64) (*domain.BookingDetails, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := r.detailsSelect().
		Where(squirrel.Eq{"b.id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetDetails - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetDetails - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	details, err := r.scanDetails(rows)
	if err != nil {
		return nil, err
	}
	if len(details) == 0 {
		return nil, ErrBookingNotFound
	}

	return details[0], nil
}

// List bookings matching filter, newest first
func (r *Repository) List(ctx context.Context, filter domain.BookingsFilter) ([]*domain.BookingDetails, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := r.detailsSelect()

	if filter.Status != nil {
		builder = builder.Where(squirrel.Eq{"b.status": *filter.Status})
	}
	if filter.CategoryID != nil {
		builder = builder.Where(squirrel.Eq{"s.category_id": *filter.CategoryID})
	}
	// stays overlapping [From, To)
	if filter.From != nil {
		builder = builder.Where(squirrel.Gt{"s.check_out": *filter.From})
	}
	if filter.To != nil {
		builder = builder.Where(squirrel.Lt{"s.check_in": *filter.To})
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		builder = builder.Where(squirrel.Or{
			squirrel.ILike{"b.reference": pattern},
			squirrel.ILike{"g.email": pattern},
			squirrel.ILike{"g.first_name": pattern},
			squirrel.ILike{"g.last_name": pattern},
		})
	}

	builder = builder.OrderBy("b.created_at DESC", "b.id DESC")
	if filter.Limit > 0 {
		builder = builder.Limit(uint64(filter.Limit))
	}
	if filter.Offset > 0 {
		builder = builder.Offset(uint64(filter.Offset))
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanDetails(rows)
}

func (r *Repository) detailsSelect() squirrel.SelectBuilder {
	columns := make([]string, 0, len(bookingColumns)+len(stayColumns)+len(guestColumns))
	columns = append(columns, bookingColumns...)
	columns = append(columns, stayColumns...)
	columns = append(columns, guestColumns...)

	return psqlbuilder.Select(columns...).
		From("bookings b").
		Join("stay_details s ON s.booking_id = b.id").
		LeftJoin("booking_guests bg ON bg.booking_id = b.id AND bg.is_primary").
		LeftJoin("guest_profiles g ON g.id = bg.guest_id")
}

// scanDetails scans rows produced by detailsSelect
func (r *Repository) scanDetails(rows *sql.Rows) ([]*domain.BookingDetails, error) {
	result := make([]*domain.BookingDetails, 0)

	for rows.Next() {
		var (
			details domain.BookingDetails
			roomID  *int64
			guest   nullableGuest
		)

		dest := bookingDest(&details.Booking)
		dest = append(dest, stayDest(&details.Stay, &roomID)...)
		dest = append(dest, guest.dest()...)

		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("%w: scanDetails - scan row: %w", ErrScanRow, err)
		}

		details.Stay.Room = domain.BindingFromPtr(roomID)
		details.Guest = guest.profile()
		result = append(result, &details)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanDetails - rows error: %w", ErrScanRow, err)
	}

	return result, nil
}

func bookingDest(b *domain.Booking) []interface{} {
	return []interface{}{
		&b.ID,
		&b.Reference,
		&b.Status,
		&b.PaymentStatus,
		&b.TotalAmount,
		&b.Notes,
		&b.CancellationReason,
		&b.CancelledAt,
		&b.ConfirmedAt,
		&b.CheckedInAt,
		&b.CheckedOutAt,
		&b.CreatedAt,
		&b.UpdatedAt,
	}
}

func stayDest(s *domain.StayDetail, roomID **int64) []interface{} {
	p := &s.Price
	return []interface{}{
		&s.BookingID,
		&s.CategoryID,
		roomID,
		&s.Dates.CheckIn,
		&s.Dates.CheckOut,
		&p.Nights,
		&s.Adults,
		&s.Children,
		&s.EarlyCheckIn,
		&s.LateCheckOut,
		&s.ExtraBeds,
		&p.BaseRate,
		&p.RoomSubtotal,
		&p.EarlyCheckInFee,
		&p.LateCheckOutFee,
		&p.ExtraBedFee,
		&p.PreTaxSubtotal,
		&p.TaxRate,
		&p.Tax,
		&p.ServiceRate,
		&p.ServiceCharge,
		&p.FinalTotal,
	}
}

// nullableGuest scan target of the left-joined primary guest
type nullableGuest struct {
	id            sql.NullInt64
	email         sql.NullString
	firstName     sql.NullString
	lastName      sql.NullString
	phone         *string
	totalBookings sql.NullInt64
	totalSpent    sql.NullInt64
}

func (g *nullableGuest) dest() []interface{} {
	return []interface{}{
		&g.id,
		&g.email,
		&g.firstName,
		&g.lastName,
		&g.phone,
		&g.totalBookings,
		&g.totalSpent,
	}
}

func (g *nullableGuest) profile() *domain.GuestProfile {
	if !g.id.Valid {
		return nil
	}
	return &domain.GuestProfile{
		ID:            g.id.Int64,
		Email:         g.email.String,
		FirstName:     g.firstName.String,
		LastName:      g.lastName.String,
		Phone:         g.phone,
		TotalBookings: int(g.totalBookings.Int64),
		TotalSpent:    domain.Money(g.totalSpent.Int64),
	}
}

func statusStrings(statuses []domain.BookingStatus) []string {
	result := make([]string, len(statuses))
	for i, s := range statuses {
		result[i] = string(s)
	}
	return result
}
