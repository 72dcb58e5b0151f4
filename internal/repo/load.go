package repo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/yonigrin7234/moveboss-pro-sub007/internal/domain"
)

// LoadRepo defines the persistence operations for Loads.
type LoadRepo interface {
	// Create inserts a new load and returns the persisted record.
	Create(ctx context.Context, load domain.Load) (domain.Load, error)

	// GetByID retrieves a single load by its UUID primary key.
	// Returns domain.ErrNotFound if no load with that ID exists.
	GetByID(ctx context.Context, id uuid.UUID) (domain.Load, error)

	// List returns one page of loads ordered by creation time descending,
	// plus the total row count. When unassignedOnly is true, only loads
	// without a trip are returned (and counted).
	List(ctx context.Context, p domain.PaginationParams, unassignedOnly bool) ([]domain.Load, int64, error)

	// ListAll returns every load. Used by the dispatch worklist, which
	// classifies in memory against an injected clock.
	ListAll(ctx context.Context) ([]domain.Load, error)

	// ListByTripID returns all loads attached to a trip ordered by
	// sequence_index ascending.
	ListByTripID(ctx context.Context, tripID uuid.UUID) ([]domain.Load, error)

	// Update overwrites the mutable fields of an existing load and returns
	// the updated record. Trip assignment is not touched here — AssignToTrip
	// and Detach own that column.
	Update(ctx context.Context, load domain.Load) (domain.Load, error)

	// AssignToTrip attaches a load to a trip with the given role, placing it
	// at the end of the trip's sequence. A load already on another trip is
	// implicitly detached — assignment is a single UPDATE of the owning row.
	AssignToTrip(ctx context.Context, loadID, tripID uuid.UUID, role domain.LoadRole) (domain.Load, error)

	// Detach removes a load from its trip, leaving it unassigned.
	Detach(ctx context.Context, loadID uuid.UUID) error

	// Reorder rewrites sequence_index for the trip's loads to match the
	// given ID order.
	Reorder(ctx context.Context, tripID uuid.UUID, orderedIDs []uuid.UUID) error

	// SetDelivered stamps the delivery time on a load.
	SetDelivered(ctx context.Context, loadID uuid.UUID, at time.Time) error

	// Delete removes a load by ID.
	Delete(ctx context.Context, id uuid.UUID) error
}

// pgLoadRepo is the Postgres implementation of LoadRepo.
type pgLoadRepo struct {
	db db
}

// NewLoadRepo constructs a LoadRepo backed by the provided db connection.
func NewLoadRepo(db db) LoadRepo {
	return &pgLoadRepo{db: db}
}

const loadColumns = `id, trip_id, sequence_index, role, customer_name,
		trust_level, rfd_date, rfd_date_tbd, contract_rate_per_cuft,
		acc_shuttle, acc_stairs, acc_long_carry, acc_bulky, acc_other,
		actual_cuft_loaded, extra_shuttle, extra_stairs, extra_long_carry,
		extra_bulky, extra_other, storage_move_in_fee, storage_daily_fee,
		storage_days_billed, amount_collected_on_delivery,
		amount_paid_directly_to_company, balance_due_on_delivery,
		delivered_at, created_at, updated_at`

// loadArgs maps every mutable load column to a named SQL argument.
func loadArgs(l domain.Load) pgx.NamedArgs {
	return pgx.NamedArgs{
		"id":                              l.ID,
		"customer_name":                   l.CustomerName,
		"trust_level":                     l.TrustLevel,
		"role":                            l.Role,
		"rfd_date":                        l.RFDDate,
		"rfd_date_tbd":                    l.RFDDateTBD,
		"contract_rate_per_cuft":          l.ContractRatePerCuft,
		"acc_shuttle":                     l.ContractAccessorials.Shuttle,
		"acc_stairs":                      l.ContractAccessorials.Stairs,
		"acc_long_carry":                  l.ContractAccessorials.LongCarry,
		"acc_bulky":                       l.ContractAccessorials.Bulky,
		"acc_other":                       l.ContractAccessorials.Other,
		"actual_cuft_loaded":              l.ActualCuftLoaded,
		"extra_shuttle":                   l.ExtraAccessorials.Shuttle,
		"extra_stairs":                    l.ExtraAccessorials.Stairs,
		"extra_long_carry":                l.ExtraAccessorials.LongCarry,
		"extra_bulky":                     l.ExtraAccessorials.Bulky,
		"extra_other":                     l.ExtraAccessorials.Other,
		"storage_move_in_fee":             l.StorageMoveInFee,
		"storage_daily_fee":               l.StorageDailyFee,
		"storage_days_billed":             l.StorageDaysBilled,
		"amount_collected_on_delivery":    l.AmountCollectedOnDelivery,
		"amount_paid_directly_to_company": l.AmountPaidDirectlyToCompany,
		"balance_due_on_delivery":         l.BalanceDueOnDelivery,
	}
}

// Create inserts a new load row and returns the full persisted record.
// New loads start unassigned; attachment goes through AssignToTrip.
func (r *pgLoadRepo) Create(ctx context.Context, load domain.Load) (domain.Load, error) {
	q := `
		INSERT INTO loads (customer_name, trust_level, role, rfd_date,
			rfd_date_tbd, contract_rate_per_cuft, acc_shuttle, acc_stairs,
			acc_long_carry, acc_bulky, acc_other, actual_cuft_loaded,
			extra_shuttle, extra_stairs, extra_long_carry, extra_bulky,
			extra_other, storage_move_in_fee, storage_daily_fee,
			storage_days_billed, amount_collected_on_delivery,
			amount_paid_directly_to_company, balance_due_on_delivery)
		VALUES (@customer_name, @trust_level, @role, @rfd_date, @rfd_date_tbd,
			@contract_rate_per_cuft, @acc_shuttle, @acc_stairs,
			@acc_long_carry, @acc_bulky, @acc_other, @actual_cuft_loaded,
			@extra_shuttle, @extra_stairs, @extra_long_carry, @extra_bulky,
			@extra_other, @storage_move_in_fee, @storage_daily_fee,
			@storage_days_billed, @amount_collected_on_delivery,
			@amount_paid_directly_to_company, @balance_due_on_delivery)
		RETURNING ` + loadColumns

	args := loadArgs(load)
	delete(args, "id")

	result, err := scanLoad(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return domain.Load{}, fmt.Errorf("repo.LoadRepo.Create: %w", err)
	}
	return result, nil
}

// GetByID retrieves a load by primary key.
func (r *pgLoadRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Load, error) {
	q := `SELECT ` + loadColumns + ` FROM loads WHERE id = @id`

	result, err := scanLoad(r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id}))
	if err != nil {
		return domain.Load{}, fmt.Errorf("repo.LoadRepo.GetByID: %w", err)
	}
	return result, nil
}

// List returns one page of loads, optionally restricted to unassigned ones.
func (r *pgLoadRepo) List(ctx context.Context, p domain.PaginationParams, unassignedOnly bool) ([]domain.Load, int64, error) {
	where := ``
	if unassignedOnly {
		where = ` WHERE trip_id IS NULL`
	}

	var total int64
	if err := r.db.QueryRow(ctx, `SELECT count(*) FROM loads`+where).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("repo.LoadRepo.List: count: %w", err)
	}

	q := `SELECT ` + loadColumns + ` FROM loads` + where + `
		ORDER BY created_at DESC
		LIMIT @limit OFFSET @offset`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"limit": p.Limit, "offset": p.Offset()})
	if err != nil {
		return nil, 0, fmt.Errorf("repo.LoadRepo.List: %w", err)
	}
	defer rows.Close()

	loads, err := collectLoads(rows)
	if err != nil {
		return nil, 0, fmt.Errorf("repo.LoadRepo.List: %w", err)
	}
	return loads, total, nil
}

// ListAll returns every load, most recent first.
func (r *pgLoadRepo) ListAll(ctx context.Context) ([]domain.Load, error) {
	q := `SELECT ` + loadColumns + ` FROM loads ORDER BY created_at DESC`

	rows, err := r.db.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("repo.LoadRepo.ListAll: %w", err)
	}
	defer rows.Close()

	loads, err := collectLoads(rows)
	if err != nil {
		return nil, fmt.Errorf("repo.LoadRepo.ListAll: %w", err)
	}
	return loads, nil
}

// ListByTripID returns a trip's loads in route order.
func (r *pgLoadRepo) ListByTripID(ctx context.Context, tripID uuid.UUID) ([]domain.Load, error) {
	q := `SELECT ` + loadColumns + `
		FROM loads
		WHERE trip_id = @trip_id
		ORDER BY sequence_index ASC`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"trip_id": tripID})
	if err != nil {
		return nil, fmt.Errorf("repo.LoadRepo.ListByTripID: %w", err)
	}
	defer rows.Close()

	loads, err := collectLoads(rows)
	if err != nil {
		return nil, fmt.Errorf("repo.LoadRepo.ListByTripID: %w", err)
	}
	return loads, nil
}

// Update overwrites the mutable fields of a load.
func (r *pgLoadRepo) Update(ctx context.Context, load domain.Load) (domain.Load, error) {
	q := `
		UPDATE loads
		SET customer_name                   = @customer_name,
		    trust_level                     = @trust_level,
		    role                            = @role,
		    rfd_date                        = @rfd_date,
		    rfd_date_tbd                    = @rfd_date_tbd,
		    contract_rate_per_cuft          = @contract_rate_per_cuft,
		    acc_shuttle                     = @acc_shuttle,
		    acc_stairs                      = @acc_stairs,
		    acc_long_carry                  = @acc_long_carry,
		    acc_bulky                       = @acc_bulky,
		    acc_other                       = @acc_other,
		    actual_cuft_loaded              = @actual_cuft_loaded,
		    extra_shuttle                   = @extra_shuttle,
		    extra_stairs                    = @extra_stairs,
		    extra_long_carry                = @extra_long_carry,
		    extra_bulky                     = @extra_bulky,
		    extra_other                     = @extra_other,
		    storage_move_in_fee             = @storage_move_in_fee,
		    storage_daily_fee               = @storage_daily_fee,
		    storage_days_billed             = @storage_days_billed,
		    amount_collected_on_delivery    = @amount_collected_on_delivery,
		    amount_paid_directly_to_company = @amount_paid_directly_to_company,
		    balance_due_on_delivery         = @balance_due_on_delivery,
		    updated_at                      = now()
		WHERE id = @id
		RETURNING ` + loadColumns

	result, err := scanLoad(r.db.QueryRow(ctx, q, loadArgs(load)))
	if err != nil {
		return domain.Load{}, fmt.Errorf("repo.LoadRepo.Update: %w", err)
	}
	return result, nil
}

// AssignToTrip attaches a load to the end of a trip's sequence.
// Because a load row has exactly one trip_id column, moving it to a new trip
// is inherently a detach from the old one — the single-owner invariant holds
// without any cleanup query.
func (r *pgLoadRepo) AssignToTrip(ctx context.Context, loadID, tripID uuid.UUID, role domain.LoadRole) (domain.Load, error) {
	q := `
		UPDATE loads
		SET trip_id        = @trip_id,
		    role           = @role,
		    sequence_index = (SELECT COALESCE(MAX(sequence_index) + 1, 0)
		                      FROM loads WHERE trip_id = @trip_id),
		    updated_at     = now()
		WHERE id = @id
		RETURNING ` + loadColumns

	args := pgx.NamedArgs{"id": loadID, "trip_id": tripID, "role": role}

	result, err := scanLoad(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return domain.Load{}, fmt.Errorf("repo.LoadRepo.AssignToTrip: %w", err)
	}
	return result, nil
}

// Detach removes a load from its trip.
func (r *pgLoadRepo) Detach(ctx context.Context, loadID uuid.UUID) error {
	const q = `
		UPDATE loads
		SET trip_id = NULL, sequence_index = 0, updated_at = now()
		WHERE id = @id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"id": loadID})
	if err != nil {
		return fmt.Errorf("repo.LoadRepo.Detach: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.LoadRepo.Detach: %w", domain.ErrNotFound)
	}
	return nil
}

// Reorder rewrites sequence_index to match the given order. Only loads that
// actually belong to the trip are updated; IDs from other trips are ignored
// by the WHERE clause rather than hijacked.
func (r *pgLoadRepo) Reorder(ctx context.Context, tripID uuid.UUID, orderedIDs []uuid.UUID) error {
	const q = `
		UPDATE loads
		SET sequence_index = @seq, updated_at = now()
		WHERE id = @id AND trip_id = @trip_id`

	for i, id := range orderedIDs {
		args := pgx.NamedArgs{"id": id, "trip_id": tripID, "seq": i}
		if _, err := r.db.Exec(ctx, q, args); err != nil {
			return fmt.Errorf("repo.LoadRepo.Reorder: %w", err)
		}
	}
	return nil
}

// SetDelivered stamps the delivery time on a load.
func (r *pgLoadRepo) SetDelivered(ctx context.Context, loadID uuid.UUID, at time.Time) error {
	const q = `UPDATE loads SET delivered_at = @at, updated_at = now() WHERE id = @id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"id": loadID, "at": at})
	if err != nil {
		return fmt.Errorf("repo.LoadRepo.SetDelivered: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.LoadRepo.SetDelivered: %w", domain.ErrNotFound)
	}
	return nil
}

// Delete removes a load by primary key.
func (r *pgLoadRepo) Delete(ctx context.Context, id uuid.UUID) error {
	const q = `DELETE FROM loads WHERE id = @id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"id": id})
	if err != nil {
		return fmt.Errorf("repo.LoadRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.LoadRepo.Delete: %w", domain.ErrNotFound)
	}
	return nil
}

// collectLoads drains rows into a slice.
func collectLoads(rows pgx.Rows) ([]domain.Load, error) {
	var loads []domain.Load
	for rows.Next() {
		l, err := scanLoad(rows)
		if err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		loads = append(loads, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}
	return loads, nil
}

// scanLoad maps a single database row into a domain.Load.
func scanLoad(s scanner) (domain.Load, error) {
	var (
		l         domain.Load
		id        pgtype.UUID
		tripID    pgtype.UUID
		rfd       pgtype.Date
		delivered pgtype.Timestamptz
	)

	err := s.Scan(
		&id, &tripID, &l.SequenceIndex, &l.Role, &l.CustomerName,
		&l.TrustLevel, &rfd, &l.RFDDateTBD, &l.ContractRatePerCuft,
		&l.ContractAccessorials.Shuttle, &l.ContractAccessorials.Stairs,
		&l.ContractAccessorials.LongCarry, &l.ContractAccessorials.Bulky,
		&l.ContractAccessorials.Other, &l.ActualCuftLoaded,
		&l.ExtraAccessorials.Shuttle, &l.ExtraAccessorials.Stairs,
		&l.ExtraAccessorials.LongCarry, &l.ExtraAccessorials.Bulky,
		&l.ExtraAccessorials.Other, &l.StorageMoveInFee, &l.StorageDailyFee,
		&l.StorageDaysBilled, &l.AmountCollectedOnDelivery,
		&l.AmountPaidDirectlyToCompany, &l.BalanceDueOnDelivery,
		&delivered, &l.CreatedAt, &l.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Load{}, domain.ErrNotFound
		}
		return domain.Load{}, err
	}

	l.ID = uuid.UUID(id.Bytes)
	if tripID.Valid {
		tid := uuid.UUID(tripID.Bytes)
		l.TripID = &tid
	}
	if rfd.Valid {
		d := rfd.Time
		l.RFDDate = &d
	}
	if delivered.Valid {
		dt := delivered.Time
		l.DeliveredAt = &dt
	}

	return l, nil
}
