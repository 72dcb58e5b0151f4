// Package repo contains all database access logic for the MoveBoss API.
// Each resource has its own file with an interface and a Postgres
// implementation. No business logic lives here — only SQL and type mapping.
package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/yonigrin7234/moveboss-pro-sub007/internal/domain"
)

// db is the minimal interface satisfied by *pgxpool.Pool, pgx.Conn, and
// pgx.Tx. Accepting this interface instead of *pgxpool.Pool directly lets
// integration tests pass a transaction that is rolled back after each test,
// and lets unit tests pass a pgxmock pool.
type db interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// TripRollups carries the settlement outputs persisted onto a trip row.
type TripRollups struct {
	RevenueTotal       float64
	DriverPayTotal     float64
	FuelTotal          float64
	TollsTotal         float64
	OtherExpensesTotal float64
}

// TripRepo defines the persistence operations for Trips.
// The service layer depends on this interface, not the Postgres
// implementation, so it can be unit-tested with a mock.
type TripRepo interface {
	// Create inserts a new trip and returns the persisted record (with
	// DB-generated id, created_at, and updated_at populated).
	Create(ctx context.Context, trip domain.Trip) (domain.Trip, error)

	// GetByID retrieves a single trip by its UUID primary key.
	// Returns domain.ErrNotFound if no trip with that ID exists.
	GetByID(ctx context.Context, id uuid.UUID) (domain.Trip, error)

	// List returns one page of trips ordered by start_date descending,
	// plus the total row count for pagination.
	List(ctx context.Context, p domain.PaginationParams) ([]domain.Trip, int64, error)

	// Update overwrites the mutable fields of an existing trip and returns
	// the updated record. Rollup totals and status are not touched here —
	// they have their own write paths.
	// Returns domain.ErrNotFound if no trip with that ID exists.
	Update(ctx context.Context, trip domain.Trip) (domain.Trip, error)

	// UpdateStatus moves a trip to a new lifecycle status.
	// Returns domain.ErrNotFound if the trip does not exist.
	UpdateStatus(ctx context.Context, id uuid.UUID, status domain.TripStatus) error

	// UpdateRollups persists settlement outputs and the resulting status in
	// one statement, so a settle is a single logical write.
	UpdateRollups(ctx context.Context, id uuid.UUID, r TripRollups, status domain.TripStatus) error

	// Delete removes a trip by ID. Returns domain.ErrNotFound if it does
	// not exist.
	Delete(ctx context.Context, id uuid.UUID) error
}

// pgTripRepo is the Postgres implementation of TripRepo.
type pgTripRepo struct {
	db db
}

// NewTripRepo constructs a TripRepo backed by the provided db connection.
// In production pass *pgxpool.Pool; in tests pass a pgx.Tx or a pgxmock pool.
func NewTripRepo(db db) TripRepo {
	return &pgTripRepo{db: db}
}

const tripColumns = `id, name, status, driver_name, pay_mode, rate_per_mile,
		rate_per_cuft, percent_of_revenue, flat_daily_rate, start_date,
		end_date, total_miles, actual_miles, revenue_total, driver_pay_total,
		fuel_total, tolls_total, other_expenses_total, created_at, updated_at`

// Create inserts a new trip row and returns the full persisted record.
func (r *pgTripRepo) Create(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	q := `
		INSERT INTO trips (name, status, driver_name, pay_mode, rate_per_mile,
			rate_per_cuft, percent_of_revenue, flat_daily_rate, start_date,
			end_date, total_miles, actual_miles)
		VALUES (@name, @status, @driver_name, @pay_mode, @rate_per_mile,
			@rate_per_cuft, @percent_of_revenue, @flat_daily_rate, @start_date,
			@end_date, @total_miles, @actual_miles)
		RETURNING ` + tripColumns

	args := pgx.NamedArgs{
		"name":               trip.Name,
		"status":             trip.Status,
		"driver_name":        trip.DriverName,
		"pay_mode":           trip.Pay.Mode,
		"rate_per_mile":      trip.Pay.RatePerMile,
		"rate_per_cuft":      trip.Pay.RatePerCuft,
		"percent_of_revenue": trip.Pay.PercentOfRevenue,
		"flat_daily_rate":    trip.Pay.FlatDailyRate,
		"start_date":         trip.StartDate,
		"end_date":           trip.EndDate, // nil becomes NULL
		"total_miles":        trip.TotalMiles,
		"actual_miles":       trip.ActualMiles,
	}

	result, err := scanTrip(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.Create: %w", err)
	}
	return result, nil
}

// GetByID retrieves a trip by primary key.
func (r *pgTripRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Trip, error) {
	q := `SELECT ` + tripColumns + ` FROM trips WHERE id = @id`

	result, err := scanTrip(r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id}))
	if err != nil {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.GetByID: %w", err)
	}
	return result, nil
}

// List returns one page of trips ordered by start_date descending.
func (r *pgTripRepo) List(ctx context.Context, p domain.PaginationParams) ([]domain.Trip, int64, error) {
	var total int64
	if err := r.db.QueryRow(ctx, `SELECT count(*) FROM trips`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("repo.TripRepo.List: count: %w", err)
	}

	q := `SELECT ` + tripColumns + `
		FROM trips
		ORDER BY start_date DESC, created_at DESC
		LIMIT @limit OFFSET @offset`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"limit": p.Limit, "offset": p.Offset()})
	if err != nil {
		return nil, 0, fmt.Errorf("repo.TripRepo.List: %w", err)
	}
	defer rows.Close()

	var trips []domain.Trip
	for rows.Next() {
		t, err := scanTrip(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("repo.TripRepo.List: scan: %w", err)
		}
		trips = append(trips, t)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("repo.TripRepo.List: rows: %w", err)
	}

	return trips, total, nil
}

// Update overwrites the mutable fields of a trip.
func (r *pgTripRepo) Update(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	q := `
		UPDATE trips
		SET name               = @name,
		    driver_name        = @driver_name,
		    pay_mode           = @pay_mode,
		    rate_per_mile      = @rate_per_mile,
		    rate_per_cuft      = @rate_per_cuft,
		    percent_of_revenue = @percent_of_revenue,
		    flat_daily_rate    = @flat_daily_rate,
		    start_date         = @start_date,
		    end_date           = @end_date,
		    total_miles        = @total_miles,
		    actual_miles       = @actual_miles,
		    updated_at         = now()
		WHERE id = @id
		RETURNING ` + tripColumns

	args := pgx.NamedArgs{
		"id":                 trip.ID,
		"name":               trip.Name,
		"driver_name":        trip.DriverName,
		"pay_mode":           trip.Pay.Mode,
		"rate_per_mile":      trip.Pay.RatePerMile,
		"rate_per_cuft":      trip.Pay.RatePerCuft,
		"percent_of_revenue": trip.Pay.PercentOfRevenue,
		"flat_daily_rate":    trip.Pay.FlatDailyRate,
		"start_date":         trip.StartDate,
		"end_date":           trip.EndDate,
		"total_miles":        trip.TotalMiles,
		"actual_miles":       trip.ActualMiles,
	}

	result, err := scanTrip(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.Update: %w", err)
	}
	return result, nil
}

// UpdateStatus moves a trip to a new lifecycle status.
func (r *pgTripRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.TripStatus) error {
	const q = `UPDATE trips SET status = @status, updated_at = now() WHERE id = @id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"id": id, "status": status})
	if err != nil {
		return fmt.Errorf("repo.TripRepo.UpdateStatus: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.TripRepo.UpdateStatus: %w", domain.ErrNotFound)
	}
	return nil
}

// UpdateRollups persists settlement outputs and the resulting status.
func (r *pgTripRepo) UpdateRollups(ctx context.Context, id uuid.UUID, roll TripRollups, status domain.TripStatus) error {
	const q = `
		UPDATE trips
		SET revenue_total        = @revenue_total,
		    driver_pay_total     = @driver_pay_total,
		    fuel_total           = @fuel_total,
		    tolls_total          = @tolls_total,
		    other_expenses_total = @other_expenses_total,
		    status               = @status,
		    updated_at           = now()
		WHERE id = @id`

	args := pgx.NamedArgs{
		"id":                   id,
		"revenue_total":        roll.RevenueTotal,
		"driver_pay_total":     roll.DriverPayTotal,
		"fuel_total":           roll.FuelTotal,
		"tolls_total":          roll.TollsTotal,
		"other_expenses_total": roll.OtherExpensesTotal,
		"status":               status,
	}

	tag, err := r.db.Exec(ctx, q, args)
	if err != nil {
		return fmt.Errorf("repo.TripRepo.UpdateRollups: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.TripRepo.UpdateRollups: %w", domain.ErrNotFound)
	}
	return nil
}

// Delete removes a trip by primary key. Attached loads are detached by the
// ON DELETE SET NULL constraint; expenses cascade.
func (r *pgTripRepo) Delete(ctx context.Context, id uuid.UUID) error {
	const q = `DELETE FROM trips WHERE id = @id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"id": id})
	if err != nil {
		return fmt.Errorf("repo.TripRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.TripRepo.Delete: %w", domain.ErrNotFound)
	}
	return nil
}

// scanner is satisfied by both pgx.Row and pgx.Rows, allowing the scan
// helpers to be reused for QueryRow and Query calls.
type scanner interface {
	Scan(dest ...any) error
}

// scanTrip maps a single database row into a domain.Trip.
func scanTrip(s scanner) (domain.Trip, error) {
	var (
		t       domain.Trip
		id      pgtype.UUID
		start   pgtype.Date
		endDate pgtype.Date
	)

	err := s.Scan(
		&id, &t.Name, &t.Status, &t.DriverName, &t.Pay.Mode,
		&t.Pay.RatePerMile, &t.Pay.RatePerCuft, &t.Pay.PercentOfRevenue,
		&t.Pay.FlatDailyRate, &start, &endDate, &t.TotalMiles, &t.ActualMiles,
		&t.RevenueTotal, &t.DriverPayTotal, &t.FuelTotal, &t.TollsTotal,
		&t.OtherExpensesTotal, &t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Trip{}, domain.ErrNotFound
		}
		return domain.Trip{}, err
	}

	t.ID = uuid.UUID(id.Bytes)
	t.StartDate = start.Time
	if endDate.Valid {
		ed := endDate.Time
		t.EndDate = &ed
	}

	return t, nil
}
