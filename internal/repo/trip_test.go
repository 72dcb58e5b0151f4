package repo_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yonigrin7234/moveboss-pro-sub007/internal/domain"
	"github.com/yonigrin7234/moveboss-pro-sub007/internal/repo"
	"github.com/yonigrin7234/moveboss-pro-sub007/testutil"
)

// newTestTx opens a transaction against the test database. The transaction is
// rolled back when the test finishes, giving free per-test isolation.
func newTestTx(t *testing.T) pgx.Tx {
	t.Helper()
	pool := testutil.NewPool(t)

	tx, err := pool.Begin(context.Background())
	require.NoError(t, err, "begin transaction")

	t.Cleanup(func() {
		_ = tx.Rollback(context.Background())
	})
	return tx
}

func fp(v float64) *float64 { return &v }

// tripFixture returns a domain.Trip with sensible defaults for use in tests.
// Callers can override individual fields after calling this function.
func tripFixture() domain.Trip {
	start := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC)
	return domain.Trip{
		Name:       "March East Coast Run",
		Status:     domain.TripPlanned,
		DriverName: "D. Alvarez",
		Pay: domain.PayConfig{
			Mode:        domain.PayPerMile,
			RatePerMile: fp(0.55),
		},
		StartDate:  start,
		EndDate:    &end,
		TotalMiles: fp(520),
	}
}

func TestTripRepo_Create(t *testing.T) {
	r := repo.NewTripRepo(newTestTx(t))
	ctx := context.Background()

	input := tripFixture()
	got, err := r.Create(ctx, input)

	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, got.ID, "ID should be DB-generated")
	assert.Equal(t, input.Name, got.Name)
	assert.Equal(t, domain.TripPlanned, got.Status)
	assert.Equal(t, domain.PayPerMile, got.Pay.Mode)
	require.NotNil(t, got.Pay.RatePerMile)
	assert.InDelta(t, 0.55, *got.Pay.RatePerMile, 1e-9)
	assert.True(t, got.StartDate.Equal(input.StartDate), "StartDate mismatch")
	require.NotNil(t, got.EndDate)
	assert.True(t, got.EndDate.Equal(*input.EndDate), "EndDate mismatch")
	assert.Zero(t, got.RevenueTotal, "rollups start at zero")
	assert.False(t, got.CreatedAt.IsZero(), "CreatedAt should be set by DB")
}

func TestTripRepo_Create_NilEndDate(t *testing.T) {
	r := repo.NewTripRepo(newTestTx(t))
	ctx := context.Background()

	input := tripFixture()
	input.EndDate = nil // trip still open-ended

	got, err := r.Create(ctx, input)

	require.NoError(t, err)
	assert.Nil(t, got.EndDate)
}

func TestTripRepo_GetByID(t *testing.T) {
	r := repo.NewTripRepo(newTestTx(t))
	ctx := context.Background()

	created, err := r.Create(ctx, tripFixture())
	require.NoError(t, err)

	got, err := r.GetByID(ctx, created.ID)

	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)
	assert.Equal(t, created.Name, got.Name)
}

func TestTripRepo_GetByID_NotFound(t *testing.T) {
	r := repo.NewTripRepo(newTestTx(t))

	_, err := r.GetByID(context.Background(), uuid.New())

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestTripRepo_List_Paged(t *testing.T) {
	tx := newTestTx(t)
	r := repo.NewTripRepo(tx)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		in := tripFixture()
		in.StartDate = in.StartDate.AddDate(0, i, 0)
		_, err := r.Create(ctx, in)
		require.NoError(t, err)
	}

	page, total, err := r.List(ctx, domain.PaginationParams{Page: 1, Limit: 2})

	require.NoError(t, err)
	assert.GreaterOrEqual(t, total, int64(3))
	assert.Len(t, page, 2, "limit should cap the page")
}

func TestTripRepo_Update(t *testing.T) {
	r := repo.NewTripRepo(newTestTx(t))
	ctx := context.Background()

	created, err := r.Create(ctx, tripFixture())
	require.NoError(t, err)

	created.Name = "Renamed Run"
	created.Pay = domain.PayConfig{
		Mode:             domain.PayPercentOfRevenue,
		PercentOfRevenue: fp(25),
	}
	created.ActualMiles = fp(498)
	created.EndDate = nil

	updated, err := r.Update(ctx, created)

	require.NoError(t, err)
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, "Renamed Run", updated.Name)
	assert.Equal(t, domain.PayPercentOfRevenue, updated.Pay.Mode)
	assert.Nil(t, updated.Pay.RatePerMile, "old rate cleared on mode change")
	require.NotNil(t, updated.ActualMiles)
	assert.InDelta(t, 498.0, *updated.ActualMiles, 1e-9)
	assert.Nil(t, updated.EndDate)
}

func TestTripRepo_Update_NotFound(t *testing.T) {
	r := repo.NewTripRepo(newTestTx(t))

	ghost := tripFixture()
	ghost.ID = uuid.New()

	_, err := r.Update(context.Background(), ghost)

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestTripRepo_UpdateStatus(t *testing.T) {
	r := repo.NewTripRepo(newTestTx(t))
	ctx := context.Background()

	created, err := r.Create(ctx, tripFixture())
	require.NoError(t, err)

	require.NoError(t, r.UpdateStatus(ctx, created.ID, domain.TripActive))

	got, err := r.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.TripActive, got.Status)
}

func TestTripRepo_UpdateRollups(t *testing.T) {
	r := repo.NewTripRepo(newTestTx(t))
	ctx := context.Background()

	created, err := r.Create(ctx, tripFixture())
	require.NoError(t, err)

	rollups := repo.TripRollups{
		RevenueTotal:       4000,
		DriverPayTotal:     1000,
		FuelTotal:          550,
		TollsTotal:         85,
		OtherExpensesTotal: 150,
	}
	require.NoError(t, r.UpdateRollups(ctx, created.ID, rollups, domain.TripSettled))

	got, err := r.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.TripSettled, got.Status)
	assert.InDelta(t, 4000.0, got.RevenueTotal, 1e-9)
	assert.InDelta(t, 1000.0, got.DriverPayTotal, 1e-9)
	assert.InDelta(t, 2215.0, got.Profit(), 1e-9)
}

func TestTripRepo_Delete(t *testing.T) {
	r := repo.NewTripRepo(newTestTx(t))
	ctx := context.Background()

	created, err := r.Create(ctx, tripFixture())
	require.NoError(t, err)

	require.NoError(t, r.Delete(ctx, created.ID))

	_, err = r.GetByID(ctx, created.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound, "trip should be gone after delete")
}

func TestTripRepo_Delete_NotFound(t *testing.T) {
	r := repo.NewTripRepo(newTestTx(t))

	err := r.Delete(context.Background(), uuid.New())

	assert.ErrorIs(t, err, domain.ErrNotFound)
}
