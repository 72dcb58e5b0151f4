package repo_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yonigrin7234/moveboss-pro-sub007/internal/domain"
	"github.com/yonigrin7234/moveboss-pro-sub007/internal/repo"
)

// loadFixture returns a domain.Load with sensible defaults for use in tests.
func loadFixture() domain.Load {
	rfd := time.Date(2025, 3, 12, 0, 0, 0, 0, time.UTC)
	return domain.Load{
		Role:                domain.RolePrimary,
		CustomerName:        "Harbor Van Lines",
		TrustLevel:          domain.TrustCODRequired,
		RFDDate:             &rfd,
		ContractRatePerCuft: fp(2.5),
		ContractAccessorials: domain.AccessorialSet{
			Shuttle: fp(150),
			Stairs:  fp(75),
		},
		ActualCuftLoaded:     fp(800),
		BalanceDueOnDelivery: fp(2000),
	}
}

func TestLoadRepo_Create(t *testing.T) {
	r := repo.NewLoadRepo(newTestTx(t))
	ctx := context.Background()

	input := loadFixture()
	got, err := r.Create(ctx, input)

	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, got.ID)
	assert.Nil(t, got.TripID, "new loads start unassigned")
	assert.Equal(t, input.CustomerName, got.CustomerName)
	assert.Equal(t, domain.TrustCODRequired, got.TrustLevel)
	require.NotNil(t, got.RFDDate)
	assert.True(t, got.RFDDate.Equal(*input.RFDDate))
	require.NotNil(t, got.ContractAccessorials.Shuttle)
	assert.InDelta(t, 150.0, *got.ContractAccessorials.Shuttle, 1e-9)
	assert.Nil(t, got.ContractAccessorials.LongCarry, "unset accessorials stay NULL")
	assert.Nil(t, got.DeliveredAt)
}

func TestLoadRepo_AssignToTrip_AppendsSequence(t *testing.T) {
	tx := newTestTx(t)
	trips := repo.NewTripRepo(tx)
	loads := repo.NewLoadRepo(tx)
	ctx := context.Background()

	trip, err := trips.Create(ctx, tripFixture())
	require.NoError(t, err)

	first, err := loads.Create(ctx, loadFixture())
	require.NoError(t, err)
	second, err := loads.Create(ctx, loadFixture())
	require.NoError(t, err)

	a, err := loads.AssignToTrip(ctx, first.ID, trip.ID, domain.RolePrimary)
	require.NoError(t, err)
	b, err := loads.AssignToTrip(ctx, second.ID, trip.ID, domain.RoleBackhaul)
	require.NoError(t, err)

	assert.Equal(t, 0, a.SequenceIndex)
	assert.Equal(t, 1, b.SequenceIndex, "second attach appends at the end")
	require.NotNil(t, b.TripID)
	assert.Equal(t, trip.ID, *b.TripID)
	assert.Equal(t, domain.RoleBackhaul, b.Role)
}

func TestLoadRepo_AssignToTrip_MovesBetweenTrips(t *testing.T) {
	tx := newTestTx(t)
	trips := repo.NewTripRepo(tx)
	loads := repo.NewLoadRepo(tx)
	ctx := context.Background()

	tripA, err := trips.Create(ctx, tripFixture())
	require.NoError(t, err)
	tripB, err := trips.Create(ctx, tripFixture())
	require.NoError(t, err)

	load, err := loads.Create(ctx, loadFixture())
	require.NoError(t, err)

	_, err = loads.AssignToTrip(ctx, load.ID, tripA.ID, domain.RolePrimary)
	require.NoError(t, err)
	moved, err := loads.AssignToTrip(ctx, load.ID, tripB.ID, domain.RolePrimary)
	require.NoError(t, err)

	require.NotNil(t, moved.TripID)
	assert.Equal(t, tripB.ID, *moved.TripID, "last assignment wins")

	remaining, err := loads.ListByTripID(ctx, tripA.ID)
	require.NoError(t, err)
	assert.Empty(t, remaining, "old trip no longer owns the load")
}

func TestLoadRepo_DetachAndReorder(t *testing.T) {
	tx := newTestTx(t)
	trips := repo.NewTripRepo(tx)
	loads := repo.NewLoadRepo(tx)
	ctx := context.Background()

	trip, err := trips.Create(ctx, tripFixture())
	require.NoError(t, err)

	var ids []uuid.UUID
	for i := 0; i < 3; i++ {
		l, err := loads.Create(ctx, loadFixture())
		require.NoError(t, err)
		_, err = loads.AssignToTrip(ctx, l.ID, trip.ID, domain.RolePrimary)
		require.NoError(t, err)
		ids = append(ids, l.ID)
	}

	// Reverse the route order.
	reversed := []uuid.UUID{ids[2], ids[1], ids[0]}
	require.NoError(t, loads.Reorder(ctx, trip.ID, reversed))

	ordered, err := loads.ListByTripID(ctx, trip.ID)
	require.NoError(t, err)
	require.Len(t, ordered, 3)
	assert.Equal(t, ids[2], ordered[0].ID)
	assert.Equal(t, ids[0], ordered[2].ID)

	// Detach the middle load.
	require.NoError(t, loads.Detach(ctx, ids[1]))

	after, err := loads.ListByTripID(ctx, trip.ID)
	require.NoError(t, err)
	assert.Len(t, after, 2)

	detached, err := loads.GetByID(ctx, ids[1])
	require.NoError(t, err)
	assert.Nil(t, detached.TripID)
}

func TestLoadRepo_List_UnassignedFilter(t *testing.T) {
	tx := newTestTx(t)
	trips := repo.NewTripRepo(tx)
	loads := repo.NewLoadRepo(tx)
	ctx := context.Background()

	trip, err := trips.Create(ctx, tripFixture())
	require.NoError(t, err)

	assigned, err := loads.Create(ctx, loadFixture())
	require.NoError(t, err)
	_, err = loads.AssignToTrip(ctx, assigned.ID, trip.ID, domain.RolePrimary)
	require.NoError(t, err)

	unassigned, err := loads.Create(ctx, loadFixture())
	require.NoError(t, err)

	page, _, err := loads.List(ctx, domain.PaginationParams{Page: 1, Limit: 100}, true)
	require.NoError(t, err)

	var ids []uuid.UUID
	for _, l := range page {
		ids = append(ids, l.ID)
	}
	assert.Contains(t, ids, unassigned.ID)
	assert.NotContains(t, ids, assigned.ID)
}

func TestLoadRepo_SetDelivered(t *testing.T) {
	r := repo.NewLoadRepo(newTestTx(t))
	ctx := context.Background()

	created, err := r.Create(ctx, loadFixture())
	require.NoError(t, err)

	at := time.Date(2025, 3, 12, 16, 45, 0, 0, time.UTC)
	require.NoError(t, r.SetDelivered(ctx, created.ID, at))

	got, err := r.GetByID(ctx, created.ID)
	require.NoError(t, err)
	require.NotNil(t, got.DeliveredAt)
	assert.True(t, got.DeliveredAt.Equal(at))
}

func TestLoadRepo_Delete_NotFound(t *testing.T) {
	r := repo.NewLoadRepo(newTestTx(t))

	err := r.Delete(context.Background(), uuid.New())

	assert.ErrorIs(t, err, domain.ErrNotFound)
}
