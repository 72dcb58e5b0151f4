package service_test

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/yonigrin7234/moveboss-pro-sub007/internal/domain"
	"github.com/yonigrin7234/moveboss-pro-sub007/internal/repo"
)

// Hand-written test doubles for the repo interfaces, shared by all service
// tests in this package. Each method delegates to an optional func field so
// tests only stub what they exercise.

// ---- TripRepo --------------------------------------------------------------

type mockTripRepo struct {
	create        func(ctx context.Context, trip domain.Trip) (domain.Trip, error)
	getByID       func(ctx context.Context, id uuid.UUID) (domain.Trip, error)
	list          func(ctx context.Context, p domain.PaginationParams) ([]domain.Trip, int64, error)
	update        func(ctx context.Context, trip domain.Trip) (domain.Trip, error)
	updateStatus  func(ctx context.Context, id uuid.UUID, status domain.TripStatus) error
	updateRollups func(ctx context.Context, id uuid.UUID, r repo.TripRollups, status domain.TripStatus) error
	delete        func(ctx context.Context, id uuid.UUID) error
}

func (m *mockTripRepo) Create(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	return m.create(ctx, trip)
}
func (m *mockTripRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Trip, error) {
	return m.getByID(ctx, id)
}
func (m *mockTripRepo) List(ctx context.Context, p domain.PaginationParams) ([]domain.Trip, int64, error) {
	return m.list(ctx, p)
}
func (m *mockTripRepo) Update(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	return m.update(ctx, trip)
}
func (m *mockTripRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.TripStatus) error {
	return m.updateStatus(ctx, id, status)
}
func (m *mockTripRepo) UpdateRollups(ctx context.Context, id uuid.UUID, r repo.TripRollups, status domain.TripStatus) error {
	return m.updateRollups(ctx, id, r, status)
}
func (m *mockTripRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return m.delete(ctx, id)
}

var _ repo.TripRepo = (*mockTripRepo)(nil)

// ---- LoadRepo --------------------------------------------------------------

type mockLoadRepo struct {
	create       func(ctx context.Context, load domain.Load) (domain.Load, error)
	getByID      func(ctx context.Context, id uuid.UUID) (domain.Load, error)
	list         func(ctx context.Context, p domain.PaginationParams, unassignedOnly bool) ([]domain.Load, int64, error)
	listAll      func(ctx context.Context) ([]domain.Load, error)
	listByTripID func(ctx context.Context, tripID uuid.UUID) ([]domain.Load, error)
	update       func(ctx context.Context, load domain.Load) (domain.Load, error)
	assignToTrip func(ctx context.Context, loadID, tripID uuid.UUID, role domain.LoadRole) (domain.Load, error)
	detach       func(ctx context.Context, loadID uuid.UUID) error
	reorder      func(ctx context.Context, tripID uuid.UUID, orderedIDs []uuid.UUID) error
	setDelivered func(ctx context.Context, loadID uuid.UUID, at time.Time) error
	delete       func(ctx context.Context, id uuid.UUID) error
}

func (m *mockLoadRepo) Create(ctx context.Context, load domain.Load) (domain.Load, error) {
	return m.create(ctx, load)
}
func (m *mockLoadRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Load, error) {
	return m.getByID(ctx, id)
}
func (m *mockLoadRepo) List(ctx context.Context, p domain.PaginationParams, unassignedOnly bool) ([]domain.Load, int64, error) {
	return m.list(ctx, p, unassignedOnly)
}
func (m *mockLoadRepo) ListAll(ctx context.Context) ([]domain.Load, error) {
	return m.listAll(ctx)
}
func (m *mockLoadRepo) ListByTripID(ctx context.Context, tripID uuid.UUID) ([]domain.Load, error) {
	return m.listByTripID(ctx, tripID)
}
func (m *mockLoadRepo) Update(ctx context.Context, load domain.Load) (domain.Load, error) {
	return m.update(ctx, load)
}
func (m *mockLoadRepo) AssignToTrip(ctx context.Context, loadID, tripID uuid.UUID, role domain.LoadRole) (domain.Load, error) {
	return m.assignToTrip(ctx, loadID, tripID, role)
}
func (m *mockLoadRepo) Detach(ctx context.Context, loadID uuid.UUID) error {
	return m.detach(ctx, loadID)
}
func (m *mockLoadRepo) Reorder(ctx context.Context, tripID uuid.UUID, orderedIDs []uuid.UUID) error {
	return m.reorder(ctx, tripID, orderedIDs)
}
func (m *mockLoadRepo) SetDelivered(ctx context.Context, loadID uuid.UUID, at time.Time) error {
	return m.setDelivered(ctx, loadID, at)
}
func (m *mockLoadRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return m.delete(ctx, id)
}

var _ repo.LoadRepo = (*mockLoadRepo)(nil)

// ---- ExpenseRepo -----------------------------------------------------------

type mockExpenseRepo struct {
	create       func(ctx context.Context, expense domain.Expense) (domain.Expense, error)
	getByID      func(ctx context.Context, id uuid.UUID) (domain.Expense, error)
	listByTripID func(ctx context.Context, tripID uuid.UUID) ([]domain.Expense, error)
	delete       func(ctx context.Context, id uuid.UUID) error
}

func (m *mockExpenseRepo) Create(ctx context.Context, expense domain.Expense) (domain.Expense, error) {
	return m.create(ctx, expense)
}
func (m *mockExpenseRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Expense, error) {
	return m.getByID(ctx, id)
}
func (m *mockExpenseRepo) ListByTripID(ctx context.Context, tripID uuid.UUID) ([]domain.Expense, error) {
	return m.listByTripID(ctx, tripID)
}
func (m *mockExpenseRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return m.delete(ctx, id)
}

var _ repo.ExpenseRepo = (*mockExpenseRepo)(nil)
