package handler_test

import (
	"context"

	"github.com/google/uuid"

	"github.com/yonigrin7234/moveboss-pro-sub007/internal/domain"
	"github.com/yonigrin7234/moveboss-pro-sub007/internal/finance"
	"github.com/yonigrin7234/moveboss-pro-sub007/internal/handler"
	"github.com/yonigrin7234/moveboss-pro-sub007/internal/service"
)

// Func-field mocks for the handler's service interfaces.

type mockTripServicer struct {
	create       func(ctx context.Context, trip domain.Trip) (domain.Trip, error)
	getByID      func(ctx context.Context, id uuid.UUID) (service.TripDetail, error)
	list         func(ctx context.Context, p domain.PaginationParams) ([]domain.Trip, int64, error)
	update       func(ctx context.Context, trip domain.Trip) (domain.Trip, error)
	delete       func(ctx context.Context, id uuid.UUID) error
	transition   func(ctx context.Context, id uuid.UUID, next domain.TripStatus) (domain.Trip, error)
	cancel       func(ctx context.Context, id uuid.UUID) (domain.Trip, error)
	attachLoad   func(ctx context.Context, tripID, loadID uuid.UUID, role domain.LoadRole) (domain.Load, error)
	detachLoad   func(ctx context.Context, tripID, loadID uuid.UUID) error
	reorderLoads func(ctx context.Context, tripID uuid.UUID, orderedIDs []uuid.UUID) error
	preview      func(ctx context.Context, id uuid.UUID) (finance.Settlement, error)
	settle       func(ctx context.Context, id uuid.UUID) (finance.Settlement, error)
	recalculate  func(ctx context.Context, id uuid.UUID) (finance.Settlement, error)
}

func (m *mockTripServicer) Create(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	return m.create(ctx, trip)
}
func (m *mockTripServicer) GetByID(ctx context.Context, id uuid.UUID) (service.TripDetail, error) {
	return m.getByID(ctx, id)
}
func (m *mockTripServicer) List(ctx context.Context, p domain.PaginationParams) ([]domain.Trip, int64, error) {
	return m.list(ctx, p)
}
func (m *mockTripServicer) Update(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	return m.update(ctx, trip)
}
func (m *mockTripServicer) Delete(ctx context.Context, id uuid.UUID) error {
	return m.delete(ctx, id)
}
func (m *mockTripServicer) Transition(ctx context.Context, id uuid.UUID, next domain.TripStatus) (domain.Trip, error) {
	return m.transition(ctx, id, next)
}
func (m *mockTripServicer) Cancel(ctx context.Context, id uuid.UUID) (domain.Trip, error) {
	return m.cancel(ctx, id)
}
func (m *mockTripServicer) AttachLoad(ctx context.Context, tripID, loadID uuid.UUID, role domain.LoadRole) (domain.Load, error) {
	return m.attachLoad(ctx, tripID, loadID, role)
}
func (m *mockTripServicer) DetachLoad(ctx context.Context, tripID, loadID uuid.UUID) error {
	return m.detachLoad(ctx, tripID, loadID)
}
func (m *mockTripServicer) ReorderLoads(ctx context.Context, tripID uuid.UUID, orderedIDs []uuid.UUID) error {
	return m.reorderLoads(ctx, tripID, orderedIDs)
}
func (m *mockTripServicer) Preview(ctx context.Context, id uuid.UUID) (finance.Settlement, error) {
	return m.preview(ctx, id)
}
func (m *mockTripServicer) Settle(ctx context.Context, id uuid.UUID) (finance.Settlement, error) {
	return m.settle(ctx, id)
}
func (m *mockTripServicer) Recalculate(ctx context.Context, id uuid.UUID) (finance.Settlement, error) {
	return m.recalculate(ctx, id)
}

var _ handler.TripServicer = (*mockTripServicer)(nil)

type mockLoadServicer struct {
	create        func(ctx context.Context, load domain.Load) (domain.Load, error)
	getByID       func(ctx context.Context, id uuid.UUID) (service.LoadDetail, error)
	list          func(ctx context.Context, p domain.PaginationParams, unassignedOnly bool) ([]service.LoadDetail, int64, error)
	update        func(ctx context.Context, load domain.Load) (domain.Load, error)
	delete        func(ctx context.Context, id uuid.UUID) error
	markDelivered func(ctx context.Context, id uuid.UUID, codConfirmed bool) (service.LoadDetail, error)
}

func (m *mockLoadServicer) Create(ctx context.Context, load domain.Load) (domain.Load, error) {
	return m.create(ctx, load)
}
func (m *mockLoadServicer) GetByID(ctx context.Context, id uuid.UUID) (service.LoadDetail, error) {
	return m.getByID(ctx, id)
}
func (m *mockLoadServicer) List(ctx context.Context, p domain.PaginationParams, unassignedOnly bool) ([]service.LoadDetail, int64, error) {
	return m.list(ctx, p, unassignedOnly)
}
func (m *mockLoadServicer) Update(ctx context.Context, load domain.Load) (domain.Load, error) {
	return m.update(ctx, load)
}
func (m *mockLoadServicer) Delete(ctx context.Context, id uuid.UUID) error {
	return m.delete(ctx, id)
}
func (m *mockLoadServicer) MarkDelivered(ctx context.Context, id uuid.UUID, codConfirmed bool) (service.LoadDetail, error) {
	return m.markDelivered(ctx, id, codConfirmed)
}

var _ handler.LoadServicer = (*mockLoadServicer)(nil)

type mockExpenseServicer struct {
	create       func(ctx context.Context, expense domain.Expense) (domain.Expense, error)
	listByTripID func(ctx context.Context, tripID uuid.UUID) ([]domain.Expense, error)
	delete       func(ctx context.Context, tripID, expenseID uuid.UUID) error
}

func (m *mockExpenseServicer) Create(ctx context.Context, expense domain.Expense) (domain.Expense, error) {
	return m.create(ctx, expense)
}
func (m *mockExpenseServicer) ListByTripID(ctx context.Context, tripID uuid.UUID) ([]domain.Expense, error) {
	return m.listByTripID(ctx, tripID)
}
func (m *mockExpenseServicer) Delete(ctx context.Context, tripID, expenseID uuid.UUID) error {
	return m.delete(ctx, tripID, expenseID)
}

var _ handler.ExpenseServicer = (*mockExpenseServicer)(nil)

type mockDispatchServicer struct {
	worklist      func(ctx context.Context) ([]service.WorklistEntry, error)
	urgencyCounts func(ctx context.Context) (map[string]int, error)
}

func (m *mockDispatchServicer) Worklist(ctx context.Context) ([]service.WorklistEntry, error) {
	return m.worklist(ctx)
}
func (m *mockDispatchServicer) UrgencyCounts(ctx context.Context) (map[string]int, error) {
	return m.urgencyCounts(ctx)
}

var _ handler.DispatchServicer = (*mockDispatchServicer)(nil)
