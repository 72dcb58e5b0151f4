package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/yonigrin7234/moveboss-pro-sub007/internal/domain"
	"github.com/yonigrin7234/moveboss-pro-sub007/internal/repo"
)

// ExpenseService implements business logic for Expense operations.
// It holds the trips repo because recording an expense requires verifying the
// parent trip exists and is still open.
type ExpenseService struct {
	trips    repo.TripRepo
	expenses repo.ExpenseRepo
}

// NewExpenseService constructs an ExpenseService backed by the provided repos.
func NewExpenseService(trips repo.TripRepo, expenses repo.ExpenseRepo) *ExpenseService {
	return &ExpenseService{trips: trips, expenses: expenses}
}

// Create validates the expense, verifies the parent trip exists and is not
// terminal, then persists. Expenses are immutable once created.
func (s *ExpenseService) Create(ctx context.Context, expense domain.Expense) (domain.Expense, error) {
	if err := validateExpense(expense); err != nil {
		return domain.Expense{}, err
	}

	trip, err := s.trips.GetByID(ctx, expense.TripID)
	if err != nil {
		return domain.Expense{}, fmt.Errorf("service.ExpenseService.Create: %w", err)
	}
	if trip.Status == domain.TripCancelled {
		return domain.Expense{}, fmt.Errorf("%w: cannot record expenses on a cancelled trip", domain.ErrValidation)
	}

	result, err := s.expenses.Create(ctx, expense)
	if err != nil {
		return domain.Expense{}, fmt.Errorf("service.ExpenseService.Create: %w", err)
	}
	return result, nil
}

// ListByTripID returns all expenses for a trip ordered by incurred_at.
// Always returns a non-nil slice so callers can safely range over it.
func (s *ExpenseService) ListByTripID(ctx context.Context, tripID uuid.UUID) ([]domain.Expense, error) {
	expenses, err := s.expenses.ListByTripID(ctx, tripID)
	if err != nil {
		return nil, fmt.Errorf("service.ExpenseService.ListByTripID: %w", err)
	}
	if expenses == nil {
		return []domain.Expense{}, nil
	}
	return expenses, nil
}

// Delete removes an expense, scoped to the given trip.
func (s *ExpenseService) Delete(ctx context.Context, tripID, expenseID uuid.UUID) error {
	expense, err := s.expenses.GetByID(ctx, expenseID)
	if err != nil {
		return fmt.Errorf("service.ExpenseService.Delete: %w", err)
	}
	if expense.TripID != tripID {
		return fmt.Errorf("service.ExpenseService.Delete: %w", domain.ErrNotFound)
	}

	if err := s.expenses.Delete(ctx, expenseID); err != nil {
		return fmt.Errorf("service.ExpenseService.Delete: %w", err)
	}
	return nil
}

// validateExpense enforces the immutable-fact rules.
//   - Category must be one of the known categories.
//   - Amount must be positive.
//   - IncurredAt is required.
func validateExpense(expense domain.Expense) error {
	if !expense.Category.Valid() {
		return fmt.Errorf("%w: unknown expense category %q", domain.ErrValidation, expense.Category)
	}
	if expense.Amount <= 0 {
		return fmt.Errorf("%w: amount must be positive", domain.ErrValidation)
	}
	if expense.IncurredAt.IsZero() {
		return fmt.Errorf("%w: incurred_at is required", domain.ErrValidation)
	}
	return nil
}
