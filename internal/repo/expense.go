package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/yonigrin7234/moveboss-pro-sub007/internal/domain"
)

// ExpenseRepo defines the persistence operations for Expenses.
// Expenses are immutable facts: there is no Update.
type ExpenseRepo interface {
	// Create inserts a new expense and returns the persisted record.
	Create(ctx context.Context, expense domain.Expense) (domain.Expense, error)

	// GetByID retrieves a single expense by its UUID primary key.
	// Returns domain.ErrNotFound if no expense with that ID exists.
	GetByID(ctx context.Context, id uuid.UUID) (domain.Expense, error)

	// ListByTripID returns all expenses for a trip ordered by incurred_at
	// ascending.
	ListByTripID(ctx context.Context, tripID uuid.UUID) ([]domain.Expense, error)

	// Delete removes an expense by ID.
	Delete(ctx context.Context, id uuid.UUID) error
}

// pgExpenseRepo is the Postgres implementation of ExpenseRepo.
type pgExpenseRepo struct {
	db db
}

// NewExpenseRepo constructs an ExpenseRepo backed by the provided db connection.
func NewExpenseRepo(db db) ExpenseRepo {
	return &pgExpenseRepo{db: db}
}

const expenseColumns = `id, trip_id, category, amount, incurred_at, receipt_ref, created_at`

// Create inserts a new expense row and returns the full persisted record.
func (r *pgExpenseRepo) Create(ctx context.Context, expense domain.Expense) (domain.Expense, error) {
	q := `
		INSERT INTO expenses (trip_id, category, amount, incurred_at, receipt_ref)
		VALUES (@trip_id, @category, @amount, @incurred_at, @receipt_ref)
		RETURNING ` + expenseColumns

	args := pgx.NamedArgs{
		"trip_id":     expense.TripID,
		"category":    expense.Category,
		"amount":      expense.Amount,
		"incurred_at": expense.IncurredAt,
		"receipt_ref": expense.ReceiptRef,
	}

	result, err := scanExpense(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return domain.Expense{}, fmt.Errorf("repo.ExpenseRepo.Create: %w", err)
	}
	return result, nil
}

// GetByID retrieves an expense by primary key.
func (r *pgExpenseRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Expense, error) {
	q := `SELECT ` + expenseColumns + ` FROM expenses WHERE id = @id`

	result, err := scanExpense(r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id}))
	if err != nil {
		return domain.Expense{}, fmt.Errorf("repo.ExpenseRepo.GetByID: %w", err)
	}
	return result, nil
}

// ListByTripID returns a trip's expenses in the order they were incurred.
func (r *pgExpenseRepo) ListByTripID(ctx context.Context, tripID uuid.UUID) ([]domain.Expense, error) {
	q := `SELECT ` + expenseColumns + `
		FROM expenses
		WHERE trip_id = @trip_id
		ORDER BY incurred_at ASC, created_at ASC`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"trip_id": tripID})
	if err != nil {
		return nil, fmt.Errorf("repo.ExpenseRepo.ListByTripID: %w", err)
	}
	defer rows.Close()

	var expenses []domain.Expense
	for rows.Next() {
		e, err := scanExpense(rows)
		if err != nil {
			return nil, fmt.Errorf("repo.ExpenseRepo.ListByTripID: scan: %w", err)
		}
		expenses = append(expenses, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.ExpenseRepo.ListByTripID: rows: %w", err)
	}

	return expenses, nil
}

// Delete removes an expense by primary key.
func (r *pgExpenseRepo) Delete(ctx context.Context, id uuid.UUID) error {
	const q = `DELETE FROM expenses WHERE id = @id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"id": id})
	if err != nil {
		return fmt.Errorf("repo.ExpenseRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.ExpenseRepo.Delete: %w", domain.ErrNotFound)
	}
	return nil
}

// scanExpense maps a single database row into a domain.Expense.
func scanExpense(s scanner) (domain.Expense, error) {
	var (
		e      domain.Expense
		id     pgtype.UUID
		tripID pgtype.UUID
	)

	err := s.Scan(&id, &tripID, &e.Category, &e.Amount, &e.IncurredAt, &e.ReceiptRef, &e.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Expense{}, domain.ErrNotFound
		}
		return domain.Expense{}, err
	}

	e.ID = uuid.UUID(id.Bytes)
	e.TripID = uuid.UUID(tripID.Bytes)

	return e, nil
}
