package domain

import (
	"time"

	"github.com/google/uuid"
)

// ExpenseCategory buckets an expense for the settlement rollup.
type ExpenseCategory string

const (
	ExpenseFuel        ExpenseCategory = "fuel"
	ExpenseTolls       ExpenseCategory = "tolls"
	ExpenseDriverPay   ExpenseCategory = "driver_pay"
	ExpenseLumper      ExpenseCategory = "lumper"
	ExpenseParking     ExpenseCategory = "parking"
	ExpenseMaintenance ExpenseCategory = "maintenance"
	ExpenseOther       ExpenseCategory = "other"
)

// Valid reports whether c is one of the known expense categories.
func (c ExpenseCategory) Valid() bool {
	switch c {
	case ExpenseFuel, ExpenseTolls, ExpenseDriverPay, ExpenseLumper,
		ExpenseParking, ExpenseMaintenance, ExpenseOther:
		return true
	}
	return false
}

// Expense is a cost incurred on a trip. Expenses are immutable facts once
// created; the only mutation allowed is deletion.
//
// Expenses in the driver_pay category are an audit trail of cash actually
// handed to the driver. The settlement aggregator reports them separately and
// never counts them against profit — the computed pay breakdown is the
// authoritative driver-pay figure.
type Expense struct {
	ID         uuid.UUID       `json:"id"`
	TripID     uuid.UUID       `json:"trip_id"`
	Category   ExpenseCategory `json:"category"`
	Amount     float64         `json:"amount"`
	IncurredAt time.Time       `json:"incurred_at"`
	ReceiptRef string          `json:"receipt_ref,omitempty"`
	CreatedAt  time.Time       `json:"created_at"`
}
