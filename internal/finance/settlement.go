package finance

import (
	"github.com/shopspring/decimal"

	"github.com/yonigrin7234/moveboss-pro-sub007/internal/domain"
)

// Settlement is the trip-level rollup of load revenue, driver pay, and
// expenses. It is cheap to recompute and idempotent: running the aggregator
// twice over the same inputs yields identical output.
//
// Provisional is set by the caller when the trip has not reached settled
// status yet — the numbers are for live display and must not be persisted as
// final.
type Settlement struct {
	RevenueTotal       float64 `json:"revenue_total"`
	DriverPayTotal     float64 `json:"driver_pay_total"`
	FuelTotal          float64 `json:"fuel_total"`
	TollsTotal         float64 `json:"tolls_total"`
	OtherExpensesTotal float64 `json:"other_expenses_total"`
	Profit             float64 `json:"profit"`

	// DriverPayLogged totals expenses recorded under the driver_pay
	// category. The computed breakdown above is the authoritative pay
	// figure; logged driver-pay cash is audit trail and is deliberately
	// excluded from the profit formula to avoid subtracting the same money
	// twice.
	DriverPayLogged float64 `json:"driver_pay_logged"`

	LoadCount    int  `json:"load_count"`
	ExpenseCount int  `json:"expense_count"`
	Provisional  bool `json:"provisional"`

	Loads     []LoadRevenue      `json:"loads"`
	DriverPay DriverPayBreakdown `json:"driver_pay"`
}

// ComputeSettlement rolls up all attached loads, the driver-pay breakdown,
// and all trip expenses into trip-level revenue, expenses, and profit.
func ComputeSettlement(loads []domain.Load, expenses []domain.Expense, pay DriverPayBreakdown) Settlement {
	s := Settlement{
		DriverPayTotal: pay.Total,
		DriverPay:      pay,
		LoadCount:      len(loads),
		ExpenseCount:   len(expenses),
		Loads:          make([]LoadRevenue, 0, len(loads)),
	}

	revenue := decimal.Zero
	for _, l := range loads {
		lr := ComputeLoadRevenue(l)
		s.Loads = append(s.Loads, lr)
		revenue = revenue.Add(dec(lr.TotalRevenue))
	}
	s.RevenueTotal = cents(revenue)

	fuel, tolls, other, logged := decimal.Zero, decimal.Zero, decimal.Zero, decimal.Zero
	for _, e := range expenses {
		switch e.Category {
		case domain.ExpenseFuel:
			fuel = fuel.Add(dec(e.Amount))
		case domain.ExpenseTolls:
			tolls = tolls.Add(dec(e.Amount))
		case domain.ExpenseDriverPay:
			logged = logged.Add(dec(e.Amount))
		default:
			other = other.Add(dec(e.Amount))
		}
	}
	s.FuelTotal = cents(fuel)
	s.TollsTotal = cents(tolls)
	s.OtherExpensesTotal = cents(other)
	s.DriverPayLogged = cents(logged)

	s.Profit = cents(dec(s.RevenueTotal).
		Sub(dec(s.DriverPayTotal)).
		Sub(dec(s.FuelTotal)).
		Sub(dec(s.TollsTotal)).
		Sub(dec(s.OtherExpensesTotal)))

	return s
}

// TotalCuft sums actual cubic feet across loads, for the pay calculator.
func TotalCuft(loads []domain.Load) float64 {
	total := decimal.Zero
	for _, l := range loads {
		total = total.Add(dec(orZero(l.ActualCuftLoaded)))
	}
	f, _ := total.Float64()
	return f
}

// RevenueTotal sums total revenue across loads, for percent-of-revenue pay.
func RevenueTotal(loads []domain.Load) float64 {
	total := decimal.Zero
	for _, l := range loads {
		total = total.Add(dec(ComputeLoadRevenue(l).TotalRevenue))
	}
	return cents(total)
}
