// Package finance implements the trip financial reconciliation engine:
// driver pay, per-load revenue and accessorials, COD requirements, and the
// trip-level settlement rollup.
//
// Every function here is a pure computation over already-fetched records.
// Missing numeric facts contribute zero — trips and loads are routinely
// computed mid-data-entry and must still yield a best-effort number. The only
// error any calculator returns is domain.ErrInvalidConfig, for configuration
// that is broken rather than merely incomplete.
//
// Arithmetic runs on shopspring/decimal and results are rounded to cents, so
// rate × quantity products come out exact (500 × 0.55 is 275.00, not
// 275.00000000000006).
package finance

import (
	"github.com/shopspring/decimal"

	"github.com/yonigrin7234/moveboss-pro-sub007/internal/domain"
)

// orZero dereferences a nullable money/quantity field, treating nil as zero.
func orZero(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}

// dec converts a float fact into a decimal for exact arithmetic.
func dec(v float64) decimal.Decimal {
	return decimal.NewFromFloat(v)
}

// cents rounds d to two decimal places and returns it as a float64.
// All engine outputs pass through here so stored and rendered amounts are
// always whole cents.
func cents(d decimal.Decimal) float64 {
	f, _ := d.Round(2).Float64()
	return f
}

// mulCents multiplies a quantity by a rate and rounds the product to cents.
func mulCents(qty, rate float64) float64 {
	return cents(dec(qty).Mul(dec(rate)))
}

// sumAccessorials totals the five named charges in a set, nil-safe.
func sumAccessorials(a domain.AccessorialSet) float64 {
	total := dec(orZero(a.Shuttle)).
		Add(dec(orZero(a.Stairs))).
		Add(dec(orZero(a.LongCarry))).
		Add(dec(orZero(a.Bulky))).
		Add(dec(orZero(a.Other)))
	return cents(total)
}
