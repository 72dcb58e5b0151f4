package finance

import (
	"fmt"
	"time"

	"github.com/yonigrin7234/moveboss-pro-sub007/internal/domain"
)

// TripFacts are the measured quantities a driver-pay calculation reads.
// The caller assembles them from the trip and its attached loads.
type TripFacts struct {
	// ActualMiles is the odometer figure; TotalMiles is the route estimate.
	// The calculator prefers ActualMiles and records when it had to fall
	// back to the estimate.
	ActualMiles *float64
	TotalMiles  *float64

	// TotalCuft is the sum of actual cubic feet across attached loads.
	TotalCuft float64

	// RevenueTotal is the trip's load revenue, used by percent_of_revenue.
	RevenueTotal float64

	// StartDate/EndDate bound the trip for flat_daily_rate. A nil EndDate
	// counts as a one-day trip.
	StartDate time.Time
	EndDate   *time.Time
}

// PayComponent is one quantity × rate line of a pay breakdown.
type PayComponent struct {
	Quantity float64 `json:"quantity"`
	Rate     float64 `json:"rate"`
	Amount   float64 `json:"amount"`
}

// DriverPayBreakdown records which inputs a pay calculation used and the
// resulting component(s). Exactly the components relevant to Mode are
// populated; the rest stay nil, so an invalid mode/field combination is not
// representable in output.
//
// The breakdown is regenerated on every settlement run and never hand-edited.
type DriverPayBreakdown struct {
	Mode domain.PayMode `json:"mode"`

	// MilesEstimated is true when ActualMiles was absent and the route
	// estimate was used instead. Downstream UI flags such pay as provisional.
	MilesEstimated bool `json:"miles_estimated,omitempty"`

	MilePay *PayComponent `json:"mile_pay,omitempty"`
	CuftPay *PayComponent `json:"cuft_pay,omitempty"`
	BasePay *PayComponent `json:"base_pay,omitempty"`

	Total float64 `json:"total"`
}

// ComputeDriverPay produces the pay breakdown for one trip under cfg.
// Missing rates and missing facts contribute zero; the only error is
// domain.ErrInvalidConfig for an unknown pay mode.
func ComputeDriverPay(cfg domain.PayConfig, facts TripFacts) (DriverPayBreakdown, error) {
	b := DriverPayBreakdown{Mode: cfg.Mode}

	miles, estimated := milesUsed(facts)

	switch cfg.Mode {
	case domain.PayPerMile:
		b.MilesEstimated = estimated
		b.MilePay = component(miles, orZero(cfg.RatePerMile))
		b.Total = b.MilePay.Amount

	case domain.PayPerCuft:
		b.CuftPay = component(facts.TotalCuft, orZero(cfg.RatePerCuft))
		b.Total = b.CuftPay.Amount

	case domain.PayPerMileAndCuft:
		// Both components are computed and reported independently.
		b.MilesEstimated = estimated
		b.MilePay = component(miles, orZero(cfg.RatePerMile))
		b.CuftPay = component(facts.TotalCuft, orZero(cfg.RatePerCuft))
		b.Total = cents(dec(b.MilePay.Amount).Add(dec(b.CuftPay.Amount)))

	case domain.PayPercentOfRevenue:
		pct := orZero(cfg.PercentOfRevenue)
		amount := cents(dec(facts.RevenueTotal).Mul(dec(pct)).Div(dec(100)))
		b.BasePay = &PayComponent{Quantity: facts.RevenueTotal, Rate: pct, Amount: amount}
		b.Total = amount

	case domain.PayFlatDailyRate:
		days := tripDays(facts.StartDate, facts.EndDate)
		b.BasePay = component(float64(days), orZero(cfg.FlatDailyRate))
		b.Total = b.BasePay.Amount

	default:
		return DriverPayBreakdown{}, fmt.Errorf("%w: unknown pay mode %q", domain.ErrInvalidConfig, cfg.Mode)
	}

	return b, nil
}

// component builds a quantity × rate pay line rounded to cents.
func component(qty, rate float64) *PayComponent {
	return &PayComponent{Quantity: qty, Rate: rate, Amount: mulCents(qty, rate)}
}

// milesUsed picks actual miles when recorded, falling back to the estimate.
// The second return value is true when the estimate was used.
func milesUsed(facts TripFacts) (float64, bool) {
	if facts.ActualMiles != nil {
		return *facts.ActualMiles, false
	}
	return orZero(facts.TotalMiles), true
}

// tripDays returns the inclusive day span of the trip, never less than 1.
// A same-day trip pays one day; a nil end date counts the trip as one day
// rather than reading a clock, keeping the calculator pure.
func tripDays(start time.Time, end *time.Time) int {
	if end == nil {
		return 1
	}
	s := start.Truncate(24 * time.Hour)
	e := end.Truncate(24 * time.Hour)
	days := int(e.Sub(s).Hours()/24) + 1
	if days < 1 {
		return 1
	}
	return days
}
