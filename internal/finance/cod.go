package finance

import (
	"github.com/yonigrin7234/moveboss-pro-sub007/internal/domain"
)

// CODDecision says whether a cash-on-delivery collection is required before
// the driver releases a load, and for how much.
//
// CarrierRate is what the carrier is owed for the job (cuft × rate plus
// contract accessorials) — distinct from the load's customer-facing revenue.
// The decision only gates delivery; the delivery workflow is responsible for
// demanding the confirmation flag when Required is true.
type CODDecision struct {
	CarrierRate     float64 `json:"carrier_rate"`
	CustomerBalance float64 `json:"customer_balance"`
	Shortfall       float64 `json:"shortfall"`
	Required        bool    `json:"required"`
	Amount          float64 `json:"amount"`
}

// EvaluateCOD decides whether delivering load demands a COD collection.
//
// trust defaults to cod_required when absent or unrecognized — fail-safe
// toward requiring payment. fallbackRate is the company-level default rate
// per cuft, used only when the load carries no contract rate; pass nil when
// no default exists.
//
// A trusted counterparty never requires COD. An untrusted one requires COD
// only when the customer's own balance due at the door does not cover what
// the carrier is owed.
func EvaluateCOD(trust domain.TrustLevel, load domain.Load, fallbackRate *float64) CODDecision {
	rate := load.ContractRatePerCuft
	if rate == nil {
		rate = fallbackRate
	}

	carrierRate := cents(dec(mulCents(orZero(load.ActualCuftLoaded), orZero(rate))).
		Add(dec(sumAccessorials(load.ContractAccessorials))))

	d := CODDecision{
		CarrierRate:     carrierRate,
		CustomerBalance: orZero(load.BalanceDueOnDelivery),
	}

	if shortfall := cents(dec(d.CarrierRate).Sub(dec(d.CustomerBalance))); shortfall > 0 {
		d.Shortfall = shortfall
	}

	if trust != domain.TrustTrusted && d.Shortfall > 0 {
		d.Required = true
		d.Amount = d.Shortfall
	}

	return d
}
