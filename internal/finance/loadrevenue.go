package finance

import (
	"github.com/yonigrin7234/moveboss-pro-sub007/internal/domain"
)

// LoadRevenue is the revenue picture for a single load: what the job is
// worth in total and how that splits between money already collected at the
// door and money the company still owes the carrier.
type LoadRevenue struct {
	BaseRevenue              float64 `json:"base_revenue"`
	ContractAccessorialTotal float64 `json:"contract_accessorial_total"`
	ExtraAccessorialTotal    float64 `json:"extra_accessorial_total"`
	StorageTotal             float64 `json:"storage_total"`
	TotalRevenue             float64 `json:"total_revenue"`

	CollectedOnDelivery float64 `json:"collected_on_delivery"`
	// PaidDirectlyToCompany is a display/audit figure only. It is never
	// subtracted from CompanyOwes: money wired straight to the company
	// still has to be reconciled back to the carrier.
	PaidDirectlyToCompany float64 `json:"paid_directly_to_company"`
	CompanyOwes           float64 `json:"company_owes"`
}

// ComputeLoadRevenue prices a load from its contract terms and the actuals
// captured at delivery. Every input is optional; a load computed mid-entry
// yields partial or zero subtotals, never an error.
func ComputeLoadRevenue(load domain.Load) LoadRevenue {
	rev := LoadRevenue{
		BaseRevenue:              mulCents(orZero(load.ActualCuftLoaded), orZero(load.ContractRatePerCuft)),
		ContractAccessorialTotal: sumAccessorials(load.ContractAccessorials),
		ExtraAccessorialTotal:    sumAccessorials(load.ExtraAccessorials),
		StorageTotal:             storageTotal(load),
		CollectedOnDelivery:      orZero(load.AmountCollectedOnDelivery),
		PaidDirectlyToCompany:    orZero(load.AmountPaidDirectlyToCompany),
	}

	rev.TotalRevenue = cents(dec(rev.BaseRevenue).
		Add(dec(rev.ContractAccessorialTotal)).
		Add(dec(rev.ExtraAccessorialTotal)).
		Add(dec(rev.StorageTotal)))

	rev.CompanyOwes = cents(dec(rev.TotalRevenue).Sub(dec(rev.CollectedOnDelivery)))

	return rev
}

// storageTotal prices storage as move-in fee plus daily fee × days billed.
func storageTotal(load domain.Load) float64 {
	daily := dec(orZero(load.StorageDailyFee)).Mul(dec(orZero(load.StorageDaysBilled)))
	return cents(dec(orZero(load.StorageMoveInFee)).Add(daily))
}
