package finance_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yonigrin7234/moveboss-pro-sub007/internal/domain"
	"github.com/yonigrin7234/moveboss-pro-sub007/internal/finance"
)

// codLoad builds the reference COD scenario: carrier owed 2650, customer
// bringing 2000 to the door.
func codLoad() domain.Load {
	return domain.Load{
		ActualCuftLoaded:    fp(1000),
		ContractRatePerCuft: fp(2.50),
		ContractAccessorials: domain.AccessorialSet{
			Shuttle: fp(100),
			Stairs:  fp(50),
		},
		BalanceDueOnDelivery: fp(2000),
	}
}

func TestEvaluateCOD_UntrustedWithShortfall(t *testing.T) {
	d := finance.EvaluateCOD(domain.TrustCODRequired, codLoad(), nil)

	assert.Equal(t, 2650.00, d.CarrierRate)
	assert.Equal(t, 2000.00, d.CustomerBalance)
	assert.Equal(t, 650.00, d.Shortfall)
	assert.True(t, d.Required)
	assert.Equal(t, 650.00, d.Amount)
}

func TestEvaluateCOD_TrustedNeverRequiresCOD(t *testing.T) {
	d := finance.EvaluateCOD(domain.TrustTrusted, codLoad(), nil)

	assert.Equal(t, 650.00, d.Shortfall, "shortfall is still reported for visibility")
	assert.False(t, d.Required)
	assert.Equal(t, 0.00, d.Amount)
}

func TestEvaluateCOD_BalanceCoversCarrierRate(t *testing.T) {
	load := codLoad()
	load.BalanceDueOnDelivery = fp(3000)

	d := finance.EvaluateCOD(domain.TrustCODRequired, load, nil)

	assert.Equal(t, 0.00, d.Shortfall)
	assert.False(t, d.Required, "no COD needed when the customer's balance covers the carrier")
}

func TestEvaluateCOD_AbsentTrustLevelFailsSafe(t *testing.T) {
	// An empty trust level must behave like cod_required, never like trusted.
	d := finance.EvaluateCOD("", codLoad(), nil)

	assert.True(t, d.Required)
	assert.Equal(t, 650.00, d.Amount)
}

func TestEvaluateCOD_FallbackRateUsedWhenContractRateMissing(t *testing.T) {
	load := codLoad()
	load.ContractRatePerCuft = nil

	d := finance.EvaluateCOD(domain.TrustCODRequired, load, fp(2.00))

	// 1000 × 2.00 fallback + 150 accessorials.
	assert.Equal(t, 2150.00, d.CarrierRate)
	assert.True(t, d.Required)
	assert.Equal(t, 150.00, d.Amount)
}

func TestEvaluateCOD_ContractRateWinsOverFallback(t *testing.T) {
	d := finance.EvaluateCOD(domain.TrustCODRequired, codLoad(), fp(99))

	assert.Equal(t, 2650.00, d.CarrierRate)
}

func TestEvaluateCOD_NoRatesAtAll(t *testing.T) {
	load := codLoad()
	load.ContractRatePerCuft = nil

	d := finance.EvaluateCOD(domain.TrustCODRequired, load, nil)

	// Only the contract accessorials can create a shortfall.
	assert.Equal(t, 150.00, d.CarrierRate)
	assert.False(t, d.Required, "150 owed is covered by the 2000 balance")
}

func TestEvaluateCOD_EmptyLoad(t *testing.T) {
	d := finance.EvaluateCOD(domain.TrustCODRequired, domain.Load{}, nil)

	assert.Equal(t, 0.00, d.Shortfall)
	assert.False(t, d.Required)
}
