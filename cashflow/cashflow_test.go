package cashflow

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meenmo/irrbb/assumptions"
	"github.com/meenmo/irrbb/book"
)

func testAssumptions() assumptions.Assumptions {
	return assumptions.Assumptions{
		NMDMonthlyDecayCore:     0.05,
		NMDMonthlyDecayVolatile: 0.10,
		NMDBetaCore:             0.4,
		NMDBetaVolatile:         0.7,
		NMDRateFloor:            0.0,
		NMDPVHorizonMonths:      60,
		FallbackRefRate:         0.03,
	}
}

func TestAmortizing_MortgageConcrete(t *testing.T) {
	// 1200 at 6% over 12 months: first interest 6.00, payment ~103.11.
	cfs := Amortizing(1200, 0.06, 12)
	require.Len(t, cfs, 12)

	first := cfs[0]
	assert.Equal(t, 1, first.Month)
	assert.InDelta(t, 6.0, first.Interest, 1e-9)
	assert.InDelta(t, 103.11, first.Interest+first.Principal, 0.01)
	assert.InDelta(t, 97.11, first.Principal, 0.01)
}

func TestAmortizing_PrincipalSumsToNotional(t *testing.T) {
	cases := []struct {
		notional float64
		rate     float64
		months   int
	}{
		{1200, 0.06, 12},
		{500000, 0.045, 240},
		{100000, 0.05, 360},
		{1000, 0.0, 10},
	}
	for _, tc := range cases {
		cfs := Amortizing(tc.notional, tc.rate, tc.months)
		assert.InDelta(t, tc.notional, TotalPrincipal(cfs), 1e-6,
			"principal should repay the full notional for %v", tc)
	}
}

func TestAmortizing_ZeroRateStraightLine(t *testing.T) {
	cfs := Amortizing(1200, 0.0, 12)
	require.Len(t, cfs, 12)
	for _, cf := range cfs {
		assert.Equal(t, 0.0, cf.Interest)
		assert.InDelta(t, 100.0, cf.Principal, 1e-9)
	}
}

func TestAmortizing_NonPositiveMaturity(t *testing.T) {
	assert.Empty(t, Amortizing(1200, 0.06, 0))
	assert.Empty(t, Amortizing(1200, 0.06, -3))
}

func TestBullet_PrincipalAtMaturityOnly(t *testing.T) {
	cfs := Bullet(1000, 0.04, 12, 3)

	var principalMonths []int
	for _, cf := range cfs {
		if cf.Principal != 0 {
			principalMonths = append(principalMonths, cf.Month)
		}
	}
	require.Len(t, principalMonths, 1, "exactly one cashflow carries principal")
	assert.Equal(t, 12, principalMonths[0])
}

func TestBullet_QuarterlyInterest(t *testing.T) {
	cfs := Bullet(1000, 0.04, 12, 3)
	require.Len(t, cfs, 4)

	// 1000 * (0.04/12) * 3 each quarter.
	for i, cf := range cfs {
		assert.Equal(t, 3*(i+1), cf.Month)
		assert.InDelta(t, 10.0, cf.Interest, 1e-9)
	}
	assert.Equal(t, 1000.0, cfs[len(cfs)-1].Principal)
}

func TestBullet_FrequencyFlooredToOne(t *testing.T) {
	cfs := Bullet(1000, 0.06, 6, 0)
	require.Len(t, cfs, 6)
	for _, cf := range cfs {
		assert.InDelta(t, 5.0, cf.Interest, 1e-9)
	}
}

func TestBullet_OffCycleMaturityStillPaysPrincipal(t *testing.T) {
	// freq 5 over 12 months: interest at 5 and 10, bare principal at 12.
	cfs := Bullet(1000, 0.06, 12, 5)
	require.Len(t, cfs, 3)
	last := cfs[len(cfs)-1]
	assert.Equal(t, 12, last.Month)
	assert.Equal(t, 0.0, last.Interest)
	assert.Equal(t, 1000.0, last.Principal)
}

func TestBullet_ZeroRatePlaceholders(t *testing.T) {
	// Floating bullets pass rate 0; only the maturity row should remain.
	cfs := Bullet(1000, 0.0, 12, 3)
	require.Len(t, cfs, 1)
	assert.Equal(t, 12, cfs[0].Month)
	assert.Equal(t, 0.0, cfs[0].Interest)
}

func TestBullet_NonPositiveMaturity(t *testing.T) {
	assert.Empty(t, Bullet(1000, 0.04, 0, 3))
}

func TestNMDRunoff_Concrete(t *testing.T) {
	// 10000 at 5%/month: 500 then 475 (5% of the remaining 9500).
	cfs := NMDRunoff(10000, 0.05, 60)
	require.GreaterOrEqual(t, len(cfs), 2)
	assert.InDelta(t, 500.0, cfs[0].Principal, 1e-9)
	assert.InDelta(t, 475.0, cfs[1].Principal, 1e-9)
	assert.Equal(t, 0.0, cfs[0].Interest)
}

func TestNMDRunoff_MonotonicWithinHorizon(t *testing.T) {
	horizon := 60
	cfs := NMDRunoff(10000, 0.05, horizon)
	assert.LessOrEqual(t, len(cfs), horizon)

	balance := 10000.0
	prev := balance
	for _, cf := range cfs {
		balance -= cf.Principal
		assert.Less(t, balance, prev, "balance must strictly decrease")
		prev = balance
	}
}

func TestNMDRunoff_FullDecayDepletesImmediately(t *testing.T) {
	cfs := NMDRunoff(10000, 1.0, 60)
	require.Len(t, cfs, 1)
	assert.Equal(t, 10000.0, cfs[0].Principal)
}

func TestForPosition_Dispatch(t *testing.T) {
	as := testAssumptions()

	mortgage := book.Position{
		ID: "A1", Side: book.SideAsset, Product: book.ProductFixedMortgage,
		RateType: book.RateFixed, Notional: 1200, CouponRate: 0.06,
		MaturityMonths: 12, PaymentFreqMonths: 1,
	}
	cfs := ForPosition(mortgage, as)
	require.Len(t, cfs, 12)
	assert.InDelta(t, 6.0, cfs[0].Interest, 1e-9)

	deposit := book.Position{
		ID: "L1", Side: book.SideLiability, Product: book.ProductNMDDeposit,
		RateType: book.RateFloating, Notional: 10000,
		PaymentFreqMonths: 1, Behavior: book.BehaviorCore,
	}
	cfs = ForPosition(deposit, as)
	require.NotEmpty(t, cfs)
	assert.InDelta(t, 500.0, cfs[0].Principal, 1e-9)

	floatingBond := book.Position{
		ID: "A2", Side: book.SideAsset, Product: book.ProductBullet,
		RateType: book.RateFloating, Notional: 1000, Spread: 0.01,
		MaturityMonths: 12, PaymentFreqMonths: 3,
	}
	cfs = ForPosition(floatingBond, as)
	require.Len(t, cfs, 1)
	assert.Equal(t, 0.0, cfs[0].Interest, "floating bullets carry placeholders only")
	assert.Equal(t, 1000.0, cfs[0].Principal)
}
