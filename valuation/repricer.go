package valuation

import (
	"math"

	"github.com/meenmo/irrbb/assumptions"
	"github.com/meenmo/irrbb/book"
	"github.com/meenmo/irrbb/curve"
)

// ReferenceRateSource supplies the market reference rate a floating
// non-deposit instrument reprices against under a given shock.
//
// The NII and EVE projections deliberately use different sources: NII uses a
// flat proxy rate from assumptions, EVE uses the 12-month point on the
// shocked zero curve. The divergence is inherited behavior, flagged for
// product-owner review; do not unify the two without re-baselining both
// outputs.
type ReferenceRateSource interface {
	RefRate(shift float64) float64
}

// FlatProxySource is the NII-context reference rate: a flat base rate plus
// the scenario shift.
type FlatProxySource struct {
	BaseRate float64
}

func (s FlatProxySource) RefRate(shift float64) float64 {
	return s.BaseRate + shift
}

// CurveSource is the EVE-context reference rate: the 12-month zero rate on
// an already shocked curve. The shift argument is ignored because the curve
// carries it.
type CurveSource struct {
	Curve *curve.ZeroCurve
}

func (s CurveSource) RefRate(_ float64) float64 {
	return s.Curve.RateAtMonth(12)
}

// EffectiveRate computes the annual rate a position earns or pays under a
// scenario shift:
//
//   - fixed instruments keep their stored coupon regardless of shock
//   - floating NMD deposits pay the administered rate (beta pass-through
//     with a policy floor)
//   - other floating instruments pay reference rate + spread
func EffectiveRate(p book.Position, as assumptions.Assumptions, shift float64, ref ReferenceRateSource) float64 {
	if p.RateType == book.RateFixed {
		return p.CouponRate
	}
	if p.Product == book.ProductNMDDeposit {
		return AdministeredRate(p.CouponRate, as.Beta(p.Behavior), shift, as.NMDRateFloor)
	}
	return ref.RefRate(shift) + p.Spread
}

// AdministeredRate applies the behavioral beta to a deposit's base rate and
// enforces the policy floor, so deposit pricing never drops below the floor
// whatever the shock direction or magnitude.
func AdministeredRate(baseRate, beta, shift, floor float64) float64 {
	return math.Max(baseRate+beta*shift, floor)
}
