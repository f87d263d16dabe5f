// Package valuation combines curve discounting, cashflow schedules and the
// repricer into the NII and EVE scenario projections.
package valuation

import (
	"fmt"

	"github.com/meenmo/irrbb/assumptions"
	"github.com/meenmo/irrbb/book"
	"github.com/meenmo/irrbb/cashflow"
	"github.com/meenmo/irrbb/curve"
)

// Engine evaluates a position book under parallel rate shocks. It holds no
// mutable state: every projection is a pure function of the book, the
// assumptions and the scenario.
type Engine struct {
	positions   []book.Position
	assumptions assumptions.Assumptions
	baseCurve   []curve.Point
}

// NewEngine builds an engine over a validated book and base curve. The curve
// is shock-built once here to surface degeneracy (empty or duplicated
// tenors) before any scenario work starts.
func NewEngine(positions []book.Position, as assumptions.Assumptions, baseCurve []curve.Point) (*Engine, error) {
	if err := book.ValidateAll(positions); err != nil {
		return nil, fmt.Errorf("NewEngine: %w", err)
	}
	if _, err := curve.Build(baseCurve, 0.0); err != nil {
		return nil, fmt.Errorf("NewEngine: %w", err)
	}
	return &Engine{positions: positions, assumptions: as, baseCurve: baseCurve}, nil
}

// ProjectNII returns the 12-month net interest income under a parallel
// shift: one year of interest at the effective rate on each position's
// notional, income on assets minus expense on liabilities, undiscounted.
func (e *Engine) ProjectNII(shift float64) float64 {
	ref := FlatProxySource{BaseRate: e.assumptions.FallbackRefRate}

	var income, expense float64
	for _, p := range e.positions {
		rate := EffectiveRate(p, e.assumptions, shift, ref)
		interest := p.Notional * rate
		if p.Side == book.SideAsset {
			income += interest
		} else {
			expense += interest
		}
	}
	return income - expense
}

// PresentValue discounts one position's cashflows on the shocked curve.
func (e *Engine) PresentValue(p book.Position, shift float64) (float64, error) {
	shocked, err := curve.Build(e.baseCurve, shift)
	if err != nil {
		return 0, fmt.Errorf("PresentValue: %w", err)
	}
	return e.presentValueOn(p, shift, shocked), nil
}

// presentValueOn prices a position against a prebuilt shocked curve.
//
// Floating schedules carry zero-interest placeholders (the schedule itself
// is scenario-independent); the periodic interest is synthesized here at the
// scenario's effective rate before discounting.
func (e *Engine) presentValueOn(p book.Position, shift float64, shocked *curve.ZeroCurve) float64 {
	rate := EffectiveRate(p, e.assumptions, shift, CurveSource{Curve: shocked})
	cfs := cashflow.ForPosition(p, e.assumptions)

	var pv float64
	for _, cf := range cfs {
		interest := cf.Interest
		if interest == 0.0 && p.RateType == book.RateFloating {
			freq := p.PaymentFreqMonths
			if freq < 1 {
				freq = 1
			}
			interest = p.Notional * (rate / 12.0) * float64(freq)
		}
		pv += shocked.DiscountFactor(cf.Month) * (interest + cf.Principal)
	}
	return pv
}

// PresentValueSide sums present values over one side of the balance sheet.
func (e *Engine) PresentValueSide(shift float64, side book.Side) (float64, error) {
	shocked, err := curve.Build(e.baseCurve, shift)
	if err != nil {
		return 0, fmt.Errorf("PresentValueSide: %w", err)
	}

	var total float64
	for _, p := range e.positions {
		if p.Side == side {
			total += e.presentValueOn(p, shift, shocked)
		}
	}
	return total, nil
}

// EVE is the economic value of equity under a shift: PV of assets minus PV
// of liabilities on the shocked curve.
func (e *Engine) EVE(shift float64) (float64, error) {
	assets, err := e.PresentValueSide(shift, book.SideAsset)
	if err != nil {
		return 0, err
	}
	liabs, err := e.PresentValueSide(shift, book.SideLiability)
	if err != nil {
		return 0, err
	}
	return assets - liabs, nil
}

// NIIResult is one row of the NII scenario sweep.
type NIIResult struct {
	Scenario    string
	Shift       float64
	NII         float64
	DeltaVsBase float64
}

// NIIByScenario evaluates ProjectNII across the scenario set and reports
// each result against the zero-shift base.
func (e *Engine) NIIByScenario(scenarios []Scenario) []NIIResult {
	if len(scenarios) == 0 {
		return nil
	}
	base := e.ProjectNII(baseScenario(scenarios).Shift)

	results := make([]NIIResult, 0, len(scenarios))
	for _, s := range scenarios {
		nii := e.ProjectNII(s.Shift)
		results = append(results, NIIResult{
			Scenario:    s.Name,
			Shift:       s.Shift,
			NII:         nii,
			DeltaVsBase: nii - base,
		})
	}
	return results
}

// EVEResult is one row of the EVE scenario sweep.
type EVEResult struct {
	Scenario      string
	Shift         float64
	PVAssets      float64
	PVLiabilities float64
	EVE           float64
	DeltaVsBase   float64
}

// EVEByScenario evaluates EVE across the scenario set.
func (e *Engine) EVEByScenario(scenarios []Scenario) ([]EVEResult, error) {
	if len(scenarios) == 0 {
		return nil, nil
	}
	results := make([]EVEResult, 0, len(scenarios))
	for _, s := range scenarios {
		assets, err := e.PresentValueSide(s.Shift, book.SideAsset)
		if err != nil {
			return nil, fmt.Errorf("EVEByScenario: scenario %s: %w", s.Name, err)
		}
		liabs, err := e.PresentValueSide(s.Shift, book.SideLiability)
		if err != nil {
			return nil, fmt.Errorf("EVEByScenario: scenario %s: %w", s.Name, err)
		}
		results = append(results, EVEResult{
			Scenario:      s.Name,
			Shift:         s.Shift,
			PVAssets:      assets,
			PVLiabilities: liabs,
			EVE:           assets - liabs,
		})
	}

	base := baseScenario(scenarios)
	var baseEVE float64
	for _, r := range results {
		if r.Scenario == base.Name {
			baseEVE = r.EVE
		}
	}
	for i := range results {
		results[i].DeltaVsBase = results[i].EVE - baseEVE
	}
	return results, nil
}

// DepositRates reports the administered core and volatile deposit rates
// under one scenario, for transparency and audit.
type DepositRates struct {
	Scenario     string
	CoreRate     float64
	VolatileRate float64
}

// DepositRatesByScenario recomputes the administered rates for the first
// core and first volatile NMD deposit in the book under every non-base
// scenario. Returns nil when the book holds no NMD deposits.
func (e *Engine) DepositRatesByScenario(scenarios []Scenario) []DepositRates {
	if len(scenarios) == 0 {
		return nil
	}
	coreBase, hasCore := e.firstNMDRate(book.BehaviorCore)
	volBase, hasVol := e.firstNMDRate(book.BehaviorVolatile)
	if !hasCore && !hasVol {
		return nil
	}

	base := baseScenario(scenarios)
	var rows []DepositRates
	for _, s := range scenarios {
		if s.Name == base.Name {
			continue
		}
		row := DepositRates{Scenario: s.Name}
		if hasCore {
			row.CoreRate = AdministeredRate(coreBase, e.assumptions.NMDBetaCore, s.Shift, e.assumptions.NMDRateFloor)
		}
		if hasVol {
			row.VolatileRate = AdministeredRate(volBase, e.assumptions.NMDBetaVolatile, s.Shift, e.assumptions.NMDRateFloor)
		}
		rows = append(rows, row)
	}
	return rows
}

func (e *Engine) firstNMDRate(flag book.BehavioralFlag) (float64, bool) {
	for _, p := range e.positions {
		if p.Product == book.ProductNMDDeposit && p.Behavior == flag {
			return p.CouponRate, true
		}
	}
	return 0, false
}
