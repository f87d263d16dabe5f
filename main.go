package main

import (
	"fmt"
	"log"

	"github.com/meenmo/irrbb/assumptions"
	"github.com/meenmo/irrbb/book"
	"github.com/meenmo/irrbb/curve"
	"github.com/meenmo/irrbb/valuation"
)

// Demo run over a two-position book: a fixed mortgage funded by a core NMD
// deposit. For the full CLI see cmd/irrbb.
func main() {
	positions := []book.Position{
		{
			ID: "A1", Side: book.SideAsset, Product: book.ProductFixedMortgage,
			RateType: book.RateFixed, Notional: 1200, CouponRate: 0.06,
			MaturityMonths: 12, PaymentFreqMonths: 1,
		},
		{
			ID: "L1", Side: book.SideLiability, Product: book.ProductNMDDeposit,
			RateType: book.RateFloating, Notional: 1000, CouponRate: 0.005,
			PaymentFreqMonths: 1, Behavior: book.BehaviorCore,
		},
	}

	basePoints := []curve.Point{
		{TenorMonths: 12, ZeroRate: 0.03},
		{TenorMonths: 60, ZeroRate: 0.035},
	}

	as := assumptions.Assumptions{
		NMDMonthlyDecayCore:     0.02,
		NMDMonthlyDecayVolatile: 0.08,
		NMDBetaCore:             0.4,
		NMDBetaVolatile:         0.7,
		NMDRateFloor:            0.0,
		NMDPVHorizonMonths:      60,
		FallbackRefRate:         0.03,
	}

	engine, err := valuation.NewEngine(positions, as, basePoints)
	if err != nil {
		log.Fatal(err)
	}

	for _, r := range engine.NIIByScenario(valuation.DefaultScenarios) {
		fmt.Printf("NII %7s: %10.2f  (delta %+.2f)\n", r.Scenario, r.NII, r.DeltaVsBase)
	}

	eveRows, err := engine.EVEByScenario(valuation.DefaultScenarios)
	if err != nil {
		log.Fatal(err)
	}
	for _, r := range eveRows {
		fmt.Printf("EVE %7s: %10.2f  (delta %+.2f)\n", r.Scenario, r.EVE, r.DeltaVsBase)
	}
}
