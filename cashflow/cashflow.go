// Package cashflow turns a position's contractual terms into a dated
// schedule of interest and principal cashflows. Three mutually exclusive
// strategies exist: level-payment amortization for mortgages, bullet
// schedules for other interest-bearing instruments, and behavioral runoff
// for non-maturity deposits.
package cashflow

import (
	"math"

	"github.com/meenmo/irrbb/assumptions"
	"github.com/meenmo/irrbb/book"
)

const (
	// balanceEpsilon is the threshold below which an outstanding balance is
	// treated as fully paid off.
	balanceEpsilon = 1e-6
	// rateEpsilon is the monthly rate below which level-payment math
	// degenerates and amortization switches to straight-line.
	rateEpsilon = 1e-12
)

// Cashflow is a single dated cash event. Month 1 is one month from the
// valuation date.
type Cashflow struct {
	Month     int
	Interest  float64
	Principal float64
}

// Amount returns the total cash moved at this date.
func (c Cashflow) Amount() float64 {
	return c.Interest + c.Principal
}

// Amortizing builds a level-payment amortization schedule, one cashflow per
// month for months 1..maturityMonths:
//
//	payment = P * r_m / (1 - (1+r_m)^-n)
//
// falling back to P/n when the monthly rate is effectively zero. Principal
// in the final period is capped at the remaining balance to absorb rounding.
func Amortizing(notional, annualRate float64, maturityMonths int) []Cashflow {
	if maturityMonths <= 0 {
		return nil
	}

	rm := annualRate / 12.0
	n := maturityMonths

	var payment float64
	if math.Abs(rm) < rateEpsilon {
		payment = notional / float64(n)
	} else {
		payment = notional * rm / (1.0 - math.Pow(1.0+rm, -float64(n)))
	}

	balance := notional
	cfs := make([]Cashflow, 0, n)
	for m := 1; m <= n; m++ {
		interest := balance * rm
		principal := payment - interest
		if principal > balance {
			principal = balance
		}
		balance -= principal
		cfs = append(cfs, Cashflow{Month: m, Interest: interest, Principal: principal})

		if balance <= balanceEpsilon {
			break
		}
	}
	return cfs
}

// Bullet builds a bullet schedule: interest accrues on the full notional and
// pays every paymentFreqMonths (floored to 1), principal repays in full at
// maturity. Months carrying neither interest nor principal are omitted.
//
// For floating instruments callers pass annualRate = 0; the schedule then
// carries zero-interest placeholders at the pay dates and the valuation
// engine fills in scenario-dependent interest later.
func Bullet(notional, annualRate float64, maturityMonths, paymentFreqMonths int) []Cashflow {
	if maturityMonths <= 0 {
		return nil
	}

	freq := paymentFreqMonths
	if freq < 1 {
		freq = 1
	}
	rm := annualRate / 12.0

	var cfs []Cashflow
	for m := 1; m <= maturityMonths; m++ {
		var interest, principal float64
		if m%freq == 0 {
			// Simple interest over the frequency window on full notional.
			interest = notional * rm * float64(freq)
		}
		if m == maturityMonths {
			principal = notional
		}
		if interest != 0.0 || principal != 0.0 {
			cfs = append(cfs, Cashflow{Month: m, Interest: interest, Principal: principal})
		}
	}
	return cfs
}

// NMDRunoff builds the behavioral runoff schedule for a non-maturity
// deposit: the balance decays geometrically by monthlyDecay until the PV
// horizon or depletion. The schedule carries principal timing only; interest
// on NMD balances is priced by the repricing/valuation layer.
func NMDRunoff(notional, monthlyDecay float64, horizonMonths int) []Cashflow {
	balance := notional
	var cfs []Cashflow
	for m := 1; m <= horizonMonths; m++ {
		runoff := balance * monthlyDecay
		if runoff > balance {
			runoff = balance
		}
		balance -= runoff
		cfs = append(cfs, Cashflow{Month: m, Interest: 0, Principal: runoff})

		if balance <= balanceEpsilon {
			break
		}
	}
	return cfs
}

// ForPosition dispatches to the schedule strategy for the position's product
// type. The schedule is scenario-independent: floating bullets get
// zero-interest placeholders so one schedule can be reused across shocks.
func ForPosition(p book.Position, as assumptions.Assumptions) []Cashflow {
	switch p.Product {
	case book.ProductFixedMortgage:
		return Amortizing(p.Notional, p.CouponRate, p.MaturityMonths)
	case book.ProductNMDDeposit:
		return NMDRunoff(p.Notional, as.MonthlyDecay(p.Behavior), as.NMDPVHorizonMonths)
	default:
		rate := 0.0
		if p.RateType == book.RateFixed {
			rate = p.CouponRate
		}
		return Bullet(p.Notional, rate, p.MaturityMonths, p.PaymentFreqMonths)
	}
}

// TotalPrincipal sums principal across a schedule.
func TotalPrincipal(cfs []Cashflow) float64 {
	var total float64
	for _, cf := range cfs {
		total += cf.Principal
	}
	return total
}
