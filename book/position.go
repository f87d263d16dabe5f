// Package book models the banking-book position set and its loaders.
package book

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownSide is returned when a position's side is neither asset nor liability.
	ErrUnknownSide = errors.New("unknown side")
	// ErrUnknownRateType is returned when a position's rate type is neither fixed nor floating.
	ErrUnknownRateType = errors.New("unknown rate type")
	// ErrUnknownBehavior is returned when an NMD position carries no usable behavioral flag.
	ErrUnknownBehavior = errors.New("unknown behavioral flag")
)

// Side classifies a position as an asset or a liability.
type Side string

const (
	SideAsset     Side = "asset"
	SideLiability Side = "liability"
)

// ProductType is the closed set of cashflow-generation strategies.
//
// Product strings outside the recognized set are mapped to ProductBullet at
// load time, so downstream dispatch is exhaustive over these three values.
type ProductType string

const (
	// ProductFixedMortgage amortizes with a level payment.
	ProductFixedMortgage ProductType = "fixed_mortgage"
	// ProductNMDDeposit runs off behaviorally with no contractual maturity.
	ProductNMDDeposit ProductType = "nmd_deposit"
	// ProductBullet pays periodic interest and principal at maturity.
	ProductBullet ProductType = "bullet"
)

// RateType distinguishes contractually fixed rates from rates that reprice.
type RateType string

const (
	RateFixed    RateType = "fixed"
	RateFloating RateType = "floating"
)

// BehavioralFlag selects the decay/beta pair used for NMD deposits.
type BehavioralFlag string

const (
	BehaviorCore     BehavioralFlag = "core"
	BehaviorVolatile BehavioralFlag = "volatile"
)

// Position is one row of the banking book. It is constructed once at load
// time and treated as immutable afterwards.
type Position struct {
	ID                string
	Side              Side
	Product           ProductType
	RateType          RateType
	Notional          float64
	CouponRate        float64 // annual decimal; administered rate for NMD deposits
	Spread            float64 // annual decimal; floating non-deposit instruments only
	MaturityMonths    int
	PaymentFreqMonths int
	NextRepriceMonths float64 // floating instruments only; drives the gap report
	Behavior          BehavioralFlag
}

// Validate checks the invariants the engines rely on. A failure names the
// offending position so a malformed row is never silently aggregated.
func (p Position) Validate() error {
	if p.Side != SideAsset && p.Side != SideLiability {
		return fmt.Errorf("position %s: %w %q", p.ID, ErrUnknownSide, string(p.Side))
	}
	if p.RateType != RateFixed && p.RateType != RateFloating {
		return fmt.Errorf("position %s: %w %q", p.ID, ErrUnknownRateType, string(p.RateType))
	}
	if p.Notional < 0 {
		return fmt.Errorf("position %s: negative notional %f", p.ID, p.Notional)
	}
	if p.MaturityMonths < 0 {
		return fmt.Errorf("position %s: negative maturity %d", p.ID, p.MaturityMonths)
	}
	switch p.Product {
	case ProductNMDDeposit:
		if p.Behavior != BehaviorCore && p.Behavior != BehaviorVolatile {
			return fmt.Errorf("position %s: %w %q", p.ID, ErrUnknownBehavior, string(p.Behavior))
		}
	case ProductFixedMortgage, ProductBullet:
		if p.PaymentFreqMonths < 1 {
			return fmt.Errorf("position %s: payment frequency %d months, must be >= 1", p.ID, p.PaymentFreqMonths)
		}
	}
	return nil
}

// TimeToReprice returns the month horizon at which the position reprices:
// the next reset for floating instruments, contractual maturity for fixed.
func (p Position) TimeToReprice() float64 {
	if p.RateType == RateFloating {
		return p.NextRepriceMonths
	}
	return float64(p.MaturityMonths)
}

// ValidateAll validates every position and aborts on the first failure.
func ValidateAll(positions []Position) error {
	for _, p := range positions {
		if err := p.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// TotalNotional sums notionals for one side of the balance sheet.
func TotalNotional(positions []Position, side Side) float64 {
	var total float64
	for _, p := range positions {
		if p.Side == side {
			total += p.Notional
		}
	}
	return total
}
