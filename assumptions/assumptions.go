// Package assumptions loads the behavioral and pricing assumptions that
// govern NMD modelling and floating-rate fallbacks. The file is read once at
// process start and the resulting value is shared read-only by every
// scenario computation.
package assumptions

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/meenmo/irrbb/book"
)

// Assumptions is the validated, flattened assumption set.
type Assumptions struct {
	NMDMonthlyDecayCore     float64 // fraction of core NMD balance running off per month
	NMDMonthlyDecayVolatile float64
	NMDBetaCore             float64 // administered-rate sensitivity to a market shock
	NMDBetaVolatile         float64
	NMDRateFloor            float64 // policy minimum for administered deposit rates
	NMDPVHorizonMonths      int     // cap on NMD runoff schedule length
	FallbackRefRate         float64 // flat proxy reference rate for NII repricing
}

// file mirrors the YAML schema. Required scalars are pointers so a missing
// key is distinguishable from an explicit zero.
type file struct {
	NMD struct {
		MonthlyDecayCore     *float64 `yaml:"monthly_decay_core"`
		MonthlyDecayVolatile *float64 `yaml:"monthly_decay_volatile"`
		BetaCore             *float64 `yaml:"beta_core"`
		BetaVolatile         *float64 `yaml:"beta_volatile"`
		RateFloor            *float64 `yaml:"rate_floor"`
	} `yaml:"nmd"`
	EVE struct {
		NMDPVHorizonMonths *int `yaml:"nmd_pv_horizon_months"`
	} `yaml:"eve"`
	Rates struct {
		FallbackRefRate *float64 `yaml:"fallback_ref_rate"`
	} `yaml:"rates"`
}

// Load reads assumptions from a YAML file.
func Load(path string) (Assumptions, error) {
	f, err := os.Open(path)
	if err != nil {
		return Assumptions{}, fmt.Errorf("Load: %w", err)
	}
	defer f.Close()

	as, err := Parse(f)
	if err != nil {
		return Assumptions{}, fmt.Errorf("Load: %s: %w", path, err)
	}
	return as, nil
}

// Parse decodes and validates the assumption YAML. Any missing required key
// is fatal here, before any scenario computation begins.
func Parse(r io.Reader) (Assumptions, error) {
	var raw file
	dec := yaml.NewDecoder(r)
	if err := dec.Decode(&raw); err != nil {
		return Assumptions{}, fmt.Errorf("decode yaml: %w", err)
	}

	required := []struct {
		key string
		ok  bool
	}{
		{"nmd.monthly_decay_core", raw.NMD.MonthlyDecayCore != nil},
		{"nmd.monthly_decay_volatile", raw.NMD.MonthlyDecayVolatile != nil},
		{"nmd.beta_core", raw.NMD.BetaCore != nil},
		{"nmd.beta_volatile", raw.NMD.BetaVolatile != nil},
		{"nmd.rate_floor", raw.NMD.RateFloor != nil},
		{"eve.nmd_pv_horizon_months", raw.EVE.NMDPVHorizonMonths != nil},
		{"rates.fallback_ref_rate", raw.Rates.FallbackRefRate != nil},
	}
	for _, req := range required {
		if !req.ok {
			return Assumptions{}, fmt.Errorf("missing required assumption %q", req.key)
		}
	}

	as := Assumptions{
		NMDMonthlyDecayCore:     *raw.NMD.MonthlyDecayCore,
		NMDMonthlyDecayVolatile: *raw.NMD.MonthlyDecayVolatile,
		NMDBetaCore:             *raw.NMD.BetaCore,
		NMDBetaVolatile:         *raw.NMD.BetaVolatile,
		NMDRateFloor:            *raw.NMD.RateFloor,
		NMDPVHorizonMonths:      *raw.EVE.NMDPVHorizonMonths,
		FallbackRefRate:         *raw.Rates.FallbackRefRate,
	}
	if err := as.Validate(); err != nil {
		return Assumptions{}, err
	}
	return as, nil
}

// Validate checks value ranges the runoff model depends on.
func (a Assumptions) Validate() error {
	if a.NMDMonthlyDecayCore < 0 || a.NMDMonthlyDecayCore > 1 {
		return fmt.Errorf("nmd.monthly_decay_core %f outside [0,1]", a.NMDMonthlyDecayCore)
	}
	if a.NMDMonthlyDecayVolatile < 0 || a.NMDMonthlyDecayVolatile > 1 {
		return fmt.Errorf("nmd.monthly_decay_volatile %f outside [0,1]", a.NMDMonthlyDecayVolatile)
	}
	if a.NMDPVHorizonMonths <= 0 {
		return fmt.Errorf("eve.nmd_pv_horizon_months %d must be positive", a.NMDPVHorizonMonths)
	}
	return nil
}

// MonthlyDecay returns the runoff rate for a behavioral flag.
func (a Assumptions) MonthlyDecay(flag book.BehavioralFlag) float64 {
	if flag == book.BehaviorCore {
		return a.NMDMonthlyDecayCore
	}
	return a.NMDMonthlyDecayVolatile
}

// Beta returns the administered-rate sensitivity for a behavioral flag.
func (a Assumptions) Beta(flag book.BehavioralFlag) float64 {
	if flag == book.BehaviorCore {
		return a.NMDBetaCore
	}
	return a.NMDBetaVolatile
}
