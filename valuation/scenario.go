package valuation

// Scenario is a named parallel rate shock applied to the reference rate and
// to every tenor of the zero curve.
type Scenario struct {
	Name  string
	Shift float64 // signed annual decimal, e.g. +0.01 for +100bp
}

// DefaultScenarios is the standard shock set shared by the NII and EVE
// projections. Both sweeps take it as input so there is a single source of
// truth for the scenario grid.
var DefaultScenarios = []Scenario{
	{Name: "base", Shift: 0.0},
	{Name: "+100bp", Shift: 0.01},
	{Name: "-100bp", Shift: -0.01},
	{Name: "+300bp", Shift: 0.03},
	{Name: "-300bp", Shift: -0.03},
}

// baseScenario returns the zero-shift scenario the deltas are measured
// against. Falls back to the first scenario when none has a zero shift.
func baseScenario(scenarios []Scenario) Scenario {
	for _, s := range scenarios {
		if s.Shift == 0.0 {
			return s
		}
	}
	return scenarios[0]
}
