// Package curve implements the zero-rate term structure used for
// discounting: parallel shocks, linear interpolation between tenor points,
// and continuously compounded discount factors.
package curve

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/interp"
)

var (
	// ErrNoTenors is returned when a curve is built from zero points.
	ErrNoTenors = errors.New("zero curve: no tenor points")
	// ErrDuplicateTenor is returned when two points share a tenor, which
	// makes interpolation undefined.
	ErrDuplicateTenor = errors.New("zero curve: duplicate tenor")
)

// Point is one node of the base curve: an annual zero rate at a tenor.
type Point struct {
	TenorMonths int
	ZeroRate    float64 // annual decimal, e.g. 0.03
}

// ZeroCurve is a shocked zero-rate term structure. Rates at every tenor are
// the base rates plus one scalar parallel shift. Immutable after Build.
type ZeroCurve struct {
	points []Point // sorted ascending by tenor, rates already shifted
	shift  float64
	linear interp.PiecewiseLinear // fitted when the curve has >= 2 points
}

// Build returns a new curve whose rate at every tenor equals the base rate
// plus shift. The base points are copied and sorted; the caller's slice is
// never mutated. Fewer than one point or duplicated tenors are fatal.
func Build(base []Point, shift float64) (*ZeroCurve, error) {
	if len(base) == 0 {
		return nil, ErrNoTenors
	}

	points := make([]Point, len(base))
	copy(points, base)
	sort.Slice(points, func(i, j int) bool {
		return points[i].TenorMonths < points[j].TenorMonths
	})

	for i := 1; i < len(points); i++ {
		if points[i].TenorMonths == points[i-1].TenorMonths {
			return nil, fmt.Errorf("%w: %d months", ErrDuplicateTenor, points[i].TenorMonths)
		}
	}

	crv := &ZeroCurve{points: points, shift: shift}
	for i := range crv.points {
		crv.points[i].ZeroRate += shift
	}

	if len(points) >= 2 {
		xs := make([]float64, len(crv.points))
		ys := make([]float64, len(crv.points))
		for i, p := range crv.points {
			xs[i] = float64(p.TenorMonths)
			ys[i] = p.ZeroRate
		}
		if err := crv.linear.Fit(xs, ys); err != nil {
			return nil, fmt.Errorf("zero curve: %w", err)
		}
	}
	return crv, nil
}

// Shift returns the parallel shock this curve was built with.
func (c *ZeroCurve) Shift() float64 {
	return c.shift
}

// Points returns the shocked curve nodes in ascending tenor order.
func (c *ZeroCurve) Points() []Point {
	out := make([]Point, len(c.points))
	copy(out, c.points)
	return out
}

// RateAtMonth returns the shocked annual zero rate at an arbitrary month.
// Months at or below the first tenor get the first rate, months at or above
// the last tenor get the last rate; interior months interpolate linearly
// between the bracketing tenors.
func (c *ZeroCurve) RateAtMonth(month int) float64 {
	first := c.points[0]
	last := c.points[len(c.points)-1]

	m := float64(month)
	if m <= float64(first.TenorMonths) || len(c.points) == 1 {
		return first.ZeroRate
	}
	if m >= float64(last.TenorMonths) {
		return last.ZeroRate
	}
	return c.linear.Predict(m)
}

// DiscountFactor returns exp(-r*t) with t = month/12 years and r the
// interpolated shocked rate at that month. Negative shocked rates produce
// factors above 1; that is correct and must not be clamped.
func (c *ZeroCurve) DiscountFactor(month int) float64 {
	r := c.RateAtMonth(month)
	t := float64(month) / 12.0
	return math.Exp(-r * t)
}
