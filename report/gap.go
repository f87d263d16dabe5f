// Package report builds the repricing gap report and renders/writes every
// output the run produces.
package report

import (
	"github.com/meenmo/irrbb/book"
)

// BucketOrder lists the classic ALM repricing buckets in display order.
var BucketOrder = []string{"0–1M", "1–3M", "3–6M", "6–12M", "1–2Y", "2–5Y", "5Y+"}

// BucketLabel maps a time-to-reprice in months onto its ALM bucket.
func BucketLabel(months float64) string {
	switch {
	case months <= 1:
		return "0–1M"
	case months <= 3:
		return "1–3M"
	case months <= 6:
		return "3–6M"
	case months <= 12:
		return "6–12M"
	case months <= 24:
		return "1–2Y"
	case months <= 60:
		return "2–5Y"
	default:
		return "5Y+"
	}
}

// GapRow is one bucket of the repricing gap report, in notional terms.
type GapRow struct {
	Bucket      string
	Assets      float64
	Liabilities float64
	Gap         float64 // assets minus liabilities
}

// RepricingGap classifies every position by time-to-reprice (next reset for
// floating, maturity for fixed) and aggregates notionals per bucket. Only
// buckets holding at least one position appear, in canonical order.
func RepricingGap(positions []book.Position) []GapRow {
	type sums struct{ assets, liabs float64 }
	byBucket := make(map[string]*sums)
	for _, p := range positions {
		label := BucketLabel(p.TimeToReprice())
		s, ok := byBucket[label]
		if !ok {
			s = &sums{}
			byBucket[label] = s
		}
		if p.Side == book.SideAsset {
			s.assets += p.Notional
		} else {
			s.liabs += p.Notional
		}
	}

	rows := make([]GapRow, 0, len(byBucket))
	for _, bucket := range BucketOrder {
		s, ok := byBucket[bucket]
		if !ok {
			continue
		}
		rows = append(rows, GapRow{
			Bucket:      bucket,
			Assets:      s.assets,
			Liabilities: s.liabs,
			Gap:         s.assets - s.liabs,
		})
	}
	return rows
}
