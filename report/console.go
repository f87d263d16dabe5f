package report

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/meenmo/irrbb/assumptions"
	"github.com/meenmo/irrbb/curve"
	"github.com/meenmo/irrbb/valuation"
)

// PrintTotals writes the balance-sheet reconciliation block.
func PrintTotals(w io.Writer, assets, liabilities float64) {
	fmt.Fprintln(w, "=== Balance Sheet Totals ===")
	fmt.Fprintf(w, "Total Assets     : %.0f\n", assets)
	fmt.Fprintf(w, "Total Liabilities: %.0f\n", liabilities)
	fmt.Fprintf(w, "Assets - Liabs   : %.0f\n", assets-liabilities)
	fmt.Fprintln(w)
}

// PrintCurvePreview shows the first few nodes of the base curve.
func PrintCurvePreview(w io.Writer, points []curve.Point, n int) {
	fmt.Fprintf(w, "=== Curve Preview (first %d rows) ===\n", n)
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "tenor_months\tzero_rate_annual")
	for i, p := range points {
		if i >= n {
			break
		}
		fmt.Fprintf(tw, "%d\t%.4f\n", p.TenorMonths, p.ZeroRate)
	}
	tw.Flush()
	fmt.Fprintln(w)
}

// PrintGap writes the repricing gap table.
func PrintGap(w io.Writer, rows []GapRow) {
	fmt.Fprintln(w, "=== Repricing Gap Report (Notional) ===")
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "bucket\tasset\tliability\tgap_assets_minus_liabs")
	for _, r := range rows {
		fmt.Fprintf(tw, "%s\t%.0f\t%.0f\t%.0f\n", r.Bucket, r.Assets, r.Liabilities, r.Gap)
	}
	tw.Flush()
	fmt.Fprintln(w)
}

// PrintAssumptions echoes the behavioral and pricing assumptions in use.
func PrintAssumptions(w io.Writer, as assumptions.Assumptions) {
	fmt.Fprintln(w, "=== Behavioral & Pricing Assumptions Used ===")
	fmt.Fprintf(w, "NMD betas: core=%.2f, volatile=%.2f | deposit floor=%.2f%%\n",
		as.NMDBetaCore, as.NMDBetaVolatile, as.NMDRateFloor*100)
	fmt.Fprintf(w, "NMD monthly decay: core=%.3f, volatile=%.3f | PV horizon=%d months\n",
		as.NMDMonthlyDecayCore, as.NMDMonthlyDecayVolatile, as.NMDPVHorizonMonths)
	fmt.Fprintln(w)
}

// PrintRateAssumptions writes the proxy base rate and the shock grid.
func PrintRateAssumptions(w io.Writer, baseRate float64, scenarios []valuation.Scenario) {
	fmt.Fprintln(w, "=== Rate Assumptions ===")
	fmt.Fprintf(w, "Base reference rate (proxy): %.2f%%\n", baseRate*100)
	fmt.Fprintln(w, "Shocks applied:")
	for _, s := range scenarios {
		fmt.Fprintf(w, "  %7s : shift %+.2f%%\n", s.Name, s.Shift*100)
	}
	fmt.Fprintln(w)
}

// PrintDepositRates writes the administered deposit rates per scenario.
func PrintDepositRates(w io.Writer, rows []valuation.DepositRates) {
	if len(rows) == 0 {
		return
	}
	fmt.Fprintln(w, "Deposit administered rates (beta + floor):")
	for _, r := range rows {
		fmt.Fprintf(w, "  %7s : core %.2f%% | volatile %.2f%%\n",
			r.Scenario, r.CoreRate*100, r.VolatileRate*100)
	}
	fmt.Fprintln(w)
}

// PrintNII writes the NII projection table with deltas against base.
func PrintNII(w io.Writer, rows []valuation.NIIResult) {
	fmt.Fprintln(w, "=== NII Projection (12M) ===")
	for _, r := range rows {
		if r.Shift == 0.0 {
			fmt.Fprintf(w, "NII Base       : %.0f\n", r.NII)
		} else {
			fmt.Fprintf(w, "NII %7s    : %.0f   Delta: %.0f\n", r.Scenario, r.NII, r.DeltaVsBase)
		}
	}
	fmt.Fprintln(w)
}

// PrintEVE writes the EVE table with deltas against base.
func PrintEVE(w io.Writer, rows []valuation.EVEResult) {
	fmt.Fprintln(w, "=== EVE (PV) under Shocks ===")
	for _, r := range rows {
		if r.Shift == 0.0 {
			fmt.Fprintf(w, "EVE Base        : %.0f\n", r.EVE)
			fmt.Fprintf(w, "PV Assets (Base): %.0f\n", r.PVAssets)
			fmt.Fprintf(w, "PV Liabs  (Base): %.0f\n", r.PVLiabilities)
		} else {
			fmt.Fprintf(w, "EVE %7s    : %.0f   Delta: %.0f\n", r.Scenario, r.EVE, r.DeltaVsBase)
		}
	}
	fmt.Fprintln(w)
}
