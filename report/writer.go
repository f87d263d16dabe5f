package report

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/meenmo/irrbb/assumptions"
	"github.com/meenmo/irrbb/valuation"
)

// Writer persists run outputs as CSV files in one directory. Every file a
// run produces is logged under the same run id.
type Writer struct {
	dir   string
	log   zerolog.Logger
	runID uuid.UUID
}

// NewWriter creates the output directory if needed and tags the run.
func NewWriter(dir string, log zerolog.Logger) (*Writer, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("NewWriter: %w", err)
	}
	runID := uuid.New()
	return &Writer{
		dir:   dir,
		log:   log.With().Str("run_id", runID.String()).Logger(),
		runID: runID,
	}, nil
}

// RunID returns the id this run's outputs are tagged with.
func (w *Writer) RunID() uuid.UUID {
	return w.runID
}

// WriteGap writes repricing_gap.csv.
func (w *Writer) WriteGap(rows []GapRow) error {
	records := [][]string{{"bucket", "asset", "liability", "gap_assets_minus_liabs"}}
	for _, r := range rows {
		records = append(records, []string{
			r.Bucket, num(r.Assets), num(r.Liabilities), num(r.Gap),
		})
	}
	return w.writeFile("repricing_gap.csv", records)
}

// WriteAssumptions writes model_assumptions_used.csv.
func (w *Writer) WriteAssumptions(as assumptions.Assumptions) error {
	records := [][]string{
		{"core_beta", "volatile_beta", "deposit_floor", "core_decay", "volatile_decay"},
		{
			num(as.NMDBetaCore), num(as.NMDBetaVolatile), num(as.NMDRateFloor),
			num(as.NMDMonthlyDecayCore), num(as.NMDMonthlyDecayVolatile),
		},
	}
	return w.writeFile("model_assumptions_used.csv", records)
}

// WriteDepositRates writes deposit_rates_by_scenario.csv.
func (w *Writer) WriteDepositRates(rows []valuation.DepositRates) error {
	records := [][]string{{"scenario", "core_deposit_rate", "volatile_deposit_rate"}}
	for _, r := range rows {
		records = append(records, []string{r.Scenario, num(r.CoreRate), num(r.VolatileRate)})
	}
	return w.writeFile("deposit_rates_by_scenario.csv", records)
}

// WriteNII writes nii_results.csv.
func (w *Writer) WriteNII(rows []valuation.NIIResult) error {
	records := [][]string{{"scenario", "rate_shift", "nii", "delta_vs_base"}}
	for _, r := range rows {
		records = append(records, []string{
			r.Scenario, num(r.Shift), num(r.NII), num(r.DeltaVsBase),
		})
	}
	return w.writeFile("nii_results.csv", records)
}

// WriteEVE writes eve_results.csv.
func (w *Writer) WriteEVE(rows []valuation.EVEResult) error {
	records := [][]string{{"scenario", "rate_shift", "pv_assets", "pv_liabs", "eve", "delta_vs_base"}}
	for _, r := range rows {
		records = append(records, []string{
			r.Scenario, num(r.Shift), num(r.PVAssets), num(r.PVLiabilities),
			num(r.EVE), num(r.DeltaVsBase),
		})
	}
	return w.writeFile("eve_results.csv", records)
}

func (w *Writer) writeFile(name string, records [][]string) error {
	path := filepath.Join(w.dir, name)
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("write %s: %w", name, err)
	}
	defer f.Close()

	cw := csv.NewWriter(f)
	if err := cw.WriteAll(records); err != nil {
		return fmt.Errorf("write %s: %w", name, err)
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("write %s: %w", name, err)
	}

	w.log.Info().Str("file", path).Int("rows", len(records)-1).Msg("saved output")
	return nil
}

func num(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
