// Command irrbb computes banking-book interest-rate risk reports: the
// repricing gap, the 12-month NII projection and EVE under parallel shocks.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"

	"github.com/meenmo/irrbb/assumptions"
	"github.com/meenmo/irrbb/book"
	"github.com/meenmo/irrbb/logging"
	"github.com/meenmo/irrbb/report"
	"github.com/meenmo/irrbb/valuation"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	if len(args) == 0 {
		usage(stderr)
		return 2
	}

	cmd := strings.ToLower(strings.TrimSpace(args[0]))
	switch cmd {
	case "gap", "nii", "eve", "report":
		return runReport(cmd, args[1:], stdout, stderr)
	case "-h", "--help", "help":
		usage(stdout)
		return 0
	default:
		fmt.Fprintf(stderr, "unknown command %q\n\n", args[0])
		usage(stderr)
		return 2
	}
}

func usage(w io.Writer) {
	fmt.Fprintln(w, "Usage: irrbb <command> [options]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  gap      Repricing gap report (notional buckets)")
	fmt.Fprintln(w, "  nii      12-month NII projection under parallel shocks")
	fmt.Fprintln(w, "  eve      EVE under parallel shocks")
	fmt.Fprintln(w, "  report   Full run: gap + NII + EVE + CSV outputs")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run `irrbb <command> -h` for command-specific options.")
}

// options are shared by every subcommand. Defaults come from the
// environment (optionally via a .env file) and can be overridden by flags.
type options struct {
	positionsPath   string
	curvePath       string
	assumptionsPath string
	outputDir       string
	logLevel        string
	pretty          bool
}

func parseOptions(cmd string, args []string, stderr io.Writer) (options, error) {
	_ = godotenv.Load()

	dataDir := envOr("IRRBB_DATA_DIR", "data")
	var opts options

	fs := flag.NewFlagSet("irrbb "+cmd, flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&opts.positionsPath, "positions", filepath.Join(dataDir, "positions.csv"), "position book CSV")
	fs.StringVar(&opts.curvePath, "curve", filepath.Join(dataDir, "curve_base.csv"), "base zero curve CSV")
	fs.StringVar(&opts.assumptionsPath, "assumptions", "assumptions.yaml", "behavioral/pricing assumptions YAML")
	fs.StringVar(&opts.outputDir, "out", envOr("IRRBB_OUTPUT_DIR", "outputs"), "directory for CSV outputs")
	fs.StringVar(&opts.logLevel, "log-level", envOr("IRRBB_LOG_LEVEL", "info"), "debug, info, warn or error")
	fs.BoolVar(&opts.pretty, "pretty", true, "human-readable log output")
	if err := fs.Parse(args); err != nil {
		return options{}, err
	}
	return opts, nil
}

func runReport(cmd string, args []string, stdout, stderr io.Writer) int {
	opts, err := parseOptions(cmd, args, stderr)
	if err != nil {
		return 2
	}

	log := logging.New(logging.Config{Level: opts.logLevel, Pretty: opts.pretty})

	positions, err := book.LoadPositions(opts.positionsPath)
	if err != nil {
		log.Error().Err(err).Msg("failed to load position book")
		return 1
	}
	basePoints, err := book.LoadCurvePoints(opts.curvePath)
	if err != nil {
		log.Error().Err(err).Msg("failed to load base curve")
		return 1
	}
	as, err := assumptions.Load(opts.assumptionsPath)
	if err != nil {
		log.Error().Err(err).Msg("failed to load assumptions")
		return 1
	}

	engine, err := valuation.NewEngine(positions, as, basePoints)
	if err != nil {
		log.Error().Err(err).Msg("failed to build valuation engine")
		return 1
	}

	writer, err := report.NewWriter(opts.outputDir, log)
	if err != nil {
		log.Error().Err(err).Msg("failed to prepare output directory")
		return 1
	}
	log.Info().
		Int("positions", len(positions)).
		Int("curve_points", len(basePoints)).
		Str("command", cmd).
		Msg("inputs loaded")

	scenarios := valuation.DefaultScenarios

	if cmd == "gap" || cmd == "report" {
		assets := book.TotalNotional(positions, book.SideAsset)
		liabs := book.TotalNotional(positions, book.SideLiability)
		gap := report.RepricingGap(positions)

		report.PrintTotals(stdout, assets, liabs)
		report.PrintCurvePreview(stdout, basePoints, 5)
		report.PrintGap(stdout, gap)
		report.PrintAssumptions(stdout, as)

		if err := writer.WriteGap(gap); err != nil {
			log.Error().Err(err).Msg("failed to write gap report")
			return 1
		}
		if err := writer.WriteAssumptions(as); err != nil {
			log.Error().Err(err).Msg("failed to write assumptions")
			return 1
		}
	}

	if cmd == "nii" || cmd == "report" {
		niiRows := engine.NIIByScenario(scenarios)
		depositRows := engine.DepositRatesByScenario(scenarios)

		report.PrintRateAssumptions(stdout, as.FallbackRefRate, scenarios)
		report.PrintDepositRates(stdout, depositRows)
		report.PrintNII(stdout, niiRows)

		if err := writer.WriteNII(niiRows); err != nil {
			log.Error().Err(err).Msg("failed to write NII results")
			return 1
		}
		if len(depositRows) > 0 {
			if err := writer.WriteDepositRates(depositRows); err != nil {
				log.Error().Err(err).Msg("failed to write deposit rates")
				return 1
			}
		}
	}

	if cmd == "eve" || cmd == "report" {
		eveRows, err := engine.EVEByScenario(scenarios)
		if err != nil {
			log.Error().Err(err).Msg("EVE computation failed")
			return 1
		}
		report.PrintEVE(stdout, eveRows)

		if err := writer.WriteEVE(eveRows); err != nil {
			log.Error().Err(err).Msg("failed to write EVE results")
			return 1
		}
	}

	log.Info().Msg("run complete")
	return 0
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
