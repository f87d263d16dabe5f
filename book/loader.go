package book

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/meenmo/irrbb/curve"
)

// positionColumns is the header the positions CSV must carry, in any order.
var positionColumns = []string{
	"id", "side", "product_type", "rate_type", "notional", "coupon_rate",
	"spread", "maturity_months", "payment_freq_months", "next_reprice_months",
	"behavioral_flag",
}

// LoadPositions reads and validates the position book from a CSV file.
func LoadPositions(path string) ([]Position, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("LoadPositions: %w", err)
	}
	defer f.Close()

	positions, err := ParsePositions(f)
	if err != nil {
		return nil, fmt.Errorf("LoadPositions: %s: %w", path, err)
	}
	return positions, nil
}

// ParsePositions parses the position book CSV and validates every row.
// Any malformed row aborts the load with the offending id, so downstream
// NII and EVE aggregates never see a partial book.
func ParsePositions(r io.Reader) ([]Position, error) {
	reader := csv.NewReader(r)
	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}
	col, err := columnIndex(header, positionColumns)
	if err != nil {
		return nil, err
	}

	var positions []Position
	for line := 2; ; line++ {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}

		p := Position{
			ID:       strings.TrimSpace(record[col["id"]]),
			Side:     Side(strings.TrimSpace(record[col["side"]])),
			Product:  parseProduct(record[col["product_type"]]),
			RateType: RateType(strings.TrimSpace(record[col["rate_type"]])),
			Behavior: BehavioralFlag(strings.TrimSpace(record[col["behavioral_flag"]])),
		}
		if p.Notional, err = parseFloat(record[col["notional"]]); err != nil {
			return nil, fmt.Errorf("position %s: notional: %w", p.ID, err)
		}
		if p.CouponRate, err = parseFloat(record[col["coupon_rate"]]); err != nil {
			return nil, fmt.Errorf("position %s: coupon_rate: %w", p.ID, err)
		}
		if p.Spread, err = parseFloat(record[col["spread"]]); err != nil {
			return nil, fmt.Errorf("position %s: spread: %w", p.ID, err)
		}
		if p.MaturityMonths, err = parseInt(record[col["maturity_months"]]); err != nil {
			return nil, fmt.Errorf("position %s: maturity_months: %w", p.ID, err)
		}
		if p.PaymentFreqMonths, err = parseInt(record[col["payment_freq_months"]]); err != nil {
			return nil, fmt.Errorf("position %s: payment_freq_months: %w", p.ID, err)
		}
		if p.NextRepriceMonths, err = parseFloat(record[col["next_reprice_months"]]); err != nil {
			return nil, fmt.Errorf("position %s: next_reprice_months: %w", p.ID, err)
		}

		if err := p.Validate(); err != nil {
			return nil, err
		}
		positions = append(positions, p)
	}
	return positions, nil
}

// LoadCurvePoints reads the base zero curve from a CSV file with
// tenor_months and zero_rate_annual columns.
func LoadCurvePoints(path string) ([]curve.Point, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("LoadCurvePoints: %w", err)
	}
	defer f.Close()

	points, err := ParseCurvePoints(f)
	if err != nil {
		return nil, fmt.Errorf("LoadCurvePoints: %s: %w", path, err)
	}
	return points, nil
}

// ParseCurvePoints parses (tenor_months, zero_rate_annual) rows.
func ParseCurvePoints(r io.Reader) ([]curve.Point, error) {
	reader := csv.NewReader(r)
	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}
	col, err := columnIndex(header, []string{"tenor_months", "zero_rate_annual"})
	if err != nil {
		return nil, err
	}

	var points []curve.Point
	for line := 2; ; line++ {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		tenor, err := parseInt(record[col["tenor_months"]])
		if err != nil {
			return nil, fmt.Errorf("line %d: tenor_months: %w", line, err)
		}
		rate, err := parseFloat(record[col["zero_rate_annual"]])
		if err != nil {
			return nil, fmt.Errorf("line %d: zero_rate_annual: %w", line, err)
		}
		points = append(points, curve.Point{TenorMonths: tenor, ZeroRate: rate})
	}
	return points, nil
}

func parseProduct(raw string) ProductType {
	switch ProductType(strings.TrimSpace(raw)) {
	case ProductFixedMortgage:
		return ProductFixedMortgage
	case ProductNMDDeposit:
		return ProductNMDDeposit
	default:
		// Every other interest-bearing product prices as a bullet.
		return ProductBullet
	}
}

func columnIndex(header, required []string) (map[string]int, error) {
	col := make(map[string]int, len(header))
	for i, name := range header {
		col[strings.TrimSpace(name)] = i
	}
	for _, name := range required {
		if _, ok := col[name]; !ok {
			return nil, fmt.Errorf("missing required column %q", name)
		}
	}
	return col, nil
}

func parseFloat(raw string) (float64, error) {
	return strconv.ParseFloat(strings.TrimSpace(raw), 64)
}

func parseInt(raw string) (int, error) {
	return strconv.Atoi(strings.TrimSpace(raw))
}
