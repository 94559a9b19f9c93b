package parser

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/ukaji3/bcreport-go/pkg/bcreport/models"
)

// Normalize converts a raw DATA sheet into the canonical dataset used by every
// report. The table is not modified. Messy cells never fail normalization:
// unparseable numbers become 0 and missing text becomes "".
func Normalize(t *models.Table) (*models.Dataset, error) {
	if t == nil || len(t.Header) == 0 {
		return nil, ErrEmptySheet
	}

	positions := resolveHeader(t.Header)
	ds := &models.Dataset{
		Records:      make([]models.Record, 0, len(t.Rows)),
		Source:       make(map[models.Column]bool, len(positions)),
		Materialized: make(map[models.Column]bool),
	}
	for _, f := range Schema {
		if _, ok := positions[f.Column]; ok {
			ds.Source[f.Column] = true
		} else if f.Materialize {
			ds.Materialized[f.Column] = true
		}
	}

	for _, row := range t.Rows {
		if blankRow(row) {
			continue
		}
		var rec models.Record
		for _, f := range Schema {
			pos, ok := positions[f.Column]
			if !ok {
				continue
			}
			if err := setField(&rec, f, cellAt(row, pos)); err != nil {
				return nil, err
			}
		}
		ds.Records = append(ds.Records, rec)
	}
	return ds, nil
}

func setField(rec *models.Record, f Field, raw string) error {
	cell := raw
	switch f.Kind {
	case kindText:
		raw = strings.TrimSpace(raw)
	case kindKey:
		raw = normalizeKey(raw)
	}

	switch f.Column {
	case models.ColMerchantID:
		rec.MerchantID = raw
	case models.ColBCName:
		rec.BCName = raw
	case models.ColBranchName:
		rec.BranchName = raw
	case models.ColRegionName:
		rec.Region = raw
		rec.RegionText = cell
	case models.ColStateName:
		rec.State = raw
	case models.ColLocationType:
		rec.LocationType = raw
	case models.ColCoordinator:
		rec.Coordinator = raw
		rec.CoordinatorText = cell
	case models.ColLoggingDays:
		rec.LoggingDays = parseNumber(raw)
	case models.ColFinSuccess:
		rec.FinSuccess = parseNumber(raw)
	case models.ColFinSuccessAmt:
		rec.FinSuccessAmt = parseAmount(raw)
	case models.ColEKYCSuccess:
		rec.EKYCSuccess = parseNumber(raw)
	case models.ColAPYSuccess:
		rec.APYSuccess = parseNumber(raw)
	case models.ColPMSBYSuccess:
		rec.PMSBYSuccess = parseNumber(raw)
	case models.ColPMJJBYSuccess:
		rec.PMJJBYSuccess = parseNumber(raw)
	case models.ColLoanRecovery:
		rec.LoanRecovery = parseNumber(raw)
	case models.ColRecoveryAmt:
		rec.RecoveryAmt = parseAmount(raw)
	case models.ColLoanLeads:
		rec.LoanLeads = parseNumber(raw)
	default:
		return fmt.Errorf("schema column %q has no record field", f.Column)
	}
	return nil
}

// normalizeKey trims and upper-cases a grouping key.
func normalizeKey(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}

// parseNumber coerces a cell to a finite float64; anything else is 0.
func parseNumber(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

// parseAmount coerces a cell to a decimal; anything unparseable is 0.
func parseAmount(s string) decimal.Decimal {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}

func cellAt(row []string, pos int) string {
	if pos < 0 || pos >= len(row) {
		return ""
	}
	return row[pos]
}

func blankRow(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
