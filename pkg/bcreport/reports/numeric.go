package reports

import (
	"sort"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/ukaji3/bcreport-go/pkg/bcreport/models"
)

// GrandTotalLabel is the first-column value of a grouped report's total row.
const GrandTotalLabel = "GRAND TOTAL"

// TotalCountLabel is the first cell of a watch list's marker row.
const TotalCountLabel = "Total Count"

// round2 rounds to two decimals, half to even.
func round2(v float64) float64 {
	return decimal.NewFromFloat(v).RoundBank(2).InexactFloat64()
}

// percent returns num/den*100 rounded to two decimals (half to even), or 0
// when den is 0.
func percent(num, den int64) float64 {
	if den == 0 {
		return 0
	}
	return decimal.NewFromInt(num).
		Mul(decimal.NewFromInt(100)).
		Div(decimal.NewFromInt(den)).
		RoundBank(2).
		InexactFloat64()
}

// mean returns sum/n rounded to two decimals, or 0 when n is 0.
func mean(sum float64, n int64) float64 {
	if n == 0 {
		return 0
	}
	return round2(sum / float64(n))
}

// inBand reports whether v lies in the closed interval [lo, hi].
func inBand(v, lo, hi float64) bool {
	return v >= lo && v <= hi
}

// coordinatorRollup joins the distinct first-name tokens of the non-empty
// coordinator names, upper-cased and sorted: "John Doe", "Jane Roe" → "JANE/JOHN".
func coordinatorRollup(names map[string]struct{}) string {
	tokens := make([]string, 0, len(names))
	for n := range names {
		tokens = append(tokens, n)
	}
	sort.Strings(tokens)
	return strings.Join(tokens, "/")
}

// firstToken returns the upper-cased first whitespace-delimited token of name.
func firstToken(name string) (string, bool) {
	fields := strings.Fields(name)
	if len(fields) == 0 {
		return "", false
	}
	return strings.ToUpper(fields[0]), true
}

// countCell returns a count as an int64 cell, truncating any fraction.
func countCell(v float64) models.Cell {
	return models.Cell{Value: int64(v)}
}

func textCell(s string) models.Cell {
	return models.Cell{Value: s}
}

func floatCell(v float64) models.Cell {
	return models.Cell{Value: v}
}
