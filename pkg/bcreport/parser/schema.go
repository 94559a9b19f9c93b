package parser

import "github.com/ukaji3/bcreport-go/pkg/bcreport/models"

// fieldKind tells the normalizer how to canonicalize a column.
type fieldKind int

const (
	// kindText is trimmed.
	kindText fieldKind = iota
	// kindKey is trimmed and upper-cased; used as a grouping key.
	kindKey
	// kindCount is coerced to float64.
	kindCount
	// kindAmount is coerced to a decimal.
	kindAmount
)

// Field is one expected column of the DATA sheet.
type Field struct {
	Column models.Column
	Kind   fieldKind
	// Aliases are alternative headers accepted for the column.
	Aliases []string
	// Materialize makes the column available with its zero value when the sheet lacks it.
	Materialize bool
}

// Schema lists the expected DATA sheet columns with their defaults.
// It is consulted once per normalization.
var Schema = []Field{
	{Column: models.ColMerchantID, Kind: kindText, Aliases: []string{"MERCHANT_ID"}},
	{Column: models.ColBCName, Kind: kindText},
	{Column: models.ColBranchName, Kind: kindText},
	{Column: models.ColRegionName, Kind: kindKey},
	{Column: models.ColStateName, Kind: kindKey, Materialize: true},
	{Column: models.ColLocationType, Kind: kindText},
	{Column: models.ColCoordinator, Kind: kindKey, Aliases: []string{"COORDINATOR NAME"}},
	{Column: models.ColLoggingDays, Kind: kindCount, Materialize: true},
	{Column: models.ColFinSuccess, Kind: kindCount, Materialize: true},
	{Column: models.ColFinSuccessAmt, Kind: kindAmount, Materialize: true},
	{Column: models.ColEKYCSuccess, Kind: kindCount, Materialize: true},
	{Column: models.ColAPYSuccess, Kind: kindCount, Materialize: true},
	{Column: models.ColPMSBYSuccess, Kind: kindCount, Materialize: true},
	{Column: models.ColPMJJBYSuccess, Kind: kindCount, Materialize: true},
	{Column: models.ColLoanRecovery, Kind: kindCount, Materialize: true},
	{Column: models.ColRecoveryAmt, Kind: kindAmount, Materialize: true},
	{Column: models.ColLoanLeads, Kind: kindCount, Materialize: true},
}

// keys returns the header keys accepted for the field.
func (f Field) keys() []string {
	keys := []string{f.Column.Key()}
	for _, a := range f.Aliases {
		keys = append(keys, models.HeaderKey(a))
	}
	return keys
}

// resolveHeader maps each schema column to its index in header.
// The first matching header cell wins.
func resolveHeader(header []string) map[models.Column]int {
	index := make(map[string]int, len(header))
	for i, h := range header {
		key := models.HeaderKey(h)
		if key == "" {
			continue
		}
		if _, dup := index[key]; !dup {
			index[key] = i
		}
	}

	resolved := make(map[models.Column]int, len(Schema))
	for _, f := range Schema {
		for _, key := range f.keys() {
			if pos, ok := index[key]; ok {
				resolved[f.Column] = pos
				break
			}
		}
	}
	return resolved
}
