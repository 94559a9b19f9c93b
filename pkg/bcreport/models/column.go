package models

import "strings"

// Column is the canonical header of an input column as it appears in the DATA sheet.
type Column string

// Input columns of the DATA sheet.
const (
	ColMerchantID    Column = "MECHNAT_ID"
	ColBCName        Column = "BC_NAME"
	ColBranchName    Column = "BRANCH_NAME"
	ColRegionName    Column = "REGION_NAME"
	ColStateName     Column = "STATE_NAME"
	ColLocationType  Column = "LOCATION TYPE"
	ColCoordinator   Column = "CO ORDINATOR NAME"
	ColLoggingDays   Column = "TOTAL LOGGING DAYS"
	ColFinSuccess    Column = "TOTAL_FIN_SUCCESS"
	ColFinSuccessAmt Column = "TOTAL_FIN_SUCCESS_AMT"
	ColEKYCSuccess   Column = "TOTAL EKYC SUCCESS"
	ColAPYSuccess    Column = "TOTAL APY SUCCESS"
	ColPMSBYSuccess  Column = "TOTAL PMSBY SUCCESS"
	ColPMJJBYSuccess Column = "TOTAL PMJJBY SUCCESS"
	ColLoanRecovery  Column = "TOTAL LOAN RECOVERY"
	ColRecoveryAmt   Column = "TOTAL AMOUNT"
	ColLoanLeads     Column = "LOAN LEAD GENERATION COUNT"
)

// Key returns the header matching key of the column.
func (c Column) Key() string {
	return HeaderKey(string(c))
}

// HeaderKey canonicalizes a header cell for matching: upper case, underscores
// read as spaces, surrounding and repeated whitespace collapsed.
// "co_ordinator_name" and " CO  ORDINATOR NAME" both yield "CO ORDINATOR NAME".
func HeaderKey(header string) string {
	h := strings.ToUpper(strings.ReplaceAll(header, "_", " "))
	return strings.Join(strings.Fields(h), " ")
}
