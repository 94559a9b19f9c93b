package models

import (
	"math"

	"github.com/shopspring/decimal"
)

// Record is one normalized Business Correspondent row of the DATA sheet.
// Region, State and Coordinator are trimmed and upper-cased grouping keys; the
// empty string is their floor value. RegionText and CoordinatorText keep the
// cells as read for row-level output. Numeric fields are 0 when absent or
// unparseable.
type Record struct {
	MerchantID   string `json:"mechnat_id"`
	BCName       string `json:"bc_name"`
	BranchName   string `json:"branch_name"`
	Region       string `json:"region_name"`
	State        string `json:"state_name"`
	LocationType string `json:"location_type"`
	Coordinator  string `json:"coordinator_name"`

	RegionText      string `json:"-"`
	CoordinatorText string `json:"-"`

	LoggingDays   float64         `json:"total_logging_days"`
	FinSuccess    float64         `json:"total_fin_success"`
	FinSuccessAmt decimal.Decimal `json:"total_fin_success_amt"`
	EKYCSuccess   float64         `json:"total_ekyc_success"`
	APYSuccess    float64         `json:"total_apy_success"`
	PMSBYSuccess  float64         `json:"total_pmsby_success"`
	PMJJBYSuccess float64         `json:"total_pmjjby_success"`
	LoanRecovery  float64         `json:"total_loan_recovery"`
	RecoveryAmt   decimal.Decimal `json:"total_amount"`
	LoanLeads     float64         `json:"loan_lead_generation_count"`
}

// Active reports whether the agent logged in at least once in the period.
func (r Record) Active() bool {
	return r.LoggingDays != 0
}

// Value returns the cell value of col for row-level output. Region and
// coordinator come back as read; STATE_NAME is the normalized key. Integral
// counts are returned as int64, fractional counts as float64.
func (r Record) Value(col Column) interface{} {
	switch col {
	case ColMerchantID:
		return r.MerchantID
	case ColBCName:
		return r.BCName
	case ColBranchName:
		return r.BranchName
	case ColRegionName:
		return r.RegionText
	case ColStateName:
		return r.State
	case ColLocationType:
		return r.LocationType
	case ColCoordinator:
		return r.CoordinatorText
	case ColFinSuccessAmt:
		return NumberValue(r.FinSuccessAmt.InexactFloat64())
	case ColRecoveryAmt:
		return NumberValue(r.RecoveryAmt.InexactFloat64())
	}
	if v, ok := r.Number(col); ok {
		return NumberValue(v)
	}
	return nil
}

// Number returns the numeric value of a KPI column.
func (r Record) Number(col Column) (float64, bool) {
	switch col {
	case ColLoggingDays:
		return r.LoggingDays, true
	case ColFinSuccess:
		return r.FinSuccess, true
	case ColFinSuccessAmt:
		return r.FinSuccessAmt.InexactFloat64(), true
	case ColEKYCSuccess:
		return r.EKYCSuccess, true
	case ColAPYSuccess:
		return r.APYSuccess, true
	case ColPMSBYSuccess:
		return r.PMSBYSuccess, true
	case ColPMJJBYSuccess:
		return r.PMJJBYSuccess, true
	case ColLoanRecovery:
		return r.LoanRecovery, true
	case ColRecoveryAmt:
		return r.RecoveryAmt.InexactFloat64(), true
	case ColLoanLeads:
		return r.LoanLeads, true
	}
	return 0, false
}

// NumberValue returns v as int64 when it is integral, otherwise as float64.
func NumberValue(v float64) interface{} {
	if v == math.Trunc(v) && math.Abs(v) < 1<<53 {
		return int64(v)
	}
	return v
}
