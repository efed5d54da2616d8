package domain

import (
	"fmt"
	"strings"
	"time"
)

// Raw ticket columns
const (
	ColTicketID         = "ticket_id"
	ColAgencyName       = "agency_name"
	ColInspectorName    = "inspector_name"
	ColViolatorName     = "violator_name"
	ColAddress          = "address"
	ColCity             = "city"
	ColState            = "state"
	ColZipCode          = "zip_code"
	ColCountry          = "country"
	ColTicketIssuedDate = "ticket_issued_date"
	ColHearingDate      = "hearing_date"
	ColViolationCode    = "violation_code"
	ColJudgmentAmount   = "judgment_amount"
	ColCompliance       = "compliance"
	ColLat              = "lat"
	ColLon              = "lon"
)

// Derived feature columns
const (
	ColComplianceLabel   = "compliance_label"
	ColRegion            = "region"
	ColOutOfState        = "out_of_state"
	ColOutOfTown         = "out_of_town"
	ColTotalViolations   = "total_violations"
	ColPaymentWindow     = "payment_window"
	ColLogPaymentWindow  = "log_payment_window"
	ColLogJudgmentAmount = "log_judgment_amount"
	ColDailyPayment      = "daily_payment"
	ColLogDailyPayment   = "log_daily_payment"
	ColTicketIssuedMonth = "ticket_issued_month"
	ColTicketIssuedWeek  = "ticket_issued_week"
	ColHearingMonth      = "hearing_month"
	ColHearingWeek       = "hearing_week"
	ColX                 = "x"
	ColY                 = "y"
	ColZ                 = "z"
)

// Compliance-rate column suffixes, appended to the rate prefix of the
// grouping column
const (
	SuffixCompliant     = "_compliant"
	SuffixNonCompliant  = "_non_compliant"
	SuffixViolations    = "_violations"
	SuffixCompliancePct = "_compliance_pct"
)

// Labels for the compliance outcome and boolean flags
const (
	LabelCompliant    = "Compliant"
	LabelNonCompliant = "Non-Compliant"
	FlagTrue          = "True"
	FlagFalse         = "False"
	HomeState         = "MI"
	HomeCity          = "detroit"
)

// CombinedAgency replaces the small agencies in agency_name
const CombinedAgency = "Police, Health, & City Hall"

// CombinedAgencies are the agencies merged into CombinedAgency
var CombinedAgencies = []string{
	"Health Department",
	"Detroit Police Department",
	"Neighborhood City Halls",
}

// DateLayout is the canonical timestamp layout written to processed files
const DateLayout = "2006-01-02 15:04:05"

// dateLayouts are accepted when parsing raw timestamps
var dateLayouts = []string{
	DateLayout,
	"2006-01-02",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04:05Z07:00",
	"01/02/2006 15:04",
	"01/02/2006 15:04:05",
	"01/02/2006",
}

// ParseDate parses a raw timestamp in any of the accepted layouts
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", s)
}

// FormatDate renders a timestamp in DateLayout
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// Compliance is the ternary ticket outcome
type Compliance int

const (
	// NotResponsible marks tickets whose violator was found not responsible.
	// These rows carry no label and are excluded from training.
	NotResponsible Compliance = iota - 1
	NonCompliant
	Compliant
)

// ParseCompliance maps a raw compliance cell to its outcome. Empty and NaN
// cells are NotResponsible.
func ParseCompliance(s string) (Compliance, error) {
	switch strings.TrimSpace(s) {
	case "", "NaN", "nan", "NA":
		return NotResponsible, nil
	case "0", "0.0":
		return NonCompliant, nil
	case "1", "1.0":
		return Compliant, nil
	default:
		return NotResponsible, fmt.Errorf("invalid compliance value %q", s)
	}
}

// Label returns the display label, empty for NotResponsible
func (c Compliance) Label() string {
	switch c {
	case Compliant:
		return LabelCompliant
	case NonCompliant:
		return LabelNonCompliant
	default:
		return ""
	}
}

// Known reports whether the outcome is compliant or non-compliant
func (c Compliance) Known() bool {
	return c == Compliant || c == NonCompliant
}

// RatePrefix names the compliance-rate columns of a grouping column:
// agency_name becomes agency, violation_code is kept as is.
func RatePrefix(key string) string {
	if p := strings.TrimSuffix(key, "_name"); p != "" {
		return p
	}
	return key
}

// RateColumns returns the four compliance-rate column names for a key
func RateColumns(key string) (compliant, nonCompliant, violations, pct string) {
	p := RatePrefix(key)
	return p + SuffixCompliant, p + SuffixNonCompliant, p + SuffixViolations, p + SuffixCompliancePct
}
