package features

import (
	"github.com/go-gota/gota/dataframe"

	"blightcli/internal/dataset"
	apperrors "blightcli/internal/errors"
	"blightcli/pkg/contracts/domain"
)

// SelectedColumns are the predictors, target and identifiers kept for
// feature engineering, in output order
var SelectedColumns = []string{
	domain.ColTicketID,
	domain.ColAgencyName,
	domain.ColInspectorName,
	domain.ColViolatorName,
	domain.ColCity,
	domain.ColState,
	domain.ColZipCode,
	domain.ColTicketIssuedDate,
	domain.ColHearingDate,
	domain.ColViolationCode,
	domain.ColJudgmentAmount,
	domain.ColCompliance,
	domain.ColLat,
	domain.ColLon,
}

// Drop reasons reported by Select and ImputeHearingDates
const (
	ReasonNullCompliance        = "null_compliance"
	ReasonHearingNotAfterTicket = "hearing_not_after_ticket"
	ReasonNonPositiveJudgment   = "non_positive_judgment"
	ReasonNegativeWindow        = "negative_payment_window"
)

// SelectResult counts the rows removed by Select, keyed by reason
type SelectResult struct {
	Input   int
	Dropped map[string]int
}

// Select keeps SelectedColumns. For training data it first removes rows
// that are not responsible, rows whose hearing date is present but not
// after the ticket date, and rows without a positive judgment amount.
// Rows with no hearing date are kept for imputation.
func Select(df dataframe.DataFrame, train bool) (dataframe.DataFrame, SelectResult, error) {
	res := SelectResult{Input: df.Nrow(), Dropped: map[string]int{}}
	if err := dataset.RequireColumns(df, SelectedColumns...); err != nil {
		return df, res, err
	}

	if train {
		keep, err := trainingMask(df, res.Dropped)
		if err != nil {
			return df, res, err
		}
		df = dataset.KeepRows(df, keep)
	}

	out := df.Select(SelectedColumns)
	if out.Err != nil {
		return df, res, out.Err
	}
	return out, res, nil
}

func trainingMask(df dataframe.DataFrame, dropped map[string]int) ([]bool, error) {
	raw, err := dataset.Strings(df, domain.ColCompliance)
	if err != nil {
		return nil, err
	}
	ticket, _, err := dataset.Dates(df, domain.ColTicketIssuedDate)
	if err != nil {
		return nil, err
	}
	hearing, hearingOK, err := dataset.Dates(df, domain.ColHearingDate)
	if err != nil {
		return nil, err
	}
	judgment, err := dataset.Floats(df, domain.ColJudgmentAmount)
	if err != nil {
		return nil, err
	}

	keep := make([]bool, len(raw))
	for i := range raw {
		c, perr := domain.ParseCompliance(raw[i])
		if perr != nil {
			return nil, apperrors.InvalidValue(domain.ColCompliance, i, raw[i], perr)
		}
		switch {
		case !c.Known():
			dropped[ReasonNullCompliance]++
		case hearingOK[i] && !hearing[i].After(ticket[i]):
			dropped[ReasonHearingNotAfterTicket]++
		case !(judgment[i] > 0):
			dropped[ReasonNonPositiveJudgment]++
		default:
			keep[i] = true
		}
	}
	return keep, nil
}
