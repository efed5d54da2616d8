package features

import (
	"fmt"
	"math"

	"github.com/go-gota/gota/dataframe"

	"blightcli/internal/dataset"
	apperrors "blightcli/internal/errors"
	"blightcli/pkg/contracts/domain"
)

// AddLogTransforms appends log_payment_window, log_judgment_amount,
// daily_payment = judgment_amount / (payment_window + 1) and
// log_daily_payment. Each log is taken of value + offset; a non-positive
// argument is an error. Missing inputs give missing outputs.
func AddLogTransforms(df dataframe.DataFrame, offset float64) (dataframe.DataFrame, error) {
	window, err := dataset.Floats(df, domain.ColPaymentWindow)
	if err != nil {
		return df, err
	}
	judgment, err := dataset.Floats(df, domain.ColJudgmentAmount)
	if err != nil {
		return df, err
	}

	n := len(window)
	logWindow := make([]float64, n)
	logJudgment := make([]float64, n)
	daily := make([]float64, n)
	logDaily := make([]float64, n)

	for i := 0; i < n; i++ {
		if logWindow[i], err = logOf(domain.ColPaymentWindow, i, window[i], offset); err != nil {
			return df, err
		}
		if logJudgment[i], err = logOf(domain.ColJudgmentAmount, i, judgment[i], offset); err != nil {
			return df, err
		}
		daily[i] = judgment[i] / (window[i] + 1)
		if logDaily[i], err = logOf(domain.ColDailyPayment, i, daily[i], offset); err != nil {
			return df, err
		}
	}

	for _, col := range []struct {
		name string
		vals []float64
	}{
		{domain.ColLogPaymentWindow, logWindow},
		{domain.ColLogJudgmentAmount, logJudgment},
		{domain.ColDailyPayment, daily},
		{domain.ColLogDailyPayment, logDaily},
	} {
		if df, err = dataset.Set(df, dataset.FloatSeries(col.name, col.vals)); err != nil {
			return df, err
		}
	}
	return df, nil
}

func logOf(column string, row int, v, offset float64) (float64, error) {
	if math.IsNaN(v) {
		return math.NaN(), nil
	}
	if v+offset <= 0 {
		return 0, apperrors.NewValidationError(
			fmt.Sprintf("log of non-positive %s %g at row %d", column, v+offset, row)).
			WithContext("column", column).
			WithContext("row", row)
	}
	return math.Log(v + offset), nil
}
