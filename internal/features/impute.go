package features

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/go-gota/gota/dataframe"
	"gonum.org/v1/gonum/stat"

	"blightcli/internal/dataset"
	apperrors "blightcli/internal/errors"
	"blightcli/pkg/contracts/domain"
)

// Statistic is the central tendency used to impute payment windows
type Statistic string

const (
	StatisticMean   Statistic = "mean"
	StatisticMedian Statistic = "median"
)

// WindowPolicy handles observed hearing dates before the ticket date
type WindowPolicy string

const (
	// PolicyDrop removes rows with a negative payment window.
	PolicyDrop WindowPolicy = "drop"
	// PolicyShift moves their hearing date to ticket date plus the imputed window.
	PolicyShift WindowPolicy = "shift"
)

// ImputeOptions configures ImputeHearingDates
type ImputeOptions struct {
	Statistic Statistic
	Policy    WindowPolicy
}

// DefaultImputeOptions imputes with the mean and drops negative windows
func DefaultImputeOptions() ImputeOptions {
	return ImputeOptions{Statistic: StatisticMean, Policy: PolicyDrop}
}

// ImputeResult summarizes an imputation pass
type ImputeResult struct {
	Observed int
	Imputed  int
	Dropped  int
	Shifted  int
	// Window is the imputed payment window in days, NaN when nothing was observed.
	Window float64
}

// ImputeHearingDates appends payment_window, the hearing delay in days,
// and fills missing hearing dates with ticket date plus the mean or
// median window of the rows that have one. Rows with a negative observed
// window are dropped or shifted per opts.Policy and never feed the
// statistic. Observed rows come first in the output, imputed rows after,
// each group in input order.
func ImputeHearingDates(df dataframe.DataFrame, opts ImputeOptions) (dataframe.DataFrame, ImputeResult, error) {
	res := ImputeResult{Window: math.NaN()}
	if opts.Statistic == "" {
		opts.Statistic = StatisticMean
	}
	if opts.Policy == "" {
		opts.Policy = PolicyDrop
	}

	ticket, ticketOK, err := dataset.Dates(df, domain.ColTicketIssuedDate)
	if err != nil {
		return df, res, err
	}
	hearing, hearingOK, err := dataset.Dates(df, domain.ColHearingDate)
	if err != nil {
		return df, res, err
	}

	windows := make([]float64, len(ticket))
	observed := make([]float64, 0, len(ticket))
	var negative, missing []int
	for i := range ticket {
		if !ticketOK[i] {
			return df, res, apperrors.NewValidationError(
				fmt.Sprintf("missing %s at row %d", domain.ColTicketIssuedDate, i)).
				WithContext("row", i)
		}
		if !hearingOK[i] {
			missing = append(missing, i)
			continue
		}
		windows[i] = days(hearing[i].Sub(ticket[i]))
		if windows[i] < 0 {
			negative = append(negative, i)
			continue
		}
		observed = append(observed, windows[i])
	}

	res.Observed = len(observed)
	if len(observed) > 0 {
		res.Window = centralTendency(observed, opts.Statistic)
	}
	if len(observed) == 0 && (len(missing) > 0 || (len(negative) > 0 && opts.Policy == PolicyShift)) {
		return df, res, apperrors.NewValidationError("no observed hearing dates to impute from")
	}

	fill := func(i int) {
		windows[i] = res.Window
		hearing[i] = ticket[i].Add(fromDays(res.Window))
		hearingOK[i] = true
	}

	isNegative := make(map[int]bool, len(negative))
	for _, i := range negative {
		isNegative[i] = true
		if opts.Policy == PolicyShift {
			fill(i)
			res.Shifted++
		} else {
			res.Dropped++
		}
	}
	isMissing := make(map[int]bool, len(missing))
	for _, i := range missing {
		isMissing[i] = true
		fill(i)
	}
	res.Imputed = len(missing)

	if df, err = dataset.Set(df, dataset.DateSeries(domain.ColHearingDate, hearing, hearingOK)); err != nil {
		return df, res, err
	}
	if df, err = dataset.Set(df, dataset.FloatSeries(domain.ColPaymentWindow, windows)); err != nil {
		return df, res, err
	}

	kept := make([]int, 0, len(ticket))
	for i := range ticket {
		if isMissing[i] || (isNegative[i] && opts.Policy == PolicyDrop) {
			continue
		}
		kept = append(kept, i)
	}

	out, err := dataset.Concat(dataset.TakeRows(df, kept), dataset.TakeRows(df, missing))
	if err != nil {
		return df, res, fmt.Errorf("stack imputed rows: %w", err)
	}
	return out, res, nil
}

func centralTendency(x []float64, s Statistic) float64 {
	if s == StatisticMedian {
		return median(x)
	}
	return stat.Mean(x, nil)
}

// median averages the two middle values of an even-length sample
func median(x []float64) float64 {
	sorted := append([]float64(nil), x...)
	sort.Float64s(sorted)
	n := len(sorted)
	if n%2 == 1 {
		return sorted[n/2]
	}
	return (sorted[n/2-1] + sorted[n/2]) / 2
}

func days(d time.Duration) float64 {
	return d.Hours() / 24
}

func fromDays(v float64) time.Duration {
	return time.Duration(math.Round(v * float64(24*time.Hour)))
}
