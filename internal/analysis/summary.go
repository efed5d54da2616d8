package analysis

import (
	"math"
	"sort"
	"strconv"

	"github.com/go-gota/gota/dataframe"
	"gonum.org/v1/gonum/stat"

	"blightcli/internal/dataset"
)

// NumericSummary holds the distribution statistics of a numeric column.
// Quartiles interpolate linearly between the two closest ranks, the way
// pandas describe does.
type NumericSummary struct {
	Column string
	Count  int
	Mean   float64
	Std    float64
	Min    float64
	Q25    float64
	Q50    float64
	Q75    float64
	Max    float64
}

// NumericFields are the NumericSummary field names in output order
var NumericFields = []string{"count", "mean", "std", "min", "25%", "50%", "75%", "max"}

// Values returns the statistics in the order of NumericFields
func (n NumericSummary) Values() []string {
	out := []string{strconv.Itoa(n.Count)}
	for _, v := range []float64{n.Mean, n.Std, n.Min, n.Q25, n.Q50, n.Q75, n.Max} {
		out = append(out, formatStat(v))
	}
	return out
}

// Distribution summarizes values, ignoring NaN. An empty input gives a
// zero count and NaN statistics; a single value has a NaN deviation.
func Distribution(column string, values []float64) NumericSummary {
	x := make([]float64, 0, len(values))
	for _, v := range values {
		if !math.IsNaN(v) {
			x = append(x, v)
		}
	}

	n := NumericSummary{Column: column, Count: len(x)}
	nan := math.NaN()
	if len(x) == 0 {
		n.Mean, n.Std, n.Min, n.Q25, n.Q50, n.Q75, n.Max = nan, nan, nan, nan, nan, nan, nan
		return n
	}
	sort.Float64s(x)

	n.Mean = stat.Mean(x, nil)
	n.Std = nan
	if len(x) > 1 {
		n.Std = stat.StdDev(x, nil)
	}
	n.Min, n.Max = x[0], x[len(x)-1]
	n.Q25 = quantile(x, 0.25)
	n.Q50 = quantile(x, 0.5)
	n.Q75 = quantile(x, 0.75)
	return n
}

// quantile reads the p-quantile of sorted at rank p*(n-1). gonum's
// stat.LinInterp places sample i at p = i/n instead, which moves even the
// median of an odd-sized sample.
func quantile(sorted []float64, p float64) float64 {
	pos := p * float64(len(sorted)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	return sorted[lo] + (sorted[hi]-sorted[lo])*(pos-float64(lo))
}

// SummarizeFrame splits the columns of df into qualitative and quantitative
// ones and summarizes each. A column is quantitative when every present
// value parses as a number.
func SummarizeFrame(df dataframe.DataFrame) (qualitative []Summary, quantitative []NumericSummary, err error) {
	for _, name := range df.Names() {
		if values, ok := numericColumn(df, name); ok {
			quantitative = append(quantitative, Distribution(name, values))
			continue
		}
		s, derr := Describe(df, name)
		if derr != nil {
			return nil, nil, derr
		}
		qualitative = append(qualitative, s)
	}
	return qualitative, quantitative, nil
}

func numericColumn(df dataframe.DataFrame, name string) ([]float64, bool) {
	values, err := dataset.Floats(df, name)
	if err != nil {
		return nil, false
	}
	for _, v := range values {
		if !math.IsNaN(v) {
			return values, true
		}
	}
	return nil, false
}

func formatStat(v float64) string {
	if math.IsNaN(v) {
		return ""
	}
	return strconv.FormatFloat(v, 'f', 2, 64)
}
