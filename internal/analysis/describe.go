package analysis

import (
	"strconv"

	"github.com/go-gota/gota/dataframe"

	"blightcli/internal/dataset"
	"blightcli/pkg/contracts/domain"
)

// Summary is the describe record of one column
type Summary struct {
	Column       string
	Observations int
	Count        int
	Missing      int
	PctMissing   float64
	Unique       int
	Top          string
	Freq         int

	// Temporal is set when every present value is a timestamp. First and
	// Last then hold the observed date range.
	Temporal bool
	First    string
	Last     string
}

var summaryFields = []string{"observations", "count", "missing", "pct_missing", "unique", "top", "freq"}

// Fields returns the field names in output order
func (s Summary) Fields() []string {
	fields := append([]string(nil), summaryFields...)
	if s.Temporal {
		fields = append(fields, "first", "last")
	}
	return fields
}

// Values returns the field values in the order of Fields
func (s Summary) Values() []string {
	values := []string{
		strconv.Itoa(s.Observations),
		strconv.Itoa(s.Count),
		strconv.Itoa(s.Missing),
		strconv.FormatFloat(s.PctMissing, 'f', 2, 64),
		strconv.Itoa(s.Unique),
		s.Top,
		strconv.Itoa(s.Freq),
	}
	if s.Temporal {
		values = append(values, s.First, s.Last)
	}
	return values
}

// Describe summarizes column: dataset size, present and missing counts,
// distinct values and the most frequent value. Ties for the most frequent
// value go to the lexicographically smallest. df is only read.
func Describe(df dataframe.DataFrame, column string) (Summary, error) {
	values, err := dataset.Strings(df, column)
	if err != nil {
		return Summary{}, err
	}

	s := Summary{Column: column, Observations: len(values)}
	freq := make(map[string]int)
	for _, v := range values {
		if v == "" {
			s.Missing++
			continue
		}
		freq[v]++
	}
	s.Count = s.Observations - s.Missing
	s.Unique = len(freq)
	if s.Observations > 0 {
		s.PctMissing = float64(s.Missing) * 100 / float64(s.Observations)
	}
	for v, n := range freq {
		if n > s.Freq || (n == s.Freq && v < s.Top) {
			s.Top, s.Freq = v, n
		}
	}

	s.Temporal, s.First, s.Last = dateRange(values)
	return s, nil
}

// dateRange reports whether every present value parses as a timestamp and,
// if so, the earliest and latest of them. DateLayout sorts as text.
func dateRange(values []string) (temporal bool, first, last string) {
	for _, v := range values {
		if v == "" {
			continue
		}
		// bare numbers are not dates even when a layout would accept them
		if _, err := strconv.ParseFloat(v, 64); err == nil {
			return false, "", ""
		}
		t, err := domain.ParseDate(v)
		if err != nil {
			return false, "", ""
		}
		f := domain.FormatDate(t)
		if !temporal || f < first {
			first = f
		}
		if !temporal || f > last {
			last = f
		}
		temporal = true
	}
	return temporal, first, last
}

// DescribeAll describes each named column in order
func DescribeAll(df dataframe.DataFrame, columns ...string) ([]Summary, error) {
	out := make([]Summary, 0, len(columns))
	for _, c := range columns {
		s, err := Describe(df, c)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}
