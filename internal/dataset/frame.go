package dataset

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"

	apperrors "blightcli/internal/errors"
	"blightcli/pkg/contracts/domain"
)

// IsMissingString reports whether a raw cell counts as missing
func IsMissingString(s string) bool {
	switch strings.TrimSpace(s) {
	case "", "NaN", "nan", "NA", "<nil>":
		return true
	}
	return false
}

// IsMissing reports whether a series element is missing
func IsMissing(e series.Element) bool {
	if e.IsNA() {
		return true
	}
	if e.Type() == series.Float {
		return math.IsNaN(e.Float())
	}
	return IsMissingString(e.String())
}

// HasColumn reports whether df has a column named name
func HasColumn(df dataframe.DataFrame, name string) bool {
	for _, n := range df.Names() {
		if n == name {
			return true
		}
	}
	return false
}

// RequireColumns returns a schema error naming the first absent column
func RequireColumns(df dataframe.DataFrame, names ...string) error {
	if df.Err != nil {
		return df.Err
	}
	for _, name := range names {
		if !HasColumn(df, name) {
			return apperrors.MissingColumn(name)
		}
	}
	return nil
}

// Column returns the named series or a schema error
func Column(df dataframe.DataFrame, name string) (series.Series, error) {
	if err := RequireColumns(df, name); err != nil {
		return series.Series{}, err
	}
	return df.Col(name), nil
}

// Strings returns the column as trimmed strings, with missing cells as ""
func Strings(df dataframe.DataFrame, name string) ([]string, error) {
	s, err := Column(df, name)
	if err != nil {
		return nil, err
	}
	out := make([]string, s.Len())
	for i := range out {
		e := s.Elem(i)
		if IsMissing(e) {
			continue
		}
		if e.Type() == series.Float {
			out[i] = formatFloat(e.Float())
			continue
		}
		out[i] = strings.TrimSpace(e.String())
	}
	return out, nil
}

// Floats returns the column as numbers, with missing cells as NaN. A
// present cell that is not a number is a parsing error.
func Floats(df dataframe.DataFrame, name string) ([]float64, error) {
	s, err := Column(df, name)
	if err != nil {
		return nil, err
	}
	if s.Type() == series.Float {
		return s.Float(), nil
	}
	out := make([]float64, s.Len())
	for i := range out {
		e := s.Elem(i)
		if IsMissing(e) {
			out[i] = math.NaN()
			continue
		}
		raw := strings.TrimSpace(e.String())
		v, perr := strconv.ParseFloat(raw, 64)
		if perr != nil {
			return nil, apperrors.InvalidValue(name, i, raw, perr)
		}
		out[i] = v
	}
	return out, nil
}

// Dates parses the column as timestamps. valid[i] is false for missing
// cells. A present cell in no known layout is a parsing error.
func Dates(df dataframe.DataFrame, name string) (dates []time.Time, valid []bool, err error) {
	raw, err := Strings(df, name)
	if err != nil {
		return nil, nil, err
	}
	dates = make([]time.Time, len(raw))
	valid = make([]bool, len(raw))
	for i, v := range raw {
		if v == "" {
			continue
		}
		t, perr := domain.ParseDate(v)
		if perr != nil {
			return nil, nil, apperrors.InvalidValue(name, i, v, perr)
		}
		dates[i] = t
		valid[i] = true
	}
	return dates, valid, nil
}

// StringSeries builds a string column. Empty values are missing.
func StringSeries(name string, values []string) series.Series {
	return series.New(values, series.String, name)
}

// FloatSeries builds a float column. NaN values are missing.
func FloatSeries(name string, values []float64) series.Series {
	return series.New(values, series.Float, name)
}

// DateSeries renders timestamps in the canonical layout, "" where !valid
func DateSeries(name string, dates []time.Time, valid []bool) series.Series {
	out := make([]string, len(dates))
	for i, d := range dates {
		if valid[i] {
			out[i] = domain.FormatDate(d)
		}
	}
	return StringSeries(name, out)
}

// Set replaces or appends a column
func Set(df dataframe.DataFrame, s series.Series) (dataframe.DataFrame, error) {
	out := df.Mutate(s)
	if out.Err != nil {
		return df, out.Err
	}
	return out, nil
}

// Drop removes the named columns, ignoring names that are absent
func Drop(df dataframe.DataFrame, names ...string) dataframe.DataFrame {
	present := make([]string, 0, len(names))
	for _, n := range names {
		if HasColumn(df, n) {
			present = append(present, n)
		}
	}
	if len(present) == 0 {
		return df
	}
	return df.Drop(present)
}

// TakeRows returns the rows at idx in that order
func TakeRows(df dataframe.DataFrame, idx []int) dataframe.DataFrame {
	if len(idx) == 0 {
		return emptyLike(df)
	}
	return df.Subset(idx)
}

// KeepRows returns the rows where keep is true, preserving order
func KeepRows(df dataframe.DataFrame, keep []bool) dataframe.DataFrame {
	idx := make([]int, 0, len(keep))
	for i, k := range keep {
		if k {
			idx = append(idx, i)
		}
	}
	if len(idx) == df.Nrow() {
		return df
	}
	return TakeRows(df, idx)
}

// Concat stacks b below a. Both must have the same columns.
func Concat(a, b dataframe.DataFrame) (dataframe.DataFrame, error) {
	switch {
	case b.Nrow() == 0:
		return a, nil
	case a.Nrow() == 0:
		return b.Select(a.Names()), nil
	}
	out := a.RBind(b)
	if out.Err != nil {
		return a, out.Err
	}
	return out, nil
}

// emptyLike returns a zero-row frame with df's columns and types
func emptyLike(df dataframe.DataFrame) dataframe.DataFrame {
	cols := make([]series.Series, 0, df.Ncol())
	for _, name := range df.Names() {
		s := df.Col(name)
		if s.Type() == series.Float {
			cols = append(cols, FloatSeries(name, []float64{}))
			continue
		}
		cols = append(cols, series.New([]string{}, s.Type(), name))
	}
	return dataframe.New(cols...)
}

// Records renders df as a header row followed by data rows. Missing cells
// are empty and floats carry no trailing zeros.
func Records(df dataframe.DataFrame) [][]string {
	out := make([][]string, 0, df.Nrow()+1)
	out = append(out, append([]string(nil), df.Names()...))
	_ = EachRecord(df, func(row []string) error {
		out = append(out, row)
		return nil
	})
	return out
}

// EachRecord renders the data rows of df one at a time, in the format of
// Records, and stops at the first error returned by fn
func EachRecord(df dataframe.DataFrame, fn func(row []string) error) error {
	names := df.Names()
	cols := make([]series.Series, len(names))
	for j, name := range names {
		cols[j] = df.Col(name)
	}

	for i := 0; i < df.Nrow(); i++ {
		row := make([]string, len(cols))
		for j, s := range cols {
			e := s.Elem(i)
			if IsMissing(e) {
				continue
			}
			if e.Type() == series.Float {
				row[j] = formatFloat(e.Float())
				continue
			}
			row[j] = e.String()
		}
		if err := fn(row); err != nil {
			return err
		}
	}
	return nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
