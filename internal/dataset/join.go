package dataset

import (
	"fmt"
	"math"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"

	apperrors "blightcli/internal/errors"
)

// InnerJoin keeps the left rows with at least one matching key on the
// right, in left order. A key matching several right rows fans out.
// Missing keys never match.
func InnerJoin(left, right dataframe.DataFrame, key string) (dataframe.DataFrame, error) {
	return hashJoin(left, right, key, false)
}

// LeftJoin keeps every left row; right columns are missing where no key
// matches.
func LeftJoin(left, right dataframe.DataFrame, key string) (dataframe.DataFrame, error) {
	return hashJoin(left, right, key, true)
}

func hashJoin(left, right dataframe.DataFrame, key string, keepUnmatched bool) (dataframe.DataFrame, error) {
	leftKeys, err := Strings(left, key)
	if err != nil {
		return dataframe.DataFrame{}, err
	}
	rightKeys, err := Strings(right, key)
	if err != nil {
		return dataframe.DataFrame{}, err
	}

	rightCols := make([]string, 0, right.Ncol())
	for _, name := range right.Names() {
		if name == key {
			continue
		}
		if HasColumn(left, name) {
			return dataframe.DataFrame{}, apperrors.NewSchemaError(
				fmt.Sprintf("column %q exists on both sides of the join on %q", name, key))
		}
		rightCols = append(rightCols, name)
	}

	index := make(map[string][]int, len(rightKeys))
	for j, k := range rightKeys {
		if k == "" {
			continue
		}
		index[k] = append(index[k], j)
	}

	leftIdx := make([]int, 0, len(leftKeys))
	rightIdx := make([]int, 0, len(leftKeys))
	for i, k := range leftKeys {
		matches := index[k]
		if k == "" {
			matches = nil
		}
		if len(matches) == 0 {
			if keepUnmatched {
				leftIdx = append(leftIdx, i)
				rightIdx = append(rightIdx, -1)
			}
			continue
		}
		for _, j := range matches {
			leftIdx = append(leftIdx, i)
			rightIdx = append(rightIdx, j)
		}
	}

	out := TakeRows(left, leftIdx)
	for _, name := range rightCols {
		out, err = Set(out, gather(right.Col(name), rightIdx))
		if err != nil {
			return dataframe.DataFrame{}, fmt.Errorf("join column %s: %w", name, err)
		}
	}
	return out, nil
}

// gather picks s[idx[i]] for each i; a negative index yields a missing value
func gather(s series.Series, idx []int) series.Series {
	if s.Type() == series.Float {
		src := s.Float()
		vals := make([]float64, len(idx))
		for i, j := range idx {
			if j < 0 {
				vals[i] = math.NaN()
				continue
			}
			vals[i] = src[j]
		}
		return FloatSeries(s.Name, vals)
	}

	vals := make([]string, len(idx))
	for i, j := range idx {
		if j < 0 {
			continue
		}
		e := s.Elem(j)
		if !IsMissing(e) {
			vals[i] = e.String()
		}
	}
	return StringSeries(s.Name, vals)
}
