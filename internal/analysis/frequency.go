package analysis

import (
	"sort"

	"github.com/go-gota/gota/dataframe"

	"blightcli/internal/dataset"
)

// Count is the number of tickets sharing one value, with its share of the
// counted tickets
type Count struct {
	Value   string
	Count   int
	Percent float64
}

// CountBy counts tickets per value of column, sorted by value. Missing
// values are not counted.
func CountBy(df dataframe.DataFrame, column string) ([]Count, error) {
	values, err := dataset.Strings(df, column)
	if err != nil {
		return nil, err
	}
	return tally(values), nil
}

// CrossCount is the number of tickets sharing a pair of values
type CrossCount struct {
	A, B    string
	Count   int
	Percent float64
}

// CrossCountBy counts tickets per (a, b) value pair, sorted by a then b.
// Rows missing either value are not counted.
func CrossCountBy(df dataframe.DataFrame, a, b string) ([]CrossCount, error) {
	av, err := dataset.Strings(df, a)
	if err != nil {
		return nil, err
	}
	bv, err := dataset.Strings(df, b)
	if err != nil {
		return nil, err
	}

	type pair struct{ a, b string }
	counts := make(map[pair]int)
	total := 0
	for i := range av {
		if av[i] == "" || bv[i] == "" {
			continue
		}
		counts[pair{av[i], bv[i]}]++
		total++
	}

	out := make([]CrossCount, 0, len(counts))
	for p, n := range counts {
		out = append(out, CrossCount{A: p.a, B: p.b, Count: n, Percent: float64(n) * 100 / float64(total)})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].A != out[j].A {
			return out[i].A < out[j].A
		}
		return out[i].B < out[j].B
	})
	return out, nil
}

// Spectrum describes the distribution of ticket counts across values, for
// example how many tickets inspectors typically write
func Spectrum(column string, counts []Count) NumericSummary {
	return Distribution(column, CountValues(counts))
}

// CountValues returns the counts as floats for plotting
func CountValues(counts []Count) []float64 {
	out := make([]float64, len(counts))
	for i, c := range counts {
		out[i] = float64(c.Count)
	}
	return out
}

// TopCounts returns the n largest counts, ties broken by value
func TopCounts(counts []Count, n int) []Count {
	out := append([]Count(nil), counts...)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Value < out[j].Value
	})
	if n >= 0 && n < len(out) {
		out = out[:n]
	}
	return out
}

func tally(values []string) []Count {
	counts := make(map[string]int)
	total := 0
	for _, v := range values {
		if v == "" {
			continue
		}
		counts[v]++
		total++
	}

	out := make([]Count, 0, len(counts))
	for v, n := range counts {
		out = append(out, Count{Value: v, Count: n, Percent: float64(n) * 100 / float64(total)})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Value < out[j].Value })
	return out
}
