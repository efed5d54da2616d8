package features

import (
	"fmt"
	"sort"

	"github.com/go-gota/gota/dataframe"

	"blightcli/internal/dataset"
	apperrors "blightcli/internal/errors"
	"blightcli/pkg/contracts/domain"
)

// GroupRate is the compliance tally of one value of a grouping column
type GroupRate struct {
	Group        string
	Compliant    int
	NonCompliant int
}

// Total is the number of tickets with a known outcome in the group
func (g GroupRate) Total() int {
	return g.Compliant + g.NonCompliant
}

// Pct is the percentage of compliant tickets. A group always has at least
// one ticket, so the rate is defined; single-outcome groups give 0 or 100.
func (g GroupRate) Pct() float64 {
	return float64(g.Compliant) * 100 / float64(g.Total())
}

// ComplianceRates tallies compliant and non-compliant tickets per value
// of key, sorted by group value. Rows with a missing key or an unknown
// outcome are not counted.
func ComplianceRates(df dataframe.DataFrame, key string) ([]GroupRate, error) {
	groups, err := dataset.Strings(df, key)
	if err != nil {
		return nil, err
	}
	raw, err := dataset.Strings(df, domain.ColCompliance)
	if err != nil {
		return nil, err
	}

	tally := make(map[string]*GroupRate)
	for i, g := range groups {
		c, perr := domain.ParseCompliance(raw[i])
		if perr != nil {
			return nil, apperrors.InvalidValue(domain.ColCompliance, i, raw[i], perr)
		}
		if g == "" || !c.Known() {
			continue
		}
		r, ok := tally[g]
		if !ok {
			r = &GroupRate{Group: g}
			tally[g] = r
		}
		if c == domain.Compliant {
			r.Compliant++
		} else {
			r.NonCompliant++
		}
	}

	out := make([]GroupRate, 0, len(tally))
	for _, r := range tally {
		out = append(out, *r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Group < out[j].Group })
	return out, nil
}

// AddComplianceRate computes the rates for key and left-joins the four
// rate columns back onto every row. Rows whose key has no rate get missing
// values. Existing rate columns are replaced, so the operation is
// idempotent.
func AddComplianceRate(df dataframe.DataFrame, key string) (dataframe.DataFrame, []GroupRate, error) {
	rates, err := ComplianceRates(df, key)
	if err != nil {
		return df, nil, err
	}

	cName, nName, vName, pName := domain.RateColumns(key)
	joined, err := dataset.LeftJoin(dataset.Drop(df, cName, nName, vName, pName), RateFrame(key, rates), key)
	if err != nil {
		return df, nil, fmt.Errorf("join %s rates: %w", key, err)
	}
	return joined, rates, nil
}

// RateFrame renders rates as a table keyed by the grouping column
func RateFrame(key string, rates []GroupRate) dataframe.DataFrame {
	groups := make([]string, len(rates))
	compliant := make([]float64, len(rates))
	nonCompliant := make([]float64, len(rates))
	total := make([]float64, len(rates))
	pct := make([]float64, len(rates))
	for i, r := range rates {
		groups[i] = r.Group
		compliant[i] = float64(r.Compliant)
		nonCompliant[i] = float64(r.NonCompliant)
		total[i] = float64(r.Total())
		pct[i] = r.Pct()
	}

	cName, nName, vName, pName := domain.RateColumns(key)
	return dataframe.New(
		dataset.StringSeries(key, groups),
		dataset.FloatSeries(cName, compliant),
		dataset.FloatSeries(nName, nonCompliant),
		dataset.FloatSeries(vName, total),
		dataset.FloatSeries(pName, pct),
	)
}
