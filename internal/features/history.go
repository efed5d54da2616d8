package features

import (
	"math"
	"sort"

	"github.com/go-gota/gota/dataframe"

	"blightcli/internal/dataset"
	"blightcli/pkg/contracts/domain"
)

// AddViolationHistory appends total_violations: for each ticket, the
// number of tickets issued to the same violator at or before its issue
// time. Tickets with identical issue times share the count. Rows without
// a violator name get a missing count.
func AddViolationHistory(df dataframe.DataFrame) (dataframe.DataFrame, error) {
	names, err := dataset.Strings(df, domain.ColViolatorName)
	if err != nil {
		return df, err
	}
	issued, issuedOK, err := dataset.Dates(df, domain.ColTicketIssuedDate)
	if err != nil {
		return df, err
	}

	type dayCount struct {
		day   int64
		count int
	}
	perViolator := make(map[string]map[int64]int)
	for i, name := range names {
		if name == "" || !issuedOK[i] {
			continue
		}
		if perViolator[name] == nil {
			perViolator[name] = make(map[int64]int)
		}
		perViolator[name][issued[i].Unix()]++
	}

	cumulative := make(map[string]map[int64]int, len(perViolator))
	for name, byDay := range perViolator {
		days := make([]dayCount, 0, len(byDay))
		for d, c := range byDay {
			days = append(days, dayCount{day: d, count: c})
		}
		sort.Slice(days, func(a, b int) bool { return days[a].day < days[b].day })

		running := 0
		cumulative[name] = make(map[int64]int, len(days))
		for _, dc := range days {
			running += dc.count
			cumulative[name][dc.day] = running
		}
	}

	totals := make([]float64, len(names))
	for i, name := range names {
		if name == "" || !issuedOK[i] {
			totals[i] = math.NaN()
			continue
		}
		totals[i] = float64(cumulative[name][issued[i].Unix()])
	}
	return dataset.Set(df, dataset.FloatSeries(domain.ColTotalViolations, totals))
}
