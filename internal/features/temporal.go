package features

import (
	"math"

	"github.com/go-gota/gota/dataframe"

	"blightcli/internal/dataset"
	"blightcli/pkg/contracts/domain"
)

// DecomposeDates appends the month abbreviation and ISO week of the ticket
// and hearing dates. With drop set the two timestamp columns are removed.
func DecomposeDates(df dataframe.DataFrame, drop bool) (dataframe.DataFrame, error) {
	parts := []struct {
		source, month, week string
	}{
		{domain.ColTicketIssuedDate, domain.ColTicketIssuedMonth, domain.ColTicketIssuedWeek},
		{domain.ColHearingDate, domain.ColHearingMonth, domain.ColHearingWeek},
	}

	for _, p := range parts {
		dates, ok, err := dataset.Dates(df, p.source)
		if err != nil {
			return df, err
		}
		months := make([]string, len(dates))
		weeks := make([]float64, len(dates))
		for i, d := range dates {
			if !ok[i] {
				weeks[i] = math.NaN()
				continue
			}
			months[i] = d.Format("Jan")
			_, w := d.ISOWeek()
			weeks[i] = float64(w)
		}
		if df, err = dataset.Set(df, dataset.StringSeries(p.month, months)); err != nil {
			return df, err
		}
		if df, err = dataset.Set(df, dataset.FloatSeries(p.week, weeks)); err != nil {
			return df, err
		}
	}

	if drop {
		df = dataset.Drop(df, domain.ColTicketIssuedDate, domain.ColHearingDate)
	}
	return df, nil
}
