package features

import (
	"testing"

	"github.com/go-gota/gota/dataframe"
	"github.com/stretchr/testify/require"

	"blightcli/internal/dataset"
)

func frame(t *testing.T, records [][]string) dataframe.DataFrame {
	t.Helper()
	df, err := dataset.FromRecords(records)
	require.NoError(t, err)
	return df
}

func strs(t *testing.T, df dataframe.DataFrame, col string) []string {
	t.Helper()
	v, err := dataset.Strings(df, col)
	require.NoError(t, err)
	return v
}

func floats(t *testing.T, df dataframe.DataFrame, col string) []float64 {
	t.Helper()
	v, err := dataset.Floats(df, col)
	require.NoError(t, err)
	return v
}

// selectedHeader matches SelectedColumns
var selectedHeader = []string{
	"ticket_id", "agency_name", "inspector_name", "violator_name", "city", "state", "zip_code",
	"ticket_issued_date", "hearing_date", "violation_code", "judgment_amount", "compliance", "lat", "lon",
}

// selectedFixture is a small training table in SelectedColumns layout
func selectedFixture(t *testing.T) dataframe.DataFrame {
	t.Helper()
	return frame(t, [][]string{
		selectedHeader,
		{"1", "Buildings, Safety Engineering & Env Department", "Sims, Martinzie", "INVESTMENT, INC.", "DET", "MI", "48208",
			"2008-06-01 10:00:00", "2008-06-15 10:00:00", "9-1-36(a)", "305", "0", "42.39", "-83.12"},
		{"2", "Detroit Police Department", "Williams, Darrin", "Michigan Ave 1", "Detroit", "MI", "48201-1234",
			"2008-07-01 00:00:00", "", "22-2-88", "855", "1", "42.33", "-83.05"},
		{"3", "Health Department", "Sims, Martinzie", "INVESTMENT, INC.", "Southfield", "MI", "48075",
			"2008-08-01 00:00:00", "2008-08-29 00:00:00", "9-1-36(a)", "140", "1", "42.47", "-83.22"},
	})
}
