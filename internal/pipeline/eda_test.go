package pipeline

import (
	"bytes"
	"context"
	"os"
	"testing"

	"github.com/go-gota/gota/dataframe"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"blightcli/internal/analysis"
	"blightcli/internal/config"
	"blightcli/internal/dataset"
)

func frameFrom(t *testing.T, records [][]string) dataframe.DataFrame {
	t.Helper()
	df, err := dataset.FromRecords(records)
	require.NoError(t, err)
	return df
}

func tableByTitle(t *testing.T, tables []analysis.Table, title string) analysis.Table {
	t.Helper()
	for _, tbl := range tables {
		if tbl.Title == title {
			return tbl
		}
	}
	t.Fatalf("table %q not found", title)
	return analysis.Table{}
}

func TestEDA_EndToEnd(t *testing.T) {
	cfg, paths := setupPrepare(t)
	var out bytes.Buffer

	runner := NewEDA(EDAOptions{Config: cfg, Paths: paths, Out: &out})
	assert.Equal(t, []string{StepLoad, StepDescribe, StepCompliance, StepFrequencies, StepChecks, StepReport}, runner.Steps())

	state := NewState("eda")
	require.NoError(t, runner.Run(context.Background(), state))

	titles := make([]string, len(state.Tables))
	for i, tbl := range state.Tables {
		titles[i] = tbl.Title
	}
	assert.Equal(t, []string{
		"Describe",
		"Compliance",
		"Tickets by agency",
		"Compliance by agency",
		"Count spectra",
		"Top inspector_name",
		"Top violation_code",
		"Top violator_name",
		"Top city",
		"Top state",
		"Top zip_code",
		"Countries",
		"Quality checks",
		"Hearing before ticket (sample)",
		"Judgment amount",
	}, titles)

	describe := tableByTitle(t, state.Tables, "Describe")
	assert.Len(t, describe.Rows, len(DescribedColumns))

	agencies := tableByTitle(t, state.Tables, "Tickets by agency")
	assert.Len(t, agencies.Rows, 2)

	spectra := tableByTitle(t, state.Tables, "Count spectra")
	assert.Len(t, spectra.Rows, len(FrequencyColumns))

	checks := tableByTitle(t, state.Tables, "Quality checks")
	assert.Equal(t, [][]string{
		{"hearing_before_ticket", "0", "0.00"},
		{"zero_judgment_amount", "0", "0.00"},
	}, checks.Rows)
	assert.Empty(t, tableByTitle(t, state.Tables, "Hearing before ticket (sample)").Rows)

	assert.Len(t, state.Figures, 2+len(FrequencyColumns)+1)
	for _, f := range state.Figures {
		assert.FileExists(t, f)
	}

	checksCSV := paths.ReportFile("eda/quality_checks.csv")
	assert.Equal(t, 2, state.Written[checksCSV])
	assert.Equal(t, "check,rows,percent\nhearing_before_ticket,0,0.00\nzero_judgment_amount,0,0.00\n", readFile(t, checksCSV))
	for _, tbl := range state.Tables {
		assert.FileExists(t, paths.ReportFile("eda/"+TableFileName(tbl.Title)))
	}

	workbook := paths.ReportFile(config.EDAWorkbookFileName)
	require.FileExists(t, workbook)
	assert.Equal(t, len(state.Tables), state.Written[workbook])

	f, err := excelize.OpenFile(workbook)
	require.NoError(t, err)
	defer f.Close()
	sheets := f.GetSheetList()
	assert.Len(t, sheets, len(state.Tables))
	assert.Equal(t, "Describe", sheets[0])

	assert.Contains(t, out.String(), "Tickets by agency")
	assert.Contains(t, out.String(), "Quality checks")
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func TestTableFileName(t *testing.T) {
	tests := []struct {
		title string
		want  string
	}{
		{"Quality checks", "quality_checks.csv"},
		{"Hearing before ticket (sample)", "hearing_before_ticket_sample.csv"},
		{"Top zip_code", "top_zip_code.csv"},
		{"  ", "table.csv"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, TableFileName(tt.title))
		})
	}
}

func TestChecksStep_Conflicts(t *testing.T) {
	df := frameFrom(t, [][]string{
		{"ticket_issued_date", "hearing_date", "judgment_amount"},
		{"2008-06-01 00:00:00", "2008-05-01 00:00:00", "0"},
		{"2008-06-01 00:00:00", "2008-06-01 00:00:00", "250"},
		{"2008-06-01 00:00:00", "2008-07-01 00:00:00", "305"},
		{"2008-06-01 00:00:00", "", "305"},
	})
	paths, err := config.NewPaths(config.PathsConfig{Root: t.TempDir()})
	require.NoError(t, err)

	state := NewState("checks")
	state.Joined = df
	eda := config.EDAConfig{Bins: 10, SampleSize: 1, Seed: 7, TopN: 5}
	require.NoError(t, NewChecksStep(paths, eda, nil).Execute(context.Background(), state))

	checks := tableByTitle(t, state.Tables, "Quality checks")
	assert.Equal(t, [][]string{
		{"hearing_before_ticket", "2", "50.00"},
		{"zero_judgment_amount", "1", "25.00"},
	}, checks.Rows)

	sample := tableByTitle(t, state.Tables, "Hearing before ticket (sample)")
	require.Len(t, sample.Rows, 1)
	assert.Contains(t, []string{"0", "1"}, sample.Rows[0][0])

	amounts := tableByTitle(t, state.Tables, "Judgment amount")
	require.Len(t, amounts.Rows, 1)
	assert.Equal(t, []string{"judgment_amount", "4", "215.00"}, amounts.Rows[0][:3])
	assert.Equal(t, []string{"187.50", "277.50", "305.00"}, amounts.Rows[0][5:8])
	assert.FileExists(t, paths.FigureFile("judgment_amount.png"))
}
