package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSummaryTable(t *testing.T) {
	all, err := DescribeAll(ticketsFrame(t), "state", "hearing_date")
	require.NoError(t, err)

	table := SummaryTable("Describe", all)
	assert.Equal(t, []string{"column", "observations", "count", "missing", "pct_missing", "unique", "top", "freq", "first", "last"}, table.Headers)
	require.Len(t, table.Rows, 2)
	for _, row := range table.Rows {
		assert.Len(t, row, len(table.Headers))
	}
	assert.Equal(t, []string{"", ""}, table.Rows[0][8:])
	assert.Equal(t, "2008-06-15 10:00:00", table.Rows[1][9])
}

func TestCountTable(t *testing.T) {
	table := CountTable("Country", "country", []Count{{Value: "USA", Count: 3, Percent: 100}})
	assert.Equal(t, []string{"country", "count", "percent"}, table.Headers)
	assert.Equal(t, [][]string{{"USA", "3", "100.00"}}, table.Rows)
}

func TestCrossTable(t *testing.T) {
	table := CrossTable("Agency", "agency_name", "compliance_label", []CrossCount{{A: "Police", B: "Compliant", Count: 1, Percent: 12.5}})
	assert.Equal(t, [][]string{{"Police", "Compliant", "1", "12.50"}}, table.Rows)
}

func TestConflictTable(t *testing.T) {
	table := ConflictTable("Hearing before ticket", []DateConflict{{Row: 4, TicketIssued: "b", Hearing: "a"}})
	assert.Equal(t, [][]string{{"4", "b", "a"}}, table.Rows)
}
