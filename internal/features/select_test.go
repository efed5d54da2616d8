package features

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"blightcli/internal/dataset"
	apperrors "blightcli/internal/errors"
)

func rawRow(id, ticket, hearing, judgment, compliance string) []string {
	return []string{id, "Buildings", "Sims", "Acme", "Detroit", "MI", "48208",
		ticket, hearing, "9-1-36(a)", judgment, compliance, "42.3", "-83.1"}
}

func TestSelect_Training(t *testing.T) {
	header := append(append([]string(nil), selectedHeader...), "violation_description")
	extra := func(row []string) []string { return append(row, "Failure to obtain certificate") }

	df := frame(t, [][]string{
		header,
		extra(rawRow("1", "2008-06-01", "2008-06-15", "305", "1")),
		extra(rawRow("2", "2008-06-01", "2008-06-15", "305", "")),
		extra(rawRow("3", "2008-06-01", "2008-05-15", "305", "0")),
		extra(rawRow("4", "2008-06-01", "2008-06-01", "305", "0")),
		extra(rawRow("5", "2008-06-01", "2008-06-15", "0", "0")),
		extra(rawRow("6", "2008-06-01", "2008-06-15", "", "1")),
		extra(rawRow("7", "2008-06-01", "", "140", "0")),
		extra(rawRow("8", "2008-06-01", "2008-06-15", "-5", "1.0")),
	})

	out, res, err := Select(df, true)
	require.NoError(t, err)

	assert.Equal(t, []string{"1", "7"}, strs(t, out, "ticket_id"), "missing hearing dates are kept")
	assert.Equal(t, SelectedColumns, out.Names())
	assert.False(t, dataset.HasColumn(out, "violation_description"))
	assert.Equal(t, 8, res.Input)
	assert.Equal(t, map[string]int{
		ReasonNullCompliance:        1,
		ReasonHearingNotAfterTicket: 2,
		ReasonNonPositiveJudgment:   3,
	}, res.Dropped)
}

func TestSelect_NotTraining(t *testing.T) {
	df := frame(t, [][]string{
		selectedHeader,
		rawRow("1", "2008-06-01", "2008-05-15", "0", ""),
	})

	out, res, err := Select(df, false)
	require.NoError(t, err)
	assert.Equal(t, 1, out.Nrow())
	assert.Empty(t, res.Dropped)
}

func TestSelect_Errors(t *testing.T) {
	t.Run("missing column", func(t *testing.T) {
		df := frame(t, [][]string{{"ticket_id"}, {"1"}})
		_, _, err := Select(df, true)
		assert.True(t, apperrors.IsType(err, apperrors.ErrTypeSchema))
	})

	t.Run("non-numeric judgment", func(t *testing.T) {
		df := frame(t, [][]string{selectedHeader, rawRow("1", "2008-06-01", "2008-06-15", "lots", "1")})
		_, _, err := Select(df, true)
		assert.True(t, apperrors.IsType(err, apperrors.ErrTypeParsing))
	})

	t.Run("invalid compliance", func(t *testing.T) {
		df := frame(t, [][]string{selectedHeader, rawRow("1", "2008-06-01", "2008-06-15", "10", "maybe")})
		_, _, err := Select(df, true)
		assert.True(t, apperrors.IsType(err, apperrors.ErrTypeParsing))
	})
}
