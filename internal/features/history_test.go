package features

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddViolationHistory(t *testing.T) {
	df := frame(t, [][]string{
		{"violator_name", "ticket_issued_date"},
		{"acme", "2008-03-01 09:00:00"},
		{"acme", "2008-01-01 09:00:00"},
		{"bolt", "2008-02-01 09:00:00"},
		{"acme", "2008-03-01 09:00:00"},
		{"acme", "2008-04-01 09:00:00"},
		{"", "2008-04-01 09:00:00"},
	})

	out, err := AddViolationHistory(df)
	require.NoError(t, err)

	got := floats(t, out, "total_violations")
	require.Len(t, got, 6)
	assert.Equal(t, []float64{3, 1, 1, 3, 4}, got[:5], "same timestamp shares the cumulative count")
	assert.True(t, math.IsNaN(got[5]))
}
