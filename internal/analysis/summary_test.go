package analysis

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDistribution(t *testing.T) {
	n := Distribution("judgment_amount", []float64{5, 1, math.NaN(), 4, 2, 3})

	assert.Equal(t, 5, n.Count)
	assert.Equal(t, 3.0, n.Mean)
	assert.InDelta(t, math.Sqrt(2.5), n.Std, 1e-12)
	assert.Equal(t, 1.0, n.Min)
	assert.Equal(t, 2.0, n.Q25)
	assert.Equal(t, 3.0, n.Q50)
	assert.Equal(t, 4.0, n.Q75)
	assert.Equal(t, 5.0, n.Max)
	assert.Equal(t, []string{"5", "3.00", "1.58", "1.00", "2.00", "3.00", "4.00", "5.00"}, n.Values())
}

func TestDistribution_Quartiles(t *testing.T) {
	tests := []struct {
		name          string
		values        []float64
		q25, q50, q75 float64
	}{
		{name: "even count interpolates", values: []float64{4, 1, 3, 2}, q25: 1.75, q50: 2.5, q75: 3.25},
		{name: "judgment amounts", values: []float64{305, 0, 250, 305}, q25: 187.5, q50: 277.5, q75: 305},
		{name: "two values", values: []float64{10, 20}, q25: 12.5, q50: 15, q75: 17.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := Distribution("judgment_amount", tt.values)
			assert.InDelta(t, tt.q25, n.Q25, 1e-12)
			assert.InDelta(t, tt.q50, n.Q50, 1e-12)
			assert.InDelta(t, tt.q75, n.Q75, 1e-12)
		})
	}
}

func TestDistribution_Degenerate(t *testing.T) {
	empty := Distribution("lat", nil)
	assert.Equal(t, 0, empty.Count)
	assert.True(t, math.IsNaN(empty.Mean))
	assert.Equal(t, []string{"0", "", "", "", "", "", "", ""}, empty.Values())

	single := Distribution("lat", []float64{42.39})
	assert.Equal(t, 42.39, single.Mean)
	assert.True(t, math.IsNaN(single.Std))
	assert.Equal(t, 42.39, single.Q75)
}

func TestSummarizeFrame(t *testing.T) {
	qual, quant, err := SummarizeFrame(ticketsFrame(t))
	require.NoError(t, err)

	var qualNames, quantNames []string
	for _, s := range qual {
		qualNames = append(qualNames, s.Column)
	}
	for _, n := range quant {
		quantNames = append(quantNames, n.Column)
	}
	assert.Equal(t, []string{"state", "ticket_issued_date", "hearing_date"}, qualNames)
	assert.Equal(t, []string{"judgment_amount"}, quantNames)
	assert.Equal(t, 5, quant[0].Count)
	assert.Equal(t, 855.0, quant[0].Max)
}
