package features

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "blightcli/internal/errors"
)

func TestAddLogTransforms(t *testing.T) {
	df := frame(t, [][]string{
		{"payment_window", "judgment_amount"},
		{"14", "305"},
		{"0.5", "140"},
		{"", "200"},
	})

	tests := []struct {
		name   string
		offset float64
	}{
		{name: "natural log", offset: 0},
		{name: "log1p", offset: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := AddLogTransforms(df, tt.offset)
			require.NoError(t, err)

			daily := floats(t, out, "daily_payment")
			assert.InDelta(t, 305.0/15, daily[0], 1e-12)
			assert.InDelta(t, 140.0/1.5, daily[1], 1e-12)
			assert.True(t, math.IsNaN(daily[2]))

			assert.InDelta(t, math.Log(14+tt.offset), floats(t, out, "log_payment_window")[0], 1e-12)
			assert.InDelta(t, math.Log(305+tt.offset), floats(t, out, "log_judgment_amount")[0], 1e-12)
			assert.InDelta(t, math.Log(305.0/15+tt.offset), floats(t, out, "log_daily_payment")[0], 1e-12)
			assert.InDelta(t, math.Log(200+tt.offset), floats(t, out, "log_judgment_amount")[2], 1e-12)
			assert.True(t, math.IsNaN(floats(t, out, "log_payment_window")[2]))
		})
	}
}

func TestAddLogTransforms_NonPositive(t *testing.T) {
	df := frame(t, [][]string{
		{"payment_window", "judgment_amount"},
		{"0", "305"},
	})

	_, err := AddLogTransforms(df, 0)
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrTypeValidation))

	_, err = AddLogTransforms(df, 1)
	assert.NoError(t, err, "an offset makes a zero window loggable")
}
