package infrastructure

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunMetrics_Counters(t *testing.T) {
	m := NewRunMetrics()

	m.RowsRead("train.csv", 10)
	m.RowsRead("train.csv", 5)
	m.RowsDropped("null_compliance", 3)
	m.RowsDropped("null_compliance", 0)
	m.RowsWritten("validation.csv", 4)
	m.RowsImputed(2)
	m.StepFinished("split", 1500*time.Millisecond, nil)
	m.StepFinished("select", time.Second, errors.New("boom"))

	assert.Equal(t, 15.0, testutil.ToFloat64(m.rowsRead.WithLabelValues("train.csv")))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.rowsDropped.WithLabelValues("null_compliance")))
	assert.Equal(t, 4.0, testutil.ToFloat64(m.rowsWritten.WithLabelValues("validation.csv")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.rowsImputed))
	assert.Equal(t, 1.5, testutil.ToFloat64(m.stepDuration.WithLabelValues("split")))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.stepFailures.WithLabelValues("split")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.stepFailures.WithLabelValues("select")))
}

func TestRunMetrics_NilSafe(t *testing.T) {
	var m *RunMetrics

	assert.NotPanics(t, func() {
		m.RowsRead("train.csv", 1)
		m.RowsDropped("x", 1)
		m.RowsWritten("train.csv", 1)
		m.RowsImputed(1)
		m.StepFinished("load", time.Second, nil)
		m.MarkSuccess(time.Now())
	})
	assert.Nil(t, m.Registry())
	assert.NoError(t, m.WriteTextfile("/nonexistent/metrics.prom"))
}

func TestRunMetrics_WriteTextfile(t *testing.T) {
	m := NewRunMetrics()
	m.RowsWritten("train.csv", 7)
	m.MarkSuccess(time.Unix(1700000000, 0))

	path := filepath.Join(t.TempDir(), "textfile", "blight.prom")
	require.NoError(t, m.WriteTextfile(path))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(content), `blight_rows_written_total{file="train.csv"} 7`)
	assert.Contains(t, string(content), "blight_last_success_timestamp_seconds 1.7e+09")

	assert.NoError(t, m.WriteTextfile(""), "empty path disables export")
}
