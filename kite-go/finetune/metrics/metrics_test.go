package metrics

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfusion(t *testing.T) {
	c := NewConfusion(2)
	require.NoError(t, c.Add(1, 1))
	require.NoError(t, c.Add(1, 0))
	require.NoError(t, c.Add(0, 0))
	assert.Error(t, c.Add(2, 0))
	assert.Error(t, c.Add(0, -1))

	assert.Equal(t, 3, c.Total())
	assert.Equal(t, 2, c.Correct())
	assert.Equal(t, 2, c.Support(1))
	assert.Equal(t, 2, c.Predicted(0))
	assert.Equal(t, 1, c.Count(1, 0))
}

func TestReport(t *testing.T) {
	c := NewCollector(2)
	require.NoError(t, c.Observe([]int64{1, 0, 1, 1}, []int64{1, 1, 1, 0}, 0.5))
	require.NoError(t, c.Observe([]int64{0}, []int64{0}, 1.5))

	r := c.Report()
	assert.Equal(t, 5, r.Support)
	assert.InDelta(t, 60.0, r.Accuracy, 1e-9)

	// class 0: tp 1, predicted 2, support 2
	assert.InDelta(t, 0.5, r.Classes[0].Precision, 1e-9)
	assert.InDelta(t, 0.5, r.Classes[0].Recall, 1e-9)
	// class 1: tp 2, predicted 3, support 3
	assert.InDelta(t, 2.0/3, r.Classes[1].Precision, 1e-9)
	assert.InDelta(t, 2.0/3, r.Classes[1].Recall, 1e-9)
	assert.InDelta(t, (0.5+2.0/3)/2, r.MacroF1, 1e-9)

	assert.Equal(t, 2, r.Loss.Count)
	assert.InDelta(t, 1.0, r.Loss.Mean, 1e-9)
	assert.Contains(t, r.String(), "accuracy")
}

func TestReportEmpty(t *testing.T) {
	r := NewCollector(2).Report()
	assert.Equal(t, 0.0, r.Accuracy)
	assert.Equal(t, 0.0, r.Classes[1].F1)
	assert.Equal(t, LossSummary{}, r.Loss)
}

func TestSummarize(t *testing.T) {
	s := Summarize([]float64{1, 2, 3, 4})
	assert.Equal(t, 4, s.Count)
	assert.InDelta(t, 2.5, s.Mean, 1e-9)
	assert.InDelta(t, 2.5, s.Median, 1e-9)
	assert.Equal(t, 4.0, s.P90)

	single := Summarize([]float64{0.7})
	assert.Equal(t, 0.7, single.P90)
	assert.Equal(t, 0.0, single.StdDev)
}

func TestPlotLosses(t *testing.T) {
	path := filepath.Join(t.TempDir(), "loss.png")
	require.NoError(t, PlotLosses(path, "validation", []float64{0.7, 0.6, 0.65, 0.4}))

	fi, err := os.Stat(path)
	require.NoError(t, err)
	assert.True(t, fi.Size() > 0)

	assert.Error(t, PlotLosses(path, "empty", nil))
}
