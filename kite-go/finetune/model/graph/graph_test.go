package graph

import (
	"testing"

	"github.com/kiteco/deepset/kite-go/finetune/batch"
	"github.com/kiteco/deepset/kite-golib/errors"
	"github.com/kiteco/deepset/kite-golib/tensorflow"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type call struct {
	feeds   map[string]interface{}
	fetches []string
	targets []string
}

type fakeRunner struct {
	ops    map[string]bool
	calls  []call
	logits interface{}
	closed bool
}

var _ tensorflow.Runner = (*fakeRunner)(nil)

func newFakeRunner(ops ...string) *fakeRunner {
	f := &fakeRunner{ops: make(map[string]bool)}
	for _, op := range ops {
		f.ops[op] = true
	}
	f.logits = [][]float32{{0.1, 0.9}, {0.7, 0.3}}
	return f
}

func (f *fakeRunner) Run(feeds map[string]interface{}, fetches, targets []string) (map[string]interface{}, error) {
	f.calls = append(f.calls, call{feeds: feeds, fetches: fetches, targets: targets})
	res := make(map[string]interface{})
	for _, op := range fetches {
		if op == LogitsOp {
			res[op] = f.logits
		}
	}
	return res, nil
}

func (f *fakeRunner) OpExists(name string) bool {
	return f.ops[name]
}

func (f *fakeRunner) Close() error {
	f.closed = true
	return nil
}

var allOps = []string{InputIDsOp, AttentionMaskOp, LabelsOp, LogitsOp, TrainOp, InitOp, SaveFilenameOp, SaveOp}

func testBatch() *batch.Batch {
	return &batch.Batch{
		IDs:    [][]int64{{101, 7, 102}, {101, 102, 0}},
		Mask:   [][]int64{{1, 1, 1}, {1, 1, 0}},
		Labels: []int64{1, 0},
	}
}

func TestNewRunsInit(t *testing.T) {
	r := newFakeRunner(allOps...)
	_, err := New(r, 2)
	require.NoError(t, err)
	require.Len(t, r.calls, 1)
	assert.Equal(t, []string{InitOp}, r.calls[0].targets)
}

func TestNewMissingOps(t *testing.T) {
	_, err := New(newFakeRunner(InputIDsOp, LogitsOp), 2)
	assert.True(t, errors.Is(err, errors.ErrNotFound))
}

func TestForward(t *testing.T) {
	r := newFakeRunner(allOps...)
	c, err := New(r, 2)
	require.NoError(t, err)

	c.Train(false)
	scores, err := c.Forward(testBatch())
	require.NoError(t, err)
	assert.InDelta(t, 0.9, scores.At(0, 1), 1e-6)
	assert.InDelta(t, 0.7, scores.At(1, 0), 1e-6)

	last := r.calls[len(r.calls)-1]
	assert.Equal(t, []string{LogitsOp}, last.fetches)
	assert.Empty(t, last.targets)
	assert.NotContains(t, last.feeds, LabelsOp)
}

func TestTrainStep(t *testing.T) {
	r := newFakeRunner(allOps...)
	c, err := New(r, 2)
	require.NoError(t, err)

	_, err = c.TrainStep(testBatch(), true)
	assert.Error(t, err, "eval mode")

	c.Train(true)
	_, err = c.TrainStep(testBatch(), false)
	require.NoError(t, err)
	last := r.calls[len(r.calls)-1]
	assert.Empty(t, last.targets)
	assert.Equal(t, []int64{1, 0}, last.feeds[LabelsOp])

	_, err = c.TrainStep(testBatch(), true)
	require.NoError(t, err)
	assert.Equal(t, []string{TrainOp}, r.calls[len(r.calls)-1].targets)
}

func TestLogitsShapeMismatch(t *testing.T) {
	r := newFakeRunner(allOps...)
	r.logits = [][]float32{{1, 2, 3}}
	c, err := New(r, 2)
	require.NoError(t, err)

	_, err = c.Forward(testBatch())
	assert.Error(t, err)
}

func TestSave(t *testing.T) {
	r := newFakeRunner(allOps...)
	c, err := New(r, 2)
	require.NoError(t, err)

	require.NoError(t, c.Save("models/deepset_graph.ckpt"))
	last := r.calls[len(r.calls)-1]
	assert.Equal(t, []string{SaveOp}, last.targets)
	assert.Equal(t, "models/deepset_graph.ckpt", last.feeds[SaveFilenameOp])

	require.NoError(t, c.Close())
	assert.True(t, r.closed)
}

func TestSaveWithoutSaver(t *testing.T) {
	c, err := New(newFakeRunner(InputIDsOp, AttentionMaskOp, LogitsOp), 2)
	require.NoError(t, err)
	assert.True(t, errors.Is(c.Save("ckpt"), errors.ErrNotFound))
}
