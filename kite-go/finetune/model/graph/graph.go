// Package graph drives a TensorFlow graph exported with named input, output and training ops.
package graph

import (
	"github.com/kiteco/deepset/kite-go/finetune/batch"
	"github.com/kiteco/deepset/kite-go/finetune/model"
	"github.com/kiteco/deepset/kite-golib/errors"
	"github.com/kiteco/deepset/kite-golib/tensorflow"
	"gonum.org/v1/gonum/mat"
)

// Op names the graph must define
const (
	InputIDsOp      = "input_ids"
	AttentionMaskOp = "attention_mask"
	LabelsOp        = "labels"
	LogitsOp        = "logits"
	TrainOp         = "train_op"
	InitOp          = "init"
	// the saver writes a checkpoint to the file name fed to SaveFilenameOp when SaveOp runs
	SaveFilenameOp = "save/Const"
	SaveOp         = "save/control_dependency"
)

// Classifier is a model.GraphTrainer backed by a graph
type Classifier struct {
	runner     tensorflow.Runner
	numClasses int
	training   bool
}

var _ model.GraphTrainer = (*Classifier)(nil)

// Load imports the graph at path onto device and runs its init op if it has one
func Load(path string, numClasses int, device model.Device) (*Classifier, error) {
	m, err := tensorflow.NewModel(path, tensorflow.Options{Device: device.TensorflowDevice()})
	if err != nil {
		return nil, err
	}
	c, err := New(m, numClasses)
	if err != nil {
		m.Close()
		return nil, err
	}
	return c, nil
}

// New checks that runner has the required ops and initializes its variables
func New(runner tensorflow.Runner, numClasses int) (*Classifier, error) {
	for _, op := range []string{InputIDsOp, AttentionMaskOp, LogitsOp} {
		if !runner.OpExists(op) {
			return nil, errors.NotFoundf("graph has no %s op", op)
		}
	}
	if runner.OpExists(InitOp) {
		if _, err := runner.Run(nil, nil, []string{InitOp}); err != nil {
			return nil, errors.Wrapf(err, "error initializing variables")
		}
	}
	return &Classifier{runner: runner, numClasses: numClasses}, nil
}

// Train implements model.Classifier
func (c *Classifier) Train(on bool) {
	c.training = on
}

// NumClasses implements model.Classifier
func (c *Classifier) NumClasses() int {
	return c.numClasses
}

// Forward implements model.Classifier
func (c *Classifier) Forward(b *batch.Batch) (*mat.Dense, error) {
	return c.run(b, false, nil)
}

// TrainStep implements model.GraphTrainer
func (c *Classifier) TrainStep(b *batch.Batch, update bool) (*mat.Dense, error) {
	if !c.training {
		return nil, errors.Errorf("train step in eval mode")
	}
	var targets []string
	if update {
		if !c.runner.OpExists(TrainOp) {
			return nil, errors.NotFoundf("graph has no %s op", TrainOp)
		}
		targets = []string{TrainOp}
	}
	return c.run(b, true, targets)
}

// Save runs the graph's saver
func (c *Classifier) Save(path string) error {
	if !c.runner.OpExists(SaveOp) {
		return errors.NotFoundf("graph has no %s op", SaveOp)
	}
	feeds := map[string]interface{}{SaveFilenameOp: path}
	if _, err := c.runner.Run(feeds, nil, []string{SaveOp}); err != nil {
		return errors.Wrapf(err, "error saving checkpoint to %s", path)
	}
	return nil
}

// Close releases the session
func (c *Classifier) Close() error {
	return c.runner.Close()
}

func (c *Classifier) run(b *batch.Batch, labels bool, targets []string) (*mat.Dense, error) {
	if b.Size() == 0 {
		return nil, errors.Errorf("empty batch")
	}
	feeds := map[string]interface{}{
		InputIDsOp:      b.IDs,
		AttentionMaskOp: b.Mask,
	}
	if labels {
		feeds[LabelsOp] = b.Labels
	}

	res, err := c.runner.Run(feeds, []string{LogitsOp}, targets)
	if err != nil {
		return nil, err
	}
	return toDense(res[LogitsOp], b.Size(), c.numClasses)
}

func toDense(v interface{}, rows, cols int) (*mat.Dense, error) {
	data := make([]float64, 0, rows*cols)
	switch logits := v.(type) {
	case [][]float32:
		if len(logits) != rows {
			return nil, errors.Errorf("got %d rows of logits for a batch of %d", len(logits), rows)
		}
		for _, row := range logits {
			if len(row) != cols {
				return nil, errors.Errorf("got %d logits per row for %d classes", len(row), cols)
			}
			for _, x := range row {
				data = append(data, float64(x))
			}
		}
	case [][]float64:
		if len(logits) != rows {
			return nil, errors.Errorf("got %d rows of logits for a batch of %d", len(logits), rows)
		}
		for _, row := range logits {
			if len(row) != cols {
				return nil, errors.Errorf("got %d logits per row for %d classes", len(row), cols)
			}
			data = append(data, row...)
		}
	default:
		return nil, errors.Errorf("unexpected logits type %T", v)
	}
	return mat.NewDense(rows, cols, data), nil
}
