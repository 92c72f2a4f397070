// Package runner runs a classifier over the batches of an epoch and accumulates loss and accuracy.
package runner

import (
	"io"
	"time"

	"github.com/sbwhitecap/tqdm"
	"github.com/sbwhitecap/tqdm/iterators"

	"github.com/kiteco/deepset/kite-go/finetune/batch"
	"github.com/kiteco/deepset/kite-go/finetune/metrics"
	"github.com/kiteco/deepset/kite-go/finetune/model"
	"github.com/kiteco/deepset/kite-golib/errors"
	"github.com/kiteco/deepset/kite-golib/kitelog"
	"gonum.org/v1/gonum/mat"
)

// DefaultLogEvery is the number of steps between two progress lines
const DefaultLogEvery = 5000

// Runner runs epochs of a classifier. In train mode, differentiable models get
// their gradients computed after every batch, but the optimizer only updates
// parameters if ApplyUpdates is set.
type Runner struct {
	Model     model.Classifier
	Loss      model.Loss
	Optimizer model.Optimizer

	ApplyUpdates bool
	// LogEvery logs the running loss and accuracy every LogEvery steps, starting with the first. 0 disables it.
	LogEvery int
	Logger   kitelog.Interface
	// Progress shows a progress bar on stderr
	Progress bool
	// Collector, if set, observes the predictions and loss of every batch
	Collector *metrics.Collector
}

// RunEpoch runs every batch through the model. Any failure of the model, the loss or the optimizer
// aborts the epoch and is returned along with the statistics accumulated so far.
func (r *Runner) RunEpoch(mode Mode, batches batch.Batches) (Summary, error) {
	start := time.Now()
	var stats Stats

	e, err := r.newEpoch(mode)
	if err != nil {
		return summarize(mode, stats, 0), err
	}
	r.Model.Train(mode == Train)

	step := func() (bool, error) {
		b, err := batches.Next()
		if err == io.EOF {
			return true, nil
		}
		if err != nil {
			return true, errors.Wrapf(err, "error loading batch %d", stats.Steps)
		}
		if b.Size() == 0 {
			return false, nil
		}
		return false, e.step(&stats, b)
	}

	if r.Progress {
		err = r.withProgress(mode, batches.Len(), step)
	} else {
		for done := false; !done && err == nil; {
			done, err = step()
		}
	}
	return summarize(mode, stats, time.Since(start)), err
}

func (r *Runner) withProgress(mode Mode, n int, step func() (bool, error)) error {
	var err error
	terr := tqdm.With(iterators.Interval(0, n), mode.String(), func(v interface{}) (brk bool) {
		var done bool
		done, err = step()
		return done || err != nil
	})
	if err != nil {
		return err
	}
	// batches beyond the announced length are still run
	for done := false; !done && err == nil; {
		done, err = step()
	}
	if err != nil {
		return err
	}
	if terr != nil {
		r.logger().Printf("progress bar error: %v", terr)
	}
	return nil
}

type epoch struct {
	*Runner
	mode    Mode
	loss    model.Loss
	trainer model.GraphTrainer
	diff    model.Differentiable
}

func (r *Runner) newEpoch(mode Mode) (*epoch, error) {
	if r.Model == nil {
		return nil, errors.Errorf("no model")
	}
	e := &epoch{Runner: r, mode: mode, loss: r.Loss}
	if e.loss == nil {
		e.loss = model.CrossEntropy
	}
	if mode != Train {
		return e, nil
	}

	switch m := r.Model.(type) {
	case model.GraphTrainer:
		e.trainer = m
	case model.Differentiable:
		if r.Optimizer == nil {
			return nil, errors.Errorf("training a differentiable model requires an optimizer")
		}
		e.diff = m
	default:
		return nil, errors.Errorf("model %T cannot be trained", r.Model)
	}
	return e, nil
}

func (e *epoch) step(stats *Stats, b *batch.Batch) error {
	var scores *mat.Dense
	var err error
	if e.trainer != nil {
		scores, err = e.trainer.TrainStep(b, e.ApplyUpdates)
	} else {
		scores, err = e.Model.Forward(b)
	}
	if err != nil {
		return errors.Wrapf(err, "forward failed at step %d", stats.Steps)
	}

	loss, grad, err := e.loss(scores, b.Labels)
	if err != nil {
		return errors.Wrapf(err, "loss failed at step %d", stats.Steps)
	}

	if e.diff != nil {
		params := e.diff.Parameters()
		e.Optimizer.ZeroGrad(params)
		if err := e.diff.Backward(grad); err != nil {
			return errors.Wrapf(err, "backward failed at step %d", stats.Steps)
		}
		if e.ApplyUpdates {
			if err := e.Optimizer.Step(params); err != nil {
				return errors.Wrapf(err, "optimizer step failed at step %d", stats.Steps)
			}
		}
	}

	preds := model.Argmax(scores)
	if e.Collector != nil {
		if err := e.Collector.Observe(preds, b.Labels, loss); err != nil {
			return err
		}
	}

	step := stats.Steps
	stats.TotalLoss += loss
	stats.Correct += model.Correct(preds, b.Labels)
	stats.Steps++
	stats.Examples += b.Size()

	if e.LogEvery > 0 && step%e.LogEvery == 0 {
		e.logger().Printf("Step %d, %s Loss per %d steps: %v", step, e.mode, e.LogEvery, stats.Loss())
		e.logger().Printf("%s Accuracy per %d steps: %v", e.mode, e.LogEvery, stats.Accuracy())
	}
	return nil
}

func (r *Runner) logger() kitelog.Interface {
	if r.Logger == nil {
		return kitelog.Discard
	}
	return r.Logger
}
