// Package model defines the classifier capability driven by the epoch runner,
// along with the loss and optimizer that operate on it.
package model

import (
	"github.com/kiteco/deepset/kite-go/finetune/batch"
	"gonum.org/v1/gonum/mat"
)

// Classifier scores every row of a batch, one column per class
type Classifier interface {
	// Train switches between train mode (gradients tracked) and eval mode (read-only).
	Train(on bool)
	// Forward returns a Size() x NumClasses() matrix of scores
	Forward(b *batch.Batch) (*mat.Dense, error)
	NumClasses() int
	Save(path string) error
}

// Differentiable classifiers expose their parameters to an Optimizer
type Differentiable interface {
	Classifier
	// Backward accumulates into the parameter gradients the gradient of the loss
	// with respect to the scores of the last Forward call.
	Backward(grad *mat.Dense) error
	Parameters() []*Parameter
}

// GraphTrainer classifiers compute the loss gradient and optimizer update internally,
// e.g. a TensorFlow graph with a train op.
type GraphTrainer interface {
	Classifier
	// TrainStep runs forward and backward on b, applying the update only if update is set,
	// and returns the scores of the forward pass.
	TrainStep(b *batch.Batch, update bool) (*mat.Dense, error)
}

// Parameter is a named trainable matrix with its accumulated gradient
type Parameter struct {
	Name  string
	Value *mat.Dense
	Grad  *mat.Dense
}

// NewParameter returns a zero r x c parameter
func NewParameter(name string, r, c int) *Parameter {
	return &Parameter{
		Name:  name,
		Value: mat.NewDense(r, c, nil),
		Grad:  mat.NewDense(r, c, nil),
	}
}

// Optimizer updates parameters from their gradients
type Optimizer interface {
	Step(params []*Parameter) error
	ZeroGrad(params []*Parameter)
}
