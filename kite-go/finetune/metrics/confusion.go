// Package metrics accumulates classification metrics over an epoch.
package metrics

import (
	"github.com/kiteco/deepset/kite-golib/errors"
	"gonum.org/v1/gonum/mat"
)

// Confusion counts predictions, rows are true labels and columns predicted labels
type Confusion struct {
	counts *mat.Dense
}

// NewConfusion for numClasses classes
func NewConfusion(numClasses int) *Confusion {
	return &Confusion{counts: mat.NewDense(numClasses, numClasses, nil)}
}

// NumClasses ...
func (c *Confusion) NumClasses() int {
	n, _ := c.counts.Dims()
	return n
}

// Add counts one prediction
func (c *Confusion) Add(label, pred int64) error {
	n := int64(c.NumClasses())
	if label < 0 || label >= n || pred < 0 || pred >= n {
		return errors.Errorf("label %d / prediction %d out of range for %d classes", label, pred, n)
	}
	c.counts.Set(int(label), int(pred), c.counts.At(int(label), int(pred))+1)
	return nil
}

// Count of examples with the given label predicted as pred
func (c *Confusion) Count(label, pred int) int {
	return int(c.counts.At(label, pred))
}

// Matrix returns the counts
func (c *Confusion) Matrix() mat.Matrix {
	return c.counts
}

// Total number of counted examples
func (c *Confusion) Total() int {
	return int(mat.Sum(c.counts))
}

// Correct is the trace of the matrix
func (c *Confusion) Correct() int {
	return int(mat.Trace(c.counts))
}

// Support is the number of examples with the given label
func (c *Confusion) Support(label int) int {
	return int(mat.Sum(c.counts.RowView(label)))
}

// Predicted is the number of examples predicted as pred
func (c *Confusion) Predicted(pred int) int {
	return int(mat.Sum(c.counts.ColView(pred)))
}
