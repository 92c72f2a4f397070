package model

import (
	"math"

	"github.com/kiteco/deepset/kite-golib/errors"
	"gonum.org/v1/gonum/mat"
)

// Loss returns the mean loss of scores against labels and its gradient with respect to scores
type Loss func(scores *mat.Dense, labels []int64) (float64, *mat.Dense, error)

var _ Loss = CrossEntropy

// CrossEntropy is the mean softmax cross-entropy over the rows of scores.
// The gradient of row i is (softmax(scores_i) - onehot(labels_i)) / rows.
func CrossEntropy(scores *mat.Dense, labels []int64) (float64, *mat.Dense, error) {
	rows, cols := scores.Dims()
	if rows != len(labels) {
		return 0, nil, errors.Errorf("%d score rows for %d labels", rows, len(labels))
	}
	if rows == 0 {
		return 0, nil, errors.Errorf("empty batch")
	}

	grad := mat.NewDense(rows, cols, nil)
	var total float64
	for i, label := range labels {
		if label < 0 || int(label) >= cols {
			return 0, nil, errors.Errorf("label %d out of range for %d classes", label, cols)
		}
		probs := Softmax(scores.RawRowView(i))
		total -= math.Log(math.Max(probs[label], math.SmallestNonzeroFloat64))

		probs[label]--
		for j := range probs {
			probs[j] /= float64(rows)
		}
		grad.SetRow(i, probs)
	}
	return total / float64(rows), grad, nil
}

// Softmax of logits, shifted by their max for stability
func Softmax(logits []float64) []float64 {
	max := math.Inf(-1)
	for _, v := range logits {
		if v > max {
			max = v
		}
	}
	var sum float64
	out := make([]float64, len(logits))
	for i, v := range logits {
		out[i] = math.Exp(v - max)
		sum += out[i]
	}
	for i := range out {
		out[i] /= sum
	}
	return out
}
