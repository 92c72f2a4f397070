// Package linear is a bag-of-embeddings classifier: token embeddings are averaged
// over the attention mask and fed to a dense layer.
package linear

import (
	"math/rand"

	"github.com/kiteco/deepset/kite-go/finetune/batch"
	"github.com/kiteco/deepset/kite-go/finetune/model"
	"github.com/kiteco/deepset/kite-golib/errors"
	"github.com/kiteco/deepset/kite-golib/serialization"
	"gonum.org/v1/gonum/mat"
)

// DefaultDim of the token embeddings
const DefaultDim = 64

// Options for a new model
type Options struct {
	VocabSize  int
	NumClasses int
	Dim        int
	Seed       int64
}

// Weights is the serialized form of a Model
type Weights struct {
	VocabSize  int
	NumClasses int
	Dim        int
	Embedding  []float64
	Weight     []float64
	Bias       []float64
}

// Model is a model.Differentiable classifier
type Model struct {
	vocabSize, numClasses, dim int

	embedding *model.Parameter // vocab x dim
	weight    *model.Parameter // dim x classes
	bias      *model.Parameter // 1 x classes

	training bool
	// inputs of the last forward pass, kept in train mode for Backward
	last   *batch.Batch
	hidden *mat.Dense
}

var _ model.Differentiable = (*Model)(nil)

// New returns a model with small random embeddings and weights
func New(opts Options) (*Model, error) {
	if opts.Dim == 0 {
		opts.Dim = DefaultDim
	}
	if opts.VocabSize <= 0 || opts.NumClasses < 2 || opts.Dim < 0 {
		return nil, errors.InvalidArgumentf("invalid model size: vocab %d, classes %d, dim %d", opts.VocabSize, opts.NumClasses, opts.Dim)
	}

	r := rand.New(rand.NewSource(opts.Seed))
	m := newModel(opts.VocabSize, opts.NumClasses, opts.Dim)
	for _, p := range []*model.Parameter{m.embedding, m.weight} {
		data := p.Value.RawMatrix().Data
		for i := range data {
			data[i] = 0.1 * r.NormFloat64()
		}
	}
	return m, nil
}

func newModel(vocabSize, numClasses, dim int) *Model {
	return &Model{
		vocabSize:  vocabSize,
		numClasses: numClasses,
		dim:        dim,
		embedding:  model.NewParameter("embedding", vocabSize, dim),
		weight:     model.NewParameter("weight", dim, numClasses),
		bias:       model.NewParameter("bias", 1, numClasses),
	}
}

// FromWeights ...
func FromWeights(w Weights) (*Model, error) {
	if w.VocabSize <= 0 || w.NumClasses < 2 || w.Dim <= 0 ||
		len(w.Embedding) != w.VocabSize*w.Dim ||
		len(w.Weight) != w.Dim*w.NumClasses ||
		len(w.Bias) != w.NumClasses {
		return nil, errors.InvalidArgumentf("inconsistent weights: vocab %d, classes %d, dim %d", w.VocabSize, w.NumClasses, w.Dim)
	}
	m := newModel(w.VocabSize, w.NumClasses, w.Dim)
	copy(m.embedding.Value.RawMatrix().Data, w.Embedding)
	copy(m.weight.Value.RawMatrix().Data, w.Weight)
	copy(m.bias.Value.RawMatrix().Data, w.Bias)
	return m, nil
}

// Load a model written by Save
func Load(path string) (*Model, error) {
	var w Weights
	if err := serialization.Decode(path, &w); err != nil {
		return nil, err
	}
	return FromWeights(w)
}

// Weights returns a copy of the parameters
func (m *Model) Weights() Weights {
	return Weights{
		VocabSize:  m.vocabSize,
		NumClasses: m.numClasses,
		Dim:        m.dim,
		Embedding:  append([]float64(nil), m.embedding.Value.RawMatrix().Data...),
		Weight:     append([]float64(nil), m.weight.Value.RawMatrix().Data...),
		Bias:       append([]float64(nil), m.bias.Value.RawMatrix().Data...),
	}
}

// Save writes the weights, the encoding follows the extension of path (.gob, .json, optionally .gz)
func (m *Model) Save(path string) error {
	return serialization.Encode(path, m.Weights())
}

// Train implements model.Classifier
func (m *Model) Train(on bool) {
	m.training = on
	m.last, m.hidden = nil, nil
}

// NumClasses implements model.Classifier
func (m *Model) NumClasses() int {
	return m.numClasses
}

// Parameters implements model.Differentiable
func (m *Model) Parameters() []*model.Parameter {
	return []*model.Parameter{m.embedding, m.weight, m.bias}
}

// Forward implements model.Classifier
func (m *Model) Forward(b *batch.Batch) (*mat.Dense, error) {
	if b.Size() == 0 {
		return nil, errors.Errorf("empty batch")
	}
	if len(b.IDs) != b.Size() || len(b.Mask) != b.Size() {
		return nil, errors.Errorf("batch has %d id rows and %d mask rows for %d labels", len(b.IDs), len(b.Mask), b.Size())
	}

	hidden := mat.NewDense(b.Size(), m.dim, nil)
	for i, ids := range b.IDs {
		if len(b.Mask[i]) != len(ids) {
			return nil, errors.Errorf("row %d: %d ids but %d mask values", i, len(ids), len(b.Mask[i]))
		}
		row := hidden.RawRowView(i)
		var n float64
		for j, id := range ids {
			if b.Mask[i][j] == 0 {
				continue
			}
			if id < 0 || int(id) >= m.vocabSize {
				return nil, errors.Errorf("token id %d out of range for vocab of %d", id, m.vocabSize)
			}
			for k, v := range m.embedding.Value.RawRowView(int(id)) {
				row[k] += v
			}
			n++
		}
		if n > 0 {
			for k := range row {
				row[k] /= n
			}
		}
	}

	scores := mat.NewDense(b.Size(), m.numClasses, nil)
	scores.Mul(hidden, m.weight.Value)
	bias := m.bias.Value.RawRowView(0)
	for i := 0; i < b.Size(); i++ {
		row := scores.RawRowView(i)
		for j := range row {
			row[j] += bias[j]
		}
	}

	if m.training {
		m.last, m.hidden = b, hidden
	}
	return scores, nil
}

// Backward implements model.Differentiable
func (m *Model) Backward(grad *mat.Dense) error {
	if !m.training {
		return errors.Errorf("backward called in eval mode")
	}
	if m.last == nil {
		return errors.Errorf("backward called before forward")
	}
	rows, cols := grad.Dims()
	if rows != m.last.Size() || cols != m.numClasses {
		return errors.Errorf("gradient is %dx%d, expected %dx%d", rows, cols, m.last.Size(), m.numClasses)
	}

	var dw mat.Dense
	dw.Mul(m.hidden.T(), grad)
	m.weight.Grad.Add(m.weight.Grad, &dw)

	db := m.bias.Grad.RawRowView(0)
	for i := 0; i < rows; i++ {
		for j, g := range grad.RawRowView(i) {
			db[j] += g
		}
	}

	var dh mat.Dense
	dh.Mul(grad, m.weight.Value.T())
	for i, ids := range m.last.IDs {
		var n float64
		for _, v := range m.last.Mask[i] {
			if v != 0 {
				n++
			}
		}
		if n == 0 {
			continue
		}
		dhi := dh.RawRowView(i)
		for j, id := range ids {
			if m.last.Mask[i][j] == 0 {
				continue
			}
			de := m.embedding.Grad.RawRowView(int(id))
			for k, g := range dhi {
				de[k] += g / n
			}
		}
	}
	m.last, m.hidden = nil, nil
	return nil
}
