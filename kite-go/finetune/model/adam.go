package model

import (
	"math"

	"github.com/kiteco/deepset/kite-golib/errors"
	"gonum.org/v1/gonum/mat"
)

// Adam is the bias-corrected Adam optimizer
//
//   m = b1*m + (1-b1)*g
//   v = b2*v + (1-b2)*g*g
//   p -= lr * (m/(1-b1^t)) / (sqrt(v/(1-b2^t)) + eps)
type Adam struct {
	LearningRate float64
	Beta1        float64
	Beta2        float64
	Epsilon      float64

	t    int
	m, v map[*Parameter]*mat.Dense
}

var _ Optimizer = (*Adam)(nil)

// NewAdam with the usual defaults for the moment decay rates
func NewAdam(lr float64) *Adam {
	return &Adam{
		LearningRate: lr,
		Beta1:        0.9,
		Beta2:        0.999,
		Epsilon:      1e-8,
		m:            make(map[*Parameter]*mat.Dense),
		v:            make(map[*Parameter]*mat.Dense),
	}
}

// Steps is the number of updates applied so far
func (a *Adam) Steps() int {
	return a.t
}

// Step applies one update to every parameter from its gradient
func (a *Adam) Step(params []*Parameter) error {
	for _, p := range params {
		vr, vc := p.Value.Dims()
		gr, gc := p.Grad.Dims()
		if vr != gr || vc != gc {
			return errors.Errorf("parameter %s is %dx%d but its gradient is %dx%d", p.Name, vr, vc, gr, gc)
		}
	}

	a.t++
	bias1 := 1 - math.Pow(a.Beta1, float64(a.t))
	bias2 := 1 - math.Pow(a.Beta2, float64(a.t))

	for _, p := range params {
		r, c := p.Value.Dims()
		m, ok := a.m[p]
		if !ok {
			m = mat.NewDense(r, c, nil)
			a.m[p] = m
			a.v[p] = mat.NewDense(r, c, nil)
		}
		v := a.v[p]

		for i := 0; i < r; i++ {
			values, grads := p.Value.RawRowView(i), p.Grad.RawRowView(i)
			ms, vs := m.RawRowView(i), v.RawRowView(i)
			for j, g := range grads {
				ms[j] = a.Beta1*ms[j] + (1-a.Beta1)*g
				vs[j] = a.Beta2*vs[j] + (1-a.Beta2)*g*g
				values[j] -= a.LearningRate * (ms[j] / bias1) / (math.Sqrt(vs[j]/bias2) + a.Epsilon)
			}
		}
	}
	return nil
}

// ZeroGrad resets the gradients
func (a *Adam) ZeroGrad(params []*Parameter) {
	for _, p := range params {
		p.Grad.Zero()
	}
}
