// Package eikonet is a factored travel-time network for the 2-D eikonal
// equation |∇T| = 1/v.
//
// Travel time is T(s, r) = |r - s| · τ(s, r) with τ a tanh MLP. The
// distance factor carries the point-source singularity, so τ stays smooth
// and close to the slowness 1/v. The receiver gradient ∇_r T is built from
// recorded tensor ops in forward mode, one tangent per coordinate, which
// keeps the residual |∇_r T|²·v² - 1 differentiable in the parameters by a
// single backward pass.
package eikonet

import (
	"fmt"
	"math/rand"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/born-ml/eikonal/internal/nn"
	"github.com/born-ml/eikonal/internal/tensor"
	"github.com/born-ml/eikonal/internal/train"
)

// Config holds the network shape and medium.
type Config struct {
	Hidden   []int         // hidden layer widths (default: [32, 32])
	Velocity VelocityField // medium (default: Constant{V: 1})
	Seed     int64         // weight initialization seed
	Eps      float64       // added under the distance root (default: 1e-12)
}

func (c Config) withDefaults() Config {
	if len(c.Hidden) == 0 {
		c.Hidden = []int{32, 32}
	}
	if c.Velocity == nil {
		c.Velocity = Constant{V: 1}
	}
	if c.Eps == 0 {
		c.Eps = 1e-12
	}
	return c
}

// Model implements train.Model.
type Model struct {
	backend  train.Backend
	velocity VelocityField
	eps      float64

	src    *nn.Linear // source half of the first layer, no bias
	rcv    *nn.Linear // receiver half of the first layer
	hidden []*nn.Linear
	out    *nn.Linear

	// Unit row [1,2] and column [2,1] selectors per coordinate.
	rowSel [2]*tensor.Tensor
	colSel [2]*tensor.Tensor

	training bool
	tau      []float64
}

var _ train.Model = (*Model)(nil)

// New builds a model on backend.
func New(backend train.Backend, cfg Config) *Model {
	cfg = cfg.withDefaults()
	rng := rand.New(rand.NewSource(cfg.Seed)) //nolint:gosec // weight init

	m := &Model{
		backend:  backend,
		velocity: cfg.Velocity,
		eps:      cfg.Eps,
		src:      nn.NewLinear(2, cfg.Hidden[0], backend, nn.WithName("input.source"), nn.WithoutBias(), nn.WithRand(rng)),
		rcv:      nn.NewLinear(2, cfg.Hidden[0], backend, nn.WithName("input.receiver"), nn.WithRand(rng)),
	}
	for i := 1; i < len(cfg.Hidden); i++ {
		m.hidden = append(m.hidden, nn.NewLinear(cfg.Hidden[i-1], cfg.Hidden[i], backend,
			nn.WithName(fmt.Sprintf("hidden%d", i)), nn.WithRand(rng)))
	}
	m.out = nn.NewLinear(cfg.Hidden[len(cfg.Hidden)-1], 1, backend, nn.WithName("output"), nn.WithRand(rng))

	for c := range 2 {
		row := tensor.Zeros(tensor.Shape{1, 2}, backend)
		row.Data()[c] = 1
		m.rowSel[c] = row
		col := tensor.Zeros(tensor.Shape{2, 1}, backend)
		col.Data()[c] = 1
		m.colSel[c] = col
	}
	return m
}

// solution holds one evaluation of the network over N pairs, all [N, 1].
type solution struct {
	travel *tensor.Tensor
	tau    *tensor.Tensor
	gradSq *tensor.Tensor // |∇_r T|²
}

func (m *Model) solve(sources, receivers *tensor.Tensor) solution {
	z := m.src.Forward(sources).Add(m.rcv.Forward(receivers))
	wr := m.rcv.Weight().Tensor().T()

	// ∂z/∂r_c is row c of W_r.T, broadcast over the batch.
	var tangents [2]*tensor.Tensor
	for c := range 2 {
		tangents[c] = m.rowSel[c].MatMul(wr)
	}

	h := z.Tanh()
	d := tanhGrad(h)
	for c := range 2 {
		tangents[c] = d.Mul(tangents[c])
	}
	for _, layer := range m.hidden {
		h = layer.Forward(h).Tanh()
		d = tanhGrad(h)
		wT := layer.Weight().Tensor().T()
		for c := range 2 {
			tangents[c] = d.Mul(tangents[c].MatMul(wT))
		}
	}

	// τ = 1 + net, so a zero network is the unit-speed solution.
	tau := m.out.Forward(h).AddScalar(1)
	wo := m.out.Weight().Tensor().T()

	diff := receivers.Sub(sources)
	dist := diff.Square().SumDim(1, true).AddScalar(m.eps).Sqrt()

	var gradSq *tensor.Tensor
	for c := range 2 {
		// ∂T/∂r_c = τ·(r_c - s_c)/|r - s| + |r - s|·∂τ/∂r_c
		g := tau.Mul(diff.MatMul(m.colSel[c])).Div(dist).Add(dist.Mul(tangents[c].MatMul(wo)))
		if gradSq == nil {
			gradSq = g.Square()
		} else {
			gradSq = gradSq.Add(g.Square())
		}
	}

	if tau.NumElements() > 0 {
		m.tau = append(m.tau, stat.Mean(tau.Data(), nil))
	}
	return solution{travel: dist.Mul(tau), tau: tau, gradSq: gradSq}
}

// tanhGrad returns 1 - h² for h = tanh(z).
func tanhGrad(h *tensor.Tensor) *tensor.Tensor {
	return h.Square().MulScalar(-1).AddScalar(1)
}

// Forward returns travel times [N, 1].
func (m *Model) Forward(sources, receivers *tensor.Tensor) *tensor.Tensor {
	mustPairs(sources, receivers)
	return m.solve(sources, receivers).travel
}

// Velocity returns 1/|∇_r T| at every receiver, [N, 1].
func (m *Model) Velocity(sources, receivers *tensor.Tensor) *tensor.Tensor {
	mustPairs(sources, receivers)
	gradNorm := m.solve(sources, receivers).gradSq.Sqrt()
	return tensor.Ones(gradNorm.Shape(), m.backend).Div(gradNorm)
}

// Loss returns mean(w · (|∇_r T|²·v(r)² - 1)²), unweighted when weights is
// nil, with diagnostics residual_max and tau_mean.
func (m *Model) Loss(sources, receivers, weights *tensor.Tensor) (train.LossOutput, error) {
	if err := checkPairs(sources, receivers); err != nil {
		return train.LossOutput{}, err
	}
	n := sources.Shape()[0]
	if weights != nil && !weights.Shape().Equal(tensor.Shape{n, 1}) {
		return train.LossOutput{}, fmt.Errorf("eikonet: weights shape %v, want [%d 1]", weights.Shape(), n)
	}

	sol := m.solve(sources, receivers)
	residual := sol.gradSq.Mul(m.velocitySq(receivers)).AddScalar(-1)
	sq := residual.Square()
	if weights != nil {
		sq = sq.Mul(weights)
	}

	diagnostics := map[string]float64{"residual_max": 0, "tau_mean": 0}
	if n > 0 {
		abs := make([]float64, n)
		for i, v := range residual.Data() {
			abs[i] = max(v, -v)
		}
		diagnostics["residual_max"] = floats.Max(abs)
		diagnostics["tau_mean"] = stat.Mean(sol.tau.Data(), nil)
	}
	return train.LossOutput{Loss: sq.Mean(), Diagnostics: diagnostics}, nil
}

// velocitySq returns v(r)² per receiver as a constant [N, 1] tensor.
func (m *Model) velocitySq(receivers *tensor.Tensor) *tensor.Tensor {
	data := receivers.Data()
	n := receivers.Shape()[0]
	out := tensor.Zeros(tensor.Shape{n, 1}, m.backend)
	v2 := out.Data()
	for i := range n {
		v := m.velocity.At(data[2*i], data[2*i+1])
		v2[i] = v * v
	}
	return out
}

// Train switches to training mode.
func (m *Model) Train() { m.training = true }

// Eval switches to evaluation mode.
func (m *Model) Eval() { m.training = false }

// Training reports whether the model is in training mode.
func (m *Model) Training() bool { return m.training }

// Parameters returns all trainable parameters, input layers first.
func (m *Model) Parameters() []*nn.Parameter {
	params := append(m.src.Parameters(), m.rcv.Parameters()...)
	for _, layer := range m.hidden {
		params = append(params, layer.Parameters()...)
	}
	return append(params, m.out.Parameters()...)
}

// TauLog returns mean τ of every evaluation so far.
func (m *Model) TauLog() []float64 { return m.tau }

// Backend returns the model's backend.
func (m *Model) Backend() train.Backend { return m.backend }

func checkPairs(sources, receivers *tensor.Tensor) error {
	ss, rs := sources.Shape(), receivers.Shape()
	if len(ss) != 2 || ss[1] != 2 || !ss.Equal(rs) {
		return fmt.Errorf("eikonet: sources %v and receivers %v must both be [N 2]", ss, rs)
	}
	return nil
}

func mustPairs(sources, receivers *tensor.Tensor) {
	if err := checkPairs(sources, receivers); err != nil {
		panic(err.Error())
	}
}
