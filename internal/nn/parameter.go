package nn

import "github.com/born-ml/eikonal/internal/tensor"

// Parameter represents a trainable tensor (a weight or a bias).
//
//	weight := nn.NewParameter("hidden0.weight", w)
//	grad := weight.Grad() // set by the optimizer step, nil before
type Parameter struct {
	name   string
	tensor *tensor.Tensor
	grad   *tensor.Tensor
}

// NewParameter creates a new trainable parameter around an initialized
// tensor.
func NewParameter(name string, t *tensor.Tensor) *Parameter {
	return &Parameter{name: name, tensor: t.RequireGrad()}
}

// Name returns the parameter name.
func (p *Parameter) Name() string {
	return p.name
}

// Tensor returns the parameter tensor.
func (p *Parameter) Tensor() *tensor.Tensor {
	return p.tensor
}

// Grad returns the last gradient seen by the optimizer, or nil.
func (p *Parameter) Grad() *tensor.Tensor {
	return p.grad
}

// SetGrad sets the gradient tensor.
func (p *Parameter) SetGrad(grad *tensor.Tensor) {
	p.grad = grad
}

// ZeroGrad clears the gradient so the next backward pass starts fresh.
func (p *Parameter) ZeroGrad() {
	p.grad = nil
}
