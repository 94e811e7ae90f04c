package nn

import "github.com/born-ml/eikonal/internal/tensor"

// Tanh applies the hyperbolic tangent element-wise.
type Tanh struct{}

// NewTanh creates a Tanh activation.
func NewTanh() *Tanh {
	return &Tanh{}
}

// Forward applies tanh.
func (Tanh) Forward(input *tensor.Tensor) *tensor.Tensor {
	return input.Tanh()
}

// Parameters returns nil: Tanh has nothing to train.
func (Tanh) Parameters() []*Parameter {
	return nil
}
