package nn

import (
	"fmt"
	"math/rand"

	"github.com/born-ml/eikonal/internal/tensor"
)

// Linear implements a fully connected layer: y = x @ W.T + b.
//
//   - x: [batch, in_features]
//   - W: [out_features, in_features], Xavier initialized
//   - b: [out_features], zero initialized (optional)
//   - y: [batch, out_features]
type Linear struct {
	inFeatures  int
	outFeatures int
	weight      *Parameter
	bias        *Parameter
}

// LinearOption configures NewLinear.
type LinearOption func(*linearOptions)

type linearOptions struct {
	name   string
	noBias bool
	rng    *rand.Rand
}

// WithName prefixes parameter names ("<name>.weight", "<name>.bias").
func WithName(name string) LinearOption {
	return func(o *linearOptions) { o.name = name }
}

// WithoutBias drops the bias term.
func WithoutBias() LinearOption {
	return func(o *linearOptions) { o.noBias = true }
}

// WithRand draws initial weights from rng instead of the global source.
func WithRand(rng *rand.Rand) LinearOption {
	return func(o *linearOptions) { o.rng = rng }
}

// NewLinear creates a new Linear layer.
func NewLinear(inFeatures, outFeatures int, backend tensor.Backend, opts ...LinearOption) *Linear {
	var o linearOptions
	for _, opt := range opts {
		opt(&o)
	}
	prefix := ""
	if o.name != "" {
		prefix = o.name + "."
	}

	w := Xavier(inFeatures, outFeatures, tensor.Shape{outFeatures, inFeatures}, backend, o.rng)
	l := &Linear{
		inFeatures:  inFeatures,
		outFeatures: outFeatures,
		weight:      NewParameter(prefix+"weight", w),
	}
	if !o.noBias {
		l.bias = NewParameter(prefix+"bias", tensor.Zeros(tensor.Shape{outFeatures}, backend))
	}
	return l
}

// Forward computes x @ W.T + b for x of shape [batch, in_features].
func (l *Linear) Forward(input *tensor.Tensor) *tensor.Tensor {
	shape := input.Shape()
	if len(shape) != 2 {
		panic(fmt.Sprintf("Linear.Forward: expected 2D input [batch, features], got shape %v", shape))
	}
	if shape[1] != l.inFeatures {
		panic(fmt.Sprintf("Linear.Forward: expected input with %d features, got %d", l.inFeatures, shape[1]))
	}

	output := input.MatMul(l.weight.Tensor().T())
	if l.bias != nil {
		output = output.Add(l.bias.Tensor().Reshape(1, l.outFeatures))
	}
	return output
}

// Parameters returns [weight, bias], or [weight] without bias.
func (l *Linear) Parameters() []*Parameter {
	if l.bias != nil {
		return []*Parameter{l.weight, l.bias}
	}
	return []*Parameter{l.weight}
}

// Weight returns the weight parameter.
func (l *Linear) Weight() *Parameter {
	return l.weight
}

// Bias returns the bias parameter, or nil.
func (l *Linear) Bias() *Parameter {
	return l.bias
}

// InFeatures returns the number of input features.
func (l *Linear) InFeatures() int {
	return l.inFeatures
}

// OutFeatures returns the number of output features.
func (l *Linear) OutFeatures() int {
	return l.outFeatures
}
