package ops

import "github.com/born-ml/eikonal/internal/tensor"

// AddScalarOp represents output = x + s.
type AddScalarOp struct{ base }

// NewAddScalarOp creates a new AddScalarOp.
func NewAddScalarOp(x, output *tensor.RawTensor) *AddScalarOp {
	return &AddScalarOp{base{inputs: []*tensor.RawTensor{x}, output: output}}
}

// Backward passes the gradient through unchanged.
func (op *AddScalarOp) Backward(outputGrad *tensor.RawTensor, _ tensor.Backend) []*tensor.RawTensor {
	return []*tensor.RawTensor{outputGrad}
}

// MulScalarOp represents output = x * s.
type MulScalarOp struct {
	base
	scalar float64
}

// NewMulScalarOp creates a new MulScalarOp.
func NewMulScalarOp(x, output *tensor.RawTensor, scalar float64) *MulScalarOp {
	return &MulScalarOp{base: base{inputs: []*tensor.RawTensor{x}, output: output}, scalar: scalar}
}

// Backward scales the gradient by s.
func (op *MulScalarOp) Backward(outputGrad *tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor {
	return []*tensor.RawTensor{backend.MulScalar(outputGrad, op.scalar)}
}

// TanhOp represents output = tanh(x).
type TanhOp struct{ base }

// NewTanhOp creates a new TanhOp.
func NewTanhOp(x, output *tensor.RawTensor) *TanhOp {
	return &TanhOp{base{inputs: []*tensor.RawTensor{x}, output: output}}
}

// Backward computes grad * (1 - tanh²(x)) from the stored output.
func (op *TanhOp) Backward(outputGrad *tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor {
	squared := backend.Mul(op.output, op.output)
	derivative := backend.AddScalar(backend.MulScalar(squared, -1), 1)
	return []*tensor.RawTensor{backend.Mul(outputGrad, derivative)}
}

// SqrtOp represents output = sqrt(x).
type SqrtOp struct{ base }

// NewSqrtOp creates a new SqrtOp.
func NewSqrtOp(x, output *tensor.RawTensor) *SqrtOp {
	return &SqrtOp{base{inputs: []*tensor.RawTensor{x}, output: output}}
}

// Backward computes grad / (2 * sqrt(x)). The gradient is infinite at x = 0.
func (op *SqrtOp) Backward(outputGrad *tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor {
	return []*tensor.RawTensor{backend.Div(backend.MulScalar(outputGrad, 0.5), op.output)}
}
