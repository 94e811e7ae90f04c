package ops

import "github.com/born-ml/eikonal/internal/tensor"

// SumOp represents output = sum(x) as a 0-D tensor.
type SumOp struct{ base }

// NewSumOp creates a new SumOp.
func NewSumOp(x, output *tensor.RawTensor) *SumOp {
	return &SumOp{base{inputs: []*tensor.RawTensor{x}, output: output}}
}

// Backward broadcasts the scalar gradient to the input shape.
func (op *SumOp) Backward(outputGrad *tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor {
	return []*tensor.RawTensor{backend.Expand(outputGrad, op.inputs[0].Shape())}
}

// MeanOp represents output = mean(x) as a 0-D tensor.
type MeanOp struct{ base }

// NewMeanOp creates a new MeanOp.
func NewMeanOp(x, output *tensor.RawTensor) *MeanOp {
	return &MeanOp{base{inputs: []*tensor.RawTensor{x}, output: output}}
}

// Backward broadcasts grad / N to the input shape.
func (op *MeanOp) Backward(outputGrad *tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor {
	x := op.inputs[0]
	n := x.NumElements()
	if n == 0 {
		return []*tensor.RawTensor{tensor.MustRaw(x.Shape(), x.Device())}
	}
	scaled := backend.MulScalar(outputGrad, 1/float64(n))
	return []*tensor.RawTensor{backend.Expand(scaled, x.Shape())}
}

// SumDimOp represents a sum along one dimension.
type SumDimOp struct {
	base
	dim int
}

// NewSumDimOp creates a new SumDimOp. dim must already be non-negative.
func NewSumDimOp(x, output *tensor.RawTensor, dim int) *SumDimOp {
	return &SumDimOp{base: base{inputs: []*tensor.RawTensor{x}, output: output}, dim: dim}
}

// Backward re-inserts the reduced dimension and broadcasts along it.
func (op *SumDimOp) Backward(outputGrad *tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor {
	inShape := op.inputs[0].Shape()
	kept := inShape.Clone()
	kept[op.dim] = 1

	grad := outputGrad
	if !grad.Shape().Equal(kept) {
		grad = backend.Reshape(grad, kept)
	}
	return []*tensor.RawTensor{backend.Expand(grad, inShape)}
}
