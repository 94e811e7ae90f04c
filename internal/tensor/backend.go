package tensor

// Backend defines the interface that compute backends implement.
//
// Element-wise binary operations follow NumPy broadcasting. Shape misuse is a
// programming error and panics, as do all backend operations.
//
// Implementations:
//   - cpu.CPUBackend: pure Go, gonum BLAS for matrix products
//   - autodiff.AutodiffBackend: decorator recording operations for backprop
type Backend interface {
	// Element-wise binary operations
	Add(a, b *RawTensor) *RawTensor
	Sub(a, b *RawTensor) *RawTensor
	Mul(a, b *RawTensor) *RawTensor
	Div(a, b *RawTensor) *RawTensor

	// Matrix operations (2-D only)
	MatMul(a, b *RawTensor) *RawTensor
	Transpose(x *RawTensor) *RawTensor

	// Shape operations
	Reshape(x *RawTensor, shape Shape) *RawTensor
	Expand(x *RawTensor, shape Shape) *RawTensor

	// Scalar operations
	AddScalar(x *RawTensor, s float64) *RawTensor
	MulScalar(x *RawTensor, s float64) *RawTensor

	// Math operations (element-wise)
	Tanh(x *RawTensor) *RawTensor
	Sqrt(x *RawTensor) *RawTensor

	// Reductions
	Sum(x *RawTensor) *RawTensor                           // scalar result
	Mean(x *RawTensor) *RawTensor                          // scalar result
	SumDim(x *RawTensor, dim int, keepDim bool) *RawTensor // sum along dimension

	// Metadata
	Name() string
	Device() Device
}
