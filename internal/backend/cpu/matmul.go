package cpu

import (
	"fmt"

	"gonum.org/v1/gonum/blas"
	"gonum.org/v1/gonum/blas/blas64"

	"github.com/born-ml/eikonal/internal/tensor"
)

// MatMul performs matrix multiplication (M, K) @ (K, N) -> (M, N) with
// gonum's DGEMM.
func (cpu *CPUBackend) MatMul(a, b *tensor.RawTensor) *tensor.RawTensor {
	aShape, bShape := a.Shape(), b.Shape()
	if len(aShape) != 2 || len(bShape) != 2 {
		panic(fmt.Sprintf("matmul: only 2D tensors supported, got %dD and %dD", len(aShape), len(bShape)))
	}

	m, k := aShape[0], aShape[1]
	kAlt, n := bShape[0], bShape[1]
	if k != kAlt {
		panic(fmt.Sprintf("matmul: shape mismatch [%d,%d] @ [%d,%d]", m, k, kAlt, n))
	}

	result := tensor.MustRaw(tensor.Shape{m, n}, cpu.device)
	if m == 0 || n == 0 || k == 0 {
		return result
	}

	blas64.Gemm(blas.NoTrans, blas.NoTrans, 1,
		blas64.General{Rows: m, Cols: k, Stride: k, Data: a.Data()},
		blas64.General{Rows: k, Cols: n, Stride: n, Data: b.Data()},
		0,
		blas64.General{Rows: m, Cols: n, Stride: n, Data: result.Data()},
	)
	return result
}

// Transpose swaps the two axes of a 2-D tensor.
func (cpu *CPUBackend) Transpose(x *tensor.RawTensor) *tensor.RawTensor {
	shape := x.Shape()
	if len(shape) != 2 {
		panic(fmt.Sprintf("transpose: only 2D tensors supported, got shape %v", shape))
	}
	rows, cols := shape[0], shape[1]
	result := tensor.MustRaw(tensor.Shape{cols, rows}, cpu.device)
	in, out := x.Data(), result.Data()
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			out[j*rows+i] = in[i*cols+j]
		}
	}
	return result
}
