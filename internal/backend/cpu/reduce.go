package cpu

import (
	"fmt"

	"github.com/born-ml/eikonal/internal/tensor"
)

// Sum reduces all elements to a 0-D tensor.
func (cpu *CPUBackend) Sum(x *tensor.RawTensor) *tensor.RawTensor {
	result := tensor.MustRaw(tensor.Shape{}, cpu.device)
	var sum float64
	for _, v := range x.Data() {
		sum += v
	}
	result.Data()[0] = sum
	return result
}

// Mean reduces all elements to their mean. The mean of an empty tensor is
// NaN.
func (cpu *CPUBackend) Mean(x *tensor.RawTensor) *tensor.RawTensor {
	result := cpu.Sum(x)
	result.Data()[0] /= float64(x.NumElements())
	return result
}

// SumDim sums along dim. Negative dims count from the end.
func (cpu *CPUBackend) SumDim(x *tensor.RawTensor, dim int, keepDim bool) *tensor.RawTensor {
	shape := x.Shape()
	if dim < 0 {
		dim += len(shape)
	}
	if dim < 0 || dim >= len(shape) {
		panic(fmt.Sprintf("sumdim: dim %d out of range for shape %v", dim, shape))
	}

	outer := shape[:dim].NumElements()
	size := shape[dim]
	inner := shape[dim+1:].NumElements()

	outShape := make(tensor.Shape, 0, len(shape))
	outShape = append(outShape, shape[:dim]...)
	if keepDim {
		outShape = append(outShape, 1)
	}
	outShape = append(outShape, shape[dim+1:]...)

	result := tensor.MustRaw(outShape, cpu.device)
	in, out := x.Data(), result.Data()
	for o := 0; o < outer; o++ {
		for k := 0; k < size; k++ {
			base := (o*size + k) * inner
			for i := 0; i < inner; i++ {
				out[o*inner+i] += in[base+i]
			}
		}
	}
	return result
}
