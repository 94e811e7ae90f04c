package cpu

import (
	"fmt"

	"github.com/born-ml/eikonal/internal/tensor"
)

// Reshape returns a copy of x with a new shape holding the same number of
// elements.
func (cpu *CPUBackend) Reshape(x *tensor.RawTensor, shape tensor.Shape) *tensor.RawTensor {
	if shape.NumElements() != x.NumElements() {
		panic(fmt.Sprintf("reshape: cannot reshape %v (%d elements) to %v", x.Shape(), x.NumElements(), shape))
	}
	return x.Clone().View(shape)
}

// Expand broadcasts x to shape.
func (cpu *CPUBackend) Expand(x *tensor.RawTensor, shape tensor.Shape) *tensor.RawTensor {
	out, _, err := tensor.BroadcastShapes(x.Shape(), shape)
	if err != nil || !out.Equal(shape) {
		panic(fmt.Sprintf("expand: cannot expand %v to %v", x.Shape(), shape))
	}
	zeros := tensor.MustRaw(shape, cpu.device)
	return cpu.Add(zeros, x)
}
