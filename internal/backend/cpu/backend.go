// Package cpu implements the CPU backend: broadcasting element-wise kernels,
// reductions, and matrix products through gonum BLAS.
package cpu

import (
	"fmt"
	"math"

	"github.com/born-ml/eikonal/internal/parallel"
	"github.com/born-ml/eikonal/internal/tensor"
)

// CPUBackend implements tensor operations on CPU.
type CPUBackend struct {
	device tensor.Device
	par    parallel.Config
}

// New creates a new CPU backend using all available cores for large
// element-wise loops.
func New() *CPUBackend {
	return &CPUBackend{
		device: tensor.CPU,
		par:    parallel.DefaultConfig(),
	}
}

// NewWithConfig creates a CPU backend with explicit parallelism settings.
func NewWithConfig(cfg parallel.Config) *CPUBackend {
	return &CPUBackend{device: tensor.CPU, par: cfg}
}

// Name returns the backend name.
func (cpu *CPUBackend) Name() string {
	return "CPU"
}

// Device returns the compute device.
func (cpu *CPUBackend) Device() tensor.Device {
	return cpu.device
}

// Add performs element-wise addition with NumPy-style broadcasting.
func (cpu *CPUBackend) Add(a, b *tensor.RawTensor) *tensor.RawTensor {
	return cpu.binary("add", a, b, func(x, y float64) float64 { return x + y })
}

// Sub performs element-wise subtraction with broadcasting.
func (cpu *CPUBackend) Sub(a, b *tensor.RawTensor) *tensor.RawTensor {
	return cpu.binary("sub", a, b, func(x, y float64) float64 { return x - y })
}

// Mul performs element-wise multiplication with broadcasting.
func (cpu *CPUBackend) Mul(a, b *tensor.RawTensor) *tensor.RawTensor {
	return cpu.binary("mul", a, b, func(x, y float64) float64 { return x * y })
}

// Div performs element-wise division with broadcasting.
// Division by zero follows IEEE 754 (±Inf or NaN).
func (cpu *CPUBackend) Div(a, b *tensor.RawTensor) *tensor.RawTensor {
	return cpu.binary("div", a, b, func(x, y float64) float64 { return x / y })
}

// AddScalar adds s to every element.
func (cpu *CPUBackend) AddScalar(x *tensor.RawTensor, s float64) *tensor.RawTensor {
	return cpu.unary(x, func(v float64) float64 { return v + s })
}

// MulScalar multiplies every element by s.
func (cpu *CPUBackend) MulScalar(x *tensor.RawTensor, s float64) *tensor.RawTensor {
	return cpu.unary(x, func(v float64) float64 { return v * s })
}

// Tanh applies the hyperbolic tangent element-wise.
func (cpu *CPUBackend) Tanh(x *tensor.RawTensor) *tensor.RawTensor {
	return cpu.unary(x, math.Tanh)
}

// Sqrt applies the square root element-wise.
func (cpu *CPUBackend) Sqrt(x *tensor.RawTensor) *tensor.RawTensor {
	return cpu.unary(x, math.Sqrt)
}

func (cpu *CPUBackend) unary(x *tensor.RawTensor, f func(float64) float64) *tensor.RawTensor {
	result := tensor.MustRaw(x.Shape(), cpu.device)
	in, out := x.Data(), result.Data()
	parallel.ForRange(len(out), func(start, end int) {
		for i := start; i < end; i++ {
			out[i] = f(in[i])
		}
	}, cpu.par)
	return result
}

func (cpu *CPUBackend) binary(name string, a, b *tensor.RawTensor, f func(x, y float64) float64) *tensor.RawTensor {
	outShape, needsBroadcast, err := tensor.BroadcastShapes(a.Shape(), b.Shape())
	if err != nil {
		panic(fmt.Sprintf("%s: %v", name, err))
	}

	result := tensor.MustRaw(outShape, cpu.device)
	out, ad, bd := result.Data(), a.Data(), b.Data()

	// Fast path: identical shapes.
	if !needsBroadcast {
		parallel.ForRange(len(out), func(start, end int) {
			for i := start; i < end; i++ {
				out[i] = f(ad[i], bd[i])
			}
		}, cpu.par)
		return result
	}

	aStrides := broadcastStrides(a.Shape(), outShape)
	bStrides := broadcastStrides(b.Shape(), outShape)
	outStrides := outShape.Strides()

	parallel.ForRange(len(out), func(start, end int) {
		for i := start; i < end; i++ {
			ai, bi, rem := 0, 0, i
			for d, st := range outStrides {
				idx := rem / st
				rem -= idx * st
				ai += idx * aStrides[d]
				bi += idx * bStrides[d]
			}
			out[i] = f(ad[ai], bd[bi])
		}
	}, cpu.par)

	return result
}

// broadcastStrides returns, for each dimension of out, the stride to step in
// a tensor of shape in. Broadcast dimensions get stride 0.
func broadcastStrides(in, out tensor.Shape) []int {
	strides := make([]int, len(out))
	inStrides := in.Strides()
	offset := len(out) - len(in)
	for i := range in {
		if in[i] != 1 {
			strides[i+offset] = inStrides[i]
		}
	}
	return strides
}
