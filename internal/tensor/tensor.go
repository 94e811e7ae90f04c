// Package tensor provides the dense float64 tensors used by the eikonal
// trainer, in the backend-decorator style of the Born ML framework.
//
// A Tensor pairs RawTensor storage with the Backend that computes on it.
// Wrapping a backend with autodiff.New makes every operation recordable:
//
//	backend := autodiff.New(cpu.New())
//	backend.Tape().StartRecording()
//	x, _ := tensor.FromSlice([]float64{2}, tensor.Shape{1}, backend)
//	y := x.Mul(x)
package tensor

import (
	"fmt"
	"math"
)

// Tensor is a float64 tensor bound to a compute backend.
type Tensor struct {
	raw          *RawTensor
	backend      Backend
	requiresGrad bool
}

// New creates a Tensor from a RawTensor and backend.
func New(raw *RawTensor, b Backend) *Tensor {
	return &Tensor{raw: raw, backend: b}
}

// FromSlice creates a tensor from a Go slice. The slice is copied.
func FromSlice(data []float64, shape Shape, b Backend) (*Tensor, error) {
	if shape.NumElements() != len(data) {
		return nil, fmt.Errorf("shape %v requires %d elements, but got %d", shape, shape.NumElements(), len(data))
	}
	raw, err := NewRaw(shape, b.Device())
	if err != nil {
		return nil, err
	}
	copy(raw.data, data)
	return New(raw, b), nil
}

// Zeros creates a zero-filled tensor.
func Zeros(shape Shape, b Backend) *Tensor {
	return New(MustRaw(shape, b.Device()), b)
}

// Ones creates a tensor filled with ones.
func Ones(shape Shape, b Backend) *Tensor {
	return Full(shape, 1, b)
}

// Full creates a tensor filled with v.
func Full(shape Shape, v float64, b Backend) *Tensor {
	raw := MustRaw(shape, b.Device())
	raw.Fill(v)
	return New(raw, b)
}

// Scalar creates a 0-D tensor.
func Scalar(v float64, b Backend) *Tensor {
	return Full(Shape{}, v, b)
}

// Shape returns the tensor's shape.
func (t *Tensor) Shape() Shape {
	return t.raw.Shape()
}

// Device returns the tensor's compute device.
func (t *Tensor) Device() Device {
	return t.raw.Device()
}

// NumElements returns the total number of elements.
func (t *Tensor) NumElements() int {
	return t.raw.NumElements()
}

// Raw returns the underlying RawTensor.
func (t *Tensor) Raw() *RawTensor {
	return t.raw
}

// Backend returns the computation backend.
func (t *Tensor) Backend() Backend {
	return t.backend
}

// Data returns the tensor's data (zero-copy).
//
// WARNING: Modifications to the returned slice modify the tensor.
func (t *Tensor) Data() []float64 {
	return t.raw.Data()
}

// Item returns the value of a single-element tensor.
// Panics if the tensor holds more than one element.
func (t *Tensor) Item() float64 {
	if t.NumElements() != 1 {
		panic(fmt.Sprintf("Item() only works for single-element tensors, got shape %v", t.Shape()))
	}
	return t.raw.data[0]
}

// At returns the element at the given indices.
// Panics if indices are out of bounds.
func (t *Tensor) At(indices ...int) float64 {
	shape := t.Shape()
	if len(indices) != len(shape) {
		panic(fmt.Sprintf("expected %d indices, got %d", len(shape), len(indices)))
	}
	offset := 0
	strides := shape.Strides()
	for i, idx := range indices {
		if idx < 0 || idx >= shape[i] {
			panic(fmt.Sprintf("index %d out of bounds for dimension %d (size %d)", idx, i, shape[i]))
		}
		offset += idx * strides[i]
	}
	return t.raw.data[offset]
}

// HasNaN reports whether any element is NaN.
func (t *Tensor) HasNaN() bool {
	for _, v := range t.raw.data {
		if math.IsNaN(v) {
			return true
		}
	}
	return false
}

// String returns a short description of the tensor.
func (t *Tensor) String() string {
	return fmt.Sprintf("Tensor%v on %s", t.Shape(), t.Device())
}

// Clone creates a deep copy. Gradient tracking is not copied.
func (t *Tensor) Clone() *Tensor {
	return New(t.raw.Clone(), t.backend)
}

// Detach returns a tensor sharing t's data without gradient tracking.
func (t *Tensor) Detach() *Tensor {
	return New(t.raw, t.backend)
}

// RequireGrad marks this tensor for gradient computation and returns it for
// chaining.
//
//	src := sources.Clone().RequireGrad()
func (t *Tensor) RequireGrad() *Tensor {
	t.requiresGrad = true
	return t
}

// RequiresGrad returns true if this tensor requires gradient computation.
func (t *Tensor) RequiresGrad() bool {
	return t.requiresGrad
}

// To returns t on the given device. Only the backend's own device is
// reachable; moving to the current device returns t unchanged.
func (t *Tensor) To(device Device) (*Tensor, error) {
	if device == t.Device() {
		return t, nil
	}
	if device != t.backend.Device() {
		return nil, fmt.Errorf("%w: %s (backend %s runs on %s)",
			ErrUnsupportedDevice, device, t.backend.Name(), t.backend.Device())
	}
	raw := t.raw.Clone()
	raw.device = device
	out := New(raw, t.backend)
	out.requiresGrad = t.requiresGrad
	return out, nil
}
