package tensor

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnsupportedDevice is returned when data is moved to a device that has
// no backend in this build.
var ErrUnsupportedDevice = errors.New("tensor: unsupported device")

// Device represents the compute device for tensor operations.
type Device int

// Supported compute devices.
const (
	CPU Device = iota
	CUDA
	Metal
	WebGPU
)

// String returns a human-readable device name.
func (d Device) String() string {
	switch d {
	case CPU:
		return "CPU"
	case CUDA:
		return "CUDA"
	case Metal:
		return "Metal"
	case WebGPU:
		return "WebGPU"
	default:
		return "Unknown"
	}
}

// ParseDevice maps a device name ("cpu", "cuda", ...) to a Device.
// The empty string selects the CPU.
func ParseDevice(name string) (Device, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "cpu":
		return CPU, nil
	case "cuda":
		return CUDA, nil
	case "metal", "mps":
		return Metal, nil
	case "webgpu":
		return WebGPU, nil
	default:
		return CPU, fmt.Errorf("%w: %q", ErrUnsupportedDevice, name)
	}
}

// RawTensor is the untyped storage behind a Tensor: a shape, row-major
// float64 data and the device holding it.
//
// Backends operate on RawTensors; the autodiff tape keys gradients by
// *RawTensor.
type RawTensor struct {
	shape  Shape
	data   []float64
	device Device
}

// NewRaw allocates a zero-filled RawTensor.
func NewRaw(shape Shape, device Device) (*RawTensor, error) {
	if err := shape.Validate(); err != nil {
		return nil, err
	}
	return &RawTensor{
		shape:  shape.Clone(),
		data:   make([]float64, shape.NumElements()),
		device: device,
	}, nil
}

// MustRaw is NewRaw for shapes known to be valid. It panics on error.
func MustRaw(shape Shape, device Device) *RawTensor {
	r, err := NewRaw(shape, device)
	if err != nil {
		panic(err)
	}
	return r
}

// Shape returns the tensor's shape.
func (r *RawTensor) Shape() Shape {
	return r.shape
}

// Data returns the underlying data slice (zero-copy).
func (r *RawTensor) Data() []float64 {
	return r.data
}

// Device returns the device holding the data.
func (r *RawTensor) Device() Device {
	return r.device
}

// NumElements returns the total number of elements.
func (r *RawTensor) NumElements() int {
	return len(r.data)
}

// Clone returns a deep copy.
func (r *RawTensor) Clone() *RawTensor {
	data := make([]float64, len(r.data))
	copy(data, r.data)
	return &RawTensor{
		shape:  r.shape.Clone(),
		data:   data,
		device: r.device,
	}
}

// View returns a RawTensor sharing r's data under a new shape.
// Panics if the element counts differ.
func (r *RawTensor) View(shape Shape) *RawTensor {
	if shape.NumElements() != len(r.data) {
		panic(fmt.Sprintf("view: cannot view %v as %v", r.shape, shape))
	}
	return &RawTensor{
		shape:  shape.Clone(),
		data:   r.data,
		device: r.device,
	}
}

// Fill sets every element to v.
func (r *RawTensor) Fill(v float64) {
	for i := range r.data {
		r.data[i] = v
	}
}
