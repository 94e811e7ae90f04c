// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package tensor provides the dense float64 tensors used to fit eikonal
// travel-time models.
//
//	backend := cpu.New()
//	x, err := tensor.FromSlice([]float64{1, 2, 3, 4}, tensor.Shape{2, 2}, backend)
//	y := x.MatMul(x.T())
package tensor

import "github.com/born-ml/eikonal/internal/tensor"

// Tensor is a float64 tensor bound to a compute backend.
type Tensor = tensor.Tensor

// RawTensor is the storage behind a Tensor.
type RawTensor = tensor.RawTensor

// Shape represents the dimensions of a tensor.
type Shape = tensor.Shape

// Backend is implemented by compute backends.
type Backend = tensor.Backend

// Device identifies where tensor data lives.
type Device = tensor.Device

// Supported devices. Only CPU has a backend in this module.
const (
	CPU    = tensor.CPU
	CUDA   = tensor.CUDA
	Metal  = tensor.Metal
	WebGPU = tensor.WebGPU
)

// ErrUnsupportedDevice is returned when data is moved to a device without a
// backend.
var ErrUnsupportedDevice = tensor.ErrUnsupportedDevice

// ParseDevice maps a device name such as "cpu" to a Device.
func ParseDevice(name string) (Device, error) {
	return tensor.ParseDevice(name)
}

// FromSlice creates a tensor from a copy of data.
func FromSlice(data []float64, shape Shape, b Backend) (*Tensor, error) {
	return tensor.FromSlice(data, shape, b)
}

// Zeros creates a zero-filled tensor.
func Zeros(shape Shape, b Backend) *Tensor {
	return tensor.Zeros(shape, b)
}

// Ones creates a tensor filled with ones.
func Ones(shape Shape, b Backend) *Tensor {
	return tensor.Ones(shape, b)
}

// Full creates a tensor filled with v.
func Full(shape Shape, v float64, b Backend) *Tensor {
	return tensor.Full(shape, v, b)
}
