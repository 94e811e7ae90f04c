// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package autodiff provides reverse-mode automatic differentiation by
// wrapping a backend and recording its operations on a gradient tape.
//
//	backend := autodiff.New(cpu.New())
//	backend.Tape().StartRecording()
//	loss := x.Square().Sum()
//	grads := autodiff.Backward(loss, backend)
package autodiff

import (
	"github.com/born-ml/eikonal/internal/autodiff"
	"github.com/born-ml/eikonal/internal/tensor"
)

// Backend is the autodiff-enabled backend.
type Backend[B tensor.Backend] = autodiff.AutodiffBackend[B]

// New creates a new autodiff backend wrapping the given backend.
func New[B tensor.Backend](backend B) *Backend[B] {
	return autodiff.New(backend)
}

// GradientTape records operations for automatic differentiation.
type GradientTape = autodiff.GradientTape

// BackwardCapable is implemented by backends that own a tape.
type BackwardCapable = autodiff.BackwardCapable

// Backward computes gradients of the single-element tensor t with respect
// to every tensor recorded on the backend's tape.
func Backward[B BackwardCapable](t *tensor.Tensor, backend B) map[*tensor.RawTensor]*tensor.RawTensor {
	return autodiff.Backward(t, backend)
}
