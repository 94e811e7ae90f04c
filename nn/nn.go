// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package nn provides the neural network layers eikonal models are built
// from.
package nn

import (
	"math/rand"

	"github.com/born-ml/eikonal/internal/nn"
	"github.com/born-ml/eikonal/internal/tensor"
)

// Module is the interface of all layers.
type Module = nn.Module

// Parameter is a trainable tensor.
type Parameter = nn.Parameter

// Linear is a fully connected layer.
type Linear = nn.Linear

// LinearOption configures NewLinear.
type LinearOption = nn.LinearOption

// Sequential chains modules.
type Sequential = nn.Sequential

// Tanh is the hyperbolic tangent activation.
type Tanh = nn.Tanh

// NewLinear creates a Linear layer with Xavier weights and zero bias.
func NewLinear(inFeatures, outFeatures int, backend tensor.Backend, opts ...LinearOption) *Linear {
	return nn.NewLinear(inFeatures, outFeatures, backend, opts...)
}

// WithName prefixes parameter names.
func WithName(name string) LinearOption { return nn.WithName(name) }

// WithoutBias drops the bias term.
func WithoutBias() LinearOption { return nn.WithoutBias() }

// WithRand draws initial weights from rng.
func WithRand(rng *rand.Rand) LinearOption { return nn.WithRand(rng) }

// NewSequential creates a Sequential container.
func NewSequential(modules ...Module) *Sequential {
	return nn.NewSequential(modules...)
}

// NewTanh creates a Tanh activation.
func NewTanh() *Tanh {
	return nn.NewTanh()
}

// MSELoss returns mean((pred - target)²).
func MSELoss(pred, target *tensor.Tensor) *tensor.Tensor {
	return nn.MSELoss(pred, target)
}

// WeightedMSELoss returns mean(weights * (pred - target)²).
func WeightedMSELoss(pred, target, weights *tensor.Tensor) *tensor.Tensor {
	return nn.WeightedMSELoss(pred, target, weights)
}
