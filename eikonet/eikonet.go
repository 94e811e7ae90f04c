// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package eikonet provides a factored travel-time network for the 2-D
// eikonal equation, T(s, r) = |r - s| · τ(s, r).
package eikonet

import (
	"github.com/born-ml/eikonal/internal/eikonet"
	"github.com/born-ml/eikonal/internal/train"
)

// Model is the factored travel-time network.
type Model = eikonet.Model

// Config holds the network shape and medium.
type Config = eikonet.Config

// VelocityField is the medium travel times are fitted to.
type VelocityField = eikonet.VelocityField

// Constant is a homogeneous medium.
type Constant = eikonet.Constant

// LinearGradient is a medium with v(z) = V0 + K*z.
type LinearGradient = eikonet.LinearGradient

// New builds a model on backend.
func New(backend train.Backend, cfg Config) *Model {
	return eikonet.New(backend, cfg)
}
