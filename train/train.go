// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package train runs the epoch loop that fits an eikonal travel-time model.
//
//	model := eikonet.New(autodiff.New(cpu.New()), eikonet.Config{})
//	metrics, err := train.Run(ctx, model, train.Config{GridSize: 16, Epochs: 500})
//	if errors.Is(err, train.ErrDiverged) {
//	    // discard the model
//	}
package train

import (
	"context"

	"github.com/born-ml/eikonal/internal/train"
)

// Model is the differentiable approximator driven by Run.
type Model = train.Model

// Backend is the autodiff CPU backend models compute on.
type Backend = train.Backend

// LossOutput is the value returned by Model.Loss.
type LossOutput = train.LossOutput

// T0Logger is implemented by models that log a t0 series.
type T0Logger = train.T0Logger

// Config captures the knobs of a training run.
type Config = train.Config

// Overrides holds caller values applied over a loaded Config.
type Overrides = train.Overrides

// Metrics holds per-epoch losses and diagnostics.
type Metrics = train.Metrics

// DivergenceError reports a NaN training loss.
type DivergenceError = train.DivergenceError

var (
	// ErrInvalidConfig reports a Config that cannot drive a run.
	ErrInvalidConfig = train.ErrInvalidConfig

	// ErrInvalidLoss reports a missing or non-scalar model loss.
	ErrInvalidLoss = train.ErrInvalidLoss

	// ErrDiverged matches every *DivergenceError.
	ErrDiverged = train.ErrDiverged
)

// Run trains model and returns the recorded metrics.
func Run(ctx context.Context, model Model, cfg Config) (*Metrics, error) {
	return train.Run(ctx, model, cfg)
}

// LoadConfig reads, defaults and validates a YAML config.
func LoadConfig(path string) (*Config, error) {
	return train.LoadConfig(path)
}
