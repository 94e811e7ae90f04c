// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package pairs builds weighted source/receiver training pairs on a regular
// 2-D grid.
//
// Every ordered pair of distinct grid points is weighted by its normalized
// distance times an inverse-frequency correction of that distance:
//
//	ps, err := pairs.Sample(pairs.Options{Bounds: pairs.UnitSquare, NX: 2, NZ: 2})
//	// ps.Len() == 12, every weight in (0, 1]
package pairs

import "github.com/born-ml/eikonal/internal/pairs"

// Point is a coordinate in the (x, z) domain.
type Point = pairs.Point

// Bounds is a closed rectangle of the domain.
type Bounds = pairs.Bounds

// Grid is an x-major grid of points.
type Grid = pairs.Grid

// Options configures Sample.
type Options = pairs.Options

// PairSet holds parallel sources, receivers and weights.
type PairSet = pairs.PairSet

// Tensors is a PairSet on a compute device.
type Tensors = pairs.Tensors

// Correction is the inverse-frequency correction of distance values.
type Correction = pairs.Correction

// Histogram bins pair weights.
type Histogram = pairs.Histogram

// DefaultScale is the default distance scaling before grouping.
const DefaultScale = pairs.DefaultScale

var (
	// UnitSquare is [0,1]².
	UnitSquare = pairs.UnitSquare

	// InteriorSquare is [0.01,0.99]².
	InteriorSquare = pairs.InteriorSquare

	// ErrInvalidGrid reports options that cannot produce a grid.
	ErrInvalidGrid = pairs.ErrInvalidGrid

	// ErrShapeMismatch reports disagreeing PairSet lengths.
	ErrShapeMismatch = pairs.ErrShapeMismatch
)

// NewGrid builds an nx × nz grid over b.
func NewGrid(b Bounds, nx, nz int) (*Grid, error) {
	return pairs.NewGrid(b, nx, nz)
}

// Sample builds the weighted pair set for opts.
func Sample(opts Options) (*PairSet, error) {
	return pairs.Sample(opts)
}

// FrequencyCorrection computes correction factors over values grouped by
// exact equality.
func FrequencyCorrection(values []float64) Correction {
	return pairs.FrequencyCorrection(values)
}

// WeightHistogram bins weights into equal-width bins over [0, 1].
func WeightHistogram(weights []float64, bins int) (Histogram, error) {
	return pairs.WeightHistogram(weights, bins)
}
