// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package report shapes model output for plotting.
package report

import (
	"io"

	"github.com/born-ml/eikonal/internal/pairs"
	"github.com/born-ml/eikonal/internal/report"
	"github.com/born-ml/eikonal/internal/train"
)

// Map is a 2-D field with rows = z and columns = x.
type Map = report.Map

// MapOptions configures Maps.
type MapOptions = report.MapOptions

// Evaluator is the part of a model Maps needs.
type Evaluator = report.Evaluator

// Maps evaluates velocity and travel-time maps for a fixed source.
func Maps(model Evaluator, grid *pairs.Grid, opts MapOptions) (velocity, travel Map, err error) {
	return report.Maps(model, grid, opts)
}

// WriteCurves writes per-epoch metrics as CSV.
func WriteCurves(w io.Writer, m *train.Metrics) error {
	return report.WriteCurves(w, m)
}

// WriteMap writes a map as CSV.
func WriteMap(w io.Writer, m Map) error {
	return report.WriteMap(w, m)
}

// Colormap maps [0, 1] to colors for map images.
type Colormap = report.Colormap

// Viridis is the default colormap.
var Viridis = report.Viridis

// WritePNG renders a map as a PNG heat map.
func WritePNG(w io.Writer, m Map, cmap Colormap) error {
	return report.WritePNG(w, m, cmap)
}
