// Package report shapes trained-model output for plotting: velocity and
// travel-time maps over a grid, and per-epoch loss curves.
package report

import (
	"errors"
	"fmt"

	"github.com/born-ml/eikonal/internal/pairs"
	"github.com/born-ml/eikonal/internal/tensor"
	"github.com/born-ml/eikonal/internal/train"
)

// Evaluator is the part of train.Model that maps need.
type Evaluator interface {
	Forward(sources, receivers *tensor.Tensor) *tensor.Tensor
	Velocity(sources, receivers *tensor.Tensor) *tensor.Tensor
	Backend() train.Backend
}

// Map is a 2-D field laid out for image rendering: one row per z value,
// one column per x value, row-major.
type Map struct {
	Rows int // len(zs)
	Cols int // len(xs)
	Data []float64

	// Extent is (x_min, x_max, z_max, z_min): depth grows downwards.
	Extent [4]float64
}

// At returns the value at row iz, column ix.
func (m Map) At(iz, ix int) float64 {
	return m.Data[iz*m.Cols+ix]
}

// MapOptions configures Maps.
type MapOptions struct {
	Source pairs.Point

	// MaxVelocity clips the velocity map to [0, MaxVelocity]; 0 disables
	// clipping.
	MaxVelocity float64
}

// Maps evaluates the velocity and travel-time fields of model for a fixed
// source at every receiver on grid. Tape recording is paused while the
// model runs.
func Maps(model Evaluator, grid *pairs.Grid, opts MapOptions) (velocity, travel Map, err error) {
	if grid == nil || grid.Len() == 0 {
		return Map{}, Map{}, errors.New("report: empty grid")
	}
	backend := model.Backend()
	tape := backend.Tape()
	if tape.IsRecording() {
		tape.StopRecording()
		defer tape.StartRecording()
	}

	n := grid.Len()
	src := make([]float64, 0, 2*n)
	rcv := make([]float64, 0, 2*n)
	for _, p := range grid.Points {
		src = append(src, opts.Source.X, opts.Source.Z)
		rcv = append(rcv, p.X, p.Z)
	}
	sources, err := tensor.FromSlice(src, tensor.Shape{n, 2}, backend)
	if err != nil {
		return Map{}, Map{}, fmt.Errorf("report: sources: %w", err)
	}
	receivers, err := tensor.FromSlice(rcv, tensor.Shape{n, 2}, backend)
	if err != nil {
		return Map{}, Map{}, fmt.Errorf("report: receivers: %w", err)
	}

	vel := model.Velocity(sources.Clone().RequireGrad(), receivers.Clone().RequireGrad()).Data()
	tt := model.Forward(sources.Clone().RequireGrad(), receivers.Clone().RequireGrad()).Data()
	if len(vel) != n || len(tt) != n {
		return Map{}, Map{}, fmt.Errorf("report: model returned %d velocities and %d times for %d receivers", len(vel), len(tt), n)
	}

	velocity = newMap(grid, vel)
	if opts.MaxVelocity > 0 {
		for i, v := range velocity.Data {
			velocity.Data[i] = min(max(v, 0), opts.MaxVelocity)
		}
	}
	return velocity, newMap(grid, tt), nil
}

// newMap transposes x-major grid values into z rows.
func newMap(grid *pairs.Grid, values []float64) Map {
	m := Map{
		Rows: grid.NZ,
		Cols: grid.NX,
		Data: make([]float64, len(values)),
		Extent: [4]float64{
			grid.Xs[0], grid.Xs[grid.NX-1],
			grid.Zs[grid.NZ-1], grid.Zs[0],
		},
	}
	for ix := range grid.NX {
		for iz := range grid.NZ {
			m.Data[iz*grid.NX+ix] = values[grid.Index(ix, iz)]
		}
	}
	return m
}
