// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package nn_test

import (
	"testing"

	"github.com/born-ml/eikonal/backend/cpu"
	"github.com/born-ml/eikonal/nn"
	"github.com/born-ml/eikonal/tensor"
)

// TestModuleInterface verifies that concrete types implement Module interface.
func TestModuleInterface(t *testing.T) {
	backend := cpu.New()

	tests := []struct {
		name   string
		module nn.Module
		params int
	}{
		{"Linear", nn.NewLinear(2, 3, backend), 2},
		{"LinearNoBias", nn.NewLinear(2, 3, backend, nn.WithoutBias()), 1},
		{"Tanh", nn.NewTanh(), 0},
		{"Sequential", nn.NewSequential(nn.NewLinear(2, 4, backend), nn.NewTanh(), nn.NewLinear(4, 1, backend)), 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := len(tt.module.Parameters()); got != tt.params {
				t.Errorf("Parameters() = %d, want %d", got, tt.params)
			}
		})
	}
}

func TestSequentialForward(t *testing.T) {
	backend := cpu.New()
	model := nn.NewSequential(nn.NewLinear(2, 4, backend), nn.NewTanh(), nn.NewLinear(4, 1, backend))

	x := tensor.Ones(tensor.Shape{5, 2}, backend)
	out := model.Forward(x)

	if !out.Shape().Equal(tensor.Shape{5, 1}) {
		t.Errorf("output shape = %v, want [5 1]", out.Shape())
	}
}
