package train

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidConfig is returned when a Config cannot drive a run.
	ErrInvalidConfig = errors.New("train: invalid config")

	// ErrInvalidLoss is returned when a model's loss is missing or not a
	// single value.
	ErrInvalidLoss = errors.New("train: invalid loss")

	// ErrDiverged matches every *DivergenceError.
	ErrDiverged = errors.New("train: diverged")
)

// DivergenceError reports a NaN training loss. Model parameters and
// optimizer state must not be trusted after it.
type DivergenceError struct {
	Label string
	Epoch int // 1-based
	Loss  float64
}

func (e *DivergenceError) Error() string {
	return fmt.Sprintf("train: %s diverged at epoch %d (loss %v)", e.Label, e.Epoch, e.Loss)
}

// Is reports whether target is ErrDiverged.
func (e *DivergenceError) Is(target error) bool {
	return target == ErrDiverged
}
