// Package train runs the epoch loop that fits an eikonal travel-time model
// to weighted source/receiver pairs.
//
// Run builds a training split over the unit square and a validation split
// over a strictly interior square, then alternates one optimizer step on
// the training pairs with an evaluation pass on the validation pairs:
//
//	metrics, err := train.Run(ctx, model, train.Config{GridSize: 16, Epochs: 500})
//	var div *train.DivergenceError
//	if errors.As(err, &div) {
//	    // parameters are corrupted from epoch div.Epoch on
//	}
package train

import (
	"context"
	"fmt"
	"maps"
	"math"
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/born-ml/eikonal/internal/autodiff"
	"github.com/born-ml/eikonal/internal/optim"
	"github.com/born-ml/eikonal/internal/pairs"
	"github.com/born-ml/eikonal/internal/tensor"
)

// Run trains model for cfg.Epochs epochs and returns the recorded metrics.
//
// Epochs run strictly in sequence. A NaN training loss aborts the run with
// a *DivergenceError before that epoch is recorded. ctx is checked before
// each epoch; on cancellation Run returns ctx.Err(). Metrics recorded so
// far are returned together with any run-time error.
func Run(ctx context.Context, model Model, cfg Config) (*Metrics, error) {
	if model == nil {
		return nil, fmt.Errorf("%w: model is nil", ErrInvalidConfig)
	}
	cfg = cfg.withDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	device, err := tensor.ParseDevice(cfg.Device)
	if err != nil {
		return nil, fmt.Errorf("%w: device: %w", ErrInvalidConfig, err)
	}

	backend := model.Backend()
	if backend == nil {
		return nil, fmt.Errorf("%w: model has no backend", ErrInvalidConfig)
	}
	optimizer := optim.NewAdam(model.Parameters(), optim.AdamConfig{LR: cfg.LearningRate})

	trainSet, err := buildSplit(*cfg.TrainBounds, cfg, backend, device)
	if err != nil {
		return nil, fmt.Errorf("train split: %w", err)
	}
	valSet, err := buildSplit(*cfg.ValBounds, cfg, backend, device)
	if err != nil {
		return nil, fmt.Errorf("validation split: %w", err)
	}
	// Validation is always unweighted.
	valSet.Weights = nil

	metrics := newMetrics(uuid.NewString(), cfg.Label, cfg.Epochs)
	logger := cfg.Logger.With("run_id", metrics.RunID, "label", cfg.Label)
	logger.Info("training started",
		"epochs", cfg.Epochs,
		"grid_size", cfg.GridSize,
		"learning_rate", cfg.LearningRate,
		"weighted_loss", cfg.WeightedLoss,
		"device", device.String(),
		"train_pairs", trainSet.Len(),
		"val_pairs", valSet.Len(),
	)

	tape := backend.Tape()
	wasRecording := tape.IsRecording()
	defer func() {
		tape.Clear()
		if wasRecording {
			tape.StartRecording()
		} else {
			tape.StopRecording()
		}
		metrics.TauLog = slices.Clone(model.TauLog())
		if t0, ok := model.(T0Logger); ok {
			metrics.T0Log = slices.Clone(t0.T0Log())
		}
	}()

	bar := newProgress(cfg.Progress, cfg.Epochs, cfg.Label)
	completed := false
	defer func() { bar.done(completed) }()

	var trainWeights *tensor.Tensor
	if cfg.WeightedLoss {
		trainWeights = trainSet.Weights
	}

	start := time.Now()
	for epoch := 1; epoch <= cfg.Epochs; epoch++ {
		if err := ctx.Err(); err != nil {
			logger.Warn("training cancelled", "epoch", epoch, "err", err)
			return metrics, err
		}

		trainLoss, err := trainStep(model, optimizer, trainSet, trainWeights)
		if err != nil {
			return metrics, fmt.Errorf("epoch %d: %w", epoch, err)
		}
		if math.IsNaN(trainLoss) {
			derr := &DivergenceError{Label: cfg.Label, Epoch: epoch, Loss: trainLoss}
			logger.Error("training diverged", "epoch", epoch)
			return metrics, derr
		}

		val, err := evaluate(model, valSet)
		if err != nil {
			return metrics, fmt.Errorf("epoch %d: validation: %w", epoch, err)
		}

		metrics.TrainLoss = append(metrics.TrainLoss, trainLoss)
		metrics.ValLoss = append(metrics.ValLoss, val.loss)
		metrics.Diagnostics = append(metrics.Diagnostics, val.diagnostics)
		metrics.Tau = append(metrics.Tau, lastOrNaN(model.TauLog()))

		bar.epoch(trainLoss, val.loss, val.diagnostics)
		logger.Debug("epoch",
			"epoch", epoch,
			"train", trainLoss,
			"val", val.loss,
			"tau", metrics.Tau[len(metrics.Tau)-1],
		)
	}

	completed = true
	logger.Info("training finished",
		"epochs", metrics.Epochs(),
		"train", lastOrNaN(metrics.TrainLoss),
		"val", lastOrNaN(metrics.ValLoss),
		"elapsed", time.Since(start),
	)
	return metrics, nil
}

// buildSplit samples the pairs over b and moves them to device once.
func buildSplit(b pairs.Bounds, cfg Config, backend Backend, device tensor.Device) (*pairs.Tensors, error) {
	ps, err := pairs.Sample(pairs.Options{
		Bounds: b,
		NX:     cfg.GridSize,
		NZ:     cfg.GridSize,
		Scale:  cfg.Scale,
	})
	if err != nil {
		return nil, err
	}
	return ps.Tensors(backend, device)
}

// trainStep runs one forward/backward/step on the training split and
// returns the loss value.
func trainStep(model Model, optimizer optim.Optimizer, set *pairs.Tensors, weights *tensor.Tensor) (float64, error) {
	backend := model.Backend()
	tape := backend.Tape()

	model.Train()
	tape.Clear()
	tape.StartRecording()
	defer tape.Clear()

	src := set.Sources.Clone().RequireGrad()
	rcv := set.Receivers.Clone().RequireGrad()

	out, err := model.Loss(src, rcv, weights)
	if err != nil {
		return 0, err
	}
	if err := checkLoss(out); err != nil {
		return 0, err
	}

	grads := autodiff.Backward(out.Loss, backend)
	optimizer.Step(grads)
	optimizer.ZeroGrad()

	return out.Loss.Item(), nil
}

type evaluation struct {
	loss        float64
	diagnostics map[string]float64
}

// evaluate computes the unweighted validation loss with tape recording off.
// Inputs still carry gradient tracking for models that differentiate their
// own output with respect to position.
func evaluate(model Model, set *pairs.Tensors) (evaluation, error) {
	tape := model.Backend().Tape()

	model.Eval()
	tape.StopRecording()
	defer tape.StartRecording()

	src := set.Sources.Clone().RequireGrad()
	rcv := set.Receivers.Clone().RequireGrad()

	out, err := model.Loss(src, rcv, nil)
	if err != nil {
		return evaluation{}, err
	}
	if err := checkLoss(out); err != nil {
		return evaluation{}, err
	}
	diagnostics := maps.Clone(out.Diagnostics)
	if diagnostics == nil {
		diagnostics = map[string]float64{}
	}
	return evaluation{loss: out.Loss.Item(), diagnostics: diagnostics}, nil
}

func checkLoss(out LossOutput) error {
	if out.Loss == nil {
		return fmt.Errorf("%w: model returned no loss", ErrInvalidLoss)
	}
	if n := out.Loss.NumElements(); n != 1 {
		return fmt.Errorf("%w: loss has shape %v, want a single value", ErrInvalidLoss, out.Loss.Shape())
	}
	return nil
}

func lastOrNaN(values []float64) float64 {
	if len(values) == 0 {
		return math.NaN()
	}
	return values[len(values)-1]
}
