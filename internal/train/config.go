package train

import (
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/born-ml/eikonal/internal/pairs"
	"github.com/born-ml/eikonal/internal/tensor"
)

// Defaults applied by Run to zero Config fields.
const (
	DefaultLearningRate = 1e-3
	DefaultDim          = 2
	DefaultLabel        = "eikonal"
)

// Config captures the knobs of a training run.
type Config struct {
	GridSize     int     `yaml:"grid_size"` // points per axis, >= 2
	Epochs       int     `yaml:"epochs"`
	LearningRate float64 `yaml:"learning_rate"`
	Label        string  `yaml:"label"`
	Dim          int     `yaml:"dim"`
	Device       string  `yaml:"device"`

	// WeightedLoss passes the training pair weights to Model.Loss. Off by
	// default: the model sees an unweighted loss. Validation is always
	// unweighted.
	WeightedLoss bool `yaml:"weighted_loss"`

	// Scale is the pair sampler's distance scaling (default:
	// pairs.DefaultScale).
	Scale float64 `yaml:"scale"`

	// Dataset domains (defaults: pairs.UnitSquare, pairs.InteriorSquare).
	TrainBounds *pairs.Bounds `yaml:"train_bounds"`
	ValBounds   *pairs.Bounds `yaml:"val_bounds"`

	// Progress receives a per-epoch progress bar; nil disables it.
	Progress io.Writer `yaml:"-"`

	// Logger receives structured run and epoch records; nil discards them.
	Logger *slog.Logger `yaml:"-"`
}

// Overrides captures caller supplied values that take precedence over a
// loaded Config.
type Overrides struct {
	GridSize     int
	Epochs       int
	LearningRate float64
	Label        string
	Device       string
	WeightedLoss bool
}

// ApplyOverrides updates c using any non-zero override.
func (c *Config) ApplyOverrides(o Overrides) {
	if o.GridSize > 0 {
		c.GridSize = o.GridSize
	}
	if o.Epochs > 0 {
		c.Epochs = o.Epochs
	}
	if o.LearningRate > 0 {
		c.LearningRate = o.LearningRate
	}
	if o.Label != "" {
		c.Label = o.Label
	}
	if o.Device != "" {
		c.Device = o.Device
	}
	if o.WeightedLoss {
		c.WeightedLoss = true
	}
}

// LoadConfig reads a Config from YAML, applies defaults and validates it.
// Unknown keys are rejected.
func LoadConfig(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open config: %w", err)
	}
	defer f.Close()

	cfg, err := parseConfig(f)
	if err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	*cfg = cfg.withDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func parseConfig(r io.Reader) (*Config, error) {
	cfg := &Config{}
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && err != io.EOF {
		return nil, err
	}
	return cfg, nil
}

func (c Config) withDefaults() Config {
	if c.LearningRate == 0 {
		c.LearningRate = DefaultLearningRate
	}
	if c.Dim == 0 {
		c.Dim = DefaultDim
	}
	if c.Label == "" {
		c.Label = DefaultLabel
	}
	if c.Scale == 0 {
		c.Scale = pairs.DefaultScale
	}
	if c.TrainBounds == nil {
		b := pairs.UnitSquare
		c.TrainBounds = &b
	}
	if c.ValBounds == nil {
		b := pairs.InteriorSquare
		c.ValBounds = &b
	}
	if c.Logger == nil {
		c.Logger = slog.New(slog.DiscardHandler)
	}
	return c
}

// Validate verifies the config is runnable. Run validates after applying
// defaults, so zero optional fields are accepted there.
func (c *Config) Validate() error {
	if c == nil {
		return fmt.Errorf("%w: config is nil", ErrInvalidConfig)
	}
	if c.GridSize < 2 {
		return fmt.Errorf("%w: grid_size must be >= 2 (got %d)", ErrInvalidConfig, c.GridSize)
	}
	if c.Epochs < 0 {
		return fmt.Errorf("%w: epochs must be >= 0 (got %d)", ErrInvalidConfig, c.Epochs)
	}
	if !(c.LearningRate > 0) || math.IsInf(c.LearningRate, 0) {
		return fmt.Errorf("%w: learning_rate must be positive and finite (got %g)", ErrInvalidConfig, c.LearningRate)
	}
	if c.Dim != DefaultDim {
		return fmt.Errorf("%w: dim must be %d (got %d)", ErrInvalidConfig, DefaultDim, c.Dim)
	}
	if _, err := tensor.ParseDevice(c.Device); err != nil {
		return fmt.Errorf("%w: device: %w", ErrInvalidConfig, err)
	}
	if !(c.Scale > 0) || math.IsInf(c.Scale, 0) {
		return fmt.Errorf("%w: scale must be positive and finite (got %g)", ErrInvalidConfig, c.Scale)
	}
	if c.TrainBounds != nil {
		if err := c.TrainBounds.Validate(); err != nil {
			return fmt.Errorf("%w: train_bounds: %w", ErrInvalidConfig, err)
		}
	}
	if c.ValBounds != nil {
		if err := c.ValBounds.Validate(); err != nil {
			return fmt.Errorf("%w: val_bounds: %w", ErrInvalidConfig, err)
		}
	}
	return nil
}
