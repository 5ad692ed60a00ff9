package config

import (
	"errors"
	"fmt"
	"os"
	"slices"

	"github.com/caarlos0/env/v11"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

const (
	DefaultLow      = 0.0
	DefaultHigh     = 10.0
	DefaultPivot    = "naive"
	DefaultWorkers  = 4
	DefaultDataDir  = ".paramsynth"
	DefaultLogLevel = "info"
	DefaultTrace    = "none"
	DefaultStates   = 64
	DefaultEdges    = 192
)

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("config: invalid configuration")

var validate = validator.New()

type Config struct {
	Model    ModelConfig  `yaml:"model"`
	Domain   DomainConfig `yaml:"domain"`
	Pivot    string       `yaml:"pivot" env:"PARAMSYNTH_PIVOT" validate:"oneof=naive volume structure structure-cardinality"`
	Parallel bool         `yaml:"parallel" env:"PARAMSYNTH_PARALLEL"`
	Workers  int          `yaml:"workers" env:"PARAMSYNTH_WORKERS" validate:"gte=1"`
	DataDir  string       `yaml:"data_dir" env:"PARAMSYNTH_DATA_DIR" validate:"required"`
	LogLevel string       `yaml:"log_level" env:"PARAMSYNTH_LOG_LEVEL" validate:"oneof=debug info warn error"`
	Trace    string       `yaml:"trace" env:"PARAMSYNTH_TRACE" validate:"oneof=none stdout"`
}

// ModelConfig selects and parameterizes the transition system generator.
type ModelConfig struct {
	Kind string `yaml:"kind" validate:"oneof=polynomial random ring"`

	// Polynomial: dx/dt = sum(coeffs[i] x^i) + p * sum(param_coeffs[i] x^i),
	// abstracted over the given thresholds.
	Thresholds  []float64 `yaml:"thresholds,omitempty"`
	Coeffs      []float64 `yaml:"coeffs,omitempty"`
	ParamCoeffs []float64 `yaml:"param_coeffs,omitempty"`

	// Random and ring.
	States int   `yaml:"states,omitempty" validate:"gte=0"`
	Edges  int   `yaml:"edges,omitempty" validate:"gte=0"`
	Seed   int64 `yaml:"seed" env:"PARAMSYNTH_SEED"`
}

// DomainConfig bounds the single parameter.
type DomainConfig struct {
	Low  float64 `yaml:"low"`
	High float64 `yaml:"high" validate:"gtfield=Low"`
}

func DefaultConfig() *Config {
	return &Config{
		Model: ModelConfig{
			Kind:   "ring",
			States: 8,
		},
		Domain: DomainConfig{
			Low:  DefaultLow,
			High: DefaultHigh,
		},
		Pivot:    DefaultPivot,
		Workers:  DefaultWorkers,
		DataDir:  DefaultDataDir,
		LogLevel: DefaultLogLevel,
		Trace:    DefaultTrace,
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ApplyEnv overrides fields from PARAMSYNTH_* environment variables. Unset
// variables leave the current value alone.
func (c *Config) ApplyEnv() error {
	if err := env.Parse(c); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Validate checks field constraints and the model description.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if c.Model.Kind == "polynomial" {
		if len(c.Model.Thresholds) < 2 {
			return fmt.Errorf("%w: polynomial model needs at least two thresholds", ErrInvalid)
		}
		for i := 1; i < len(c.Model.Thresholds); i++ {
			if c.Model.Thresholds[i] <= c.Model.Thresholds[i-1] {
				return fmt.Errorf("%w: thresholds must be strictly increasing", ErrInvalid)
			}
		}
		if len(c.Model.Coeffs) == 0 && len(c.Model.ParamCoeffs) == 0 {
			return fmt.Errorf("%w: polynomial model has no coefficients", ErrInvalid)
		}
	}
	if c.Model.Kind == "random" && c.Model.States == 0 {
		return fmt.Errorf("%w: random model needs states", ErrInvalid)
	}
	if c.Model.Kind == "ring" && c.Model.States == 0 {
		return fmt.Errorf("%w: ring model needs states", ErrInvalid)
	}
	return nil
}

// Clone returns a deep copy of c.
func (c *Config) Clone() *Config {
	out := *c
	out.Model.Thresholds = slices.Clone(c.Model.Thresholds)
	out.Model.Coeffs = slices.Clone(c.Model.Coeffs)
	out.Model.ParamCoeffs = slices.Clone(c.Model.ParamCoeffs)
	return &out
}
