package experiment

import (
	"fmt"
	"sort"

	"github.com/san-kum/paramsynth/internal/config"
	"github.com/san-kum/paramsynth/internal/models"
)

type Registry struct {
	models map[string]func(config.ModelConfig) models.Model
}

func NewRegistry() *Registry {
	r := &Registry{
		models: make(map[string]func(config.ModelConfig) models.Model),
	}

	r.models["polynomial"] = func(cfg config.ModelConfig) models.Model {
		return &models.Polynomial{
			Coeffs:      cfg.Coeffs,
			ParamCoeffs: cfg.ParamCoeffs,
			Thresholds:  cfg.Thresholds,
		}
	}
	r.models["ring"] = func(cfg config.ModelConfig) models.Model {
		return &models.Ring{States: cfg.States}
	}
	r.models["random"] = func(cfg config.ModelConfig) models.Model {
		return &models.Random{States: cfg.States, Edges: cfg.Edges, Seed: cfg.Seed}
	}

	return r
}

func (r *Registry) GetModel(cfg config.ModelConfig) (models.Model, error) {
	fn, ok := r.models[cfg.Kind]
	if !ok {
		return nil, fmt.Errorf("unknown model: %s", cfg.Kind)
	}
	return fn(cfg), nil
}

func (r *Registry) ListModels() []string {
	names := make([]string, 0, len(r.models))
	for name := range r.models {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
