package config

import "sort"

var Presets = map[string]map[string]*Config{
	"polynomial": {
		// dx/dt = p - x: one attractor, the cell holding x = p.
		"decay": {
			Model: ModelConfig{
				Kind:        "polynomial",
				Thresholds:  []float64{0, 2, 4, 6, 8, 10},
				Coeffs:      []float64{0, -1},
				ParamCoeffs: []float64{1},
			},
			Domain: DomainConfig{Low: 0, High: 10},
		},
		// dx/dt = -x^3 + 3x + p: bistable for |p| < 2.
		"bistable": {
			Model: ModelConfig{
				Kind:        "polynomial",
				Thresholds:  []float64{-3, -2.5, -2, -1.5, -1, -0.5, 0, 0.5, 1, 1.5, 2, 2.5, 3},
				Coeffs:      []float64{0, 3, 0, -1},
				ParamCoeffs: []float64{1},
			},
			Domain: DomainConfig{Low: -4, High: 4},
		},
	},
	"ring": {
		"small": {
			Model:  ModelConfig{Kind: "ring", States: 8},
			Domain: DomainConfig{Low: 0, High: 8},
		},
		"large": {
			Model:  ModelConfig{Kind: "ring", States: 256},
			Domain: DomainConfig{Low: 0, High: 1},
		},
	},
	"random": {
		"small": {
			Model:  ModelConfig{Kind: "random", States: DefaultStates, Edges: DefaultEdges, Seed: 1},
			Domain: DomainConfig{Low: DefaultLow, High: DefaultHigh},
		},
		"dense": {
			Model:  ModelConfig{Kind: "random", States: 500, Edges: 4000, Seed: 7},
			Domain: DomainConfig{Low: DefaultLow, High: DefaultHigh},
		},
	},
}

// GetPreset returns a copy of the named preset with the run settings of
// DefaultConfig, or nil.
func GetPreset(model, preset string) *Config {
	modelPresets, ok := Presets[model]
	if !ok {
		return nil
	}
	p, ok := modelPresets[preset]
	if !ok {
		return nil
	}
	cfg := DefaultConfig()
	src := p.Clone()
	cfg.Model = src.Model
	cfg.Domain = src.Domain
	return cfg
}

func ListPresets(model string) []string {
	modelPresets, ok := Presets[model]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(modelPresets))
	for name := range modelPresets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ListModels returns the model kinds that have presets.
func ListModels() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
