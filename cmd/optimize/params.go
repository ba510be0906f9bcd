package main

import (
	"math"

	"github.com/pthm-cable/evosim/config"
)

// ParamSpec defines a single optimizable parameter.
type ParamSpec struct {
	Name    string  // Human-readable name
	Path    string  // Config path for logging
	Min     float64 // Lower bound
	Max     float64 // Upper bound
	Integer bool    // Rounded before it is applied

	get func(*config.Config) float64
	set func(*config.Config, float64)
}

// ParamVector holds the set of all optimizable parameters.
type ParamVector struct {
	Specs []ParamSpec
}

// NewParamVector creates the standard set of optimizable parameters.
func NewParamVector() *ParamVector {
	return &ParamVector{
		Specs: []ParamSpec{
			// Food
			{
				Name: "food_spawn_interval", Path: "food.spawn_interval", Min: 1, Max: 20, Integer: true,
				get: func(c *config.Config) float64 { return float64(c.Food.SpawnInterval) },
				set: func(c *config.Config, v float64) { c.Food.SpawnInterval = int(v) },
			},
			{
				Name: "food_min_energy", Path: "food.min_energy", Min: 5, Max: 60,
				get: func(c *config.Config) float64 { return c.Food.MinEnergy },
				set: func(c *config.Config, v float64) { c.Food.MinEnergy = v },
			},
			{
				// Stored as a span so max never drops below min
				Name: "food_energy_span", Path: "food.max_energy - food.min_energy", Min: 0, Max: 60,
				get: func(c *config.Config) float64 { return c.Food.MaxEnergy - c.Food.MinEnergy },
				set: func(c *config.Config, v float64) { c.Food.MaxEnergy = c.Food.MinEnergy + v },
			},
			// Reproduction
			{
				Name: "repro_min_energy", Path: "reproduction.min_energy", Min: 5, Max: 100,
				get: func(c *config.Config) float64 { return c.Reproduction.MinEnergy },
				set: func(c *config.Config, v float64) { c.Reproduction.MinEnergy = v },
			},
			{
				Name: "repro_threshold", Path: "reproduction.threshold", Min: 5, Max: 100, Integer: true,
				get: func(c *config.Config) float64 { return float64(c.Reproduction.Threshold) },
				set: func(c *config.Config, v float64) { c.Reproduction.Threshold = int(v) },
			},
			{
				Name: "child_energy", Path: "reproduction.child_energy", Min: 5, Max: 80,
				get: func(c *config.Config) float64 { return c.Reproduction.ChildEnergy },
				set: func(c *config.Config, v float64) { c.Reproduction.ChildEnergy = v },
			},
			{
				Name: "maturity_fraction", Path: "reproduction.maturity_fraction", Min: 0.02, Max: 0.5,
				get: func(c *config.Config) float64 { return c.Reproduction.MaturityFraction },
				set: func(c *config.Config, v float64) { c.Reproduction.MaturityFraction = v },
			},
			// Founders
			{
				Name: "prey_weight", Path: "genome.prey_weight", Min: 0.02, Max: 0.5,
				get: func(c *config.Config) float64 { return c.Genome.PreyWeight },
				set: func(c *config.Config, v float64) { c.Genome.PreyWeight = v },
			},
		},
	}
}

// Dim returns the number of parameters.
func (pv *ParamVector) Dim() int {
	return len(pv.Specs)
}

// Names returns the parameter names in vector order.
func (pv *ParamVector) Names() []string {
	names := make([]string, len(pv.Specs))
	for i, spec := range pv.Specs {
		names[i] = spec.Name
	}
	return names
}

// Normalize converts raw parameter values to [0,1] range.
func (pv *ParamVector) Normalize(raw []float64) []float64 {
	normalized := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		normalized[i] = (raw[i] - spec.Min) / (spec.Max - spec.Min)
	}
	return normalized
}

// Denormalize converts [0,1] values back to raw parameter values.
func (pv *ParamVector) Denormalize(normalized []float64) []float64 {
	raw := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		raw[i] = spec.Min + normalized[i]*(spec.Max-spec.Min)
	}
	return raw
}

// Clamp ensures all values are within bounds and rounds integer parameters.
func (pv *ParamVector) Clamp(v []float64) []float64 {
	clamped := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		val := math.Max(spec.Min, math.Min(spec.Max, v[i]))
		if spec.Integer {
			val = math.Round(val)
		}
		clamped[i] = val
	}
	return clamped
}

// ApplyToConfig writes parameter values into cfg and recomputes derived values.
func (pv *ParamVector) ApplyToConfig(cfg *config.Config, values []float64) error {
	for i, v := range pv.Clamp(values) {
		pv.Specs[i].set(cfg, v)
	}
	return cfg.Finalize()
}

// ExtractFromConfig reads the current parameter values from cfg.
func (pv *ParamVector) ExtractFromConfig(cfg *config.Config) []float64 {
	values := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		values[i] = spec.get(cfg)
	}
	return values
}
