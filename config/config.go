// Package config provides configuration loading and access for the simulation.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/pthm-cable/evosim/genome"
	"github.com/pthm-cable/evosim/traits"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all simulation configuration parameters.
type Config struct {
	World        WorldConfig        `yaml:"world"`
	Population   PopulationConfig   `yaml:"population"`
	Food         FoodConfig         `yaml:"food"`
	Genome       genome.Params      `yaml:"genome"`
	Lifecycle    LifecycleConfig    `yaml:"lifecycle"`
	Reproduction ReproductionConfig `yaml:"reproduction"`
	Spatial      SpatialConfig      `yaml:"spatial"`
	Telemetry    TelemetryConfig    `yaml:"telemetry"`
	Bookmarks    BookmarksConfig    `yaml:"bookmarks"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// WorldConfig holds the environment dimensions and ambient field parameters.
type WorldConfig struct {
	Width            int     `yaml:"width"`
	Height           int     `yaml:"height"`
	TemperatureLeft  float64 `yaml:"temperature_left"`  // Temperature at x = 0
	TemperatureRight float64 `yaml:"temperature_right"` // Temperature at x = width
}

// PopulationConfig holds initial seeding parameters.
type PopulationConfig struct {
	Initial       int     `yaml:"initial"`
	InitialEnergy float64 `yaml:"initial_energy"`
}

// FoodConfig holds food spawning parameters.
type FoodConfig struct {
	SpawnInterval int     `yaml:"spawn_interval"` // One food item every N ticks
	Initial       int     `yaml:"initial"`        // Food items placed at world creation
	MinEnergy     float64 `yaml:"min_energy"`
	MaxEnergy     float64 `yaml:"max_energy"`
}

// LifecycleConfig holds aging, metabolism, growth and movement parameters.
type LifecycleConfig struct {
	DeathOnset      float64              `yaml:"death_onset"`       // Fraction of max age where death risk starts
	DeathSteepness  float64              `yaml:"death_steepness"`   // k in 1 - exp(-x*k)
	MoveCostDivisor float64              `yaml:"move_cost_divisor"` // Energy cost = metabolism / this when moving
	IdleCostDivisor float64              `yaml:"idle_cost_divisor"` // Energy cost = metabolism / this when still
	WanderJitter    float64              `yaml:"wander_jitter"`     // Max heading perturbation per axis
	Growth          traits.GrowthFactors `yaml:"growth"`
}

// ReproductionConfig holds fertility and offspring parameters.
type ReproductionConfig struct {
	MaturityFraction float64 `yaml:"maturity_fraction"` // Fertile once age > max_age * this
	MinEnergy        float64 `yaml:"min_energy"`        // Fertility accrues only at or above this energy
	FertilityCost    float64 `yaml:"fertility_cost"`    // Energy paid per accrued unit
	Threshold        int     `yaml:"threshold"`         // Accrued units per child
	ChildEnergy      float64 `yaml:"child_energy"`
	SpawnJitter      float64 `yaml:"spawn_jitter"` // Child offset from parent per axis
}

// SpatialConfig holds spatial index parameters.
type SpatialConfig struct {
	CellSize float64 `yaml:"cell_size"` // 0 = derive from the largest sense radius
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	StatsWindow int `yaml:"stats_window"` // Ticks per stats window
	HistorySize int `yaml:"history_size"` // Population history samples kept
	PerfWindow  int `yaml:"perf_window"`  // Ticks averaged by the perf collector
}

// BookmarksConfig holds bookmark detection thresholds.
type BookmarksConfig struct {
	HistorySize      int     `yaml:"history_size"`
	CrashDropPercent float64 `yaml:"crash_drop_percent"` // Drop versus recent peak that counts as a crash
	CrashMinDrop     int     `yaml:"crash_min_drop"`
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	CellSize    float64 // Effective spatial grid cell size
	LightRadius float64 // min(width, height) / 2
	CenterX     float64
	CenterY     float64
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Default returns a fresh copy of the embedded defaults.
func Default() *Config {
	cfg, err := Load("")
	if err != nil {
		panic(fmt.Sprintf("config: embedded defaults invalid: %v", err))
	}
	return cfg
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Unmarshal into same struct - only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.Finalize(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Finalize validates the config and recomputes derived values.
// Call it after editing a loaded config in place.
func (c *Config) Finalize() error {
	if err := c.validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	c.computeDerived()
	return nil
}

func (c *Config) validate() error {
	var errs []error
	if c.World.Width <= 0 || c.World.Height <= 0 {
		errs = append(errs, fmt.Errorf("world size %dx%d must be positive", c.World.Width, c.World.Height))
	}
	if c.Food.SpawnInterval <= 0 {
		errs = append(errs, fmt.Errorf("food.spawn_interval %d must be positive", c.Food.SpawnInterval))
	}
	if c.Food.MaxEnergy < c.Food.MinEnergy {
		errs = append(errs, errors.New("food.max_energy below food.min_energy"))
	}
	if c.Reproduction.Threshold <= 0 {
		errs = append(errs, fmt.Errorf("reproduction.threshold %d must be positive", c.Reproduction.Threshold))
	}
	if c.Genome.InitialSize.Min <= 0 {
		errs = append(errs, errors.New("genome.initial_size.min must be positive"))
	}
	if c.Lifecycle.MoveCostDivisor <= 0 || c.Lifecycle.IdleCostDivisor <= 0 {
		errs = append(errs, errors.New("lifecycle cost divisors must be positive"))
	}
	return errors.Join(errs...)
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	w, h := float64(c.World.Width), float64(c.World.Height)
	c.Derived.LightRadius = math.Min(w, h) / 2
	c.Derived.CenterX = w / 2
	c.Derived.CenterY = h / 2

	// Cell size ~ the largest sense radius so a query touches at most 3x3 cells
	cellSize := c.Spatial.CellSize
	if cellSize <= 0 {
		cellSize = c.Genome.FoodSenseDistance.Max * traits.PreySenseMultiplier
	}
	if cellSize <= 0 {
		cellSize = 32
	}
	c.Derived.CellSize = cellSize
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
