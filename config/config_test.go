package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load(\"\") error: %v", err)
	}

	if cfg.Food.SpawnInterval != 5 {
		t.Errorf("food.spawn_interval = %d, want 5", cfg.Food.SpawnInterval)
	}
	if cfg.Genome.MutationRate != 0.10 {
		t.Errorf("genome.mutation_rate = %v, want 0.10", cfg.Genome.MutationRate)
	}
	if cfg.Reproduction.Threshold != 30 {
		t.Errorf("reproduction.threshold = %d, want 30", cfg.Reproduction.Threshold)
	}
	if cfg.Lifecycle.Growth.Predator != 1.8 || cfg.Lifecycle.Growth.Herbivore != 1.4 {
		t.Errorf("growth factors = %+v", cfg.Lifecycle.Growth)
	}

	// Derived values
	if cfg.Derived.LightRadius != 750 {
		t.Errorf("light radius = %v, want 750", cfg.Derived.LightRadius)
	}
	if cfg.Derived.CellSize != 35*1.2 {
		t.Errorf("cell size = %v, want %v", cfg.Derived.CellSize, 35*1.2)
	}
}

func TestLoadOverridesOnlyPresentFields(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "cfg.yaml")
	data := []byte("world:\n  width: 400\nfood:\n  spawn_interval: 2\nspatial:\n  cell_size: 64\n")
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cfg.World.Width != 400 {
		t.Errorf("width = %d, want 400", cfg.World.Width)
	}
	if cfg.World.Height != 1500 {
		t.Errorf("height = %d, want default 1500", cfg.World.Height)
	}
	if cfg.Food.SpawnInterval != 2 {
		t.Errorf("spawn interval = %d, want 2", cfg.Food.SpawnInterval)
	}
	if cfg.Food.MinEnergy != 20 {
		t.Errorf("food min energy = %v, want default 20", cfg.Food.MinEnergy)
	}
	if cfg.Derived.CellSize != 64 {
		t.Errorf("cell size = %v, want 64", cfg.Derived.CellSize)
	}
	if cfg.Derived.LightRadius != 200 {
		t.Errorf("light radius = %v, want 200", cfg.Derived.LightRadius)
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"zero width", "world:\n  width: 0\n"},
		{"zero spawn interval", "food:\n  spawn_interval: 0\n"},
		{"inverted food energy", "food:\n  min_energy: 50\n  max_energy: 10\n"},
		{"zero threshold", "reproduction:\n  threshold: 0\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "bad.yaml")
			if err := os.WriteFile(path, []byte(tt.yaml), 0644); err != nil {
				t.Fatal(err)
			}
			if _, err := Load(path); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestWriteYAMLRoundTrip(t *testing.T) {
	cfg := Default()
	cfg.Population.Initial = 7

	path := filepath.Join(t.TempDir(), "out.yaml")
	if err := cfg.WriteYAML(path); err != nil {
		t.Fatalf("WriteYAML error: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if loaded.Population.Initial != 7 {
		t.Errorf("population.initial = %d, want 7", loaded.Population.Initial)
	}
	if loaded.Genome != cfg.Genome {
		t.Errorf("genome params changed on round trip: %+v vs %+v", loaded.Genome, cfg.Genome)
	}
}

func TestCfgPanicsBeforeInit(t *testing.T) {
	saved := global
	global = nil
	defer func() {
		global = saved
		if recover() == nil {
			t.Error("Cfg() should panic before Init()")
		}
	}()
	Cfg()
}
