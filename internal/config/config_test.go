package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestResolveDefaults(t *testing.T) {
	var cfg Config
	cfg.Resolve(Flags{})

	if cfg.WeightThreshold != 0.05 {
		t.Errorf("WeightThreshold = %v, want 0.05", cfg.WeightThreshold)
	}
	if cfg.MaxInfluences != 4 {
		t.Errorf("MaxInfluences = %v, want 4", cfg.MaxInfluences)
	}
	if cfg.SmallIslandFraction != 0.02 {
		t.Errorf("SmallIslandFraction = %v, want 0.02", cfg.SmallIslandFraction)
	}
	if cfg.SmoothIterations != 2 {
		t.Errorf("SmoothIterations = %v, want 2", cfg.SmoothIterations)
	}
	if len(cfg.KeyFrames) != 5 || cfg.KeyFrames[4] != 24 {
		t.Errorf("KeyFrames = %v, want 1,7,13,19,24", cfg.KeyFrames)
	}
	if cfg.Workers <= 0 {
		t.Errorf("Workers = %v, want > 0", cfg.Workers)
	}
}

func TestFlagsOverrideFile(t *testing.T) {
	cfg := Config{Workers: 3}
	cfg.Resolve(Flags{Workers: 7})
	if cfg.Workers != 7 {
		t.Errorf("Workers = %d, want CLI override 7", cfg.Workers)
	}
}

func TestLoadJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rig.json")
	body := `{"weight_threshold": 0.1, "max_influences": 2, "key_frames": [1, 5, 9]}`
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	cfg.Resolve(Flags{})

	if cfg.WeightThreshold != 0.1 {
		t.Errorf("WeightThreshold = %v, want 0.1", cfg.WeightThreshold)
	}
	if cfg.MaxInfluences != 2 {
		t.Errorf("MaxInfluences = %v, want 2", cfg.MaxInfluences)
	}
	if len(cfg.KeyFrames) != 3 {
		t.Errorf("KeyFrames = %v, want the 3 configured frames", cfg.KeyFrames)
	}
	// Untouched fields still default.
	if cfg.SmoothFactor != 0.5 {
		t.Errorf("SmoothFactor = %v, want default 0.5", cfg.SmoothFactor)
	}
}

func TestLoadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rig.yaml")
	body := "leg_swing_deg: 45\nbody_bob: 0.05\nworkers: 2\n"
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	cfg.Resolve(Flags{})

	if cfg.LegSwingDeg != 45 {
		t.Errorf("LegSwingDeg = %v, want 45", cfg.LegSwingDeg)
	}
	if cfg.BodyBob != 0.05 {
		t.Errorf("BodyBob = %v, want 0.05", cfg.BodyBob)
	}
	if cfg.Workers != 2 {
		t.Errorf("Workers = %v, want 2", cfg.Workers)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.json")); err == nil {
		t.Fatal("expected error for missing config file")
	}
}
