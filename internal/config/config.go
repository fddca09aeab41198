package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds every tunable of the rigging pipeline. The thresholds carry
// the values of the original batch tool; they are configuration, not derived
// quantities.
type Config struct {
	// Weight cleanup
	WeightThreshold     float64 `json:"weight_threshold" yaml:"weight_threshold"`
	MaxInfluences       int     `json:"max_influences" yaml:"max_influences"`
	SmallIslandFraction float64 `json:"small_island_fraction" yaml:"small_island_fraction"`
	CoverageEpsilon     float64 `json:"coverage_epsilon" yaml:"coverage_epsilon"`
	SmoothIterations    int     `json:"smooth_iterations" yaml:"smooth_iterations"`
	SmoothFactor        float64 `json:"smooth_factor" yaml:"smooth_factor"`

	// Walk cycle
	LegSwingDeg float64 `json:"leg_swing_deg" yaml:"leg_swing_deg"`
	LegLiftDeg  float64 `json:"leg_lift_deg" yaml:"leg_lift_deg"`
	ArmSwingDeg float64 `json:"arm_swing_deg" yaml:"arm_swing_deg"`
	BodyBob     float64 `json:"body_bob" yaml:"body_bob"`
	KeyFrames   []int   `json:"key_frames" yaml:"key_frames"`

	// Preview rendering
	PreviewSize int `json:"preview_size" yaml:"preview_size"`
	Supersample int `json:"supersample" yaml:"supersample"`
	WebPQuality int `json:"webp_quality" yaml:"webp_quality"`

	// Batch mode
	Workers int `json:"workers" yaml:"workers"`
}

// Load reads a JSON or YAML config file, chosen by extension.
// Fields not set in the file keep their zero values until Resolve.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}

	var cfg Config
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
		}
	default:
		if err := json.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
		}
	}

	return cfg, nil
}

// Flags holds CLI flag values that override config file settings.
type Flags struct {
	Workers     int
	PreviewSize int
}

// Resolve applies CLI overrides, then fills remaining zero fields with
// defaults.
func (c *Config) Resolve(flags Flags) {
	if flags.Workers > 0 {
		c.Workers = flags.Workers
	}
	if flags.PreviewSize > 0 {
		c.PreviewSize = flags.PreviewSize
	}

	if c.WeightThreshold <= 0 {
		c.WeightThreshold = 0.05
	}
	if c.MaxInfluences <= 0 {
		c.MaxInfluences = 4
	}
	if c.SmallIslandFraction <= 0 {
		c.SmallIslandFraction = 0.02
	}
	if c.CoverageEpsilon <= 0 {
		c.CoverageEpsilon = 0.01
	}
	if c.SmoothIterations <= 0 {
		c.SmoothIterations = 2
	}
	if c.SmoothFactor <= 0 {
		c.SmoothFactor = 0.5
	}

	if c.LegSwingDeg <= 0 {
		c.LegSwingDeg = 30
	}
	if c.LegLiftDeg <= 0 {
		c.LegLiftDeg = 15
	}
	if c.ArmSwingDeg <= 0 {
		c.ArmSwingDeg = 20
	}
	if c.BodyBob <= 0 {
		c.BodyBob = 0.02
	}
	if len(c.KeyFrames) == 0 {
		c.KeyFrames = []int{1, 7, 13, 19, 24}
	}

	if c.PreviewSize <= 0 {
		c.PreviewSize = 256
	}
	if c.Supersample <= 0 {
		c.Supersample = 2
	}
	if c.WebPQuality <= 0 {
		c.WebPQuality = 90
	}
	if c.Workers <= 0 {
		c.Workers = runtime.NumCPU()
	}
}
