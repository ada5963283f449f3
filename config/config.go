// Package config provides configuration loading and access for the viewer.
package config

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all viewer configuration parameters.
type Config struct {
	Screen    ScreenConfig    `yaml:"screen"`
	Sea       SeaConfig       `yaml:"sea"`
	Sim       SimConfig       `yaml:"sim"`
	Flotsam   FlotsamConfig   `yaml:"flotsam"`
	Telemetry TelemetryConfig `yaml:"telemetry"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds display settings.
type ScreenConfig struct {
	Width     int `yaml:"width"`
	Height    int `yaml:"height"`
	TargetFPS int `yaml:"target_fps"`
}

// SeaConfig holds the simulated sea state.
type SeaConfig struct {
	GridDimension  int       `yaml:"grid_dimension"`  // Transform grid per axis; power of two >= 2
	MeterDimension float64   `yaml:"meter_dimension"` // Tile size per axis in meters
	Expansion      int       `yaml:"expansion"`       // Tiles drawn per axis
	Amplitude      float64   `yaml:"amplitude"`       // Phillips spectrum constant
	Gravity        float64   `yaml:"gravity"`         // m/s^2
	Wind           []float64 `yaml:"wind"`            // [x, z] wind vector; speed sets the largest-wave scale
	HeightScale    float64   `yaml:"height_scale"`    // Vertical exaggeration
	DisplaceScale  float64   `yaml:"displace_scale"`  // Crest sharpening factor
}

// SimConfig holds simulation loop settings.
type SimConfig struct {
	Seed         int64   `yaml:"seed"`          // Spectrum seed; 0 = draw from the clock
	TimeScale    float64 `yaml:"time_scale"`    // Simulated seconds per wall second
	IntensityMap string  `yaml:"intensity_map"` // Grayscale image path; empty = uniform sea
}

// FlotsamConfig holds the drifting-buoy overlay parameters.
type FlotsamConfig struct {
	Count      int     `yaml:"count"`       // Buoys scattered over the drawn tiles; 0 disables
	DriftSpeed float64 `yaml:"drift_speed"` // Downwind drift in meters per second
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	PerfCollectorWindow int     `yaml:"perf_collector_window"`
	LogInterval         float64 `yaml:"log_interval"` // Seconds between perf log lines; 0 disables
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	ScreenW32 float32 // Screen.Width as float32
	ScreenH32 float32 // Screen.Height as float32
	SeaSpan32 float32 // MeterDimension * Expansion as float32
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

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	// Start with embedded defaults
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	// Load user config if provided
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

	// Compute derived values
	cfg.computeDerived()

	return cfg, nil
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	if c.Sea.Gravity == 0 {
		c.Sea.Gravity = 9.81
	}
	if len(c.Sea.Wind) != 2 {
		c.Sea.Wind = []float64{64, 64}
	}
	if c.Sea.HeightScale == 0 {
		c.Sea.HeightScale = 1
	}
	if c.Sea.DisplaceScale == 0 {
		c.Sea.DisplaceScale = 1
	}
	if c.Sea.Expansion == 0 {
		c.Sea.Expansion = 1
	}
	if c.Sim.TimeScale == 0 {
		c.Sim.TimeScale = 1
	}

	c.Derived.ScreenW32 = float32(c.Screen.Width)
	c.Derived.ScreenH32 = float32(c.Screen.Height)
	c.Derived.SeaSpan32 = float32(c.Sea.MeterDimension * float64(c.Sea.Expansion))
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
