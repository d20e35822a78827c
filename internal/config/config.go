// Package config describes a full simulation run and assembles the
// components for it. Common setups (free string, centred mass, cavity) are
// named presets rather than distinct types; everything about a run is plain
// configuration data.
package config

import (
	"errors"
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/stringsim/internal/field"
	"github.com/san-kum/stringsim/internal/particles"
	"github.com/san-kum/stringsim/internal/physics"
	"github.com/san-kum/stringsim/internal/sim"
)

// ErrConfig indicates an invalid or inconsistent run configuration.
var ErrConfig = errors.New("config: invalid configuration")

const (
	DefaultDt        = 0.00015
	DefaultSteps     = 1000
	DefaultLength    = 1.0
	DefaultTension   = 1.0
	DefaultDensity   = 0.005
	DefaultAmplitude = 0.05
	DefaultPulsation = 2 * math.Pi * 50
	DefaultWidth     = 320
	DefaultHeight    = 240
	DefaultFrameMs   = 12

	// CenterCell marks a particle to be placed mid-string once the
	// discretisation is known.
	CenterCell = -1
)

type Config struct {
	Preset  string  `yaml:"preset,omitempty"`
	Dt      float64 `yaml:"dt"`
	Steps   int     `yaml:"steps"`
	Length  float64 `yaml:"length"`
	Tension float64 `yaml:"tension"`
	Density float64 `yaml:"density"`

	// Memory bounds the retained history; 0 keeps every step.
	Memory int `yaml:"memory"`

	Left      EdgeConfig       `yaml:"left"`
	Right     EdgeConfig       `yaml:"right"`
	Particles []ParticleConfig `yaml:"particles,omitempty"`
	Output    OutputConfig     `yaml:"output"`
}

type EdgeConfig struct {
	Kind      string  `yaml:"kind"` // mirror, absorber, sin, sin-absorber
	Amplitude float64 `yaml:"amplitude,omitempty"`
	Pulsation float64 `yaml:"pulsation,omitempty"`
}

type ParticleConfig struct {
	Cell      int     `yaml:"cell"` // CenterCell = middle of the string
	Mass      float64 `yaml:"mass"`
	Pulsation float64 `yaml:"pulsation"`
	Fixed     bool    `yaml:"fixed"`
}

type OutputConfig struct {
	Dir           string `yaml:"dir"`
	Animate       bool   `yaml:"animate"`
	WriteFiles    bool   `yaml:"write_files"`
	Log           bool   `yaml:"log"`
	Width         int    `yaml:"width"`
	Height        int    `yaml:"height"`
	FrameDuration int    `yaml:"frame_duration"` // [ms]
}

func DefaultConfig() *Config {
	return &Config{
		Dt:      DefaultDt,
		Steps:   DefaultSteps,
		Length:  DefaultLength,
		Tension: DefaultTension,
		Density: DefaultDensity,
		Left:    EdgeConfig{Kind: "sin-absorber", Amplitude: DefaultAmplitude, Pulsation: DefaultPulsation},
		Right:   EdgeConfig{Kind: "absorber"},
		Output: OutputConfig{
			Dir:           ".stringsim",
			WriteFiles:    true,
			Log:           true,
			Width:         DefaultWidth,
			Height:        DefaultHeight,
			FrameDuration: DefaultFrameMs,
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
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

func (c *Config) Validate() error {
	if c.Steps <= 0 {
		return fmt.Errorf("%w: steps must be positive, got %d", ErrConfig, c.Steps)
	}
	if c.Memory != 0 && c.Memory < 3 {
		return fmt.Errorf("%w: memory must be 0 (unbounded) or at least 3, got %d", ErrConfig, c.Memory)
	}
	if c.Output.Animate && (c.Output.Width <= 0 || c.Output.Height <= 0) {
		return fmt.Errorf("%w: animation needs a positive resolution, got %dx%d", ErrConfig, c.Output.Width, c.Output.Height)
	}
	if _, err := buildEdge(c.Left); err != nil {
		return err
	}
	if _, err := buildEdge(c.Right); err != nil {
		return err
	}
	return nil
}

func buildEdge(e EdgeConfig) (physics.Edge, error) {
	switch e.Kind {
	case "", "mirror":
		return physics.MirrorEdge(), nil
	case "absorber":
		return physics.AbsorberEdge(), nil
	case "sin":
		return physics.SinEdge(e.Amplitude, e.Pulsation), nil
	case "sin-absorber":
		return physics.SinAbsorberEdge(e.Amplitude, e.Pulsation), nil
	default:
		return nil, fmt.Errorf("%w: unknown edge kind %q", ErrConfig, e.Kind)
	}
}

// Simulation bundles everything Build assembles for one run.
type Simulation struct {
	Config  *Config
	Model   *physics.StringModel
	History *field.History
	Driver  *sim.Driver
}

// Build assembles history buffer, particle system, update engine, and driver
// from the configuration. The string starts at rest: two zero seed rows.
func (c *Config) Build() (*Simulation, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	cells := physics.ComputeCells(c.Length, c.Tension, c.Density, c.Dt)
	if cells < 3 {
		return nil, fmt.Errorf("%w: discretisation yields %d cells", ErrConfig, cells)
	}

	plist := make([]particles.Particle, len(c.Particles))
	for i, pc := range c.Particles {
		cell := pc.Cell
		if cell == CenterCell {
			cell = cells / 2
		}
		plist[i] = particles.Particle{
			Cell:      cell,
			Mass:      pc.Mass,
			Pulsation: pc.Pulsation,
			Fixed:     pc.Fixed,
		}
	}
	parts, err := particles.NewSystem(cells, plist)
	if err != nil {
		return nil, err
	}

	left, err := buildEdge(c.Left)
	if err != nil {
		return nil, err
	}
	right, err := buildEdge(c.Right)
	if err != nil {
		return nil, err
	}

	model, err := physics.NewStringModel(c.Length, c.Tension, c.Density, c.Dt, left, right, parts)
	if err != nil {
		return nil, err
	}

	seed := [][]float64{make([]float64, cells), make([]float64, cells)}
	var hist *field.History
	if c.Memory == 0 {
		hist, err = field.NewUnbounded(seed)
	} else {
		hist, err = field.New(seed, c.Memory)
	}
	if err != nil {
		return nil, err
	}

	driver, err := sim.NewDriver(hist, model, parts, c.Steps)
	if err != nil {
		return nil, err
	}
	driver.AddMetric(sim.NewEnergy(c.Tension, c.Density, model.Dx(), c.Dt))

	return &Simulation{Config: c, Model: model, History: hist, Driver: driver}, nil
}

// Describe renders the one-line configuration summary used in run stream
// headers.
func (c *Config) Describe(cells int) string {
	return fmt.Sprintf("dt=%gs steps=%d length=%gm tension=%gN density=%gkg/m cells=%d memory=%d particles=%d",
		c.Dt, c.Steps, c.Length, c.Tension, c.Density, cells, c.Memory, len(c.Particles))
}
