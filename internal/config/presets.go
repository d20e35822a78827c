package config

import "math"

// Built-in run setups: a particle-free string, a single centred mass, and a
// driven cavity.
var presets = map[string]func() *Config{
	"free": func() *Config {
		cfg := DefaultConfig()
		cfg.Preset = "free"
		return cfg
	},
	"center": func() *Config {
		cfg := DefaultConfig()
		cfg.Preset = "center"
		cfg.Particles = []ParticleConfig{
			{Cell: CenterCell, Mass: 0.01, Pulsation: 2 * math.Pi * 40, Fixed: true},
		}
		return cfg
	},
	"cavity": func() *Config {
		cfg := DefaultConfig()
		cfg.Preset = "cavity"
		cfg.Left = EdgeConfig{Kind: "sin", Amplitude: DefaultAmplitude, Pulsation: DefaultPulsation}
		cfg.Right = EdgeConfig{Kind: "mirror"}
		return cfg
	},
}

// GetPreset returns a fresh config for a named preset, or nil.
func GetPreset(name string) *Config {
	f, ok := presets[name]
	if !ok {
		return nil
	}
	return f()
}

// ListPresets returns the available preset names.
func ListPresets() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	return names
}
