package config

import (
	"math"
	"sort"
)

// Presets are named initial conditions for the Hyperion orbit.
var Presets = map[string]HyperionConfig{
	"default": {
		Length: DefaultLength, X0: DefaultX0, VY0: DefaultVY0, Omega0: DefaultOmega0,
	},
	"circular": {
		Length: DefaultLength, X0: 1, VY0: 2 * math.Pi,
	},
	"elliptical": {
		Length: DefaultLength, X0: 1, VY0: 5,
	},
	"escape": {
		Length: DefaultLength, X0: DefaultX0, VY0: 9.1, Theta0: 0.1, Omega0: DefaultOmega0,
	},
}

func GetPreset(name string) *Config {
	h, ok := Presets[name]
	if !ok {
		return nil
	}
	cfg := DefaultConfig()
	cfg.Hyperion = h
	return cfg
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
