package config

import (
	"errors"
	"fmt"
	"math"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

const (
	DefaultIntegrator = "euler_cromer"
	DefaultDt         = 0.001
	DefaultDuration   = 10.0
	DefaultLength     = 0.01
	DefaultX0         = 1.35
	DefaultVY0        = 6.5
	DefaultOmega0     = 0.5
	DefaultDataPath   = "data/hyperion_data.json"
	DefaultHeadRows   = 5
	DefaultWindow     = 5000
	DefaultPlotWidth  = 15.0
	DefaultPlotHeight = 10.0
)

var ErrInvalidConfig = errors.New("config: invalid configuration")

type Config struct {
	Simulation SimulationConfig `yaml:"simulation"`
	Hyperion   HyperionConfig   `yaml:"hyperion"`
	Data       DataConfig       `yaml:"data"`
	Plots      PlotConfig       `yaml:"plots"`
}

type SimulationConfig struct {
	Integrator string  `yaml:"integrator" validate:"required,oneof=euler euler_cromer rk4 verlet"`
	Dt         float64 `yaml:"dt" validate:"gt=0"`
	Duration   float64 `yaml:"duration" validate:"gt=0,gtefield=Dt"`
}

// HyperionConfig holds the initial conditions in AU, AU/yr and radians.
type HyperionConfig struct {
	Length float64 `yaml:"length" validate:"gte=0"`
	X0     float64 `yaml:"x0"`
	Y0     float64 `yaml:"y0"`
	VX0    float64 `yaml:"vx0"`
	VY0    float64 `yaml:"vy0"`
	Theta0 float64 `yaml:"theta0"`
	Omega0 float64 `yaml:"omega0"`
}

type DataConfig struct {
	Path string `yaml:"path" validate:"required"`
}

// PlotConfig sizes figures in inches.
type PlotConfig struct {
	Width    float64 `yaml:"width" validate:"gt=0"`
	Height   float64 `yaml:"height" validate:"gt=0"`
	HeadRows int     `yaml:"head_rows" validate:"gte=0"`
	Window   int     `yaml:"window" validate:"gt=0"`
}

func DefaultConfig() *Config {
	return &Config{
		Simulation: SimulationConfig{
			Integrator: DefaultIntegrator,
			Dt:         DefaultDt,
			Duration:   DefaultDuration,
		},
		Hyperion: HyperionConfig{
			Length: DefaultLength,
			X0:     DefaultX0,
			VY0:    DefaultVY0,
			Omega0: DefaultOmega0,
		},
		Data: DataConfig{Path: DefaultDataPath},
		Plots: PlotConfig{
			Width:    DefaultPlotWidth,
			Height:   DefaultPlotHeight,
			HeadRows: DefaultHeadRows,
			Window:   DefaultWindow,
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
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
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

var validate = validator.New(validator.WithRequiredStructEnabled())

func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if c.Hyperion.X0 == 0 && c.Hyperion.Y0 == 0 {
		return fmt.Errorf("%w: initial position at the origin", ErrInvalidConfig)
	}
	return nil
}

// Steps is the number of fixed steps the simulation will take.
func (c *Config) Steps() int {
	return int(math.Floor(c.Simulation.Duration / c.Simulation.Dt))
}
