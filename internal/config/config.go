package config

import (
	"os"

	"github.com/zeebo/errs"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"

	"github.com/san-kum/parallax/internal/parallax"
	"github.com/san-kum/parallax/internal/scene"
	"github.com/san-kum/parallax/internal/sweep"
)

var Error = errs.Class("config")

const (
	DefaultScene    = "resume"
	DefaultTheme    = "cyberpunk"
	DefaultFPS      = 30
	DefaultLogLevel = "info"
	DefaultWorkers  = 0
	MaxFPS          = 240
)

type Config struct {
	Scene    string                 `yaml:"scene"`
	Viewport *parallax.Viewport     `yaml:"viewport,omitempty"`
	Layers   []parallax.LayerSpec   `yaml:"layers,omitempty"`
	Sections []parallax.SectionSpec `yaml:"sections,omitempty"`
	Theme    string                 `yaml:"theme"`
	FPS      int                    `yaml:"fps"`
	LogLevel string                 `yaml:"log_level"`
	Sweep    SweepConfig            `yaml:"sweep"`
}

type SweepConfig struct {
	From    float64 `yaml:"from"`
	To      float64 `yaml:"to"`
	Step    float64 `yaml:"step"`
	Workers int     `yaml:"workers"`
}

func DefaultConfig() *Config {
	return &Config{
		Scene:    DefaultScene,
		Theme:    DefaultTheme,
		FPS:      DefaultFPS,
		LogLevel: DefaultLogLevel,
		Sweep: SweepConfig{
			From:    sweep.DefaultFrom,
			To:      sweep.DefaultTo,
			Step:    sweep.DefaultStep,
			Workers: DefaultWorkers,
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, Error.Wrap(err)
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, Error.Wrap(err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return Error.Wrap(err)
	}
	return Error.Wrap(os.WriteFile(path, data, 0644))
}

func (c *Config) Validate() error {
	if c.FPS <= 0 || c.FPS > MaxFPS {
		return Error.New("fps must be in (0, %d], got %d", MaxFPS, c.FPS)
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	if err := c.SweepConfig().Validate(); err != nil {
		return Error.Wrap(err)
	}
	if c.Sweep.Workers < 0 {
		return Error.New("sweep workers must not be negative")
	}
	_, err := c.Build()
	return err
}

func (c *Config) Level() (zapcore.Level, error) {
	var lvl zapcore.Level
	if err := lvl.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return lvl, Error.New("invalid log level %q", c.LogLevel)
	}
	return lvl, nil
}

func (c *Config) SweepConfig() sweep.Config {
	return sweep.Config{From: c.Sweep.From, To: c.Sweep.To, Step: c.Sweep.Step}
}

// Build resolves the scene. Custom layers or sections replace the named
// scene's lists; a custom viewport replaces its viewport.
func (c *Config) Build() (*scene.Scene, error) {
	custom := len(c.Layers) > 0 || len(c.Sections) > 0

	sc := scene.Builtin(c.Scene)
	switch {
	case sc == nil && !custom:
		return nil, Error.New("unknown scene %q (available: %v)", c.Scene, scene.BuiltinNames())
	case sc == nil:
		name := c.Scene
		if name == "" {
			name = "custom"
		}
		sc = &scene.Scene{Name: name}
	}

	if len(c.Layers) > 0 {
		sc.Layers = append([]parallax.LayerSpec(nil), c.Layers...)
	}
	if len(c.Sections) > 0 {
		sc.Sections = append([]parallax.SectionSpec(nil), c.Sections...)
	}
	if c.Viewport != nil {
		sc.Viewport = *c.Viewport
	}

	if sc.Viewport.Width <= 0 || sc.Viewport.Height <= 0 {
		return nil, Error.New("viewport must have positive width and height")
	}
	if err := sc.Validate(); err != nil {
		return nil, Error.Wrap(err)
	}
	return sc, nil
}
