package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/san-kum/constellate/internal/field"
	"github.com/san-kum/constellate/internal/particle"
	"gopkg.in/yaml.v3"
)

const (
	DefaultWidth     = 800
	DefaultHeight    = 800
	DefaultCount     = 100
	DefaultSize      = 2.0
	DefaultColor     = "#efefef"
	DefaultMaxLine   = 200.0
	DefaultLineWidth = 1.0
	DefaultFPS       = 60
	DefaultSeed      = 1
)

var ErrInvalid = errors.New("config: invalid")

type Config struct {
	Field  FieldConfig  `yaml:"field"`
	Motion MotionConfig `yaml:"motion"`
	Render RenderConfig `yaml:"render"`
	Seed   int64        `yaml:"seed"`
	Log    LogConfig    `yaml:"log"`
}

type FieldConfig struct {
	Width     int     `yaml:"width"`
	Height    int     `yaml:"height"`
	Count     int     `yaml:"count"`
	Size      float64 `yaml:"size"`
	Color     string  `yaml:"color"`
	MaxLine   float64 `yaml:"max_line"`
	LineWidth float64 `yaml:"line_width"`
}

type MotionConfig struct {
	BaseSpeed     float64 `yaml:"base_speed"`
	AttractRadius float64 `yaml:"attract_radius"`
	SpeedScale    float64 `yaml:"speed_scale"`
}

type RenderConfig struct {
	FPS int `yaml:"fps"`
}

type LogConfig struct {
	Level      string `yaml:"level"`
	Format     string `yaml:"format"`
	Console    bool   `yaml:"console"`
	File       string `yaml:"file"`
	MaxSize    int    `yaml:"max_size"`
	MaxBackups int    `yaml:"max_backups"`
	MaxAge     int    `yaml:"max_age"`
	Compress   bool   `yaml:"compress"`
}

func DefaultConfig() *Config {
	return &Config{
		Field: FieldConfig{
			Width:     DefaultWidth,
			Height:    DefaultHeight,
			Count:     DefaultCount,
			Size:      DefaultSize,
			Color:     DefaultColor,
			MaxLine:   DefaultMaxLine,
			LineWidth: DefaultLineWidth,
		},
		Motion: MotionConfig{
			BaseSpeed:     particle.DefaultBaseSpeed,
			AttractRadius: particle.DefaultAttractRadius,
			SpeedScale:    particle.DefaultSpeedScale,
		},
		Render: RenderConfig{FPS: DefaultFPS},
		Seed:   DefaultSeed,
		Log: LogConfig{
			Level:      "info",
			Format:     "console",
			Console:    true,
			MaxSize:    10,
			MaxBackups: 3,
			MaxAge:     7,
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
		return nil, fmt.Errorf("%s: %w", path, err)
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
	if err := c.FieldConfig().Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	m := c.Motion
	if m.BaseSpeed < 0 || m.AttractRadius < 0 || m.SpeedScale < 0 {
		return fmt.Errorf("%w: motion parameters must not be negative", ErrInvalid)
	}
	if c.Render.FPS < 0 {
		return fmt.Errorf("%w: fps must not be negative, got %d", ErrInvalid, c.Render.FPS)
	}
	return nil
}

func (c *Config) FieldConfig() field.Config {
	return field.Config{
		Width:     c.Field.Width,
		Height:    c.Field.Height,
		Count:     c.Field.Count,
		Size:      c.Field.Size,
		Color:     c.Field.Color,
		MaxLine:   c.Field.MaxLine,
		LineWidth: c.Field.LineWidth,
	}
}

func (c *Config) MotionModel() particle.Motion {
	return particle.Motion{
		BaseSpeed:     c.Motion.BaseSpeed,
		AttractRadius: c.Motion.AttractRadius,
		SpeedScale:    c.Motion.SpeedScale,
	}
}
