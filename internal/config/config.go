package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"strings"

	"github.com/san-kum/orrery/internal/camera"
	"github.com/san-kum/orrery/internal/geom"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

const (
	DefaultTimeScale   = 10.0
	DefaultSeed        = 1
	DefaultStarCount   = 10000
	DefaultStarExtent  = 2000.0
	DefaultWidth       = 1280
	DefaultHeight      = 720
	DefaultFPS         = 60
	DefaultAssetsDir   = "assets/textures"
	DefaultLogLevel    = "info"
	DefaultTheme       = "dark"
	DefaultMaxPolarPi  = 0.9
	DefaultTransitionS = 1.5

	EnvPrefix = "ORRERY"
)

var ErrInvalid = errors.New("config: invalid")

type Config struct {
	LogLevel   string `yaml:"log_level" mapstructure:"log_level"`
	LogFile    string `yaml:"log_file" mapstructure:"log_file"`
	Theme      string `yaml:"theme" mapstructure:"theme"`
	AssetsDir  string `yaml:"assets_dir" mapstructure:"assets_dir"`
	BodiesFile string `yaml:"bodies_file" mapstructure:"bodies_file"`
	Seed       int64  `yaml:"seed" mapstructure:"seed"`

	Orbit     OrbitConfig     `yaml:"orbit" mapstructure:"orbit"`
	Camera    CameraConfig    `yaml:"camera" mapstructure:"camera"`
	Starfield StarfieldConfig `yaml:"starfield" mapstructure:"starfield"`
	Window    WindowConfig    `yaml:"window" mapstructure:"window"`
}

type OrbitConfig struct {
	TimeScale float64 `yaml:"time_scale" mapstructure:"time_scale"`
	Normalize bool    `yaml:"normalize" mapstructure:"normalize"`
}

type Vec struct {
	X float64 `yaml:"x" mapstructure:"x"`
	Y float64 `yaml:"y" mapstructure:"y"`
	Z float64 `yaml:"z" mapstructure:"z"`
}

func (v Vec) Geom() geom.Vec3 { return geom.Vec3{X: v.X, Y: v.Y, Z: v.Z} }

type CameraConfig struct {
	Preset      string  `yaml:"preset" mapstructure:"preset"`
	Position    Vec     `yaml:"position" mapstructure:"position"`
	Target      Vec     `yaml:"target" mapstructure:"target"`
	FOV         float64 `yaml:"fov" mapstructure:"fov"`
	Near        float64 `yaml:"near" mapstructure:"near"`
	Far         float64 `yaml:"far" mapstructure:"far"`
	MinDistance float64 `yaml:"min_distance" mapstructure:"min_distance"`
	MaxDistance float64 `yaml:"max_distance" mapstructure:"max_distance"`
	MaxPolarPi  float64 `yaml:"max_polar_pi" mapstructure:"max_polar_pi"` // fraction of π
	Damping     float64 `yaml:"damping" mapstructure:"damping"`
	Transition  float64 `yaml:"transition" mapstructure:"transition"` // seconds
}

type StarfieldConfig struct {
	Count  int     `yaml:"count" mapstructure:"count"`
	Extent float64 `yaml:"extent" mapstructure:"extent"`
}

type WindowConfig struct {
	Width  int `yaml:"width" mapstructure:"width"`
	Height int `yaml:"height" mapstructure:"height"`
	FPS    int `yaml:"fps" mapstructure:"fps"`
}

func DefaultConfig() *Config {
	return &Config{
		LogLevel:  DefaultLogLevel,
		Theme:     DefaultTheme,
		AssetsDir: DefaultAssetsDir,
		Seed:      DefaultSeed,
		Orbit:     OrbitConfig{TimeScale: DefaultTimeScale},
		Camera: CameraConfig{
			Position:    Vec{Y: 50, Z: 100},
			FOV:         75,
			Near:        0.1,
			Far:         10000,
			MinDistance: 20,
			MaxDistance: 500,
			MaxPolarPi:  DefaultMaxPolarPi,
			Damping:     0.05,
			Transition:  DefaultTransitionS,
		},
		Starfield: StarfieldConfig{Count: DefaultStarCount, Extent: DefaultStarExtent},
		Window:    WindowConfig{Width: DefaultWidth, Height: DefaultHeight, FPS: DefaultFPS},
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

// FromViper layers, lowest first: defaults, the optional config file at
// path, ORRERY_* environment variables, then anything already bound on v
// (typically command-line flags).
func FromViper(v *viper.Viper, path string) (*Config, error) {
	data, err := yaml.Marshal(DefaultConfig())
	if err != nil {
		return nil, err
	}
	var defaults map[string]any
	if err := yaml.Unmarshal(data, &defaults); err != nil {
		return nil, err
	}
	setDefaults(v, "", defaults)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
	}
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("config: decode: %w", err)
	}
	if cfg.Camera.Preset != "" {
		if err := cfg.ApplyPreset(cfg.Camera.Preset); err != nil {
			return nil, err
		}
	}
	return cfg, cfg.Validate()
}

func setDefaults(v *viper.Viper, prefix string, m map[string]any) {
	for k, val := range m {
		key := k
		if prefix != "" {
			key = prefix + "." + k
		}
		if sub, ok := val.(map[string]any); ok {
			setDefaults(v, key, sub)
			continue
		}
		v.SetDefault(key, val)
	}
}

func (c *Config) Validate() error {
	cam := c.Camera
	switch {
	case cam.MinDistance <= 0 || cam.MaxDistance < cam.MinDistance:
		return fmt.Errorf("%w: camera distance range [%g, %g]", ErrInvalid, cam.MinDistance, cam.MaxDistance)
	case cam.MaxPolarPi <= 0 || cam.MaxPolarPi > 1:
		return fmt.Errorf("%w: max_polar_pi %g outside (0, 1]", ErrInvalid, cam.MaxPolarPi)
	case cam.Near <= 0 || cam.Far <= cam.Near:
		return fmt.Errorf("%w: clip planes %g..%g", ErrInvalid, cam.Near, cam.Far)
	case cam.FOV <= 0 || cam.FOV >= 180:
		return fmt.Errorf("%w: fov %g", ErrInvalid, cam.FOV)
	case cam.Transition < 0:
		return fmt.Errorf("%w: negative transition duration", ErrInvalid)
	case c.Starfield.Count < 0:
		return fmt.Errorf("%w: negative star count", ErrInvalid)
	}
	return nil
}

// Rig converts the camera section for camera.NewRig.
func (c CameraConfig) Rig() camera.Config {
	return camera.Config{
		Position:    c.Position.Geom(),
		Target:      c.Target.Geom(),
		FOV:         c.FOV,
		Near:        c.Near,
		Far:         c.Far,
		MinDistance: c.MinDistance,
		MaxDistance: c.MaxDistance,
		MaxPolar:    c.MaxPolarPi * math.Pi,
		Damping:     c.Damping,
		Duration:    c.Transition,
	}
}
