package gungale

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

var ErrInvalidConfig = errors.New("invalid config")

type WindowConfig struct {
	Width  int    `toml:"width" yaml:"width"`
	Height int    `toml:"height" yaml:"height"`
	Title  string `toml:"title" yaml:"title"`
}

type Config struct {
	Window   WindowConfig   `toml:"window" yaml:"window"`
	Level    string         `toml:"level" yaml:"level"`
	Debug    bool           `toml:"debug" yaml:"debug"`
	HUD      bool           `toml:"hud" yaml:"hud"`
	FontPath string         `toml:"font_path" yaml:"font_path"`
	Movement MovementTuning `toml:"movement" yaml:"movement"`
	Camera   CameraTuning   `toml:"camera" yaml:"camera"`
}

func DefaultConfig() Config {
	return Config{
		Window: WindowConfig{
			Width:  1200,
			Height: 1000,
			Title:  "gungale",
		},
		Level:    LevelArena,
		HUD:      true,
		Movement: DefaultMovementTuning(),
		Camera:   DefaultCameraTuning(),
	}
}

// LoadConfig overlays each file, in order, onto DefaultConfig. Keys missing from
// a file keep their previous value.
func LoadConfig(paths ...string) (Config, error) {
	cfg := DefaultConfig()
	for _, path := range paths {
		if err := cfg.overlayFile(path); err != nil {
			return cfg, err
		}
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func (cfg *Config) overlayFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		if _, err := toml.Decode(string(data), cfg); err != nil {
			return fmt.Errorf("parse config %s: %w", path, err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return fmt.Errorf("parse config %s: %w", path, err)
		}
	default:
		return fmt.Errorf("config %s: unsupported extension %q", path, filepath.Ext(path))
	}
	return nil
}

func (cfg Config) Validate() error {
	var problems []string
	check := func(ok bool, format string, args ...any) {
		if !ok {
			problems = append(problems, fmt.Sprintf(format, args...))
		}
	}

	check(cfg.Window.Width > 0 && cfg.Window.Height > 0,
		"window size must be positive, got %dx%d", cfg.Window.Width, cfg.Window.Height)
	if _, err := LevelByName(cfg.Level); err != nil {
		problems = append(problems, err.Error())
	}

	m := cfg.Movement
	check(m.Gravity >= 0, "movement.gravity must not be negative")
	check(m.MaxSpeed > 0, "movement.max_speed must be positive")
	check(m.CrouchSpeed > 0, "movement.crouch_speed must be positive")
	check(m.JumpForce >= 0, "movement.jump_force must not be negative")
	check(m.MaxAccel > 0, "movement.max_accel must be positive")
	check(m.Friction > 0 && m.Friction <= 1, "movement.friction must be in (0, 1]")
	check(m.AirDrag > 0 && m.AirDrag <= 1, "movement.air_drag must be in (0, 1]")
	check(m.Control > 0, "movement.control must be positive")

	c := cfg.Camera
	check(c.StandHeight >= c.CrouchHeight, "camera.stand_height must not be below camera.crouch_height")
	check(c.WalkFov > 0 && c.WalkFov < 180 && c.IdleFov > 0 && c.IdleFov < 180,
		"camera fov must be in (0, 180) degrees")
	check(c.PitchLimitEpsilon > 0, "camera.pitch_limit_epsilon must be positive")
	for i, s := range c.Sensitivity {
		v := float64(s)
		check(!math.IsNaN(v) && !math.IsInf(v, 0), "camera.sensitivity[%d] must be finite", i)
	}

	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidConfig, strings.Join(problems, "; "))
	}
	return nil
}

// WriteDefaultConfig writes DefaultConfig as TOML.
func WriteDefaultConfig(w io.Writer) error {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(DefaultConfig()); err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	_, err := w.Write(buf.Bytes())
	return err
}
