// Package config loads the tunables of the arena shooter from TOML or YAML files.
package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid config")

type Config struct {
	Simulation SimulationConfig `toml:"simulation" yaml:"simulation"`
	Player     PlayerConfig     `toml:"player" yaml:"player"`
	Bullet     BulletConfig     `toml:"bullet" yaml:"bullet"`
	Enemy      EnemyConfig      `toml:"enemy" yaml:"enemy"`
	Logging    LoggingConfig    `toml:"logging" yaml:"logging"`
	Window     WindowConfig     `toml:"window" yaml:"window"`
}

type SimulationConfig struct {
	TickRate    int     `toml:"tick_rate" yaml:"tick_rate"` // fixed steps per second
	ArenaWidth  float64 `toml:"arena_width" yaml:"arena_width"`
	ArenaHeight float64 `toml:"arena_height" yaml:"arena_height"`
	Seed        uint64  `toml:"seed" yaml:"seed"`               // 0 picks a random seed
	Enemies     bool    `toml:"enemies" yaml:"enemies"`         // extended variant
	SeedBullet  bool    `toml:"seed_bullet" yaml:"seed_bullet"` // spawn one bullet at the origin on setup
}

type PlayerConfig struct {
	Speed         float64 `toml:"speed" yaml:"speed"`                   // units per second
	RotationSpeed float64 `toml:"rotation_speed" yaml:"rotation_speed"` // degrees per second
}

type BulletConfig struct {
	Speed float64 `toml:"speed" yaml:"speed"`
}

type EnemyConfig struct {
	Speed       float64       `toml:"speed" yaml:"speed"`
	SpawnRadius float64       `toml:"spawn_radius" yaml:"spawn_radius"`
	SpawnPeriod time.Duration `toml:"spawn_period" yaml:"spawn_period"`
}

type LoggingConfig struct {
	Level  string `toml:"level" yaml:"level"`
	Format string `toml:"format" yaml:"format"` // "json" or "console"
}

type WindowConfig struct {
	Title string  `toml:"title" yaml:"title"`
	Scale float64 `toml:"scale" yaml:"scale"`
}

// TimeStep is the fixed simulation step in seconds.
func (c SimulationConfig) TimeStep() float64 {
	return 1 / float64(c.TickRate)
}

// HalfExtents returns half the arena width and height.
func (c SimulationConfig) HalfExtents() (float64, float64) {
	return c.ArenaWidth / 2, c.ArenaHeight / 2
}

// RotationSpeedRadians converts the configured rotation speed to radians per second.
func (c PlayerConfig) RotationSpeedRadians() float64 {
	return c.RotationSpeed * math.Pi / 180
}

// Default returns the stock tuning of the game.
func Default() *Config {
	return &Config{
		Simulation: SimulationConfig{
			TickRate:    60,
			ArenaWidth:  1200,
			ArenaHeight: 640,
			Enemies:     true,
			SeedBullet:  true,
		},
		Player: PlayerConfig{
			Speed:         500,
			RotationSpeed: 360,
		},
		Bullet: BulletConfig{
			Speed: 1000,
		},
		Enemy: EnemyConfig{
			Speed:       250,
			SpawnRadius: 400,
			SpawnPeriod: 500 * time.Millisecond,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
		Window: WindowConfig{
			Title: "Arena Shooter",
			Scale: 1,
		},
	}
}

// Load reads path on top of the defaults. The format is chosen by extension:
// .toml, or .yaml/.yml.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	cfg, err := Parse(data, strings.TrimPrefix(filepath.Ext(path), "."))
	if err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes data in the given format ("toml", "yaml" or "yml") on top of the
// defaults and validates the result.
func Parse(data []byte, format string) (*Config, error) {
	cfg := Default()

	switch strings.ToLower(format) {
	case "toml":
		if err := toml.Unmarshal(data, cfg); err != nil {
			return nil, err
		}
	case "yaml", "yml":
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("unsupported config format %q", format)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that every rate, size and speed is usable.
func (c *Config) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalid}, args...)...))
		}
	}

	check(c.Simulation.TickRate > 0, "simulation.tick_rate must be positive, got %d", c.Simulation.TickRate)
	check(c.Simulation.ArenaWidth > 0, "simulation.arena_width must be positive, got %g", c.Simulation.ArenaWidth)
	check(c.Simulation.ArenaHeight > 0, "simulation.arena_height must be positive, got %g", c.Simulation.ArenaHeight)
	check(c.Player.Speed >= 0, "player.speed must not be negative, got %g", c.Player.Speed)
	check(c.Player.RotationSpeed >= 0, "player.rotation_speed must not be negative, got %g", c.Player.RotationSpeed)
	check(c.Bullet.Speed > 0, "bullet.speed must be positive, got %g", c.Bullet.Speed)
	check(c.Enemy.Speed >= 0, "enemy.speed must not be negative, got %g", c.Enemy.Speed)
	check(c.Enemy.SpawnRadius >= 0, "enemy.spawn_radius must not be negative, got %g", c.Enemy.SpawnRadius)
	check(c.Enemy.SpawnPeriod > 0, "enemy.spawn_period must be positive, got %s", c.Enemy.SpawnPeriod)
	check(c.Logging.Format == "console" || c.Logging.Format == "json", "logging.format must be console or json, got %q", c.Logging.Format)

	return errors.Join(errs...)
}
