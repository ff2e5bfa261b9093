// Package config loads arena settings from defaults, an optional file and
// ARENA_ prefixed environment variables.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/zeusync/arena/internal/core/observability/log"
)

// ErrInvalidConfig wraps every validation failure.
var ErrInvalidConfig = errors.New("config: invalid")

const EnvPrefix = "ARENA"

type LogConfig struct {
	Level       string `mapstructure:"level"`
	Development bool   `mapstructure:"development"`
}

type WorldConfig struct {
	Width    int     `mapstructure:"width"`
	Height   int     `mapstructure:"height"`
	CellSize int     `mapstructure:"cell_size"`
	Gravity  float64 `mapstructure:"gravity"`
	Timestep float64 `mapstructure:"timestep"`
}

type CatalogConfig struct {
	// Path is a single definition file or a directory of them.
	Path          string `mapstructure:"path"`
	Strict        bool   `mapstructure:"strict"`
	SkipMalformed bool   `mapstructure:"skip_malformed"`
}

type LevelConfig struct {
	Path string `mapstructure:"path"`
}

type GameConfig struct {
	// Frames is the number of frames to run; 0 runs until interrupted.
	Frames    uint64 `mapstructure:"frames"`
	Realtime  bool   `mapstructure:"realtime"`
	Networked bool   `mapstructure:"networked"`
}

type RenderConfig struct {
	Terminal bool    `mapstructure:"terminal"`
	Debug    bool    `mapstructure:"debug"`
	CellSize float64 `mapstructure:"cell_size"`
}

type InspectConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Addr    string `mapstructure:"addr"`
}

type Config struct {
	Log     LogConfig     `mapstructure:"log"`
	World   WorldConfig   `mapstructure:"world"`
	Catalog CatalogConfig `mapstructure:"catalog"`
	Level   LevelConfig   `mapstructure:"level"`
	Game    GameConfig    `mapstructure:"game"`
	Render  RenderConfig  `mapstructure:"render"`
	Inspect InspectConfig `mapstructure:"inspect"`
}

func Default() Config {
	return Config{
		Log:     LogConfig{Level: "info"},
		World:   WorldConfig{Width: 2048, Height: 1024, CellSize: 32, Gravity: 900, Timestep: 1.0 / 60.0},
		Catalog: CatalogConfig{Path: "items"},
		Level:   LevelConfig{Path: "level.yaml"},
		Game:    GameConfig{Frames: 600, Realtime: true},
		Render:  RenderConfig{CellSize: 8},
		Inspect: InspectConfig{Addr: "127.0.0.1:8089"},
	}
}

func setDefaults(v *viper.Viper) {
	d := Default()

	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.development", d.Log.Development)

	v.SetDefault("world.width", d.World.Width)
	v.SetDefault("world.height", d.World.Height)
	v.SetDefault("world.cell_size", d.World.CellSize)
	v.SetDefault("world.gravity", d.World.Gravity)
	v.SetDefault("world.timestep", d.World.Timestep)

	v.SetDefault("catalog.path", d.Catalog.Path)
	v.SetDefault("catalog.strict", d.Catalog.Strict)
	v.SetDefault("catalog.skip_malformed", d.Catalog.SkipMalformed)

	v.SetDefault("level.path", d.Level.Path)

	v.SetDefault("game.frames", d.Game.Frames)
	v.SetDefault("game.realtime", d.Game.Realtime)
	v.SetDefault("game.networked", d.Game.Networked)

	v.SetDefault("render.terminal", d.Render.Terminal)
	v.SetDefault("render.debug", d.Render.Debug)
	v.SetDefault("render.cell_size", d.Render.CellSize)

	v.SetDefault("inspect.enabled", d.Inspect.Enabled)
	v.SetDefault("inspect.addr", d.Inspect.Addr)
}

// Load resolves the configuration. An empty path skips the file; values from
// the environment override the file, which overrides the defaults.
func Load(path string) (Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	var errs []error
	if _, err := log.ParseLevel(c.Log.Level); err != nil {
		errs = append(errs, err)
	}
	if c.World.Width <= 0 || c.World.Height <= 0 {
		errs = append(errs, fmt.Errorf("world size %dx%d must be positive", c.World.Width, c.World.Height))
	}
	if c.World.CellSize <= 0 {
		errs = append(errs, fmt.Errorf("world cell size %d must be positive", c.World.CellSize))
	}
	if c.World.Timestep <= 0 {
		errs = append(errs, fmt.Errorf("world timestep %v must be positive", c.World.Timestep))
	}
	if c.Catalog.Path == "" {
		errs = append(errs, errors.New("catalog path is empty"))
	}
	if c.Level.Path == "" {
		errs = append(errs, errors.New("level path is empty"))
	}
	if c.Render.CellSize <= 0 {
		errs = append(errs, fmt.Errorf("render cell size %v must be positive", c.Render.CellSize))
	}
	if c.Inspect.Enabled && c.Inspect.Addr == "" {
		errs = append(errs, errors.New("inspect enabled without an address"))
	}
	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, errors.Join(errs...))
	}
	return nil
}

// LogLevel is the parsed Log.Level; Validate has already rejected bad values.
func (c Config) LogLevel() log.Level {
	lvl, _ := log.ParseLevel(c.Log.Level)
	return lvl
}
