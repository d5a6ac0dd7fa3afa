package engine

import (
	"log/slog"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/rotisserie/eris"

	"github.com/plus3/momo/ecs"
)

// Config is the host configuration, usually read from a TOML file:
//
//	log_level = "info"
//
//	[window]
//	title = "Momo Engine"
//	width = 800
//	height = 600
//
//	[loop]
//	tick_rate = 60
//	max_ticks_per_frame = 5
//	min_frame_time = "16ms"
//
//	[assets]
//	root = "assets"
//
//	[[scripts]]
//	name = "test"
//	path = "test.lua"
type Config struct {
	LogLevel string          `toml:"log_level"`
	Window   WindowConfig    `toml:"window"`
	Loop     LoopConfig      `toml:"loop"`
	Assets   AssetsConfig    `toml:"assets"`
	Scripts  []ScriptConfig  `toml:"scripts"`
	Textures []TextureConfig `toml:"textures"`
}

type WindowConfig struct {
	Title      string `toml:"title"`
	Width      int    `toml:"width"`
	Height     int    `toml:"height"`
	Fullscreen bool   `toml:"fullscreen"`
}

type LoopConfig struct {
	// TickRate is the number of simulation ticks per second.
	TickRate         float64  `toml:"tick_rate"`
	MaxTicksPerFrame int      `toml:"max_ticks_per_frame"`
	MinFrameTime     Duration `toml:"min_frame_time"`
}

type AssetsConfig struct {
	Root string `toml:"root"`
}

// ScriptConfig names a script file to load at startup. Path is relative to the asset root.
type ScriptConfig struct {
	Name string `toml:"name"`
	Path string `toml:"path"`
}

// TextureConfig names an image to load at startup. Path is relative to the asset root.
type TextureConfig struct {
	Name string `toml:"name"`
	Path string `toml:"path"`
}

// Duration is a time.Duration written as a string such as "16ms" in config files.
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return eris.Wrapf(err, "invalid duration %q", string(text))
	}
	d.Duration = v
	return nil
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// DefaultConfig mirrors the stock engine: an 800x600 window ticking at 60Hz.
func DefaultConfig() Config {
	return Config{
		LogLevel: "info",
		Window: WindowConfig{
			Title:  "Momo Engine",
			Width:  800,
			Height: 600,
		},
		Loop: LoopConfig{
			TickRate:         60,
			MaxTicksPerFrame: 5,
		},
		Assets: AssetsConfig{
			Root: DefaultAssetRoot,
		},
	}
}

// LoadConfig reads a TOML file over DefaultConfig. Keys the file sets replace
// the defaults; unknown keys are an error.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, eris.Wrapf(err, "failed to read config %s", path)
	}
	if err := checkUndecoded(md); err != nil {
		return Config{}, eris.Wrapf(err, "config %s", path)
	}
	return cfg, cfg.Validate()
}

// ParseConfig is LoadConfig for TOML already in memory.
func ParseConfig(data string) (Config, error) {
	cfg := DefaultConfig()
	md, err := toml.Decode(data, &cfg)
	if err != nil {
		return Config{}, eris.Wrap(err, "failed to parse config")
	}
	if err := checkUndecoded(md); err != nil {
		return Config{}, err
	}
	return cfg, cfg.Validate()
}

func checkUndecoded(md toml.MetaData) error {
	undecoded := md.Undecoded()
	if len(undecoded) == 0 {
		return nil
	}
	keys := make([]string, len(undecoded))
	for i, k := range undecoded {
		keys[i] = k.String()
	}
	return eris.Errorf("unknown config keys: %s", strings.Join(keys, ", "))
}

// Validate checks values the engine cannot run with.
func (c Config) Validate() error {
	if c.Loop.TickRate <= 0 {
		return eris.Errorf("loop.tick_rate must be positive, got %v", c.Loop.TickRate)
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	seen := make(map[string]bool, len(c.Scripts))
	for _, s := range c.Scripts {
		if s.Name == "" || s.Path == "" {
			return eris.Errorf("script entries need a name and a path, got %+v", s)
		}
		if seen[s.Name] {
			return eris.Errorf("script %q is listed twice", s.Name)
		}
		seen[s.Name] = true
	}
	for _, t := range c.Textures {
		if t.Name == "" || t.Path == "" {
			return eris.Errorf("texture entries need a name and a path, got %+v", t)
		}
	}
	return c.Scheduler().Validate()
}

// Level parses LogLevel.
func (c Config) Level() (slog.Level, error) {
	var level slog.Level
	if c.LogLevel == "" {
		return slog.LevelInfo, nil
	}
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return 0, eris.Wrapf(err, "invalid log_level %q", c.LogLevel)
	}
	return level, nil
}

// Scheduler converts the loop settings into a scheduler configuration.
func (c Config) Scheduler() ecs.SchedulerConfig {
	interval := time.Duration(0)
	if c.Loop.TickRate > 0 {
		interval = time.Duration(float64(time.Second) / c.Loop.TickRate)
	}
	return ecs.SchedulerConfig{
		TickInterval:     interval,
		MaxTicksPerFrame: c.Loop.MaxTicksPerFrame,
		MinFrameDuration: c.Loop.MinFrameTime.Duration,
	}
}
