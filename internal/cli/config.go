package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/godswood/pkg/pipeline"
)

// Cache backends selectable in the config file.
const (
	CacheFile  = "file"
	CacheRedis = "redis"
	CacheNone  = "none"
)

const (
	configFile        = "config.toml"
	defaultServerAddr = ":8080"
	defaultRedisAddr  = "localhost:6379"
)

// Config is the optional config file. Command-line flags override its values;
// its values override the pipeline defaults.
type Config struct {
	Layout LayoutConfig `toml:"layout"`
	Render RenderConfig `toml:"render"`
	Cache  CacheConfig  `toml:"cache"`
	Server ServerConfig `toml:"server"`
}

// LayoutConfig holds layout defaults.
type LayoutConfig struct {
	BaseScale float64   `toml:"base_scale"`
	BaseGap   float64   `toml:"base_gap"`
	Origin    []float64 `toml:"origin"`
	Primitive string    `toml:"primitive"`
	Size      float64   `toml:"size"`
	Fill      string    `toml:"fill"`
	Stroke    string    `toml:"stroke"`
}

// RenderConfig holds render defaults.
type RenderConfig struct {
	Formats    []string `toml:"formats"`
	Projection string   `toml:"projection"`
	Unit       float64  `toml:"unit"`
}

// CacheConfig selects and configures the cache backend.
type CacheConfig struct {
	Backend       string `toml:"backend"`
	Dir           string `toml:"dir"`
	RedisAddr     string `toml:"redis_addr"`
	RedisPassword string `toml:"redis_password"`
	RedisDB       int    `toml:"redis_db"`
}

// ServerConfig configures `godswood serve`.
type ServerConfig struct {
	Addr string `toml:"addr"`
}

// DefaultConfig returns the configuration used when no file exists.
func DefaultConfig() Config {
	return Config{
		Cache:  CacheConfig{Backend: CacheFile, RedisAddr: defaultRedisAddr},
		Server: ServerConfig{Addr: defaultServerAddr},
	}
}

// LoadConfig reads the config file at path. An empty path means the default
// location, which may be absent; an explicit path must exist.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	explicit := path != ""
	if !explicit {
		dir, err := configDir()
		if err != nil {
			return cfg, nil
		}
		path = filepath.Join(dir, configFile)
	}

	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return DefaultConfig(), nil
		}
		return Config{}, fmt.Errorf("load config %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Config{}, fmt.Errorf("load config %s: unknown keys: %s", path, strings.Join(keys, ", "))
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("load config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks values that cannot be validated by the pipeline.
func (c Config) Validate() error {
	switch c.Cache.Backend {
	case CacheFile, CacheRedis, CacheNone:
	default:
		return fmt.Errorf("invalid cache backend: %q (must be one of: file, redis, none)", c.Cache.Backend)
	}
	if n := len(c.Layout.Origin); n != 0 && n != 3 {
		return fmt.Errorf("origin must have 3 components, got %d", n)
	}
	return nil
}

// Apply fills options left unset by flags from the config file.
func (c Config) Apply(opts *pipeline.Options) {
	l, r := c.Layout, c.Render
	if opts.BaseScale == 0 {
		opts.BaseScale = l.BaseScale
	}
	if opts.BaseGap == 0 {
		opts.BaseGap = l.BaseGap
	}
	if opts.Origin == nil && len(l.Origin) == 3 {
		opts.Origin = &[3]float64{l.Origin[0], l.Origin[1], l.Origin[2]}
	}
	if opts.Primitive == "" {
		opts.Primitive = l.Primitive
	}
	if opts.PrimitiveSize == 0 {
		opts.PrimitiveSize = l.Size
	}
	if opts.Fill == "" {
		opts.Fill = l.Fill
	}
	if opts.Stroke == "" {
		opts.Stroke = l.Stroke
	}
	if len(opts.Formats) == 0 {
		opts.Formats = r.Formats
	}
	if opts.Projection == "" {
		opts.Projection = r.Projection
	}
	if opts.Unit == 0 {
		opts.Unit = r.Unit
	}
}
