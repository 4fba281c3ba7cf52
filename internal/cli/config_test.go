package cli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/godswood/pkg/pipeline"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadConfigMissingDefault(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Cache.Backend != CacheFile {
		t.Errorf("backend = %q, want %q", cfg.Cache.Backend, CacheFile)
	}
	if cfg.Server.Addr != defaultServerAddr {
		t.Errorf("addr = %q, want %q", cfg.Server.Addr, defaultServerAddr)
	}
}

func TestLoadConfigExplicitMissing(t *testing.T) {
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "nope.toml")); err == nil {
		t.Error("an explicit config path must exist")
	}
}

func TestLoadConfigDefaultLocation(t *testing.T) {
	home := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", home)
	dir := filepath.Join(home, appName)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, configFile), []byte("[server]\naddr = \":9999\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Server.Addr != ":9999" {
		t.Errorf("addr = %q, want :9999", cfg.Server.Addr)
	}
	if cfg.Cache.Backend != CacheFile {
		t.Error("unset sections keep their defaults")
	}
}

func TestLoadConfig(t *testing.T) {
	path := writeConfig(t, `
[layout]
base_scale = 6.0
base_gap = 12.5
origin = [1.0, 2.0, 3.0]
primitive = "cube"

[render]
formats = ["json", "dot"]
projection = "top"

[cache]
backend = "redis"
redis_addr = "cache:6379"
`)

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Layout.BaseScale != 6 || cfg.Layout.BaseGap != 12.5 {
		t.Errorf("layout = %+v", cfg.Layout)
	}
	if cfg.Cache.Backend != CacheRedis || cfg.Cache.RedisAddr != "cache:6379" {
		t.Errorf("cache = %+v", cfg.Cache)
	}
}

func TestLoadConfigInvalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"Syntax", "[layout\n", "load config"},
		{"UnknownKey", "[layout]\nbase_scael = 2.0\n", "unknown keys: layout.base_scael"},
		{"Backend", "[cache]\nbackend = \"memcached\"\n", "invalid cache backend"},
		{"Origin", "[layout]\norigin = [1.0, 2.0]\n", "origin must have 3 components"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadConfig(writeConfig(t, tt.content))
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error = %v, want it to contain %q", err, tt.want)
			}
		})
	}
}

func TestConfigApply(t *testing.T) {
	cfg := Config{
		Layout: LayoutConfig{BaseScale: 6, BaseGap: 10, Origin: []float64{1, 2, 3}, Primitive: "cube"},
		Render: RenderConfig{Formats: []string{"json"}, Projection: "top", Unit: 5},
	}

	// Flags win over the file.
	opts := pipeline.Options{BaseScale: 2, Formats: []string{"dot"}}
	cfg.Apply(&opts)

	if opts.BaseScale != 2 {
		t.Errorf("BaseScale = %v, flag value should win", opts.BaseScale)
	}
	if opts.BaseGap != 10 {
		t.Errorf("BaseGap = %v, want 10 from config", opts.BaseGap)
	}
	if opts.Origin == nil || *opts.Origin != [3]float64{1, 2, 3} {
		t.Errorf("Origin = %v", opts.Origin)
	}
	if opts.Primitive != "cube" || opts.Projection != "top" || opts.Unit != 5 {
		t.Errorf("opts = %+v", opts)
	}
	if len(opts.Formats) != 1 || opts.Formats[0] != "dot" {
		t.Errorf("Formats = %v, flag value should win", opts.Formats)
	}
}
