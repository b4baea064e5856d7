package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/matzehuels/riskflow/pkg/cache"
	"github.com/matzehuels/riskflow/pkg/errors"
	"github.com/matzehuels/riskflow/pkg/pipeline"
	"github.com/matzehuels/riskflow/pkg/render/flow/layout"
	"github.com/matzehuels/riskflow/pkg/session"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Canvas != layout.DefaultCanvas() {
		t.Errorf("canvas = %+v, want default", cfg.Canvas)
	}
	if cfg.Render.Style != pipeline.DefaultStyle {
		t.Errorf("style = %q, want %q", cfg.Render.Style, pipeline.DefaultStyle)
	}
	if !cfg.Render.Legend {
		t.Error("legend should be on by default")
	}
	if cfg.Cache.Backend != CacheFile {
		t.Errorf("cache backend = %q, want %q", cfg.Cache.Backend, CacheFile)
	}
	if cfg.Server.Sessions != SessionsMemory {
		t.Errorf("sessions = %q, want %q", cfg.Server.Sessions, SessionsMemory)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config invalid: %v", err)
	}
}

func TestSaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	original := DefaultConfig()
	original.Canvas.Width = 1600
	original.Canvas.Margins.Right = 200
	original.Layout.Gap = 35
	original.Render.Style = "contrast"
	original.Render.Interactive = true
	original.Server.Addr = ":9000"
	original.Server.CORSOrigins = []string{"https://example.org", "http://localhost:3000"}
	original.Server.SessionTTL = 30 * time.Minute
	original.Strict = true

	if err := original.Save(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if loaded.Canvas != original.Canvas {
		t.Errorf("canvas: got %+v, want %+v", loaded.Canvas, original.Canvas)
	}
	if loaded.Layout != original.Layout {
		t.Errorf("layout: got %+v, want %+v", loaded.Layout, original.Layout)
	}
	if loaded.Render != original.Render {
		t.Errorf("render: got %+v, want %+v", loaded.Render, original.Render)
	}
	if loaded.Server.Addr != original.Server.Addr {
		t.Errorf("addr: got %q, want %q", loaded.Server.Addr, original.Server.Addr)
	}
	if loaded.Server.SessionTTL != original.Server.SessionTTL {
		t.Errorf("session_ttl: got %v, want %v", loaded.Server.SessionTTL, original.Server.SessionTTL)
	}
	if len(loaded.Server.CORSOrigins) != 2 || loaded.Server.CORSOrigins[1] != "http://localhost:3000" {
		t.Errorf("cors_origins: got %v", loaded.Server.CORSOrigins)
	}
	if !loaded.Strict {
		t.Error("strict: got false, want true")
	}
}

func TestLoadMissingFile(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("Load returned error for missing file: %v", err)
	}
	if cfg.Canvas.Width != layout.DefaultWidth {
		t.Errorf("width = %v, want default", cfg.Canvas.Width)
	}
}

func TestLoadPartialFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := "canvas:\n  height: 900\nrender:\n  style: contrast\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Canvas.Height != 900 {
		t.Errorf("height = %v, want 900", cfg.Canvas.Height)
	}
	if cfg.Canvas.Width != layout.DefaultWidth {
		t.Errorf("width = %v, want default %v", cfg.Canvas.Width, layout.DefaultWidth)
	}
	if cfg.Render.Style != "contrast" {
		t.Errorf("style = %q, want contrast", cfg.Render.Style)
	}
	if cfg.Layout.NodeWidth != pipeline.DefaultNodeWidth {
		t.Errorf("node width = %v, want default", cfg.Layout.NodeWidth)
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("RISKFLOW_CANVAS__WIDTH", "1500")
	t.Setenv("RISKFLOW_STRICT", "true")
	t.Setenv("RISKFLOW_SERVER__ADDR", ":7070")
	t.Setenv("RISKFLOW_SERVER__SESSION_TTL", "45m")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Canvas.Width != 1500 {
		t.Errorf("width = %v, want 1500", cfg.Canvas.Width)
	}
	if !cfg.Strict {
		t.Error("strict not applied from env")
	}
	if cfg.Server.Addr != ":7070" {
		t.Errorf("addr = %q, want :7070", cfg.Server.Addr)
	}
	if cfg.Server.SessionTTL != 45*time.Minute {
		t.Errorf("session ttl = %v, want 45m", cfg.Server.SessionTTL)
	}
}

func TestEnvKey(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"RISKFLOW_STRICT", "strict"},
		{"RISKFLOW_CANVAS__MARGINS__TOP", "canvas.margins.top"},
		{"RISKFLOW_LAYOUT__NODE_WIDTH", "layout.node_width"},
		{"RISKFLOW_CONFIG", ""},
	}
	for _, tt := range tests {
		if got := envKey(tt.in); got != tt.want {
			t.Errorf("envKey(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
		code   errors.Code
	}{
		{"degenerate canvas", func(c *Config) { c.Canvas.Width = 150 }, errors.ErrCodeDegenerateCanvas},
		{"thickness inverted", func(c *Config) { c.Layout.MinThickness = 40 }, errors.ErrCodeInvalidInput},
		{"zero node width", func(c *Config) { c.Layout.NodeWidth = 0 }, errors.ErrCodeInvalidInput},
		{"bad cache backend", func(c *Config) { c.Cache.Backend = "s3" }, errors.ErrCodeInvalidInput},
		{"bad sessions backend", func(c *Config) { c.Server.Sessions = "disk" }, errors.ErrCodeInvalidInput},
		{"empty addr", func(c *Config) { c.Server.Addr = "" }, errors.ErrCodeInvalidInput},
		{"unknown style", func(c *Config) { c.Render.Style = "neon" }, errors.ErrCodeInvalidStyle},
		{"redis without addr", func(c *Config) {
			c.Cache.Backend = CacheRedis
			c.Redis.Addr = ""
		}, errors.ErrCodeInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.modify(cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected error")
			}
			if got := errors.GetCode(err); got != tt.code {
				t.Errorf("code = %q, want %q (%v)", got, tt.code, err)
			}
		})
	}
}

func TestPipelineOptions(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Render.Legend = false
	cfg.Strict = true
	cfg.Layout.Gap = 12

	opts := cfg.PipelineOptions()
	if !opts.NoLegend {
		t.Error("NoLegend should mirror legend=false")
	}
	if !opts.Strict {
		t.Error("Strict not carried")
	}
	if opts.Gap != 12 {
		t.Errorf("gap = %v, want 12", opts.Gap)
	}
	opts.Sample = true
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Errorf("options from default config invalid: %v", err)
	}
}

func TestOpenCache(t *testing.T) {
	ctx := context.Background()

	cfg := DefaultConfig()
	cfg.Cache.Backend = CacheNone
	c, err := cfg.OpenCache(ctx)
	if err != nil {
		t.Fatalf("OpenCache(none): %v", err)
	}
	if _, ok := c.(cache.NullCache); !ok {
		t.Errorf("none backend = %T, want cache.NullCache", c)
	}

	cfg.Cache.Backend = CacheFile
	cfg.Cache.Dir = t.TempDir()
	c, err = cfg.OpenCache(ctx)
	if err != nil {
		t.Fatalf("OpenCache(file): %v", err)
	}
	fc, ok := c.(*cache.FileCache)
	if !ok {
		t.Fatalf("file backend = %T, want *cache.FileCache", c)
	}
	if fc.Dir() != cfg.Cache.Dir {
		t.Errorf("dir = %q, want %q", fc.Dir(), cfg.Cache.Dir)
	}
}

func TestOpenSessionsMemory(t *testing.T) {
	cfg := DefaultConfig()
	store, err := cfg.OpenSessions(context.Background(), cache.NewNullCache())
	if err != nil {
		t.Fatalf("OpenSessions: %v", err)
	}
	if _, ok := store.(*session.MemoryStore); !ok {
		t.Errorf("store = %T, want *session.MemoryStore", store)
	}
}
