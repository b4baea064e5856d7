package config

import (
	"time"

	"github.com/matzehuels/riskflow/pkg/cache"
	"github.com/matzehuels/riskflow/pkg/render/flow/layout"
)

// Cache backends.
const (
	CacheFile  = "file"
	CacheRedis = "redis"
	CacheNone  = "none"
)

// Session backends.
const (
	SessionsMemory = "memory"
	SessionsRedis  = "redis"
)

// Config is the top-level riskflow configuration, corresponding to
// config.yaml.
type Config struct {
	Canvas layout.Canvas     `yaml:"canvas" koanf:"canvas"`
	Layout LayoutConfig      `yaml:"layout" koanf:"layout"`
	Render RenderConfig      `yaml:"render" koanf:"render"`
	Server ServerConfig      `yaml:"server" koanf:"server"`
	Cache  CacheConfig       `yaml:"cache" koanf:"cache"`
	Redis  cache.RedisConfig `yaml:"redis" koanf:"redis"`
	Strict bool              `yaml:"strict" koanf:"strict"`
}

// LayoutConfig holds node and ribbon geometry.
type LayoutConfig struct {
	NodeWidth    float64 `yaml:"node_width" koanf:"node_width" validate:"gt=0"`
	NodeHeight   float64 `yaml:"node_height" koanf:"node_height" validate:"gt=0"`
	Gap          float64 `yaml:"gap" koanf:"gap" validate:"gte=0"`
	MinThickness float64 `yaml:"min_thickness" koanf:"min_thickness" validate:"gte=0"`
	MaxThickness float64 `yaml:"max_thickness" koanf:"max_thickness" validate:"gtfield=MinThickness"`
	CurveOffset  float64 `yaml:"curve_offset" koanf:"curve_offset" validate:"gte=0"`
}

// RenderConfig holds output defaults.
type RenderConfig struct {
	Style       string  `yaml:"style" koanf:"style"`
	Interactive bool    `yaml:"interactive" koanf:"interactive"`
	Legend      bool    `yaml:"legend" koanf:"legend"`
	Scale       float64 `yaml:"scale" koanf:"scale" validate:"gt=0"`
}

// ServerConfig configures riskflow serve.
type ServerConfig struct {
	Addr        string        `yaml:"addr" koanf:"addr" validate:"required"`
	CORSOrigins []string      `yaml:"cors_origins" koanf:"cors_origins"`
	SessionTTL  time.Duration `yaml:"session_ttl" koanf:"session_ttl" validate:"gte=0"`
	Sessions    string        `yaml:"sessions" koanf:"sessions" validate:"oneof=memory redis"`
	Metrics     bool          `yaml:"metrics" koanf:"metrics"`
}

// CacheConfig selects the artifact cache.
type CacheConfig struct {
	Backend string `yaml:"backend" koanf:"backend" validate:"oneof=file redis none"`
	Dir     string `yaml:"dir" koanf:"dir"`
}
