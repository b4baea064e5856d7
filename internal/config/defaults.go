package config

import (
	"github.com/matzehuels/riskflow/pkg/cache"
	"github.com/matzehuels/riskflow/pkg/pipeline"
	"github.com/matzehuels/riskflow/pkg/render/flow/layout"
	"github.com/matzehuels/riskflow/pkg/session"
)

// DefaultAddr is where riskflow serve listens.
const DefaultAddr = "localhost:8080"

// DefaultConfig returns a Config matching the pipeline defaults.
func DefaultConfig() *Config {
	return &Config{
		Canvas: layout.DefaultCanvas(),
		Layout: LayoutConfig{
			NodeWidth:    pipeline.DefaultNodeWidth,
			NodeHeight:   pipeline.DefaultNodeHeight,
			Gap:          pipeline.DefaultGap,
			MinThickness: pipeline.DefaultMinThickness,
			MaxThickness: pipeline.DefaultMaxThickness,
			CurveOffset:  pipeline.DefaultCurveOffset,
		},
		Render: RenderConfig{
			Style:  pipeline.DefaultStyle,
			Legend: true,
			Scale:  pipeline.DefaultScale,
		},
		Server: ServerConfig{
			Addr:       DefaultAddr,
			SessionTTL: session.DefaultTTL,
			Sessions:   SessionsMemory,
			Metrics:    true,
		},
		Cache: CacheConfig{Backend: CacheFile},
		Redis: cache.RedisConfig{
			Addr:   "localhost:6379",
			Prefix: cache.DefaultRedisPrefix,
		},
	}
}
