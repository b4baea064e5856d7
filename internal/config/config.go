// Package config loads riskflow settings from a YAML file overlaid with
// RISKFLOW_* environment variables.
//
// Nested keys use a double underscore in the environment:
//
//	RISKFLOW_STRICT=true
//	RISKFLOW_CANVAS__WIDTH=1600
//	RISKFLOW_SERVER__ADDR=:9000
//	RISKFLOW_REDIS__ADDR=redis:6379
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	yamlv3 "gopkg.in/yaml.v3"

	"github.com/matzehuels/riskflow/pkg/errors"
	"github.com/matzehuels/riskflow/pkg/pipeline"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "RISKFLOW_"

// EnvConfig names an alternative config file path.
const EnvConfig = EnvPrefix + "CONFIG"

// DefaultPath returns the config file location: $RISKFLOW_CONFIG, or
// config.yaml in the user config directory.
func DefaultPath() string {
	if p := os.Getenv(EnvConfig); p != "" {
		return p
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return "riskflow.yaml"
	}
	return filepath.Join(dir, "riskflow", "config.yaml")
}

// Load reads configuration from the given YAML file, then overlays
// environment variable overrides. A missing file is not an error.
func Load(path string) (*Config, error) {
	k := koanf.New(".")
	cfg := DefaultConfig()

	if _, err := os.Stat(path); err == nil {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("accessing config %s: %w", path, err)
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("loading env overrides: %w", err)
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}
	return cfg, cfg.Validate()
}

// envKey maps RISKFLOW_CANVAS__WIDTH to canvas.width. RISKFLOW_CONFIG is
// dropped because it names the file rather than a setting.
func envKey(s string) string {
	if s == EnvConfig {
		return ""
	}
	s = strings.TrimPrefix(s, EnvPrefix)
	return strings.ToLower(strings.ReplaceAll(s, "__", "."))
}

// Save writes the configuration to the given YAML file path.
func (c *Config) Save(path string) error {
	data, err := yamlv3.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}
	return nil
}

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

// Validate checks that the configuration contains valid values.
func (c *Config) Validate() error {
	validateOnce.Do(func() { validate = validator.New() })

	if err := validate.Struct(c); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid config")
	}
	if err := c.Canvas.Validate(); err != nil {
		return err
	}
	if err := pipeline.ValidateStyle(c.Render.Style); err != nil {
		return err
	}
	if c.Cache.Backend == CacheRedis || c.Server.Sessions == SessionsRedis {
		if c.Redis.Addr == "" {
			return errors.New(errors.ErrCodeInvalidInput, "invalid config: redis.addr is required for the redis backend")
		}
	}
	return nil
}

// PipelineOptions returns pipeline options seeded from the config.
func (c *Config) PipelineOptions() pipeline.Options {
	return pipeline.Options{
		Strict:       c.Strict,
		Canvas:       c.Canvas,
		NodeWidth:    c.Layout.NodeWidth,
		NodeHeight:   c.Layout.NodeHeight,
		Gap:          c.Layout.Gap,
		MinThickness: c.Layout.MinThickness,
		MaxThickness: c.Layout.MaxThickness,
		CurveOffset:  c.Layout.CurveOffset,
		Style:        c.Render.Style,
		Interactive:  c.Render.Interactive,
		NoLegend:     !c.Render.Legend,
		Scale:        c.Render.Scale,
	}
}
