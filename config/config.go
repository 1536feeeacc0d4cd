package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/podiumhq/podium/core/metrics"
	"github.com/podiumhq/podium/core/plan"
)

// Config is the application configuration.
type Config struct {
	// Granularity is the scheduling token size in minutes.
	Granularity int            `json:"granularity"`
	Metrics     metrics.Config `json:"metrics"`
	Logging     LoggingConfig  `json:"logging"`
}

// SetDefaults applies sane defaults.
func (c *Config) SetDefaults() {
	if c.Granularity <= 0 {
		c.Granularity = plan.DefaultGranularity
	}
	c.Metrics.SetDefaults()
	c.Logging.SetDefaults()
}

// Validate checks mandatory fields.
func (c Config) Validate() error {
	if c.Granularity <= 0 {
		return fmt.Errorf("granularity must be positive")
	}
	return c.Logging.Validate()
}

// Load reads the configuration from a JSON or YAML file, then applies
// PODIUM_-prefixed environment overrides (double underscore nests keys).
func Load(path string) (*Config, error) {
	k := koanf.New(".")
	ext := strings.ToLower(filepath.Ext(path))
	var parser koanf.Parser
	switch ext {
	case ".yaml", ".yml":
		parser = yaml.Parser()
	case ".json":
		parser = json.Parser()
	default:
		return nil, fmt.Errorf("unsupported config format: %s", ext)
	}
	if err := k.Load(file.Provider(path), parser); err != nil {
		return nil, err
	}
	// Optional environment overrides
	if err := k.Load(env.Provider("PODIUM_", "__", func(s string) string {
		s = strings.TrimPrefix(strings.ToLower(s), "podium_")
		return strings.ReplaceAll(s, "__", ".")
	}), nil); err != nil {
		return nil, err
	}
	var cfg Config
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "json"}); err != nil {
		return nil, err
	}
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
