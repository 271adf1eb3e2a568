package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Cache groups configuration of the whole caching layer.
type Cache struct {
	Redis RedisCfg `yaml:"redis"`

	// Entities sets the per-kind storage policy. Kinds omitted from the
	// YAML keep the default policy: stored, no expiration.
	Entities EntitiesCfg `yaml:"entities"`

	// Stats configures the periodic keyspace size report.
	// If nil, no report loop is started.
	Stats *StatsCfg `yaml:"stats"`

	// FreshCache wipes the selected database on startup instead of reusing
	// whatever a previous session left behind.
	FreshCache bool `yaml:"fresh_cache"`
}

func (cfg *Cache) AdjustConfig() {
	cfg.Redis.adjust()
	if cfg.Stats.Enabled() && cfg.Stats.Interval <= 0 {
		cfg.Stats.Interval = defaultStatsInterval
	}
}

func LoadConfig(path string) (*Cache, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("stat config path: %w", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config yaml file %s: %w", path, err)
	}

	var cfg *Cache
	if err = yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("unmarshal yaml from %s: %w", path, err)
	}
	if cfg == nil {
		// a file with no documents unmarshals to nil
		cfg = &Cache{}
	}
	cfg.AdjustConfig()

	return cfg, nil
}

// Default returns a ready-to-use configuration pointing at a local store
// with every entity kind stored and never expiring.
func Default() *Cache {
	cfg := &Cache{}
	cfg.AdjustConfig()
	return cfg
}
