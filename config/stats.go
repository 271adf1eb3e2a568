package config

import "time"

const defaultStatsInterval = time.Minute

type StatsCfg struct {
	// Interval between keyspace size reports. Example: "1m".
	Interval time.Duration `yaml:"interval"`
}

func (cfg *StatsCfg) Enabled() bool {
	return cfg != nil
}
