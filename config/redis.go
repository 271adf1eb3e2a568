package config

type RedisCfg struct {
	// Addr is the host:port of the store.
	// Example: "localhost:6379".
	Addr string `yaml:"addr"`

	Username string `yaml:"username"`
	Password string `yaml:"password"`

	// DB selects the logical database number.
	DB int `yaml:"db"`

	// PoolSize caps the connection pool; 0 keeps the client default.
	PoolSize int `yaml:"pool_size"`
}

func (cfg *RedisCfg) adjust() {
	if cfg.Addr == "" {
		cfg.Addr = "localhost:6379"
	}
}
