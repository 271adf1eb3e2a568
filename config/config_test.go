package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/gatecache/gatecache/model"
)

func TestLoadConfig(t *testing.T) {
	yml := `
redis:
  addr: "redis-1:6380"
  db: 3
entities:
  messages:
    ttl: 1m
  presences:
    disabled: true
stats:
  interval: 30s
fresh_cache: true
`
	path := filepath.Join(t.TempDir(), "cache.yaml")
	require.NoError(t, os.WriteFile(path, []byte(yml), 0o600))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	require.Equal(t, "redis-1:6380", cfg.Redis.Addr)
	require.Equal(t, 3, cfg.Redis.DB)
	require.True(t, cfg.FreshCache)

	require.Equal(t, time.Minute, cfg.Entities.Kind(model.KindMessage).TTL)
	require.True(t, cfg.Entities.Kind(model.KindMessage).Expires())
	require.False(t, cfg.Entities.Kind(model.KindPresence).Wanted())
	require.True(t, cfg.Entities.Kind(model.KindGuild).Wanted())
	require.False(t, cfg.Entities.Kind(model.KindGuild).Expires())

	require.True(t, cfg.Stats.Enabled())
	require.Equal(t, 30*time.Second, cfg.Stats.Interval)
}

func TestLoadConfigEmptyFile(t *testing.T) {
	// a file with no yaml documents unmarshals to a nil config
	path := filepath.Join(t.TempDir(), "cache.yaml")
	require.NoError(t, os.WriteFile(path, []byte("# nothing configured\n"), 0o600))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	require.Equal(t, "localhost:6379", cfg.Redis.Addr)
	require.True(t, cfg.Entities.Kind(model.KindGuild).Wanted())
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}

func TestAdjustConfigDefaults(t *testing.T) {
	cfg := &Cache{Stats: &StatsCfg{}}
	cfg.AdjustConfig()

	require.Equal(t, "localhost:6379", cfg.Redis.Addr)
	require.Equal(t, time.Minute, cfg.Stats.Interval)
}

func TestDefaultStoresEverything(t *testing.T) {
	cfg := Default()
	require.False(t, cfg.Entities.AnyExpires())
	for _, k := range model.Kinds {
		require.True(t, cfg.Entities.Kind(k).Wanted(), k.String())
	}
	require.False(t, cfg.Stats.Enabled())
}

func TestAnyExpires(t *testing.T) {
	cfg := Default()
	cfg.Entities.Messages.TTL = time.Second
	require.True(t, cfg.Entities.AnyExpires())

	cfg.Entities.Messages.Disabled = true
	require.False(t, cfg.Entities.AnyExpires())
}
