// Package telemetry reports keyspace sizes on an interval so operators can
// watch the cache grow and shrink without querying the store themselves.
package telemetry

import (
	"context"
	"log/slog"
	"time"

	"github.com/gatecache/gatecache/config"
	"github.com/gatecache/gatecache/internal/cache"
)

type Logger interface {
	Interval() time.Duration
	Close() error
}

type Logs struct {
	ctx      context.Context
	cancel   context.CancelFunc
	cfg      *config.StatsCfg
	logger   *slog.Logger
	cache    *cache.Cache
	interval time.Duration
}

func New(ctx context.Context, cfg *config.StatsCfg, logger *slog.Logger, c *cache.Cache) *Logs {
	ctx, cancel := context.WithCancel(ctx)
	l := &Logs{
		ctx:    ctx,
		cancel: cancel,
		cfg:    cfg,
		logger: logger,
		cache:  c,
	}
	if cfg.Enabled() {
		l.interval = cfg.Interval
	}
	return l.run()
}

func (l *Logs) Interval() time.Duration {
	return l.interval
}

func (l *Logs) Close() error {
	l.cancel()
	return nil
}

func (l *Logs) run() *Logs {
	if l.cfg.Enabled() {
		go l.loop()
	}
	return l
}

func (l *Logs) loop() {
	ticker := time.NewTicker(l.interval)
	defer ticker.Stop()

	for {
		select {
		case <-l.ctx.Done():
			return
		case <-ticker.C:
			counts, err := l.cache.Counts(l.ctx)
			if err != nil {
				l.logger.Warn("keyspace stats read failed", "error", err)
				continue
			}
			l.logger.Info("keyspace stats",
				"guilds", counts.Guilds,
				"unavailable_guilds", counts.UnavailableGuilds,
				"channels", counts.Channels,
				"roles", counts.Roles,
				"users", counts.Users,
				"messages", counts.Messages,
				"stickers", counts.Stickers,
				"emojis", counts.Emojis,
				"stage_instances", counts.StageInstances,
				"scheduled_events", counts.ScheduledEvents,
			)
		}
	}
}
