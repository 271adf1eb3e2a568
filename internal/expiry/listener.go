// Package expiry runs the background listener that repairs secondary
// indices after TTL-based key removals, which happen outside the normal
// write path and would otherwise leave the indices pointing at nothing.
package expiry

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/redis/go-redis/v9"
)

const (
	notifyParam = "notify-keyspace-events"

	// keyevent notifications ("E") of the expired class ("x")
	notifyFlags = "Ex"

	expiredChannel = "__keyevent@*__:expired"
)

// Repairer reacts to one expired primary key. handled=false means the key
// was not a primary record and there was nothing to do.
type Repairer interface {
	HandleExpiredKey(ctx context.Context, key string) (handled bool, err error)
}

type Listener interface {
	ListenerMetrics() (processed, ignored, errors int64)
	Close() error
}

type ExpiryWorker struct {
	ctx      context.Context
	cancel   context.CancelFunc
	pubsub   *redis.PubSub
	repairer Repairer
	logger   *slog.Logger
	counters *listenerCounters
}

// New ensures the store emits expired-key notifications, opens a dedicated
// subscription, and starts the repair loop.
func New(ctx context.Context, client redis.UniversalClient, repairer Repairer, logger *slog.Logger) (Listener, error) {
	if err := ensureNotifyConfig(ctx, client, logger); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithCancel(ctx)
	w := &ExpiryWorker{
		ctx:      ctx,
		cancel:   cancel,
		pubsub:   client.PSubscribe(ctx, expiredChannel),
		repairer: repairer,
		logger:   logger,
		counters: newListenerCounters(),
	}

	go func() {
		<-ctx.Done()
		_ = w.pubsub.Close()
	}()
	go w.run(w.pubsub.Channel())

	return w, nil
}

func (w *ExpiryWorker) ListenerMetrics() (processed, ignored, errors int64) {
	return w.counters.snapshot()
}

func (w *ExpiryWorker) Close() error {
	w.cancel()
	return nil
}

// Private API.

func (w *ExpiryWorker) run(ch <-chan *redis.Message) {
	w.logger.Info("expiry listener is running", "channel", expiredChannel)

	for msg := range ch {
		w.handle(msg.Payload)
	}

	// the subscription stream ended; nothing restarts it
	w.logger.Warn("expiry notification stream ended, listener stopped")
}

// handle repairs one expired key. Errors are logged with their cause chain
// and never stop the loop: the listener is best effort and must not die on
// isolated bad data.
func (w *ExpiryWorker) handle(key string) {
	handled, err := w.repairer.HandleExpiredKey(w.ctx, key)
	switch {
	case err != nil:
		w.counters.errors.Add(1)
		w.logger.Error("expired key cleanup failed",
			"key", key,
			"error", err.Error(),
			"causes", causeChain(err),
		)
	case handled:
		w.counters.processed.Add(1)
	default:
		w.counters.ignored.Add(1)
	}
}

// causeChain unwinds the error into the chain of its causes.
func causeChain(err error) []string {
	var chain []string
	for cause := errors.Unwrap(err); cause != nil; cause = errors.Unwrap(cause) {
		chain = append(chain, cause.Error())
	}
	return chain
}

// ensureNotifyConfig rewrites notify-keyspace-events to include keyevent
// and expired flags when absent. Idempotent; a store already configured is
// left untouched.
func ensureNotifyConfig(ctx context.Context, client redis.UniversalClient, logger *slog.Logger) error {
	res, err := client.ConfigGet(ctx, notifyParam).Result()
	if err != nil {
		return err
	}
	current := res[notifyParam]

	next := current
	for _, flag := range notifyFlags {
		if !strings.ContainsRune(next, flag) {
			next += string(flag)
		}
	}
	if next == current {
		return nil
	}

	if err := client.ConfigSet(ctx, notifyParam, next).Err(); err != nil {
		return err
	}
	logger.Info("enabled expired-key notifications", "was", current, "now", next)
	return nil
}
