package expiry

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/go-redis/redismock/v9"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

func discard() *slog.Logger { return slog.New(slog.DiscardHandler) }

func TestEnsureNotifyConfigAppendsFlags(t *testing.T) {
	client, mock := redismock.NewClientMock()
	t.Cleanup(func() { _ = client.Close() })

	mock.ExpectConfigGet("notify-keyspace-events").SetVal(map[string]string{
		"notify-keyspace-events": "AK",
	})
	mock.ExpectConfigSet("notify-keyspace-events", "AKEx").SetVal("OK")

	require.NoError(t, ensureNotifyConfig(context.Background(), client, discard()))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestEnsureNotifyConfigAlreadySet(t *testing.T) {
	client, mock := redismock.NewClientMock()
	t.Cleanup(func() { _ = client.Close() })

	mock.ExpectConfigGet("notify-keyspace-events").SetVal(map[string]string{
		"notify-keyspace-events": "Ex",
	})

	require.NoError(t, ensureNotifyConfig(context.Background(), client, discard()))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestEnsureNotifyConfigPartialFlags(t *testing.T) {
	client, mock := redismock.NewClientMock()
	t.Cleanup(func() { _ = client.Close() })

	mock.ExpectConfigGet("notify-keyspace-events").SetVal(map[string]string{
		"notify-keyspace-events": "xK",
	})
	mock.ExpectConfigSet("notify-keyspace-events", "xKE").SetVal("OK")

	require.NoError(t, ensureNotifyConfig(context.Background(), client, discard()))
	require.NoError(t, mock.ExpectationsWereMet())
}

type fakeRepairer struct {
	keys []string
	errs map[string]error
	skip map[string]bool
}

func (f *fakeRepairer) HandleExpiredKey(_ context.Context, key string) (bool, error) {
	f.keys = append(f.keys, key)
	if err := f.errs[key]; err != nil {
		return true, err
	}
	return !f.skip[key], nil
}

func TestRunSurvivesRepairErrors(t *testing.T) {
	repairer := &fakeRepairer{
		errs: map[string]error{"GUILD:2": errors.New("boom")},
		skip: map[string]bool{"GUILDS": true},
	}
	w := &ExpiryWorker{
		ctx:      context.Background(),
		repairer: repairer,
		logger:   discard(),
		counters: newListenerCounters(),
	}

	ch := make(chan *redis.Message, 4)
	for _, key := range []string{"GUILD:1", "GUILD:2", "GUILDS", "CHANNEL:9"} {
		ch <- &redis.Message{Channel: "__keyevent@0__:expired", Payload: key}
	}
	close(ch)

	// run drains the channel and returns on close without panicking
	w.run(ch)

	require.Equal(t, []string{"GUILD:1", "GUILD:2", "GUILDS", "CHANNEL:9"}, repairer.keys)
	processed, ignored, failed := w.ListenerMetrics()
	require.Equal(t, int64(2), processed)
	require.Equal(t, int64(1), ignored)
	require.Equal(t, int64(1), failed)
}

func TestCauseChain(t *testing.T) {
	require.Nil(t, causeChain(errors.New("flat")))

	root := errors.New("root")
	err := wrapErr("a", wrapErr("b", root))
	require.Equal(t, []string{"b: root", "root"}, causeChain(err))
}

type wrappedErr struct {
	msg   string
	cause error
}

func (e *wrappedErr) Error() string { return e.msg + ": " + e.cause.Error() }
func (e *wrappedErr) Unwrap() error { return e.cause }

func wrapErr(msg string, cause error) error { return &wrappedErr{msg: msg, cause: cause} }

func TestNoOpListener(t *testing.T) {
	var l Listener = NoOpListener{}
	p, i, e := l.ListenerMetrics()
	require.Zero(t, p)
	require.Zero(t, i)
	require.Zero(t, e)
	require.NoError(t, l.Close())
}
