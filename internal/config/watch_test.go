package config

import (
	"context"
	"io"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatch_ReloadsOnWrite(t *testing.T) {
	path := writeTestConfig(t, "[logging]\nlog_level = \"info\"\n")
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	changes := make(chan *Config, 64)
	done := make(chan error, 1)

	go func() {
		done <- Watch(ctx, path, logger, func(c *Config) {
			select {
			case changes <- c:
			default:
			}
		})
	}()

	// The watcher registers asynchronously; keep rewriting until it notices.
	require.Eventually(t, func() bool {
		_ = os.WriteFile(path, []byte("[logging]\nlog_level = \"debug\"\n"), 0o600)

		select {
		case c := <-changes:
			return c.Logging.LogLevel == "debug"
		case <-time.After(50 * time.Millisecond):
			return false
		}
	}, 5*time.Second, 10*time.Millisecond)

	cancel()
	assert.NoError(t, <-done)
}

func TestWatch_InvalidEditIsSkipped(t *testing.T) {
	path := writeTestConfig(t, "[logging]\nlog_level = \"info\"\n")
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	changes := make(chan *Config, 64)

	go func() { _ = Watch(ctx, path, logger, func(c *Config) {
			select {
			case changes <- c:
			default:
			}
		}) }()

	require.Eventually(t, func() bool {
		_ = os.WriteFile(path, []byte("[logging]\nlog_level = \"warn\"\n"), 0o600)

		select {
		case <-changes:
			return true
		case <-time.After(50 * time.Millisecond):
			return false
		}
	}, 5*time.Second, 10*time.Millisecond)

	require.NoError(t, os.WriteFile(path, []byte("[logging]\nlog_level = \"shout\"\n"), 0o600))

	select {
	case c := <-changes:
		assert.NotEqual(t, "shout", c.Logging.LogLevel)
	case <-time.After(200 * time.Millisecond):
	}
}

func TestWatch_MissingDirectory(t *testing.T) {
	err := Watch(context.Background(), "/nonexistent-dir-for-test/config.toml",
		slog.New(slog.NewTextHandler(io.Discard, nil)), func(*Config) {})
	assert.Error(t, err)
}
