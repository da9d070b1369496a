package main

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rzvngherman/OneDrive-REST-API/internal/config"
	"github.com/rzvngherman/OneDrive-REST-API/internal/graph"
)

// Global flag reset pattern: newRootCmd() binds flags via StringVar/BoolVar,
// which reset the global flag variables to their zero values. Tests must either
// set globals AFTER newRootCmd() returns, or use cmd.SetArgs() + cmd.Execute()
// to let Cobra parse flags.

// isolate clears every override source the host environment could leak in
// and restores package globals when the test ends.
func isolate(t *testing.T) {
	t.Helper()

	for _, name := range []string{
		config.EnvConfig, config.EnvMock, config.EnvEnvironment, config.EnvListen, config.EnvToken,
	} {
		t.Setenv(name, "")
	}

	oldCfg := resolvedCfg
	oldVerbose, oldQuiet, oldJSON := flagVerbose, flagQuiet, flagJSON
	oldLevel := logLevel.Level()

	t.Cleanup(func() {
		resolvedCfg = oldCfg
		flagVerbose, flagQuiet, flagJSON = oldVerbose, oldQuiet, oldJSON
		logLevel.Set(oldLevel)
	})
}

func missingConfig(t *testing.T) string {
	t.Helper()

	return filepath.Join(t.TempDir(), "nonexistent.toml")
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

// --- command tree ---

func TestNewRootCmd_Subcommands(t *testing.T) {
	cmd := newRootCmd()

	for _, name := range []string{"serve", "lookup", "config"} {
		sub, _, err := cmd.Find([]string{name})
		require.NoError(t, err)
		assert.Equal(t, name, sub.Name())
	}

	show, _, err := cmd.Find([]string{"config", "show"})
	require.NoError(t, err)
	assert.Equal(t, "show", show.Name())
}

func TestNewRootCmd_PersistentFlags(t *testing.T) {
	cmd := newRootCmd()

	for _, name := range []string{"config", "mock", "json", "verbose", "quiet"} {
		assert.NotNil(t, cmd.PersistentFlags().Lookup(name), "expected persistent flag %q", name)
	}
}

func TestNewRootCmd_VerboseQuietExclusive(t *testing.T) {
	isolate(t)

	cmd := newRootCmd()
	cmd.SetOut(io.Discard)
	cmd.SetArgs([]string{"--verbose", "--quiet", "--config", missingConfig(t), "config", "show"})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "none of the others can be")
}

// --- loadConfig ---

func TestLoadConfig_FileValues(t *testing.T) {
	isolate(t)

	path := writeConfig(t, "[graph]\nmock = true\n[logging]\nlog_level = \"warn\"\n")

	cmd := newRootCmd()
	cmd.SetOut(io.Discard)
	cmd.SetArgs([]string{"--config", path, "config", "show"})
	require.NoError(t, cmd.Execute())

	require.NotNil(t, resolvedCfg)
	assert.True(t, resolvedCfg.Graph.Mock)
	assert.Equal(t, config.SourceFile, resolvedCfg.MockSource)
	assert.Equal(t, "warn", resolvedCfg.Logging.LogLevel)
	assert.Equal(t, path, resolvedCfg.Path)
}

func TestLoadConfig_MockFlagOverridesFileAndEnv(t *testing.T) {
	isolate(t)
	t.Setenv(config.EnvMock, "true")

	path := writeConfig(t, "[graph]\nmock = true\n")

	cmd := newRootCmd()
	cmd.SetOut(io.Discard)
	cmd.SetArgs([]string{"--config", path, "--mock=false", "config", "show"})
	require.NoError(t, cmd.Execute())

	assert.False(t, resolvedCfg.Graph.Mock)
	assert.Equal(t, config.SourceFlag, resolvedCfg.MockSource)
}

func TestLoadConfig_DevelopmentEnvironment(t *testing.T) {
	isolate(t)
	t.Setenv(config.EnvEnvironment, "development")

	cmd := newRootCmd()
	cmd.SetOut(io.Discard)
	cmd.SetArgs([]string{"--config", missingConfig(t), "config", "show"})
	require.NoError(t, cmd.Execute())

	assert.True(t, resolvedCfg.Graph.Mock)
	assert.Equal(t, config.SourceEnv, resolvedCfg.MockSource)
}

func TestLoadConfig_InvalidFile(t *testing.T) {
	isolate(t)

	path := writeConfig(t, "[graph]\nmokc = true\n")

	cmd := newRootCmd()
	cmd.SetOut(io.Discard)
	cmd.SetArgs([]string{"--config", path, "config", "show"})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "loading config")
	assert.Contains(t, err.Error(), `did you mean "graph.mock"`)
}

// --- logging ---

func TestEffectiveLevel(t *testing.T) {
	isolate(t)

	tests := []struct {
		name       string
		configured string
		verbose    bool
		quiet      bool
		want       slog.Level
	}{
		{"default", "", false, false, slog.LevelInfo},
		{"config debug", "debug", false, false, slog.LevelDebug},
		{"config warn", "warn", false, false, slog.LevelWarn},
		{"config error", "error", false, false, slog.LevelError},
		{"verbose wins", "error", true, false, slog.LevelDebug},
		{"quiet wins", "debug", false, true, slog.LevelError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			flagVerbose, flagQuiet = tt.verbose, tt.quiet
			assert.Equal(t, tt.want, effectiveLevel(tt.configured))
		})
	}
}

func TestBuildLogger_LevelFromConfig(t *testing.T) {
	isolate(t)

	flagVerbose, flagQuiet = false, false
	resolvedCfg = &config.Resolved{Config: *config.DefaultConfig()}
	resolvedCfg.Logging.LogLevel = "warn"

	logger := buildLogger(io.Discard)

	assert.True(t, logger.Handler().Enabled(context.Background(), slog.LevelWarn))
	assert.False(t, logger.Handler().Enabled(context.Background(), slog.LevelInfo))
}

func TestBuildLogger_AutoFormatIsJSONOffTerminal(t *testing.T) {
	isolate(t)

	flagVerbose, flagQuiet = false, false
	resolvedCfg = &config.Resolved{Config: *config.DefaultConfig()}

	var buf bytes.Buffer
	buildLogger(&buf).Info("hello", slog.String("k", "v"))

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "hello", line["msg"])
	assert.Equal(t, "v", line["k"])
}

func TestBuildLogger_TextFormat(t *testing.T) {
	isolate(t)

	flagVerbose, flagQuiet = false, false
	resolvedCfg = &config.Resolved{Config: *config.DefaultConfig()}
	resolvedCfg.Logging.LogFormat = "text"

	var buf bytes.Buffer
	buildLogger(&buf).Info("hello")

	assert.Contains(t, buf.String(), "msg=hello")
}

func TestUseJSONLogs(t *testing.T) {
	var buf bytes.Buffer

	assert.True(t, useJSONLogs("json", &buf))
	assert.False(t, useJSONLogs("text", &buf))
	assert.True(t, useJSONLogs("auto", &buf))

	f, err := os.CreateTemp(t.TempDir(), "log")
	require.NoError(t, err)
	defer f.Close()

	assert.True(t, useJSONLogs("auto", f), "a regular file is not a terminal")
}

func TestReloadLogLevel(t *testing.T) {
	isolate(t)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	flagVerbose, flagQuiet = false, false
	logLevel.Set(slog.LevelInfo)

	cfg := config.DefaultConfig()
	cfg.Logging.LogLevel = "debug"
	reloadLogLevel(cfg, logger)
	assert.Equal(t, slog.LevelDebug, logLevel.Level())

	// --quiet pins the level regardless of the file.
	flagQuiet = true
	logLevel.Set(slog.LevelError)
	reloadLogLevel(cfg, logger)
	assert.Equal(t, slog.LevelError, logLevel.Level())
}

// --- transport selection ---

func TestNewTransport_Selection(t *testing.T) {
	cfg := &config.Resolved{Config: *config.DefaultConfig()}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	_, isLive := newTransport(cfg, logger).(*graph.LiveTransport)
	assert.True(t, isLive)

	cfg.Graph.Mock = true
	_, isMock := newTransport(cfg, logger).(*graph.MockTransport)
	assert.True(t, isMock)

	assert.True(t, newService(cfg, logger).Mock())
}

func TestNewHTTPClient_TimeoutExceedsRequestDeadline(t *testing.T) {
	client := newHTTPClient(10 * time.Second)
	assert.Greater(t, client.Timeout, 10*time.Second)
}

// --- config show ---

func TestConfigShow_Text(t *testing.T) {
	isolate(t)

	var out bytes.Buffer

	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"--config", missingConfig(t), "--mock", "config", "show"})
	require.NoError(t, cmd.Execute())

	assert.Contains(t, out.String(), "[graph]")
	assert.Contains(t, out.String(), "# from flag")
}

func TestConfigShow_JSON(t *testing.T) {
	isolate(t)

	var out bytes.Buffer

	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"--config", missingConfig(t), "--json", "config", "show"})
	require.NoError(t, cmd.Execute())

	var got map[string]any
	require.NoError(t, json.Unmarshal(out.Bytes(), &got))
	assert.Equal(t, config.SourceDefault, got["mock_source"])
	assert.Contains(t, got, "server")
	assert.Contains(t, got, "graph")
	assert.Contains(t, got, "logging")
}

// --- serve ---

func TestServe_StopsWhenContextCanceled(t *testing.T) {
	isolate(t)

	ctx, cancel := context.WithCancel(context.Background())

	cmd := newRootCmd()
	cmd.SetArgs([]string{"--config", missingConfig(t), "--mock", "-q", "serve", "--listen", "127.0.0.1:0"})

	done := make(chan error, 1)

	go func() { done <- cmd.ExecuteContext(ctx) }()

	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("serve did not stop after cancel")
	}

	assert.Equal(t, "127.0.0.1:0", resolvedCfg.Server.ListenAddr)
}

func TestServe_ListenFailure(t *testing.T) {
	isolate(t)

	busy, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer busy.Close()

	cmd := newRootCmd()
	cmd.SetArgs([]string{"--config", missingConfig(t), "--mock", "-q", "serve", "--listen", busy.Addr().String()})

	err = cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "listening on")
}
