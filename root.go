package main

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/rzvngherman/OneDrive-REST-API/internal/config"
)

// version is set at build time via ldflags.
var version = "dev"

// Global persistent flags, bound in newRootCmd().
var (
	flagConfigPath string
	flagMock       bool
	flagJSON       bool
	flagVerbose    bool
	flagQuiet      bool
)

// resolvedCfg holds the effective configuration loaded by PersistentPreRunE.
// It is available to all subcommands after the root pre-run phase completes.
var resolvedCfg *config.Resolved

// logLevel backs every logger built by buildLogger so a config reload can
// change the level of a running process.
var logLevel = new(slog.LevelVar)

// newRootCmd builds and returns the fully-assembled root command with all
// subcommands registered. Called once from main().
func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "onedrive-rest-api",
		Short: "OneDrive download-link relay",
		Long: "Resolves a folder path and file name to a OneDrive download link, " +
			"either as an HTTP service or as a one-shot command.",
		Version: version,
		// Silence Cobra's default error/usage printing; main handles it.
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return loadConfig(cmd)
		},
	}

	cmd.PersistentFlags().StringVar(&flagConfigPath, "config", "", "config file path")
	cmd.PersistentFlags().BoolVar(&flagMock, "mock", false, "serve canned responses instead of calling OneDrive")
	cmd.PersistentFlags().BoolVar(&flagJSON, "json", false, "output in JSON format")
	cmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "enable debug logging")
	cmd.PersistentFlags().BoolVarP(&flagQuiet, "quiet", "q", false, "only log errors")
	cmd.MarkFlagsMutuallyExclusive("verbose", "quiet")

	cmd.AddCommand(newServeCmd())
	cmd.AddCommand(newLookupCmd())
	cmd.AddCommand(newConfigCmd())

	return cmd
}

// loadConfig resolves the effective configuration from the four-layer override
// chain and stores the result in resolvedCfg for use by subcommands.
func loadConfig(cmd *cobra.Command) error {
	cli := config.CLIOverrides{
		ConfigPath: flagConfigPath,
	}

	// Only an explicit --mock or --mock=false overrides lower layers.
	if cmd.Flags().Changed("mock") {
		mock := flagMock
		cli.Mock = &mock
	}

	if f := cmd.Flags().Lookup("listen"); f != nil && f.Changed {
		cli.ListenAddr = f.Value.String()
	}

	resolved, err := config.Resolve(config.ReadEnvOverrides(), cli)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	resolvedCfg = resolved

	return nil
}

// effectiveLevel returns the level from config, overridden by --verbose and
// --quiet because CLI flags always win.
func effectiveLevel(configured string) slog.Level {
	level := slog.LevelInfo

	switch configured {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}

	if flagVerbose {
		level = slog.LevelDebug
	}

	if flagQuiet {
		level = slog.LevelError
	}

	return level
}

// buildLogger creates an slog.Logger writing to w, configured by the resolved
// config and CLI flags.
func buildLogger(w io.Writer) *slog.Logger {
	levelName, format := "info", "auto"
	if resolvedCfg != nil {
		levelName = resolvedCfg.Logging.LogLevel
		format = resolvedCfg.Logging.LogFormat
	}

	logLevel.Set(effectiveLevel(levelName))

	opts := &slog.HandlerOptions{Level: logLevel}
	if useJSONLogs(format, w) {
		return slog.New(slog.NewJSONHandler(w, opts))
	}

	return slog.New(slog.NewTextHandler(w, opts))
}

// useJSONLogs resolves log_format. "auto" means text for a person at a
// terminal and JSON for anything else.
func useJSONLogs(format string, w io.Writer) bool {
	switch format {
	case "json":
		return true
	case "text":
		return false
	}

	f, ok := w.(*os.File)
	if !ok {
		return true
	}

	return !isatty.IsTerminal(f.Fd()) && !isatty.IsCygwinTerminal(f.Fd())
}

// reloadLogLevel applies a changed logging.log_level to running loggers.
func reloadLogLevel(cfg *config.Config, logger *slog.Logger) {
	next := effectiveLevel(cfg.Logging.LogLevel)
	if next == logLevel.Level() {
		return
	}

	logger.Info("log level changed",
		slog.String("from", logLevel.Level().String()),
		slog.String("to", next.String()),
	)
	logLevel.Set(next)
}

// newHTTPClient returns the client shared by all upstream calls. Each call
// also carries its own deadline; the client timeout is a backstop.
func newHTTPClient(timeout time.Duration) *http.Client {
	return &http.Client{Timeout: timeout + httpClientSlack}
}

// httpClientSlack keeps the client backstop from racing the per-call
// deadline, which produces the clearer error.
const httpClientSlack = 5 * time.Second

// exitOnError prints a user-friendly error message to stderr and exits.
func exitOnError(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}
