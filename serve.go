package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/rzvngherman/OneDrive-REST-API/internal/config"
	"github.com/rzvngherman/OneDrive-REST-API/internal/server"
)

var (
	flagListen  string
	flagPIDFile string
)

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP relay",
		Long: `Run the HTTP relay until SIGINT or SIGTERM.

POST /OneDrive/01-GetDownloadLinkOfFile resolves a file to its download link.
GET /healthz reports liveness and whether the mock transport is active.

A first signal drains in-flight requests for up to server.shutdown_timeout;
a second signal exits immediately.`,
		Args: cobra.NoArgs,
		RunE: runServe,
	}

	cmd.Flags().StringVar(&flagListen, "listen", "", "listen address (host:port), overrides server.listen_addr")
	cmd.Flags().StringVar(&flagPIDFile, "pid-file", "", "write the process ID here and refuse to start if another relay holds it")

	return cmd
}

func runServe(cmd *cobra.Command, _ []string) error {
	if resolvedCfg == nil {
		return errors.New("no configuration loaded")
	}

	cfg := resolvedCfg
	logger := buildLogger(os.Stderr)
	base, stop := context.WithCancel(cmd.Context())
	defer stop()

	ctx := shutdownContext(base, logger)

	if flagPIDFile != "" {
		cleanup, err := writePIDFile(flagPIDFile)
		if err != nil {
			return err
		}
		defer cleanup()
	}

	ln, err := net.Listen("tcp", cfg.Server.ListenAddr)
	if err != nil {
		return fmt.Errorf("listening on %s: %w", cfg.Server.ListenAddr, err)
	}

	svc := newService(cfg, logger)

	logger.Info("starting relay",
		slog.String("version", version),
		slog.Bool("mock", svc.Mock()),
		slog.String("mock_source", cfg.MockSource),
		slog.String("root_address", cfg.Graph.RootAddress),
	)

	if svc.Mock() {
		logger.Warn("mock transport active; responses are canned")
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return server.Run(gctx, ln, server.NewRouter(svc, logger), server.Options{
			ReadHeaderTimeout: cfg.Server.ReadHeaderTimeoutDuration(),
			ShutdownTimeout:   cfg.Server.ShutdownTimeoutDuration(),
		}, logger)
	})

	if _, statErr := os.Stat(cfg.Path); statErr == nil {
		g.Go(func() error {
			// Losing the watcher only loses live log-level changes.
			if err := config.Watch(gctx, cfg.Path, logger, func(c *config.Config) {
				reloadLogLevel(c, logger)
			}); err != nil {
				logger.Warn("config watcher stopped", slog.String("error", err.Error()))
			}

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}

	logger.Info("relay stopped")

	return nil
}
