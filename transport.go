package main

import (
	"log/slog"

	"github.com/rzvngherman/OneDrive-REST-API/internal/config"
	"github.com/rzvngherman/OneDrive-REST-API/internal/graph"
	"github.com/rzvngherman/OneDrive-REST-API/internal/lookup"
)

// newTransport picks the transport once for the life of the process.
func newTransport(cfg *config.Resolved, logger *slog.Logger) graph.Transport {
	if cfg.Graph.Mock {
		return graph.NewMockTransport(logger)
	}

	timeout := cfg.Graph.RequestTimeoutDuration()

	return graph.NewLiveTransport(newHTTPClient(timeout), logger, graph.LiveOptions{
		RequestTimeout:   timeout,
		MaxResponseBytes: cfg.Graph.MaxResponseBytes(),
		UserAgent:        cfg.Graph.UserAgent,
	})
}

// newService wires the lookup pipeline from the resolved config.
func newService(cfg *config.Resolved, logger *slog.Logger) *lookup.Service {
	translator := lookup.NewTranslator(cfg.Graph.RootAddress, cfg.Graph.EscapePathSegments)

	return lookup.NewService(translator, newTransport(cfg, logger), logger)
}
