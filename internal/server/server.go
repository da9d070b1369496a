// Package server exposes the lookup pipeline over HTTP. It owns routing,
// request-id propagation, panic recovery, and the mapping from lookup
// outcomes to HTTP statuses; all decision logic lives in package lookup.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"golang.org/x/sync/errgroup"

	"github.com/rzvngherman/OneDrive-REST-API/internal/lookup"
)

// Route paths.
const (
	LookupPath = "/OneDrive/01-GetDownloadLinkOfFile"
	HealthPath = "/healthz"
)

// NewRouter builds the HTTP handler for svc. A nil logger uses
// slog.Default().
func NewRouter(svc Lookuper, logger *slog.Logger) http.Handler {
	if logger == nil {
		logger = slog.Default()
	}

	h := &handler{service: svc, logger: logger}

	mux := chi.NewRouter()
	mux.Use(RequestID, Logging(logger), Recovery(logger))

	mux.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, ResponseBody{
			MockData: svc.Mock(),
			Error:    newErrorBody(lookup.CodeInvalidRequest, "no route for "+r.URL.Path),
		})
	})
	mux.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusMethodNotAllowed, ResponseBody{
			MockData: svc.Mock(),
			Error:    newErrorBody(lookup.CodeInvalidRequest, r.Method+" is not allowed on "+r.URL.Path),
		})
	})

	mux.Post(LookupPath, h.getDownloadLink)
	mux.Get(HealthPath, h.health)

	return mux
}

// Options configures Run.
type Options struct {
	ReadHeaderTimeout time.Duration
	ShutdownTimeout   time.Duration
}

// Run serves handler on ln until ctx is canceled, then drains in-flight
// requests for at most opts.ShutdownTimeout. A listener failure also stops
// the server. Run returns nil on a clean shutdown.
func Run(ctx context.Context, ln net.Listener, handler http.Handler, opts Options, logger *slog.Logger) error {
	if logger == nil {
		logger = slog.Default()
	}

	srv := &http.Server{
		Handler:           handler,
		ReadHeaderTimeout: opts.ReadHeaderTimeout,
		ErrorLog:          slog.NewLogLogger(logger.Handler(), slog.LevelWarn),
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("listening", slog.String("addr", ln.Addr().String()))

		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("serving http: %w", err)
		}

		return nil
	})

	g.Go(func() error {
		<-gctx.Done()

		logger.Info("shutting down", slog.Duration("timeout", opts.ShutdownTimeout))

		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), opts.ShutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutting down http server: %w", err)
		}

		return nil
	})

	return g.Wait()
}
