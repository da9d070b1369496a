package lookup

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/rzvngherman/OneDrive-REST-API/internal/graph"
)

// Service runs the lookup pipeline. It holds only immutable collaborators and
// is safe for concurrent use.
type Service struct {
	translator *Translator
	transport  graph.Transport
	logger     *slog.Logger
}

// NewService wires a Service. A nil logger uses slog.Default().
func NewService(translator *Translator, transport graph.Transport, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}

	return &Service{
		translator: translator,
		transport:  transport,
		logger:     logger,
	}
}

// Mock reports whether the service is backed by the mock transport.
func (s *Service) Mock() bool {
	return s.transport.Mock()
}

// Handle resolves req using authorization as the upstream Authorization
// header. Failures are reported in the returned Response, never as a panic or
// a Go error.
func (s *Service) Handle(ctx context.Context, req Request, authorization string) Response {
	mock := s.transport.Mock()

	url, err := s.translator.URL(req)
	if err != nil {
		s.logger.Info("rejected lookup request",
			slog.String("path", req.Path),
			slog.String("error", err.Error()),
		)

		return errorResponse(mock, OutcomeInvalidRequest, CodeInvalidRequest, err.Error())
	}

	header := http.Header{}
	if authorization != "" {
		header.Set("Authorization", authorization)
	}

	upstream, err := s.transport.Get(ctx, url, header)
	if err != nil {
		return s.transportFailure(mock, req, err)
	}

	c := Classify(upstream.Body)
	resp := Assemble(c, mock, req.Path)
	resp.UpstreamStatus = upstream.StatusCode

	attrs := []any{
		slog.String("path", req.Path),
		slog.String("file_name", req.FileName),
		slog.Bool("mock", mock),
		slog.Int("upstream_status", upstream.StatusCode),
		slog.String("outcome", resp.Outcome.String()),
	}

	if resp.Error != nil {
		attrs = append(attrs, slog.String("code", resp.Error.Code))
		if upstream.RequestID != "" {
			attrs = append(attrs, slog.String("request_id", upstream.RequestID))
		}

		s.logger.Warn("lookup failed", attrs...)

		return resp
	}

	s.logger.Info("lookup succeeded", attrs...)

	return resp
}

func (s *Service) transportFailure(mock bool, req Request, err error) Response {
	attrs := []any{
		slog.String("path", req.Path),
		slog.String("file_name", req.FileName),
		slog.Bool("mock", mock),
		slog.String("error", err.Error()),
	}

	switch {
	case errors.Is(err, graph.ErrNoMockRoute):
		s.logger.Error("mock transport misconfigured", attrs...)

		return errorResponse(mock, OutcomeConfigurationError, CodeConfigurationError,
			"mock transport has no canned response for this request")
	case errors.Is(err, graph.ErrTransport):
		s.logger.Warn("upstream unreachable", attrs...)

		return errorResponse(mock, OutcomeTransportFailure, CodeTransportFailure,
			"upstream service unavailable")
	default:
		s.logger.Error("unexpected transport error", attrs...)

		return errorResponse(mock, OutcomeInternalError, CodeInternalError, "internal error")
	}
}
