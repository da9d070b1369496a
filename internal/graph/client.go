package graph

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"
)

// Client defaults.
const (
	DefaultRequestTimeout   = 30 * time.Second
	DefaultMaxResponseBytes = 1 << 20
	DefaultUserAgent        = "onedrive-rest-api/0.1"
)

// LiveOptions configures a LiveTransport. Zero values select the defaults.
type LiveOptions struct {
	RequestTimeout   time.Duration
	MaxResponseBytes int64
	UserAgent        string
}

// LiveTransport sends requests to the Graph API over HTTP.
// The underlying http.Client is shared and never mutated after construction;
// every call builds its own request and header set. There is no retry.
type LiveTransport struct {
	httpClient *http.Client
	logger     *slog.Logger
	timeout    time.Duration
	maxBody    int64
	userAgent  string
}

// NewLiveTransport creates a live transport. A nil httpClient uses
// http.DefaultClient; a nil logger uses slog.Default().
func NewLiveTransport(httpClient *http.Client, logger *slog.Logger, opts LiveOptions) *LiveTransport {
	if logger == nil {
		logger = slog.Default()
	}

	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	if opts.RequestTimeout <= 0 {
		opts.RequestTimeout = DefaultRequestTimeout
	}

	if opts.MaxResponseBytes <= 0 {
		opts.MaxResponseBytes = DefaultMaxResponseBytes
	}

	if opts.UserAgent == "" {
		opts.UserAgent = DefaultUserAgent
	}

	return &LiveTransport{
		httpClient: httpClient,
		logger:     logger,
		timeout:    opts.RequestTimeout,
		maxBody:    opts.MaxResponseBytes,
		userAgent:  opts.UserAgent,
	}
}

// Mock always reports false for the live transport.
func (t *LiveTransport) Mock() bool { return false }

// Get issues a GET with the given headers. Caller headers replace any
// default of the same name.
func (t *LiveTransport) Get(ctx context.Context, url string, header http.Header) (*Response, error) {
	return t.do(ctx, http.MethodGet, url, nil, header)
}

// Post issues a POST with the given body and content type.
func (t *LiveTransport) Post(ctx context.Context, url string, body []byte, contentType string) (*Response, error) {
	h := http.Header{}
	h.Set("Content-Type", contentType)

	return t.do(ctx, http.MethodPost, url, bytes.NewReader(body), h)
}

func (t *LiveTransport) do(
	ctx context.Context,
	method, url string,
	body io.Reader,
	header http.Header,
) (*Response, error) {
	ctx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, &TransportError{Method: method, URL: redactURL(url), Err: fmt.Errorf("creating request: %w", err)}
	}

	req.Header.Set("User-Agent", t.userAgent)

	for name, values := range header {
		req.Header[http.CanonicalHeaderKey(name)] = append([]string(nil), values...)
	}

	start := time.Now()

	resp, err := t.httpClient.Do(req)
	if err != nil {
		t.logger.Warn("upstream request failed",
			slog.String("method", method),
			slog.String("url", redactURL(url)),
			slog.Duration("elapsed", time.Since(start)),
			slog.String("error", err.Error()),
		)

		return nil, &TransportError{Method: method, URL: redactURL(url), Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, t.maxBody))
	if err != nil {
		return nil, &TransportError{Method: method, URL: redactURL(url), Err: fmt.Errorf("reading body: %w", err)}
	}

	out := &Response{
		StatusCode: resp.StatusCode,
		RequestID:  resp.Header.Get("request-id"),
		Body:       data,
	}

	attrs := []any{
		slog.String("method", method),
		slog.String("url", redactURL(url)),
		slog.Int("status", resp.StatusCode),
		slog.Duration("elapsed", time.Since(start)),
	}

	if out.OK() {
		t.logger.Debug("upstream request succeeded", attrs...)
	} else {
		if sentinel := ClassifyStatus(resp.StatusCode); sentinel != nil {
			attrs = append(attrs, slog.String("class", sentinel.Error()))
		}

		t.logger.Info("upstream returned error status", append(attrs, slog.String("request_id", out.RequestID))...)
	}

	return out, nil
}
