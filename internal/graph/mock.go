package graph

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"sync"
)

// Canned bodies served by MockTransport.
const (
	MockDownloadURL = "https://download_url.com"
	MockFileName    = "filename.ext"

	MockSuccessBody = `{"@odata.context":"https://graph.microsoft.com/v1.0/$metadata#users('some_guid')/drive/root/$entity",` +
		`"@microsoft.graph.downloadUrl":"https://download_url.com","name":"filename.ext"}`

	// MockErrorBody is a provider error as returned for an unparsable token.
	MockErrorBody = `{"error":{"code":"InvalidAuthenticationToken",` +
		`"message":"CompactToken parsing failed with error code: 80049217",` +
		`"innerError":{"date":"2023-10-11T14:16:36",` +
		`"request-id":"ad1110b0-cc67-47f1-99ae-c1ddcad4ea3e",` +
		`"client-request-id":"ad1110b0-cc67-47f1-99ae-c1ddcad4ea3e"}}}`
)

type mockRoute struct {
	suffix string
	status int
	body   string
}

// MockTransport answers GETs from a fixed table of URL suffixes and never
// touches the network. Requests it has no route for fail with a
// *MockRouteError. Routes are matched most recently registered first.
type MockTransport struct {
	mu     sync.RWMutex
	routes []mockRoute
	logger *slog.Logger
}

// NewMockTransport returns a mock serving MockSuccessBody for any URL that
// ends with SelectDownloadFields.
func NewMockTransport(logger *slog.Logger) *MockTransport {
	if logger == nil {
		logger = slog.Default()
	}

	return &MockTransport{
		routes: []mockRoute{{suffix: SelectDownloadFields, status: http.StatusOK, body: MockSuccessBody}},
		logger: logger,
	}
}

// Handle registers a canned reply for GET URLs ending with suffix.
func (m *MockTransport) Handle(suffix string, status int, body string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.routes = append(m.routes, mockRoute{suffix: suffix, status: status, body: body})
}

// Mock always reports true.
func (m *MockTransport) Mock() bool { return true }

// Get returns the canned reply whose suffix matches url.
func (m *MockTransport) Get(ctx context.Context, url string, _ http.Header) (*Response, error) {
	if err := ctx.Err(); err != nil {
		return nil, &TransportError{Method: http.MethodGet, URL: redactURL(url), Err: err}
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	for i := len(m.routes) - 1; i >= 0; i-- {
		r := m.routes[i]
		if strings.HasSuffix(url, r.suffix) {
			m.logger.Debug("serving canned response",
				slog.String("url", redactURL(url)),
				slog.Int("status", r.status),
			)

			return &Response{StatusCode: r.status, Body: []byte(r.body)}, nil
		}
	}

	m.logger.Error("mock transport has no route",
		slog.String("method", http.MethodGet),
		slog.String("url", redactURL(url)),
	)

	return nil, &MockRouteError{Method: http.MethodGet, URL: redactURL(url)}
}

// Post has no canned replies.
func (m *MockTransport) Post(_ context.Context, url string, _ []byte, _ string) (*Response, error) {
	return nil, &MockRouteError{Method: http.MethodPost, URL: redactURL(url)}
}
