package graph

import (
	"context"
	"net/http"
	"strings"
)

// Graph API addressing and annotation keys used by driveItem-by-path lookups.
const (
	// DefaultRootAddress is the signed-in user's endpoint on Graph v1.0.
	DefaultRootAddress = "https://graph.microsoft.com/v1.0/me"
	// DriveRootSegment addresses an item by path under the drive root.
	DriveRootSegment = "drive/root:"
	// SelectDownloadFields limits the response to the download link and name.
	SelectDownloadFields = "?select=@microsoft.graph.downloadUrl,name"

	ContextKey     = "@odata.context"
	DownloadURLKey = "@microsoft.graph.downloadUrl" //nolint:gosec // annotation name, not a credential
	NameKey        = "name"
)

// Transport performs raw requests against the Graph API. Implementations
// must be safe for concurrent use and must not retain per-call state:
// headers are supplied on every call.
type Transport interface {
	Get(ctx context.Context, url string, header http.Header) (*Response, error)
	Post(ctx context.Context, url string, body []byte, contentType string) (*Response, error)
	// Mock reports whether responses are canned rather than fetched.
	Mock() bool
}

// Response is a raw upstream reply. The body is returned for every status
// code; interpreting it is the caller's job.
type Response struct {
	StatusCode int
	RequestID  string
	Body       []byte
}

// OK reports whether the status code is 2xx.
func (r *Response) OK() bool {
	return r.StatusCode >= http.StatusOK && r.StatusCode < http.StatusMultipleChoices
}

// redactURL strips the query string so logged URLs never carry select
// clauses or pre-authenticated tokens.
func redactURL(u string) string {
	if i := strings.IndexByte(u, '?'); i >= 0 {
		return u[:i]
	}

	return u
}
