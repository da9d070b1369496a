// Package lookup resolves a folder path and file name to a OneDrive download
// link. It translates the request into a driveItem-by-path URL, fetches it
// through a graph.Transport, classifies the raw body once, and assembles a
// normalized Response carrying either a Result or an APIError.
package lookup

// Request is a simplified "find this file" query.
type Request struct {
	FileName      string
	Path          string
	ShowAllFields bool
}

// Result is the success payload: the pre-authenticated download link and the
// name reported by the provider. DownloadURL embeds auth tokens; never log it.
type Result struct {
	DownloadURL   string
	FileName      string
	RequestedPath string
}

// InnerError carries the provider's diagnostic identifiers.
type InnerError struct {
	Date            string `json:"date"`
	RequestID       string `json:"request-id"`
	ClientRequestID string `json:"client-request-id"`
}

// APIError is the failure payload, either decoded from a provider error body
// or synthesized by the relay for failures that never reached the provider.
type APIError struct {
	Code       string     `json:"code"`
	Message    string     `json:"message"`
	InnerError InnerError `json:"innerError"`
}

// Error codes produced by the relay itself. Provider codes pass through as-is.
const (
	CodeParseFailure         = "ParseFailure"
	CodeTransportFailure     = "TransportFailure"
	CodeConfigurationError   = "ConfigurationError"
	CodeUnrecognizedResponse = "UnrecognizedResponse"
	CodeInvalidRequest       = "InvalidRequest"
	CodeInternalError        = "InternalError"
)

// Outcome says which branch of the pipeline produced a Response.
type Outcome int

const (
	OutcomeSuccess Outcome = iota
	OutcomeUpstreamError
	OutcomeParseFailure
	OutcomeTransportFailure
	OutcomeConfigurationError
	OutcomeInvalidRequest
	OutcomeInternalError
)

func (o Outcome) String() string {
	switch o {
	case OutcomeSuccess:
		return "success"
	case OutcomeUpstreamError:
		return "upstream_error"
	case OutcomeParseFailure:
		return "parse_failure"
	case OutcomeTransportFailure:
		return "transport_failure"
	case OutcomeConfigurationError:
		return "configuration_error"
	case OutcomeInvalidRequest:
		return "invalid_request"
	case OutcomeInternalError:
		return "internal_error"
	default:
		return "unknown"
	}
}

// Response is the normalized outcome of one lookup. Exactly one of Result and
// Error is non-nil. MockMode reports whether the mock transport served it.
type Response struct {
	MockMode bool
	Result   *Result
	Error    *APIError

	Outcome Outcome
	// UpstreamStatus is the provider's HTTP status, zero if no reply arrived.
	UpstreamStatus int
}

func errorResponse(mockMode bool, outcome Outcome, code, message string) Response {
	return Response{
		MockMode: mockMode,
		Error:    &APIError{Code: code, Message: message},
		Outcome:  outcome,
	}
}
