package lookup

import (
	"encoding/json"

	"github.com/rzvngherman/OneDrive-REST-API/internal/graph"
)

// errorEnvelopeKey holds the provider's error object in failure bodies.
const errorEnvelopeKey = "error"

// Assemble turns a classified body into a Response. requestedPath is echoed
// back unchanged on success.
func Assemble(c Classification, mockMode bool, requestedPath string) Response {
	switch c.Kind {
	case KindSuccess:
		downloadURL, _ := c.Doc.Field(graph.DownloadURLKey)
		name, _ := c.Doc.Field(graph.NameKey)

		return Response{
			MockMode: mockMode,
			Result: &Result{
				DownloadURL:   downloadURL,
				FileName:      name,
				RequestedPath: requestedPath,
			},
			Outcome: OutcomeSuccess,
		}

	case KindFailure:
		apiErr, ok := decodeAPIError(c.Doc)
		if !ok {
			return errorResponse(mockMode, OutcomeUpstreamError, CodeUnrecognizedResponse,
				"upstream response carries neither a drive item nor an error object")
		}

		return Response{MockMode: mockMode, Error: apiErr, Outcome: OutcomeUpstreamError}

	default:
		msg := "upstream response is not a JSON object"
		if c.Err != nil {
			msg += ": " + c.Err.Error()
		}

		return errorResponse(mockMode, OutcomeParseFailure, CodeParseFailure, msg)
	}
}

// decodeAPIError reads the provider's error object. Field names match
// case-insensitively, as encoding/json does for struct tags.
func decodeAPIError(doc Document) (*APIError, bool) {
	raw, ok := doc.fields[errorEnvelopeKey]
	if !ok {
		return nil, false
	}

	var apiErr APIError
	if err := json.Unmarshal(raw, &apiErr); err != nil {
		return nil, false
	}

	return &apiErr, true
}
