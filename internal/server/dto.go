package server

import "github.com/rzvngherman/OneDrive-REST-API/internal/lookup"

// Wire shapes for the inbound endpoint. Field names are part of the public
// contract and must not change.

type lookupRequestBody struct {
	FileName      string `json:"FileName"`
	Path          string `json:"Path"`
	ShowAllFields bool   `json:"ShowAllFields"`
}

// ResponseBody is the JSON reply of the lookup endpoint. Content and Error
// are mutually exclusive.
type ResponseBody struct {
	MockData bool         `json:"MockData"`
	Content  *ContentBody `json:"Content,omitempty"`
	Error    *ErrorBody   `json:"Error,omitempty"`
}

type ContentBody struct {
	DownloadURL   string `json:"DownloadUrl"`
	FileName      string `json:"FileName"`
	RequestedPath string `json:"RequestedPath"`
}

type ErrorBody struct {
	Code       string         `json:"Code"`
	Message    string         `json:"Message"`
	InnerError InnerErrorBody `json:"InnerError"`
}

type InnerErrorBody struct {
	Date            string `json:"date"`
	RequestID       string `json:"request-id"`
	ClientRequestID string `json:"client-request-id"`
}

type healthBody struct {
	Status string `json:"status"`
	Mock   bool   `json:"mock"`
}

// NewResponseBody converts a lookup outcome to its wire shape.
func NewResponseBody(resp lookup.Response) ResponseBody {
	out := ResponseBody{MockData: resp.MockMode}

	if resp.Result != nil {
		out.Content = &ContentBody{
			DownloadURL:   resp.Result.DownloadURL,
			FileName:      resp.Result.FileName,
			RequestedPath: resp.Result.RequestedPath,
		}

		return out
	}

	if resp.Error != nil {
		out.Error = newErrorBody(resp.Error.Code, resp.Error.Message)
		out.Error.InnerError = InnerErrorBody{
			Date:            resp.Error.InnerError.Date,
			RequestID:       resp.Error.InnerError.RequestID,
			ClientRequestID: resp.Error.InnerError.ClientRequestID,
		}
	}

	return out
}

func newErrorBody(code, message string) *ErrorBody {
	return &ErrorBody{Code: code, Message: message}
}
