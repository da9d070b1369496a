package server

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/rzvngherman/OneDrive-REST-API/internal/lookup"
)

// maxRequestBodyBytes bounds the inbound JSON body. A lookup body is three
// short fields.
const maxRequestBodyBytes = 64 << 10

// Lookuper is the part of lookup.Service the HTTP layer needs.
type Lookuper interface {
	Handle(ctx context.Context, req lookup.Request, authorization string) lookup.Response
	Mock() bool
}

type handler struct {
	service Lookuper
	logger  *slog.Logger
}

func (h *handler) getDownloadLink(w http.ResponseWriter, r *http.Request) {
	var body lookupRequestBody

	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBodyBytes))
	if err := dec.Decode(&body); err != nil {
		h.logger.Info("rejected malformed lookup body",
			slog.String("request_id", RequestIDFromContext(r.Context())),
			slog.String("error", err.Error()),
		)

		writeJSON(w, http.StatusBadRequest, ResponseBody{
			MockData: h.service.Mock(),
			Error:    newErrorBody(lookup.CodeInvalidRequest, invalidBodyMessage(err)),
		})

		return
	}

	resp := h.service.Handle(r.Context(), lookup.Request{
		FileName:      body.FileName,
		Path:          body.Path,
		ShowAllFields: body.ShowAllFields,
	}, r.Header.Get("Authorization"))

	writeJSON(w, statusFor(resp), NewResponseBody(resp))
}

func (h *handler) health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, healthBody{Status: "ok", Mock: h.service.Mock()})
}

func invalidBodyMessage(err error) string {
	var tooLarge *http.MaxBytesError

	switch {
	case errors.Is(err, io.EOF):
		return "request body is empty"
	case errors.As(err, &tooLarge):
		return "request body is too large"
	default:
		return "request body is not a valid lookup request"
	}
}

// statusFor maps a lookup outcome to the HTTP status of the reply. Provider
// errors keep the provider's status when it is an error status.
func statusFor(resp lookup.Response) int {
	switch resp.Outcome {
	case lookup.OutcomeSuccess:
		return http.StatusOK
	case lookup.OutcomeUpstreamError:
		if resp.UpstreamStatus >= http.StatusBadRequest && resp.UpstreamStatus <= 599 {
			return resp.UpstreamStatus
		}

		return http.StatusBadGateway
	case lookup.OutcomeParseFailure:
		return http.StatusBadGateway
	case lookup.OutcomeTransportFailure:
		return http.StatusServiceUnavailable
	case lookup.OutcomeInvalidRequest:
		return http.StatusBadRequest
	case lookup.OutcomeConfigurationError, lookup.OutcomeInternalError:
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
