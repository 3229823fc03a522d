// Package v1handler implements version 1 of the HTTP API: synchronous URI
// parsing, extraction and domain splitting, plus asynchronous document
// management backed by the extractor service.
package v1handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"urix/internal/extractor"
	"urix/pkg/logger"
	"urix/pkg/serrors"
)

// DefaultLimit is the page size used when a list request does not specify one.
const DefaultLimit = 20

// Deps carries the services the handlers delegate to.
type Deps struct {
	Extractor extractor.Extractor
}

type Handler struct {
	deps Deps
}

func New(deps Deps) *Handler {
	return &Handler{deps: deps}
}

// ErrorResponse is the JSON body returned for every failed request.
type ErrorResponse struct {
	// Code is the semantic error kind, e.g. "INVALID_URI".
	Code string `json:"code"`
	// Message is a human-readable description of the failure.
	Message string `json:"message"`
}

// ErrorStatusCode pairs an HTTP status with the error response body.
type ErrorStatusCode struct {
	StatusCode int
	Response   ErrorResponse
}

// kindStatuses maps semantic error kinds to HTTP status codes. Kinds not
// listed here are reported as opaque internal errors.
var kindStatuses = map[serrors.Kind]int{
	serrors.ErrInvalidURI:   http.StatusBadRequest,
	serrors.ErrBadRequest:   http.StatusBadRequest,
	serrors.ErrUnauthorized: http.StatusUnauthorized,
	serrors.ErrForbidden:    http.StatusForbidden,
	serrors.ErrNotFound:     http.StatusNotFound,
	serrors.ErrUnavailable:  http.StatusServiceUnavailable,
	serrors.ErrTimeout:      http.StatusGatewayTimeout,
}

// kindMessages provides fallback messages for semantic errors without one.
var kindMessages = map[serrors.Kind]string{
	serrors.ErrInvalidURI:   "invalid URI",
	serrors.ErrBadRequest:   "bad request",
	serrors.ErrUnauthorized: "unauthorized",
	serrors.ErrForbidden:    "forbidden",
	serrors.ErrNotFound:     "resource not found",
	serrors.ErrUnavailable:  "service unavailable",
	serrors.ErrTimeout:      "request timed out",
}

func internalError() *ErrorStatusCode {
	return &ErrorStatusCode{
		StatusCode: http.StatusInternalServerError,
		Response: ErrorResponse{
			Code:    serrors.ErrInternal.Error(),
			Message: "internal error",
		},
	}
}

func newError(err error) *ErrorStatusCode {
	var k serrors.Kind
	if !errors.As(err, &k) {
		return internalError()
	}

	status, ok := kindStatuses[k]
	if !ok {
		return internalError()
	}

	var msg string
	var serr *serrors.Error
	if errors.As(err, &serr) {
		msg = serr.Message()
	}
	if msg == "" {
		msg = kindMessages[k]
	}

	return &ErrorStatusCode{
		StatusCode: status,
		Response: ErrorResponse{
			Code:    k.Error(),
			Message: msg,
		},
	}
}

// NewError maps an error to the HTTP status and body it should be reported
// with. Semantic kinds translate to their status code; any other error is
// reported as an opaque internal error so details never leak to clients.
func (h Handler) NewError(ctx context.Context, err error) *ErrorStatusCode {
	logger.Error(ctx, err.Error())

	return newError(err)
}

// writeError logs err and writes its mapped status and JSON body.
func writeError(ctx context.Context, w http.ResponseWriter, err error) {
	logger.Error(ctx, err.Error())

	e := newError(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(e.StatusCode)
	_ = json.NewEncoder(w).Encode(e.Response)
}

// writeJSON writes v as the JSON response body with the given status.
func writeJSON(ctx context.Context, w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error(ctx, "could not encode response: "+err.Error())
	}
}

// readJSON decodes the request body into dst, rejecting unknown fields.
func readJSON(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return serrors.Wrap(serrors.ErrBadRequest, err, "invalid request body")
	}

	return nil
}
