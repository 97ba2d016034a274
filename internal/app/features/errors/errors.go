// internal/app/features/errors/errors.go

// Package errors centralizes the JSON error responses the API returns
// and the logging that goes with them. Handlers never build error
// bodies by hand; they classify the failure and call one of these.
package errors

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"
)

// Responder writes JSON error bodies and logs the underlying cause.
// The logged error never leaks into the response body.
type Responder struct {
	log *zap.Logger
}

// NewResponder constructs a Responder with the given logger.
func NewResponder(log *zap.Logger) *Responder {
	return &Responder{log: log}
}

type errorBody struct {
	Error string `json:"error"`
}

func (e *Responder) write(w http.ResponseWriter, code int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(errorBody{Error: msg})
}

// BadRequest responds 400 with the given message.
func (e *Responder) BadRequest(w http.ResponseWriter, r *http.Request, msg string) {
	e.log.Debug("bad request",
		zap.String("path", r.URL.Path),
		zap.String("reason", msg))
	e.write(w, http.StatusBadRequest, msg)
}

// Unauthorized responds 401.
func (e *Responder) Unauthorized(w http.ResponseWriter, r *http.Request) {
	e.write(w, http.StatusUnauthorized, "unauthorized")
}

// Forbidden responds 403.
func (e *Responder) Forbidden(w http.ResponseWriter, r *http.Request) {
	e.write(w, http.StatusForbidden, "forbidden")
}

// NotFound responds 404 with the given message.
func (e *Responder) NotFound(w http.ResponseWriter, r *http.Request, msg string) {
	e.write(w, http.StatusNotFound, msg)
}

// Conflict responds 409 with the given message.
func (e *Responder) Conflict(w http.ResponseWriter, r *http.Request, msg string) {
	e.write(w, http.StatusConflict, msg)
}

// TooManyRequests responds 429 with the given message.
func (e *Responder) TooManyRequests(w http.ResponseWriter, r *http.Request, msg string) {
	e.log.Warn("rate limited",
		zap.String("path", r.URL.Path))
	e.write(w, http.StatusTooManyRequests, msg)
}

// Unavailable responds 503 for store failures. The cause is logged at
// error level; the client only learns the store was unreachable.
func (e *Responder) Unavailable(w http.ResponseWriter, r *http.Request, err error) {
	e.log.Error("store unavailable",
		zap.String("path", r.URL.Path),
		zap.Error(err))
	e.write(w, http.StatusServiceUnavailable, "service unavailable")
}

// Internal responds 500 for everything that is not the store's fault.
func (e *Responder) Internal(w http.ResponseWriter, r *http.Request, err error) {
	e.log.Error("internal error",
		zap.String("path", r.URL.Path),
		zap.Error(err))
	e.write(w, http.StatusInternalServerError, "internal error")
}
