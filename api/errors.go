package api

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/vocdoni/davinci-attrenc/log"
)

// Error is used by handler functions to wrap errors, assigning a unique
// error code and also specifying which HTTP Status should be used.
type Error struct {
	Err        error
	Code       int
	HTTPstatus int
}

// MarshalJSON returns the error as the JSON envelope sent to clients.
func (e Error) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Err  string `json:"error"`
		Code int    `json:"code"`
	}{
		Err:  e.Err.Error(),
		Code: e.Code,
	})
}

// Error returns the message of the wrapped error.
func (e Error) Error() string {
	return e.Err.Error()
}

// Unwrap returns the wrapped error.
func (e Error) Unwrap() error {
	return e.Err
}

// Write serializes the error as JSON with the HTTP status of e.
func (e Error) Write(w http.ResponseWriter) {
	msg, err := json.Marshal(e)
	if err != nil {
		log.Warnw("failed to marshal API error", "error", err)
		http.Error(w, "marshal failed", http.StatusInternalServerError)
		return
	}
	log.Debugw("API error response", "error", e.Error(), "code", e.Code, "status", e.HTTPstatus)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(e.HTTPstatus)
	if _, err := w.Write(msg); err != nil {
		log.Warnw("failed to write API error", "error", err)
	}
}

// Withf returns a copy of e with a formatted suffix on the message.
func (e Error) Withf(format string, args ...any) Error {
	return Error{
		Err:        fmt.Errorf("%w: %s", e.Err, fmt.Sprintf(format, args...)),
		Code:       e.Code,
		HTTPstatus: e.HTTPstatus,
	}
}

// With returns a copy of e with s appended to the message.
func (e Error) With(s string) Error {
	return e.Withf("%s", s)
}

// WithErr returns a copy of e wrapping err as well.
func (e Error) WithErr(err error) Error {
	return Error{
		Err:        fmt.Errorf("%w: %w", e.Err, err),
		Code:       e.Code,
		HTTPstatus: e.HTTPstatus,
	}
}
