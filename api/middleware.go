package api

import (
	"bytes"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/vocdoni/davinci-attrenc/log"
)

// RequestIDHeader carries the identifier of a logged request back to the
// client, so that its log lines can be found.
const RequestIDHeader = "X-Request-Id"

// DisabledLogging turns the request logging middleware off globally.
var DisabledLogging = false

// RequestLogOptions configures the request logging middleware.
type RequestLogOptions struct {
	// MaxBody is the number of body bytes included in the log line.
	MaxBody int
	// SkipPrefixes lists URL path prefixes that are never logged.
	SkipPrefixes []string
}

// DefaultRequestLogOptions logs up to maxRequestBodyLog bytes of JSON
// bodies and skips health checks.
func DefaultRequestLogOptions() RequestLogOptions {
	return RequestLogOptions{
		MaxBody:      maxRequestBodyLog,
		SkipPrefixes: LogExcludedPrefixes,
	}
}

// skip reports whether r is left out of the logs. Requests are only logged
// at debug level.
func (o RequestLogOptions) skip(r *http.Request) bool {
	if DisabledLogging || log.Level() != log.LogLevelDebug {
		return true
	}
	for _, prefix := range o.SkipPrefixes {
		if strings.HasPrefix(r.URL.Path, prefix) {
			return true
		}
	}
	return false
}

// snippet returns the loggable form of a request body: JSON documents
// truncated to max bytes and without quotes, nothing for anything else.
func (o RequestLogOptions) snippet(body []byte) string {
	trimmed := bytes.TrimLeft(body, " \t\r\n")
	if len(trimmed) == 0 || (trimmed[0] != '{' && trimmed[0] != '[') {
		return ""
	}
	s := string(body)
	if len(s) > o.MaxBody {
		s = s[:o.MaxBody] + "..."
	}
	return strings.ReplaceAll(s, `"`, "")
}

// statusRecorder remembers the first status code and the number of bytes
// written through it.
type statusRecorder struct {
	http.ResponseWriter
	status int
	bytes  int
}

func (sr *statusRecorder) WriteHeader(code int) {
	if sr.status == 0 {
		sr.status = code
	}
	sr.ResponseWriter.WriteHeader(code)
}

func (sr *statusRecorder) Write(b []byte) (int, error) {
	if sr.status == 0 {
		sr.status = http.StatusOK
	}
	n, err := sr.ResponseWriter.Write(b)
	sr.bytes += n
	return n, err
}

// loggingMiddleware logs requests with the default options and the given
// body limit.
func loggingMiddleware(maxBody int) func(http.Handler) http.Handler {
	opts := DefaultRequestLogOptions()
	opts.MaxBody = maxBody
	return requestLogger(opts)
}

// requestLogger logs every request and its response status at debug level.
func requestLogger(opts RequestLogOptions) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if opts.skip(r) {
				next.ServeHTTP(w, r)
				return
			}
			start := time.Now()
			id := uuid.NewString()
			w.Header().Set(RequestIDHeader, id)

			var body string
			if r.Body != nil && r.ContentLength != 0 {
				raw, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxRequestBody))
				if err != nil {
					ErrMalformedBody.WithErr(err).Write(w)
					return
				}
				r.Body = io.NopCloser(bytes.NewReader(raw))
				body = opts.snippet(raw)
			}
			log.Debugw("api request", "id", id, "method", r.Method, "url", r.URL.String(), "body", body)

			rec := &statusRecorder{ResponseWriter: w}
			next.ServeHTTP(rec, r)
			log.Debugw("api response",
				"id", id,
				"method", r.Method,
				"url", r.URL.String(),
				"status", rec.status,
				"bytes", rec.bytes,
				"took", time.Since(start).String())
		})
	}
}
