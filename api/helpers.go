package api

import (
	"encoding/json"
	"mime"
	"net/http"
	"strconv"
	"strings"

	"github.com/fxamacker/cbor/v2"
	"github.com/vocdoni/davinci-attrenc/log"
)

const (
	mimeJSON = "application/json"
	mimeCBOR = "application/cbor"

	maxRequestBody = 1 << 20
)

// cborEnc sorts map keys canonically so that equal responses are byte equal.
var cborEnc = func() cbor.EncMode {
	em, err := cbor.CanonicalEncOptions().EncMode()
	if err != nil {
		panic(err)
	}
	return em
}()

// decodeJSON reads the JSON request body into v. On failure the error
// response has already been written and false is returned.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBody))
	if err := dec.Decode(v); err != nil {
		ErrMalformedBody.WithErr(err).Write(w)
		return false
	}
	return true
}

// httpWrite writes data as CBOR when the client accepts it and as JSON
// otherwise. A client accepting neither gets ErrNotAcceptable.
func httpWrite(w http.ResponseWriter, r *http.Request, data any) {
	switch mt, ok := responseType(r); {
	case !ok:
		ErrNotAcceptable.Withf("%q", r.Header.Get("Accept")).Write(w)
	case mt == mimeCBOR:
		httpWriteCBOR(w, data)
	default:
		httpWriteJSON(w, data)
	}
}

// httpWriteJSON writes data as a newline terminated JSON document.
func httpWriteJSON(w http.ResponseWriter, data any) {
	body, err := json.Marshal(data)
	if err != nil {
		ErrMarshalingServerJSONFailed.WithErr(err).Write(w)
		return
	}
	if !DisabledLogging && log.Level() == log.LogLevelDebug {
		log.Debugw("api response body", "bytes", len(body), "data", strings.ReplaceAll(string(body), `"`, ""))
	}
	writeBody(w, mimeJSON, append(body, '\n'))
}

// httpWriteCBOR writes data as a canonical CBOR item.
func httpWriteCBOR(w http.ResponseWriter, data any) {
	body, err := cborEnc.Marshal(data)
	if err != nil {
		ErrMarshalingServerCBORFailed.WithErr(err).Write(w)
		return
	}
	writeBody(w, mimeCBOR, body)
}

// httpWriteOK writes an empty 200 response.
func httpWriteOK(w http.ResponseWriter) {
	writeBody(w, "", []byte("\n"))
}

func writeBody(w http.ResponseWriter, contentType string, body []byte) {
	if contentType != "" {
		w.Header().Set("Content-Type", contentType)
	}
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(body); err != nil {
		log.Warnw("failed to write http response", "error", err)
	}
}

// responseType picks the response media type from the Accept header. CBOR
// wins whenever it is listed without q=0. A missing header means JSON.
func responseType(r *http.Request) (string, bool) {
	accept := strings.TrimSpace(r.Header.Get("Accept"))
	if accept == "" {
		return mimeJSON, true
	}
	jsonOK := false
	for _, part := range strings.Split(accept, ",") {
		mt, params, err := mime.ParseMediaType(strings.TrimSpace(part))
		if err != nil || refused(params) {
			continue
		}
		switch mt {
		case mimeCBOR:
			return mimeCBOR, true
		case mimeJSON, "application/*", "*/*":
			jsonOK = true
		}
	}
	return mimeJSON, jsonOK
}

// refused reports whether the Accept parameters carry a zero quality value.
func refused(params map[string]string) bool {
	q, ok := params["q"]
	if !ok {
		return false
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(q), 64)
	return err == nil && v == 0
}
