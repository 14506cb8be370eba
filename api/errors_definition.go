//nolint:lll
package api

import (
	"fmt"
	"net/http"
)

// Error codes are part of the API contract. Codes 40001 and up are client
// errors answered with a 4xx status, codes 50001 and up are server errors.
// Append new codes after the last one of their range and never reuse a
// retired code.
var (
	ErrMalformedBody       = Error{Code: 40001, HTTPstatus: http.StatusBadRequest, Err: fmt.Errorf("malformed JSON body")}
	ErrUnknownBackend      = Error{Code: 40002, HTTPstatus: http.StatusBadRequest, Err: fmt.Errorf("unknown backend")}
	ErrUnknownKind         = Error{Code: 40003, HTTPstatus: http.StatusBadRequest, Err: fmt.Errorf("unknown attribute kind")}
	ErrMalformedInput      = Error{Code: 40004, HTTPstatus: http.StatusBadRequest, Err: fmt.Errorf("malformed attribute input")}
	ErrInvalidSchema       = Error{Code: 40005, HTTPstatus: http.StatusBadRequest, Err: fmt.Errorf("invalid attribute schema")}
	ErrMissingAttribute    = Error{Code: 40006, HTTPstatus: http.StatusBadRequest, Err: fmt.Errorf("missing attribute value")}
	ErrUnexpectedAttribute = Error{Code: 40007, HTTPstatus: http.StatusBadRequest, Err: fmt.Errorf("attribute not in schema")}
	ErrNotAcceptable       = Error{Code: 40008, HTTPstatus: http.StatusNotAcceptable, Err: fmt.Errorf("unsupported response media type")}

	ErrMarshalingServerJSONFailed = Error{Code: 50001, HTTPstatus: http.StatusInternalServerError, Err: fmt.Errorf("marshaling (server-side) JSON failed")}
	ErrMarshalingServerCBORFailed = Error{Code: 50002, HTTPstatus: http.StatusInternalServerError, Err: fmt.Errorf("marshaling (server-side) CBOR failed")}
	ErrGenericInternalServerError = Error{Code: 50003, HTTPstatus: http.StatusInternalServerError, Err: fmt.Errorf("internal server error")}
)
