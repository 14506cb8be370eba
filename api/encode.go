package api

import (
	"errors"
	"net/http"

	"github.com/vocdoni/davinci-attrenc/attribute"
	"github.com/vocdoni/davinci-attrenc/log"
)

// encode encodes a single attribute value.
// POST /encode
func (a *API) encode(w http.ResponseWriter, r *http.Request) {
	var req EncodeRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	enc, err := a.encoder(req.Backend)
	if err != nil {
		writeError(w, err)
		return
	}
	kind, err := attribute.ParseKind(string(req.Kind))
	if err != nil {
		writeError(w, err)
		return
	}

	key := cacheKey(enc.Backend().Type(), kind, req.Value)
	if cached, ok := a.cache.Get(key); ok {
		httpWrite(w, r, cached)
		return
	}
	// concurrent misses on the same key share one encoding
	v, err, _ := a.inflight.Do(key, func() (any, error) {
		el, err := enc.Encode(kind, req.Value)
		if err != nil {
			return nil, err
		}
		res := attribute.NewEncodedAttribute("", kind, el)
		a.cache.Add(key, res)
		return res, nil
	})
	if err != nil {
		writeError(w, err)
		return
	}
	httpWrite(w, r, v.(*attribute.EncodedAttribute))
}

// encodeSet encodes every attribute of a credential against its schema.
// POST /encode/set
func (a *API) encodeSet(w http.ResponseWriter, r *http.Request) {
	var req EncodeSetRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.Schema == nil {
		ErrInvalidSchema.With("missing schema").Write(w)
		return
	}
	enc, err := a.encoder(req.Backend)
	if err != nil {
		writeError(w, err)
		return
	}
	attrs, err := enc.EncodeSet(req.Schema, req.Values)
	if err != nil {
		writeError(w, err)
		return
	}
	log.Debugw("encoded attribute set",
		"backend", enc.Backend().Type(),
		"schema", req.Schema.Name,
		"attributes", len(attrs))
	httpWrite(w, r, &EncodeSetResponse{
		Backend:    enc.Backend().Type(),
		Schema:     req.Schema.Name,
		Attributes: attrs,
	})
}

func cacheKey(backend string, kind attribute.Kind, raw string) string {
	return backend + "/" + string(kind) + "/" + raw
}

// writeError maps encoder errors to their API error codes.
func writeError(w http.ResponseWriter, err error) {
	var apiErr Error
	switch {
	case errors.As(err, &apiErr):
		apiErr.Write(w)
	case errors.Is(err, attribute.ErrInvalidSchema):
		ErrInvalidSchema.WithErr(err).Write(w)
	case errors.Is(err, attribute.ErrMalformedInput):
		ErrMalformedInput.WithErr(err).Write(w)
	case errors.Is(err, attribute.ErrUnknownKind):
		ErrUnknownKind.WithErr(err).Write(w)
	case errors.Is(err, attribute.ErrMissingAttribute):
		ErrMissingAttribute.WithErr(err).Write(w)
	case errors.Is(err, attribute.ErrUnexpectedAttribute):
		ErrUnexpectedAttribute.WithErr(err).Write(w)
	default:
		ErrGenericInternalServerError.WithErr(err).Write(w)
	}
}
