package api

import (
	"net/http"

	"github.com/vocdoni/davinci-attrenc/attribute"
	"github.com/vocdoni/davinci-attrenc/types"
)

// NewBackendInfo returns the encoding constants of the encoder's backend.
func NewBackendInfo(enc *attribute.Encoder, isDefault bool) BackendInfo {
	b := enc.Backend()
	return BackendInfo{
		Type:             b.Type(),
		Size:             b.Size(),
		ZeroBits:         b.ZeroBits(),
		Max:              new(types.BigInt).SetBigInt(b.Max()),
		ZeroCenter:       new(types.BigInt).SetBigInt(enc.ZeroCenter().BigInt()),
		PositiveInfinity: new(types.BigInt).SetBigInt(enc.PositiveInfinity().BigInt()),
		Default:          isDefault,
	}
}

// backends lists the enabled backends with their encoding constants.
// GET /backends
func (a *API) backends(w http.ResponseWriter, r *http.Request) {
	resp := BackendsResponse{Kinds: attribute.Kinds()}
	for _, name := range a.order {
		resp.Backends = append(resp.Backends, NewBackendInfo(a.encoders[name], name == a.defaultBackend))
	}
	httpWrite(w, r, resp)
}
