package api

// Route constants for the API endpoints
const (
	PingEndpoint      = "/ping"       // GET: Health check
	BackendsEndpoint  = "/backends"   // GET: List backends and their constants
	EncodeEndpoint    = "/encode"     // POST: Encode a single attribute value
	EncodeSetEndpoint = "/encode/set" // POST: Encode the attributes of a credential
)

// LogExcludedPrefixes are the URL path prefixes the logging middleware
// ignores.
var LogExcludedPrefixes = []string{PingEndpoint}
