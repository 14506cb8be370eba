// Package api exposes the attribute encoder over HTTP, so that issuers and
// holders written in other languages obtain exactly the same domain integers
// as the Go library.
package api

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/vocdoni/davinci-attrenc/attribute"
	"github.com/vocdoni/davinci-attrenc/crypto/domain/backends"
	"github.com/vocdoni/davinci-attrenc/log"
	"golang.org/x/sync/singleflight"
)

const (
	maxRequestBodyLog = 512 // Maximum length of request body to log
	shutdownTimeout   = 5 * time.Second
	// DefaultCacheSize is the number of encodings memoized when the
	// configuration does not set one.
	DefaultCacheSize = 4096
)

// APIConfig type represents the configuration for the API HTTP server.
type APIConfig struct {
	Host string
	Port int
	// DefaultBackend is used by requests that do not name a backend.
	DefaultBackend string
	// Backends restricts the enabled backends, all of them if empty.
	Backends []string
	// CacheSize is the number of memoized single value encodings.
	CacheSize int
}

// API type represents the API HTTP server.
type API struct {
	router         *chi.Mux
	encoders       map[string]*attribute.Encoder
	order          []string
	defaultBackend string
	cache          *lru.Cache[string, *attribute.EncodedAttribute]
	inflight       singleflight.Group
	server         *http.Server
	listener       net.Listener
	addr           net.Addr
	closeOnce      sync.Once
	closeErr       error
}

// New creates a new API instance with the given configuration, binds its
// listener and serves in the background. The server is shut down when ctx is
// done.
func New(ctx context.Context, conf *APIConfig) (*API, error) {
	a, err := newAPI(conf)
	if err != nil {
		return nil, err
	}
	ln, err := net.Listen("tcp", net.JoinHostPort(conf.Host, strconv.Itoa(conf.Port)))
	if err != nil {
		return nil, fmt.Errorf("could not listen: %w", err)
	}
	a.listener, a.addr = ln, ln.Addr()
	a.server = &http.Server{
		Handler:           a.router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	log.Infow("starting API server", "addr", a.addr.String())
	go func() {
		if err := a.server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Errorw(err, "API server failed")
		}
	}()
	go func() {
		<-ctx.Done()
		sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := a.Close(sctx); err != nil {
			log.Warnw("API server shutdown failed", "error", err)
		}
	}()
	return a, nil
}

// Close shuts the server down and waits until its listener is released and
// the in-flight requests are done, or ctx expires. Later calls return the
// result of the first one.
func (a *API) Close(ctx context.Context) error {
	a.closeOnce.Do(func() {
		a.closeErr = a.server.Shutdown(ctx)
		// Serve may not have taken ownership of the listener yet
		if err := a.listener.Close(); err != nil && !errors.Is(err, net.ErrClosed) && a.closeErr == nil {
			a.closeErr = err
		}
		if a.closeErr == nil {
			log.Infow("API server stopped", "addr", a.addr.String())
		}
	})
	return a.closeErr
}

// newAPI builds the encoders and the router without serving.
func newAPI(conf *APIConfig) (*API, error) {
	if conf == nil {
		return nil, fmt.Errorf("missing API configuration")
	}
	enabled := conf.Backends
	if len(enabled) == 0 {
		enabled = backends.Backends()
	}
	a := &API{
		encoders:       make(map[string]*attribute.Encoder, len(enabled)),
		defaultBackend: conf.DefaultBackend,
	}
	if a.defaultBackend == "" {
		a.defaultBackend = backends.Default
	}
	for _, name := range enabled {
		b, err := backends.New(name)
		if err != nil {
			return nil, err
		}
		enc, err := attribute.NewEncoder(b)
		if err != nil {
			return nil, fmt.Errorf("could not create encoder: %w", err)
		}
		a.encoders[name] = enc
		a.order = append(a.order, name)
	}
	if _, ok := a.encoders[a.defaultBackend]; !ok {
		return nil, fmt.Errorf("default backend %q is not enabled", a.defaultBackend)
	}

	size := conf.CacheSize
	if size <= 0 {
		size = DefaultCacheSize
	}
	cache, err := lru.New[string, *attribute.EncodedAttribute](size)
	if err != nil {
		return nil, fmt.Errorf("could not create encoding cache: %w", err)
	}
	a.cache = cache

	a.initRouter()
	return a, nil
}

// Addr returns the address the server listens on, nil if it was not
// started with New.
func (a *API) Addr() net.Addr {
	return a.addr
}

// Router returns the chi router for testing purposes
func (a *API) Router() *chi.Mux {
	return a.router
}

// encoder returns the encoder of the named backend, or of the default one
// if name is empty.
func (a *API) encoder(name string) (*attribute.Encoder, error) {
	if name == "" {
		name = a.defaultBackend
	}
	enc, ok := a.encoders[name]
	if !ok {
		return nil, ErrUnknownBackend.Withf("%q, available: %v", name, a.order)
	}
	return enc, nil
}

// registerHandlers registers all the HTTP handlers for the API endpoints.
func (a *API) registerHandlers() {
	// The following endpoints are registered:
	// - GET /ping: No parameters
	// - GET /backends: No parameters
	// - POST /encode: No parameters
	// - POST /encode/set: No parameters
	log.Infow("register handler", "endpoint", PingEndpoint, "method", "GET")
	a.router.Get(PingEndpoint, func(w http.ResponseWriter, r *http.Request) {
		httpWriteOK(w)
	})
	log.Infow("register handler", "endpoint", BackendsEndpoint, "method", "GET")
	a.router.Get(BackendsEndpoint, a.backends)
	log.Infow("register handler", "endpoint", EncodeEndpoint, "method", "POST")
	a.router.Post(EncodeEndpoint, a.encode)
	log.Infow("register handler", "endpoint", EncodeSetEndpoint, "method", "POST")
	a.router.Post(EncodeSetEndpoint, a.encodeSet)
}

// initRouter creates the router with all the routes and middleware.
func (a *API) initRouter() {
	a.router = chi.NewRouter()
	a.router.Use(cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}).Handler)
	a.router.Use(loggingMiddleware(maxRequestBodyLog))
	a.router.Use(middleware.Recoverer)
	a.router.Use(middleware.Throttle(100))
	a.router.Use(middleware.Timeout(30 * time.Second))

	a.registerHandlers()
}
