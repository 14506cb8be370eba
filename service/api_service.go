// Package service wraps the long running components of attrenc with a
// Start/Stop lifecycle.
package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/vocdoni/davinci-attrenc/api"
	"github.com/vocdoni/davinci-attrenc/log"
)

// ErrAlreadyRunning is returned by Start on a running service.
var ErrAlreadyRunning = errors.New("service already running")

const stopTimeout = 5 * time.Second

// APIService runs the encoding API until stopped or until the context given
// to Start is done. It can be restarted after Stop.
type APIService struct {
	conf api.APIConfig

	mu   sync.Mutex
	srv  *api.API
	stop context.CancelFunc
}

// NewAPI returns a stopped service for conf. Request logging is turned off
// globally when disableLogging is set.
func NewAPI(conf api.APIConfig, disableLogging bool) *APIService {
	if disableLogging {
		api.DisabledLogging = true
		log.Debugw("API request logging disabled")
	}
	return &APIService{conf: conf}
}

// Start binds the listener and serves in the background. Configuration and
// bind errors are returned immediately.
func (s *APIService) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stop != nil {
		return ErrAlreadyRunning
	}

	runCtx, stop := context.WithCancel(ctx)
	conf := s.conf
	srv, err := api.New(runCtx, &conf)
	if err != nil {
		stop()
		return fmt.Errorf("failed to start API server: %w", err)
	}
	s.srv, s.stop = srv, stop
	log.Infow("API service started",
		"addr", srv.Addr().String(),
		"defaultBackend", conf.DefaultBackend,
		"backends", conf.Backends,
		"cacheSize", conf.CacheSize)
	return nil
}

// Stop shuts the server down and returns once its address is free again.
// It is a no-op on a stopped service.
func (s *APIService) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stop == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), stopTimeout)
	defer cancel()
	if err := s.srv.Close(ctx); err != nil {
		log.Warnw("API service stop failed", "error", err)
	}
	s.stop()
	s.srv, s.stop = nil, nil
}

// Addr returns the listening address, or "" when stopped.
func (s *APIService) Addr() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.srv == nil {
		return ""
	}
	return s.srv.Addr().String()
}
