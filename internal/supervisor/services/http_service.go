// Super Movie - Movie Info Aggregation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/supermovie

// Package services adapts long-running components to suture.Service.
package services

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/tomtom215/supermovie/internal/logging"
)

// HTTPServer is the part of *http.Server the API service drives.
type HTTPServer interface {
	Serve(l net.Listener) error
	Shutdown(ctx context.Context) error
}

// APIServer serves the Super Movie API under the supervisor tree. It binds
// the listener itself, so a port conflict fails the service before any
// request is accepted and the bound address is known (addr may use port 0).
//
//	api := services.NewAPIServer(server, cfg.Server.Addr(), 10*time.Second)
//	tree.AddAPIService(api)
type APIServer struct {
	server HTTPServer
	addr   string
	drain  time.Duration
	listen func(network, address string) (net.Listener, error)

	mu        sync.Mutex
	boundAddr string
	ready     chan struct{}
	readyOnce sync.Once
}

// NewAPIServer returns a service that serves server on addr. In-flight
// requests get drain to finish on shutdown; non-positive means 10s.
func NewAPIServer(server HTTPServer, addr string, drain time.Duration) *APIServer {
	if drain <= 0 {
		drain = 10 * time.Second
	}
	return &APIServer{
		server: server,
		addr:   addr,
		drain:  drain,
		listen: net.Listen,
		ready:  make(chan struct{}),
	}
}

// Ready is closed once the first listener is bound.
func (s *APIServer) Ready() <-chan struct{} {
	return s.ready
}

// Addr is the address of the most recent listener, empty before Ready.
func (s *APIServer) Addr() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.boundAddr
}

// Serve implements suture.Service. It returns ctx.Err() after a clean drain.
// Bind, serve, and drain failures are returned wrapped so the supervisor
// can back off and restart.
func (s *APIServer) Serve(ctx context.Context) error {
	ln, err := s.listen("tcp", s.addr)
	if err != nil {
		return fmt.Errorf("api listen on %s: %w", s.addr, err)
	}

	s.mu.Lock()
	s.boundAddr = ln.Addr().String()
	s.mu.Unlock()
	s.readyOnce.Do(func() { close(s.ready) })
	logging.Info().Str("service", s.String()).Str("addr", ln.Addr().String()).Msg("Super Movie API listening")

	served := make(chan error, 1)
	go func() { served <- s.server.Serve(ln) }()

	select {
	case err := <-served:
		if err == nil || errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("api serve: %w", err)

	case <-ctx.Done():
		logging.Info().Str("service", s.String()).Dur("drain", s.drain).Msg("Draining Super Movie API")

		// ctx is already done; the drain needs its own deadline.
		drainCtx, cancel := context.WithTimeout(context.Background(), s.drain)
		defer cancel()

		if err := s.server.Shutdown(drainCtx); err != nil {
			return fmt.Errorf("api drain: %w", err)
		}
		<-served
		return ctx.Err()
	}
}

// String names the service in supervisor logs.
func (s *APIServer) String() string {
	return "supermovie-api"
}
