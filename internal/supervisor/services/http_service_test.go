// Super Movie - Movie Info Aggregation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/supermovie

package services

import (
	"context"
	"errors"
	"io"
	"net"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/thejerf/suture/v4"
)

func TestAPIServer_Interface(t *testing.T) {
	var _ suture.Service = (*APIServer)(nil)
	var _ HTTPServer = (*http.Server)(nil)
}

// failingDrain holds its listener until Shutdown, then refuses to drain.
type failingDrain struct{ stop chan struct{} }

func (f *failingDrain) Serve(ln net.Listener) error {
	<-f.stop
	_ = ln.Close()
	return http.ErrServerClosed
}

func (f *failingDrain) Shutdown(context.Context) error {
	close(f.stop)
	return errors.New("requests still in flight")
}

func pingServer() *http.Server {
	return &http.Server{
		Handler: http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = io.WriteString(w, "pong")
		}),
		ReadHeaderTimeout: time.Second,
	}
}

func waitReady(t *testing.T, svc *APIServer) string {
	t.Helper()
	select {
	case <-svc.Ready():
		return svc.Addr()
	case <-time.After(2 * time.Second):
		t.Fatal("listener was not bound")
		return ""
	}
}

func TestNewAPIServer_Defaults(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   time.Duration
		want time.Duration
	}{
		{0, 10 * time.Second},
		{-5 * time.Second, 10 * time.Second},
		{3 * time.Second, 3 * time.Second},
	}
	for _, tt := range tests {
		if got := NewAPIServer(pingServer(), ":0", tt.in).drain; got != tt.want {
			t.Errorf("NewAPIServer(drain=%v).drain = %v, want %v", tt.in, got, tt.want)
		}
	}

	svc := NewAPIServer(pingServer(), ":0", 0)
	if svc.String() != "supermovie-api" {
		t.Errorf("String() = %q", svc.String())
	}
	if svc.Addr() != "" {
		t.Errorf("Addr() before Serve = %q, want empty", svc.Addr())
	}
}

func TestAPIServer_ServesAndDrains(t *testing.T) {
	t.Parallel()

	svc := NewAPIServer(pingServer(), "127.0.0.1:0", time.Second)
	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- svc.Serve(ctx) }()

	addr := waitReady(t, svc)
	if strings.HasSuffix(addr, ":0") {
		t.Fatalf("Addr() = %q, want the bound port", addr)
	}

	resp, err := http.Get("http://" + addr + "/")
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	body, _ := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	if string(body) != "pong" {
		t.Errorf("body = %q", body)
	}

	cancel()
	select {
	case err := <-errCh:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("Serve() = %v, want context.Canceled", err)
		}
	case <-time.After(3 * time.Second):
		t.Fatal("Serve did not return after cancel")
	}

	if _, err := net.DialTimeout("tcp", addr, 200*time.Millisecond); err == nil {
		t.Error("listener still accepting after drain")
	}
}

func TestAPIServer_Failures(t *testing.T) {
	t.Parallel()

	t.Run("port already bound", func(t *testing.T) {
		t.Parallel()

		taken, err := net.Listen("tcp", "127.0.0.1:0")
		if err != nil {
			t.Fatalf("listen: %v", err)
		}
		defer taken.Close()

		svc := NewAPIServer(pingServer(), taken.Addr().String(), time.Second)
		err = svc.Serve(context.Background())
		if err == nil || !strings.Contains(err.Error(), "api listen on "+taken.Addr().String()) {
			t.Errorf("Serve() = %v, want a listen error naming the address", err)
		}
		select {
		case <-svc.Ready():
			t.Error("Ready closed without a listener")
		default:
		}
	})

	t.Run("drain failure is reported", func(t *testing.T) {
		t.Parallel()

		svc := NewAPIServer(&failingDrain{stop: make(chan struct{})}, "127.0.0.1:0", time.Second)
		ctx, cancel := context.WithCancel(context.Background())
		errCh := make(chan error, 1)
		go func() { errCh <- svc.Serve(ctx) }()

		waitReady(t, svc)
		cancel()

		select {
		case err := <-errCh:
			if err == nil || !strings.Contains(err.Error(), "api drain: requests still in flight") {
				t.Errorf("Serve() = %v, want the drain error", err)
			}
		case <-time.After(3 * time.Second):
			t.Fatal("Serve did not return")
		}
	})
}

func TestAPIServer_UnderSupervisor(t *testing.T) {
	t.Parallel()

	svc := NewAPIServer(pingServer(), "127.0.0.1:0", time.Second)
	sup := suture.New("api-test", suture.Spec{
		FailureThreshold: 3,
		FailureBackoff:   10 * time.Millisecond,
		Timeout:          2 * time.Second,
	})
	sup.Add(svc)

	ctx, cancel := context.WithCancel(context.Background())
	errCh := sup.ServeBackground(ctx)

	addr := waitReady(t, svc)
	resp, err := http.Get("http://" + addr + "/")
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	_ = resp.Body.Close()

	cancel()
	select {
	case <-errCh:
	case <-time.After(3 * time.Second):
		t.Fatal("supervisor did not stop")
	}
}
