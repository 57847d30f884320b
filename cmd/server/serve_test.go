package main

import (
	"context"
	"net"
	"net/http"
	"testing"
	"time"

	"github.com/comment-pr/internal/config"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServe_ShutdownDrainsInFlightRequests(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})
	requestCtxErr := make(chan error, 1)

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		close(started)
		<-release
		requestCtxErr <- r.Context().Err()
		w.WriteHeader(http.StatusCreated)
	})

	srv := newHTTPServer(&config.ServerConfig{
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 5 * time.Second,
	}, handler)

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	served := make(chan error, 1)
	go func() {
		served <- serve(ctx, srv, ln, 5*time.Second, zerolog.Nop())
	}()

	type result struct {
		status int
		err    error
	}
	responses := make(chan result, 1)
	go func() {
		resp, err := http.Post("http://"+ln.Addr().String()+"/", "application/x-www-form-urlencoded", nil)
		if err != nil {
			responses <- result{err: err}
			return
		}
		resp.Body.Close()
		responses <- result{status: resp.StatusCode}
	}()

	<-started
	// Same effect as SIGTERM arriving while the pipeline is running
	stop()
	time.Sleep(50 * time.Millisecond)
	close(release)

	assert.NoError(t, <-requestCtxErr, "in-flight request context must survive shutdown")

	res := <-responses
	require.NoError(t, res.err)
	assert.Equal(t, http.StatusCreated, res.status)

	select {
	case err := <-served:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}

func TestNewHTTPServer(t *testing.T) {
	srv := newHTTPServer(&config.ServerConfig{
		Port:         "9090",
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
	}, http.NotFoundHandler())

	assert.Equal(t, ":9090", srv.Addr)
	assert.Equal(t, 15*time.Second, srv.ReadTimeout)
	assert.Equal(t, 30*time.Second, srv.WriteTimeout)
	assert.Nil(t, srv.BaseContext)
}
