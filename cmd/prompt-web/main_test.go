package main

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewServerLeavesBodyAndResponseUnbounded(t *testing.T) {
	srv := newServer(3001, http.NotFoundHandler())

	assert.Equal(t, ":3001", srv.Addr)
	assert.Zero(t, srv.ReadTimeout, "slow uploads must not be cut off")
	assert.Zero(t, srv.WriteTimeout, "long analyses must not be cut off")
	assert.Equal(t, 10*time.Second, srv.ReadHeaderTimeout)
}

func TestNewServerCompressesResponses(t *testing.T) {
	body := make([]byte, 4096)
	for i := range body {
		body[i] = 'a'
	}
	srv := newServer(3001, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write(body)
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/platforms", nil)
	req.Header.Set("Accept-Encoding", "gzip")
	rec := httptest.NewRecorder()
	srv.Handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "gzip", rec.Header().Get("Content-Encoding"))
}
