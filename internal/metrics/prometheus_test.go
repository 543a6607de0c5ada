package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrometheus_ObserveProviderCall(t *testing.T) {
	p := NewPrometheus("test")

	p.ObserveProviderCall("generate", "success", 2*time.Second)
	p.ObserveProviderCall("generate", "success", time.Second)
	p.ObserveProviderCall("analyze", "error", time.Second)

	assert.Equal(t, 2.0, testutil.ToFloat64(p.providerCallsTotal.WithLabelValues("generate", "success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(p.providerCallsTotal.WithLabelValues("analyze", "error")))
	assert.Equal(t, 2, testutil.CollectAndCount(p.providerCallDuration))
}

func TestPrometheus_RecordRequest(t *testing.T) {
	p := NewPrometheus("test")

	p.RecordRequest("GET", "/api/platforms", 200, 5*time.Millisecond, 128)
	p.RecordRequest("POST", "/api/generate-prompt", 429, 50*time.Millisecond, 64)

	assert.Equal(t, 1.0, testutil.ToFloat64(p.httpRequestsTotal.WithLabelValues("GET", "/api/platforms", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(p.httpRequestsTotal.WithLabelValues("POST", "/api/generate-prompt", "429")))
}

func TestPrometheus_Handler(t *testing.T) {
	p := NewPrometheus("promptcrafting")
	p.ObserveProviderCall("analyze", "success", time.Second)

	rec := httptest.NewRecorder()
	p.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `promptcrafting_provider_calls_total{operation="analyze",result="success"} 1`)
	assert.Contains(t, body, "go_goroutines")
}
