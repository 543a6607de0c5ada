package api

import (
	"net/http"
	"slices"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

// RequestRecorder receives one call per completed request.
// metrics.Prometheus and metrics.EMF implement it.
type RequestRecorder interface {
	RecordRequest(method, path string, status int, duration time.Duration, responseBytes int)
}

// statusRecorder wraps http.ResponseWriter to capture the status code and
// the number of body bytes written.
type statusRecorder struct {
	http.ResponseWriter
	statusCode int
	bytes      int
}

func (sr *statusRecorder) WriteHeader(code int) {
	sr.statusCode = code
	sr.ResponseWriter.WriteHeader(code)
}

func (sr *statusRecorder) Write(b []byte) (int, error) {
	n, err := sr.ResponseWriter.Write(b)
	sr.bytes += n
	return n, err
}

func (sr *statusRecorder) Unwrap() http.ResponseWriter {
	return sr.ResponseWriter
}

// WithLogging logs every /api/ request with its status and duration.
func WithLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasPrefix(r.URL.Path, "/api/") {
			next.ServeHTTP(w, r)
			return
		}
		start := time.Now()
		sr := &statusRecorder{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(sr, r)

		evt := log.Info()
		if sr.statusCode >= http.StatusInternalServerError {
			evt = log.Warn()
		}
		evt.
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", sr.statusCode).
			Dur("duration", time.Since(start)).
			Msg("API request")
	})
}

// DefaultAllowedOrigins are accepted when no allow-list is configured.
var DefaultAllowedOrigins = []string{"http://localhost:*", "http://127.0.0.1:*"}

// WithCORS answers preflight requests and sets CORS headers for origins in
// allowed. An entry of "*" allows any origin; an entry ending in ":*"
// matches any port on that host.
func WithCORS(allowed []string, next http.Handler) http.Handler {
	if len(allowed) == 0 {
		allowed = DefaultAllowedOrigins
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		if origin != "" && originAllowed(allowed, origin) {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
			w.Header().Add("Vary", "Origin")
		}
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func originAllowed(allowed []string, origin string) bool {
	if slices.Contains(allowed, "*") || slices.Contains(allowed, origin) {
		return true
	}
	for _, a := range allowed {
		if prefix, ok := strings.CutSuffix(a, ":*"); ok && strings.HasPrefix(origin, prefix+":") {
			return true
		}
	}
	return false
}

// WithMetrics reports every request to rec, keyed by a low-cardinality
// endpoint name.
func WithMetrics(rec RequestRecorder, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		sr := &statusRecorder{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(sr, r)
		rec.RecordRequest(r.Method, normalizeEndpoint(r.URL.Path), sr.statusCode, time.Since(start), sr.bytes)
	})
}

var knownEndpoints = []string{
	"/api/health",
	"/api/platforms",
	"/api/generate-prompt",
	"/api/analyze-video",
	"/metrics",
}

// normalizeEndpoint maps request paths to a fixed set of names so unknown
// paths cannot create unbounded metric series.
func normalizeEndpoint(path string) string {
	if slices.Contains(knownEndpoints, path) {
		return path
	}
	if strings.HasPrefix(path, "/api/") {
		return "/api/other"
	}
	return "static"
}
