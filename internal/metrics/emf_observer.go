package metrics

import (
	"io"
	"os"
	"time"
)

// EMF emits request and provider-call metrics as EMF documents.
type EMF struct {
	out io.Writer
}

// NewEMF returns an EMF emitter writing to stdout.
func NewEMF() *EMF {
	return &EMF{out: os.Stdout}
}

// ObserveProviderCall records one call to a text or video provider.
func (e *EMF) ObserveProviderCall(operation, result string, duration time.Duration) {
	NewTo(e.out, Namespace).
		Dimension("Operation", operation).
		Dimension("Result", result).
		Metric("ProviderLatencyMs", float64(duration.Milliseconds()), UnitMilliseconds).
		Count("ProviderCalls").
		Flush()
}

// RecordRequest records one HTTP request served through the API.
func (e *EMF) RecordRequest(method, path string, status int, duration time.Duration, responseBytes int) {
	NewTo(e.out, Namespace).
		Dimension("Path", path).
		Metric("RequestLatencyMs", float64(duration.Milliseconds()), UnitMilliseconds).
		Metric("ResponseBytes", float64(responseBytes), UnitBytes).
		Count("RequestCount").
		Property("method", method).
		Property("statusCode", status).
		Flush()
}
