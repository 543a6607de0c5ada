package metrics

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"
)

func decodeLines(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()
	var docs []map[string]any
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		var doc map[string]any
		if err := json.Unmarshal([]byte(line), &doc); err != nil {
			t.Fatalf("failed to parse EMF line as JSON: %v\nLine: %s", err, line)
		}
		docs = append(docs, doc)
	}
	return docs
}

func TestNewTo_AutoDimension(t *testing.T) {
	initOnce.Do(func() {})
	functionName = "TestFunction"
	t.Cleanup(func() { functionName = "" })

	r := NewTo(&bytes.Buffer{}, "TestNamespace")
	if r.namespace != "TestNamespace" {
		t.Errorf("expected namespace TestNamespace, got %s", r.namespace)
	}
	if r.dimensions["FunctionName"] != "TestFunction" {
		t.Errorf("expected FunctionName dimension TestFunction, got %s", r.dimensions["FunctionName"])
	}
}

func TestRecorder_FlushOutput(t *testing.T) {
	initOnce.Do(func() {})
	functionName = ""

	var buf bytes.Buffer
	NewTo(&buf, Namespace).
		Dimension("Operation", "analyze").
		Metric("LatencyMs", 1234.5, UnitMilliseconds).
		Count("CallCount").
		Property("requestId", "abc-123").
		Flush()

	docs := decodeLines(t, &buf)
	if len(docs) != 1 {
		t.Fatalf("expected one EMF line, got %d", len(docs))
	}
	doc := docs[0]

	awsMap, ok := doc["_aws"].(map[string]any)
	if !ok {
		t.Fatal("missing _aws directive in EMF output")
	}
	if _, ok := awsMap["Timestamp"]; !ok {
		t.Error("missing Timestamp in _aws directive")
	}
	cwArr, ok := awsMap["CloudWatchMetrics"].([]any)
	if !ok || len(cwArr) == 0 {
		t.Fatal("CloudWatchMetrics should be a non-empty array")
	}
	cw := cwArr[0].(map[string]any)
	if cw["Namespace"] != Namespace {
		t.Errorf("expected namespace %s, got %v", Namespace, cw["Namespace"])
	}

	if doc["Operation"] != "analyze" {
		t.Errorf("expected Operation=analyze, got %v", doc["Operation"])
	}
	if doc["LatencyMs"] != 1234.5 {
		t.Errorf("expected LatencyMs=1234.5, got %v", doc["LatencyMs"])
	}
	if doc["CallCount"] != float64(1) {
		t.Errorf("expected CallCount=1, got %v", doc["CallCount"])
	}
	if doc["requestId"] != "abc-123" {
		t.Errorf("expected requestId=abc-123, got %v", doc["requestId"])
	}
}

func TestRecorder_FlushEmpty(t *testing.T) {
	var buf bytes.Buffer
	NewTo(&buf, "Test").Dimension("Op", "noop").Flush()
	if buf.Len() != 0 {
		t.Errorf("expected no output for empty recorder, got: %s", buf.String())
	}
}

func TestRecorder_Chaining(t *testing.T) {
	functionName = ""
	rec := NewTo(&bytes.Buffer{}, "Test").
		Dimension("Op", "test").
		Metric("Duration", 100, UnitMilliseconds).
		Count("Calls").
		Property("id", "xyz")

	if rec.dimensions["Op"] != "test" {
		t.Error("chaining Dimension failed")
	}
	if rec.values["Duration"] != float64(100) {
		t.Error("chaining Metric failed")
	}
	if m := rec.metrics["Calls"]; rec.values["Calls"] != float64(1) || m.Unit != UnitCount {
		t.Error("chaining Count failed")
	}
	if rec.properties["id"] != "xyz" {
		t.Error("chaining Property failed")
	}
}

func TestEMF_ObserveProviderCall(t *testing.T) {
	functionName = ""
	var buf bytes.Buffer
	e := &EMF{out: &buf}

	e.ObserveProviderCall("generate", "rate_limited", 1500*time.Millisecond)
	e.RecordRequest("POST", "/api/analyze-video", 400, 20*time.Millisecond, 64)

	docs := decodeLines(t, &buf)
	if len(docs) != 2 {
		t.Fatalf("expected two EMF lines, got %d", len(docs))
	}
	if docs[0]["Operation"] != "generate" || docs[0]["Result"] != "rate_limited" {
		t.Errorf("unexpected provider dimensions: %v", docs[0])
	}
	if docs[0]["ProviderLatencyMs"] != float64(1500) {
		t.Errorf("expected ProviderLatencyMs=1500, got %v", docs[0]["ProviderLatencyMs"])
	}
	if docs[1]["Path"] != "/api/analyze-video" || docs[1]["statusCode"] != float64(400) {
		t.Errorf("unexpected request document: %v", docs[1])
	}
}
