package tracing

import (
	"bytes"
	"context"
	"strings"
	"testing"
)

func TestDisabled(t *testing.T) {
	if err := Init(false, nil); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	defer Shutdown(context.Background())

	ctx, span := StartSpan(context.Background(), "fetch")
	defer span.End()

	if span.IsRecording() {
		t.Error("span should not record when tracing is disabled")
	}
	if _, _, ok := GetTraceFields(ctx); ok {
		t.Error("GetTraceFields should report no trace when disabled")
	}
}

func TestEnabledExportsSpans(t *testing.T) {
	var buf bytes.Buffer
	if err := Init(true, &buf); err != nil {
		t.Fatalf("Init failed: %v", err)
	}

	ctx, span := StartSpan(context.Background(), "fundamentals.fetch")
	traceID, spanID, ok := GetTraceFields(ctx)
	if !ok || traceID == "" || spanID == "" {
		t.Errorf("GetTraceFields = %q, %q, %v", traceID, spanID, ok)
	}
	span.End()

	if err := Shutdown(context.Background()); err != nil {
		t.Fatalf("Shutdown failed: %v", err)
	}
	if Enabled() {
		t.Error("Enabled() should be false after Shutdown")
	}
	if !strings.Contains(buf.String(), "fundamentals.fetch") {
		t.Errorf("exported output missing span name: %q", buf.String())
	}
}
