package logging

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"go.uber.org/zap"
)

func TestContextLogger(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := New(&buf, "prod", "debug")
	ctx := ContextWithLogger(context.Background(), logger.With(zap.Uint64("request_id", 7)))

	Or(ctx, nil).Debug("hello")
	if !strings.Contains(buf.String(), `"request_id":7`) {
		t.Fatalf("expected request-scoped field in %q", buf.String())
	}

	fallback := zap.NewNop()
	if got := Or(context.Background(), fallback); got != fallback {
		t.Fatalf("expected fallback logger without context logger")
	}
	if got := Or(context.Background(), nil); got != zap.L() {
		t.Fatalf("expected global logger without context or fallback")
	}
}

func TestNewUsesJSONInProd(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	New(&buf, "prod", "info").Info("started", zap.String("port", "8080"))
	if !strings.HasPrefix(buf.String(), "{") || !strings.Contains(buf.String(), `"port":"8080"`) {
		t.Fatalf("expected JSON output, got %q", buf.String())
	}

	buf.Reset()
	New(&buf, "prod", "warn").Info("dropped")
	if buf.Len() != 0 {
		t.Fatalf("info should be filtered at warn level, got %q", buf.String())
	}

	buf.Reset()
	New(&buf, "dev", "info").Info("console")
	if strings.HasPrefix(buf.String(), "{") || !strings.Contains(buf.String(), "console") {
		t.Fatalf("expected console output in dev, got %q", buf.String())
	}
}
