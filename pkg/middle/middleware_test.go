package middle

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestChainRequestIDAndLogging(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)

	var seen string
	h := Chain(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = RequestID(r.Context())
		w.WriteHeader(http.StatusTeapot)
	}), RequestIDMiddleware, LoggingMiddleware(zap.New(core)))

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/v1/runs", nil))

	if !strings.HasPrefix(seen, "req-") {
		t.Fatalf("request id not in context: %q", seen)
	}
	if rr.Header().Get("X-Request-ID") != seen {
		t.Errorf("header id %q differs from context id %q", rr.Header().Get("X-Request-ID"), seen)
	}

	entries := logs.FilterMessage("Request completed").All()
	if len(entries) != 1 {
		t.Fatalf("got %d log entries", len(entries))
	}
	fields := entries[0].ContextMap()
	if fields["request_id"] != seen || fields["status"] != int64(http.StatusTeapot) {
		t.Errorf("unexpected fields: %v", fields)
	}
}

func TestLoggingMiddlewareRecovers(t *testing.T) {
	core, logs := observer.New(zapcore.ErrorLevel)
	h := LoggingMiddleware(zap.New(core))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))

	if rr.Code != http.StatusInternalServerError {
		t.Errorf("status = %d", rr.Code)
	}
	if logs.FilterMessage("Internal Server Error").Len() != 1 {
		t.Error("panic not logged")
	}
}

func TestRequestIDEmpty(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if id := RequestID(req.Context()); id != "" {
		t.Errorf("RequestID = %q, want empty", id)
	}
}
