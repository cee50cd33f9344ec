package http

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/agrostack/fieldsync/internal/logger"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestHandler builds a Handler with a nop logger.
func newTestHandler() *Handler {
	return &Handler{logger: logger.Nop()}
}

func runTraceID(t *testing.T, incoming string, next http.Handler) *httptest.ResponseRecorder {
	t.Helper()
	if next == nil {
		next = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		})
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v2/sync/changes", nil)
	if incoming != "" {
		req.Header.Set(traceIDHeader, incoming)
	}
	rr := httptest.NewRecorder()
	newTestHandler().withTraceID(next).ServeHTTP(rr, req)
	return rr
}

func TestWithTraceID_EchoesCallerID(t *testing.T) {
	tests := []struct {
		name     string
		incoming string
	}{
		{"device-minted opaque ID", "device-7f3a-round-12"},
		{"UUID from caller", "550e8400-e29b-41d4-a716-446655440000"},
		{"long caller ID survives", "retry-attempt-3-very-long-correlation-token-0123456789abcdef"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := runTraceID(t, tt.incoming, nil)
			assert.Equal(t, tt.incoming, rr.Header().Get(traceIDHeader))
		})
	}
}

func TestWithTraceID_MintsUUIDWhenAbsent(t *testing.T) {
	rr := runTraceID(t, "", nil)

	id := rr.Header().Get(traceIDHeader)
	require.NotEmpty(t, id)
	_, err := uuid.Parse(id)
	assert.NoError(t, err, "minted trace ID should be a UUID, got %q", id)
}

func TestWithTraceID_MintedIDsAreUnique(t *testing.T) {
	seen := make(map[string]struct{})
	for i := 0; i < 100; i++ {
		id := runTraceID(t, "", nil).Header().Get(traceIDHeader)
		require.NotEmpty(t, id)
		_, dup := seen[id]
		require.False(t, dup, "duplicate trace ID %q", id)
		seen[id] = struct{}{}
	}
}

func TestWithTraceID_LoggerReachableDownstream(t *testing.T) {
	var got *logger.Logger
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = logger.FromRequest(r)
		w.WriteHeader(http.StatusOK)
	})

	runTraceID(t, "corr-42", next)
	require.NotNil(t, got, "downstream handlers must find the request logger in context")
}

func TestWithTraceID_HandlerStatusPreserved(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})

	rr := runTraceID(t, "", next)
	assert.Equal(t, http.StatusTeapot, rr.Code)
	assert.NotEmpty(t, rr.Header().Get(traceIDHeader), "header is set before the handler runs")
}

func TestWithTraceID_ConcurrentRequests(t *testing.T) {
	h := newTestHandler()
	mw := h.withTraceID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	const n = 50
	ids := make(chan string, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			req := httptest.NewRequest(http.MethodGet, "/api/v2/health", nil)
			rr := httptest.NewRecorder()
			mw.ServeHTTP(rr, req)
			ids <- rr.Header().Get(traceIDHeader)
		}()
	}
	wg.Wait()
	close(ids)

	seen := make(map[string]struct{})
	for id := range ids {
		require.NotEmpty(t, id)
		seen[id] = struct{}{}
	}
	assert.Len(t, seen, n, "every request gets its own trace ID")
}
