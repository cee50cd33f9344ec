package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/agrostack/fieldsync/internal/logger"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// accessLogLine is the shape of one withLogging entry, decoded from the
// captured zerolog output.
type accessLogLine struct {
	Method   string  `json:"method"`
	URI      string  `json:"uri"`
	Status   int     `json:"status"`
	Size     int     `json:"size"`
	Duration float64 `json:"duration"`
}

// serveLogged runs one request through withLogging with a buffer-backed
// logger in context and decodes the emitted line.
func serveLogged(t *testing.T, method, path string, next http.Handler) (accessLogLine, *httptest.ResponseRecorder) {
	t.Helper()

	var buf bytes.Buffer
	l := zerolog.New(&buf)

	req := httptest.NewRequest(method, path, nil)
	req = req.WithContext(l.WithContext(req.Context()))

	rr := httptest.NewRecorder()
	withLogging(next).ServeHTTP(rr, req)

	require.NotZero(t, buf.Len(), "one access log line expected")
	var line accessLogLine
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	return line, rr
}

func TestWithLogging_RecordsRequestLine(t *testing.T) {
	tests := []struct {
		name       string
		method     string
		path       string
		status     int
		body       string
		wantStatus int
	}{
		{"pull changes", http.MethodGet, "/api/v2/sync/changes?since=42", http.StatusOK, `{"changes":[]}`, http.StatusOK},
		{"push accepted", http.MethodPost, "/api/v2/sync/push", http.StatusCreated, "ok", http.StatusCreated},
		{"record deleted", http.MethodDelete, "/api/v2/records/sample/s-9", http.StatusNoContent, "", http.StatusNoContent},
		{"unknown entity", http.MethodGet, "/api/v2/records/harvester", http.StatusNotFound, "not found", http.StatusNotFound},
		{"server fault", http.MethodGet, "/api/v2/sync/log", http.StatusInternalServerError, "boom", http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				if tt.body != "" {
					_, _ = w.Write([]byte(tt.body))
				}
			})

			line, rr := serveLogged(t, tt.method, tt.path, next)

			assert.Equal(t, tt.wantStatus, rr.Code)
			assert.Equal(t, tt.method, line.Method)
			assert.Equal(t, tt.path, line.URI, "query string must survive in the logged URI")
			assert.Equal(t, tt.wantStatus, line.Status)
			assert.Equal(t, len(tt.body), line.Size)
		})
	}
}

func TestWithLogging_ImplicitOKLoggedAs200(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("implicit"))
	})

	line, rr := serveLogged(t, http.MethodGet, "/api/v2/health", next)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, http.StatusOK, line.Status)
	assert.Equal(t, len("implicit"), line.Size)
}

func TestWithLogging_SizeAccumulatesAcrossWrites(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(strings.Repeat("a", 700)))
		_, _ = w.Write([]byte(strings.Repeat("b", 324)))
	})

	line, _ := serveLogged(t, http.MethodGet, "/api/v2/sync/changes", next)
	assert.Equal(t, 1024, line.Size)
}

func TestWithLogging_DurationCoversHandlerTime(t *testing.T) {
	const delay = 60 * time.Millisecond
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(delay)
		w.WriteHeader(http.StatusOK)
	})

	line, _ := serveLogged(t, http.MethodGet, "/api/v2/sync/push", next)
	assert.GreaterOrEqual(t, line.Duration, float64(delay.Milliseconds()),
		"zerolog renders Dur in milliseconds; the handler slept %v", delay)
}

func TestWithLogging_PanicNotSuppressed(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("handler blew up")
	})

	var buf bytes.Buffer
	l := zerolog.New(&buf)
	req := httptest.NewRequest(http.MethodGet, "/api/v2/health", nil)
	req = req.WithContext(l.WithContext(req.Context()))

	assert.Panics(t, func() {
		withLogging(next).ServeHTTP(httptest.NewRecorder(), req)
	}, "recovery belongs to the Recoverer middleware, not the access log")
}

func TestWithLogging_NopLoggerDoesNotPanic(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	nop := logger.Nop()
	req := httptest.NewRequest(http.MethodGet, "/api/v2/health", nil)
	req = req.WithContext(nop.Logger.WithContext(req.Context()))

	rr := httptest.NewRecorder()
	assert.NotPanics(t, func() {
		withLogging(next).ServeHTTP(rr, req)
	})
	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestWithLogging_ConcurrentRequests(t *testing.T) {
	mw := withLogging(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			var buf bytes.Buffer
			l := zerolog.New(&buf)
			req := httptest.NewRequest(http.MethodGet, "/api/v2/sync/changes", nil)
			req = req.WithContext(l.WithContext(req.Context()))

			rr := httptest.NewRecorder()
			mw.ServeHTTP(rr, req)

			assert.Equal(t, http.StatusOK, rr.Code)
			assert.Contains(t, buf.String(), `"status":200`)
		}()
	}
	wg.Wait()
}
