package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResponseWriter_RecordsStatus(t *testing.T) {
	rr := httptest.NewRecorder()
	w := &responseWriter{ResponseWriter: rr}

	w.WriteHeader(http.StatusCreated)

	assert.Equal(t, http.StatusCreated, w.status)
	assert.Equal(t, http.StatusCreated, rr.Code)
}

func TestResponseWriter_SecondWriteHeaderDropped(t *testing.T) {
	rr := httptest.NewRecorder()
	w := &responseWriter{ResponseWriter: rr}

	w.WriteHeader(http.StatusNoContent)
	w.WriteHeader(http.StatusInternalServerError)

	assert.Equal(t, http.StatusNoContent, w.status, "first status wins")
	assert.Equal(t, http.StatusNoContent, rr.Code)
}

func TestResponseWriter_WriteImpliesOK(t *testing.T) {
	rr := httptest.NewRecorder()
	w := &responseWriter{ResponseWriter: rr}

	n, err := w.Write([]byte("payload"))
	require.NoError(t, err)

	assert.Equal(t, len("payload"), n)
	assert.Equal(t, http.StatusOK, w.status)
	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestResponseWriter_SizeAccumulates(t *testing.T) {
	rr := httptest.NewRecorder()
	w := &responseWriter{ResponseWriter: rr}

	w.WriteHeader(http.StatusOK)
	_, err := w.Write([]byte("first,"))
	require.NoError(t, err)
	_, err = w.Write([]byte("second"))
	require.NoError(t, err)

	assert.Equal(t, len("first,")+len("second"), w.size)
	assert.Equal(t, "first,second", rr.Body.String())
}

func TestResponseWriter_ErrorStatusThenBody(t *testing.T) {
	rr := httptest.NewRecorder()
	w := &responseWriter{ResponseWriter: rr}

	w.WriteHeader(http.StatusConflict)
	_, err := w.Write([]byte(`{"error":"version mismatch"}`))
	require.NoError(t, err)

	assert.Equal(t, http.StatusConflict, w.status, "Write after an explicit status must not reset it")
	assert.Equal(t, http.StatusConflict, rr.Code)
	assert.Equal(t, len(`{"error":"version mismatch"}`), w.size)
}

func TestResponseWriter_ZeroValueBeforeAnyWrite(t *testing.T) {
	w := &responseWriter{ResponseWriter: httptest.NewRecorder()}

	assert.Zero(t, w.status, "status stays zero until something is written")
	assert.Zero(t, w.size)
	assert.False(t, w.wroteHeader)
}

func TestResponseWriter_HeadersPassThrough(t *testing.T) {
	rr := httptest.NewRecorder()
	w := &responseWriter{ResponseWriter: rr}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)

	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))
}
