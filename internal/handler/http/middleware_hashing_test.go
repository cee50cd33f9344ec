// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Agrostack

package http

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/agrostack/fieldsync/internal/app"
	"github.com/agrostack/fieldsync/internal/config"
	"github.com/agrostack/fieldsync/internal/logger"
	"github.com/agrostack/fieldsync/internal/service"
	"github.com/agrostack/fieldsync/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testHashKey = "field-shared-secret"

func newHashingHandler(t *testing.T) *Handler {
	t.Helper()
	return NewHandler(&service.Services{}, config.App{HashKey: testHashKey}, logger.Nop())
}

// runHashMiddleware routes body through verifyBodyHash and reports whether
// the inner handler ran and what body it saw.
func runHashMiddleware(h *Handler, body, hashHeaderValue string) (*httptest.ResponseRecorder, bool, string) {
	var nextCalled bool
	var seenBody string

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		nextCalled = true
		read, _ := io.ReadAll(r.Body)
		seenBody = string(read)
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodPost, "/api/v2/sync/push", strings.NewReader(body))
	if hashHeaderValue != "" {
		req.Header.Set(hashHeader, hashHeaderValue)
	}

	rr := httptest.NewRecorder()
	h.verifyBodyHash(next).ServeHTTP(rr, req)
	return rr, nextCalled, seenBody
}

func TestVerifyBodyHash_ValidHashPasses(t *testing.T) {
	h := newHashingHandler(t)

	body := `{"operations":[{"operation_id":"op-1"}]}`
	validHash := utils.HashString(body, testHashKey)

	rr, nextCalled, seenBody := runHashMiddleware(h, body, validHash)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.True(t, nextCalled)
	assert.Equal(t, body, seenBody, "body must be restored for the next handler")
}

func TestVerifyBodyHash_MismatchRejected(t *testing.T) {
	h := newHashingHandler(t)

	body := `{"operations":[{"operation_id":"op-1"}]}`
	wrongHash := utils.HashString(body+" tampered", testHashKey)

	rr, nextCalled, _ := runHashMiddleware(h, body, wrongHash)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, app.MsgBodyHashMismatch, strings.TrimSpace(rr.Body.String()))
	assert.False(t, nextCalled)
}

func TestVerifyBodyHash_MalformedHeaderRejected(t *testing.T) {
	h := newHashingHandler(t)

	rr, nextCalled, _ := runHashMiddleware(h, `{}`, "not-hex!")

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.False(t, nextCalled)
}

func TestVerifyBodyHash_NoHeaderPassesThrough(t *testing.T) {
	h := newHashingHandler(t)

	rr, nextCalled, seenBody := runHashMiddleware(h, `{"a":1}`, "")

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.True(t, nextCalled)
	assert.Equal(t, `{"a":1}`, seenBody)
}

func TestVerifyBodyHash_DisabledWithoutKey(t *testing.T) {
	h := NewHandler(&service.Services{}, config.App{}, logger.Nop())

	// even a bogus header passes when no key is configured
	rr, nextCalled, _ := runHashMiddleware(h, `{}`, "deadbeef")

	require.Equal(t, http.StatusOK, rr.Code)
	assert.True(t, nextCalled)
}
