// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Agrostack

package http

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"testing"

	"github.com/agrostack/fieldsync/internal/config"
	"github.com/agrostack/fieldsync/internal/logger"
	"github.com/agrostack/fieldsync/internal/service"
	"github.com/agrostack/fieldsync/internal/utils"
	"github.com/agrostack/fieldsync/models"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"
)

// ─────────────────────────────────────────────
// Service mocks
// ─────────────────────────────────────────────

// mockAuthService implements service.AuthService for unit tests.
// Each method field can be overridden per test case.
type mockAuthService struct {
	registerUserFn func(ctx context.Context, creds models.Credentials) (models.User, error)
	loginFn        func(ctx context.Context, creds models.Credentials) (models.User, error)
	createTokenFn  func(ctx context.Context, user models.User) (models.Token, error)
	parseTokenFn   func(ctx context.Context, tokenString string) (models.Token, error)
}

func (m *mockAuthService) RegisterUser(ctx context.Context, creds models.Credentials) (models.User, error) {
	return m.registerUserFn(ctx, creds)
}

func (m *mockAuthService) Login(ctx context.Context, creds models.Credentials) (models.User, error) {
	return m.loginFn(ctx, creds)
}

func (m *mockAuthService) CreateToken(ctx context.Context, user models.User) (models.Token, error) {
	return m.createTokenFn(ctx, user)
}

func (m *mockAuthService) ParseToken(ctx context.Context, tokenString string) (models.Token, error) {
	return m.parseTokenFn(ctx, tokenString)
}

// mockSyncService implements service.SyncService for unit tests.
type mockSyncService struct {
	applyPushFn func(ctx context.Context, userID int64, req models.PushRequest) (models.PushResponse, error)
	changesFn   func(ctx context.Context, userID int64, query models.RecordQuery) (models.ChangesResponse, error)
	logFn       func(ctx context.Context, userID int64, limit int) ([]models.SyncLogEntry, error)
}

func (m *mockSyncService) ApplyPush(ctx context.Context, userID int64, req models.PushRequest) (models.PushResponse, error) {
	return m.applyPushFn(ctx, userID, req)
}

func (m *mockSyncService) Changes(ctx context.Context, userID int64, query models.RecordQuery) (models.ChangesResponse, error) {
	return m.changesFn(ctx, userID, query)
}

func (m *mockSyncService) Log(ctx context.Context, userID int64, limit int) ([]models.SyncLogEntry, error) {
	return m.logFn(ctx, userID, limit)
}

// mockRecordService implements service.RecordService for unit tests.
type mockRecordService struct {
	listRecordsFn func(ctx context.Context, userID int64, query models.RecordQuery) ([]models.Record, int64, error)
	getRecordFn   func(ctx context.Context, userID int64, entityType models.EntityType, entityID string) (models.Record, error)
	putRecordFn   func(ctx context.Context, userID int64, entityType models.EntityType, entityID string, payload json.RawMessage, baseVersion int64) (models.Record, error)
}

func (m *mockRecordService) ListRecords(ctx context.Context, userID int64, query models.RecordQuery) ([]models.Record, int64, error) {
	return m.listRecordsFn(ctx, userID, query)
}

func (m *mockRecordService) GetRecord(ctx context.Context, userID int64, entityType models.EntityType, entityID string) (models.Record, error) {
	return m.getRecordFn(ctx, userID, entityType, entityID)
}

func (m *mockRecordService) PutRecord(ctx context.Context, userID int64, entityType models.EntityType, entityID string, payload json.RawMessage, baseVersion int64) (models.Record, error) {
	return m.putRecordFn(ctx, userID, entityType, entityID, payload, baseVersion)
}

// mockAttachmentService implements service.AttachmentService for unit tests.
type mockAttachmentService struct {
	uploadFn   func(ctx context.Context, userID int64, attachment models.Attachment, data io.Reader) (models.Attachment, error)
	downloadFn func(ctx context.Context, userID int64, attachmentID string) (models.Attachment, io.ReadCloser, error)
	listFn     func(ctx context.Context, userID int64, entityType models.EntityType, entityID string) ([]models.Attachment, error)
}

func (m *mockAttachmentService) Upload(ctx context.Context, userID int64, attachment models.Attachment, data io.Reader) (models.Attachment, error) {
	return m.uploadFn(ctx, userID, attachment, data)
}

func (m *mockAttachmentService) Download(ctx context.Context, userID int64, attachmentID string) (models.Attachment, io.ReadCloser, error) {
	return m.downloadFn(ctx, userID, attachmentID)
}

func (m *mockAttachmentService) List(ctx context.Context, userID int64, entityType models.EntityType, entityID string) ([]models.Attachment, error) {
	return m.listFn(ctx, userID, entityType, entityID)
}

// mockAppInfoService implements service.AppInfoService for unit tests.
type mockAppInfoService struct {
	version string
}

func (m *mockAppInfoService) GetAppVersion(context.Context) string { return m.version }

// ─────────────────────────────────────────────
// Helpers
// ─────────────────────────────────────────────

const testUserID int64 = 42

// newHandlerWith builds a Handler over the given partial Services. Nil
// services stay nil; tests only wire the ones their handler touches.
func newHandlerWith(t *testing.T, services *service.Services) *Handler {
	t.Helper()
	if services.AppInfoService == nil {
		services.AppInfoService = &mockAppInfoService{version: "test"}
	}
	return NewHandler(services, config.App{}, logger.Nop())
}

// authedRequest stores the test user ID in the request context the same way
// the auth middleware does.
func authedRequest(r *http.Request) *http.Request {
	ctx := context.WithValue(r.Context(), utils.UserIDCtxKey, testUserID)
	return r.WithContext(ctx)
}

// withURLParams attaches chi URL parameters to the request so handlers can be
// called without going through the router.
func withURLParams(r *http.Request, params map[string]string) *http.Request {
	routeCtx := chi.NewRouteContext()
	for key, value := range params {
		routeCtx.URLParams.Add(key, value)
	}
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, routeCtx))
}

// decodeJSON unmarshals the response body into out.
func decodeJSON(t *testing.T, body []byte, out any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(body, out))
}
