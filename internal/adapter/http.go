package adapter

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/agrostack/fieldsync/internal/config"
	"github.com/agrostack/fieldsync/internal/logger"
	"github.com/agrostack/fieldsync/internal/utils"
	"github.com/agrostack/fieldsync/models"
	"github.com/go-resty/resty/v2"
	"github.com/sethvargo/go-retry"
)

// Transport retry policy for transient failures (network errors, 502/503/504).
// This is separate from the reconciler's per-operation replay budget: the
// adapter only smooths over short blips inside a single call. The backoff
// window comes from the sync configuration; jitter keeps a fleet of field
// devices from hammering a recovering server in lockstep.
const (
	transportRetries   = 3
	transportJitterPct = 20
)

// hashHeader carries the hex HMAC-SHA256 of the request body when a hash key
// is configured. The server rejects bodies whose hash does not verify.
const hashHeader = "HashSHA256"

type httpServerAdapter struct {
	client *utils.HTTPClient

	hashKey string

	backoffMin time.Duration
	backoffMax time.Duration

	mu    sync.RWMutex
	token string

	logger *logger.Logger
}

// NewHTTPServerAdapter constructs an HTTP/REST implementation of [ServerAdapter].
// It normalises and validates the base URL from adapterCfg.ServerURL, configures
// the underlying HTTP client with the resolved base URL and request timeout,
// takes the transient-retry backoff window from syncCfg, and initialises the
// shared HMAC hasher pool used for transport integrity hashes.
//
// Returns an error if adapterCfg.ServerURL is empty or cannot be parsed as a
// valid URL.
func NewHTTPServerAdapter(adapterCfg config.ClientAdapter, appCfg config.ClientApp, syncCfg config.ClientSync, logger *logger.Logger) (ServerAdapter, error) {
	client := utils.NewHTTPClient()
	baseURL, err := normalizeBaseURL(adapterCfg.ServerURL)
	if err != nil {
		return nil, fmt.Errorf("invalid adapter server url: %w", err)
	}

	client.
		SetBaseURL(baseURL).
		SetTimeout(adapterCfg.RequestTimeout)

	utils.InitHasherPool(appCfg.HashKey)

	backoffMin := syncCfg.BackoffMin
	if backoffMin <= 0 {
		backoffMin = config.DefaultBackoffMin
	}
	backoffMax := syncCfg.BackoffMax
	if backoffMax < backoffMin {
		backoffMax = config.DefaultBackoffMax
	}

	return &httpServerAdapter{
		client:     client,
		hashKey:    appCfg.HashKey,
		backoffMin: backoffMin,
		backoffMax: backoffMax,
		logger:     logger,
	}, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

// SetToken implements [ServerAdapter]. It stores token (whitespace-trimmed) for
// use in the Authorization header of all subsequent authenticated requests.
func (h *httpServerAdapter) SetToken(token string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.token = strings.TrimSpace(token)
}

// Token implements [ServerAdapter]. It returns the bearer token currently held
// by the adapter, or an empty string if none has been set.
func (h *httpServerAdapter) Token() string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.token
}

// Register implements [ServerAdapter]. It POSTs the credentials to
// POST /api/v2/auth/register. On success the bearer token is extracted from
// the Authorization response header, stored via SetToken, and returned with
// the user ID parsed from its subject claim.
func (h *httpServerAdapter) Register(ctx context.Context, creds models.Credentials) (models.Token, error) {
	return h.authenticate(ctx, "/api/v2/auth/register", creds)
}

// Login implements [ServerAdapter]. It POSTs the credentials to
// POST /api/v2/auth/login. On success the bearer token is extracted from the
// Authorization response header, stored via SetToken, and returned with the
// user ID parsed from its subject claim.
func (h *httpServerAdapter) Login(ctx context.Context, creds models.Credentials) (models.Token, error) {
	return h.authenticate(ctx, "/api/v2/auth/login", creds)
}

func (h *httpServerAdapter) authenticate(ctx context.Context, path string, creds models.Credentials) (models.Token, error) {
	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(creds).
		Post(path)
	if err != nil {
		return models.Token{}, fmt.Errorf("auth request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.Token{}, err
	}

	tokenString, err := utils.ParseBearerToken(resp.Header().Get("Authorization"))
	if err != nil {
		return models.Token{}, fmt.Errorf("auth parse bearer token: %w", err)
	}

	userID, err := utils.ParseUserIDFromJWT(tokenString)
	if err != nil {
		return models.Token{}, fmt.Errorf("auth parse user id: %w", err)
	}

	h.SetToken(tokenString)
	return models.Token{SignedString: tokenString, UserID: userID}, nil
}

// Health implements [ServerAdapter]. It GETs GET /api/v2/health without
// authentication or retries; the connectivity probe wants the instantaneous
// answer, not a smoothed one.
func (h *httpServerAdapter) Health(ctx context.Context) error {
	resp, err := h.client.R().SetContext(ctx).Get("/api/v2/health")
	if err != nil {
		return fmt.Errorf("health request: %w", err)
	}

	return mapHTTPError(resp)
}

// Push implements [ServerAdapter]. It POSTs the operation batch to
// POST /api/v2/sync/push and decodes the per-operation results. The request
// body is signed with the transport integrity hash when a hash key is
// configured. Transient failures are retried with capped exponential backoff.
// Requires a valid bearer token.
func (h *httpServerAdapter) Push(ctx context.Context, req models.PushRequest) (models.PushResponse, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return models.PushResponse{}, fmt.Errorf("encode push request: %w", err)
	}

	resp, err := h.doWithRetry(ctx, func() (*resty.Response, error) {
		r := h.authedRequest(ctx).
			SetHeader("Content-Type", "application/json").
			SetBody(body)
		if h.hashKey != "" {
			r.SetHeader(hashHeader, hex.EncodeToString(utils.Hash(body)))
		}
		return r.Post("/api/v2/sync/push")
	})
	if err != nil {
		return models.PushResponse{}, fmt.Errorf("push: %w", err)
	}

	var out models.PushResponse
	if err = json.Unmarshal(resp.Body(), &out); err != nil {
		return models.PushResponse{}, fmt.Errorf("decode push response: %w", err)
	}

	return out, nil
}

// Changes implements [ServerAdapter]. It GETs GET /api/v2/sync/changes with
// the since watermark, entity type filter and paging from query, and decodes
// the changed records plus the server clock. Transient failures are retried
// with capped exponential backoff. Requires a valid bearer token.
func (h *httpServerAdapter) Changes(ctx context.Context, query models.RecordQuery) (models.ChangesResponse, error) {
	params := map[string]string{}
	if query.Since != nil {
		params["since"] = query.Since.UTC().Format(time.RFC3339Nano)
	}
	if len(query.EntityTypes) > 0 {
		names := make([]string, 0, len(query.EntityTypes))
		for _, et := range query.EntityTypes {
			names = append(names, string(et))
		}
		params["entityTypes"] = strings.Join(names, ",")
	}
	if query.Page > 0 {
		params["page"] = strconv.Itoa(query.Page)
	}
	if query.PageSize > 0 {
		params["pageSize"] = strconv.Itoa(query.PageSize)
	}

	resp, err := h.doWithRetry(ctx, func() (*resty.Response, error) {
		return h.authedRequest(ctx).
			SetQueryParams(params).
			Get("/api/v2/sync/changes")
	})
	if err != nil {
		return models.ChangesResponse{}, fmt.Errorf("changes: %w", err)
	}

	var out models.ChangesResponse
	if err = json.Unmarshal(resp.Body(), &out); err != nil {
		return models.ChangesResponse{}, fmt.Errorf("decode changes response: %w", err)
	}

	return out, nil
}

// SyncLog implements [ServerAdapter]. It GETs GET /api/v2/sync/log and decodes
// the most recent audit entries, newest first. Requires a valid bearer token.
func (h *httpServerAdapter) SyncLog(ctx context.Context, limit int) ([]models.SyncLogEntry, error) {
	req := h.authedRequest(ctx)
	if limit > 0 {
		req.SetQueryParam("limit", strconv.Itoa(limit))
	}

	resp, err := req.Get("/api/v2/sync/log")
	if err != nil {
		return nil, fmt.Errorf("sync log request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, err
	}

	var entries []models.SyncLogEntry
	if err = json.Unmarshal(resp.Body(), &entries); err != nil {
		return nil, fmt.Errorf("decode sync log response: %w", err)
	}

	return entries, nil
}

// UploadAttachment implements [ServerAdapter]. It streams the file bytes to
// POST /api/v2/attachments/{entityType}/{entityID} with the declared content
// type and returns the metadata the server stored. Requires a valid bearer
// token.
func (h *httpServerAdapter) UploadAttachment(ctx context.Context, attachment models.Attachment, data io.Reader) (models.Attachment, error) {
	contentType := attachment.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	resp, err := h.authedRequest(ctx).
		SetHeader("Content-Type", contentType).
		SetHeader("X-File-Name", attachment.FileName).
		SetQueryParam("attachmentId", attachment.AttachmentID).
		SetBody(data).
		Post(fmt.Sprintf("/api/v2/attachments/%s/%s", attachment.EntityType, attachment.EntityID))
	if err != nil {
		return models.Attachment{}, fmt.Errorf("upload attachment request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.Attachment{}, err
	}

	var stored models.Attachment
	if err = json.Unmarshal(resp.Body(), &stored); err != nil {
		return models.Attachment{}, fmt.Errorf("decode attachment response: %w", err)
	}

	return stored, nil
}

func (h *httpServerAdapter) authedRequest(ctx context.Context) *resty.Request {
	req := h.client.R().SetContext(ctx)
	if token := h.Token(); token != "" {
		req.SetHeader("Authorization", "Bearer "+token)
	}
	return req
}

// doWithRetry runs send under the transport retry policy: jittered exponential
// backoff starting at backoffMin, capped at backoffMax. Network errors and
// gateway-class statuses are retried; every other failure surfaces immediately
// so the caller (and ultimately the queue) decides what to do with it.
func (h *httpServerAdapter) doWithRetry(ctx context.Context, send func() (*resty.Response, error)) (*resty.Response, error) {
	backoff := retry.WithMaxRetries(transportRetries,
		retry.WithJitterPercent(transportJitterPct,
			retry.WithCappedDuration(h.backoffMax,
				retry.NewExponential(h.backoffMin))))

	var resp *resty.Response
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		var sendErr error
		resp, sendErr = send()
		if sendErr != nil {
			return retry.RetryableError(fmt.Errorf("send request: %w", sendErr))
		}

		if mapped := mapHTTPError(resp); mapped != nil {
			if errors.Is(mapped, ErrServerUnavailable) {
				return retry.RetryableError(mapped)
			}
			return mapped
		}

		return nil
	})
	if err != nil {
		return resp, err
	}

	return resp, nil
}
