package listings

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	apperrors "homefinder-listings/internal/errors"
	"homefinder-listings/internal/repositories"
	"homefinder-listings/pkg/logger"
)

const defaultTimeout = 10 * time.Second

var errMissingData = errors.New("response has no data")

// TokenSource returns the bearer token to send, or "" for anonymous calls.
type TokenSource func() string

type Option func(*transport)

func WithHTTPClient(client *http.Client) Option {
	return func(t *transport) {
		if client != nil {
			t.httpClient = client
		}
	}
}

func WithTokenSource(source TokenSource) Option {
	return func(t *transport) { t.token = source }
}

// WithRetries sets how many times an idempotent request is attempted.
func WithRetries(attempts int, backoff time.Duration) Option {
	return func(t *transport) {
		if attempts > 0 {
			t.attempts = attempts
		}
		t.backoff = backoff
	}
}

// transport speaks the backend envelopes: {success, data, message} for
// single resources and a bare page body for listings.
type transport struct {
	baseURL    string
	httpClient *http.Client
	token      TokenSource
	attempts   int
	backoff    time.Duration
}

func newTransport(baseURL string, timeout time.Duration, opts ...Option) *transport {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	t := &transport{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		attempts:   1,
		backoff:    time.Second,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

type request struct {
	method      string
	path        string
	query       url.Values
	body        []byte
	contentType string
}

func jsonRequest(method, path string, payload interface{}) (request, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return request{}, fmt.Errorf("failed to encode request body: %w", err)
	}
	return request{method: method, path: path, body: body, contentType: "application/json"}, nil
}

// errorEnvelope carries the failure fields. Page bodies have no success
// flag, so only an explicit false marks a 2xx body as failed.
type errorEnvelope struct {
	Success *bool  `json:"success"`
	Error   string `json:"error"`
	Code    string `json:"code"`
}

// sentinels lets callers match remote failures with the same errors.Is
// checks they use against a local store.
var sentinels = map[string]error{
	apperrors.ErrCodePropertyNotFound: repositories.ErrPropertyNotFound,
	apperrors.ErrCodeContactNotFound:  repositories.ErrContactNotFound,
	apperrors.ErrCodeEmailTaken:       repositories.ErrEmailTaken,
}

// do sends req and decodes a successful response body into out. GET
// requests are retried on transient failures.
func (t *transport) do(ctx context.Context, req request, out interface{}) error {
	target := t.baseURL + req.path
	if len(req.query) > 0 {
		target += "?" + req.query.Encode()
	}

	attempts := 1
	if req.method == http.MethodGet {
		attempts = t.attempts
	}

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		lastErr = t.once(ctx, req, target, out)
		if lastErr == nil || !apperrors.IsTransient(lastErr) || ctx.Err() != nil {
			return lastErr
		}
		if attempt < attempts {
			logger.GlobalLogger.Errorf("Request failed (attempt %d/%d): method=%s, url=%s, error=%v", attempt, attempts, req.method, target, lastErr)
			select {
			case <-ctx.Done():
				return lastErr
			case <-time.After(time.Duration(attempt) * t.backoff):
			}
		}
	}
	return lastErr
}

func (t *transport) once(ctx context.Context, req request, target string, out interface{}) error {
	var body io.Reader
	if req.body != nil {
		body = bytes.NewReader(req.body)
	}
	httpReq, err := http.NewRequestWithContext(ctx, req.method, target, body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Accept", "application/json")
	if req.contentType != "" {
		httpReq.Header.Set("Content-Type", req.contentType)
	}
	if t.token != nil {
		if token := t.token(); token != "" {
			httpReq.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := t.httpClient.Do(httpReq)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return apperrors.NewAppError(
			fmt.Sprintf("%s %s: %v", req.method, target, err),
			apperrors.MsgServiceUnavailable, apperrors.ErrCodeServiceUnavailable,
			http.StatusServiceUnavailable, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return apperrors.NewAppError(
			fmt.Sprintf("failed to read response body: url=%s, status=%s", target, resp.Status),
			apperrors.MsgServiceUnavailable, apperrors.ErrCodeServiceUnavailable,
			http.StatusBadGateway, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return remoteError(resp, target, raw)
	}

	var envelope errorEnvelope
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return badEnvelope(target, raw, err)
	}
	if envelope.Success != nil && !*envelope.Success {
		return badEnvelope(target, raw, fmt.Errorf("success flag is false: %s", envelope.Error))
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return badEnvelope(target, raw, err)
	}
	return nil
}

func remoteError(resp *http.Response, target string, raw []byte) error {
	var envelope errorEnvelope
	_ = json.Unmarshal(raw, &envelope)

	userMessage := envelope.Error
	if userMessage == "" {
		userMessage = http.StatusText(resp.StatusCode)
	}
	code := envelope.Code
	if code == "" {
		code = apperrors.ErrCodeInternal
		if resp.StatusCode >= http.StatusInternalServerError {
			code = apperrors.ErrCodeServiceUnavailable
		}
	}
	original := sentinels[code]
	if original == nil {
		original = fmt.Errorf("remote returned %s", resp.Status)
	}
	return apperrors.NewAppError(
		fmt.Sprintf("request failed: url=%s, status=%s, response=%s", target, resp.Status, string(raw)),
		userMessage, code, resp.StatusCode, original)
}

func badEnvelope(target string, raw []byte, err error) error {
	return apperrors.NewAppError(
		fmt.Sprintf("failed to decode response: url=%s, response=%s", target, string(raw)),
		apperrors.MsgServiceUnavailable, apperrors.ErrCodeServiceUnavailable,
		http.StatusBadGateway, err)
}
