// Package api is the REST transport for the admin console client: a thin
// JSON-over-HTTP client with bearer injection and a typed error taxonomy.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// TokenSource supplies the current bearer token. An empty string means
// the request is sent unauthenticated.
type TokenSource interface {
	AccessToken() string
}

// Client performs JSON requests against the admin REST API.
type Client struct {
	baseURL string
	http    *http.Client
	tokens  TokenSource
	log     *zap.Logger
}

// New returns a Client for the given base URL. tokens may be nil for
// unauthenticated use (sign-in, password recovery).
func New(baseURL string, timeout time.Duration, tokens TokenSource, log *zap.Logger) *Client {
	if log == nil {
		log = zap.NewNop()
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		tokens:  tokens,
		log:     log,
	}
}

// Get performs a GET and decodes the response into out (ignored when out is nil).
func (c *Client) Get(ctx context.Context, path string, query url.Values, out any) error {
	return c.do(ctx, http.MethodGet, path, query, nil, out)
}

// Post performs a POST with a JSON body.
func (c *Client) Post(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPost, path, nil, body, out)
}

// Put performs a PUT with a JSON body.
func (c *Client) Put(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPut, path, nil, body, out)
}

// Delete performs a DELETE.
func (c *Client) Delete(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodDelete, path, nil, nil, out)
}

// PostMultipart performs a multipart/form-data POST: one file part plus the
// given form fields. Used for avatar and media uploads.
func (c *Client) PostMultipart(ctx context.Context, path, fileField, fileName string, file io.Reader, fields map[string]string, out any) error {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile(fileField, fileName)
	if err != nil {
		return &Error{Kind: KindNetwork, Message: "build multipart body", cause: err}
	}
	if _, err := io.Copy(part, file); err != nil {
		return &Error{Kind: KindNetwork, Message: "read upload file", cause: err}
	}
	for k, v := range fields {
		if err := w.WriteField(k, v); err != nil {
			return &Error{Kind: KindNetwork, Message: "build multipart body", cause: err}
		}
	}
	if err := w.Close(); err != nil {
		return &Error{Kind: KindNetwork, Message: "build multipart body", cause: err}
	}

	req, err := c.newRequest(ctx, http.MethodPost, path, nil, &buf)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", w.FormDataContentType())
	return c.send(req, out)
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return &Error{Kind: KindValidation, Message: "encode request body", cause: err}
		}
		reader = bytes.NewReader(encoded)
	}
	req, err := c.newRequest(ctx, method, path, query, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return c.send(req, out)
}

func (c *Client) newRequest(ctx context.Context, method, path string, query url.Values, body io.Reader) (*http.Request, error) {
	u := c.baseURL + "/" + strings.TrimLeft(path, "/")
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return nil, &Error{Kind: KindNetwork, Message: "build request", cause: err}
	}
	req.Header.Set("Accept", "application/json")
	if c.tokens != nil {
		if token := c.tokens.AccessToken(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}
	if method != http.MethodGet {
		// The API's write endpoints honor this header to dedupe resubmissions.
		req.Header.Set("Idempotency-Key", uuid.New().String())
	}
	return req, nil
}

// send executes the request and decodes the response into out. Non-2xx
// responses become *Error per the taxonomy; a 2xx body that fails to decode
// is rejected as KindValidation so malformed payloads never reach the cache.
func (c *Client) send(req *http.Request, out any) error {
	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Warn("request failed",
			zap.String("method", req.Method),
			zap.String("url", req.URL.Path),
			zap.Error(err))
		return &Error{Kind: KindNetwork, Message: "request failed", cause: err}
	}
	defer resp.Body.Close()

	c.log.Debug("request done",
		zap.String("method", req.Method),
		zap.String("url", req.URL.Path),
		zap.Int("status", resp.StatusCode),
		zap.Duration("elapsed", time.Since(start)))

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return &Error{Kind: KindNetwork, Status: resp.StatusCode, Message: "read response body", cause: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return remoteError(resp.StatusCode, raw)
	}

	if out == nil || len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return &Error{
			Kind:    KindValidation,
			Status:  resp.StatusCode,
			Message: "malformed response body",
			cause:   err,
		}
	}
	return nil
}

// errorBody is the API's error envelope. All members are optional.
type errorBody struct {
	Message string            `json:"message"`
	Error   string            `json:"error"`
	Errors  map[string]string `json:"errors"`
}

func remoteError(status int, raw []byte) *Error {
	var body errorBody
	_ = json.Unmarshal(raw, &body)
	msg := body.Message
	if msg == "" {
		msg = body.Error
	}
	if msg == "" {
		msg = fmt.Sprintf("remote returned status %d", status)
	}
	apiErr := &Error{Kind: kindForStatus(status), Status: status, Message: msg}
	if apiErr.Kind == KindValidation && len(body.Errors) > 0 {
		apiErr.Fields = body.Errors
	}
	return apiErr
}
