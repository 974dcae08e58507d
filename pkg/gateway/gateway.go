// Package gateway is the typed HTTP client for the diary REST API.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/url"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"

	"tableflip.dev/diary/pkg/apperr"
	"tableflip.dev/diary/pkg/entry"
)

// DefaultTimeout bounds every request unless overridden.
const DefaultTimeout = 15 * time.Second

// RequestIDHeader is attached to every outgoing request.
const RequestIDHeader = "X-Request-ID"

// TokenSource supplies the bearer token for authenticated calls. An empty
// token means the request is sent without Authorization.
type TokenSource interface {
	Token() string
}

// Client talks to the diary API.
type Client struct {
	base   *url.URL
	http   *http.Client
	tokens TokenSource
	log    *slog.Logger
	newID  func() string
}

// Option customises a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// WithTimeout sets the transport-level timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.http.Timeout = d
		}
	}
}

// WithTokenSource sets where bearer tokens come from.
func WithTokenSource(ts TokenSource) Option {
	return func(c *Client) {
		c.tokens = ts
	}
}

// WithLogger sets the request logger.
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.log = l
		}
	}
}

// New returns a client rooted at baseURL, e.g. "http://localhost:5000/api".
func New(baseURL string, opts ...Option) (*Client, error) {
	u, err := url.Parse(strings.TrimSpace(baseURL))
	if err != nil {
		return nil, fmt.Errorf("gateway: parse base url: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("gateway: base url %q must be absolute", baseURL)
	}
	u.Path = strings.TrimSuffix(u.Path, "/")
	c := &Client{
		base:  u,
		http:  &http.Client{Timeout: DefaultTimeout},
		log:   slog.Default(),
		newID: func() string { return uuid.NewString() },
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// BaseURL returns the API root the client was built with.
func (c *Client) BaseURL() string {
	return c.base.String()
}

type envelope struct {
	Status  string          `json:"status"`
	Message string          `json:"message"`
	Error   string          `json:"error"`
	Token   string          `json:"token"`
	Data    json.RawMessage `json:"data"`
}

// Login exchanges credentials for a session token.
func (c *Client) Login(ctx context.Context, creds Credentials) (AuthResult, error) {
	return c.authenticate(ctx, "/auth/login", creds)
}

// Register creates an account and returns its first session token.
func (c *Client) Register(ctx context.Context, creds Credentials) (AuthResult, error) {
	return c.authenticate(ctx, "/auth/register", creds)
}

func (c *Client) authenticate(ctx context.Context, p string, creds Credentials) (AuthResult, error) {
	var data struct {
		User User `json:"user"`
	}
	env, err := c.doJSON(ctx, http.MethodPost, p, nil, creds, &data)
	if err != nil {
		return AuthResult{}, err
	}
	if env.Token == "" {
		return AuthResult{}, &apperr.ServerError{Status: http.StatusOK, Message: "response carried no token"}
	}
	return AuthResult{Token: env.Token, User: data.User}, nil
}

// ListEntries returns the entries matching q in server order.
func (c *Client) ListEntries(ctx context.Context, q ListQuery) ([]entry.Entry, error) {
	var data struct {
		Entries []entry.Entry `json:"entries"`
	}
	if _, err := c.doJSON(ctx, http.MethodGet, "/entries", q.Values(), nil, &data); err != nil {
		return nil, err
	}
	if data.Entries == nil {
		data.Entries = []entry.Entry{}
	}
	return data.Entries, nil
}

// GetEntry loads a single entry.
func (c *Client) GetEntry(ctx context.Context, id string) (entry.Entry, error) {
	var data struct {
		Entry entry.Entry `json:"entry"`
	}
	if _, err := c.doJSON(ctx, http.MethodGet, entryPath(id), nil, nil, &data); err != nil {
		return entry.Entry{}, err
	}
	return data.Entry, nil
}

// CreateEntry posts a new entry built from the non-nil patch fields.
func (c *Client) CreateEntry(ctx context.Context, p EntryPatch) (entry.Entry, error) {
	var data struct {
		Entry entry.Entry `json:"entry"`
	}
	if _, err := c.doJSON(ctx, http.MethodPost, "/entries", nil, p, &data); err != nil {
		return entry.Entry{}, err
	}
	return data.Entry, nil
}

// UpdateEntry sends the non-nil patch fields and returns the stored entry.
func (c *Client) UpdateEntry(ctx context.Context, id string, p EntryPatch) (entry.Entry, error) {
	var data struct {
		Entry entry.Entry `json:"entry"`
	}
	if _, err := c.doJSON(ctx, http.MethodPatch, entryPath(id), nil, p, &data); err != nil {
		return entry.Entry{}, err
	}
	return data.Entry, nil
}

// DeleteEntry removes an entry.
func (c *Client) DeleteEntry(ctx context.Context, id string) error {
	_, err := c.doJSON(ctx, http.MethodDelete, entryPath(id), nil, nil, nil)
	return err
}

// Analytics returns the mood distribution across all entries.
func (c *Client) Analytics(ctx context.Context) (Analytics, error) {
	var data Analytics
	if _, err := c.doJSON(ctx, http.MethodGet, "/entries/analytics", nil, nil, &data); err != nil {
		return Analytics{}, err
	}
	return data, nil
}

// UploadImage sends r as a multipart "file" field and returns the absolute
// URL of the stored image.
func (c *Client) UploadImage(ctx context.Context, filename string, r io.Reader) (string, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("file", path.Base(filename))
	if err != nil {
		return "", fmt.Errorf("gateway: build upload: %w", err)
	}
	if _, err := io.Copy(fw, r); err != nil {
		return "", fmt.Errorf("gateway: read upload %s: %w", filename, err)
	}
	if err := mw.Close(); err != nil {
		return "", fmt.Errorf("gateway: build upload: %w", err)
	}

	var data struct {
		URL string `json:"url"`
	}
	if _, err := c.do(ctx, http.MethodPost, "/entries/upload", nil, &buf, mw.FormDataContentType(), &data); err != nil {
		return "", err
	}
	if data.URL == "" {
		return "", &apperr.ServerError{Status: http.StatusOK, Message: "upload response carried no url"}
	}
	return c.ResolveURL(data.URL), nil
}

// ResolveURL turns a server-relative path such as "/uploads/a.png" into an
// absolute URL on the API origin. Absolute URLs are returned unchanged.
func (c *Client) ResolveURL(raw string) string {
	ref, err := url.Parse(raw)
	if err != nil || ref.IsAbs() {
		return raw
	}
	origin := &url.URL{Scheme: c.base.Scheme, Host: c.base.Host}
	if !strings.HasPrefix(ref.Path, "/") {
		ref.Path = "/" + ref.Path
	}
	return origin.ResolveReference(ref).String()
}

func entryPath(id string) string {
	return "/entries/" + url.PathEscape(id)
}

func (c *Client) doJSON(ctx context.Context, method, p string, query url.Values, body any, out any) (*envelope, error) {
	var r io.Reader
	ct := ""
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("gateway: marshal %s %s: %w", method, p, err)
		}
		r = bytes.NewReader(b)
		ct = "application/json"
	}
	return c.do(ctx, method, p, query, r, ct, out)
}

func (c *Client) do(ctx context.Context, method, p string, query url.Values, body io.Reader, contentType string, out any) (*envelope, error) {
	u := *c.base
	u.Path = c.base.Path + p
	if len(query) > 0 {
		u.RawQuery = query.Encode()
	}
	op := method + " " + p

	req, err := http.NewRequestWithContext(ctx, method, u.String(), body)
	if err != nil {
		return nil, fmt.Errorf("gateway: %s: %w", op, err)
	}
	reqID := c.newID()
	req.Header.Set(RequestIDHeader, reqID)
	req.Header.Set("Accept", "application/json")
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if c.tokens != nil {
		if tok := c.tokens.Token(); tok != "" {
			req.Header.Set("Authorization", "Bearer "+tok)
		}
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Debug("request failed",
			slog.String("op", op),
			slog.String("request_id", reqID),
			slog.String("error", err.Error()))
		return nil, apperr.Network(op, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 10<<20))
	if err != nil {
		return nil, apperr.Network(op, err)
	}
	c.log.Debug("request",
		slog.String("op", op),
		slog.Int("status", resp.StatusCode),
		slog.String("request_id", reqID),
		slog.Duration("duration", time.Since(start)))

	env := &envelope{}
	if len(bytes.TrimSpace(raw)) > 0 {
		if err := json.Unmarshal(raw, env); err != nil && resp.StatusCode < 300 {
			return nil, &apperr.ServerError{Status: resp.StatusCode, Message: fmt.Sprintf("invalid response body: %v", err)}
		}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg := env.Message
		if msg == "" {
			msg = env.Error
		}
		if msg == "" && len(raw) > 0 && !json.Valid(raw) {
			msg = strings.TrimSpace(string(raw))
		}
		return nil, fmt.Errorf("gateway: %s: %w", op, &apperr.ServerError{Status: resp.StatusCode, Message: msg})
	}

	if out != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return nil, &apperr.ServerError{Status: resp.StatusCode, Message: fmt.Sprintf("invalid response data: %v", err)}
		}
	}
	return env, nil
}

// IsUnauthorized reports whether err means the session is no longer valid.
func IsUnauthorized(err error) bool {
	return errors.Is(err, apperr.ErrUnauthorized)
}
