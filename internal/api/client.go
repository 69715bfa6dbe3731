// Package api implements the typed HTTP client for the PartsLink CRM
// backend. All payload reshaping happens in the domain wire codecs;
// this package owns transport, headers, the 401 refresh flow and the
// error taxonomy.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"

	"github.com/chiruit2077/partslink/internal/platform/httpx"
)

// TokenProvider supplies bearer tokens and performs the refresh
// exchange when the backend reports a stale token.
type TokenProvider interface {
	AccessToken() string
	RefreshAccess(ctx context.Context) (string, error)
}

// Config carries the transport settings sent with every request.
type Config struct {
	BaseURL    string
	Timeout    time.Duration
	APIVersion string
	AppVersion string
	Platform   string
}

// Client is the single REST client shared by every domain service.
type Client struct {
	base     string
	http     *http.Client
	cfg      Config
	logger   *slog.Logger
	provider TokenProvider

	// Concurrent 401s share one refresh exchange.
	refreshGroup singleflight.Group
}

// NewClient constructs a Client. The provider may be attached later
// via SetTokenProvider once the session manager exists.
func NewClient(cfg Config, logger *slog.Logger) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		base:   strings.TrimRight(cfg.BaseURL, "/"),
		http:   &http.Client{Timeout: timeout},
		cfg:    cfg,
		logger: logger,
	}
}

// SetTokenProvider attaches the session-backed token source.
func (c *Client) SetTokenProvider(p TokenProvider) { c.provider = p }

type callOptions struct {
	anonymous bool
}

// CallOption tweaks a single request.
type CallOption func(*callOptions)

// Anonymous suppresses the Authorization header and the 401 refresh
// flow; used for login and the refresh exchange itself.
func Anonymous() CallOption {
	return func(o *callOptions) { o.anonymous = true }
}

// Get issues a GET and decodes the response into out when non-nil.
func (c *Client) Get(ctx context.Context, path string, out any, opts ...CallOption) error {
	return c.do(ctx, http.MethodGet, path, nil, out, opts...)
}

// Post issues a POST with a JSON body.
func (c *Client) Post(ctx context.Context, path string, body, out any, opts ...CallOption) error {
	return c.do(ctx, http.MethodPost, path, body, out, opts...)
}

// Patch issues a PATCH with a JSON body.
func (c *Client) Patch(ctx context.Context, path string, body, out any, opts ...CallOption) error {
	return c.do(ctx, http.MethodPatch, path, body, out, opts...)
}

// Put issues a PUT with a JSON body.
func (c *Client) Put(ctx context.Context, path string, body, out any, opts ...CallOption) error {
	return c.do(ctx, http.MethodPut, path, body, out, opts...)
}

func (c *Client) do(ctx context.Context, method, path string, body, out any, opts ...CallOption) error {
	var options callOptions
	for _, opt := range opts {
		opt(&options)
	}

	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		if err != nil {
			return &Error{Status: http.StatusBadRequest, Message: msgValidation, Details: []string{err.Error()}, cause: err}
		}
	}

	status, respBody, err := c.roundTrip(ctx, method, path, payload, options.anonymous)
	if err != nil {
		return err
	}

	if status == http.StatusUnauthorized && !options.anonymous && c.provider != nil {
		if _, rerr := c.refreshToken(ctx); rerr != nil {
			return &Error{Status: http.StatusUnauthorized, Message: msgAuth, cause: ErrSessionExpired}
		}
		status, respBody, err = c.roundTrip(ctx, method, path, payload, options.anonymous)
		if err != nil {
			return err
		}
	}

	if status >= 400 {
		return c.apiError(status, respBody)
	}

	if out != nil && len(respBody) > 0 {
		if err := json.Unmarshal(respBody, out); err != nil {
			return &Error{Status: status, Message: msgServer, Details: []string{"malformed response: " + err.Error()}, cause: err}
		}
	}
	return nil
}

func (c *Client) roundTrip(ctx context.Context, method, path string, payload []byte, anonymous bool) (int, []byte, error) {
	var reader io.Reader
	if payload != nil {
		reader = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.base+path, reader)
	if err != nil {
		return 0, nil, connectionError(err)
	}
	c.setHeaders(req, payload != nil, anonymous)

	resp, err := c.http.Do(req)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return 0, nil, context.Canceled
		}
		c.logger.Warn("request failed",
			slog.String("method", method),
			slog.String("path", path),
			slog.Any("error", err))
		return 0, nil, connectionError(err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, 10<<20))
	if err != nil {
		return 0, nil, connectionError(err)
	}
	return resp.StatusCode, respBody, nil
}

func (c *Client) setHeaders(req *http.Request, hasBody, anonymous bool) {
	if hasBody {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-API-Version", c.cfg.APIVersion)
	req.Header.Set("X-Mobile-App", "true")
	req.Header.Set("X-App-Version", c.cfg.AppVersion)
	req.Header.Set("X-Platform", c.cfg.Platform)
	req.Header.Set("X-Request-ID", uuid.NewString())
	if !anonymous && c.provider != nil {
		if token := c.provider.AccessToken(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}
}

// refreshToken funnels concurrent refresh attempts through a single
// exchange; every waiter observes the same outcome.
func (c *Client) refreshToken(ctx context.Context) (string, error) {
	result := c.refreshGroup.DoChan("token-refresh", func() (interface{}, error) {
		return c.provider.RefreshAccess(ctx)
	})
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case res := <-result:
		if res.Err != nil {
			return "", res.Err
		}
		return res.Val.(string), nil
	}
}

func (c *Client) apiError(status int, body []byte) *Error {
	apiErr := &Error{Status: status, Message: messageForStatus(status)}
	var envelope httpx.ErrorBody
	if err := json.Unmarshal(body, &envelope); err == nil {
		if envelope.Error != "" {
			apiErr.Details = append(apiErr.Details, envelope.Error)
		}
		apiErr.Details = append(apiErr.Details, envelope.Details...)
	}
	return apiErr
}
