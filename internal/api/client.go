// Package api is the sole data-access boundary to the SaleSnipe backend.
//
// It provides a single configured request client with bearer-token
// injection, response classification, and bounded sequential retry, plus the
// grouped façade calls (auth, products, watchlist, alerts, insights,
// notifications, collections, health) built on top of it.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/Dheirav/SaleSnipe-sub001/pkg/logger"
)

// TokenSource yields the current session token. An empty string means the
// request goes out unauthenticated.
type TokenSource interface {
	Token() string
}

// TokenFunc adapts a function to the TokenSource interface.
type TokenFunc func() string

func (f TokenFunc) Token() string {
	if f == nil {
		return ""
	}
	return f()
}

// Config configures the client. BaseURL is resolved once at construction
// and cached for the client's lifetime.
type Config struct {
	BaseURL string
	Timeout time.Duration
	Retry   RetryPolicy

	// Token, when set, is consulted on every outgoing request.
	Token TokenSource

	// OnUnauthorized fires when a non-auth-flow call receives a 401. The
	// session layer registers its token teardown here.
	OnUnauthorized func()

	// Limiter, when set, paces outbound requests.
	Limiter *rate.Limiter

	Logger *logger.Logger
}

// Client is the HTTP client wrapper. All façade calls go through Do, so the
// interceptor and retry behaviour is uniform across domains.
type Client struct {
	baseURL  string
	primary  Transport
	fallback Transport
	retry    RetryPolicy

	token          TokenSource
	onUnauthorized func()
	limiter        *rate.Limiter
	log            *logger.Logger
}

// New constructs the client. The base URL must be non-empty; a trailing
// slash is stripped so paths always start one.
func New(cfg Config) (*Client, error) {
	if strings.TrimSpace(cfg.BaseURL) == "" {
		return nil, fmt.Errorf("base URL is required")
	}
	if _, err := url.Parse(cfg.BaseURL); err != nil {
		return nil, fmt.Errorf("invalid base URL: %w", err)
	}

	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 10 * time.Second
	}
	retry := cfg.Retry
	if retry.MaxAttempts == 0 {
		retry = DefaultRetryPolicy()
	}
	log := cfg.Logger
	if log == nil {
		log = logger.NewDefault("api")
	}

	return &Client{
		baseURL:        strings.TrimSuffix(cfg.BaseURL, "/"),
		primary:        newHTTPTransport(timeout),
		fallback:       newFallbackTransport(timeout),
		retry:          retry,
		token:          cfg.Token,
		onUnauthorized: cfg.OnUnauthorized,
		limiter:        cfg.Limiter,
		log:            log,
	}, nil
}

// Request describes one logical backend call.
type Request struct {
	Method string
	Path   string
	Query  url.Values
	Body   interface{}

	// AuthFlow marks login/register calls: a 401 on these must not clear
	// the stored token, mirroring the login-view guard.
	AuthFlow bool
}

// Do executes a logical call under the client's retry policy. Retries are
// strictly sequential; a call that produced a response is never retried.
func (c *Client) Do(ctx context.Context, req *Request) (*Response, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, err
		}
	}

	body, err := marshalBody(req.Body)
	if err != nil {
		return nil, err
	}

	return Retry(ctx, c.retry, func(ctx context.Context) (*Response, error) {
		return c.attempt(ctx, c.primary, req, body)
	})
}

// attempt issues one request through the given transport and classifies the
// outcome.
func (c *Client) attempt(ctx context.Context, transport Transport, req *Request, body []byte) (*Response, error) {
	httpReq, err := c.buildRequest(ctx, req, body)
	if err != nil {
		return nil, err
	}

	resp, err := transport.RoundTrip(ctx, httpReq)
	if err != nil {
		// No response received: the only retry-eligible failure.
		return nil, connectivityError(err)
	}

	if resp.Status >= 200 && resp.Status < 300 {
		return resp, nil
	}

	apiErr := classify(resp.Status, resp.Body)
	if apiErr.Kind == KindAuth && !req.AuthFlow && c.onUnauthorized != nil {
		c.onUnauthorized()
	}
	return nil, apiErr
}

// doWithFallback executes the call normally, then re-issues it once through
// the bare fallback transport if the primary path failed for any reason.
// The fallback result is reshaped into the same envelope, so callers cannot
// tell which path served them.
func (c *Client) doWithFallback(ctx context.Context, req *Request) (*Response, error) {
	resp, err := c.Do(ctx, req)
	if err == nil {
		return resp, nil
	}

	c.log.WithError(err).WithField("path", req.Path).Warn("primary transport failed, trying fallback")

	body, merr := marshalBody(req.Body)
	if merr != nil {
		return nil, merr
	}
	resp, ferr := c.attempt(ctx, c.fallback, req, body)
	if ferr != nil {
		// Surface the primary failure; the fallback was best-effort.
		return nil, err
	}
	return resp, nil
}

func (c *Client) buildRequest(ctx context.Context, req *Request, body []byte) (*http.Request, error) {
	target := c.baseURL + req.Path
	if len(req.Query) > 0 {
		target += "?" + req.Query.Encode()
	}

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, target, reader)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	httpReq.Header.Set("Accept", "application/json")
	if body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	httpReq.Header.Set("X-Request-ID", uuid.NewString())

	if c.token != nil {
		if tok := c.token.Token(); tok != "" {
			httpReq.Header.Set("Authorization", "Bearer "+tok)
		}
	}

	return httpReq, nil
}

// get issues a GET and decodes the response into target.
func (c *Client) get(ctx context.Context, path string, query url.Values, target interface{}) error {
	resp, err := c.Do(ctx, &Request{Method: http.MethodGet, Path: path, Query: query})
	if err != nil {
		return err
	}
	return decode(resp, target)
}

func (c *Client) post(ctx context.Context, path string, body, target interface{}) error {
	resp, err := c.Do(ctx, &Request{Method: http.MethodPost, Path: path, Body: body})
	if err != nil {
		return err
	}
	return decode(resp, target)
}

func (c *Client) put(ctx context.Context, path string, body, target interface{}) error {
	resp, err := c.Do(ctx, &Request{Method: http.MethodPut, Path: path, Body: body})
	if err != nil {
		return err
	}
	return decode(resp, target)
}

func (c *Client) delete(ctx context.Context, path string) error {
	_, err := c.Do(ctx, &Request{Method: http.MethodDelete, Path: path})
	return err
}

func decode(resp *Response, target interface{}) error {
	if target == nil {
		return nil
	}
	if err := resp.JSON(target); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func marshalBody(body interface{}) ([]byte, error) {
	if body == nil {
		return nil, nil
	}
	data, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("marshal request body: %w", err)
	}
	return data, nil
}

func unmarshalBody(b []byte, v interface{}) error {
	if len(b) == 0 {
		return nil
	}
	return json.Unmarshal(b, v)
}
