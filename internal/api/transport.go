package api

import (
	"context"
	"io"
	"net/http"
	"time"
)

// Response is the envelope every transport produces. Callers only ever see
// this shape, regardless of which transport served the request.
type Response struct {
	Status int
	Header http.Header
	Body   []byte
}

// JSON unmarshals the response body into v.
func (r *Response) JSON(v interface{}) error {
	return unmarshalBody(r.Body, v)
}

// Transport executes a prepared HTTP request and reshapes the result into
// the common response envelope. Implementations must not retry.
type Transport interface {
	RoundTrip(ctx context.Context, req *http.Request) (*Response, error)
}

// httpTransport is the primary transport: a tuned, pooled http.Client.
type httpTransport struct {
	client *http.Client
}

func newHTTPTransport(timeout time.Duration) *httpTransport {
	return &httpTransport{
		client: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
	}
}

func (t *httpTransport) RoundTrip(ctx context.Context, req *http.Request) (*Response, error) {
	return execute(t.client, req.WithContext(ctx))
}

// fallbackTransport is the degraded-mode transport: a bare client with no
// pooling tuning, used when the primary path has already failed.
type fallbackTransport struct {
	client *http.Client
}

func newFallbackTransport(timeout time.Duration) *fallbackTransport {
	return &fallbackTransport{client: &http.Client{Timeout: timeout}}
}

func (t *fallbackTransport) RoundTrip(ctx context.Context, req *http.Request) (*Response, error) {
	return execute(t.client, req.WithContext(ctx))
}

func execute(client *http.Client, req *http.Request) (*Response, error) {
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, err
	}

	return &Response{
		Status: resp.StatusCode,
		Header: resp.Header,
		Body:   body,
	}, nil
}

// maxResponseBytes bounds how much of a response body is read into memory.
const maxResponseBytes = 8 << 20
