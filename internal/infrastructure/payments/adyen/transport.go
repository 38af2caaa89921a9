package adyen

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

const DefaultRequestTimeout = 30 * time.Second

// Transport sends one request and returns the raw reply. Failures here are
// network, TLS or timeout problems; the body is not interpreted.
type Transport interface {
	Send(ctx context.Context, method, url string, headers map[string]string, body []byte) (status int, respBody []byte, err error)
}

// HTTPTransport is the net/http implementation of Transport.
type HTTPTransport struct {
	client *http.Client
}

var _ Transport = (*HTTPTransport)(nil)

func NewHTTPTransport(timeout time.Duration) *HTTPTransport {
	if timeout <= 0 {
		timeout = DefaultRequestTimeout
	}
	transport := &http.Transport{
		Proxy:               http.ProxyFromEnvironment,
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 20,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 10 * time.Second,
	}
	return &HTTPTransport{client: &http.Client{Timeout: timeout, Transport: transport}}
}

// NewHTTPTransportWithClient uses c as is.
func NewHTTPTransportWithClient(c *http.Client) *HTTPTransport {
	return &HTTPTransport{client: c}
}

func (t *HTTPTransport) Send(ctx context.Context, method, url string, headers map[string]string, body []byte) (int, []byte, error) {
	req, err := http.NewRequestWithContext(ctx, method, url, bytes.NewReader(body))
	if err != nil {
		return 0, nil, fmt.Errorf("create request: %w", err)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := t.client.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, nil, fmt.Errorf("read response body: %w", err)
	}
	return resp.StatusCode, respBody, nil
}
