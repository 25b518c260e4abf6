// Package httpclient builds the HTTP client used by load workers and
// classifies transport failures into stable kinds.
package httpclient

import (
	"net"
	"net/http"
	"time"
)

// NewClient returns an http.Client configured for load generation: redirects
// are followed (default policy), the per-request timeout covers the whole
// exchange, and keep-alives are disabled so every request opens its own
// connection.
func NewClient(timeout time.Duration) *http.Client {
	if timeout < 0 {
		timeout = 0
	}

	dialer := &net.Dialer{
		Timeout:   30 * time.Second,
		KeepAlive: 30 * time.Second,
	}

	transport := &http.Transport{
		Proxy:                 http.ProxyFromEnvironment,
		DialContext:           dialer.DialContext,
		DisableKeepAlives:     true,
		TLSHandshakeTimeout:   10 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,
	}

	return &http.Client{
		Timeout:   timeout,
		Transport: transport,
	}
}
