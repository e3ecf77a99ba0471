package common

import (
	_ "embed"
	"net/http"
	"strings"
	"time"
)

//go:embed VERSION
var version string

type userAgentTransport struct {
	transport http.RoundTripper
	userAgent string
}

// RoundTrip implements http.RoundTripper.
func (t *userAgentTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	// Clone the request so we never mutate headers on a request the caller
	// may reuse.
	req = req.Clone(req.Context())
	req.Header.Set("User-Agent", t.userAgent)
	return t.transport.RoundTrip(req)
}

// HTTPClient returns an http client with the given timeout and a
// GoEnergyZero/<version> User-Agent on every request.
func HTTPClient(timeout time.Duration) *http.Client {
	v := strings.TrimSpace(version)
	userAgent := "GoEnergyZero/" + v

	return &http.Client{
		Transport: &userAgentTransport{
			transport: http.DefaultTransport,
			userAgent: userAgent,
		},
		Timeout: timeout,
	}
}
