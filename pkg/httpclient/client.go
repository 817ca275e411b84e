package httpclient

import (
	"net/http"
	"time"
)

// DefaultTimeout bounds a quote submission round trip, image upload
// waits included.
const DefaultTimeout = 30 * time.Second

// Client is the transport the wizard's API client goes through. An
// interface so tests can script responses without a listener.
type Client interface {
	Do(req *http.Request) (*http.Response, error)
}

// StandardHTTPClient wraps the standard http.Client
type StandardHTTPClient struct {
	client *http.Client
}

// NewStandardClient creates an HTTP client with the default timeout.
func NewStandardClient() Client {
	return NewStandardClientWithTimeout(DefaultTimeout)
}

// NewStandardClientWithTimeout creates an HTTP client with an explicit
// timeout. A zero timeout means no limit.
func NewStandardClientWithTimeout(timeout time.Duration) Client {
	return &StandardHTTPClient{
		client: &http.Client{Timeout: timeout},
	}
}

// Do executes an HTTP request
func (c *StandardHTTPClient) Do(req *http.Request) (*http.Response, error) {
	return c.client.Do(req)
}
