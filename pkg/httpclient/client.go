package httpclient

import (
	"net/http"
)

// Client defines an interface for making HTTP requests
// This allows for easy mocking and testing of HTTP calls
type Client interface {
	Do(req *http.Request) (*http.Response, error)
}

// StandardHTTPClient wraps the standard http.Client
type StandardHTTPClient struct {
	client *http.Client
}

// NewHTTPClient returns the *http.Client shared by SDK-backed collaborators.
// No client-level timeout is set; outbound calls are bounded by the caller's context.
func NewHTTPClient() *http.Client {
	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.MaxIdleConnsPerHost = 10

	return &http.Client{Transport: transport}
}

// NewStandardClient creates a new HTTP client with default settings
func NewStandardClient() Client {
	return Wrap(NewHTTPClient())
}

// Wrap adapts an existing *http.Client to Client
func Wrap(client *http.Client) Client {
	return &StandardHTTPClient{client: client}
}

// Do executes an HTTP request
func (c *StandardHTTPClient) Do(req *http.Request) (*http.Response, error) {
	return c.client.Do(req)
}
