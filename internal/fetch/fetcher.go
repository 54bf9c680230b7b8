package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

const (
	// DefaultTimeout is the default HTTP request timeout
	DefaultTimeout = 5 * time.Minute
	// DefaultHopBudget is the default number of redirects followed
	// before a chain is abandoned
	DefaultHopBudget = 5
)

// Fetcher issues GET requests and follows redirect chains manually
type Fetcher struct {
	client *http.Client
}

// NewFetcher creates a fetcher with the default timeout
func NewFetcher() *Fetcher {
	return NewFetcherWithTimeout(DefaultTimeout)
}

// NewFetcherWithTimeout creates a fetcher with the given request
// timeout. A zero timeout leaves the transport's own limits in place.
func NewFetcherWithTimeout(timeout time.Duration) *Fetcher {
	return &Fetcher{
		client: &http.Client{
			Timeout: timeout,
			// Redirects are followed by Fetch itself so the
			// original headers reach every hop.
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
	}
}

// Fetch issues a GET request against rawURL with the given headers and
// follows up to hopBudget redirects, re-applying the same headers on
// every hop. A negative hopBudget selects DefaultHopBudget.
//
// The final non-redirect response is returned as-is regardless of
// status code; success/failure judgment belongs to the caller, which
// also owns closing the body. Redirect responses have their bodies
// drained and closed before the next hop so connections are reused.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string, header http.Header, hopBudget int) (*http.Response, error) {
	if hopBudget < 0 {
		hopBudget = DefaultHopBudget
	}

	url := rawURL
	hops := 0
	for {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return nil, fmt.Errorf("create request: %w", err)
		}
		for name, values := range header {
			for _, value := range values {
				req.Header.Add(name, value)
			}
		}

		resp, err := f.client.Do(req)
		if err != nil {
			return nil, &NetworkError{URL: url, Err: err}
		}

		next, ok := redirectTarget(resp)
		if !ok {
			return resp, nil
		}

		// Drain before abandoning the body on every exit from a
		// redirect response, so the connection is freed cleanly.
		if hopBudget == 0 {
			drain(resp)
			return nil, &TooManyRedirectsError{URL: url, Hops: hops}
		}
		drain(resp)

		url = next
		hopBudget--
		hops++
	}
}

// redirectTarget reports whether resp is a redirect with a usable
// Location header and returns the resolved target URL. A 3xx response
// without a usable Location is not followed.
func redirectTarget(resp *http.Response) (string, bool) {
	if resp.StatusCode < 300 || resp.StatusCode > 399 {
		return "", false
	}
	location, err := resp.Location()
	if err != nil {
		return "", false
	}
	return location.String(), true
}

// drain discards and closes a response body
func drain(resp *http.Response) {
	_, _ = io.Copy(io.Discard, resp.Body)
	resp.Body.Close()
}
