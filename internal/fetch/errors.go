package fetch

import "fmt"

// NetworkError wraps a transport-level failure (DNS, TLS, connection
// reset). It terminates the redirect chain immediately; no retry is
// attempted at this layer.
type NetworkError struct {
	URL string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("network failure fetching %s: %v", e.URL, e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// TooManyRedirectsError indicates that the hop budget was exhausted
// before the chain reached a non-redirect response.
type TooManyRedirectsError struct {
	URL  string // URL of the redirect that exceeded the budget
	Hops int    // hops that were followed before giving up
}

func (e *TooManyRedirectsError) Error() string {
	return fmt.Sprintf("too many redirects (followed %d) fetching %s", e.Hops, e.URL)
}
