// Package fetch provides an HTTP fetcher that follows redirect chains
// manually so that the caller's request headers persist across every
// hop and the number of hops is bounded.
//
// The stock http.Client rewrites requests on redirect and applies its
// own policy; update endpoints that hand out signed CDN locations only
// behave when the impersonated client identity is present on each hop,
// so the Fetcher disables automatic redirects and re-issues the
// request itself. The hop budget converts an open redirect loop on the
// endpoint into a deterministic *TooManyRedirectsError instead of an
// unbounded chain.
package fetch
