package media

import "errors"

// Domain errors returned by the catalog and provider clients. Handlers map
// these to transport status codes; anything else is treated like
// ErrUpstreamUnavailable so upstream details never leak to clients.
var (
	// ErrNotFound means the upstream explicitly reported the resource
	// does not exist (provider 404).
	ErrNotFound = errors.New("resource not found")

	// ErrUpstreamUnavailable covers every other upstream failure: network
	// error, non-2xx status, timeout, or an unparseable body.
	ErrUpstreamUnavailable = errors.New("upstream unavailable")

	// ErrCredentialMissing means a required upstream API credential is not
	// configured. Trending lists degrade to a static fallback instead;
	// detail lookups surface this as a hard failure.
	ErrCredentialMissing = errors.New("upstream credential not configured")
)
