package fetcher

import "errors"

// Sentinel errors for content fetching failures. Callers use errors.Is to
// distinguish security rejections from transient fetch problems.
var (
	// ErrInvalidURL indicates the URL is malformed or uses a disallowed scheme.
	ErrInvalidURL = errors.New("invalid URL")

	// ErrPrivateIP indicates the URL resolves to a private or loopback address.
	ErrPrivateIP = errors.New("URL resolves to private IP")

	// ErrTooManyRedirects indicates the redirect limit was exceeded.
	ErrTooManyRedirects = errors.New("too many redirects")

	// ErrTimeout indicates the request exceeded the configured timeout.
	ErrTimeout = errors.New("fetch timeout")

	// ErrBodyTooLarge indicates the response exceeded the size limit.
	ErrBodyTooLarge = errors.New("response body too large")

	// ErrReadabilityFailed indicates article extraction produced no content.
	ErrReadabilityFailed = errors.New("readability extraction failed")
)
