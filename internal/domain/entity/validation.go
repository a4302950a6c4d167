package entity

import (
	"fmt"
	"net"
	"net/url"
	"unicode/utf8"
)

const (
	// maxURLLength defines the maximum allowed length for URLs to prevent DoS attacks.
	maxURLLength = 2048

	// maxArticleLength caps submitted article text. Longer submissions are
	// rejected before any classification or search work is done.
	maxArticleLength = 100_000
)

// ValidateArticleText validates raw article text submitted for analysis.
// Empty or whitespace-only text and oversized text are rejected with a
// ValidationError.
func ValidateArticleText(text string) error {
	if text == "" {
		return &ValidationError{Field: "text", Message: "is required"}
	}
	if utf8.RuneCountInString(text) > maxArticleLength {
		return &ValidationError{
			Field:   "text",
			Message: fmt.Sprintf("must not exceed %d characters", maxArticleLength),
		}
	}
	return nil
}

// ValidateURL checks a submitted article URL: well-formed, http(s), with a
// host that does not resolve into a private network. The resolution check
// duplicates the fetcher's own guard so a bad URL fails at validation time
// with a field error instead of deep inside the fetch.
func ValidateURL(rawURL string) error {
	if rawURL == "" {
		return &ValidationError{Field: "url", Message: "URL is required"}
	}

	if len(rawURL) > maxURLLength {
		return &ValidationError{
			Field:   "url",
			Message: fmt.Sprintf("url must not exceed %d characters", maxURLLength),
		}
	}

	parsedURL, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("parse URL: %w", err)
	}
	if parsedURL.Scheme != "http" && parsedURL.Scheme != "https" {
		return &ValidationError{Field: "url", Message: "URL must use http or https scheme"}
	}
	if parsedURL.Host == "" {
		return &ValidationError{Field: "url", Message: "URL must have a valid host"}
	}

	// A failed lookup is left for the fetcher to report; only a resolved
	// private address is a validation error.
	ips, err := net.LookupIP(parsedURL.Hostname())
	if err == nil {
		for _, ip := range ips {
			if isPrivateIP(ip) {
				return &ValidationError{
					Field:   "url",
					Message: "url cannot point to private network",
				}
			}
		}
	}
	return nil
}

// isPrivateIP covers loopback, private ranges and link-local addresses,
// the last of which includes cloud metadata endpoints.
func isPrivateIP(ip net.IP) bool {
	return ip.IsLoopback() || ip.IsPrivate() || ip.IsLinkLocalUnicast()
}
