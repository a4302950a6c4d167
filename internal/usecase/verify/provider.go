// Package verify implements the corroboration client: it turns free text into
// an online corroboration signal by querying an external search provider and
// scoring the results against the reliability registry.
package verify

import "context"

// SearchMode selects the provider index to query. News indices are sparser
// than general web indices, so callers fall back from ModeNews to ModeWeb when
// a news query returns nothing.
type SearchMode string

const (
	// ModeNews queries the provider's news index.
	ModeNews SearchMode = "news"
	// ModeWeb queries the provider's general web index.
	ModeWeb SearchMode = "web"
)

// RawResult is one untyped search hit as returned by the provider.
// Some providers populate Href instead of URL for the link field; the two are
// treated as equivalent, URL taking precedence.
type RawResult struct {
	URL        string
	Href       string
	Title      string
	SourceName string
}

// SearchProvider is the external search boundary. Implementations must return
// results in provider order and surface transport failures as errors; the
// corroboration client converts those into a typed ERROR status.
type SearchProvider interface {
	Search(ctx context.Context, mode SearchMode, query string, limit int) ([]RawResult, error)
}
