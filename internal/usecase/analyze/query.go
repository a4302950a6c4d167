package analyze

import "strings"

// maxQueryLength caps the derived search query so search backends do not
// reject overlong requests.
const maxQueryLength = 150

// DeriveQuery extracts the corroboration search query from article text:
// the first sentence, capped at 150 characters. The query is derived from
// the raw text so named entities keep their casing for search.
func DeriveQuery(text string) string {
	query := text
	if i := strings.IndexByte(query, '.'); i >= 0 {
		query = query[:i]
	}
	if len(query) > maxQueryLength {
		query = query[:maxQueryLength]
	}
	return query
}
