package search

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"newstrust/internal/usecase/verify"

	"github.com/mmcdole/gofeed"
)

// searchNews queries the news RSS endpoint and parses the result feed.
// Result source names are taken from the feed item titles, which carry
// the publisher as a " - Publisher" suffix.
func (c *Client) searchNews(ctx context.Context, query string, limit int) ([]verify.RawResult, error) {
	reqURL := fmt.Sprintf("%s?q=%s&hl=en-US&gl=US&ceid=US:en",
		c.cfg.NewsBaseURL, url.QueryEscape(query))

	fp := gofeed.NewParser()
	fp.UserAgent = c.cfg.UserAgent
	fp.Client = c.client

	feed, err := fp.ParseURLWithContext(reqURL, ctx)
	if err != nil {
		return nil, fmt.Errorf("parse news feed: %w", err)
	}

	results := make([]verify.RawResult, 0, limit)
	for _, it := range feed.Items {
		if len(results) >= limit {
			break
		}
		if it.Link == "" {
			continue
		}

		title, source := splitNewsTitle(it.Title)
		results = append(results, verify.RawResult{
			URL:        it.Link,
			Title:      title,
			SourceName: source,
		})
	}

	return results, nil
}

// splitNewsTitle separates the headline from the trailing publisher name.
// News RSS titles have the form "Headline - Publisher"; when no separator
// is present the whole title is the headline and the source is empty.
func splitNewsTitle(title string) (headline, source string) {
	idx := strings.LastIndex(title, " - ")
	if idx < 0 {
		return title, ""
	}
	return strings.TrimSpace(title[:idx]), strings.TrimSpace(title[idx+3:])
}
