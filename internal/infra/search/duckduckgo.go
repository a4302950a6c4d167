package search

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"newstrust/internal/usecase/verify"

	"github.com/PuerkitoBio/goquery"
)

// searchWeb queries the HTML web search endpoint and scrapes result links.
// Hrefs are reported in the Href field because the endpoint wraps targets
// in redirect links rather than exposing the final URL directly.
func (c *Client) searchWeb(ctx context.Context, query string, limit int) ([]verify.RawResult, error) {
	form := url.Values{"q": {query}}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.cfg.WebBaseURL, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("build web search request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("User-Agent", c.cfg.UserAgent)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("execute web search: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("web search returned status %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parse web search response: %w", err)
	}

	results := make([]verify.RawResult, 0, limit)
	doc.Find("a.result__a").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		href, ok := sel.Attr("href")
		if !ok || href == "" {
			return true
		}

		results = append(results, verify.RawResult{
			Href:  resolveRedirect(href),
			Title: strings.TrimSpace(sel.Text()),
		})
		return len(results) < limit
	})

	return results, nil
}

// resolveRedirect unwraps the search engine's redirect links, which carry
// the target URL in a "uddg" query parameter. Plain links pass through.
func resolveRedirect(href string) string {
	u, err := url.Parse(href)
	if err != nil {
		return href
	}
	if target := u.Query().Get("uddg"); target != "" {
		return target
	}
	return href
}
