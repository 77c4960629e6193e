// Package websearch queries DuckDuckGo's HTML endpoint without opening a
// browser and caches results in SQLite.
package websearch

import (
	"context"
	"fmt"
	"html"
	"io"
	"net/http"
	"net/url"
	"os"
	"regexp"
	"strings"
	"time"
)

const userAgent = "Mozilla/5.0 (compatible; Augi/1.0)"

// Result is one search hit.
type Result struct {
	Title   string `json:"title"`
	URL     string `json:"url"`
	Snippet string `json:"snippet"`
}

// Searcher performs web searches against a DuckDuckGo-style HTML endpoint.
type Searcher struct {
	client     *http.Client
	baseURL    string
	maxResults int
	cache      *Cache // nil disables caching
}

// NewSearcher creates a Searcher. cache may be nil to disable caching.
func NewSearcher(baseURL string, maxResults int, cache *Cache) *Searcher {
	if baseURL == "" {
		baseURL = "https://html.duckduckgo.com/html/"
	}
	if maxResults <= 0 {
		maxResults = 5
	}
	return &Searcher{
		client:     &http.Client{Timeout: 15 * time.Second},
		baseURL:    baseURL,
		maxResults: maxResults,
		cache:      cache,
	}
}

// Search runs a query and returns up to n results. Blank queries return
// nothing; cached results are served without a network call.
func (s *Searcher) Search(ctx context.Context, query string, n int) ([]Result, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, nil
	}
	if n <= 0 || n > s.maxResults {
		n = s.maxResults
	}

	cacheKey := strings.ToLower(query)
	if s.cache != nil {
		if results, ok := s.cache.Get(cacheKey); ok {
			return clip(results, n), nil
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		s.baseURL+"?q="+url.QueryEscape(query), nil)
	if err != nil {
		return nil, fmt.Errorf("websearch: build request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("websearch: request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("websearch: unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("websearch: read response: %w", err)
	}

	results := parseResults(string(body))
	if s.cache != nil {
		if err := s.cache.Put(cacheKey, results); err != nil {
			// Cache failures never fail the search.
			fmt.Fprintf(os.Stderr, "[augi] search cache write failed: %v\n", err)
		}
	}
	return clip(results, n), nil
}

// SearchWithSummary searches and renders the results as a numbered text
// block for chat output and prompt injection.
func (s *Searcher) SearchWithSummary(ctx context.Context, query string, n int) (string, error) {
	results, err := s.Search(ctx, query, n)
	if err != nil {
		return "", err
	}
	if len(results) == 0 {
		return fmt.Sprintf("No results found for %q.", query), nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Search results for %q:\n", query)
	for i, r := range results {
		fmt.Fprintf(&b, "%d. %s\n   %s\n", i+1, r.Title, r.URL)
		if r.Snippet != "" {
			fmt.Fprintf(&b, "   %s\n", r.Snippet)
		}
	}
	return b.String(), nil
}

var (
	resultAnchorRe  = regexp.MustCompile(`(?s)<a[^>]*class="[^"]*result__a[^"]*"[^>]*>(.*?)</a>`)
	resultSnippetRe = regexp.MustCompile(`(?s)<a[^>]*class="[^"]*result__snippet[^"]*"[^>]*>(.*?)</a>`)
	hrefRe          = regexp.MustCompile(`href="([^"]+)"`)
	tagRe           = regexp.MustCompile(`<[^>]+>`)
)

// parseResults pulls title/url/snippet triples out of the DuckDuckGo HTML
// results page. The page structure is simple enough that targeted patterns
// beat a full HTML parse; anything unrecognized is skipped.
func parseResults(page string) []Result {
	anchors := resultAnchorRe.FindAllString(page, -1)
	snippets := resultSnippetRe.FindAllStringSubmatch(page, -1)

	var results []Result
	for i, anchor := range anchors {
		href := hrefRe.FindStringSubmatch(anchor)
		title := resultAnchorRe.FindStringSubmatch(anchor)
		if href == nil || title == nil {
			continue
		}

		r := Result{
			Title: cleanText(title[1]),
			URL:   resolveRedirect(html.UnescapeString(href[1])),
		}
		if r.Title == "" || r.URL == "" {
			continue
		}
		if i < len(snippets) {
			r.Snippet = cleanText(snippets[i][1])
		}
		results = append(results, r)
	}
	return results
}

// resolveRedirect unwraps DuckDuckGo's /l/?uddg= redirect links to the
// destination URL.
func resolveRedirect(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return raw
	}
	if target := u.Query().Get("uddg"); target != "" {
		return target
	}
	if strings.HasPrefix(raw, "//") {
		return "https:" + raw
	}
	return raw
}

func cleanText(s string) string {
	s = tagRe.ReplaceAllString(s, "")
	return strings.TrimSpace(html.UnescapeString(s))
}

func clip(results []Result, n int) []Result {
	if len(results) > n {
		return results[:n]
	}
	return results
}
