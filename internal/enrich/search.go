// Package enrich adds grounding documentation links to answers via a
// keyless DuckDuckGo lookup. Enrichment is strictly best-effort: a single
// bounded attempt whose failures degrade to curated fallback links, never
// to an error.
package enrich

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/codexr/codexr/internal/configuration"
	"github.com/codexr/codexr/internal/domain"
)

const (
	searchEndpoint = "https://html.duckduckgo.com/html/"

	// maxResponseBytes caps the HTML page read.
	maxResponseBytes = 1 << 20

	// rawFetchCount is how many results we parse before ranking trims
	// them to the caller's limit.
	rawFetchCount = 10
)

// Searcher performs the documentation lookup. Construct with New.
type Searcher struct {
	client   *http.Client
	endpoint string
	timeout  time.Duration
	logger   *slog.Logger
}

// Option configures a Searcher.
type Option func(*Searcher)

// WithEndpoint overrides the search endpoint, used by tests.
func WithEndpoint(endpoint string) Option {
	return func(s *Searcher) { s.endpoint = endpoint }
}

// New creates a searcher bounded by the configured search timeout.
func New(cfg *configuration.Config, logger *slog.Logger, opts ...Option) *Searcher {
	client := cfg.HTTPClient
	if client == nil {
		client = &http.Client{}
	}
	if logger == nil {
		logger = slog.Default()
	}

	s := &Searcher{
		client:   client,
		endpoint: searchEndpoint,
		timeout:  cfg.SearchTimeout,
		logger:   logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Search fetches up to max documentation links for the query. It never
// returns an error: network failures, rate limiting, and unparsable pages
// all degrade to the category's curated fallback links (which may be
// empty). Results are ranked by source quality, de-duplicated by URL, and
// capped at max. Single attempt, no retry.
func (s *Searcher) Search(ctx context.Context, query string, category domain.Category, max int) []domain.DocLink {
	if max <= 0 {
		return nil
	}

	results, err := s.fetch(ctx, enhanceQuery(query, category))
	if err != nil {
		s.logger.Warn("search failed, using fallback documentation",
			"category", category, "error", err)
		return capLinks(fallbackLinks(category), max)
	}
	if len(results) == 0 {
		s.logger.Warn("search returned no results, using fallback documentation",
			"category", category)
		return capLinks(fallbackLinks(category), max)
	}

	rankResults(results, category)
	return capLinks(dedupeByURL(results), max)
}

// fetch performs the single bounded DuckDuckGo HTML request.
func (s *Searcher) fetch(ctx context.Context, query string) ([]domain.DocLink, error) {
	reqCtx := ctx
	if s.timeout > 0 {
		var cancel context.CancelFunc
		reqCtx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	searchURL := fmt.Sprintf("%s?q=%s", s.endpoint, url.QueryEscape(query))
	req, err := http.NewRequestWithContext(reqCtx, http.MethodGet, searchURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	// DuckDuckGo's HTML frontend expects browser-looking headers.
	req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36")
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.5")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP %d: %s", resp.StatusCode, resp.Status)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	return parseResults(string(body), rawFetchCount)
}

// enhanceQuery appends category-specific documentation terms to steer the
// search toward official docs and tutorials.
func enhanceQuery(query string, category domain.Category) string {
	terms := map[domain.Category]string{
		domain.CategoryUnity:   "Unity3D XR VR AR documentation tutorial",
		domain.CategoryUnreal:  "Unreal Engine VR AR tutorial documentation",
		domain.CategoryShader:  "Unity shader HLSL tutorial documentation",
		domain.CategoryGeneral: "AR VR development tutorial",
	}
	term, ok := terms[category]
	if !ok {
		term = terms[domain.CategoryGeneral]
	}
	return query + " " + term
}

// identifySource labels a URL with its documentation source type.
func identifySource(rawURL string) string {
	switch {
	case strings.Contains(rawURL, "docs.unity3d.com"):
		return "Unity Official"
	case strings.Contains(rawURL, "docs.unrealengine.com"):
		return "Unreal Official"
	case strings.Contains(rawURL, "github.com"):
		return "GitHub"
	case strings.Contains(rawURL, "stackoverflow.com"):
		return "StackOverflow"
	case strings.Contains(rawURL, "youtube.com"), strings.Contains(rawURL, "youtu.be"):
		return "YouTube"
	default:
		return "Web"
	}
}

// prioritySources lists the preferred source labels per category.
var prioritySources = map[domain.Category][]string{
	domain.CategoryUnity:   {"Unity Official", "GitHub"},
	domain.CategoryUnreal:  {"Unreal Official", "GitHub"},
	domain.CategoryShader:  {"Unity Official", "GitHub"},
	domain.CategoryGeneral: {"Unity Official", "Unreal Official", "GitHub"},
}

// categoryKeywords are the relevance terms scored against title+snippet.
var categoryKeywords = map[domain.Category][]string{
	domain.CategoryUnity:   {"unity", "xr", "vr", "ar", "c#"},
	domain.CategoryUnreal:  {"unreal", "ue4", "ue5", "vr", "ar", "c++"},
	domain.CategoryShader:  {"shader", "hlsl", "unity", "material"},
	domain.CategoryGeneral: {"vr", "ar", "xr", "virtual reality"},
}

// rankResults sorts links in place by descending relevance score. The sort
// is stable so equally scored results keep their search order.
func rankResults(links []domain.DocLink, category domain.Category) {
	scores := make(map[string]float64, len(links))
	for _, l := range links {
		scores[l.URL] = scoreResult(l, category)
	}
	sort.SliceStable(links, func(i, j int) bool {
		return scores[links[i].URL] > scores[links[j].URL]
	})
}

// scoreResult computes the relevance score for one result: source
// priority, keyword hits in title+snippet, and a penalty for snippets too
// short to judge.
func scoreResult(link domain.DocLink, category domain.Category) float64 {
	score := 1.0
	for _, src := range prioritySources[category] {
		if link.Source == src {
			score = 3.0
			break
		}
	}
	if score == 1.0 && link.Source == "StackOverflow" {
		score = 2.0
	}

	text := strings.ToLower(link.Title + " " + link.Snippet)
	for _, kw := range categoryKeywords[category] {
		if strings.Contains(text, kw) {
			score += 0.5
		}
	}

	if len(link.Snippet) < 50 {
		score -= 1.0
	}
	return score
}

// dedupeByURL drops duplicate URLs, keeping first occurrence.
func dedupeByURL(links []domain.DocLink) []domain.DocLink {
	seen := make(map[string]struct{}, len(links))
	out := links[:0]
	for _, l := range links {
		if _, dup := seen[l.URL]; dup {
			continue
		}
		seen[l.URL] = struct{}{}
		out = append(out, l)
	}
	return out
}

func capLinks(links []domain.DocLink, max int) []domain.DocLink {
	if len(links) > max {
		return links[:max]
	}
	return links
}
