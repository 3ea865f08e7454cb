package enrich

import (
	"fmt"
	"net/url"
	"strings"

	"golang.org/x/net/html"

	"github.com/codexr/codexr/internal/domain"
)

// parseResults extracts search results from the DuckDuckGo HTML page.
// Result blocks are divs whose class carries both "result" and
// "results_links"; each holds a result__a title anchor and a
// result__snippet element.
func parseResults(htmlContent string, maxResults int) ([]domain.DocLink, error) {
	doc, err := html.Parse(strings.NewReader(htmlContent))
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	var results []domain.DocLink

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if len(results) >= maxResults {
			return
		}

		if n.Type == html.ElementNode && n.Data == "div" && hasClasses(n, "result", "results_links") {
			if link, ok := extractResult(n); ok {
				results = append(results, link)
			}
			// Nested divs inside a result block are not result blocks.
			return
		}

		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	return results, nil
}

// extractResult pulls title, URL, and snippet out of one result block.
func extractResult(block *html.Node) (domain.DocLink, bool) {
	var link domain.DocLink

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "a" && hasClasses(n, "result__a") {
			link.Title = textContent(n)
			link.URL = resolveResultURL(attr(n, "href"))
		}
		if n.Type == html.ElementNode && hasClasses(n, "result__snippet") {
			link.Snippet = textContent(n)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(block)

	if link.URL == "" || link.Title == "" {
		return domain.DocLink{}, false
	}
	link.Source = identifySource(link.URL)
	return link, true
}

// resolveResultURL unwraps DuckDuckGo's redirect links, which carry the
// destination in the uddg query parameter, and normalizes protocol-relative
// hrefs.
func resolveResultURL(href string) string {
	if href == "" {
		return ""
	}
	if strings.HasPrefix(href, "//") {
		href = "https:" + href
	}

	u, err := url.Parse(href)
	if err != nil {
		return ""
	}
	if dest := u.Query().Get("uddg"); dest != "" {
		return dest
	}
	if u.Scheme == "http" || u.Scheme == "https" {
		return u.String()
	}
	return ""
}

// hasClasses reports whether the node's class attribute contains every
// wanted class token.
func hasClasses(n *html.Node, wanted ...string) bool {
	classes := strings.Fields(attr(n, "class"))
	for _, w := range wanted {
		found := false
		for _, c := range classes {
			if strings.Contains(c, w) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

// textContent concatenates all text nodes under n, trimmed.
func textContent(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return strings.TrimSpace(b.String())
}
