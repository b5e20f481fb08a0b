// Package crawl expands a batch root into the list of export sources for
// --all mode. A directory is walked for export files; an index page is
// scanned for links to exports on the same host. Discovery is kept
// separate from the conversion pipeline.
package crawl

import (
	"context"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/gaurav-prasanna/qbformat/core"
	"github.com/gaurav-prasanna/qbformat/core/fetch"
)

// maxSources bounds a single batch run.
const maxSources = 500

// DiscoverAll returns the export sources under root, in a stable order.
// A plain file (or a URL that serves JSON directly) yields only itself.
func DiscoverAll(ctx context.Context, root string, fetcher core.Fetcher) ([]string, error) {
	if fetch.IsURL(root) {
		return discoverFromIndex(ctx, root, fetcher)
	}

	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", root, err)
	}
	if !info.IsDir() {
		return []string{root}, nil
	}
	return discoverFromDir(root)
}

// discoverFromDir walks root in lexical order, skipping hidden entries.
func discoverFromDir(root string) ([]string, error) {
	queue := NewQueue(filepath.Clean)

	err := filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if p != root && IsHidden(d.Name()) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() || !IsExportFile(p) {
			return nil
		}
		queue.Add(p)
		if queue.Len() >= maxSources {
			return filepath.SkipAll
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking %s: %w", root, err)
	}
	return queue.All(), nil
}

// discoverFromIndex fetches an index page and collects its export links.
func discoverFromIndex(ctx context.Context, indexURL string, fetcher core.Fetcher) ([]string, error) {
	base, err := url.Parse(indexURL)
	if err != nil {
		return nil, fmt.Errorf("parsing index URL: %w", err)
	}

	result, err := fetcher.Fetch(ctx, indexURL)
	if err != nil {
		return nil, fmt.Errorf("fetching index: %w", err)
	}
	body := strings.TrimSpace(result.Body)
	if strings.HasPrefix(body, "{") || strings.HasPrefix(body, "[") {
		return []string{indexURL}, nil
	}

	links, err := extractLinks(result.Body, base)
	if err != nil {
		return nil, fmt.Errorf("parsing index: %w", err)
	}

	queue := NewQueue(NormalizeURL)
	for _, link := range links {
		if IsSameDomain(link, base.Host) && IsExportFile(link) {
			queue.Add(link)
		}
		if queue.Len() >= maxSources {
			break
		}
	}
	if queue.Len() == 0 {
		return []string{indexURL}, nil
	}
	return queue.All(), nil
}

// extractLinks extracts all href values from <a> tags, resolving relative URLs.
func extractLinks(html string, base *url.URL) ([]string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, err
	}

	var links []string
	doc.Find("a[href]").Each(func(_ int, s *goquery.Selection) {
		href, exists := s.Attr("href")
		if !exists || href == "" {
			return
		}
		if resolved := resolveURL(href, base); resolved != "" {
			links = append(links, resolved)
		}
	})
	return links, nil
}

// resolveURL resolves a potentially relative URL against a base.
func resolveURL(href string, base *url.URL) string {
	if strings.HasPrefix(href, "mailto:") || strings.HasPrefix(href, "javascript:") ||
		strings.HasPrefix(href, "tel:") || strings.HasPrefix(href, "#") {
		return ""
	}

	parsed, err := url.Parse(href)
	if err != nil {
		return ""
	}

	resolved := base.ResolveReference(parsed)
	resolved.Fragment = ""
	return resolved.String()
}
