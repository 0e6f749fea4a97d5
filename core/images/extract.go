// Package images collects article image URLs and downloads them into
// a project's assets directory. Extraction reads both the rendered
// Markdown and the raw HTML, since some pages carry their images only
// in lazy-loading attributes or metadata that never reach the
// Markdown body.
package images

import (
	"fmt"
	"net/url"
	"path"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

var imageExtensions = map[string]bool{
	".png": true, ".jpg": true, ".jpeg": true,
	".webp": true, ".gif": true, ".avif": true, ".svg": true,
}

// ExtractURLs returns the ordered, de-duplicated absolute image URLs
// referenced by the page: img src and lazy-loading variants, srcset
// entries, picture sources, and og:image/twitter:image/link metadata.
func ExtractURLs(htmlSrc, baseURL string) ([]string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlSrc))
	if err != nil {
		return nil, fmt.Errorf("parsing HTML: %w", err)
	}

	base, err := url.Parse(baseURL)
	if err != nil {
		base = nil
	}

	var urls []string
	add := func(raw string) {
		if abs := absolutize(raw, base); abs != "" && looksLikeImageURL(abs) {
			urls = append(urls, abs)
		}
	}

	doc.Find("img, source, meta, link").Each(func(_ int, s *goquery.Selection) {
		switch goquery.NodeName(s) {
		case "img":
			add(s.AttrOr("src", ""))
			add(s.AttrOr("data-src", ""))
			add(s.AttrOr("data-original", ""))
			add(s.AttrOr("data-lazy-src", ""))
			for _, u := range parseSrcset(s.AttrOr("srcset", "")) {
				add(u)
			}
			for _, u := range parseSrcset(s.AttrOr("data-srcset", "")) {
				add(u)
			}
		case "source":
			for _, u := range parseSrcset(s.AttrOr("srcset", "")) {
				add(u)
			}
		case "meta":
			key := s.AttrOr("property", "")
			if key == "" {
				key = s.AttrOr("name", "")
			}
			switch strings.ToLower(key) {
			case "og:image", "twitter:image", "twitter:image:src":
				add(s.AttrOr("content", ""))
			}
		case "link":
			rel := strings.ToLower(s.AttrOr("rel", ""))
			if rel == "image_src" {
				add(s.AttrOr("href", ""))
			}
			if rel == "preload" && strings.ToLower(s.AttrOr("as", "")) == "image" {
				add(s.AttrOr("href", ""))
			}
		}
	})

	return DedupeByLocation(urls), nil
}

// DedupeByLocation removes duplicate URLs, keeping first occurrences
// in order. Two URLs are duplicates when scheme, host and path match,
// so cache-busting query strings don't produce repeated downloads.
func DedupeByLocation(urls []string) []string {
	seen := make(map[string]bool, len(urls))
	out := make([]string, 0, len(urls))
	for _, u := range urls {
		key := u
		if parsed, err := url.Parse(u); err == nil {
			key = parsed.Scheme + "://" + parsed.Host + parsed.Path
		}
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, u)
	}
	return out
}

// absolutize cleans a raw attribute value and resolves it against the
// base URL. Non-fetchable schemes and unresolvable relative URLs
// yield "".
func absolutize(raw string, base *url.URL) string {
	raw = html.UnescapeString(strings.Trim(strings.TrimSpace(raw), `"'`))
	if raw == "" {
		return ""
	}
	for _, prefix := range []string{"data:", "javascript:", "about:"} {
		if strings.HasPrefix(raw, prefix) {
			return ""
		}
	}
	if strings.HasPrefix(raw, "http://") || strings.HasPrefix(raw, "https://") {
		return raw
	}
	if base == nil {
		return ""
	}
	ref, err := url.Parse(raw)
	if err != nil {
		return ""
	}
	return base.ResolveReference(ref).String()
}

// parseSrcset splits a srcset value ("url 1x, url2 2x" or
// "url 400w, url2 800w") into its candidate URLs.
func parseSrcset(srcset string) []string {
	var out []string
	for _, part := range strings.Split(srcset, ",") {
		fields := strings.Fields(part)
		if len(fields) == 0 {
			continue
		}
		out = append(out, fields[0])
	}
	return out
}

// looksLikeImageURL filters out non-image URLs that arrive via the
// scraped attributes (tracking pixels aside, pages link plenty of
// non-image resources from <link> and srcset-bearing markup).
func looksLikeImageURL(raw string) bool {
	parsed, err := url.Parse(raw)
	if err != nil {
		return false
	}
	if imageExtensions[strings.ToLower(path.Ext(parsed.Path))] {
		return true
	}
	// Some CDNs serve images from extensionless endpoints.
	return strings.Contains(strings.ToLower(parsed.Host), "assets.st-note.com")
}
