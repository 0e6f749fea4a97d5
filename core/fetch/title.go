package fetch

import (
	"net/url"
	"path"
	"regexp"

	"github.com/saotomryo/article-to-video-pipeline/core/textnorm"
)

var (
	ogTitleRegex = regexp.MustCompile(`(?i)<meta\s+[^>]*(?:property|name)=["']og:title["'][^>]*content=["']([^"']+)["'][^>]*>`)
	titleRegex   = regexp.MustCompile(`(?is)<title[^>]*>(.*?)</title>`)
)

// Title extracts the page title from raw HTML, preferring the
// OpenGraph title over the <title> element. Returns "" when neither
// is present.
func Title(html string) string {
	if m := ogTitleRegex.FindStringSubmatch(html); m != nil {
		return textnorm.Clean(m[1])
	}
	if m := titleRegex.FindStringSubmatch(html); m != nil {
		return textnorm.Clean(m[1])
	}
	return ""
}

// TitleFromURL derives a fallback title from the URL: the last path
// element, then the host, then "article".
func TitleFromURL(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return "article"
	}
	last := path.Base(parsed.Path)
	if last == "/" || last == "." {
		last = ""
	}
	if last == "" {
		last = parsed.Host
	}
	if last == "" {
		last = "article"
	}
	return last
}
