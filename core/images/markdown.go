// Markdown-side helpers: pulling image URLs and the source URL out of
// a rendered article, and rewriting image references to local paths
// after download.
package images

import (
	"net/url"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

var (
	mdImageRegex   = regexp.MustCompile(`!\[[^\]]*\]\(([^)]+)\)`)
	htmlImageRegex = regexp.MustCompile(`(?i)<img[^>]+(?:src|data-src)=["']([^"']+)["'][^>]*>`)
)

// ExtractFromMarkdown returns the absolute image URLs referenced by
// Markdown image syntax, resolved against baseURL, in order.
func ExtractFromMarkdown(markdown, baseURL string) []string {
	base, err := url.Parse(baseURL)
	if err != nil {
		base = nil
	}
	var urls []string
	for _, m := range mdImageRegex.FindAllStringSubmatch(markdown, -1) {
		if abs := absolutize(m[1], base); abs != "" {
			urls = append(urls, abs)
		}
	}
	return urls
}

// SourceURL reads the source_url field from the document's
// frontmatter block. Only the top block is consulted to avoid false
// positives in the body.
func SourceURL(markdown string) string {
	lines := strings.Split(markdown, "\n")
	if len(lines) == 0 || strings.TrimSpace(lines[0]) != "---" {
		return ""
	}
	for i := 1; i < len(lines) && i < 60; i++ {
		line := lines[i]
		if strings.TrimSpace(line) == "---" {
			break
		}
		if strings.HasPrefix(line, "source_url:") {
			return strings.TrimSpace(strings.TrimPrefix(line, "source_url:"))
		}
	}
	return ""
}

// RewriteToLocal replaces downloaded image URLs in the Markdown (both
// Markdown image syntax and inline <img> tags) with paths relative to
// the Markdown file's directory. URLs that were not downloaded are
// left untouched.
func RewriteToLocal(markdown, rootDir, mdDir string, urlToRel map[string]string) string {
	toLocal := func(u string) string {
		rel, ok := urlToRel[u]
		if !ok {
			return u
		}
		local, err := filepath.Rel(mdDir, filepath.Join(rootDir, rel))
		if err != nil {
			return u
		}
		return filepath.ToSlash(local)
	}

	out := rewriteMatches(markdown, mdImageRegex, toLocal)
	return rewriteMatches(out, htmlImageRegex, toLocal)
}

func rewriteMatches(s string, re *regexp.Regexp, toLocal func(string) string) string {
	return re.ReplaceAllStringFunc(s, func(match string) string {
		sub := re.FindStringSubmatch(match)
		if len(sub) < 2 {
			return match
		}
		u := strings.TrimSpace(sub[1])
		return strings.Replace(match, u, toLocal(u), 1)
	})
}

// exists reports whether the path exists on disk.
func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
