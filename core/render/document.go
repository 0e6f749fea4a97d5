// Document assembly: frontmatter + rendered body, with duplicate-H1
// removal and blank-line collapsing.
package render

import (
	"net/url"
	"strings"
	"time"

	"github.com/saotomryo/article-to-video-pipeline/core"
	"github.com/saotomryo/article-to-video-pipeline/core/extract"
	"github.com/saotomryo/article-to-video-pipeline/core/htmltree"
	"github.com/saotomryo/article-to-video-pipeline/core/textnorm"
)

// Engine is the HTML→Markdown conversion engine. It is stateless:
// conversions are pure in-memory transformations and may run
// concurrently without coordination.
type Engine struct{}

// NewEngine creates an Engine.
func NewEngine() *Engine {
	return &Engine{}
}

// Convert builds the tolerant tree, selects the content region,
// renders it to Markdown, and assembles the final document. Identical
// inputs always produce byte-identical output. When no content region
// is found and the whole-document fallback also yields no text, the
// body-less document is returned together with core.ErrNoContent.
func (e *Engine) Convert(htmlSrc, baseURL, title string, fetchedAt time.Time) (string, error) {
	root := htmltree.Build(htmlSrc)
	region := extract.Select(root)
	if region == nil {
		region = root
	}

	base, err := url.Parse(baseURL)
	if err != nil {
		// Invalid base: render with unresolved (possibly relative) URLs.
		base = nil
	}

	w := &blockWriter{base: base}
	w.walk(region)
	body := strings.TrimSpace(strings.Join(w.lines, "\n"))
	body = textnorm.CollapseBlankLines(body)
	if body == "\n" {
		body = ""
	}

	doc := assemble(body, baseURL, title, fetchedAt)
	if body == "" {
		return doc, core.ErrNoContent
	}
	return doc, nil
}

// assemble produces the final document text:
//
//	---
//	source_url: <baseURL>
//	fetched_at: <timestamp>
//	---
//
//	# <title>
//
//	<body>
//
// When the body already opens with a level-1 heading, that line (and
// the blank line after it) is dropped so the document carries exactly
// one top-level heading.
func assemble(body, baseURL, title string, fetchedAt time.Time) string {
	front := strings.Join([]string{
		"---",
		"source_url: " + baseURL,
		"fetched_at: " + fetchedAt.Format(core.TimestampLayout),
		"---",
		"",
		"# " + title,
		"",
	}, "\n")

	if strings.HasPrefix(body, "# ") {
		if i := strings.IndexByte(body, '\n'); i >= 0 {
			body = strings.TrimLeft(body[i+1:], "\n")
		} else {
			body = ""
		}
	}
	if body == "" {
		return front
	}
	return front + "\n" + body
}
