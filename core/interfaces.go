// Package core defines the pipeline types and interfaces for the
// article importer. Each stage of the pipeline is a small, testable
// interface.
package core

import (
	"context"
	"errors"
	"time"
)

// TimestampLayout is the frontmatter timestamp format: ISO-8601 with
// a numeric UTC offset and no colon.
const TimestampLayout = "2006-01-02T15:04:05-0700"

// ErrNoContent is returned when neither the content selector nor the
// whole-document fallback yields any body text. It is the engine's
// only failure mode: malformed input degrades, it never crashes.
var ErrNoContent = errors.New("no content extracted")

// FetchResult holds the decoded HTML and response metadata from a fetch.
type FetchResult struct {
	URL        string // requested URL
	FinalURL   string // post-redirect URL; the base for link resolution
	StatusCode int
	HTML       string // decoded to UTF-8
	Title      string // og:title, <title>, or a URL-derived fallback
}

// ArticleMeta holds the metadata carried into the rendered document.
type ArticleMeta struct {
	SourceURL string    `json:"source_url"`
	Title     string    `json:"title"`
	FetchedAt time.Time `json:"fetched_at"`
}

// Segment is one reading segment of an article script, delimited by
// the Markdown headings of the rendered document.
type Segment struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Text  string `json:"text"`
}

// DownloadedImage records one article image stored locally.
type DownloadedImage struct {
	URL   string `json:"url"`
	Path  string `json:"path"`
	Bytes int    `json:"bytes"`
}

// Heading is a single heading found in the rendered Markdown.
type Heading struct {
	Level int    `json:"level"`
	Text  string `json:"text"`
}

// Link is a hyperlink found in the rendered Markdown.
type Link struct {
	Text string `json:"text"`
	Href string `json:"href"`
}

// Section is a heading-delimited span of the rendered Markdown.
type Section struct {
	Heading string `json:"heading"`
	Level   int    `json:"level"`
	Text    string `json:"text"`
}

// ArticleContent holds the body of an article in its canonical forms.
type ArticleContent struct {
	Text     string    `json:"text"`
	Markdown string    `json:"markdown"`
	Sections []Section `json:"sections"`
}

// ArticleStructure holds structural counts parsed from the Markdown.
type ArticleStructure struct {
	Headings   []Heading `json:"headings"`
	Links      []Link    `json:"links"`
	CodeBlocks int       `json:"code_blocks"`
	Lists      int       `json:"lists"`
}

// ArticleJSON is the complete JSON output for a converted article.
type ArticleJSON struct {
	Metadata  ArticleMeta      `json:"metadata"`
	Content   ArticleContent   `json:"content"`
	Structure ArticleStructure `json:"structure"`
}

// Fetcher retrieves a page and decodes it to UTF-8 text.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (*FetchResult, error)
}

// Converter turns decoded HTML into a finished Markdown document with
// frontmatter. The result is deterministic for identical inputs; the
// only possible error is ErrNoContent, alongside which the assembled
// (body-less) document is still returned.
type Converter interface {
	Convert(html, baseURL, title string, fetchedAt time.Time) (string, error)
}

// Renderer converts the assembled Markdown document into a final
// output format.
type Renderer interface {
	Render(markdown string, meta ArticleMeta) ([]byte, error)
	// Extension returns the file extension for this renderer (e.g. ".md").
	Extension() string
}
