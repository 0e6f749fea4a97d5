// Markdown output renderer: a passthrough, since the assembled
// Markdown document is already the pipeline's canonical format.
package render

import "github.com/saotomryo/article-to-video-pipeline/core"

// MarkdownRenderer writes the assembled document as-is.
type MarkdownRenderer struct{}

// NewMarkdownRenderer creates a MarkdownRenderer.
func NewMarkdownRenderer() *MarkdownRenderer {
	return &MarkdownRenderer{}
}

// Render returns the Markdown document as bytes.
func (r *MarkdownRenderer) Render(markdown string, meta core.ArticleMeta) ([]byte, error) {
	return []byte(markdown), nil
}

// Extension returns the file extension for Markdown output.
func (r *MarkdownRenderer) Extension() string {
	return ".md"
}
