// Package render converts a selected content subtree into normalized
// Markdown and assembles the final document. This file implements the
// inline renderer: links, images, emphasis, and code spans flattened
// into a single normalized line.
package render

import (
	"net/url"
	"strings"

	"github.com/saotomryo/article-to-video-pipeline/core/htmltree"
	"github.com/saotomryo/article-to-video-pipeline/core/textnorm"
)

// renderInline flattens a node's children into one Markdown line.
// Fragments are joined with single spaces and re-normalized, so
// injected markup never produces double spacing or stray whitespace
// around punctuation.
func renderInline(n *htmltree.Node, base *url.URL) string {
	parts := make([]string, 0, len(n.Children))
	for _, c := range n.Children {
		var s string
		if c.IsText() {
			s = c.Text
		} else {
			s = renderInlineElement(c, base)
		}
		if strings.TrimSpace(s) != "" {
			parts = append(parts, s)
		}
	}
	return textnorm.Clean(strings.Join(parts, " "))
}

func renderInlineElement(n *htmltree.Node, base *url.URL) string {
	switch n.Tag {
	case "script", "style", "noscript", "svg":
		return ""

	case "a":
		href := strings.TrimSpace(n.Attr("href"))
		text := strings.TrimSpace(renderInline(n, base))
		if text == "" {
			text = href
		}
		if href == "" {
			return text
		}
		return "[" + text + "](" + absolutize(href, base) + ")"

	case "img":
		src := strings.TrimSpace(n.Attr("src"))
		if src == "" {
			src = strings.TrimSpace(n.Attr("data-src"))
		}
		if src == "" {
			return ""
		}
		alt := strings.TrimSpace(n.Attr("alt"))
		return "![" + alt + "](" + absolutize(src, base) + ")"

	case "strong", "b":
		if inner := strings.TrimSpace(renderInline(n, base)); inner != "" {
			return "**" + inner + "**"
		}
		return ""

	case "em", "i":
		if inner := strings.TrimSpace(renderInline(n, base)); inner != "" {
			return "*" + inner + "*"
		}
		return ""

	case "code":
		inner := strings.TrimSpace(renderInline(n, base))
		inner = strings.ReplaceAll(inner, "`", "\\`")
		if inner != "" {
			return "`" + inner + "`"
		}
		return ""

	case "br":
		return "\n"

	default:
		// Unrecognized formatting is flattened, not dropped.
		return renderInline(n, base)
	}
}

// absolutize resolves a possibly-relative reference against the page
// URL. A structurally invalid reference falls back to the original
// string rather than aborting the conversion.
func absolutize(ref string, base *url.URL) string {
	if base == nil {
		return ref
	}
	parsed, err := url.Parse(ref)
	if err != nil {
		return ref
	}
	return base.ResolveReference(parsed).String()
}
