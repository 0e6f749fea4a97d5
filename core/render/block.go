// Block renderer: walks the selected subtree emitting Markdown lines,
// dispatching on block-level tags and delegating leaf text to the
// inline renderer.
package render

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/saotomryo/article-to-video-pipeline/core/htmltree"
)

// listContext tracks one open list during rendering: its kind and,
// for ordered lists, the running item counter. Contexts are stacked
// per nesting depth so an inner list's numbering never leaks into or
// out of an outer list.
type listContext struct {
	ordered bool
	counter int
}

// blockWriter accumulates output lines for one rendering pass. The
// list stack holds contexts by value; copying the slice gives a fully
// isolated snapshot (used by blockquote).
type blockWriter struct {
	base  *url.URL
	lines []string
	lists []listContext
}

func (w *blockWriter) emit(lines ...string) {
	w.lines = append(w.lines, lines...)
}

// walk renders one element. Unrecognized tags are transparent: the
// walk recurses into their children at block level. Nothing here can
// fail; unexpected shapes degrade to the transparent case.
func (w *blockWriter) walk(n *htmltree.Node) {
	switch tag := n.Tag; tag {
	case "script", "style", "noscript", "svg", "header", "footer", "nav":
		// Contribute nothing at all.

	case "h1", "h2", "h3", "h4", "h5", "h6":
		level := int(tag[1] - '0')
		if text := strings.TrimSpace(renderInline(n, w.base)); text != "" {
			w.emit(strings.Repeat("#", level)+" "+text, "")
		}

	case "p":
		if text := strings.TrimSpace(renderInline(n, w.base)); text != "" {
			w.emit(text, "")
		}

	case "blockquote":
		// Render into a separate buffer with a copied list stack so
		// numbering inside the quote is isolated both ways.
		quoted := &blockWriter{base: w.base, lists: cloneLists(w.lists)}
		for _, c := range n.Children {
			if c.IsText() {
				quoted.emit(c.Text)
			} else {
				quoted.walk(c)
			}
		}
		var kept []string
		for _, line := range quoted.lines {
			if strings.TrimSpace(line) != "" {
				kept = append(kept, line)
			}
		}
		if len(kept) > 0 {
			for _, line := range kept {
				w.emit("> " + line)
			}
			w.emit("")
		}

	case "ul", "ol":
		w.lists = append(w.lists, listContext{ordered: tag == "ol"})
		for _, c := range n.Children {
			if !c.IsText() {
				w.walk(c)
			}
		}
		w.lists = w.lists[:len(w.lists)-1]
		w.emit("")

	case "li":
		marker := "- "
		if len(w.lists) > 0 {
			top := &w.lists[len(w.lists)-1]
			if top.ordered {
				top.counter++
				marker = strconv.Itoa(top.counter) + ". "
			}
		}
		if text := strings.TrimSpace(renderInline(n, w.base)); text != "" {
			w.emit(marker + text)
		} else {
			w.emit(strings.TrimSpace(marker))
		}

	case "pre":
		// Verbatim leaf text: no inline pass, so Markdown-special
		// characters survive untouched inside the fence.
		if code := n.TextContent(); code != "" {
			w.emit("```")
			w.emit(strings.Split(code, "\n")...)
			w.emit("```", "")
		}

	case "br":
		w.emit("")

	default:
		for _, c := range n.Children {
			if c.IsText() {
				// Loose text at block level becomes its own line.
				w.emit(c.Text, "")
			} else {
				w.walk(c)
			}
		}
	}
}

func cloneLists(lists []listContext) []listContext {
	return append([]listContext(nil), lists...)
}
