// Package extract implements the content region selector. It scores
// subtrees of a parsed page and picks the one most likely to hold the
// article's main readable content, discarding navigation and other
// boilerplate.
//
// The navigation test is a fixed, English-biased substring heuristic;
// pages whose navigation containers use other class names can be
// selected by mistake. That limitation is accepted rather than
// guessed around.
package extract

import (
	"strings"
	"unicode/utf8"

	"github.com/saotomryo/article-to-video-pipeline/core/htmltree"
	"github.com/saotomryo/article-to-video-pipeline/core/textnorm"
)

// navKeywords mark an element as navigation-like when its class
// attribute contains any of them.
var navKeywords = []string{
	"nav", "header", "footer", "menu", "breadcrumb", "sidebar", "share",
}

// Select returns the best content region under root, or nil when no
// candidate carries any text. Callers should fall back to the whole
// document root on nil. Select never mutates the tree.
func Select(root *htmltree.Node) *htmltree.Node {
	// Semantic containers win outright: the largest non-navigation
	// <article>, then the largest <main>.
	for _, tag := range []string{"article", "main"} {
		if best := largestByTag(root, tag); best != nil {
			return best
		}
	}

	// Otherwise the largest content-ish container.
	var best *htmltree.Node
	bestScore := 0
	for _, n := range root.Nodes() {
		if n.Tag != "div" && n.Tag != "section" {
			continue
		}
		if looksLikeNavigation(n) {
			continue
		}
		// Strictly greater, so the first candidate in document order
		// wins ties.
		if score := textLength(n); score > bestScore {
			bestScore = score
			best = n
		}
	}
	return best
}

// largestByTag returns the element with the given tag carrying the
// most text, excluding navigation-like elements; nil when every
// candidate is empty.
func largestByTag(root *htmltree.Node, tag string) *htmltree.Node {
	var best *htmltree.Node
	bestScore := 0
	for _, n := range root.Nodes() {
		if n.Tag != tag {
			continue
		}
		if looksLikeNavigation(n) {
			continue
		}
		if score := textLength(n); score > bestScore {
			bestScore = score
			best = n
		}
	}
	return best
}

// textLength scores a subtree by the rune count of its normalized
// visible text.
func textLength(n *htmltree.Node) int {
	return utf8.RuneCountInString(textnorm.Clean(n.TextContent()))
}

// looksLikeNavigation reports whether the element is site navigation
// or boilerplate rather than content.
func looksLikeNavigation(n *htmltree.Node) bool {
	switch n.Tag {
	case "nav", "header", "footer":
		return true
	}
	class := strings.ToLower(n.Attr("class"))
	for _, kw := range navKeywords {
		if strings.Contains(class, kw) {
			return true
		}
	}
	return false
}
