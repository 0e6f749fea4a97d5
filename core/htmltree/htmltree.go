// Package htmltree builds a lightweight element/text tree from raw
// HTML. The builder is deliberately tolerant: mismatched or
// overlapping tags degrade to a flatter tree instead of failing, so
// adversarial markup can never abort a conversion. It is not an HTML5
// tree-construction implementation: there is no foster-parenting,
// table reparenting, or script handling.
package htmltree

import (
	"strings"

	"golang.org/x/net/html"

	"github.com/saotomryo/article-to-video-pipeline/core/textnorm"
)

// voidTags can never acquire children; the builder does not open a
// scope for them.
var voidTags = map[string]bool{
	"meta": true, "link": true, "img": true,
	"br": true, "hr": true, "input": true,
}

// suppressedTags keep their children in the tree but contribute no
// text downstream.
var suppressedTags = map[string]bool{
	"script": true, "style": true, "noscript": true, "svg": true,
}

// Suppressed reports whether text under the given tag is hidden from
// all downstream consumers.
func Suppressed(tag string) bool {
	return suppressedTags[tag]
}

// Node is either a text leaf or an element. A text leaf has a
// non-empty, normalized Text and an empty Tag. An element has a
// lowercased Tag, an attribute map with lowercased keys (last
// occurrence wins on duplicates), and an ordered list of children.
type Node struct {
	Tag      string
	Attrs    map[string]string
	Children []*Node
	Text     string
}

// IsText reports whether n is a text leaf.
func (n *Node) IsText() bool {
	return n.Tag == ""
}

// Attr returns the value of the named attribute, or "" when absent.
func (n *Node) Attr(key string) string {
	return n.Attrs[key]
}

// Build parses raw HTML into a tree rooted at a synthetic "document"
// element. It never fails: unparseable input simply yields a smaller
// or flatter tree.
func Build(src string) *Node {
	root := &Node{Tag: "document", Attrs: map[string]string{}}
	stack := []*Node{root}

	z := html.NewTokenizer(strings.NewReader(src))
	for {
		switch z.Next() {
		case html.ErrorToken:
			// io.EOF or malformed input; keep whatever was built.
			return root

		case html.StartTagToken, html.SelfClosingTagToken:
			tok := z.Token()
			attrs := make(map[string]string, len(tok.Attr))
			for _, a := range tok.Attr {
				attrs[strings.ToLower(a.Key)] = a.Val
			}
			el := &Node{Tag: strings.ToLower(tok.Data), Attrs: attrs}
			// A new paragraph or list item implicitly closes an open
			// one of the same kind, so unclosed runs stay siblings.
			if el.Tag == "p" || el.Tag == "li" {
				if top := stack[len(stack)-1]; top.Tag == el.Tag {
					stack = stack[:len(stack)-1]
				}
			}
			top := stack[len(stack)-1]
			top.Children = append(top.Children, el)
			if tok.Type == html.StartTagToken && !voidTags[el.Tag] {
				stack = append(stack, el)
			}

		case html.EndTagToken:
			tok := z.Token()
			name := strings.ToLower(tok.Data)
			// Pop to the nearest matching open element, implicitly
			// closing anything opened above it. Unmatched end tags
			// are ignored; the root is never popped.
			for i := len(stack) - 1; i > 0; i-- {
				if stack[i].Tag == name {
					stack = stack[:i]
					break
				}
			}

		case html.TextToken:
			txt := textnorm.Clean(z.Token().Data)
			if txt == "" {
				continue
			}
			top := stack[len(stack)-1]
			top.Children = append(top.Children, &Node{Text: txt})
		}
	}
}

// TextContent returns the subtree's visible text: every descendant
// text leaf in document order joined by single spaces. Subtrees under
// suppressed tags contribute nothing. The traversal uses an explicit
// work stack so depth is bounded on adversarially nested input.
func (n *Node) TextContent() string {
	var parts []string
	work := []*Node{n}
	for len(work) > 0 {
		cur := work[len(work)-1]
		work = work[:len(work)-1]
		if cur.IsText() {
			parts = append(parts, cur.Text)
			continue
		}
		if suppressedTags[cur.Tag] {
			continue
		}
		for i := len(cur.Children) - 1; i >= 0; i-- {
			work = append(work, cur.Children[i])
		}
	}
	return strings.Join(parts, " ")
}

// Nodes returns the subtree's nodes in document (preorder) order,
// starting with n itself.
func (n *Node) Nodes() []*Node {
	var out []*Node
	work := []*Node{n}
	for len(work) > 0 {
		cur := work[len(work)-1]
		work = work[:len(work)-1]
		out = append(out, cur)
		for i := len(cur.Children) - 1; i >= 0; i-- {
			work = append(work, cur.Children[i])
		}
	}
	return out
}
