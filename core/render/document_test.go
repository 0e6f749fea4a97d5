package render_test

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/saotomryo/article-to-video-pipeline/core"
	"github.com/saotomryo/article-to-video-pipeline/core/render"
)

// Ensure Engine implements core.Converter at compile time.
var _ core.Converter = (*render.Engine)(nil)

var fetchedAt = time.Date(2024, 5, 1, 10, 30, 0, 0, time.FixedZone("JST", 9*60*60))

func convert(t *testing.T, html, baseURL, title string) string {
	t.Helper()
	doc, err := render.NewEngine().Convert(html, baseURL, title, fetchedAt)
	require.NoError(t, err)
	return doc
}

func TestConvert(t *testing.T) {
	t.Parallel()

	t.Run("assembles frontmatter, title and body", func(t *testing.T) {
		t.Parallel()

		doc := convert(t,
			`<article><p>Body text.</p></article>`,
			"https://example.com/page", "My Title")

		want := strings.Join([]string{
			"---",
			"source_url: https://example.com/page",
			"fetched_at: 2024-05-01T10:30:00+0900",
			"---",
			"",
			"# My Title",
			"",
			"Body text.",
			"",
		}, "\n")
		assert.Equal(t, want, doc)
	})

	t.Run("is deterministic", func(t *testing.T) {
		t.Parallel()

		html := `<article><h2>A</h2><p>b <a href="/x">c</a></p><ul><li>d</li></ul></article>`
		first := convert(t, html, "https://example.com/p", "T")
		second := convert(t, html, "https://example.com/p", "T")
		assert.Equal(t, first, second)
	})

	t.Run("drops a duplicate top-level heading from the body", func(t *testing.T) {
		t.Parallel()

		doc := convert(t,
			`<article><h1>Title</h1><p>Body</p></article>`,
			"https://example.com/page", "Title")

		assert.Equal(t, 1, strings.Count(doc, "# Title"))
		assert.Contains(t, doc, "# Title\n\nBody\n")
	})

	t.Run("reports no content alongside the body-less document", func(t *testing.T) {
		t.Parallel()

		doc, err := render.NewEngine().Convert(
			`<div><script>nothing()</script></div>`,
			"https://example.com/x", "Empty", fetchedAt)

		assert.ErrorIs(t, err, core.ErrNoContent)
		assert.Contains(t, doc, "# Empty")
	})

	t.Run("renders headings by level", func(t *testing.T) {
		t.Parallel()

		doc := convert(t,
			`<article><h2>Second</h2><h3>Third</h3></article>`,
			"https://example.com/", "T")

		assert.Contains(t, doc, "## Second\n")
		assert.Contains(t, doc, "### Third\n")
	})

	t.Run("resolves relative links against the base URL", func(t *testing.T) {
		t.Parallel()

		doc := convert(t,
			`<article><p><a href="/x">t</a></p></article>`,
			"https://example.com/page", "T")

		assert.Contains(t, doc, "[t](https://example.com/x)")
	})

	t.Run("uses the href as link text when the anchor is empty", func(t *testing.T) {
		t.Parallel()

		doc := convert(t,
			`<article><p><a href="https://example.com/x"></a></p></article>`,
			"https://example.com/page", "T")

		assert.Contains(t, doc, "[https://example.com/x](https://example.com/x)")
	})

	t.Run("renders images with and without alt text", func(t *testing.T) {
		t.Parallel()

		doc := convert(t,
			`<article><p><img src="/i.png" alt="pic"> and <img src="/j.png"></p></article>`,
			"https://example.com/page", "T")

		assert.Contains(t, doc, "![pic](https://example.com/i.png)")
		assert.Contains(t, doc, "![](https://example.com/j.png)")
	})

	t.Run("renders emphasis and escapes backticks in code spans", func(t *testing.T) {
		t.Parallel()

		doc := convert(t,
			"<article><p><strong>b</strong> <em>i</em> <code>a`b</code></p></article>",
			"https://example.com/", "T")

		assert.Contains(t, doc, "**b** *i* `a\\`b`")
	})

	t.Run("restarts inner ordered list numbering and resumes the outer list", func(t *testing.T) {
		t.Parallel()

		doc := convert(t,
			`<article><ol><li>a</li><ol><li>x</li><li>y</li></ol><li>b</li></ol></article>`,
			"https://example.com/", "T")

		body := doc[strings.Index(doc, "1. a"):]
		assert.Equal(t, "1. a\n1. x\n2. y\n\n2. b\n", body)
	})

	t.Run("isolates list numbering inside blockquotes", func(t *testing.T) {
		t.Parallel()

		doc := convert(t,
			`<article><ol><li>one</li><blockquote><ol><li>quoted</li></ol></blockquote><li>two</li></ol></article>`,
			"https://example.com/", "T")

		assert.Contains(t, doc, "1. one\n> 1. quoted\n\n2. two\n")
	})

	t.Run("prefixes blockquote lines", func(t *testing.T) {
		t.Parallel()

		doc := convert(t,
			`<article><blockquote><p>first</p><p>second</p></blockquote></article>`,
			"https://example.com/", "T")

		assert.Contains(t, doc, "> first\n> second\n")
	})

	t.Run("keeps pre content verbatim inside the fence", func(t *testing.T) {
		t.Parallel()

		doc := convert(t,
			"<article><pre>*not em* `tick` [not a link](x)</pre></article>",
			"https://example.com/", "T")

		assert.Contains(t, doc, "```\n*not em* `tick` [not a link](x)\n```\n")
	})

	t.Run("separates unclosed paragraphs", func(t *testing.T) {
		t.Parallel()

		doc := convert(t,
			`<article><p>first<p>second</p></article>`,
			"https://example.com/", "T")

		assert.Contains(t, doc, "first\n\nsecond\n")
	})

	t.Run("collapses runs of blank lines in the final document", func(t *testing.T) {
		t.Parallel()

		doc := convert(t,
			`<article><p>a</p><br><br><br><br><p>b</p></article>`,
			"https://example.com/", "T")

		assert.Contains(t, doc, "a\n\nb\n")
		assert.NotContains(t, doc, "\n\n\n")
	})

	t.Run("skips navigation and suppressed subtrees entirely", func(t *testing.T) {
		t.Parallel()

		doc := convert(t,
			`<article><nav>nav text</nav><header>head</header><p>kept</p><script>var x;</script></article>`,
			"https://example.com/", "T")

		assert.Contains(t, doc, "kept")
		assert.NotContains(t, doc, "nav text")
		assert.NotContains(t, doc, "head")
		assert.NotContains(t, doc, "var x;")
	})

	t.Run("flattens unrecognized inline tags", func(t *testing.T) {
		t.Parallel()

		doc := convert(t,
			`<article><p><span>kept</span> <abbr>too</abbr></p></article>`,
			"https://example.com/", "T")

		assert.Contains(t, doc, "kept too")
	})

	t.Run("emits loose block-level text as its own paragraph", func(t *testing.T) {
		t.Parallel()

		doc := convert(t,
			`<article>loose text<p>para</p></article>`,
			"https://example.com/", "T")

		assert.Contains(t, doc, "loose text\n\npara\n")
	})

	t.Run("keeps unresolvable URLs as written", func(t *testing.T) {
		t.Parallel()

		doc := convert(t,
			`<article><p><a href="/x">t</a></p></article>`,
			"http://bad url with spaces", "T")

		assert.Contains(t, doc, "[t](/x)")
	})

	t.Run("falls back to the whole document when no region is found", func(t *testing.T) {
		t.Parallel()

		doc := convert(t,
			`<p>bare paragraph outside any container</p>`,
			"https://example.com/", "T")

		assert.Contains(t, doc, "bare paragraph outside any container")
	})
}
