package fetch_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/saotomryo/article-to-video-pipeline/core/fetch"
)

func TestTitle(t *testing.T) {
	t.Parallel()

	t.Run("prefers the OpenGraph title", func(t *testing.T) {
		t.Parallel()

		html := `<head>
			<meta property="og:title" content="OG Title">
			<title>Tab Title</title>
		</head>`
		assert.Equal(t, "OG Title", fetch.Title(html))
	})

	t.Run("accepts name= on the og:title meta", func(t *testing.T) {
		t.Parallel()

		html := `<meta name="og:title" content="Named">`
		assert.Equal(t, "Named", fetch.Title(html))
	})

	t.Run("falls back to the title element", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, "Tab Title", fetch.Title(`<title>Tab Title</title>`))
	})

	t.Run("cleans entities and whitespace", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, "A & B", fetch.Title("<title>\n  A &amp;\n  B\n</title>"))
	})

	t.Run("empty when no title is present", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, "", fetch.Title(`<p>no title here</p>`))
	})
}

func TestTitleFromURL(t *testing.T) {
	t.Parallel()

	t.Run("uses the last path element", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "my-post", fetch.TitleFromURL("https://example.com/blog/my-post"))
	})

	t.Run("falls back to the host", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "example.com", fetch.TitleFromURL("https://example.com/"))
	})

	t.Run("falls back to a generic name", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "article", fetch.TitleFromURL(""))
	})
}
