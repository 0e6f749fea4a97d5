package segment_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/saotomryo/article-to-video-pipeline/core/segment"
)

func TestSplit(t *testing.T) {
	t.Parallel()

	t.Run("splits on headings with a leading intro segment", func(t *testing.T) {
		t.Parallel()

		md := `---
source_url: https://example.com/post
---

Opening paragraph.

## First

First body.

## Second

Second body.
`
		segments := segment.Split(md)
		require.Len(t, segments, 3)

		assert.Equal(t, "0001_intro", segments[0].ID)
		assert.Equal(t, "intro", segments[0].Title)
		assert.Equal(t, "Opening paragraph.", segments[0].Text)

		assert.Equal(t, "0002_first", segments[1].ID)
		assert.Equal(t, "First", segments[1].Title)
		assert.Equal(t, "First body.", segments[1].Text)

		assert.Equal(t, "0003_second", segments[2].ID)
	})

	t.Run("skips empty sections", func(t *testing.T) {
		t.Parallel()

		md := "## Empty\n\n## Full\n\ntext\n"
		segments := segment.Split(md)
		require.Len(t, segments, 1)
		assert.Equal(t, "Full", segments[0].Title)
	})

	t.Run("strips formatting from the segment text", func(t *testing.T) {
		t.Parallel()

		md := "## S\n\n**bold** and *ital* and `code` and [link](https://x) here.\n\n> quoted line\n\n![alt text](https://example.com/i.png)\n"
		segments := segment.Split(md)
		require.Len(t, segments, 1)

		text := segments[0].Text
		assert.Contains(t, text, "bold and ital and code and link here.")
		assert.Contains(t, text, "quoted line")
		assert.Contains(t, text, "alt text")
		assert.NotContains(t, text, "*")
		assert.NotContains(t, text, "](")
		assert.NotContains(t, text, ">")
	})

	t.Run("slugifies Japanese titles", func(t *testing.T) {
		t.Parallel()

		md := "## はじめに\n\n本文です。\n"
		segments := segment.Split(md)
		require.Len(t, segments, 1)
		assert.Equal(t, "0001_はじめに", segments[0].ID)
	})

	t.Run("falls back when the title has no slug-safe characters", func(t *testing.T) {
		t.Parallel()

		md := "## !!!\n\nbody\n"
		segments := segment.Split(md)
		require.Len(t, segments, 1)
		assert.Equal(t, "0001_section", segments[0].ID)
	})

	t.Run("caps long slugs", func(t *testing.T) {
		t.Parallel()

		long := "## this is a very long section title that keeps going well past the slug limit\n\nbody\n"
		segments := segment.Split(long)
		require.Len(t, segments, 1)
		assert.LessOrEqual(t, len([]rune(segments[0].ID)), 45)
	})

	t.Run("no segments for an empty document", func(t *testing.T) {
		t.Parallel()

		assert.Empty(t, segment.Split("---\nsource_url: u\n---\n"))
	})
}
