package output_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/saotomryo/article-to-video-pipeline/core"
	"github.com/saotomryo/article-to-video-pipeline/core/output"
)

func readProject(t *testing.T, dir string) output.Project {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(dir, "project.json"))
	require.NoError(t, err)
	var p output.Project
	require.NoError(t, json.Unmarshal(data, &p))
	return p
}

func TestInitProject(t *testing.T) {
	t.Parallel()

	t.Run("creates the project skeleton", func(t *testing.T) {
		t.Parallel()

		root := t.TempDir()
		dir, err := output.InitProject(root, "my-article")
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(root, "my-article"), dir)

		for _, sub := range []string{
			"source",
			filepath.Join("script", "segments"),
			filepath.Join("assets", "images"),
		} {
			info, err := os.Stat(filepath.Join(dir, sub))
			require.NoError(t, err, sub)
			assert.True(t, info.IsDir(), sub)
		}

		p := readProject(t, dir)
		assert.Equal(t, "my-article", p.Slug)
		assert.Equal(t, "my-article", p.Title)
	})

	t.Run("leaves an existing project.json alone", func(t *testing.T) {
		t.Parallel()

		root := t.TempDir()
		dir, err := output.InitProject(root, "slug")
		require.NoError(t, err)
		require.NoError(t, output.UpdateTitle(dir, "Custom", "slug"))

		_, err = output.InitProject(root, "slug")
		require.NoError(t, err)
		assert.Equal(t, "Custom", readProject(t, dir).Title)
	})
}

func TestUpdateTitle(t *testing.T) {
	t.Parallel()

	t.Run("replaces the default title", func(t *testing.T) {
		t.Parallel()

		root := t.TempDir()
		dir, err := output.InitProject(root, "slug")
		require.NoError(t, err)

		require.NoError(t, output.UpdateTitle(dir, "Fetched Title", "slug"))
		assert.Equal(t, "Fetched Title", readProject(t, dir).Title)
	})

	t.Run("never clobbers a customized title", func(t *testing.T) {
		t.Parallel()

		root := t.TempDir()
		dir, err := output.InitProject(root, "slug")
		require.NoError(t, err)
		require.NoError(t, output.UpdateTitle(dir, "Hand-picked", "slug"))

		require.NoError(t, output.UpdateTitle(dir, "Other", "slug"))
		assert.Equal(t, "Hand-picked", readProject(t, dir).Title)
	})

	t.Run("no project.json is not an error", func(t *testing.T) {
		t.Parallel()

		assert.NoError(t, output.UpdateTitle(t.TempDir(), "T", "slug"))
	})
}

func TestWriteSegments(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	dir, err := output.InitProject(root, "slug")
	require.NoError(t, err)

	segments := []core.Segment{
		{ID: "0001_intro", Title: "intro", Text: "opening"},
		{ID: "0002_first", Title: "First", Text: "body"},
	}

	indexPath, err := output.WriteSegments(dir, segments)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "script", "segments.json"), indexPath)

	data, err := os.ReadFile(filepath.Join(dir, "script", "segments", "0001_intro.txt"))
	require.NoError(t, err)
	assert.Equal(t, "opening\n", string(data))

	var index []struct {
		ID       string `json:"id"`
		Title    string `json:"title"`
		TextPath string `json:"text_path"`
	}
	indexData, err := os.ReadFile(indexPath)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(indexData, &index))
	require.Len(t, index, 2)
	assert.Equal(t, "0002_first", index[1].ID)
	assert.Equal(t, "script/segments/0002_first.txt", index[1].TextPath)
}

func TestSuggestSlug(t *testing.T) {
	t.Parallel()

	t.Run("uses the path stem", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "hello-world",
			output.SuggestSlug("https://example.com/posts/hello-world.html", "T"))
	})

	t.Run("falls back to the host", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "example_com", output.SuggestSlug("https://example.com/", "T"))
	})

	t.Run("falls back to the title", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "my_title", output.SuggestSlug("", "My Title"))
	})

	t.Run("keeps Japanese characters", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "はじめての記事",
			output.SuggestSlug("https://example.com/はじめての記事", ""))
	})

	t.Run("generic fallback", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "article", output.SuggestSlug("", ""))
	})
}
