package output_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/saotomryo/article-to-video-pipeline/core/output"
)

func TestFilenameFromURL(t *testing.T) {
	t.Parallel()

	t.Run("flattens host and path", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "example_com_docs_intro",
			output.FilenameFromURL("https://example.com/docs/intro"))
	})

	t.Run("host only", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "example_com", output.FilenameFromURL("https://example.com/"))
	})

	t.Run("replaces unsafe characters", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "example_com_a_b_c",
			output.FilenameFromURL("https://example.com/a-b.c"))
	})
}

func TestWriter(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	w, err := output.New(dir)
	require.NoError(t, err)

	path, err := w.Write("https://example.com/docs/intro", []byte("# hi\n"), ".md")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "example_com_docs_intro.md"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "# hi\n", string(data))
}
