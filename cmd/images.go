// Images command.
// Downloads the images referenced by an imported article into the
// project's assets directory, with an optional rewrite of the
// Markdown to point at the local copies.
package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/saotomryo/article-to-video-pipeline/core/images"
)

var flagRewrite bool

var imagesCmd = &cobra.Command{
	Use:   "images <project-dir>",
	Short: "Download the images referenced by an imported article",
	Long: `Images reads the project's rendered Markdown (and the raw HTML
snapshot as a fallback), downloads every referenced image into
assets/images/article, and writes an images.json manifest.

Examples:
  vg images projects/my_article
  vg images projects/my_article --rewrite`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return downloadProjectImages(context.Background(), args[0], flagRewrite)
	},
}

func init() {
	rootCmd.AddCommand(imagesCmd)

	imagesCmd.Flags().BoolVar(&flagRewrite, "rewrite", false, "Rewrite image URLs in the Markdown to local paths")
}

// downloadProjectImages collects image URLs from the project's
// Markdown and HTML snapshot, downloads them, writes the manifest,
// and optionally rewrites the Markdown in place.
func downloadProjectImages(ctx context.Context, projectDir string, rewrite bool) error {
	mdPath := filepath.Join(projectDir, "source", "article.md")
	mdData, err := os.ReadFile(mdPath)
	if err != nil {
		return fmt.Errorf("reading %s: %w", mdPath, err)
	}
	md := string(mdData)

	baseURL := images.SourceURL(md)
	urls := images.ExtractFromMarkdown(md, baseURL)

	// Fallback: some pages carry their images only in lazy-loading
	// attributes or metadata that never reach the Markdown body.
	htmlPath := filepath.Join(projectDir, "source", "article.html")
	if htmlData, err := os.ReadFile(htmlPath); err == nil {
		fromHTML, err := images.ExtractURLs(string(htmlData), baseURL)
		if err != nil {
			return fmt.Errorf("extracting image URLs: %w", err)
		}
		urls = images.DedupeByLocation(append(urls, fromHTML...))
	}

	if len(urls) == 0 {
		fmt.Fprintln(os.Stdout, "No images found")
		return nil
	}

	outDir := filepath.Join(projectDir, "assets", "images", "article")
	downloader := images.NewDownloader()
	downloaded, mapping, err := downloader.FetchAll(ctx, urls, projectDir, outDir)
	if err != nil {
		return err
	}
	if err := images.WriteManifest(outDir, downloaded, time.Now()); err != nil {
		return err
	}
	fmt.Fprintf(os.Stdout, "✓ Downloaded %d images to %s\n", len(downloaded), outDir)

	if rewrite {
		rewritten := images.RewriteToLocal(md, projectDir, filepath.Dir(mdPath), mapping)
		if rewritten != md {
			if err := os.WriteFile(mdPath, []byte(rewritten), 0644); err != nil {
				return fmt.Errorf("rewriting %s: %w", mdPath, err)
			}
			fmt.Fprintf(os.Stdout, "✓ Rewrote image URLs in %s\n", mdPath)
		}
	}
	return nil
}
