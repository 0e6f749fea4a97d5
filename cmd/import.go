// Import command.
// Fetches an article and creates a project around it: raw HTML
// snapshot, rendered Markdown, project.json, and optionally the
// article's images.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/saotomryo/article-to-video-pipeline/core"
	"github.com/saotomryo/article-to-video-pipeline/core/fetch"
	"github.com/saotomryo/article-to-video-pipeline/core/output"
	"github.com/saotomryo/article-to-video-pipeline/core/render"
)

var (
	flagSlugValue     string
	flagForce         bool
	flagImages        bool
	flagRewriteImages bool
	flagProjectsDir   string
)

var importCmd = &cobra.Command{
	Use:   "import <url>",
	Short: "Import an article from a URL into a new project",
	Long: `Import fetches the article, renders it to Markdown with frontmatter,
and creates a project directory holding the source snapshot and output.

Examples:
  vg import https://example.com/post
  vg import https://example.com/post --slug my_article --force
  vg import https://example.com/post --images --rewrite-images`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

func init() {
	rootCmd.AddCommand(importCmd)

	importCmd.Flags().StringVar(&flagSlugValue, "slug", "", "Project slug (default: derived from URL)")
	importCmd.Flags().BoolVar(&flagForce, "force", false, "Overwrite an existing imported article")
	importCmd.Flags().BoolVar(&flagImages, "images", false, "Download the article's images")
	importCmd.Flags().BoolVar(&flagRewriteImages, "rewrite-images", false, "Rewrite image URLs in the Markdown to local paths")
	importCmd.Flags().StringVar(&flagProjectsDir, "projects_dir", "projects", "Directory holding projects")
}

func runImport(cmd *cobra.Command, args []string) error {
	rawURL := args[0]

	parsed, err := url.Parse(rawURL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return fmt.Errorf("invalid URL: %s (must include scheme, e.g. https://example.com)", rawURL)
	}

	ctx := context.Background()
	fetcher := fetch.New()

	result, err := fetcher.Fetch(ctx, rawURL)
	if err != nil {
		return fmt.Errorf("fetch: %w", err)
	}

	slug := flagSlugValue
	if slug == "" {
		slug = output.SuggestSlug(result.FinalURL, result.Title)
	}

	projectDir, err := output.InitProject(flagProjectsDir, slug)
	if err != nil {
		return err
	}

	mdPath := filepath.Join(projectDir, "source", "article.md")
	if _, err := os.Stat(mdPath); err == nil && !flagForce {
		return fmt.Errorf("already exists: %s (use --force to overwrite)", mdPath)
	}

	htmlPath := filepath.Join(projectDir, "source", "article.html")
	if err := os.WriteFile(htmlPath, []byte(result.HTML), 0644); err != nil {
		return fmt.Errorf("writing %s: %w", htmlPath, err)
	}

	engine := render.NewEngine()
	doc, err := engine.Convert(result.HTML, result.FinalURL, result.Title, time.Now())
	if err != nil {
		if !errors.Is(err, core.ErrNoContent) {
			return fmt.Errorf("convert: %w", err)
		}
		// Still write the body-less document; the user can paste
		// content in by hand.
		fmt.Fprintf(os.Stderr, "warning: no content extracted from %s\n", result.FinalURL)
	}
	if err := os.WriteFile(mdPath, []byte(doc), 0644); err != nil {
		return fmt.Errorf("writing %s: %w", mdPath, err)
	}

	if err := output.UpdateTitle(projectDir, result.Title, slug); err != nil {
		return err
	}

	fmt.Fprintf(os.Stdout, "✓ Imported: %s\n", projectDir)
	fmt.Fprintf(os.Stdout, "  markdown: %s\n", mdPath)
	fmt.Fprintf(os.Stdout, "  html:     %s\n", htmlPath)

	if flagImages {
		if err := downloadProjectImages(ctx, projectDir, flagRewriteImages); err != nil {
			return err
		}
	}
	return nil
}
