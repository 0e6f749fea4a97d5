// Convert command.
// One-shot pipeline: fetch → convert → render → write, without
// creating a project. Useful for inspecting what the importer would
// produce for a URL.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/saotomryo/article-to-video-pipeline/core"
	"github.com/saotomryo/article-to-video-pipeline/core/fetch"
	"github.com/saotomryo/article-to-video-pipeline/core/output"
	"github.com/saotomryo/article-to-video-pipeline/core/render"
)

var (
	flagMarkdown  bool
	flagJSON      bool
	flagPDF       bool
	flagOutputDir string
)

var convertCmd = &cobra.Command{
	Use:   "convert <url>",
	Short: "Convert a URL to the specified output format",
	Long: `Convert fetches a webpage, extracts the main article content, renders
it to Markdown with frontmatter, and writes the chosen output format.

Examples:
  vg convert https://example.com/post --markdown
  vg convert https://example.com/post --json --output_dir ./out
  vg convert https://example.com/post --pdf`,
	Args: cobra.ExactArgs(1),
	RunE: runConvert,
}

func init() {
	rootCmd.AddCommand(convertCmd)

	// Output format flags (mutually exclusive).
	convertCmd.Flags().BoolVar(&flagMarkdown, "markdown", false, "Output Markdown")
	convertCmd.Flags().BoolVar(&flagJSON, "json", false, "Output structured JSON")
	convertCmd.Flags().BoolVar(&flagPDF, "pdf", false, "Output PDF")

	convertCmd.Flags().StringVar(&flagOutputDir, "output_dir", "", "Output directory (default: current directory)")
}

func runConvert(cmd *cobra.Command, args []string) error {
	rawURL := args[0]

	renderer, err := selectRenderer()
	if err != nil {
		return err
	}

	parsed, err := url.Parse(rawURL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return fmt.Errorf("invalid URL: %s (must include scheme, e.g. https://example.com)", rawURL)
	}

	writer, err := output.New(flagOutputDir)
	if err != nil {
		return fmt.Errorf("initializing output writer: %w", err)
	}

	ctx := context.Background()
	fetcher := fetch.New()
	engine := render.NewEngine()

	result, err := fetcher.Fetch(ctx, rawURL)
	if err != nil {
		return fmt.Errorf("fetch: %w", err)
	}

	fetchedAt := time.Now()
	doc, err := engine.Convert(result.HTML, result.FinalURL, result.Title, fetchedAt)
	if err != nil {
		if errors.Is(err, core.ErrNoContent) {
			return fmt.Errorf("convert %s: %w", rawURL, err)
		}
		return fmt.Errorf("convert: %w", err)
	}

	meta := core.ArticleMeta{
		SourceURL: result.FinalURL,
		Title:     result.Title,
		FetchedAt: fetchedAt,
	}
	data, err := renderer.Render(doc, meta)
	if err != nil {
		return fmt.Errorf("render: %w", err)
	}

	path, err := writer.Write(rawURL, data, renderer.Extension())
	if err != nil {
		return err
	}
	fmt.Fprintf(os.Stdout, "✓ Written: %s\n", path)
	return nil
}

// selectRenderer checks that exactly one output format was chosen and
// returns the matching Renderer.
func selectRenderer() (core.Renderer, error) {
	count := 0
	for _, set := range []bool{flagMarkdown, flagJSON, flagPDF} {
		if set {
			count++
		}
	}
	if count == 0 {
		return nil, fmt.Errorf("exactly one output format is required: --markdown, --json, or --pdf")
	}
	if count > 1 {
		return nil, fmt.Errorf("only one output format allowed per run (got %d)", count)
	}

	switch {
	case flagMarkdown:
		return render.NewMarkdownRenderer(), nil
	case flagJSON:
		return render.NewJSONRenderer(), nil
	default:
		return render.NewPDFRenderer(), nil
	}
}
