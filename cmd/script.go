// Script command.
// Splits an imported article into reading segments for the narration
// stage.
package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/saotomryo/article-to-video-pipeline/core/output"
	"github.com/saotomryo/article-to-video-pipeline/core/segment"
)

var scriptCmd = &cobra.Command{
	Use:   "script <project-dir>",
	Short: "Generate reading segments from an imported article",
	Long: `Script splits the project's rendered Markdown into heading-delimited
reading segments, writing one text file per segment plus a
segments.json index under script/.

Example:
  vg script projects/my_article`,
	Args: cobra.ExactArgs(1),
	RunE: runScript,
}

func init() {
	rootCmd.AddCommand(scriptCmd)
}

func runScript(cmd *cobra.Command, args []string) error {
	projectDir := args[0]

	mdPath := filepath.Join(projectDir, "source", "article.md")
	mdData, err := os.ReadFile(mdPath)
	if err != nil {
		return fmt.Errorf("reading %s: %w", mdPath, err)
	}

	segments := segment.Split(string(mdData))
	if len(segments) == 0 {
		return fmt.Errorf("no readable text in %s", mdPath)
	}

	indexPath, err := output.WriteSegments(projectDir, segments)
	if err != nil {
		return err
	}
	fmt.Fprintf(os.Stdout, "✓ Wrote %d segments: %s\n", len(segments), indexPath)
	return nil
}
