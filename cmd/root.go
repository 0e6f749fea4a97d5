// Package cmd implements the CLI commands using Cobra.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "vg",
	Short: "Import web articles and prepare them for narrated video production",
	Long: `vg imports a web article, extracts the main content, and renders it
as a Markdown project ready for the narration and video stages.

Usage:
  vg import <url> [flags]
  vg convert <url> [flags]
  vg images <project-dir> [flags]
  vg script <project-dir>`,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
