// Package cli provides the Cobra command structure for goqbc.
package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/yaklabco/goqbc/internal/logging"
)

// BuildInfo holds build-time version information.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// NewRootCommand creates the root goqbc command with all subcommands.
func NewRootCommand(info BuildInfo) *cobra.Command {
	var debug bool
	var configPath string
	var color string

	rootCmd := &cobra.Command{
		Use:   "goqbc",
		Short: "A quickbook documentation compiler",
		Long: `goqbc compiles quickbook markup into BoostBook XML or HTML.

A quickbook document is a metadata block followed by a body of sections,
paragraphs, lists, tables, code blocks and inline markup. goqbc parses
the document, expands macros and templates, resolves includes, and
writes pretty-printed output ready for downstream DocBook tooling.`,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			if debug {
				logging.SetLevel("debug")
			}
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags.
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false,
		"enable debug logging and pin the metadata clock")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to config file")
	rootCmd.PersistentFlags().StringVar(&color, "color", "auto",
		"colorize output: auto, always, never")

	// Add subcommands.
	rootCmd.AddCommand(newCompileCommand())
	rootCmd.AddCommand(newVersionCommand(info))

	// Apply styled help formatting.
	helpFormatter := NewHelpFormatter(color, os.Stdout)
	helpFormatter.ApplyToCommand(rootCmd)

	return rootCmd
}
