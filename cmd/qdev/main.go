// Qdev is a packaging-script generator for python dependency layers.
//
// It generates parameterized shell scripts that build a zip archive of
// python dependencies, ready to upload as a runtime layer. The script is
// shown with syntax highlighting and can be copied to the clipboard, saved
// to disk, or pushed live to a browser preview. A standalone highlight
// command renders arbitrary source files the same way.
//
// Usage:
//
//	qdev [command] [flags]
//
// Running without arguments launches the interactive wizard.
// See 'qdev --help' for available commands.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/nathanielng/qdev/internal/version"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "qdev",
	Short: "Python Layer Packaging Script Generator",
	Long: `A utility for generating python dependency layer packaging scripts.

Pick a python version, a packaging strategy (venv+pip or uv), and a list of
dependencies; qdev generates a shell script that builds the layer zip and
shows it with syntax highlighting.

If no command is specified, the interactive wizard will launch automatically.`,
	Version: version.Version,
	RunE: func(cmd *cobra.Command, args []string) error {
		// Default behavior: run wizard when no subcommand provided
		return runWizard(cmd, args)
	},
}

func init() {
	// Disable automatic completion command generation
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("qdev %s (commit: %s)\n", version.Version, version.Commit)
	},
}
