// Package cmd contains all the CLI commands for the application,
// built using the Cobra library.
package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// errReported marks failures the user has already been told about.
var errReported = errors.New("reported")

// NewRootCmd builds the command tree.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "github-repos",
		Short: "A CLI tool to look up a GitHub user's repositories.",
		Long: `github-repos lists the public repositories of a GitHub user and lets you
open or share each repository's link. The last username that was found is
remembered and searched again on the next start.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Add a persistent flag for verbose output, available to all commands.
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose/debug logging")
	rootCmd.PersistentFlags().String("config", "", "Config file (default $XDG_CONFIG_HOME/github-repos/config.yaml)")
	rootCmd.PersistentFlags().String("base-url", "", "GitHub REST API base URL")
	rootCmd.PersistentFlags().String("state-dir", "", "Directory holding the remembered username")
	rootCmd.PersistentFlags().StringP("format", "f", "", "Output format: table, json or yaml")
	rootCmd.PersistentFlags().Bool("summary", false, "Print a star summary under the table")
	rootCmd.PersistentFlags().Bool("qr", false, "Print a QR code when sharing a link")

	rootCmd.AddCommand(newSearchCmd(), newBrowseCmd(), newWhoamiCmd())
	return rootCmd
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once.
func Execute() {
	err := NewRootCmd().Execute()
	if err != nil {
		if !errors.Is(err, errReported) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}
