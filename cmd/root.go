/*
Copyright © 2026 James Lawson (jpl-au) <hello@caelisco.net>
*/

// root.go defines the root command and CLI execution entry point.
//
// Separated from init_extensions.go to isolate cobra setup from extension
// initialisation logic.
//
// Design: PersistentPreRunE opens the store lazily. Only commands that need
// it trigger extension init, so bootstrap commands (init, config, version)
// work before any data exists. The noStoreCommands map controls which
// commands skip initialisation.

package cmd

import (
	"fmt"
	"os"
	"slices"

	"github.com/jpl-au/mystuff/internal/log"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "mystuff",
	Short: "Personal bookmark manager",
	Long: `Save links with a description and tags, and list them later.

  mystuff link --add https://go.dev --tag go --tag lang --description "Go homepage"
  mystuff link                # list every saved link
  mystuff link tags           # list known tags

Missing description or tags are prompted for interactively.`,
	SilenceUsage: true,
	Run: func(cmd *cobra.Command, _ []string) {
		_ = cmd.Help()
	},
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		if output != "" && !slices.Contains(validOutputFormats, output) {
			return fmt.Errorf("invalid output format: %s (valid: %v)", output, validOutputFormats)
		}

		log.SetVerbose(cmd.ErrOrStderr(), verbose)

		dir := DataDir()
		// Initialise audit logger (warn if it fails, but continue)
		if err := log.Open(dir); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "warning: audit log unavailable: %v\n", err)
		}

		if author == "" {
			author = detectAuthor(dir)
		}

		// Initialise extensions for commands that need the store
		if !noStoreCommands[topLevelCmdName(cmd)] {
			if err := initExtensions(); err != nil {
				if JSON() {
					_ = PrintJSON(map[string]string{"error": err.Error()})
					cmd.SilenceErrors = true
				}
				return fmt.Errorf("initialise extensions: %w", err)
			}
		}

		return nil
	},
}

// topLevelCmdName returns the name of the top-level command (direct child of root).
// For "mystuff link tags", returns "link".
func topLevelCmdName(cmd *cobra.Command) string {
	// Walk up until we find a command whose parent has no parent (the root)
	for cmd.HasParent() && cmd.Parent().HasParent() {
		cmd = cmd.Parent()
	}
	return cmd.Name()
}

// Execute runs the root command and handles process lifecycle.
// Registers extensions, executes the command, and closes the link service
// and audit log before exit. Exit code 1 indicates error.
func Execute() {
	registerExtensions()
	err := rootCmd.Execute()

	// Close the service if it was created
	if extService != nil {
		if closeErr := extService.Close(); closeErr != nil {
			fmt.Fprintf(os.Stderr, "warning: closing service: %v\n", closeErr)
		}
	}
	log.Close()

	if err != nil {
		os.Exit(1)
	}
}

// RootCmd returns the root command for testing and extension access.
func RootCmd() *cobra.Command {
	return rootCmd
}
