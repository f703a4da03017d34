/*
Copyright © 2026 James Lawson (jpl-au) <hello@caelisco.net>
*/

// flags.go defines global CLI flags and accessors for shared state.
//
// Separated from root.go to isolate flag definitions from command logic.
// Extensions access these via exported accessor functions rather than
// directly accessing the variables.
//
// The data directory is resolved through viper so the --data flag, the
// MYSTUFF_HOME environment variable and the ~/.mystuff default share one
// precedence rule: flag, then env, then default.

package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/jpl-au/mystuff/internal/config"
	"github.com/jpl-au/mystuff/internal/store"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var validOutputFormats = []string{"json"}

// EnvHome names the environment variable that overrides the data directory.
const EnvHome = "MYSTUFF_HOME"

var (
	output  string
	author  string
	dataDir string
	verbose bool
)

// settings resolves values that may come from flags or the environment.
var settings = viper.New()

// out is the output writer for commands. Defaults to os.Stdout.
// Tests can replace this to capture output.
var out io.Writer = os.Stdout

// Exported accessors for extensions.
// Extensions use these to access shared CLI state.

// Out returns the output writer.
func Out() io.Writer { return out }

// Output returns the output format flag value.
func Output() string { return output }

// Author returns the author recorded in the audit log.
func Author() string { return author }

// Verbose reports whether debug logging was requested.
func Verbose() bool { return verbose }

// DataDir returns the resolved data directory.
// Priority: --data flag > MYSTUFF_HOME env var > ~/.mystuff.
func DataDir() string {
	if d := settings.GetString("home"); d != "" {
		return d
	}
	return store.DefaultDir()
}

// SetOut sets the output writer (for testing).
func SetOut(w io.Writer) { out = w }

// JSON returns true if JSON output is requested.
func JSON() bool { return output == "json" }

// PrintJSON marshals v to JSON and writes it to the output writer.
// Returns nil if output format is not JSON.
func PrintJSON(v any) error {
	if output != "json" {
		return nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}
	fmt.Fprintln(out, string(b))
	return nil
}

// PrintJSONError prints an error in JSON format if output is JSON.
// Returns nil if error was printed (suppressing Cobra error), or the original error if not.
func PrintJSONError(err error) error {
	if output != "json" || err == nil {
		return err
	}
	_ = PrintJSON(map[string]string{"error": err.Error()})
	return nil
}

// detectAuthor resolves the author from config, falling back to $USER.
func detectAuthor(dir string) string {
	if cfg, err := config.Load(dir); err == nil && cfg.Author.Name != "" {
		return cfg.Author.Name
	}
	return os.Getenv("USER")
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&output, "output", "o", "", "Output format: json")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data", "", "Data directory (default ~/.mystuff, or $"+EnvHome+")")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log debug output to stderr")

	_ = settings.BindPFlag("home", rootCmd.PersistentFlags().Lookup("data"))
	_ = settings.BindEnv("home", EnvHome)

	_ = rootCmd.RegisterFlagCompletionFunc("output", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return validOutputFormats, cobra.ShellCompDirectiveNoFileComp
	})
}
