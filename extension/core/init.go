// init.go implements the "mystuff init" command.
//
// Every store creates its data directory on first use, so init is never
// required. It exists to create the directory and empty store up front and
// to report where they live.

package core

import (
	"fmt"

	"github.com/jpl-au/mystuff/cmd"
	"github.com/jpl-au/mystuff/internal/config"
	"github.com/jpl-au/mystuff/internal/log"
	"github.com/jpl-au/mystuff/internal/store"
	"github.com/spf13/cobra"
)

func newInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Create the data directory and an empty store",
		Long: `Creates the data directory (default ~/.mystuff) and an empty store for
the configured backend.

Use --data or MYSTUFF_HOME to initialise somewhere else:
  mystuff init --data /path/to/links

Existing links are never touched.`,
		Args: cobra.NoArgs,
		RunE: runInit,
	}
}

func runInit(_ *cobra.Command, _ []string) error {
	dir := cmd.DataDir()

	cfg, err := config.Load(dir)
	if err == nil {
		var st store.DataStore
		st, err = store.Open(cfg.Backend(), dir)
		if err == nil {
			err = st.Close()
		}
	}

	log.Event("core:init", "init").
		Author(cmd.Author()).
		Detail("dir", dir).
		Write(err)

	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("init: %w", err))
	}

	if cmd.JSON() {
		return cmd.PrintJSON(map[string]string{"dir": dir, "backend": cfg.Backend()})
	}
	fmt.Fprintf(cmd.Out(), "Initialised mystuff store in %s (%s)\n", dir, cfg.Backend())
	return nil
}
