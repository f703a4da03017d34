// Package core provides the core extension for mystuff.
// It registers commands: init, config, serve, version.
package core

import (
	"github.com/jpl-au/mystuff/extension"
	"github.com/spf13/cobra"
)

func init() {
	extension.Register(&Extension{})
}

// Extension implements the core extension.
type Extension struct {
	ctx extension.Context
}

// Compile-time interface compliance.
var (
	_ extension.Extension     = (*Extension)(nil)
	_ extension.Initializable = (*Extension)(nil)
	_ extension.Storeless     = (*Extension)(nil)
)

// Name returns "core" - this extension provides fundamental mystuff commands.
func (e *Extension) Name() string { return "core" }

// Init keeps the shared context for serve.
func (e *Extension) Init(ctx extension.Context) error {
	e.ctx = ctx
	return nil
}

// Commands returns all core CLI commands.
func (e *Extension) Commands() []*cobra.Command {
	return []*cobra.Command{
		newInitCmd(),
		newConfigCmd(),
		e.newServeCmd(),
		newVersionCmd(),
	}
}

// NoStoreCommands returns commands that do not need the link store open.
// init: creates the store itself.
// config: edits config.yaml only, and must work when the configured backend is broken.
// version: displays build info.
func (e *Extension) NoStoreCommands() []string {
	return []string{"init", "config", "version"}
}
