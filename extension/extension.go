// Package extension provides the plugin architecture for mystuff. Extensions
// encapsulate related commands and register at init time, so features are
// added without touching core code.
package extension

import "github.com/spf13/cobra"

// Extension defines the contract for mystuff extensions.
type Extension interface {
	// Name returns a unique identifier for this extension.
	Name() string

	// Commands returns CLI commands to register with the root command.
	Commands() []*cobra.Command
}

// Initializable extensions receive the shared Context once the store is open.
type Initializable interface {
	Extension
	Init(ctx Context) error
}

// Storeless is an optional interface for extensions with commands that
// don't require a store. Commands returned by NoStoreCommands() will
// not trigger store initialisation in PersistentPreRunE.
//
// Use cases:
// 1. Bootstrap commands (like init) that run before the store exists
// 2. Commands that only touch config
// 3. Utility commands such as version
type Storeless interface {
	NoStoreCommands() []string
}
