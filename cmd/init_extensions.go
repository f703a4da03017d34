/*
Copyright © 2026 James Lawson (jpl-au) <hello@caelisco.net>
*/

// init_extensions.go handles extension initialisation and command registration.
//
// Separated from root.go to isolate the initialisation logic that loads
// config, opens the configured store and wires up extensions.
//
// Design: Extensions register during init() but aren't initialised until
// first command execution. This two-phase pattern allows extensions to
// declare commands before the store exists. The service is created once
// and shared across all extensions via the Context.

package cmd

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/jpl-au/mystuff/extension"
	"github.com/jpl-au/mystuff/internal/config"
	"github.com/jpl-au/mystuff/internal/service"
	"github.com/jpl-au/mystuff/internal/store"
)

// noStoreCommands lists commands that bypass automatic store initialisation.
// Built dynamically from extension-declared storeless commands.
var noStoreCommands map[string]bool

// buildNoStoreCommands creates the set of commands that skip store initialisation.
// Extensions implement extension.Storeless to add to it.
func buildNoStoreCommands() map[string]bool {
	cmds := map[string]bool{
		"help":       true,
		"completion": true,
	}

	for _, ext := range extension.All() {
		if s, ok := ext.(extension.Storeless); ok {
			for _, name := range s.NoStoreCommands() {
				cmds[name] = true
			}
		}
	}

	return cmds
}

// Global extension context, created during initialisation.
var (
	extContext extension.Context
	extService *service.Service
	initOnce   sync.Once
	initErr    error
)

// initExtensions opens the configured store, creates the link service and
// injects it into every Initializable extension. Runs at most once per
// process.
func initExtensions() error {
	initOnce.Do(func() {
		dir := DataDir()

		cfg, err := config.Load(dir)
		if err != nil {
			initErr = err
			return
		}

		st, err := store.Open(cfg.Backend(), dir)
		if err != nil {
			initErr = fmt.Errorf("opening store: %w", err)
			return
		}
		slog.Debug("store opened", "backend", cfg.Backend(), "dir", dir)

		extService = service.New(st)
		extContext = extension.NewContext(extService, cfg, dir)

		for _, ext := range extension.All() {
			if init, ok := ext.(extension.Initializable); ok {
				if err := init.Init(extContext); err != nil {
					initErr = fmt.Errorf("init extension %s: %w", ext.Name(), err)
					return
				}
			}
		}
	})
	return initErr
}

var extensionsOnce sync.Once

// registerExtensions adds commands from all registered extensions.
// Called once before Execute runs.
func registerExtensions() {
	extensionsOnce.Do(func() {
		for _, ext := range extension.All() {
			for _, cmd := range ext.Commands() {
				rootCmd.AddCommand(cmd)
			}
		}

		// Build noStoreCommands after all extensions are registered
		noStoreCommands = buildNoStoreCommands()
	})
}
