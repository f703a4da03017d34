// Package all imports all core mystuff extensions.
// Import this package to register all built-in commands.
package all

import (
	// Core extensions - each registers itself via init()
	_ "github.com/jpl-au/mystuff/extension/core"
	_ "github.com/jpl-au/mystuff/extension/link"
)
