// flags.go defines constants for all CLI flag names.
//
// Using constants instead of string literals prevents typos between the
// Flags() definitions and the Get*/Changed lookups.
//
// Naming convention: Flag<PascalCaseName> where name matches the kebab-case
// CLI flag.

package extension

// Flag name constants for CLI commands.
const (
	FlagAdd         = "add"         // Url to add
	FlagDescription = "description" // Link description
	FlagTag         = "tag"         // Link tag (repeatable)
	FlagRender      = "render"      // List render mode override
)
