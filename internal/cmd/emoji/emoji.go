// Package emoji provides symbol constants for CLI output.
// These symbols create a consistent visual language across all command-line commands.
package emoji

const (
	// Success represents successful completion of an operation.
	// Used for: clean validation runs, completed merges.
	Success = "✓"

	// Error represents failures or records that did not validate.
	// Used for: schema violations, aborted merges.
	Error = "✗"

	// Warning represents warnings or non-critical issues.
	// Used for: advisory findings such as missing feedback fields.
	Warning = "!"

	// Info represents informational messages.
	// Used for: renumbering plans, dry run notices.
	Info = "i"
)
