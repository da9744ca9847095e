package fixtree

import "io/fs"

// Exit codes for semantic error classification.
// These follow Unix/GNU conventions:
//   - 0: Success
//   - 1: General error
//   - 2: CLI usage error (misuse of command line)
//   - 3+: Application-specific errors
const (
	ExitSuccess        = 0  // Materialization completed successfully
	ExitGeneralError   = 1  // Unknown or unclassified error
	ExitUsageError     = 2  // CLI usage error (missing args, invalid flags)
	ExitPanic          = 3  // Internal panic (unexpected crash)
	ExitInvalidFixture = 10 // Invalid fixture (kind, content, cycle, document)
	ExitPathViolation  = 11 // Write or link target outside the sandbox
	ExitMissingTarget  = 12 // Symlink target missing at creation time
)

const (
	// DefaultDirMode is the permission mode for created directories.
	DefaultDirMode fs.FileMode = 0o755

	// DefaultFileMode is the permission mode for created files.
	DefaultFileMode fs.FileMode = 0o644

	// TempDirPrefix prefixes the unique directory names that TestDir and
	// NewTempDir allocate under the OS temp directory.
	TempDirPrefix = "fixtree-"

	// tempDirErrPrefix is the greppable prefix on errors from the
	// temp-root convenience wrappers.
	tempDirErrPrefix = "fixtree: create test dir"
)
