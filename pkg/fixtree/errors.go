package fixtree

import (
	"errors"
)

// Sentinel errors for fixture validation and materialization failures.
// These enable callers to distinguish error types using errors.Is().
//
// Example usage:
//
//	err := fixtree.Materialize(ctx, root, tree)
//	if errors.Is(err, fixtree.ErrIllegalPath) {
//	    // Fixture tried to write or link outside the sandbox
//	}
var (
	// ErrInvalidKind indicates an unrecognized node kind tag.
	ErrInvalidKind = errors.New("invalid node kind")

	// ErrInvalidContent indicates node content whose shape does not match
	// the declared kind, or an unrecognized leaf value inside a directory.
	ErrInvalidContent = errors.New("invalid node content")

	// ErrCycleDetected indicates a directory mapping reachable from itself.
	ErrCycleDetected = errors.New("cycle in directory tree")

	// ErrIllegalPath indicates a write or link whose parent directory is
	// outside the currently allowed containment boundary.
	ErrIllegalPath = errors.New("path outside sandbox")

	// ErrMissingSymlinkTarget indicates a deferred symlink whose target
	// did not exist when links were flushed.
	ErrMissingSymlinkTarget = errors.New("symlink target does not exist")

	// ErrInvalidDocument indicates a YAML fixture document that does not
	// describe a fixture tree.
	ErrInvalidDocument = errors.New("invalid fixture document")
)

// ExitCodeForError returns the appropriate exit code for an error.
// Returns ExitSuccess (0) for nil errors, semantic codes for known
// errors, and ExitGeneralError (1) for unclassified errors.
func ExitCodeForError(err error) int {
	if err == nil {
		return ExitSuccess
	}

	switch {
	case errors.Is(err, ErrInvalidKind),
		errors.Is(err, ErrInvalidContent),
		errors.Is(err, ErrCycleDetected),
		errors.Is(err, ErrInvalidDocument):
		return ExitInvalidFixture
	case errors.Is(err, ErrIllegalPath):
		return ExitPathViolation
	case errors.Is(err, ErrMissingSymlinkTarget):
		return ExitMissingTarget
	}

	return ExitGeneralError
}
