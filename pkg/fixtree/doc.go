// Package fixtree materializes declarative filesystem fixtures.
//
// # Overview
//
// A fixture is an in-memory description of a directory tree: files,
// nested directories, hard links, and symbolic links. Materializing a
// fixture writes that tree to a real filesystem location while enforcing
// a containment boundary — no created path and no link target may escape
// the designated root.
//
// # Describing trees
//
// Trees are plain Go values. Strings and byte slices become files,
// maps become directories, and explicit nodes cover links:
//
//	dir := fixtree.TestDir(t, fixtree.Tree{
//	    "config.yaml": "retries: 3\n",
//	    "data": fixtree.Tree{
//	        "blob.bin": []byte{0xde, 0xad},
//	        "latest":   fixtree.SymLink("blob.bin"),
//	    },
//	    "alias.yaml": fixtree.HardLink("config.yaml"),
//	})
//
// TestDir allocates a unique directory under the OS temp path,
// materializes the tree into it, and registers cleanup with the test.
// Outside a test, NewTempDir returns the cleanup function instead, and
// Materialize targets a caller-chosen root directly.
//
// Trees can also be declared in YAML documents (see FromYAML), which is
// what the fixtree CLI consumes.
//
// # Containment
//
// Every write is gated on its parent directory being an exact member of
// the call's allowed-path set. The set starts as {working directory, OS
// temp directory}; creating the root at the top level collapses it to
// the root alone, and each directory created during recursion adds
// itself. A fixture that tries to link or write outside the root fails
// with ErrIllegalPath before any filesystem mutation for that node.
//
// Symbolic links are created in a second phase after all files and
// directories exist, so sibling entries may reference each other
// regardless of declaration order. A symlink whose target is missing at
// that point fails with ErrMissingSymlinkTarget.
//
// # Failure semantics
//
// Validation and containment errors abort the whole materialization.
// Partial state already written is not rolled back; the cleanup
// functions returned by TestDir/NewTempDir remove whatever exists.
package fixtree
