// Package filesystem provides the thin seam between the materializer
// and the operating system.
//
// The FS interface covers exactly the operations materialization needs:
// directory creation, file writes, hard/symbolic link creation, and
// stat. OSFileSystem is the production implementation; tests may
// substitute a recording implementation to observe operation order.
package filesystem
