package filesystem

import (
	"io/fs"
)

// FileInfo is an alias for fs.FileInfo from the standard library.
type FileInfo = fs.FileInfo

// FS is the set of filesystem operations materialization performs.
type FS interface {
	// MkdirAll creates a directory along with any missing parents.
	// Creating an already-existing directory is not an error.
	MkdirAll(path string, perm fs.FileMode) error

	// WriteFile writes data to name, creating it or truncating an
	// existing file.
	WriteFile(name string, data []byte, perm fs.FileMode) error

	// Link creates newname as a hard link to oldname.
	Link(oldname, newname string) error

	// Symlink creates newname as a symbolic link to oldname.
	Symlink(oldname, newname string) error

	// Stat returns file information for name, following symlinks.
	Stat(name string) (FileInfo, error)

	// Lstat returns file information for name without following a
	// trailing symlink.
	Lstat(name string) (FileInfo, error)

	// RemoveAll removes path and everything beneath it. Missing paths
	// are not an error.
	RemoveAll(path string) error
}
