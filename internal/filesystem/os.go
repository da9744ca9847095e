package filesystem

import (
	"io/fs"
	"os"
)

// OSFileSystem implements FS against the real operating system.
type OSFileSystem struct{}

// NewOSFileSystem creates a new OS filesystem.
func NewOSFileSystem() *OSFileSystem {
	return &OSFileSystem{}
}

func (*OSFileSystem) MkdirAll(path string, perm fs.FileMode) error {
	return os.MkdirAll(path, perm)
}

func (*OSFileSystem) WriteFile(name string, data []byte, perm fs.FileMode) error {
	return os.WriteFile(name, data, perm)
}

func (*OSFileSystem) Link(oldname, newname string) error {
	return os.Link(oldname, newname)
}

func (*OSFileSystem) Symlink(oldname, newname string) error {
	return os.Symlink(oldname, newname)
}

func (*OSFileSystem) Stat(name string) (FileInfo, error) {
	return os.Stat(name)
}

func (*OSFileSystem) Lstat(name string) (FileInfo, error) {
	return os.Lstat(name)
}

func (*OSFileSystem) RemoveAll(path string) error {
	return os.RemoveAll(path)
}
