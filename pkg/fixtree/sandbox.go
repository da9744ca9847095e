package fixtree

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
)

// sandbox holds the containment state for one materialization call: the
// set of directories writes are currently allowed into, and the table of
// symlinks deferred to the final creation phase. The state is scoped to
// a single top-level Materialize call and threaded through the
// recursion, so independent materializations never share a boundary.
type sandbox struct {
	allowed map[string]struct{}
	pending map[string]string // absolute symlink path -> absolute resolved target
}

// newSandbox seeds the allowed set with the working directory and the
// OS temp directory, the only legal parents for a fresh root, plus any
// extra parents the caller opted into.
func newSandbox(extraParents []string) (*sandbox, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("determine working directory: %w", err)
	}
	sb := &sandbox{
		allowed: map[string]struct{}{
			filepath.Clean(cwd):          {},
			filepath.Clean(os.TempDir()): {},
		},
		pending: map[string]string{},
	}
	for _, p := range extraParents {
		abs, err := normalizePath(p)
		if err != nil {
			return nil, err
		}
		sb.allowed[abs] = struct{}{}
	}
	return sb, nil
}

// allow adds dir as a legal parent for subsequent writes.
func (sb *sandbox) allow(dir string) {
	sb.allowed[dir] = struct{}{}
}

// collapse shrinks the boundary to dir alone. Called when the top-level
// root directory is created, so nothing outside the fresh root —
// including the original cwd and temp dir — remains writable.
func (sb *sandbox) collapse(dir string) {
	sb.allowed = map[string]struct{}{dir: {}}
}

// checkParent enforces the containment policy: a path may be written or
// linked only if its immediate parent directory is an exact member of
// the allowed set. Not a prefix match and not an ancestor walk; only the
// exact parent relationship grants access.
func (sb *sandbox) checkParent(path string) error {
	parent := filepath.Dir(path)
	if _, ok := sb.allowed[parent]; !ok {
		return fmt.Errorf("parent directory %q of %q is not inside the sandbox: %w", parent, path, ErrIllegalPath)
	}
	return nil
}

// deferSymlink records a symlink for the flush phase instead of
// creating it now.
func (sb *sandbox) deferSymlink(link, target string) {
	sb.pending[link] = target
}

// pendingLinks returns the deferred symlink paths in sorted order so
// the flush phase is deterministic.
func (sb *sandbox) pendingLinks() []string {
	links := make([]string, 0, len(sb.pending))
	for link := range sb.pending {
		links = append(links, link)
	}
	sort.Strings(links)
	return links
}

// normalizePath makes p absolute and resolves "." and ".." segments
// lexically, without touching the filesystem.
func normalizePath(p string) (string, error) {
	abs, err := filepath.Abs(p)
	if err != nil {
		return "", fmt.Errorf("normalize path %q: %w", p, err)
	}
	return abs, nil
}

// resolveTarget resolves a link target against the directory containing
// the link. Absolute targets are cleaned as-is.
func resolveTarget(linkParent, target string) string {
	if filepath.IsAbs(target) {
		return filepath.Clean(target)
	}
	return filepath.Join(linkParent, target)
}
