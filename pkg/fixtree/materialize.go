package fixtree

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/akarpov-91/fixtree/internal/filesystem"
	"github.com/akarpov-91/fixtree/internal/logging"
)

// Option configures a materialization call.
type Option func(*options)

type options struct {
	log          Logger
	fs           filesystem.FS
	extraParents []string
}

// WithLogger sets the logger for materialization diagnostics. The
// default discards everything.
func WithLogger(log Logger) Option {
	return func(o *options) { o.log = log }
}

// WithFS substitutes the filesystem implementation. Intended for tests
// that need to observe or fail individual operations.
func WithFS(fs filesystem.FS) Option {
	return func(o *options) { o.fs = fs }
}

// WithAllowedParent adds dir to the initial set of directories a root
// may be created under. By default only the working directory and the
// OS temp directory are legal root parents.
func WithAllowedParent(dir string) Option {
	return func(o *options) { o.extraParents = append(o.extraParents, dir) }
}

func buildOptions(opts []Option) options {
	o := options{
		log: logging.NewNullLogger(),
		fs:  filesystem.NewOSFileSystem(),
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// Materialize writes the fixture described by content to path.
//
// content may be a raw value (string, []byte, Tree) or an explicit
// *Node; it is classified and validated before anything touches the
// filesystem. Creation is depth-first in sorted entry order, with all
// symbolic links deferred to a final phase once every file and
// directory exists. Every write is subject to the containment policy
// described in the package documentation.
//
// ctx is consulted before each filesystem operation; cancellation
// aborts the materialization with ctx.Err(). On any failure, state
// already written is left in place for the caller's cleanup.
func Materialize(ctx context.Context, path string, content any, opts ...Option) error {
	o := buildOptions(opts)

	root, err := normalizePath(path)
	if err != nil {
		return err
	}

	node, err := Classify(content)
	if err != nil {
		return err
	}
	if err := node.Validate(); err != nil {
		return err
	}

	sb, err := newSandbox(o.extraParents)
	if err != nil {
		return err
	}

	m := &materializer{fs: o.fs, log: o.log}
	if err := m.create(ctx, sb, root, node, true); err != nil {
		return err
	}
	return m.flushSymlinks(ctx, sb)
}

// materializer walks one validated fixture tree against one sandbox.
type materializer struct {
	fs  filesystem.FS
	log Logger
}

func (m *materializer) create(ctx context.Context, sb *sandbox, path string, node *Node, topLevel bool) error {
	switch node.Kind() {
	case KindDir:
		return m.createDir(ctx, sb, path, node, topLevel)
	case KindFile:
		return m.createFile(ctx, sb, path, node)
	case KindHardLink:
		return m.createHardLink(ctx, sb, path, node)
	case KindSymLink:
		// Deferred: some platforms need the target to exist to pick the
		// link flavor, and sibling entries may be declared in any order.
		target := resolveTarget(filepath.Dir(path), node.Target())
		m.log.Verbose("defer symlink %s -> %s", path, target)
		sb.deferSymlink(path, target)
		return nil
	}
	return fmt.Errorf("unknown node kind %q: %w", node.Kind(), ErrInvalidKind)
}

func (m *materializer) createDir(ctx context.Context, sb *sandbox, path string, node *Node, topLevel bool) error {
	if err := sb.checkParent(path); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	m.log.Verbose("mkdir %s", path)
	if err := m.fs.MkdirAll(path, DefaultDirMode); err != nil {
		return fmt.Errorf("create directory %q: %w", path, err)
	}

	if topLevel {
		// The fresh root becomes the whole boundary; the original cwd
		// and temp dir are no longer writable.
		sb.collapse(path)
	} else {
		sb.allow(path)
	}

	entries := node.Entries()
	for _, name := range sortedNames(entries) {
		child, err := Classify(entries[name])
		if err != nil {
			return err
		}
		if err := m.create(ctx, sb, filepath.Join(path, name), child, false); err != nil {
			return err
		}
	}
	return nil
}

func (m *materializer) createFile(ctx context.Context, sb *sandbox, path string, node *Node) error {
	if err := sb.checkParent(path); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	m.log.Verbose("write %s (%d bytes)", path, len(node.FileBytes()))
	if err := m.fs.WriteFile(path, node.FileBytes(), DefaultFileMode); err != nil {
		return fmt.Errorf("write file %q: %w", path, err)
	}
	return nil
}

func (m *materializer) createHardLink(ctx context.Context, sb *sandbox, path string, node *Node) error {
	target := resolveTarget(filepath.Dir(path), node.Target())
	if err := sb.checkParent(target); err != nil {
		return err
	}
	if err := sb.checkParent(path); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	m.log.Verbose("link %s -> %s", path, target)
	// No explicit existence check: link(2) fails naturally on a missing
	// target, unlike the deferred symlink phase.
	if err := m.fs.Link(target, path); err != nil {
		return fmt.Errorf("create hard link %q -> %q: %w", path, target, err)
	}
	return nil
}

// flushSymlinks is the second phase of the two-phase protocol: every
// deferred symlink is containment-checked and created, in sorted link
// order. A missing target is fatal.
func (m *materializer) flushSymlinks(ctx context.Context, sb *sandbox) error {
	for _, link := range sb.pendingLinks() {
		target := sb.pending[link]
		if err := sb.checkParent(link); err != nil {
			return err
		}
		if err := sb.checkParent(target); err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		info, err := m.fs.Stat(target)
		if err != nil {
			if os.IsNotExist(err) {
				return fmt.Errorf("symlink %q -> %q: %w", link, target, ErrMissingSymlinkTarget)
			}
			return fmt.Errorf("stat symlink target %q: %w", target, err)
		}

		m.log.Verbose("symlink %s -> %s (dir=%v)", link, target, info.IsDir())
		if err := m.fs.Symlink(target, link); err != nil {
			return fmt.Errorf("create symlink %q -> %q: %w", link, target, err)
		}
	}
	return nil
}
