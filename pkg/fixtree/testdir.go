package fixtree

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
)

// TestDir materializes content into a fresh, uniquely named directory
// under the OS temp directory and returns its path. Removal of the tree
// is registered with tb.Cleanup, so it runs whether the test passes or
// fails. Any allocation or materialization failure fails the test.
func TestDir(tb testing.TB, content any, opts ...Option) string {
	tb.Helper()

	dir, cleanup, err := NewTempDir(context.Background(), content, opts...)
	if cleanup != nil {
		tb.Cleanup(func() {
			if err := cleanup(); err != nil {
				tb.Errorf("%s: cleanup: %v", tempDirErrPrefix, err)
			}
		})
	}
	if err != nil {
		tb.Fatalf("%v", err)
	}
	return dir
}

// NewTempDir is TestDir without the test lifecycle: it materializes
// content into a fresh temp root and returns the root path together
// with a cleanup function the caller must invoke. The cleanup tolerates
// the tree being partially or fully absent already.
//
// On error the partially written tree is not rolled back; the returned
// cleanup still removes whatever exists. Errors carry the greppable
// prefix "fixtree: create test dir".
func NewTempDir(ctx context.Context, content any, opts ...Option) (string, func() error, error) {
	root := filepath.Join(filepath.Clean(os.TempDir()), TempDirPrefix+uuid.NewString())
	cleanup := func() error { return os.RemoveAll(root) }

	if err := Materialize(ctx, root, content, opts...); err != nil {
		return "", cleanup, fmt.Errorf("%s: %w", tempDirErrPrefix, err)
	}
	return root, cleanup, nil
}
