package fixtree

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestNewSandbox_Seeds(t *testing.T) {
	sb, err := newSandbox(nil)
	if err != nil {
		t.Fatalf("newSandbox failed: %v", err)
	}

	cwd, err := os.Getwd()
	if err != nil {
		t.Fatalf("Getwd failed: %v", err)
	}

	if err := sb.checkParent(filepath.Join(cwd, "child")); err != nil {
		t.Errorf("child of cwd should be allowed, got %v", err)
	}
	if err := sb.checkParent(filepath.Join(filepath.Clean(os.TempDir()), "child")); err != nil {
		t.Errorf("child of temp dir should be allowed, got %v", err)
	}
}

func TestNewSandbox_ExtraParents(t *testing.T) {
	extra := t.TempDir()
	sb, err := newSandbox([]string{extra})
	if err != nil {
		t.Fatalf("newSandbox failed: %v", err)
	}
	if err := sb.checkParent(filepath.Join(extra, "root")); err != nil {
		t.Errorf("child of extra parent should be allowed, got %v", err)
	}
}

// TestSandbox_ExactParentMembership pins the core security property:
// containment is an exact set membership test on the parent, not a
// prefix or ancestor check.
func TestSandbox_ExactParentMembership(t *testing.T) {
	sb := &sandbox{
		allowed: map[string]struct{}{"/sandbox": {}},
		pending: map[string]string{},
	}

	if err := sb.checkParent("/sandbox/file.txt"); err != nil {
		t.Errorf("direct child should be allowed, got %v", err)
	}

	// Grandchild: /sandbox is an ancestor but not the parent.
	err := sb.checkParent("/sandbox/sub/file.txt")
	if !errors.Is(err, ErrIllegalPath) {
		t.Errorf("grandchild should be rejected, got %v", err)
	}

	// Sibling directory sharing the prefix string.
	err = sb.checkParent("/sandbox-evil/file.txt")
	if !errors.Is(err, ErrIllegalPath) {
		t.Errorf("prefix-sharing sibling should be rejected, got %v", err)
	}
}

func TestSandbox_CollapseReplacesBoundary(t *testing.T) {
	sb := &sandbox{
		allowed: map[string]struct{}{"/cwd": {}, "/tmp": {}},
		pending: map[string]string{},
	}

	sb.collapse("/tmp/root")

	if err := sb.checkParent("/tmp/root/a.txt"); err != nil {
		t.Errorf("child of fresh root should be allowed, got %v", err)
	}
	if err := sb.checkParent("/tmp/escape.txt"); !errors.Is(err, ErrIllegalPath) {
		t.Errorf("original temp dir should no longer be writable, got %v", err)
	}
	if err := sb.checkParent("/cwd/escape.txt"); !errors.Is(err, ErrIllegalPath) {
		t.Errorf("original cwd should no longer be writable, got %v", err)
	}
}

func TestSandbox_AllowExtendsBoundary(t *testing.T) {
	sb := &sandbox{
		allowed: map[string]struct{}{"/tmp/root": {}},
		pending: map[string]string{},
	}
	sb.allow("/tmp/root/sub")

	if err := sb.checkParent("/tmp/root/a.txt"); err != nil {
		t.Errorf("root stays allowed after extension, got %v", err)
	}
	if err := sb.checkParent("/tmp/root/sub/b.txt"); err != nil {
		t.Errorf("new subdirectory should be allowed, got %v", err)
	}
}

func TestSandbox_PendingLinksSorted(t *testing.T) {
	sb := &sandbox{allowed: map[string]struct{}{}, pending: map[string]string{}}
	sb.deferSymlink("/r/z", "/r/t1")
	sb.deferSymlink("/r/a", "/r/t2")
	sb.deferSymlink("/r/m", "/r/t3")

	links := sb.pendingLinks()
	expected := []string{"/r/a", "/r/m", "/r/z"}
	for i, link := range expected {
		if links[i] != link {
			t.Fatalf("Expected sorted links %v, got %v", expected, links)
		}
	}
}

func TestResolveTarget(t *testing.T) {
	cases := []struct {
		parent, target, expected string
	}{
		{"/root/sub", "sibling", "/root/sub/sibling"},
		{"/root/sub", "../file", "/root/file"},
		{"/root/sub", "../../escape", "/escape"},
		{"/root/sub", "/abs/./path", "/abs/path"},
	}
	for _, tc := range cases {
		if got := resolveTarget(tc.parent, tc.target); got != tc.expected {
			t.Errorf("resolveTarget(%q, %q): expected %q, got %q", tc.parent, tc.target, tc.expected, got)
		}
	}
}

func TestNormalizePath(t *testing.T) {
	got, err := normalizePath("/a/b/../c/./d")
	if err != nil {
		t.Fatalf("normalizePath failed: %v", err)
	}
	if got != "/a/c/d" {
		t.Errorf("Expected /a/c/d, got %q", got)
	}

	// Relative paths resolve against the working directory.
	cwd, _ := os.Getwd()
	got, err = normalizePath("rel/path")
	if err != nil {
		t.Fatalf("normalizePath failed: %v", err)
	}
	if got != filepath.Join(cwd, "rel", "path") {
		t.Errorf("Expected %q, got %q", filepath.Join(cwd, "rel", "path"), got)
	}
}
