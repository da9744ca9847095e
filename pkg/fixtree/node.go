package fixtree

import (
	"fmt"
	"reflect"
	"sort"
	"strings"
)

// Kind identifies the type of filesystem entry a Node describes.
type Kind string

const (
	KindFile     Kind = "file"
	KindDir      Kind = "dir"
	KindHardLink Kind = "hardlink"
	KindSymLink  Kind = "symlink"
)

// Tree is the raw shape of a directory: entry name to content. Content
// may be a string or []byte (a file), a nested Tree or map[string]any
// (a subdirectory), or an explicit *Node.
type Tree = map[string]any

// Node is an immutable tagged description of one filesystem entry.
// Build nodes with File, Bytes, Dir, HardLink, SymLink, or NewNode.
type Node struct {
	kind    Kind
	content any
}

// File describes a file with the given text content.
func File(text string) *Node { return &Node{kind: KindFile, content: text} }

// Bytes describes a file with the given byte content.
func Bytes(data []byte) *Node { return &Node{kind: KindFile, content: data} }

// Dir describes a directory with the given entries.
func Dir(entries Tree) *Node { return &Node{kind: KindDir, content: entries} }

// HardLink describes a hard link. The target is resolved relative to
// the link's own parent directory at materialization time.
func HardLink(target string) *Node { return &Node{kind: KindHardLink, content: target} }

// SymLink describes a symbolic link. The target is resolved relative to
// the link's own parent directory, and must exist once all non-link
// entries have been created.
func SymLink(target string) *Node { return &Node{kind: KindSymLink, content: target} }

// NewNode builds a node with the given kind and content and validates
// it immediately, including recursive validation of directory subtrees.
func NewNode(kind Kind, content any) (*Node, error) {
	switch kind {
	case KindFile, KindDir, KindHardLink, KindSymLink:
	default:
		return nil, fmt.Errorf("unknown node kind %q: %w", kind, ErrInvalidKind)
	}
	n := &Node{kind: kind, content: content}
	if err := n.Validate(); err != nil {
		return nil, err
	}
	return n, nil
}

// Kind returns the node's kind tag.
func (n *Node) Kind() Kind { return n.kind }

// Content returns the node's raw content value.
func (n *Node) Content() any { return n.content }

// FileBytes returns file content as bytes. Only meaningful for KindFile.
func (n *Node) FileBytes() []byte {
	switch c := n.content.(type) {
	case string:
		return []byte(c)
	case []byte:
		return c
	}
	return nil
}

// Target returns the link target. Only meaningful for link kinds.
func (n *Node) Target() string {
	s, _ := n.content.(string)
	return s
}

// Entries returns the directory mapping. Only meaningful for KindDir.
func (n *Node) Entries() Tree {
	m, _ := asTree(n.content)
	return m
}

// Classify coerces a raw value into a node: strings and byte slices
// become files, maps become directories, and nodes pass through
// unchanged. Any other shape is rejected with ErrInvalidContent.
func Classify(value any) (*Node, error) {
	switch v := value.(type) {
	case *Node:
		if v == nil {
			return nil, fmt.Errorf("nil node: %w", ErrInvalidContent)
		}
		return v, nil
	case Node:
		return &v, nil
	case string:
		return File(v), nil
	case []byte:
		return Bytes(v), nil
	default:
		if m, ok := asTree(value); ok {
			return Dir(m), nil
		}
		return nil, fmt.Errorf("value of type %T cannot describe a filesystem entry: %w", value, ErrInvalidContent)
	}
}

// Validate checks the node's content against its declared kind. For
// directories it recurses through every entry, classifying raw values
// and rejecting cycles.
//
// Cycles are detected by map identity: a directory mapping reachable
// from itself fails with ErrCycleDetected. This also rejects the same
// map value reused at two distinct tree positions — share content by
// copying the map, not by aliasing it.
func (n *Node) Validate() error {
	return n.validate("", map[uintptr]struct{}{})
}

func (n *Node) validate(at string, seen map[uintptr]struct{}) error {
	switch n.kind {
	case KindFile:
		switch n.content.(type) {
		case string, []byte:
			return nil
		}
		return fmt.Errorf("%s: file content must be a string or byte slice, got %T: %w",
			describe(at), n.content, ErrInvalidContent)

	case KindHardLink, KindSymLink:
		target, ok := n.content.(string)
		if !ok {
			return fmt.Errorf("%s: %s target must be a string, got %T: %w",
				describe(at), n.kind, n.content, ErrInvalidContent)
		}
		if target == "" {
			return fmt.Errorf("%s: %s target must not be empty: %w", describe(at), n.kind, ErrInvalidContent)
		}
		return nil

	case KindDir:
		entries, ok := asTree(n.content)
		if !ok {
			return fmt.Errorf("%s: directory content must be a map, got %T: %w",
				describe(at), n.content, ErrInvalidContent)
		}
		id := reflect.ValueOf(entries).Pointer()
		if _, dup := seen[id]; dup {
			return fmt.Errorf("%s: directory mapping is reachable from itself: %w", describe(at), ErrCycleDetected)
		}
		seen[id] = struct{}{}

		for _, name := range sortedNames(entries) {
			entryAt := name
			if at != "" {
				entryAt = at + "/" + name
			}
			if err := validName(name); err != nil {
				return fmt.Errorf("%s: %w", describe(entryAt), err)
			}
			child, err := Classify(entries[name])
			if err != nil {
				return fmt.Errorf("%s: %w", describe(entryAt), err)
			}
			if err := child.validate(entryAt, seen); err != nil {
				return err
			}
		}
		return nil
	}
	return fmt.Errorf("unknown node kind %q: %w", n.kind, ErrInvalidKind)
}

func validName(name string) error {
	if name == "" {
		return fmt.Errorf("entry name must not be empty: %w", ErrInvalidContent)
	}
	if strings.ContainsAny(name, `/\`) {
		return fmt.Errorf("entry name %q must not contain path separators: %w", name, ErrInvalidContent)
	}
	return nil
}

// asTree accepts both the Tree alias and any named map type whose
// underlying type is map[string]any.
func asTree(value any) (Tree, bool) {
	if m, ok := value.(Tree); ok {
		return m, true
	}
	rv := reflect.ValueOf(value)
	if rv.Kind() == reflect.Map && rv.Type().ConvertibleTo(reflect.TypeOf(Tree{})) {
		return rv.Convert(reflect.TypeOf(Tree{})).Interface().(Tree), true
	}
	return nil, false
}

// sortedNames fixes the walk order; Go map iteration is randomized and
// materialization must be deterministic left-to-right.
func sortedNames(entries Tree) []string {
	names := make([]string, 0, len(entries))
	for name := range entries {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func describe(at string) string {
	if at == "" {
		return "fixture root"
	}
	return "entry " + at
}
