package fixtree

import (
	"encoding/base64"
	"fmt"

	"gopkg.in/yaml.v3"
)

// YAML local tags marking link nodes in fixture documents.
const (
	yamlTagSymLink  = "!symlink"
	yamlTagHardLink = "!hardlink"
)

// FromYAML decodes a YAML fixture document into a raw tree value
// suitable for Materialize:
//
//	a.txt: hello
//	blob.bin: !!binary aGVsbG8=
//	sub:
//	  b.txt: world
//	  link: !symlink b.txt
//	  hard: !hardlink ../a.txt
//
// Mappings become directories, string scalars become file text,
// !!binary scalars become file bytes, and the local tags !symlink and
// !hardlink on a scalar become link nodes. Sequences, non-string
// scalars, duplicate keys, and YAML aliases are rejected with
// ErrInvalidDocument. All fixture validation (cycles, containment)
// still happens at materialization.
func FromYAML(data []byte) (any, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse fixture document: %v: %w", err, ErrInvalidDocument)
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return nil, fmt.Errorf("fixture document is empty: %w", ErrInvalidDocument)
	}
	return decodeYAMLNode(doc.Content[0])
}

func decodeYAMLNode(n *yaml.Node) (any, error) {
	switch n.Kind {
	case yaml.MappingNode:
		if n.Tag != "!!map" {
			return nil, yamlErr(n, fmt.Sprintf("tag %s is only valid on scalars", n.Tag))
		}
		return decodeYAMLMapping(n)
	case yaml.ScalarNode:
		return decodeYAMLScalar(n)
	case yaml.AliasNode:
		return nil, yamlErr(n, "aliases are not supported in fixture documents")
	case yaml.SequenceNode:
		return nil, yamlErr(n, "sequences cannot describe filesystem entries")
	}
	return nil, yamlErr(n, "unsupported node")
}

func decodeYAMLMapping(n *yaml.Node) (Tree, error) {
	tree := Tree{}
	for i := 0; i+1 < len(n.Content); i += 2 {
		keyNode, valNode := n.Content[i], n.Content[i+1]
		if keyNode.Kind != yaml.ScalarNode || keyNode.Tag != "!!str" {
			return nil, yamlErr(keyNode, "entry names must be plain strings")
		}
		if _, dup := tree[keyNode.Value]; dup {
			return nil, yamlErr(keyNode, fmt.Sprintf("duplicate entry name %q", keyNode.Value))
		}
		value, err := decodeYAMLNode(valNode)
		if err != nil {
			return nil, err
		}
		tree[keyNode.Value] = value
	}
	return tree, nil
}

func decodeYAMLScalar(n *yaml.Node) (any, error) {
	switch n.Tag {
	case yamlTagSymLink:
		return SymLink(n.Value), nil
	case yamlTagHardLink:
		return HardLink(n.Value), nil
	case "!!str":
		return n.Value, nil
	case "!!binary":
		data, err := base64.StdEncoding.DecodeString(n.Value)
		if err != nil {
			return nil, yamlErr(n, "invalid base64 in !!binary scalar")
		}
		return data, nil
	}
	return nil, yamlErr(n, fmt.Sprintf("scalar %q (%s) cannot describe a filesystem entry", n.Value, n.Tag))
}

func yamlErr(n *yaml.Node, msg string) error {
	return fmt.Errorf("line %d: %s: %w", n.Line, msg, ErrInvalidDocument)
}
