package loader

import (
	"fmt"
	"os"
	"strings"

	"github.com/akarpov-91/fixtree/pkg/fixtree"
)

// LoadFile reads a YAML fixture document and decodes it into a raw tree
// value suitable for fixtree.Materialize.
func LoadFile(path string) (any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load fixture %q: %w", path, err)
	}
	if strings.TrimSpace(string(data)) == "" {
		return nil, fmt.Errorf("load fixture %q: document is empty: %w", path, fixtree.ErrInvalidDocument)
	}

	tree, err := fixtree.FromYAML(data)
	if err != nil {
		return nil, fmt.Errorf("load fixture %q: %w", path, err)
	}
	return tree, nil
}
