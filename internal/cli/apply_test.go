package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akarpov-91/fixtree/pkg/fixtree"
)

func writeFixtureFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "fixture.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		applyTemp = false
		rootCmd.SetArgs(nil)
	})
	err := rootCmd.Execute()
	return out.String(), err
}

func TestApply_MaterializesIntoTarget(t *testing.T) {
	fixture := writeFixtureFile(t, "a.txt: hello\nsub:\n  b.txt: world\n")
	target := filepath.Join(t.TempDir(), "out")

	_, err := execute(t, "apply", fixture, target)
	require.NoError(t, err)

	content, err := os.ReadFile(filepath.Join(target, "a.txt"))
	require.NoError(t, err)
	assert.Equal(t, "hello", string(content))

	content, err = os.ReadFile(filepath.Join(target, "sub", "b.txt"))
	require.NoError(t, err)
	assert.Equal(t, "world", string(content))
}

func TestApply_TempPrintsRoot(t *testing.T) {
	fixture := writeFixtureFile(t, "a.txt: hello\n")

	out, err := execute(t, "apply", fixture, "--temp")
	require.NoError(t, err)

	dir := strings.TrimSpace(out)
	require.NotEmpty(t, dir)
	t.Cleanup(func() { _ = os.RemoveAll(dir) })

	content, err := os.ReadFile(filepath.Join(dir, "a.txt"))
	require.NoError(t, err)
	assert.Equal(t, "hello", string(content))
}

// The sandbox still holds inside the target: a fixture escaping its
// root is rejected with the path-violation exit class.
func TestApply_EscapingFixtureRejected(t *testing.T) {
	fixture := writeFixtureFile(t, "esc: !symlink ../../escaped.txt\n")
	target := filepath.Join(t.TempDir(), "out")

	_, err := execute(t, "apply", fixture, target)
	require.ErrorIs(t, err, fixtree.ErrIllegalPath)
	assert.Equal(t, fixtree.ExitPathViolation, fixtree.ExitCodeForError(err))
}

func TestApply_MissingTargetArg(t *testing.T) {
	fixture := writeFixtureFile(t, "a.txt: x\n")
	_, err := execute(t, "apply", fixture)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "target directory required")
}

func TestApply_InvalidDocument(t *testing.T) {
	fixture := writeFixtureFile(t, "items:\n  - 1\n")
	_, err := execute(t, "apply", fixture, filepath.Join(t.TempDir(), "out"))
	require.ErrorIs(t, err, fixtree.ErrInvalidDocument)
	assert.Equal(t, fixtree.ExitInvalidFixture, fixtree.ExitCodeForError(err))
}
