package fsutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFiles(t *testing.T, root string, names ...string) {
	t.Helper()
	for _, name := range names {
		path := filepath.Join(root, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte("{}"), 0o644))
	}
}

func TestFindFilesByExtension(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root,
		"a.json",
		"b.YAML",
		"notes.txt",
		"nested/c.yml",
		"nested/deeper/d.json",
		".git/e.json",
	)

	got, err := FindFilesByExtension(root, ".json", ".yaml", ".yml")
	require.NoError(t, err)

	assert.Equal(t, []string{
		filepath.Join(root, "a.json"),
		filepath.Join(root, "b.YAML"),
		filepath.Join(root, "nested", "c.yml"),
		filepath.Join(root, "nested", "deeper", "d.json"),
	}, got)
}

func TestFindFilesByExtension_MissingRoot(t *testing.T) {
	_, err := FindFilesByExtension(filepath.Join(t.TempDir(), "nope"), ".json")
	require.Error(t, err)
}

func TestFindFilesByExtension_PanicsWithoutExtensions(t *testing.T) {
	assert.Panics(t, func() { _, _ = FindFilesByExtension(t.TempDir()) })
}

func TestExpandPaths(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, "dir/x.json", "dir/y.txt", "single.txt")

	got, err := ExpandPaths([]string{
		filepath.Join(root, "single.txt"),
		filepath.Join(root, "dir"),
	}, ".json")
	require.NoError(t, err)

	assert.Equal(t, []string{
		filepath.Join(root, "single.txt"),
		filepath.Join(root, "dir", "x.json"),
	}, got)

	_, err = ExpandPaths([]string{filepath.Join(root, "missing.json")}, ".json")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cannot access")
}
