package fsutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func touch(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, nil, 0o644))
}

func TestFindByExtensionWalksSorted(t *testing.T) {
	dir := t.TempDir()
	touch(t, filepath.Join(dir, "b.hcl"))
	touch(t, filepath.Join(dir, "a.hcl"))
	touch(t, filepath.Join(dir, "nested", "c.hcl"))
	touch(t, filepath.Join(dir, "ignore.txt"))

	files, err := FindByExtension(dir, ".hcl")
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(dir, "a.hcl"),
		filepath.Join(dir, "b.hcl"),
		filepath.Join(dir, "nested", "c.hcl"),
	}, files)
}

func TestFindByExtensionFileRoot(t *testing.T) {
	path := filepath.Join(t.TempDir(), "only.hcl")
	touch(t, path)

	files, err := FindByExtension(path, ".hcl")
	require.NoError(t, err)
	assert.Equal(t, []string{path}, files)
}

func TestFindByExtensionNonMatchingFileRoot(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes.txt")
	touch(t, path)

	files, err := FindByExtension(path, ".hcl")
	require.NoError(t, err)
	assert.Empty(t, files)
}

func TestFindByExtensionMissingRoot(t *testing.T) {
	_, err := FindByExtension(filepath.Join(t.TempDir(), "missing"), ".hcl")
	require.Error(t, err)
}

func TestFindByExtensionEmptyExtensionPanics(t *testing.T) {
	assert.Panics(t, func() {
		_, _ = FindByExtension(t.TempDir(), "")
	})
}
