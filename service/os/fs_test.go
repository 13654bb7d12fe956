package os

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExists(t *testing.T) {
	dir := t.TempDir()
	s := NewOS()

	ok, err := s.Exists(dir)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = s.Exists(filepath.Join(dir, "nope"))
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRemoveDirForce(t *testing.T) {
	root := t.TempDir()
	dir := filepath.Join(root, "checkout")
	sub := filepath.Join(dir, "objects")
	require.NoError(t, os.MkdirAll(sub, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(sub, "pack"), []byte("x"), 0400))
	require.NoError(t, os.Chmod(sub, 0555))

	s := NewOS()
	require.NoError(t, s.RemoveDirForce(dir))
	assert.NoDirExists(t, dir)
}

func TestRemoveDirForceRefusesRoot(t *testing.T) {
	s := NewOS()
	require.Error(t, s.RemoveDirForce("/"))
}
