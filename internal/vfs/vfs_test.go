package vfs_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quillmark-go/quillmark/internal/vfs"
)

func TestWriteReadRoundTrip(t *testing.T) {
	tree := vfs.New()

	require.NoError(t, tree.WriteFile("templates/glue.txt", []byte("hello")))

	data, err := tree.ReadFile("templates/glue.txt")
	require.NoError(t, err)
	assert.Equal(t, "hello", string(data))
	assert.True(t, tree.Exists("templates/glue.txt"))
}

func TestCleanPathRejectsEscape(t *testing.T) {
	tree := vfs.New()

	err := tree.WriteFile("../escape.txt", []byte("x"))
	require.Error(t, err)
	assert.ErrorIs(t, err, vfs.ErrInvalidPath)
}

func TestCleanPathRejectsAbsolute(t *testing.T) {
	tree := vfs.New()

	err := tree.WriteFile("/etc/passwd", []byte("x"))
	require.Error(t, err)
	assert.ErrorIs(t, err, vfs.ErrInvalidPath)
}

func TestWriteFileRejectsReservedPrefix(t *testing.T) {
	tree := vfs.New()

	err := tree.WriteFile(vfs.DynamicAssetPrefix+"logo.png", []byte("x"))
	require.Error(t, err)
	assert.ErrorIs(t, err, vfs.ErrReservedPrefix)
}

func TestWriteDynamicUsesReservedPrefix(t *testing.T) {
	tree := vfs.New()

	require.NoError(t, tree.WriteDynamic(vfs.DynamicAssetPrefix, "logo.png", []byte("x")))
	assert.True(t, tree.Exists(vfs.DynamicAssetPrefix+"logo.png"))
}

func TestRemovePrefixClearsDynamicAssets(t *testing.T) {
	tree := vfs.New()

	require.NoError(t, tree.WriteDynamic(vfs.DynamicAssetPrefix, "a.png", []byte("a")))
	require.NoError(t, tree.WriteDynamic(vfs.DynamicAssetPrefix, "b.png", []byte("b")))
	require.NoError(t, tree.WriteFile("static.txt", []byte("keep")))

	require.NoError(t, tree.RemovePrefix(vfs.DynamicAssetPrefix))

	assert.False(t, tree.Exists(vfs.DynamicAssetPrefix+"a.png"))
	assert.False(t, tree.Exists(vfs.DynamicAssetPrefix+"b.png"))
	assert.True(t, tree.Exists("static.txt"))
}

func TestPathsSorted(t *testing.T) {
	tree := vfs.New()

	require.NoError(t, tree.WriteFile("b.txt", []byte("b")))
	require.NoError(t, tree.WriteFile("a.txt", []byte("a")))

	paths, err := tree.Paths()
	require.NoError(t, err)
	assert.Equal(t, []string{"a.txt", "b.txt"}, paths)
}

func TestCloneIsIndependent(t *testing.T) {
	tree := vfs.New()
	require.NoError(t, tree.WriteFile("a.txt", []byte("original")))

	clone, err := tree.Clone()
	require.NoError(t, err)

	require.NoError(t, clone.WriteFile("a.txt", []byte("changed")))

	data, err := tree.ReadFile("a.txt")
	require.NoError(t, err)
	assert.Equal(t, "original", string(data))

	cloneData, err := clone.ReadFile("a.txt")
	require.NoError(t, err)
	assert.Equal(t, "changed", string(cloneData))
}
