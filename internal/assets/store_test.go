package assets

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/craftmarket/catalog-service/internal/apperrors"
)

func TestStore_WriteCreatesParents(t *testing.T) {
	store := NewStore(t.TempDir())

	require.NoError(t, store.Write("products/9/thumbs/9_0.jpg", []byte("data")))
	assert.True(t, store.Exists("products/9/thumbs/9_0.jpg"))
	assert.True(t, store.IsDir("products/9/thumbs"))
}

func TestStore_ListMissingDirIsEmpty(t *testing.T) {
	store := NewStore(t.TempDir())

	entries, err := store.List("products/404")
	require.NoError(t, err)
	assert.Nil(t, entries)
}

func TestStore_DeleteMissingFileFails(t *testing.T) {
	store := NewStore(t.TempDir())

	err := store.Delete("products/9/absent.jpg")
	var fsErr *apperrors.FilesystemError
	assert.ErrorAs(t, err, &fsErr)
}

func TestStore_RemoveTree(t *testing.T) {
	store := NewStore(t.TempDir())
	require.NoError(t, store.Write("products/9/9_0.jpg", []byte("data")))
	require.NoError(t, store.Write("products/9/thumbs/9_0.jpg", []byte("data")))

	existed, err := store.RemoveTree("products/9")
	require.NoError(t, err)
	assert.True(t, existed)
	assert.False(t, store.Exists("products/9"))

	existed, err = store.RemoveTree("products/9")
	require.NoError(t, err)
	assert.False(t, existed)
}
