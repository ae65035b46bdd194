package storage

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStorageRoundTrip(t *testing.T) {
	store, err := NewLocalStorage(t.TempDir(), "http://localhost:8080/uploads")
	require.NoError(t, err)
	ctx := context.Background()

	path, err := store.Upload(ctx, strings.NewReader("hello"), "documents/e1/contract.pdf", "application/pdf")
	require.NoError(t, err)
	assert.Equal(t, "documents/e1/contract.pdf", path)

	exists, err := store.Exists(ctx, path)
	require.NoError(t, err)
	assert.True(t, exists)

	reader, err := store.Download(ctx, path)
	require.NoError(t, err)
	data, err := io.ReadAll(reader)
	require.NoError(t, reader.Close())
	require.NoError(t, err)
	assert.Equal(t, "hello", string(data))

	require.NoError(t, store.Delete(ctx, path))
	exists, err = store.Exists(ctx, path)
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestLocalStorageRejectsTraversal(t *testing.T) {
	store, err := NewLocalStorage(t.TempDir(), "http://localhost:8080/uploads")
	require.NoError(t, err)
	ctx := context.Background()

	_, err = store.Upload(ctx, strings.NewReader("x"), "../../etc/passwd", "text/plain")
	assert.Error(t, err)

	_, err = store.Download(ctx, "../outside")
	assert.Error(t, err)
}

func TestLocalStorageGetURL(t *testing.T) {
	store, err := NewLocalStorage(t.TempDir(), "http://localhost:8080/uploads")
	require.NoError(t, err)

	url, err := store.GetURL(context.Background(), "pictures/e1.png", 0)
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8080/uploads/pictures/e1.png", url)
}
