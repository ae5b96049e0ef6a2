package storage

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStoreUpload(t *testing.T) {
	dir := t.TempDir()
	store, err := NewFileStore(dir, "/uploads/")
	require.NoError(t, err)

	url, err := store.Upload(context.Background(), "payment-proofs/u1/1-receipt.jpg", strings.NewReader("gcash"))
	require.NoError(t, err)
	assert.Equal(t, "/uploads/payment-proofs/u1/1-receipt.jpg", url)

	data, err := os.ReadFile(filepath.Join(dir, "payment-proofs", "u1", "1-receipt.jpg"))
	require.NoError(t, err)
	assert.Equal(t, "gcash", string(data))
}

func TestFileStoreOverwrite(t *testing.T) {
	dir := t.TempDir()
	store, err := NewFileStore(dir, "/uploads")
	require.NoError(t, err)

	_, err = store.Upload(context.Background(), "avatars/u1.png", strings.NewReader("old"))
	require.NoError(t, err)
	_, err = store.Upload(context.Background(), "avatars/u1.png", strings.NewReader("new"))
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(dir, "avatars", "u1.png"))
	require.NoError(t, err)
	assert.Equal(t, "new", string(data))
}

func TestFileStoreNeutralizesTraversal(t *testing.T) {
	dir := t.TempDir()
	store, err := NewFileStore(dir, "/uploads")
	require.NoError(t, err)

	// Leading dot-dot segments are stripped; the write stays inside baseDir.
	url, err := store.Upload(context.Background(), "../outside.txt", strings.NewReader("x"))
	require.NoError(t, err)
	assert.Equal(t, "/uploads/outside.txt", url)

	_, err = os.Stat(filepath.Join(dir, "outside.txt"))
	assert.NoError(t, err)
}

func TestFileStoreRejectsEmptyPath(t *testing.T) {
	store, err := NewFileStore(t.TempDir(), "/uploads")
	require.NoError(t, err)

	_, err = store.Upload(context.Background(), "", strings.NewReader("x"))
	assert.Error(t, err)
}
