package file_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/aretw0/replica/pkg/adapters/file"
	"github.com/aretw0/replica/pkg/domain"
	"github.com/aretw0/replica/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStore_Contract(t *testing.T) {
	store := file.New(t.TempDir())
	ports.RunRunStoreContract(t, store)
}

func TestFileStore_DefaultPath(t *testing.T) {
	store := file.New("")
	assert.Equal(t, filepath.Join(".replica", "runs"), store.BasePath)
}

func TestFileStore_Atomicity(t *testing.T) {
	dir := t.TempDir()
	store := file.New(dir)
	ctx := context.Background()

	run := &domain.Run{ID: "run-1", Dataset: "room0"}
	require.NoError(t, store.Save(ctx, run))

	run.Dataset = "room1"
	require.NoError(t, store.Save(ctx, run), "overwrite should succeed")

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1, "no temp files should be left behind")
	assert.Equal(t, "run-1.json", entries[0].Name())

	loaded, err := store.Load(ctx, "run-1")
	require.NoError(t, err)
	assert.Equal(t, "room1", loaded.Dataset)
}

func TestFileStore_ListSkipsForeignFiles(t *testing.T) {
	dir := t.TempDir()
	store := file.New(dir)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, &domain.Run{ID: "run-1"}))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "tmp-run-2-123.json"), []byte("{"), 0644))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "nested.json"), 0755))

	runs, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, "run-1", runs[0].ID)
}

func TestFileStore_MissingDirectory(t *testing.T) {
	store := file.New(filepath.Join(t.TempDir(), "never-created"))

	runs, err := store.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, runs)
}

func TestFileStore_InvalidID(t *testing.T) {
	store := file.New(t.TempDir())
	ctx := context.Background()

	assert.Error(t, store.Save(ctx, &domain.Run{ID: ""}))
	assert.Error(t, store.Save(ctx, &domain.Run{ID: "../escape"}))
	_, err := store.Load(ctx, "a/b")
	assert.Error(t, err)
}
