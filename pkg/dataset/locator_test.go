package dataset

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/aretw0/replica/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestName(t *testing.T) {
	root := t.TempDir()

	t.Run("Base Of Path", func(t *testing.T) {
		name, err := Name(filepath.Join(root, "room0"))
		require.NoError(t, err)
		assert.Equal(t, "room0", name)
	})

	t.Run("Trailing Separator", func(t *testing.T) {
		name, err := Name(filepath.Join(root, "office3") + string(filepath.Separator))
		require.NoError(t, err)
		assert.Equal(t, "office3", name)
	})

	t.Run("Relative Dot Segments", func(t *testing.T) {
		name, err := Name(filepath.Join(root, "room0", "..", "room1"))
		require.NoError(t, err)
		assert.Equal(t, "room1", name)
	})

	t.Run("Empty Path", func(t *testing.T) {
		_, err := Name("")
		assert.ErrorIs(t, err, domain.ErrInvalidDataset)
	})

	t.Run("Filesystem Root", func(t *testing.T) {
		_, err := Name(string(filepath.Separator))
		assert.ErrorIs(t, err, domain.ErrInvalidDataset)
	})
}

func TestLocator_Defaults(t *testing.T) {
	base := t.TempDir()
	l, err := NewLocator(base)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(base, "output"), l.DefaultOutputRoot())
	assert.Equal(t, filepath.Join(base, "build", "executables", "fuse_replica"), l.DefaultBinary())
	assert.Equal(t, l.DefaultBinary(), l.ResolveBinary(""))
	assert.Equal(t, "/custom/fuse_replica", l.ResolveBinary("/custom/fuse_replica"))
}

func TestLocator_NewWithoutBase(t *testing.T) {
	l, err := NewLocator("")
	require.NoError(t, err)
	assert.NotEmpty(t, l.BaseDir)
	assert.True(t, filepath.IsAbs(l.BaseDir))
}

func TestLocator_OutputDir(t *testing.T) {
	base := t.TempDir()
	l, err := NewLocator(base)
	require.NoError(t, err)

	t.Run("Default Root", func(t *testing.T) {
		dir, err := l.OutputDir("room0", "")
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(base, "output", "room0"), dir)
		assert.DirExists(t, dir)
	})

	t.Run("Explicit Root", func(t *testing.T) {
		root := filepath.Join(t.TempDir(), "results", "nested")
		dir, err := l.OutputDir("room0", root)
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(root, "room0"), dir)
		assert.DirExists(t, dir)
	})

	t.Run("Existing Directory Is Reused", func(t *testing.T) {
		first, err := l.OutputDir("room1", "")
		require.NoError(t, err)
		second, err := l.OutputDir("room1", "")
		require.NoError(t, err)
		assert.Equal(t, first, second)
	})

	t.Run("Root Is A File", func(t *testing.T) {
		file := filepath.Join(t.TempDir(), "not-a-dir")
		require.NoError(t, os.WriteFile(file, []byte("x"), 0644))
		_, err := l.OutputDir("room0", file)
		assert.Error(t, err)
	})
}

func TestCheckBinary(t *testing.T) {
	dir := t.TempDir()

	t.Run("Regular File", func(t *testing.T) {
		bin := filepath.Join(dir, "fuse_replica")
		require.NoError(t, os.WriteFile(bin, []byte("#!/bin/sh\n"), 0755))
		assert.NoError(t, CheckBinary(bin))
	})

	t.Run("Missing", func(t *testing.T) {
		err := CheckBinary(filepath.Join(dir, "missing"))
		assert.ErrorIs(t, err, domain.ErrBinaryNotFound)
		assert.Contains(t, err.Error(), filepath.Join(dir, "missing"))
	})

	t.Run("Directory", func(t *testing.T) {
		err := CheckBinary(dir)
		assert.ErrorIs(t, err, domain.ErrBinaryNotFound)
	})
}
