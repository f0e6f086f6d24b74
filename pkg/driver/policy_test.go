package driver_test

import (
	"path/filepath"
	"testing"

	"github.com/aretw0/replica/pkg/domain"
	"github.com/aretw0/replica/pkg/driver"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequestPolicy_Apply(t *testing.T) {
	root := t.TempDir()
	policy := driver.RequestPolicy{BinaryPath: "/opt/nvblox/fuse_replica", OutputRoot: root}

	t.Run("Fills Pinned Fields", func(t *testing.T) {
		req, err := policy.Apply(driver.Request{DatasetPath: "/data/room0"})
		require.NoError(t, err)
		assert.Equal(t, "/opt/nvblox/fuse_replica", req.BinaryPath)
		assert.Equal(t, root, req.OutputRoot)
		assert.Equal(t, "/data/room0", req.DatasetPath)
	})

	t.Run("Rejects Caller Binary", func(t *testing.T) {
		_, err := policy.Apply(driver.Request{DatasetPath: "/data/room0", BinaryPath: "/bin/sh"})
		assert.ErrorIs(t, err, domain.ErrForbidden)
	})

	t.Run("Allows Subdirectory", func(t *testing.T) {
		req, err := policy.Apply(driver.Request{DatasetPath: "/data/room0", OutputRoot: filepath.Join(root, "nightly")})
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(root, "nightly"), req.OutputRoot)
	})

	tests := []struct {
		name string
		root string
	}{
		{name: "Sibling", root: filepath.Join(filepath.Dir(root), "elsewhere")},
		{name: "Traversal", root: filepath.Join(root, "..", "escape")},
		{name: "Absolute Elsewhere", root: "/etc"},
	}
	for _, tt := range tests {
		t.Run("Rejects "+tt.name, func(t *testing.T) {
			_, err := policy.Apply(driver.Request{DatasetPath: "/data/room0", OutputRoot: tt.root})
			assert.ErrorIs(t, err, domain.ErrForbidden)
		})
	}

	t.Run("No Root Configured", func(t *testing.T) {
		_, err := driver.RequestPolicy{}.Apply(driver.Request{DatasetPath: "/data/room0", OutputRoot: root})
		assert.ErrorIs(t, err, domain.ErrForbidden)
	})
}
