package replica_test

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/aretw0/replica"
	"github.com/aretw0/replica/internal/testutils"
	"github.com/aretw0/replica/pkg/domain"
	"github.com/aretw0/replica/pkg/driver"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReconstruct(t *testing.T) {
	bin, argsPath := testutils.StubBinary(t, 0, true)
	datasetPath := filepath.Join(t.TempDir(), "office0")
	outRoot := t.TempDir()

	var out bytes.Buffer
	res, err := replica.Reconstruct(context.Background(), driver.Request{
		DatasetPath: datasetPath,
		OutputRoot:  outRoot,
		BinaryPath:  bin,
	}, driver.WithStdout(&out))
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(outRoot, "office0", domain.MeshFileName), res.Outputs.MeshPath)
	assert.Equal(t, filepath.Join(outRoot, "office0", domain.ESDFFileName), res.Outputs.ESDFPath)
	assert.FileExists(t, res.Outputs.MeshPath)
	assert.Len(t, testutils.ReadArgs(t, argsPath), 5)
	assert.Contains(t, out.String(), "Running executable at:\t"+bin)
}

func TestReconstruct_MissingBinary(t *testing.T) {
	_, err := replica.Reconstruct(context.Background(), driver.Request{
		DatasetPath: t.TempDir(),
		BinaryPath:  filepath.Join(t.TempDir(), "missing"),
	})
	assert.ErrorIs(t, err, domain.ErrBinaryNotFound)
}
