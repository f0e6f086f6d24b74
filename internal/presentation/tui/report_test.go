package tui

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/aretw0/replica/pkg/domain"
	"github.com/aretw0/replica/pkg/driver"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleResult(t *testing.T, code int) driver.Result {
	t.Helper()
	out := domain.NewOutputs(t.TempDir())
	require.NoError(t, os.WriteFile(out.MeshPath, []byte("ply\n"), 0644))
	return driver.Result{
		RunID:       "run-1",
		Dataset:     "room0",
		DatasetPath: "/data/room0",
		Binary:      "/opt/fuse_replica",
		Outputs:     out,
		Status:      domain.ExitStatus{Code: code, Duration: 1500 * time.Millisecond, Stderr: "CUDA error\n"},
	}
}

func TestReport(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		res := sampleResult(t, 0)
		md := Report(res)

		assert.Contains(t, md, "# Reconstruction of room0")
		assert.Contains(t, md, "| Exit code | 0 |")
		assert.Contains(t, md, "| Duration | 1.5s |")
		assert.Contains(t, md, "`"+res.Outputs.MeshPath+"` (written)")
		assert.Contains(t, md, "`"+res.Outputs.ESDFPath+"` (missing)")
		assert.NotContains(t, md, "Stderr")
	})

	t.Run("Failure Shows Stderr Tail", func(t *testing.T) {
		md := Report(sampleResult(t, 1))
		assert.Contains(t, md, "## Stderr (tail)")
		assert.Contains(t, md, "CUDA error")
	})
}

func TestRunsTable(t *testing.T) {
	assert.Equal(t, "_No recorded runs._\n", RunsTable(nil))

	table := RunsTable([]domain.Run{{
		ID:        "abc",
		Dataset:   "room0",
		Outcome:   domain.OutcomeFailed,
		ExitCode:  3,
		StartedAt: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
		Duration:  2 * time.Second,
	}})
	lines := strings.Split(strings.TrimSpace(table), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "| 2024-05-01T12:00:00Z | room0 | failed | 3 | 2s | `abc` |", lines[2])
}

func TestStatusLine(t *testing.T) {
	ok := StatusLine(termenv.Ascii, sampleResult(t, 0))
	assert.Contains(t, ok, "✔ reconstructed")
	assert.Contains(t, ok, "room0 in 1.5s")

	failed := StatusLine(termenv.Ascii, sampleResult(t, 2))
	assert.Contains(t, failed, "✘ fuse_replica failed")
	assert.Contains(t, failed, "on room0 (exit code 2)")
}

func TestNewRenderer_NonTerminal(t *testing.T) {
	f, err := os.Create(filepath.Join(t.TempDir(), "out.txt"))
	require.NoError(t, err)
	defer f.Close()

	assert.False(t, IsTerminal(f))
	render := NewRenderer(f)
	out, err := render("# Title\n\nbody")
	require.NoError(t, err)
	assert.Contains(t, out, "Title")
	assert.Contains(t, out, "body")
}
