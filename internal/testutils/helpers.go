package testutils

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// StubBinary writes a POSIX shell script standing in for fuse_replica.
// The script records each received argument on its own line in the returned
// args file, touches the mesh and ESDF outputs when writeOutputs is set, and
// exits with exitCode. Tests using it are skipped on Windows.
func StubBinary(t *testing.T, exitCode int, writeOutputs bool) (binPath, argsPath string) {
	t.Helper()

	if runtime.GOOS == "windows" {
		t.Skip("shell stubs are not supported on windows")
	}

	dir := t.TempDir()
	binPath = filepath.Join(dir, "fuse_replica")
	argsPath = filepath.Join(dir, "args.txt")

	var b strings.Builder
	b.WriteString("#!/bin/sh\n")
	fmt.Fprintf(&b, ": > %q\n", argsPath)
	fmt.Fprintf(&b, "for a in \"$@\"; do printf '%%s\\n' \"$a\" >> %q; done\n", argsPath)
	if writeOutputs {
		b.WriteString("printf 'ply\\n' > \"$3\"\n")
		b.WriteString("printf 'ply\\n' > \"$5\"\n")
	}
	b.WriteString("echo \"fuse_replica stub on $1\"\n")
	if exitCode != 0 {
		b.WriteString("echo 'stub failure' >&2\n")
	}
	fmt.Fprintf(&b, "exit %d\n", exitCode)

	require.NoError(t, os.WriteFile(binPath, []byte(b.String()), 0755), "Failed to write stub binary")
	return binPath, argsPath
}

// ReadArgs returns the arguments recorded by a StubBinary run.
func ReadArgs(t *testing.T, argsPath string) []string {
	t.Helper()

	data, err := os.ReadFile(argsPath)
	require.NoError(t, err, "stub binary was not invoked")

	trimmed := strings.TrimSuffix(string(data), "\n")
	if trimmed == "" {
		return nil
	}
	return strings.Split(trimmed, "\n")
}
