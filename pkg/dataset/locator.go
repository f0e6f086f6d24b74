package dataset

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/aretw0/replica/pkg/domain"
)

const (
	// DefaultOutputDirName is created below the locator base when no output root is given.
	DefaultOutputDirName = "output"
	// BinaryName is the file name of the reconstruction executable.
	BinaryName = "fuse_replica"
)

// DefaultBinaryRelPath is where the build places fuse_replica, relative to the locator base.
var DefaultBinaryRelPath = filepath.Join("build", "executables", BinaryName)

// Name derives the dataset name from its root directory path.
// The path is made absolute first so that "." or "room0/" resolve to a real name.
func Name(datasetPath string) (string, error) {
	if datasetPath == "" {
		return "", fmt.Errorf("%w: empty path", domain.ErrInvalidDataset)
	}
	abs, err := filepath.Abs(datasetPath)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrInvalidDataset, err)
	}
	name := filepath.Base(abs)
	if name == string(filepath.Separator) || name == "." || name == filepath.VolumeName(abs) {
		return "", fmt.Errorf("%w: %q has no base name", domain.ErrInvalidDataset, datasetPath)
	}
	return name, nil
}

// Locator resolves default locations relative to a base directory.
type Locator struct {
	BaseDir string
}

// NewLocator returns a Locator rooted at baseDir.
// If baseDir is empty, the directory of the running executable is used.
func NewLocator(baseDir string) (*Locator, error) {
	if baseDir == "" {
		exe, err := os.Executable()
		if err != nil {
			return nil, fmt.Errorf("failed to locate executable: %w", err)
		}
		if resolved, err := filepath.EvalSymlinks(exe); err == nil {
			exe = resolved
		}
		baseDir = filepath.Dir(exe)
	}
	return &Locator{BaseDir: baseDir}, nil
}

// DefaultOutputRoot is the output root used when the caller does not provide one.
func (l *Locator) DefaultOutputRoot() string {
	return filepath.Join(l.BaseDir, DefaultOutputDirName)
}

// DefaultBinary is the standard build output location of fuse_replica.
func (l *Locator) DefaultBinary() string {
	return filepath.Join(l.BaseDir, DefaultBinaryRelPath)
}

// ResolveBinary returns path, or the default binary when path is empty.
func (l *Locator) ResolveBinary(path string) string {
	if path == "" {
		return l.DefaultBinary()
	}
	return path
}

// OutputDir returns <root>/<name>, creating it if needed.
// An empty root falls back to DefaultOutputRoot.
func (l *Locator) OutputDir(name, root string) (string, error) {
	if root == "" {
		root = l.DefaultOutputRoot()
	}
	dir := filepath.Join(root, name)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}
	return dir, nil
}

// CheckBinary verifies that path references an existing regular file.
func CheckBinary(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("%w: cant find binary at %s", domain.ErrBinaryNotFound, path)
	}
	if !info.Mode().IsRegular() {
		return fmt.Errorf("%w: %s is not a regular file", domain.ErrBinaryNotFound, path)
	}
	return nil
}
