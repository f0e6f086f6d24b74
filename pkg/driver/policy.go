package driver

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/aretw0/replica/pkg/domain"
)

// RequestPolicy pins the parts of a Request that remote callers must not choose.
// The HTTP and MCP servers apply it to every request before calling Reconstruct.
type RequestPolicy struct {
	// BinaryPath is the executable every request runs. Empty means the locator default.
	BinaryPath string
	// OutputRoot confines requested output roots to itself and its subdirectories.
	// Empty means requests cannot choose an output root at all.
	OutputRoot string
}

// Apply returns req with the pinned fields filled in.
// A request naming its own binary, or an output root outside OutputRoot,
// fails with domain.ErrForbidden.
func (p RequestPolicy) Apply(req Request) (Request, error) {
	if req.BinaryPath != "" {
		return req, fmt.Errorf("%w: binary_path is fixed by the server", domain.ErrForbidden)
	}
	req.BinaryPath = p.BinaryPath

	if req.OutputRoot == "" {
		req.OutputRoot = p.OutputRoot
		return req, nil
	}
	if p.OutputRoot == "" {
		return req, fmt.Errorf("%w: output_root_path is fixed by the server", domain.ErrForbidden)
	}

	root, err := filepath.Abs(p.OutputRoot)
	if err != nil {
		return req, fmt.Errorf("failed to resolve output root: %w", err)
	}
	requested, err := filepath.Abs(req.OutputRoot)
	if err != nil {
		return req, fmt.Errorf("%w: %v", domain.ErrForbidden, err)
	}
	rel, err := filepath.Rel(root, requested)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return req, fmt.Errorf("%w: output_root_path must be inside %s", domain.ErrForbidden, root)
	}

	req.OutputRoot = requested
	return req, nil
}
