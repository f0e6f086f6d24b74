package domain

import "time"

// Invocation describes a single external process execution.
type Invocation struct {
	Command string   `json:"command"`
	Args    []string `json:"args"`
}

// NewReconstructInvocation builds the fuse_replica command line.
// The argument order is part of the binary's contract:
// dataset, --mesh_output_path, mesh, --esdf_output_path, esdf.
func NewReconstructInvocation(binary, datasetPath string, out Outputs) Invocation {
	return Invocation{
		Command: binary,
		Args: []string{
			datasetPath,
			MeshOutputFlag, out.MeshPath,
			ESDFOutputFlag, out.ESDFPath,
		},
	}
}

// ExitStatus is what a process runner observed once the process terminated.
type ExitStatus struct {
	Code     int           `json:"code"`
	Duration time.Duration `json:"duration"`
	// Stderr holds the tail of the process error stream, if captured.
	Stderr string `json:"stderr,omitempty"`
}

// Success reports whether the process exited cleanly.
func (s ExitStatus) Success() bool {
	return s.Code == 0
}
