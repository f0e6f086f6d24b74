package domain

import "path/filepath"

// Fixed artifact names written inside the per-dataset output directory.
const (
	MeshFileName = "reconstructed_mesh.ply"
	ESDFFileName = "reconstructed_esdf.ply"
)

// Command line flags understood by fuse_replica.
const (
	MeshOutputFlag = "--mesh_output_path"
	ESDFOutputFlag = "--esdf_output_path"
)

// Outputs is the set of locations a reconstruction writes to.
type Outputs struct {
	Dir      string `json:"dir"`
	MeshPath string `json:"mesh_path"`
	ESDFPath string `json:"esdf_path"`
}

// NewOutputs derives the artifact paths for the given output directory.
func NewOutputs(dir string) Outputs {
	return Outputs{
		Dir:      dir,
		MeshPath: filepath.Join(dir, MeshFileName),
		ESDFPath: filepath.Join(dir, ESDFFileName),
	}
}
