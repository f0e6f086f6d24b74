/*
Package driver implements the reconstruction driver: it resolves the dataset name
and output locations, checks that the fuse_replica binary exists, invokes it with

	<dataset> --mesh_output_path <mesh> --esdf_output_path <esdf>

and returns the artifact paths. All reconstruction work happens inside the binary.

The process launch goes through ports.ProcessRunner, so tests can swap the binary
for a stub or a function without touching driver logic.
*/
package driver
