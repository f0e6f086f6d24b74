// Package dataset resolves the filesystem locations around a Replica reconstruction:
// the dataset name, the per-dataset output directory and the default fuse_replica binary.
package dataset
