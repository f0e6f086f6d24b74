/*
Package replica drives the fuse_replica reconstruction binary over a Replica dataset.

It does not reconstruct anything itself. Given a dataset directory it locates the
pre-built fuse_replica executable, prepares an output directory named after the
dataset, invokes the binary with the mesh and ESDF output paths, and returns those
paths to the caller.

# Concept

The binary is an opaque collaborator with a fixed command line:

	fuse_replica <dataset> --mesh_output_path <mesh> --esdf_output_path <esdf>

The exit status of the binary is reported, not enforced: a non-zero exit still
returns the output paths, and callers inspect Result.Status (or opt into strict
mode) to decide what a failure means for them.

# Usage

	package main

	import (
		"context"
		"log"

		"github.com/aretw0/replica"
		"github.com/aretw0/replica/pkg/driver"
	)

	func main() {
		res, err := replica.Reconstruct(context.Background(), driver.Request{
			DatasetPath: "/datasets/replica/office0",
		})
		if err != nil {
			log.Fatal(err)
		}
		log.Println("mesh:", res.Outputs.MeshPath)
		log.Println("esdf:", res.Outputs.ESDFPath)
	}

Richer setups (run stores, locking, metrics, strict mode) build a driver.Driver
directly; see package driver.
*/
package replica
