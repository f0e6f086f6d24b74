/*
Package domain contains the core models of the replica reconstruction driver.

The driver does not reconstruct anything itself. It prepares an Invocation of the
external fuse_replica binary, waits for it, and reports where the artifacts were
requested to be written. This package is kept free of I/O so that adapters
(process runners, run stores, servers) can share the same vocabulary.

# Key Entities

  - Outputs: The output directory plus the mesh and ESDF artifact paths.
  - Invocation: The command and ordered arguments handed to a process runner.
  - ExitStatus: What the process runner observed when the command terminated.
  - Run: A persisted record of one reconstruction attempt.
*/
package domain
