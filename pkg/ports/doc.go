/*
Package ports defines the driven ports (interfaces) of the reconstruction driver.

These interfaces decouple the driver from the concrete process launcher and from
wherever run history is kept, so the external binary can be swapped or mocked in
tests without touching driver logic.

# Key Interfaces

  - ProcessRunner: Launches an Invocation and reports its ExitStatus.
  - RunStore: Persists and lists Run records.
  - Locker: Serializes reconstructions that target the same output directory.
*/
package ports
