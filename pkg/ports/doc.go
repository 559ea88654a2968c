/*
Package ports defines the driven ports (interfaces) for the Espalier engine.

These interfaces decouple the core from its collaborators: the system that
supplies hook bodies, and optional sinks for finished run results.

# Key Interfaces

  - CallableResolver: maps a hook's opaque callable ref to an invokable body.
  - Recorder: records and retrieves finished pipeline results.
*/
package ports
