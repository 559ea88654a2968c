/*
Package domain contains the core data model for the Espalier pipeline engine.

It is intentionally free of infrastructure concerns: hooks, phases, contexts,
results and errors are plain values so they can cross every layer boundary
(registry, compiler, runtime, adapters) without coupling them together.
*/
package domain
