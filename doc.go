/*
Package espalier is a declarative pipeline execution engine: domain code
registers named hooks against fixed lifecycle phases, and the engine
validates the set, computes a deterministic execution order, and runs the
hooks against a shared per-run context with phase-specific failure
semantics.

# Concept

An execution is split into six fixed phases: preflight, before, execute,
after, emit, finalize. The first three are fail-fast (the first error aborts
the run), the last three are continue-on-error (errors are captured but
sibling hooks still run). Finalize always runs exactly once per execution,
so cleanup happens even after an abort.

Hooks are plain descriptors: an ID, a phase, an opaque callable reference,
a priority, same-phase dependencies, an optional type tag and an optional
timeout. The actual bodies are supplied by the host through a resolver, so
the engine stays decoupled from how work is implemented; direct (blocking)
and suspending (channel-completing) bodies mix freely within one plan.

# Lifecycle

Registration is mutable until the registry is sealed. Sealing is a one-way,
idempotent transition; after it, the registry is immutable and safe to share.
Building compiles the sealed registry into a frozen plan, validating type
compatibility, dependency existence and acyclicity, and ordering each phase
deterministically (dependencies first, then ascending priority, then hook
ID). The plan may feed unlimited concurrent runs; each run owns exactly one
single-use runner and one mutable context.

# Usage

	package main

	import (
		"context"
		"log"

		"github.com/aretw0/espalier"
		"github.com/aretw0/espalier/pkg/adapters/memory"
		"github.com/aretw0/espalier/pkg/domain"
	)

	func main() {
		resolver := memory.NewResolver()
		resolver.Register("greet", domain.CallableFunc(
			func(ctx context.Context, pc *domain.Context) error {
				pc.Set("greeting", "hello")
				return nil
			}))

		pipe := espalier.New("demo", espalier.WithResolver(resolver))
		if err := pipe.Register(domain.Hook{
			ID: "greet", Phase: domain.PhaseExecute, CallableRef: "greet",
		}); err != nil {
			log.Fatal(err)
		}

		if err := pipe.Build(); err != nil {
			log.Fatal(err)
		}

		result, err := pipe.Run(context.Background())
		if err != nil {
			log.Fatal(err)
		}
		log.Println(result.Context.Snapshot())
	}

Pipelines can also be declared in YAML through pkg/manifest, and observed
through pkg/observability (Prometheus) or custom lifecycle hooks.
*/
package espalier
