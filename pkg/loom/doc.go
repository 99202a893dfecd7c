// Package loom provides the hook-state and effect-scheduling core for the
// Loom runtime.
//
// A component function declares transient, order-dependent hooks that survive
// across repeated invocations (rebuilds) of that function. Each hook call is
// backed by a slot, identified by call order within one Owner; the same
// logical call must occupy the same slot on every rebuild of a live owner.
//
// # Core Types
//
// Owner is one component instance: it owns the slot store and drives the
// mount / rebuild / unmount lifecycle:
//
//	owner := NewOwner(nil, WithInvalidate(requestRebuild))
//	owner.Rebuild(func() {
//	    name := UseState("world")
//	    UseEffect(func() Cleanup {
//	        conn := subscribe(name.Get())
//	        return conn.Close
//	    }, Deps{name.Get()})
//	})
//	owner.Unmount()
//
// UseEffect registers a side effect gated by a dependency list. A nil list
// re-runs the effect on every pass, an empty list runs it exactly once, and
// a non-empty list re-runs it whenever any element differs from the previous
// pass. When an effect re-runs, the new body executes and its cleanup is
// stored before the previous cleanup is invoked, so external systems never
// observe a gap where neither handler is installed.
//
// UseEvent returns a wrapper that always executes the closure provided on
// the most recent rebuild, without the owning effect needing to list that
// closure's captured state as a dependency. The wrapper is deliberately not
// identity-stable across passes: never place it in a dependency list.
//
// # Execution Model
//
// Everything is single-threaded and synchronous. A rebuild has two phases
// inside the one Rebuild call: the build phase runs the component function
// and records every reached hook, then the flush phase runs due effect
// bodies and cleanups in ascending slot order before Rebuild returns. There
// is no deferred or background effect phase.
//
// Hook call order is a caller obligation. Violations (a slot changing kind,
// the reached-hook count shrinking) abort the offending pass with a
// descriptive error rather than silently continuing.
package loom
