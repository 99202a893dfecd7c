package loom

// Cleanup is a function returned by an effect body to tear the effect
// down. It is called when the effect re-runs (after the new body has
// executed) and when the owner unmounts.
type Cleanup func()

// EffectFunc is an effect body. Returning nil means the effect needs no
// teardown.
type EffectFunc func() Cleanup

// effectSlot is the per-call-site record for UseEffect. It is a small
// state machine driven once per reachable pass: on the allocation pass the
// body is due regardless of deps; afterwards Changed re-arms it and
// Unchanged leaves it parked; unmount runs the stored cleanup and discards
// the record.
type effectSlot struct {
	// deps is the dependency list stored on the most recent reached pass.
	deps    Deps
	hasDeps bool

	// body is the effect function provided on the most recent reached
	// pass. Only the latest body ever runs.
	body EffectFunc

	// due marks the effect for the current pass's flush phase.
	due bool

	// cleanup is the teardown returned by the last run, if any.
	cleanup Cleanup

	// firstPass is true only until the allocation pass completes.
	firstPass bool
}

func (*effectSlot) kind() slotKind { return slotEffect }

// UseEffect registers a side effect against the current slot.
//
// The dependency list decides when the body re-runs: nil re-runs it on
// every pass that reaches the call, an empty list (loom.Once) runs it on
// the allocation pass only, and a non-empty list re-runs it on any pass
// where an element differs from the previous pass.
//
// Due bodies run during the flush phase of the same Rebuild call, in slot
// order. When a due effect already holds a cleanup, the new body runs and
// its cleanup is stored before the old cleanup is invoked: external
// systems registering handlers never observe a gap where neither the old
// nor the new handler is installed. Callers depend on this ordering.
func UseEffect(fn EffectFunc, deps Deps) {
	o := currentBuildOwner()
	rec, first := o.enterSlot(slotEffect)
	if first {
		o.storeSlot(&effectSlot{
			deps:      deps,
			hasDeps:   true,
			body:      fn,
			due:       true,
			firstPass: true,
		})
		return
	}

	ef := rec.(*effectSlot)
	result := compareDeps(ef.deps, ef.hasDeps, deps)
	ef.deps = deps
	ef.body = fn
	if result != compareUnchanged {
		ef.due = true
	}
}

// flushEffects runs every due effect in ascending slot order. Called from
// Rebuild after the build phase finalizes; completes before Rebuild
// returns.
//
// A failing body or cleanup is reported to the sink and never prevents
// later slots from flushing: every reached index gets processed.
func (o *Owner) flushEffects() {
	for idx, rec := range o.slots {
		ef, ok := rec.(*effectSlot)
		if !ok || !ef.due {
			continue
		}
		ef.due = false

		if DebugMode && Debug.LogEffectRuns {
			o.logger.Debug("loom: effect run", "owner", o.id, "slot", idx, "first", ef.firstPass)
		}

		newCleanup := o.runEffectBody(ef.body)
		if o.observer != nil {
			o.observer.EffectRan(o)
		}

		// New cleanup is stored before the previous one is invoked.
		old := ef.cleanup
		ef.cleanup = newCleanup
		if old != nil {
			o.runCleanup(old)
		}
		ef.firstPass = false
	}
}

// runEffectBody executes an effect body, converting a panic into a sink
// report (E020). A failed body yields no cleanup.
func (o *Owner) runEffectBody(fn EffectFunc) (cleanup Cleanup) {
	defer func() {
		if r := recover(); r != nil {
			cleanup = nil
			o.reportError(userError("E020", r))
		}
	}()
	return fn()
}

// runCleanup executes a stored cleanup exactly once, converting a panic
// into a sink report (E021) and returning it for Unmount to collect.
func (o *Owner) runCleanup(fn Cleanup) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = userError("E021", r)
			o.reportError(err)
		}
		if o.observer != nil {
			o.observer.CleanupRan(o)
		}
	}()
	fn()
	return nil
}
