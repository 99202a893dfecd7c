package loom

// memoSlot is the per-call-site record for UseMemo: the cached value and
// the dependency list it was computed against.
type memoSlot struct {
	deps    Deps
	hasDeps bool
	value   any
}

func (*memoSlot) kind() slotKind { return slotMemo }

// UseMemo returns a cached computation gated by the same dependency
// sentinels as UseEffect: nil deps recompute on every pass, an empty list
// computes exactly once, and a non-empty list recomputes when any element
// differs from the previous pass. The computation runs inline during the
// build phase and must be pure.
func UseMemo[T any](compute func() T, deps Deps) T {
	o := currentBuildOwner()
	rec, first := o.enterSlot(slotMemo)
	if first {
		v := compute()
		o.storeSlot(&memoSlot{deps: deps, hasDeps: true, value: v})
		return v
	}

	m := rec.(*memoSlot)
	result := compareDeps(m.deps, m.hasDeps, deps)
	m.deps = deps
	if result == compareUnchanged {
		v, ok := m.value.(T)
		if !ok {
			panic(protocolError("E006",
				"memo slot holds %T, call site requested a different type", m.value))
		}
		return v
	}

	v := compute()
	m.value = v
	return v
}
