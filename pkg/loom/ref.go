package loom

// refSlot boxes a Ref so the slot store can hold refs of any element type
// behind one record kind.
type refSlot struct {
	box any
}

func (*refSlot) kind() slotKind { return slotRef }

// Ref is an identity-stable mutable box. Unlike a StateCell, writing a Ref
// never triggers a rebuild: it is for values the component needs to keep
// across rebuilds without reacting to, such as handles to external
// resources or the previous pass's inputs.
type Ref[T any] struct {
	value T
}

// Current returns the boxed value.
func (r *Ref[T]) Current() T {
	return r.value
}

// Set replaces the boxed value. No rebuild is requested.
func (r *Ref[T]) Set(value T) {
	r.value = value
}

// UseRef returns the identity-stable box for the current slot, storing
// initial on the allocation pass.
func UseRef[T any](initial T) *Ref[T] {
	o := currentBuildOwner()
	rec, first := o.enterSlot(slotRef)
	if first {
		r := &Ref[T]{value: initial}
		o.storeSlot(&refSlot{box: r})
		return r
	}

	r, ok := rec.(*refSlot).box.(*Ref[T])
	if !ok {
		panic(protocolError("E006",
			"ref slot holds %T, call site requested %T", rec.(*refSlot).box, (*Ref[T])(nil)))
	}
	return r
}
