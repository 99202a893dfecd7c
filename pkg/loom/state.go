package loom

// stateSlot boxes a StateCell so the slot store can hold cells of any
// element type behind one record kind.
type stateSlot struct {
	cell any
}

func (*stateSlot) kind() slotKind { return slotState }

// StateCell is a plain persistent mutable cell with a rebuild-trigger
// contract: Set and Update store the new value and invoke the owner's
// host-provided rebuild trigger. It has no scheduling behavior of its own.
//
// The cell is owned by its slot and must only be written from the owning
// instance's pass or its event handlers; it is not safe for concurrent use.
type StateCell[T any] struct {
	owner *Owner
	value T
}

// Get returns the current value.
func (c *StateCell[T]) Get() T {
	return c.value
}

// Set stores a new value and requests a rebuild from the host.
func (c *StateCell[T]) Set(value T) {
	c.value = value
	c.owner.Invalidate()
}

// Update applies a transformation to the current value and requests a
// rebuild from the host.
func (c *StateCell[T]) Update(transform func(T) T) {
	c.value = transform(c.value)
	c.owner.Invalidate()
}

// UseState returns the persistent state cell for the current slot,
// storing initial on the allocation pass. The returned cell is
// identity-stable across rebuilds.
func UseState[T any](initial T) *StateCell[T] {
	return UseStateLazy(func() T { return initial })
}

// UseStateLazy is UseState with the initial value computed only on the
// allocation pass. Use it when constructing the initial value is costly.
func UseStateLazy[T any](init func() T) *StateCell[T] {
	o := currentBuildOwner()
	rec, first := o.enterSlot(slotState)
	if first {
		c := &StateCell[T]{owner: o, value: init()}
		o.storeSlot(&stateSlot{cell: c})
		return c
	}

	c, ok := rec.(*stateSlot).cell.(*StateCell[T])
	if !ok {
		panic(protocolError("E006",
			"state slot holds %T, call site requested %T", rec.(*stateSlot).cell, (*StateCell[T])(nil)))
	}
	return c
}
