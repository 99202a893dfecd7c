package loom

// SlotInfo describes one active hook slot for tree-introspection tooling.
// Informational only; nothing behavioral may be derived from it.
type SlotInfo struct {
	Index int    `json:"index"`
	Kind  string `json:"kind"`
	Label string `json:"label"`

	// FirstPass is true for an effect slot whose allocation pass has not
	// flushed yet.
	FirstPass bool `json:"firstPass,omitempty"`

	// HasCleanup is true for an effect slot holding an outstanding cleanup.
	HasCleanup bool `json:"hasCleanup,omitempty"`
}

// OwnerSnapshot is a point-in-time view of an owner and its subtree.
type OwnerSnapshot struct {
	ID        uint64          `json:"id"`
	Passes    int             `json:"passes"`
	Unmounted bool            `json:"unmounted,omitempty"`
	Slots     []SlotInfo      `json:"slots"`
	Children  []OwnerSnapshot `json:"children,omitempty"`
}

// Snapshot captures the owner's current slot layout and recurses into its
// children. Taking a snapshot while the owner is mid-rebuild on another
// goroutine is not supported; callers synchronize through the host the
// same way rebuilds do.
func (o *Owner) Snapshot() OwnerSnapshot {
	snap := OwnerSnapshot{
		ID:        o.id,
		Passes:    o.passCount,
		Unmounted: o.unmounted.Load(),
		Slots:     make([]SlotInfo, 0, len(o.slots)),
	}

	for i, rec := range o.slots {
		info := SlotInfo{
			Index: i,
			Kind:  rec.kind().String(),
			Label: rec.kind().label(),
		}
		if ef, ok := rec.(*effectSlot); ok {
			info.FirstPass = ef.firstPass
			info.HasCleanup = ef.cleanup != nil
		}
		snap.Slots = append(snap.Slots, info)
	}

	o.childrenMu.Lock()
	children := make([]*Owner, len(o.children))
	copy(children, o.children)
	o.childrenMu.Unlock()

	for _, child := range children {
		snap.Children = append(snap.Children, child.Snapshot())
	}
	return snap
}
