package loom

// slotKind identifies the kind of hook occupying a slot. The kind found at
// a slot must match the kind of the call reaching it on every rebuild of a
// live owner; a mismatch is a protocol violation, not a recoverable state.
type slotKind uint8

const (
	slotEffect slotKind = iota + 1
	slotEvent
	slotState
	slotRef
	slotMemo
)

// String returns a human-readable name for the slot kind.
func (k slotKind) String() string {
	switch k {
	case slotEffect:
		return "Effect"
	case slotEvent:
		return "Event"
	case slotState:
		return "State"
	case slotRef:
		return "Ref"
	case slotMemo:
		return "Memo"
	default:
		return "Unknown"
	}
}

// label returns the diagnostic label exposed for tree-introspection
// tooling. Informational only; carries no behavioral contract.
func (k slotKind) label() string {
	switch k {
	case slotEffect:
		return "useEffect"
	case slotEvent:
		return "useEffectEvent"
	case slotState:
		return "useState"
	case slotRef:
		return "useRef"
	case slotMemo:
		return "useMemo"
	default:
		return "unknown"
	}
}

// slot is one record in an owner's slot store. Records are owned
// exclusively by the store that allocated them and live until the owner
// unmounts.
type slot interface {
	kind() slotKind
}

// enterSlot fetches the record at the owner's current cursor position, or
// reports that the call site is on its allocation pass. The cursor advances
// either way; on the allocation pass the caller must follow up with
// storeSlot exactly once.
//
// Panics with a protocol violation if the record at the cursor holds a
// different hook kind (E002).
func (o *Owner) enterSlot(k slotKind) (slot, bool) {
	idx := o.cursor
	o.cursor++

	if idx < len(o.slots) {
		rec := o.slots[idx]
		if rec.kind() != k {
			panic(protocolError("E002",
				"slot %d held %s on a previous rebuild, reached by %s", idx, rec.kind(), k))
		}
		return rec, false
	}

	if idx > len(o.slots) {
		// enterSlot/storeSlot pairing broken by a hook implementation.
		panic(protocolError("E002", "slot %d entered before slot %d was stored", idx, len(o.slots)))
	}
	return nil, true
}

// storeSlot appends a freshly allocated record for the slot just entered.
func (o *Owner) storeSlot(rec slot) {
	o.slots = append(o.slots, rec)
}

// finalizePass verifies that this pass reached every slot a previous pass
// reached. An owner that stops reaching a previously-reached hook has lost
// that hook's cleanup, so the pass fails loudly instead of truncating
// (E003). Only grows are legal: new slots may be appended at the tail on
// any pass.
func (o *Owner) finalizePass() error {
	if o.cursor < len(o.slots) {
		return protocolError("E003",
			"rebuild reached %d hooks, previous rebuild reached %d", o.cursor, len(o.slots))
	}
	return nil
}
