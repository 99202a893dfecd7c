package loom

import (
	"reflect"

	ierrors "github.com/loomui/loom/internal/errors"
)

// eventSlot is the persistent boxed indirection behind UseEvent. The cell
// itself is created once per slot and keeps its identity for the lifetime
// of the owner; only its target is rebound, on every pass that reaches the
// call site. Events have no dependency list.
type eventSlot struct {
	// target is the closure provided on the most recent reached pass.
	// Rebound unconditionally; invoking a wrapper calls whatever target
	// holds at invocation time, not at wrapper-creation time.
	target any
}

func (*eventSlot) kind() slotKind { return slotEvent }

// useEventCell fetches or allocates the event cell for the current slot
// and rebinds its target to this pass's closure.
func useEventCell(fn any) (*eventSlot, *Owner) {
	o := currentBuildOwner()
	rec, first := o.enterSlot(slotEvent)
	if first {
		cell := &eventSlot{target: fn}
		o.storeSlot(cell)
		return cell, o
	}

	cell := rec.(*eventSlot)
	if reflect.TypeOf(fn) != reflect.TypeOf(cell.target) {
		panic(protocolError("E006",
			"event slot rebound from %T to %T", cell.target, fn))
	}
	cell.target = fn
	return cell, o
}

// checkEventInvocation reports a misuse warning when a wrapper is invoked
// while its owner is still building: the "latest" state mid-build is the
// build in progress, so the read is meaningless. Non-fatal; the target
// still runs. Skipped entirely outside DebugMode.
func (o *Owner) checkEventInvocation() {
	if !DebugMode || !o.building {
		return
	}
	o.reportError(ierrors.New("E040"))
}

// UseEvent returns a wrapper that always executes the closure provided on
// the most recent rebuild. The owning effect does not need to list the
// closure's captured state as a dependency: the wrapper reads the
// persistent cell at invocation time.
//
// The wrapper itself is NOT identity-stable: a new wrapper is produced on
// every pass even though it delegates to a persistent cell. Never place
// the wrapper in an effect's dependency list; doing so re-arms the very
// effect the mechanism exists to decouple from rebuild churn.
//
// A panic out of the target propagates to the wrapper's invoker; it is
// the caller's failure domain, not the error sink's.
func UseEvent(fn func()) func() {
	cell, o := useEventCell(fn)
	return func() {
		o.checkEventInvocation()
		cell.target.(func())()
	}
}

// UseEvent1 is UseEvent for a one-argument closure.
func UseEvent1[A any](fn func(A)) func(A) {
	cell, o := useEventCell(fn)
	return func(a A) {
		o.checkEventInvocation()
		cell.target.(func(A))(a)
	}
}

// UseEvent2 is UseEvent for a two-argument closure.
func UseEvent2[A, B any](fn func(A, B)) func(A, B) {
	cell, o := useEventCell(fn)
	return func(a A, b B) {
		o.checkEventInvocation()
		cell.target.(func(A, B))(a, b)
	}
}

// UseEventR is UseEvent for a closure returning a value. The wrapper
// forwards the result verbatim.
func UseEventR[R any](fn func() R) func() R {
	cell, o := useEventCell(fn)
	return func() R {
		o.checkEventInvocation()
		return cell.target.(func() R)()
	}
}

// UseEvent1R is UseEvent for a one-argument closure returning a value.
func UseEvent1R[A, R any](fn func(A) R) func(A) R {
	cell, o := useEventCell(fn)
	return func(a A) R {
		o.checkEventInvocation()
		return cell.target.(func(A) R)(a)
	}
}

// UseEvent2R is UseEvent for a two-argument closure returning a value.
func UseEvent2R[A, B, R any](fn func(A, B) R) func(A, B) R {
	cell, o := useEventCell(fn)
	return func(a A, b B) R {
		o.checkEventInvocation()
		return cell.target.(func(A, B) R)(a, b)
	}
}
