// Package loom provides the public API for the Loom hook runtime.
//
// This is the recommended import for most applications:
//
//	import "github.com/loomui/loom"
//
// Usage:
//
//	owner := loom.NewOwner(nil, loom.WithInvalidate(requestRebuild))
//	owner.Rebuild(func() {
//	    url := loom.UseState("/home")
//	    logVisit := loom.UseEvent1(func(u string) { log.Println(u) })
//	    loom.UseEffect(func() loom.Cleanup {
//	        logVisit(url.Get())
//	        return nil
//	    }, loom.Deps{url.Get()})
//	})
package loom

import (
	coreloom "github.com/loomui/loom/pkg/loom"
)

// =============================================================================
// Lifecycle (re-export from pkg/loom)
// =============================================================================

// Owner is one mounted component instance: the slot store owner driving
// the mount / rebuild / unmount lifecycle.
type Owner = coreloom.Owner

// Observer receives owner lifecycle notifications.
type Observer = coreloom.Observer

// OwnerOption configures an Owner at mount.
type OwnerOption = coreloom.OwnerOption

// NewOwner mounts a new component instance.
func NewOwner(parent *Owner, opts ...OwnerOption) *Owner {
	return coreloom.NewOwner(parent, opts...)
}

// WithInvalidate sets the host-provided rebuild trigger.
var WithInvalidate = coreloom.WithInvalidate

// WithErrorSink sets the sink receiving user-code errors and misuse warnings.
var WithErrorSink = coreloom.WithErrorSink

// WithLogger sets the logger backing the default sink and debug logging.
var WithLogger = coreloom.WithLogger

// WithObserver attaches a lifecycle observer.
var WithObserver = coreloom.WithObserver

// =============================================================================
// Hooks
// =============================================================================

// Deps is the ordered dependency list supplied alongside an effect or memo.
type Deps = coreloom.Deps

// Always re-runs the hook on every pass (the nil sentinel).
var Always = coreloom.Always

// Once runs the hook on the allocation pass only (the empty sentinel).
var Once = coreloom.Once

// Cleanup tears an effect down; returned by an effect body.
type Cleanup = coreloom.Cleanup

// EffectFunc is an effect body.
type EffectFunc = coreloom.EffectFunc

// UseEffect registers a side effect gated by a dependency list.
//
// Example:
//
//	loom.UseEffect(func() loom.Cleanup {
//	    sub := bus.Subscribe(topic)
//	    return sub.Close
//	}, loom.Deps{topic})
var UseEffect = coreloom.UseEffect

// UseState returns the persistent state cell for the current slot.
func UseState[T any](initial T) *coreloom.StateCell[T] {
	return coreloom.UseState(initial)
}

// UseStateLazy is UseState with the initial value computed only on the
// allocation pass.
func UseStateLazy[T any](init func() T) *coreloom.StateCell[T] {
	return coreloom.UseStateLazy(init)
}

// UseRef returns an identity-stable mutable box that never triggers rebuilds.
func UseRef[T any](initial T) *coreloom.Ref[T] {
	return coreloom.UseRef(initial)
}

// UseMemo returns a cached computation gated by the dependency comparator.
func UseMemo[T any](compute func() T, deps Deps) T {
	return coreloom.UseMemo(compute, deps)
}

// UseEvent returns a wrapper that always executes the closure provided on
// the most recent rebuild. Never place the wrapper in a dependency list.
var UseEvent = coreloom.UseEvent

// UseEvent1 is UseEvent for a one-argument closure.
func UseEvent1[A any](fn func(A)) func(A) {
	return coreloom.UseEvent1(fn)
}

// UseEvent2 is UseEvent for a two-argument closure.
func UseEvent2[A, B any](fn func(A, B)) func(A, B) {
	return coreloom.UseEvent2(fn)
}

// UseEventR is UseEvent for a closure returning a value.
func UseEventR[R any](fn func() R) func() R {
	return coreloom.UseEventR(fn)
}

// UseEvent1R is UseEvent for a one-argument closure returning a value.
func UseEvent1R[A, R any](fn func(A) R) func(A) R {
	return coreloom.UseEvent1R(fn)
}

// UseEvent2R is UseEvent for a two-argument closure returning a value.
func UseEvent2R[A, B, R any](fn func(A, B) R) func(A, B) R {
	return coreloom.UseEvent2R(fn)
}

// =============================================================================
// Errors and diagnostics
// =============================================================================

// ErrorSink receives user-code errors and misuse warnings.
type ErrorSink = coreloom.ErrorSink

// ErrProtocolViolation matches any hook-protocol violation.
var ErrProtocolViolation = coreloom.ErrProtocolViolation

// ErrUnmounted matches a rebuild of an already-unmounted owner.
var ErrUnmounted = coreloom.ErrUnmounted

// SlotInfo describes one active hook slot for introspection tooling.
type SlotInfo = coreloom.SlotInfo

// OwnerSnapshot is a point-in-time view of an owner and its subtree.
type OwnerSnapshot = coreloom.OwnerSnapshot
