package loom

import (
	"errors"
	"log/slog"
	"sync"
	"sync/atomic"
)

// Owner is one component instance: it owns the slot store backing every
// hook the component function calls, and drives the mount / rebuild /
// unmount lifecycle.
//
// Owners form a hierarchy mirroring the component tree: unmounting an
// owner unmounts its children first, then runs its own outstanding effect
// cleanups in ascending slot order.
//
// The slot store is exclusively owned by, and mutated only during, this
// owner's own rebuild pass. Rebuilds of sibling owners are independent and
// carry no relative ordering guarantee.
type Owner struct {
	id uint64

	// parent is the parent Owner in the hierarchy.
	// nil for a root Owner.
	parent *Owner

	// children are child Owners (sub-components).
	children   []*Owner
	childrenMu sync.Mutex

	// slots is the ordered store of hook records, indexed by call order.
	// The same logical hook call must occupy the same index on every
	// rebuild of a live owner.
	slots []slot

	// cursor is the slot index the next hook call will occupy.
	// Reset at the start of each build phase.
	cursor int

	// passCount counts completed rebuild passes.
	passCount int

	// building is true while the component function is executing.
	building bool

	// flushing is true while due effect bodies and cleanups are running.
	flushing bool

	// unmounted indicates the owner has been disposed.
	unmounted atomic.Bool

	// invalidate is the host-provided rebuild trigger.
	invalidate func()

	// sink receives user-code errors and misuse warnings.
	sink ErrorSink

	// logger backs the default sink and debug logging.
	logger *slog.Logger

	// observer receives lifecycle notifications, if set.
	observer Observer
}

// Observer receives owner lifecycle notifications. Implementations must be
// cheap and must not call back into the owner's lifecycle methods.
// Introspection registries and metrics collectors implement this.
type Observer interface {
	// Mounted is called once, from NewOwner.
	Mounted(o *Owner)

	// PassDone is called after every Rebuild, with the pass's error if any.
	PassDone(o *Owner, err error)

	// EffectRan is called after each effect body executes.
	EffectRan(o *Owner)

	// CleanupRan is called after each effect cleanup executes.
	CleanupRan(o *Owner)

	// SinkError is called for every error delivered to the error sink.
	SinkError(o *Owner, err error)

	// Unmounted is called once, from Unmount.
	Unmounted(o *Owner)
}

// OwnerOption configures an Owner at mount.
type OwnerOption interface {
	applyOwner(o *Owner)
}

type ownerOptionFunc func(*Owner)

func (f ownerOptionFunc) applyOwner(o *Owner) { f(o) }

// WithInvalidate sets the host-provided rebuild trigger. StateCell.Set and
// Update call it after storing a new value. An owner without one simply
// never requests rebuilds on its own.
func WithInvalidate(fn func()) OwnerOption {
	return ownerOptionFunc(func(o *Owner) {
		o.invalidate = fn
	})
}

// WithErrorSink sets the sink receiving user-code errors (failing effect
// bodies and cleanups) and misuse warnings. The default sink logs via the
// owner's logger.
func WithErrorSink(sink ErrorSink) OwnerOption {
	return ownerOptionFunc(func(o *Owner) {
		o.sink = sink
	})
}

// WithLogger sets the logger backing the default sink and debug logging.
func WithLogger(logger *slog.Logger) OwnerOption {
	return ownerOptionFunc(func(o *Owner) {
		o.logger = logger
	})
}

// WithObserver attaches a lifecycle observer.
func WithObserver(obs Observer) OwnerOption {
	return ownerOptionFunc(func(o *Owner) {
		o.observer = obs
	})
}

// NewOwner mounts a new component instance. The new owner is registered as
// a child of parent; pass nil for a root owner.
func NewOwner(parent *Owner, opts ...OwnerOption) *Owner {
	o := &Owner{
		id:     nextID(),
		parent: parent,
		logger: slog.Default(),
	}

	for _, opt := range opts {
		opt.applyOwner(o)
	}

	if parent != nil {
		parent.addChild(o)
	}

	if o.observer != nil {
		o.observer.Mounted(o)
	}

	return o
}

// ID returns the unique identifier for this owner.
func (o *Owner) ID() uint64 {
	return o.id
}

// Parent returns the parent owner, or nil for a root owner.
func (o *Owner) Parent() *Owner {
	return o.parent
}

// IsUnmounted returns true once Unmount has run.
func (o *Owner) IsUnmounted() bool {
	return o.unmounted.Load()
}

// PassCount returns the number of completed rebuild passes.
func (o *Owner) PassCount() int {
	return o.passCount
}

// addChild registers a child owner.
func (o *Owner) addChild(child *Owner) {
	o.childrenMu.Lock()
	defer o.childrenMu.Unlock()
	o.children = append(o.children, child)
}

// removeChild removes a child owner from this owner's children.
func (o *Owner) removeChild(child *Owner) {
	o.childrenMu.Lock()
	defer o.childrenMu.Unlock()

	for i, c := range o.children {
		if c == child {
			o.children = append(o.children[:i], o.children[i+1:]...)
			return
		}
	}
}

// Invalidate forwards to the host's rebuild trigger. No-op if the owner
// was mounted without one or has been unmounted.
func (o *Owner) Invalidate() {
	if o.unmounted.Load() || o.invalidate == nil {
		return
	}
	o.invalidate()
}

// Rebuild executes the component function once: the build phase runs fn
// with every reached hook call recording against its slot, then the flush
// phase runs due effect bodies and cleanups in ascending slot order. Both
// phases complete before Rebuild returns; there is no deferred effect
// phase.
//
// A hook-protocol violation aborts the pass and is returned as an error
// matching ErrProtocolViolation. Failing effect bodies and cleanups do not
// abort the pass: they are reported to the error sink and sibling hooks
// continue to be processed. Any other panic out of fn propagates.
func (o *Owner) Rebuild(fn func()) error {
	if o.unmounted.Load() {
		return errors.Join(protocolError("E004", "owner %d rebuilt after unmount", o.id), ErrUnmounted)
	}
	if o.building || o.flushing {
		return protocolError("E007", "owner %d rebuilt while a pass is in progress", o.id)
	}

	if DebugMode && Debug.LogPasses {
		o.logger.Debug("loom: rebuild start", "owner", o.id, "pass", o.passCount)
	}

	err := o.runBuildPhase(fn)
	if err == nil {
		err = o.finalizePass()
	}
	if err == nil {
		o.flushing = true
		o.flushEffects()
		o.flushing = false
		o.passCount++
	}

	if DebugMode && Debug.LogPasses {
		o.logger.Debug("loom: rebuild end", "owner", o.id, "pass", o.passCount, "error", err)
	}
	if o.observer != nil {
		o.observer.PassDone(o, err)
	}
	return err
}

// runBuildPhase runs the component function with this owner current on
// the goroutine, converting hook-protocol panics into the pass error.
func (o *Owner) runBuildPhase(fn func()) (err error) {
	o.building = true
	o.cursor = 0
	prev := setCurrentOwner(o)

	defer func() {
		setCurrentOwner(prev)
		o.building = false

		if r := recover(); r != nil {
			if e, ok := r.(error); ok && errors.Is(e, ErrProtocolViolation) {
				err = e
				return
			}
			panic(r)
		}
	}()

	fn()
	return nil
}

// Unmount disposes the owner: children unmount first (most recently
// mounted first), then every outstanding effect cleanup runs exactly once
// in ascending slot order. Cleanups that panic are reported to the sink
// and collected into the returned error; they never prevent the remaining
// cleanups from running.
//
// Unmount is only valid as a discrete lifecycle transition: calling it
// during an in-progress rebuild of the same owner, or twice, is a
// protocol violation.
func (o *Owner) Unmount() error {
	if o.building || o.flushing {
		return protocolError("E005", "owner %d unmounted during an in-progress rebuild", o.id)
	}
	if o.unmounted.Swap(true) {
		return protocolError("E005", "owner %d unmounted twice", o.id)
	}

	var errs []error

	o.childrenMu.Lock()
	children := make([]*Owner, len(o.children))
	copy(children, o.children)
	o.children = nil
	o.childrenMu.Unlock()

	for i := len(children) - 1; i >= 0; i-- {
		if err := children[i].Unmount(); err != nil {
			errs = append(errs, err)
		}
	}

	for _, rec := range o.slots {
		ef, ok := rec.(*effectSlot)
		if !ok || ef.cleanup == nil {
			continue
		}
		cleanup := ef.cleanup
		ef.cleanup = nil
		if err := o.runCleanup(cleanup); err != nil {
			errs = append(errs, err)
		}
	}
	o.slots = nil
	o.cursor = 0

	if o.parent != nil {
		o.parent.removeChild(o)
	}
	if o.observer != nil {
		o.observer.Unmounted(o)
	}
	return errors.Join(errs...)
}

// reportError delivers a user-code error or misuse warning to the sink.
func (o *Owner) reportError(err error) {
	if err == nil {
		return
	}
	if o.observer != nil {
		o.observer.SinkError(o, err)
	}
	if o.sink != nil {
		o.sink(err)
		return
	}
	o.logger.Error("loom: user-code error", "owner", o.id, "error", err)
}
