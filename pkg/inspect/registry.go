package inspect

import (
	"sync"

	"github.com/loomui/loom/pkg/loom"
)

// Registry tracks live owners and broadcasts a fresh snapshot to
// subscribers after every completed rebuild. It implements loom.Observer;
// attach it with loom.WithObserver at mount.
type Registry struct {
	mu     sync.Mutex
	owners map[uint64]*loom.Owner
	subs   map[chan []loom.OwnerSnapshot]struct{}
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		owners: make(map[uint64]*loom.Owner),
		subs:   make(map[chan []loom.OwnerSnapshot]struct{}),
	}
}

// Mounted implements loom.Observer.
func (r *Registry) Mounted(o *loom.Owner) {
	r.mu.Lock()
	r.owners[o.ID()] = o
	r.mu.Unlock()
}

// Unmounted implements loom.Observer.
func (r *Registry) Unmounted(o *loom.Owner) {
	r.mu.Lock()
	delete(r.owners, o.ID())
	r.mu.Unlock()
	r.broadcast()
}

// PassDone implements loom.Observer.
func (r *Registry) PassDone(o *loom.Owner, err error) {
	r.broadcast()
}

// EffectRan implements loom.Observer.
func (r *Registry) EffectRan(*loom.Owner) {}

// CleanupRan implements loom.Observer.
func (r *Registry) CleanupRan(*loom.Owner) {}

// SinkError implements loom.Observer.
func (r *Registry) SinkError(*loom.Owner, error) {}

// Snapshot returns the current tree of live root owners. Children appear
// nested under their parents, not as separate roots.
func (r *Registry) Snapshot() []loom.OwnerSnapshot {
	r.mu.Lock()
	roots := make([]*loom.Owner, 0, len(r.owners))
	for _, o := range r.owners {
		if o.Parent() == nil {
			roots = append(roots, o)
		}
	}
	r.mu.Unlock()

	snaps := make([]loom.OwnerSnapshot, 0, len(roots))
	for _, o := range roots {
		snaps = append(snaps, o.Snapshot())
	}
	return snaps
}

// Subscribe returns a channel receiving a snapshot after every rebuild.
// The channel is buffered and coalescing: a slow consumer sees the most
// recent snapshot, not every intermediate one.
func (r *Registry) Subscribe() chan []loom.OwnerSnapshot {
	ch := make(chan []loom.OwnerSnapshot, 1)
	r.mu.Lock()
	r.subs[ch] = struct{}{}
	r.mu.Unlock()
	return ch
}

// Unsubscribe removes a subscription created by Subscribe.
func (r *Registry) Unsubscribe(ch chan []loom.OwnerSnapshot) {
	r.mu.Lock()
	delete(r.subs, ch)
	r.mu.Unlock()
}

// broadcast pushes the current snapshot to every subscriber, replacing a
// pending unconsumed snapshot rather than blocking.
func (r *Registry) broadcast() {
	snap := r.Snapshot()

	r.mu.Lock()
	defer r.mu.Unlock()
	for ch := range r.subs {
		select {
		case ch <- snap:
		default:
			select {
			case <-ch:
			default:
			}
			select {
			case ch <- snap:
			default:
			}
		}
	}
}

// Tee fans lifecycle notifications out to several observers, so a
// registry and a metrics collector can share one owner.
func Tee(observers ...loom.Observer) loom.Observer {
	return teeObserver(observers)
}

type teeObserver []loom.Observer

func (t teeObserver) Mounted(o *loom.Owner) {
	for _, obs := range t {
		obs.Mounted(o)
	}
}

func (t teeObserver) PassDone(o *loom.Owner, err error) {
	for _, obs := range t {
		obs.PassDone(o, err)
	}
}

func (t teeObserver) EffectRan(o *loom.Owner) {
	for _, obs := range t {
		obs.EffectRan(o)
	}
}

func (t teeObserver) CleanupRan(o *loom.Owner) {
	for _, obs := range t {
		obs.CleanupRan(o)
	}
}

func (t teeObserver) SinkError(o *loom.Owner, err error) {
	for _, obs := range t {
		obs.SinkError(o, err)
	}
}

func (t teeObserver) Unmounted(o *loom.Owner) {
	for _, obs := range t {
		obs.Unmounted(o)
	}
}
