package loom

import (
	"runtime"
	"sync"
)

// trackingContext holds the hook-call state for a goroutine. Rebuild sets
// the current owner for the duration of the pass so hook calls can find
// their slot store without threading it through every call.
type trackingContext struct {
	// currentOwner is the Owner whose rebuild pass is executing.
	// nil means no pass is in progress on this goroutine.
	currentOwner *Owner
}

// trackingContexts stores per-goroutine tracking contexts.
var trackingContexts sync.Map

// getGoroutineID returns a unique identifier for the current goroutine.
// This uses the runtime stack to extract the goroutine ID.
// Note: This is an implementation detail and should not be relied upon externally.
func getGoroutineID() uint64 {
	var buf [64]byte
	n := runtime.Stack(buf[:], false)

	// The stack starts with "goroutine <id> "
	var id uint64
	for i := 10; i < n; i++ { // Skip "goroutine "
		if buf[i] == ' ' {
			break
		}
		id = id*10 + uint64(buf[i]-'0')
	}
	return id
}

// getTrackingContext returns the tracking context for the current goroutine,
// creating one if none exists.
func getTrackingContext() *trackingContext {
	gid := getGoroutineID()

	if ctx, ok := trackingContexts.Load(gid); ok {
		return ctx.(*trackingContext)
	}

	ctx := &trackingContext{}
	trackingContexts.Store(gid, ctx)
	return ctx
}

// getCurrentOwner returns the owner whose pass is executing on this
// goroutine, or nil.
func getCurrentOwner() *Owner {
	return getTrackingContext().currentOwner
}

// setCurrentOwner sets the current owner for hook calls.
// Returns the previous owner so it can be restored.
func setCurrentOwner(o *Owner) *Owner {
	ctx := getTrackingContext()
	old := ctx.currentOwner
	ctx.currentOwner = o
	return old
}

// currentBuildOwner returns the owner currently in its build phase on this
// goroutine. Hook entry points call this; a nil owner or one past its build
// phase is a protocol violation (E001).
func currentBuildOwner() *Owner {
	o := getCurrentOwner()
	if o == nil || !o.building {
		panic(protocolError("E001", ""))
	}
	return o
}
