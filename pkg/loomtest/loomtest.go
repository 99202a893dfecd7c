// Package loomtest provides an in-process host harness for testing
// components built on the Loom hook runtime.
//
// A Host stands in for the component owner's host: it mounts an owner,
// records every rebuild request and sink error, and exposes assertion
// helpers in plain testing style.
//
// Example:
//
//	host := loomtest.NewHost()
//	defer host.Close()
//
//	host.Render(t, func() {
//	    count := loom.UseState(0)
//	    loom.UseEffect(func() loom.Cleanup {
//	        // ...
//	        return nil
//	    }, loom.Deps{count.Get()})
//	})
//	host.ExpectInvalidations(t, 0)
package loomtest

import (
	"strings"
	"testing"

	"github.com/loomui/loom/pkg/loom"
)

// Host is a fake component-model host owning a single root owner.
type Host struct {
	owner *loom.Owner

	invalidations int
	errs          []error
	closed        bool
}

// NewHost mounts a root owner wired to the harness's rebuild trigger and
// error sink.
func NewHost(extra ...loom.OwnerOption) *Host {
	h := &Host{}
	opts := []loom.OwnerOption{
		loom.WithInvalidate(func() { h.invalidations++ }),
		loom.WithErrorSink(func(err error) { h.errs = append(h.errs, err) }),
	}
	opts = append(opts, extra...)
	h.owner = loom.NewOwner(nil, opts...)
	return h
}

// Owner returns the harness's root owner, for mounting children or taking
// snapshots.
func (h *Host) Owner() *loom.Owner {
	return h.owner
}

// Rebuild runs one pass of the component function and returns its error.
func (h *Host) Rebuild(fn func()) error {
	return h.owner.Rebuild(fn)
}

// Render runs one pass and fails the test on any pass error.
func (h *Host) Render(t *testing.T, fn func()) {
	t.Helper()
	if err := h.owner.Rebuild(fn); err != nil {
		t.Fatalf("rebuild failed: %v", err)
	}
}

// RenderTimes runs fn for the given number of passes, failing on any error.
func (h *Host) RenderTimes(t *testing.T, passes int, fn func()) {
	t.Helper()
	for i := 0; i < passes; i++ {
		h.Render(t, fn)
	}
}

// Close unmounts the root owner. Safe to defer even when a test already
// unmounted through other means.
func (h *Host) Close() error {
	if h.closed {
		return nil
	}
	h.closed = true
	return h.owner.Unmount()
}

// Unmount unmounts the root owner and fails the test on cleanup errors.
func (h *Host) Unmount(t *testing.T) {
	t.Helper()
	h.closed = true
	if err := h.owner.Unmount(); err != nil {
		t.Fatalf("unmount failed: %v", err)
	}
}

// Invalidations returns how many rebuilds the component has requested.
func (h *Host) Invalidations() int {
	return h.invalidations
}

// Errors returns every error delivered to the harness sink so far.
func (h *Host) Errors() []error {
	return h.errs
}

// ExpectInvalidations asserts the number of rebuild requests seen so far.
func (h *Host) ExpectInvalidations(t *testing.T, want int) {
	t.Helper()
	if h.invalidations != want {
		t.Errorf("expected %d invalidations, got %d", want, h.invalidations)
	}
}

// ExpectNoErrors asserts that the sink received nothing.
func (h *Host) ExpectNoErrors(t *testing.T) {
	t.Helper()
	if len(h.errs) != 0 {
		t.Errorf("expected no sink errors, got %v", h.errs)
	}
}

// ExpectError asserts that some sink error mentions the given substring
// (typically a stable code like "E020").
func (h *Host) ExpectError(t *testing.T, substr string) {
	t.Helper()
	for _, err := range h.errs {
		if strings.Contains(err.Error(), substr) {
			return
		}
	}
	t.Errorf("expected a sink error containing %q, got %v", substr, h.errs)
}
