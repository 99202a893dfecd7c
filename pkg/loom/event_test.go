package loom

import (
	"fmt"
	"strings"
	"testing"
)

func TestEventLatestCapture(t *testing.T) {
	owner := NewOwner(nil)
	defer owner.Unmount()

	var wrapper func() int
	n := 1

	render := func() {
		captured := n
		wrapper = UseEventR(func() int { return captured })
	}

	owner.Rebuild(render)
	if got := wrapper(); got != 1 {
		t.Errorf("expected 1 after first rebuild, got %d", got)
	}

	n = 2
	owner.Rebuild(render)
	n = 3
	owner.Rebuild(render)
	if got := wrapper(); got != 3 {
		t.Errorf("wrapper must reflect the most recent rebuild, got %d", got)
	}
}

func TestEventWrapperHeldAcrossRebuilds(t *testing.T) {
	owner := NewOwner(nil)
	defer owner.Unmount()

	var first func() string
	state := "rebuild-1"

	render := func() {
		captured := state
		w := UseEventR(func() string { return captured })
		if first == nil {
			first = w
		}
	}

	owner.Rebuild(render)
	state = "rebuild-2"
	owner.Rebuild(render)
	state = "rebuild-3"
	owner.Rebuild(render)

	// A wrapper created during rebuild 1 and invoked after rebuild 3 must
	// reflect rebuild 3's captured state, not rebuild 1's.
	if got := first(); got != "rebuild-3" {
		t.Errorf("expected rebuild-3, got %q", got)
	}
}

func TestEventIdentityInstability(t *testing.T) {
	owner := NewOwner(nil)
	defer owner.Unmount()

	var wrappers []func()
	render := func() {
		wrappers = append(wrappers, UseEvent(func() {}))
	}

	owner.Rebuild(render)
	owner.Rebuild(render)
	owner.Rebuild(render)

	// Each pass produces a fresh wrapper delegating to the same cell. The
	// observable consequence: wrappers never compare equal as dependencies.
	for i := 0; i < len(wrappers); i++ {
		for j := i + 1; j < len(wrappers); j++ {
			if depEqual(wrappers[i], wrappers[j]) {
				t.Errorf("wrappers from passes %d and %d should be distinct", i, j)
			}
		}
	}
}

func TestEventWrapperInDepsDefeatsGating(t *testing.T) {
	owner := NewOwner(nil)
	defer owner.Unmount()

	runs := 0
	render := func() {
		w := UseEvent(func() {})
		// Anti-pattern: the wrapper is rebuilt each pass, so an effect
		// listing it re-arms on every rebuild.
		UseEffect(func() Cleanup {
			runs++
			return nil
		}, Deps{w})
	}

	owner.Rebuild(render)
	owner.Rebuild(render)
	owner.Rebuild(render)
	if runs != 3 {
		t.Errorf("a wrapper dependency should re-arm the effect every pass, got %d runs", runs)
	}
}

func TestEventForwardsArgumentsAndResult(t *testing.T) {
	owner := NewOwner(nil)
	defer owner.Unmount()

	var join func(string, int) string
	owner.Rebuild(func() {
		join = UseEvent2R(func(s string, n int) string {
			return fmt.Sprintf("%s:%d", s, n)
		})
	})

	if got := join("/about", 10); got != "/about:10" {
		t.Errorf("expected /about:10, got %q", got)
	}
}

func TestEventTargetPanicPropagates(t *testing.T) {
	owner := NewOwner(nil)
	defer owner.Unmount()

	var w func()
	owner.Rebuild(func() {
		w = UseEvent(func() { panic("target failure") })
	})

	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("target panic should propagate to the wrapper's invoker")
		}
		if r != "target failure" {
			t.Errorf("expected the target's panic value, got %v", r)
		}
	}()
	w()
}

// Scenario from the effect/event contract: an effect depends only on url,
// an event reads n. Rebuilding (/home,5) -> (/home,10) -> (/about,10) runs
// the effect twice, and the third run logs the latest n.
func TestEffectEventScenario(t *testing.T) {
	owner := NewOwner(nil)
	defer owner.Unmount()

	var log []string
	url, n := "/home", 5

	render := func() {
		capturedN := n
		logVisit := UseEvent1(func(u string) {
			log = append(log, fmt.Sprintf("%s:%d", u, capturedN))
		})
		u := url
		UseEffect(func() Cleanup {
			logVisit(u)
			return nil
		}, Deps{u})
	}

	owner.Rebuild(render)
	url, n = "/home", 10
	owner.Rebuild(render)
	url, n = "/about", 10
	owner.Rebuild(render)

	if len(log) != 2 {
		t.Fatalf("effect should run on the first and third rebuild only, got %d runs: %v", len(log), log)
	}
	if log[0] != "/home:5" {
		t.Errorf("expected /home:5 on mount, got %q", log[0])
	}
	if log[1] != "/about:10" {
		t.Errorf("expected /about:10 (latest n, not the value at mount), got %q", log[1])
	}
}

func TestEventRebindTypeMismatchIsProtocolViolation(t *testing.T) {
	owner := NewOwner(nil)
	defer owner.Unmount()

	err := owner.Rebuild(func() {
		UseEvent1(func(int) {})
	})
	if err != nil {
		t.Fatalf("first rebuild failed: %v", err)
	}

	err = owner.Rebuild(func() {
		UseEvent1(func(string) {})
	})
	if err == nil {
		t.Fatal("rebinding an event slot to a different closure type should abort the pass")
	}
	if !strings.Contains(err.Error(), "E006") {
		t.Errorf("expected E006, got %v", err)
	}
}

func TestEventInvokedDuringBuildWarnsInDebugMode(t *testing.T) {
	DebugMode = true
	defer func() { DebugMode = false }()

	var sunk []error
	owner := NewOwner(nil, WithErrorSink(func(err error) { sunk = append(sunk, err) }))
	defer owner.Unmount()

	invoked := false
	err := owner.Rebuild(func() {
		w := UseEvent(func() { invoked = true })
		w() // mid-build: the "latest" state is the build in progress
	})
	if err != nil {
		t.Fatalf("the misuse warning must be non-fatal to the pass: %v", err)
	}
	if !invoked {
		t.Error("the target should still run despite the warning")
	}
	if len(sunk) != 1 || !strings.Contains(sunk[0].Error(), "E040") {
		t.Errorf("expected an E040 misuse warning, got %v", sunk)
	}
}

func TestEventInvokedFromEffectDoesNotWarn(t *testing.T) {
	DebugMode = true
	defer func() { DebugMode = false }()

	var sunk []error
	owner := NewOwner(nil, WithErrorSink(func(err error) { sunk = append(sunk, err) }))
	defer owner.Unmount()

	owner.Rebuild(func() {
		w := UseEvent(func() {})
		UseEffect(func() Cleanup {
			w() // effect flush is past the build phase
			return nil
		}, nil)
	})

	if len(sunk) != 0 {
		t.Errorf("invoking a wrapper from an effect should not warn, got %v", sunk)
	}
}
