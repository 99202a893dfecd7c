package loom

import (
	"errors"
	"strings"
	"testing"
)

func TestEffectRunsOnAllocationPass(t *testing.T) {
	owner := NewOwner(nil)
	defer owner.Unmount()

	ran := false
	err := owner.Rebuild(func() {
		UseEffect(func() Cleanup {
			ran = true
			return nil
		}, Deps{1})
	})
	if err != nil {
		t.Fatalf("rebuild failed: %v", err)
	}
	if !ran {
		t.Error("effect should run synchronously within the allocation pass")
	}
}

func TestEffectRunsBeforeRebuildReturns(t *testing.T) {
	owner := NewOwner(nil)
	defer owner.Unmount()

	order := []string{}
	owner.Rebuild(func() {
		UseEffect(func() Cleanup {
			order = append(order, "effect")
			return nil
		}, nil)
		order = append(order, "build")
	})
	order = append(order, "returned")

	want := "build,effect,returned"
	if got := strings.Join(order, ","); got != want {
		t.Errorf("expected order %q, got %q", want, got)
	}
}

func TestEffectDependencyGating(t *testing.T) {
	owner := NewOwner(nil)
	defer owner.Unmount()

	runs := 0
	cleanups := 0
	dep := "a"

	render := func() {
		UseEffect(func() Cleanup {
			runs++
			return func() { cleanups++ }
		}, Deps{dep})
	}

	owner.Rebuild(render)
	owner.Rebuild(render)
	owner.Rebuild(render)
	if runs != 1 {
		t.Errorf("identical deps should never re-run the body, got %d runs", runs)
	}
	if cleanups != 0 {
		t.Errorf("identical deps should never run cleanup, got %d", cleanups)
	}

	dep = "b"
	owner.Rebuild(render)
	if runs != 2 {
		t.Errorf("changed dep should re-run exactly once, got %d runs", runs)
	}
	if cleanups != 1 {
		t.Errorf("changed dep should clean up the previous run, got %d", cleanups)
	}
}

func TestEffectEmptyDepsRunsOnce(t *testing.T) {
	owner := NewOwner(nil)
	defer owner.Unmount()

	runs := 0
	render := func() {
		UseEffect(func() Cleanup {
			runs++
			return nil
		}, Once)
	}

	for i := 0; i < 5; i++ {
		owner.Rebuild(render)
	}
	if runs != 1 {
		t.Errorf("empty deps should run exactly once across rebuilds, got %d", runs)
	}
}

func TestEffectNilDepsRunsEveryPass(t *testing.T) {
	owner := NewOwner(nil)
	defer owner.Unmount()

	runs := 0
	render := func() {
		UseEffect(func() Cleanup {
			runs++
			return nil
		}, Always)
	}

	for i := 0; i < 4; i++ {
		owner.Rebuild(render)
	}
	if runs != 4 {
		t.Errorf("nil deps should run on every pass, got %d runs", runs)
	}
}

func TestEffectNewBodyBeforeOldCleanup(t *testing.T) {
	owner := NewOwner(nil)
	defer owner.Unmount()

	order := []string{}
	dep := 1

	render := func() {
		n := dep
		UseEffect(func() Cleanup {
			order = append(order, "run")
			return func() { order = append(order, "cleanup") }
		}, Deps{n})
	}

	owner.Rebuild(render)
	dep = 2
	owner.Rebuild(render)

	// The new body runs and its cleanup is stored before the previous
	// cleanup is invoked: no gap where neither handler is installed.
	want := "run,run,cleanup"
	if got := strings.Join(order, ","); got != want {
		t.Errorf("expected order %q, got %q", want, got)
	}
}

func TestEffectLatestBodyRuns(t *testing.T) {
	owner := NewOwner(nil)
	defer owner.Unmount()

	var got string
	dep := 0
	captured := "first"

	render := func() {
		c := captured
		UseEffect(func() Cleanup {
			got = c
			return nil
		}, Deps{dep})
	}

	owner.Rebuild(render)
	captured = "second" // body rebound but not due: must not run
	owner.Rebuild(render)
	if got != "first" {
		t.Fatalf("unchanged deps must not run the rebound body, got %q", got)
	}

	captured = "third"
	dep = 1
	owner.Rebuild(render)
	if got != "third" {
		t.Errorf("a due effect must run the latest pass's body, got %q", got)
	}
}

func TestEffectBodyPanicReportedAndSiblingsContinue(t *testing.T) {
	var sunk []error
	owner := NewOwner(nil, WithErrorSink(func(err error) { sunk = append(sunk, err) }))
	defer owner.Unmount()

	secondRan := false
	err := owner.Rebuild(func() {
		UseEffect(func() Cleanup {
			panic("boom")
		}, nil)
		UseEffect(func() Cleanup {
			secondRan = true
			return nil
		}, nil)
	})
	if err != nil {
		t.Fatalf("a failing effect body must not abort the pass: %v", err)
	}
	if !secondRan {
		t.Error("remaining hooks in the pass should still be processed")
	}
	if len(sunk) != 1 {
		t.Fatalf("expected 1 sink error, got %d", len(sunk))
	}
	if !strings.Contains(sunk[0].Error(), "E020") {
		t.Errorf("expected E020 effect failure, got %v", sunk[0])
	}
}

func TestEffectBodyPanicDropsCleanup(t *testing.T) {
	var sunk []error
	owner := NewOwner(nil, WithErrorSink(func(err error) { sunk = append(sunk, err) }))

	oldCleanups := 0
	dep := 1
	fail := false

	render := func() {
		n := dep
		shouldFail := fail
		UseEffect(func() Cleanup {
			if shouldFail {
				panic("boom")
			}
			return func() { oldCleanups++ }
		}, Deps{n})
	}

	owner.Rebuild(render)
	dep, fail = 2, true
	owner.Rebuild(render)

	// The failed run yields no cleanup, but still tears down the previous one.
	if oldCleanups != 1 {
		t.Errorf("previous cleanup should run after a failed re-run, got %d", oldCleanups)
	}

	if err := owner.Unmount(); err != nil {
		t.Errorf("no cleanup should remain after a failed run, got %v", err)
	}
	if oldCleanups != 1 {
		t.Errorf("cleanup must never run twice, got %d", oldCleanups)
	}
}

func TestUnmountRunsCleanupsInSlotOrder(t *testing.T) {
	owner := NewOwner(nil)

	order := []int{}
	owner.Rebuild(func() {
		UseEffect(func() Cleanup {
			return func() { order = append(order, 0) }
		}, Once)
		UseEffect(func() Cleanup {
			return func() { order = append(order, 1) }
		}, Once)
		UseEffect(func() Cleanup {
			return func() { order = append(order, 2) }
		}, Once)
	})

	if err := owner.Unmount(); err != nil {
		t.Fatalf("unmount failed: %v", err)
	}
	if len(order) != 3 || order[0] != 0 || order[1] != 1 || order[2] != 2 {
		t.Errorf("cleanups should run in ascending slot order, got %v", order)
	}
}

func TestUnmountCollectsCleanupFailures(t *testing.T) {
	var sunk []error
	owner := NewOwner(nil, WithErrorSink(func(err error) { sunk = append(sunk, err) }))

	thirdRan := false
	owner.Rebuild(func() {
		UseEffect(func() Cleanup {
			return func() { panic("cleanup one") }
		}, Once)
		UseEffect(func() Cleanup {
			return func() { panic(errors.New("cleanup two")) }
		}, Once)
		UseEffect(func() Cleanup {
			return func() { thirdRan = true }
		}, Once)
	})

	err := owner.Unmount()
	if err == nil {
		t.Fatal("unmount should return the collected cleanup failures")
	}
	if !thirdRan {
		t.Error("a failing cleanup must not prevent remaining cleanups from running")
	}
	if len(sunk) != 2 {
		t.Errorf("expected both failures reported to the sink, got %d", len(sunk))
	}
	if !strings.Contains(err.Error(), "cleanup two") {
		t.Errorf("collected error should carry the underlying failure, got %v", err)
	}
}

func TestEffectCleanupOnlyOnce(t *testing.T) {
	owner := NewOwner(nil)

	cleanups := 0
	owner.Rebuild(func() {
		UseEffect(func() Cleanup {
			return func() { cleanups++ }
		}, Once)
	})

	owner.Unmount()
	if cleanups != 1 {
		t.Errorf("expected exactly 1 cleanup at unmount, got %d", cleanups)
	}
}
