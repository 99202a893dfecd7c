package loom

import "reflect"

// Deps is the ordered dependency list supplied alongside an effect or memo.
// The list is compared element-wise against the previous pass to decide
// whether the hook must re-run. Element order carries meaning: equal sets
// in different order compare as changed.
//
// Two sentinels:
//   - a nil Deps re-runs the hook on every pass that reaches it
//   - an empty non-nil Deps (loom.Deps{}) runs the hook on the allocation
//     pass only, never again, until unmount
type Deps []any

// Always is the nil sentinel: the hook re-runs on every pass.
var Always Deps = nil

// Once is the empty sentinel: the hook runs on the allocation pass only.
var Once = Deps{}

// compareResult is the outcome of diffing a dependency list against the
// previously stored one.
type compareResult uint8

const (
	// compareFirstRun means no previous list exists (allocation pass).
	compareFirstRun compareResult = iota

	// compareUnchanged means every pairwise test passed; the hook is not due.
	compareUnchanged

	// compareChanged means the hook must re-run.
	compareChanged
)

// String returns a human-readable name for the result.
func (r compareResult) String() string {
	switch r {
	case compareFirstRun:
		return "FirstRun"
	case compareUnchanged:
		return "Unchanged"
	case compareChanged:
		return "Changed"
	default:
		return "Unknown"
	}
}

// compareDeps diffs the previous pass's dependency list against this
// pass's. hasPrev is false only on the allocation pass.
//
// Either list being nil forces Changed ("always run" semantics). Both empty
// is Unchanged after the first pass (the "run once" sentinel only fires on
// FirstRun). Otherwise a length mismatch or any differing pair is Changed.
func compareDeps(prev Deps, hasPrev bool, next Deps) compareResult {
	if !hasPrev {
		return compareFirstRun
	}
	if prev == nil || next == nil {
		return compareChanged
	}
	if len(prev) != len(next) {
		return compareChanged
	}
	for i := range prev {
		if !depEqual(prev[i], next[i]) {
			return compareChanged
		}
	}
	return compareUnchanged
}

// depEqual compares one dependency pair: value equality for comparable
// values (which is identity for pointers and channels), referent identity
// for maps and slices. Funcs never compare equal: reflect only exposes the
// code pointer, under which two closures of the same literal would alias,
// and a missed re-run is worse than a spurious one. Values of other
// uncomparable composite types always compare as unequal.
func depEqual(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}

	va := reflect.ValueOf(a)
	vb := reflect.ValueOf(b)
	if va.Type() != vb.Type() {
		return false
	}

	switch va.Kind() {
	case reflect.Func:
		return false
	case reflect.Map:
		return va.Pointer() == vb.Pointer()
	case reflect.Slice:
		// Referent identity plus length: a reslice of the same array is a
		// different dependency value.
		return va.Pointer() == vb.Pointer() && va.Len() == vb.Len()
	}

	if !va.Type().Comparable() {
		return false
	}
	return a == b
}
