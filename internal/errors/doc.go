// Package errors provides structured, actionable error values for Loom.
//
// Every failure mode the runtime can raise has a stable code (e.g. "E002")
// that maps to a short message, a detailed explanation, and a documentation
// URL. Codes are grouped by category:
//   - protocol: the host or component broke the hook-calling contract
//   - runtime: user-supplied code (effect bodies, cleanups) failed
//   - misuse: suspicious-but-survivable usage, reported in debug mode
//
// # Usage
//
//	err := errors.New("E002").
//	    WithDetail("slot 2 held useEffect, call reached useState")
//
//	fmt.Println(err.Error())
//	// Output: E002: Hook order changed between rebuilds
package errors
