package loom

// DebugMode enables development-time checks for invalid operations.
// When true:
//   - Invoking an event wrapper during the build phase reports a misuse
//     error (E040) to the owner's error sink
//   - Slot labels carry their allocation pass number
//
// When false (production):
//   - The build-phase invocation check is skipped entirely
//   - Minimal overhead
//
// Set this at application startup:
//
//	func main() {
//	    loom.DebugMode = os.Getenv("LOOM_DEV") == "1"
//	    // ...
//	}
var DebugMode = false

// Debug holds fine-grained debug toggles. All are off by default and only
// consulted when DebugMode is true.
var Debug = struct {
	// LogEffectRuns logs every effect run and cleanup via the owner's logger.
	LogEffectRuns bool

	// LogPasses logs the start and end of every rebuild pass.
	LogPasses bool
}{}
