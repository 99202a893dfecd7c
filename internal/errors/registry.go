package errors

// ErrorTemplate defines a registered error type.
type ErrorTemplate struct {
	Category Category
	Message  string
	Detail   string
	DocURL   string
}

// registry maps error codes to their templates.
var registry = map[string]ErrorTemplate{
	// ============================================
	// Protocol Violations (E001-E019)
	// ============================================

	"E001": {
		Category: CategoryProtocol,
		Message:  "Hook called outside a rebuild pass",
		Detail:   "Hooks must be called from inside the component function passed to Owner.Rebuild. Calling a hook from an event handler, a goroutine, or an effect body has no slot to attach to.",
		DocURL:   "https://loomui.dev/docs/errors/E001",
	},
	"E002": {
		Category: CategoryProtocol,
		Message:  "Hook order changed between rebuilds",
		Detail:   "A slot that previously held one kind of hook was reached by a different kind. Hooks must be called unconditionally, in the same order, on every rebuild of a live owner.",
		DocURL:   "https://loomui.dev/docs/errors/E002",
	},
	"E003": {
		Category: CategoryProtocol,
		Message:  "Fewer hooks reached than on previous rebuild",
		Detail:   "A rebuild stopped short of a slot it reached before. A hook disappearing mid-lifetime means its cleanup would be lost, so the pass is aborted instead of silently truncating.",
		DocURL:   "https://loomui.dev/docs/errors/E003",
	},
	"E004": {
		Category: CategoryProtocol,
		Message:  "Rebuild of an unmounted owner",
		Detail:   "The owner has already been unmounted and its slots disposed. Rebuilding it would resurrect freed hook state.",
		DocURL:   "https://loomui.dev/docs/errors/E004",
	},
	"E005": {
		Category: CategoryProtocol,
		Message:  "Invalid unmount",
		Detail:   "Unmount is only valid as a discrete lifecycle transition: not during an in-progress rebuild of the same owner, and not twice.",
		DocURL:   "https://loomui.dev/docs/errors/E005",
	},
	"E006": {
		Category: CategoryProtocol,
		Message:  "Hook state type mismatch",
		Detail:   "The slot holds state of a different Go type than the call site requested. This usually means two differently-typed hook calls are sharing a call position across rebuilds.",
		DocURL:   "https://loomui.dev/docs/errors/E006",
	},
	"E007": {
		Category: CategoryProtocol,
		Message:  "Reentrant rebuild",
		Detail:   "Owner.Rebuild was called while a rebuild of the same owner was already in progress.",
		DocURL:   "https://loomui.dev/docs/errors/E007",
	},

	// ============================================
	// User-code Failures (E020-E039)
	// ============================================

	"E020": {
		Category: CategoryRuntime,
		Message:  "Effect body failed",
		Detail:   "An effect body panicked. The effect is not retried; remaining hooks in the pass continue to run.",
		DocURL:   "https://loomui.dev/docs/errors/E020",
	},
	"E021": {
		Category: CategoryRuntime,
		Message:  "Effect cleanup failed",
		Detail:   "An effect's cleanup panicked. Remaining cleanups still run; the failure is reported, not swallowed.",
		DocURL:   "https://loomui.dev/docs/errors/E021",
	},

	// ============================================
	// Misuse Warnings (E040-E059)
	// ============================================

	"E040": {
		Category: CategoryMisuse,
		Message:  "Event wrapper invoked during build",
		Detail:   "An effect-event wrapper was invoked while its owner was still building. The \"latest\" state mid-build is the build in progress, so the read is meaningless. Invoke the wrapper from an effect or an external callback instead.",
		DocURL:   "https://loomui.dev/docs/errors/E040",
	},
}

// Lookup returns the template registered for a code, if any.
func Lookup(code string) (ErrorTemplate, bool) {
	t, ok := registry[code]
	return t, ok
}
