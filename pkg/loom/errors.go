package loom

import (
	"errors"

	ierrors "github.com/loomui/loom/internal/errors"
)

// ErrorSink receives errors raised by user code (effect bodies, cleanups)
// and misuse warnings. The runtime never stops processing sibling hooks
// because of a sink-reported error. The default sink logs via slog.
type ErrorSink func(error)

// ErrProtocolViolation matches any hook-protocol violation: hook order or
// count changing between rebuilds, hooks called outside a build phase,
// lifecycle transitions out of order. Protocol violations abort the
// offending pass.
//
//	if err := owner.Rebuild(render); errors.Is(err, loom.ErrProtocolViolation) {
//	    // the component broke the hook contract; this is a bug, not a
//	    // recoverable runtime state
//	}
var ErrProtocolViolation = errors.New("loom: hook protocol violation")

// ErrUnmounted is returned when rebuilding an owner that has already been
// unmounted.
var ErrUnmounted = errors.New("loom: owner unmounted")

// protocolError mints a structured protocol-violation error from the
// registry and tags it so errors.Is(err, ErrProtocolViolation) holds.
func protocolError(code string, detailFormat string, args ...any) error {
	e := ierrors.New(code)
	if detailFormat != "" {
		e = e.WithDetail(detailFormat, args...)
	}
	return &taggedError{err: e, tag: ErrProtocolViolation}
}

// userError wraps a recovered panic from user code with a stable code.
func userError(code string, recovered any) error {
	var inner error
	if err, ok := recovered.(error); ok {
		inner = err
	} else {
		inner = ierrors.Newf(ierrors.CategoryRuntime, "panic: %v", recovered)
	}
	return ierrors.New(code).Wrap(inner)
}

// taggedError chains a structured error to a sentinel so both
// errors.As(*ierrors.LoomError) and errors.Is(sentinel) work.
type taggedError struct {
	err error
	tag error
}

func (t *taggedError) Error() string { return t.err.Error() }

func (t *taggedError) Unwrap() []error { return []error{t.err, t.tag} }
