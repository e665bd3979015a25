package walker

import "github.com/pkg/errors"

// Walk failures propagate synchronously to whoever invoked the operation
// that detected them; nothing here is retried internally. Match with
// errors.Is.
var (
	// ErrNullBuffer: no output buffer was supplied. Fatal to the call.
	ErrNullBuffer = errors.New("stack walk: frames buffer is nil")

	// ErrCorruptedBuffer: guard validation failed on resume or teardown.
	// Fatal to the whole walk.
	ErrCorruptedBuffer = errors.New("stack walk: corrupted buffers")

	// ErrUnsupportedCallerSensitive: a fast-path query reached a
	// caller-sensitive method as the first frame of a batch. Reporting only
	// its declaring type would let callers bypass the method-info path, so
	// the walk fails instead of eliding the frame.
	ErrUnsupportedCallerSensitive = errors.New("stack walk: caller-sensitive method on fast path")

	// ErrDecodeFailure: a fill produced zero frames although the cursor was
	// not exhausted, which means cursor and decoder disagree about the stack.
	ErrDecodeFailure = errors.New("stack walk: decode failed")

	// ErrInternalDecode: a slot value of a kind that local decoding is
	// defined never to produce reached the live decoder.
	ErrInternalDecode = errors.New("stack walk: unexpected slot value")
)
