// Package walker implements a resumable, batched stack-walking engine: it
// enumerates the frames of a thread or captured continuation, decodes them
// into caller-owned buffers one batch at a time, and keeps the underlying
// cursor valid and forgery-proof across reentrant calls into the
// orchestration code that consumes each batch.
package walker

import (
	"strata/internal/exec"
	"strata/internal/object"
)

// TokenSlot is the buffer index reserved for the guard token. Decoded frame
// records start at the request's StartIndex; every other slot is
// caller-owned and never touched.
const TokenSlot = 0

// Mode selects what a walk decodes and which frames it retains.
type Mode struct {
	// LiveFrames materializes locals, operand stacks, and monitors; it
	// selects the live cursor variant.
	LiveFrames bool

	// ClassOnly is the fast path: records carry only the declaring type of
	// each frame's method.
	ClassOnly bool

	// ShowHidden disables the default suppression of compiler-generated
	// frames.
	ShowHidden bool

	// CallerQuery marks a get-caller-class style walk; hidden frames are
	// suppressed regardless of ShowHidden.
	CallerQuery bool
}

// suppressHidden reports whether hidden frames are dropped from output.
func (m Mode) suppressHidden() bool { return !m.ShowHidden || m.CallerQuery }

// State is the coordinator's view of a walk after an operation returns.
type State int

const (
	StateResumable State = iota
	StateTerminated
)

func (s State) String() string {
	if s == StateResumable {
		return "resumable"
	}
	return "terminated"
}

// Batch hands one filled buffer range to orchestration code. The token must
// be presented verbatim to ContinueBatch or RebindContinuation.
type Batch struct {
	Frames     []object.Object
	Token      *object.WalkToken
	SkipFrames int
	BatchSize  int
	StartIndex int
	EndIndex   int
}

// Consumer is the orchestration callback invoked with the first batch. It
// may call ContinueBatch and RebindContinuation any number of times before
// returning; its result is handed back to the walk initiator.
type Consumer func(Batch) (object.Object, error)

// WalkRequest describes one walk. The owning thread is always passed
// explicitly; the walker keeps no ambient per-thread state.
type WalkRequest struct {
	// Thread owns the walk and, when Continuation is nil, supplies the stack.
	Thread *exec.Thread

	// Continuation, if set, walks a captured continuation instead of the
	// thread's own stack.
	Continuation *exec.Continuation

	// Scope bounds the walk: frames past the boundary of the continuation
	// entered under this scope are never reached.
	Scope *exec.Scope

	Mode Mode

	// IsDriver identifies frames belonging to the walking machinery itself,
	// which are skipped before any counting starts. Supplied by the caller
	// so renamed or restructured driver entry points cannot silently leak
	// into walks.
	IsDriver func(*exec.Method) bool

	SkipFrames int
	BatchSize  int
	StartIndex int
	Frames     []object.Object

	Consume Consumer
}

var nilValue = &object.Nil{}

func contRef(c *exec.Continuation) object.Object {
	if c == nil {
		return nilValue
	}
	return c
}
