package exec

import "strata/internal/object"

// FrameKind says which engine owns a frame's activation record.
type FrameKind int

const (
	KindInterpreted FrameKind = iota
	KindCompiled
)

// Frame is one activation record. The walker holds a non-owning position
// into a chain of frames; frames stay valid for as long as the owning
// thread's stack is retained and any deferred relocations have been flushed.
type Frame struct {
	method *Method
	bci    int
	kind   FrameKind

	sender *Frame
	cont   *Continuation
	entry  bool

	locals   []Slot
	operands []Slot
	monitors []object.Object
}

// Method returns the frame's method identity, or nil when the activation
// has no resolvable method (a stub or transition record).
func (f *Frame) Method() *Method { return f.method }

func (f *Frame) BCI() int { return f.bci }

func (f *Frame) Kind() FrameKind { return f.kind }

// Sender returns the next-older frame, crossing continuation segment ends
// into the parent segment, or nil at the base of the stack.
func (f *Frame) Sender() *Frame { return f.sender }

// Continuation returns the continuation owning this frame, or nil for a
// frame on the host thread's own stack.
func (f *Frame) Continuation() *Continuation { return f.cont }

// IsEntry reports whether this frame is its continuation's entry boundary:
// the oldest frame of the segment, past which the parent begins.
func (f *Frame) IsEntry() bool { return f.entry }

func (f *Frame) Locals() []Slot { return f.locals }

func (f *Frame) Operands() []Slot { return f.operands }

func (f *Frame) Monitors() []object.Object { return f.monitors }

// Relocate moves the frame's mutable position, standing in for a stack
// relocation performed while the walk was suspended. Queued through
// Thread.DeferRelocation, applied by FlushDeferredProcessing.
func (f *Frame) Relocate(bci int) { f.bci = bci }
