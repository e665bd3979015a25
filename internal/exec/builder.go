package exec

import (
	"strata/internal/object"

	"github.com/pkg/errors"
)

// FrameSpec declares one frame for StackBuilder, youngest first.
type FrameSpec struct {
	Method   *Method
	BCI      int
	Compiled bool
	Locals   []Slot
	Operands []Slot
	Monitors []object.Object
}

type segment struct {
	cont   *Continuation
	frames []*Frame
}

// StackBuilder assembles a thread's logical stack from the top down:
// continuation segments first (innermost first), host frames last. Each
// continuation segment is closed with an entry boundary frame, appended
// automatically unless the caller declared one.
type StackBuilder struct {
	threadName string
	segs       []*segment
	err        error
}

func NewStack(threadName string) *StackBuilder {
	return &StackBuilder{threadName: threadName}
}

// Continuation opens a new segment for the frames that follow. Segments are
// declared innermost first; the previous segment becomes this one's child.
func (b *StackBuilder) Continuation(name string, scope *Scope) *StackBuilder {
	if b.err != nil {
		return b
	}
	if n := len(b.segs); n > 0 && b.segs[n-1].cont == nil {
		b.err = errors.Errorf("stack %q: host frames must come after all continuation segments", b.threadName)
		return b
	}
	b.segs = append(b.segs, &segment{cont: &Continuation{name: name, scope: scope}})
	return b
}

// Host switches subsequent frames to the thread's own stack, below every
// continuation segment.
func (b *StackBuilder) Host() *StackBuilder {
	if b.err != nil {
		return b
	}
	b.segs = append(b.segs, &segment{})
	return b
}

// PushFrame appends a frame to the current segment. Before any Continuation
// call the current segment is the host thread's own stack.
func (b *StackBuilder) PushFrame(fs FrameSpec) *StackBuilder {
	if b.err != nil {
		return b
	}
	if len(b.segs) == 0 {
		b.segs = append(b.segs, &segment{})
	}
	seg := b.segs[len(b.segs)-1]
	kind := KindInterpreted
	if fs.Compiled {
		kind = KindCompiled
	}
	seg.frames = append(seg.frames, &Frame{
		method:   fs.Method,
		bci:      fs.BCI,
		kind:     kind,
		locals:   fs.Locals,
		operands: fs.Operands,
		monitors: fs.Monitors,
	})
	return b
}

// Build links segments into one frame chain and returns the owning thread.
func (b *StackBuilder) Build() (*Thread, error) {
	if b.err != nil {
		return nil, b.err
	}

	var all []*Frame
	for i, seg := range b.segs {
		if seg.cont != nil {
			closeSegment(seg)
			seg.cont.top = seg.frames[0]
			// parent is the next declared continuation, if any
			if i+1 < len(b.segs) && b.segs[i+1].cont != nil {
				seg.cont.parent = b.segs[i+1].cont
			}
			for _, f := range seg.frames {
				f.cont = seg.cont
			}
		}
		all = append(all, seg.frames...)
	}
	for i := 0; i+1 < len(all); i++ {
		all[i].sender = all[i+1]
	}

	t := &Thread{id: threadSeq.Add(1), name: b.threadName}
	if len(all) > 0 {
		t.top = all[0]
	}
	if len(b.segs) > 0 && b.segs[0].cont != nil {
		t.mounted = b.segs[0].cont
	}
	return t, nil
}

// closeSegment guarantees that the oldest frame of a continuation segment is
// its entry boundary.
func closeSegment(seg *segment) {
	if n := len(seg.frames); n > 0 {
		last := seg.frames[n-1]
		if last.method != nil && last.method.ContinuationEnter {
			last.entry = true
			return
		}
	}
	seg.frames = append(seg.frames, &Frame{method: EnterMethod(), entry: true})
}
