package walker

import (
	"sync/atomic"

	"github.com/google/uuid"

	"strata/internal/exec"
	"strata/internal/object"
)

var cursorSeq atomic.Int64

// frameCursor positions a traversal over one logical call stack. The two
// variants share the same traversal invariants: a cursor is either exhausted
// or pointing at a real, retained frame, never at one already consumed.
type frameCursor interface {
	atEnd() bool
	method() *exec.Method
	bci() int
	advance()
	fillFrame(index int, frames []object.Object, mode Mode) error
	setContinuation(c *exec.Continuation)
	base() *cursorBase
}

type cursorBase struct {
	thread *exec.Thread
	cont   *exec.Continuation
	scope  *exec.Scope
	cur    *exec.Frame

	id    int64
	nonce uuid.UUID
}

func newCursorBase(th *exec.Thread, target *exec.Continuation, scope *exec.Scope) cursorBase {
	b := cursorBase{
		thread: th,
		scope:  scope,
		id:     cursorSeq.Add(1),
		nonce:  uuid.New(),
	}
	if target != nil {
		b.cont = target
		b.cur = target.TopFrame()
	} else {
		b.cont = th.Mounted()
		b.cur = th.TopFrame()
	}
	return b
}

func (b *cursorBase) atEnd() bool { return b.cur == nil }

func (b *cursorBase) method() *exec.Method { return b.cur.Method() }

func (b *cursorBase) bci() int { return b.cur.BCI() }

func (b *cursorBase) base() *cursorBase { return b }

// stepOnce moves to the sender frame, handling the continuation-entry
// boundary: crossing it re-points the active continuation at the parent,
// and if the boundary belongs to the walk's scope the cursor exhausts
// instead of proceeding.
func (b *cursorBase) stepOnce() {
	if b.cur == nil {
		panic("stack walk: advance past end of stack")
	}
	if b.cont != nil && b.cur.IsEntry() && b.cur.Continuation() == b.cont {
		scope := b.cont.Scope()
		b.cont = b.cont.Parent()
		if b.scope != nil && scope == b.scope {
			b.cur = nil
			return
		}
	}
	next := b.cur.Sender()
	if next != nil && next.Continuation() != b.cont {
		panic("stack walk: advanced past scope bottom")
	}
	b.cur = next
}

// rebind re-derives the current frame from the stored continuation
// reference; ownership of the new reference is established by storing it
// here, never by retaining the caller's argument beyond this call.
func (b *cursorBase) rebind(c *exec.Continuation) {
	b.cont = c
	b.cur = b.cont.TopFrame()
}

// classCursor walks frame identities only. It skips the synthetic
// continuation-enter frames outright, so they never surface even when
// hidden frames are requested.
type classCursor struct {
	cursorBase
}

func newClassCursor(th *exec.Thread, target *exec.Continuation, scope *exec.Scope) *classCursor {
	return &classCursor{cursorBase: newCursorBase(th, target, scope)}
}

func (c *classCursor) advance() {
	c.stepOnce()
	for !c.atEnd() && c.cur.Method() != nil && c.cur.Method().ContinuationEnter {
		c.stepOnce()
	}
}

func (c *classCursor) fillFrame(index int, frames []object.Object, mode Mode) error {
	m := c.method()
	if mode.ClassOnly {
		frames[index] = &object.ClassRef{Name: m.TypeName}
		return nil
	}
	frames[index] = &object.FrameInfo{
		TypeName:     m.TypeName,
		MethodName:   m.Name,
		BCI:          c.bci(),
		Continuation: contRef(c.cont),
	}
	return nil
}

func (c *classCursor) setContinuation(cont *exec.Continuation) {
	c.rebind(cont)
	// the rebound top frame may itself be an enter frame; skip it the same
	// way advance would
	for !c.atEnd() && c.cur.Method() != nil && c.cur.Method().ContinuationEnter {
		c.stepOnce()
	}
}

// liveCursor additionally materializes locals, operand stacks, and monitors,
// and carries the frame decoder context needed to keep reading successive
// frames of the same stack.
type liveCursor struct {
	cursorBase
	dec *exec.FrameDecoder
}

func newLiveCursor(th *exec.Thread, target *exec.Continuation, scope *exec.Scope) *liveCursor {
	c := &liveCursor{cursorBase: newCursorBase(th, target, scope)}
	if target != nil {
		c.dec = exec.NewContinuationDecoder(target)
	} else {
		c.dec = exec.NewThreadDecoder(th)
	}
	c.cur = c.dec.LastFrame()
	return c
}

func (c *liveCursor) advance() {
	if c.scope != nil && c.cont == nil {
		panic("stack walk: scoped walk lost its continuation")
	}
	c.stepOnce()
}

func (c *liveCursor) fillFrame(index int, frames []object.Object, mode Mode) error {
	m := c.method()
	info := object.FrameInfo{
		TypeName:     m.TypeName,
		MethodName:   m.Name,
		BCI:          c.bci(),
		Continuation: contRef(c.cont),
	}
	if mode.ClassOnly {
		frames[index] = &object.ClassRef{Name: m.TypeName}
		return nil
	}
	if !mode.LiveFrames {
		frames[index] = &info
		return nil
	}

	live := &object.LiveFrameInfo{FrameInfo: info}
	switch c.cur.Kind() {
	case exec.KindCompiled:
		live.Mode = object.ModeCompiled
	default:
		live.Mode = object.ModeInterpreted
	}

	var err error
	if locals := c.cur.Locals(); len(locals) > 0 {
		if live.Locals, err = boxSlots(locals); err != nil {
			return err
		}
	}
	if operands := c.cur.Operands(); len(operands) > 0 {
		if live.Operands, err = boxSlots(operands); err != nil {
			return err
		}
	}
	if monitors := c.cur.Monitors(); len(monitors) > 0 {
		live.Monitors = append([]object.Object(nil), monitors...)
	}
	frames[index] = live
	return nil
}

func (c *liveCursor) setContinuation(cont *exec.Continuation) {
	c.rebind(cont)
	// re-seed the decoding context from the stored reference, not the
	// argument
	c.dec.Reseed(c.cont)
	c.cur = c.dec.LastFrame()
}
