package exec

import "strata/internal/object"

// Scope is the identity a bounded walk stops at. Scopes compare by pointer;
// two continuations entered under the same Scope share it.
type Scope struct{ Name string }

func NewScope(name string) *Scope { return &Scope{Name: name} }

// Continuation is one resumable segment of call frames, chained to the
// parent it will return into. Parents outlive every cursor walking them, so
// the chain is traversed by reference only and never owned.
type Continuation struct {
	name   string
	scope  *Scope
	parent *Continuation
	top    *Frame
}

func (c *Continuation) Name() string { return c.name }

func (c *Continuation) Scope() *Scope { return c.scope }

func (c *Continuation) Parent() *Continuation { return c.parent }

// TopFrame returns the youngest frame of this continuation's segment, or
// nil if the continuation has no frames captured.
func (c *Continuation) TopFrame() *Frame { return c.top }

// Continuations surface as plain references inside decoded frame records.
func (*Continuation) Type() object.Type { return object.CONTINUATION_OBJ }

func (c *Continuation) Inspect() string { return "continuation(" + c.name + ")" }
