package exec

import (
	"sync/atomic"

	"github.com/charmbracelet/log"
)

var threadSeq atomic.Int64

// Thread owns one logical call stack, possibly spliced from mounted
// continuation segments on top of host frames. A thread is single-owner
// state: only the owning goroutine of a walk mutates it.
type Thread struct {
	id   int64
	name string

	top     *Frame
	mounted *Continuation

	deferred []func()
}

func (t *Thread) ID() int64 { return t.id }

func (t *Thread) Name() string { return t.name }

// TopFrame returns the youngest frame of the whole logical stack.
func (t *Thread) TopFrame() *Frame { return t.top }

// Mounted returns the innermost mounted continuation, or nil when the
// thread is running on its own stack only.
func (t *Thread) Mounted() *Continuation { return t.mounted }

// DeferRelocation queues stack bookkeeping to be reconciled before any raw
// frame reference taken earlier is dereferenced again. This stands in for
// the collector's deferred processing of a walked stack.
func (t *Thread) DeferRelocation(fn func()) {
	t.deferred = append(t.deferred, fn)
}

// HasDeferred reports whether unflushed bookkeeping is pending.
func (t *Thread) HasDeferred() bool { return len(t.deferred) > 0 }

// FlushDeferredProcessing applies all pending relocations. A resumed walk
// must call this before advancing its cursor; skipping it leaves the cursor
// pointing at stale frame state.
func (t *Thread) FlushDeferredProcessing() {
	if len(t.deferred) == 0 {
		return
	}
	log.Debug("flush deferred stack processing", "thread", t.name, "pending", len(t.deferred))
	for _, fn := range t.deferred {
		fn()
	}
	t.deferred = nil
}
