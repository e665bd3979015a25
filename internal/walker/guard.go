package walker

import (
	"sync"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"strata/internal/exec"
	"strata/internal/object"
)

// identityGuard embeds the handshake that proves a resumed cursor is the one
// previously suspended, for the same owning thread, against an output buffer
// nobody has tampered with. Every re-entry re-validates; every failure
// closes the walk.
type identityGuard struct {
	threadID int64
	cursorID int64
	nonce    uuid.UUID
}

// install writes the token into the buffer's reserved slot and registers the
// session so the token can be resolved later.
func (g *identityGuard) install(s *session, frames []object.Object) *object.WalkToken {
	tok := &object.WalkToken{
		ThreadID: g.threadID,
		CursorID: g.cursorID,
		Nonce:    g.nonce,
	}
	frames[TokenSlot] = tok
	sessions.put(g.cursorID, s)
	log.Debug("guard installed", "thread", g.threadID, "cursor", g.cursorID)
	return tok
}

// validate fails closed: a mutated reserved slot, a different owning thread,
// or a token minted for another cursor all invalidate the walk.
func (g *identityGuard) validate(th *exec.Thread, tok *object.WalkToken, frames []object.Object) bool {
	if tok == nil || th == nil {
		return false
	}
	if th.ID() != g.threadID {
		return false
	}
	if tok.ThreadID != g.threadID || tok.CursorID != g.cursorID || tok.Nonce != g.nonce {
		return false
	}
	slot, ok := frames[TokenSlot].(*object.WalkToken)
	if !ok {
		return false
	}
	return slot.ThreadID == g.threadID && slot.CursorID == g.cursorID && slot.Nonce == g.nonce
}

// clear always wipes the reserved slot and unregisters the session, so a
// stale token can never be replayed; it reports whether the guard still held
// at the moment of clearing.
func (g *identityGuard) clear(th *exec.Thread, frames []object.Object) bool {
	tok, _ := frames[TokenSlot].(*object.WalkToken)
	ok := g.validate(th, tok, frames)
	frames[TokenSlot] = nil
	sessions.drop(g.cursorID)
	log.Debug("guard cleared", "cursor", g.cursorID, "intact", ok)
	return ok
}

// session is one suspended walk: its cursor, guard, and the mode the walk
// was started with. Continuations of the walk reuse the recorded mode rather
// than trusting a mode replayed by the caller.
type session struct {
	cursor frameCursor
	guard  identityGuard
	mode   Mode
}

func newSession(cur frameCursor, mode Mode) *session {
	b := cur.base()
	return &session{
		cursor: cur,
		mode:   mode,
		guard: identityGuard{
			threadID: b.thread.ID(),
			cursorID: b.id,
			nonce:    b.nonce,
		},
	}
}

// resolve looks the session up by token and re-validates the guard. A miss
// and a validation failure are indistinguishable to the caller: both mean
// the buffers are corrupted.
func resolve(th *exec.Thread, tok *object.WalkToken, frames []object.Object) (*session, bool) {
	if tok == nil {
		return nil, false
	}
	s := sessions.get(tok.CursorID)
	if s == nil {
		return nil, false
	}
	if !s.guard.validate(th, tok, frames) {
		return nil, false
	}
	return s, true
}

// sessionTable maps cursor ids to suspended walks. The table itself is the
// only shared state in the package; each session stays single-thread affine.
type sessionTable struct {
	mu sync.Mutex
	m  map[int64]*session
}

var sessions = sessionTable{m: map[int64]*session{}}

func (t *sessionTable) put(id int64, s *session) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.m[id] = s
}

func (t *sessionTable) get(id int64) *session {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.m[id]
}

func (t *sessionTable) drop(id int64) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.m, id)
}
