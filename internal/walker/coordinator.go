package walker

import (
	"github.com/charmbracelet/log"
	"github.com/pkg/errors"

	"strata/internal/exec"
	"strata/internal/object"
)

// Walk runs a full walk: builds the cursor, skips driver and requested
// frames, fills the first batch, installs the guard token, and calls the
// consumer. The consumer may pull further batches through ContinueBatch
// before returning; whatever it returns is handed back unchanged.
//
// Whether or not the consumer succeeds, the guard is cleared on the way out
// so the buffer never retains a token that still looks valid.
func Walk(req WalkRequest) (object.Object, error) {
	if req.Frames == nil {
		return nil, ErrNullBuffer
	}
	log.Debug("start walking",
		"thread", req.Thread.Name(), "live", req.Mode.LiveFrames,
		"skip", req.SkipFrames, "batch", req.BatchSize)

	var cur frameCursor
	if req.Mode.LiveFrames {
		cur = newLiveCursor(req.Thread, req.Continuation, req.Scope)
	} else {
		cur = newClassCursor(req.Thread, req.Continuation, req.Scope)
	}

	// driver frames belong to the walking machinery itself and are skipped
	// before any requested skipping starts
	if req.IsDriver != nil {
		for !cur.atEnd() {
			m := cur.method()
			if m == nil || !req.IsDriver(m) {
				break
			}
			log.Debug("skip driver frame", "method", m.QualifiedName())
			cur.advance()
		}
	}
	for n := 0; n < req.SkipFrames && !cur.atEnd(); n++ {
		cur.advance()
	}

	endIndex := req.StartIndex
	if !cur.atEnd() {
		decoded, err := fill(cur, req.Mode, req.BatchSize, req.StartIndex, req.Frames)
		if err != nil {
			return nil, err
		}
		if decoded < 1 {
			return nil, errors.Wrap(ErrDecodeFailure, "no frames in first batch")
		}
		endIndex = req.StartIndex + decoded
	}

	s := newSession(cur, req.Mode)
	tok := s.guard.install(s, req.Frames)

	res, cbErr := req.Consume(Batch{
		Frames:     req.Frames,
		Token:      tok,
		SkipFrames: req.SkipFrames,
		BatchSize:  req.BatchSize,
		StartIndex: req.StartIndex,
		EndIndex:   endIndex,
	})

	// disable any lingering token before looking at the callback's outcome
	ok := s.guard.clear(req.Thread, req.Frames)
	if cbErr != nil {
		return nil, cbErr
	}
	if !ok {
		return nil, errors.Wrap(ErrCorruptedBuffer, "buffers corrupted during callback")
	}
	return res, nil
}

// ContinueBatch refills the buffer with the next batch of the walk
// identified by token. An exhausted cursor yields an empty batch rather
// than an error. Because raw frame references from earlier batches may have
// been relocated while the walk was suspended, the thread's deferred stack
// processing is flushed before the cursor moves again.
func ContinueBatch(th *exec.Thread, tok *object.WalkToken, batchSize, startIndex int, frames []object.Object) (int, State, error) {
	if frames == nil {
		return 0, StateTerminated, ErrNullBuffer
	}
	s, ok := resolve(th, tok, frames)
	if !ok {
		return 0, StateTerminated, errors.Wrap(ErrCorruptedBuffer, "cannot resume walk")
	}
	log.Debug("fetch next batch", "cursor", s.guard.cursorID, "batch", batchSize, "start", startIndex)

	endIndex := startIndex
	if batchSize <= 0 {
		return endIndex, stateOf(s.cursor), nil
	}

	if !s.cursor.atEnd() {
		// reconcile deferred relocation bookkeeping before dereferencing
		// frame state captured in an earlier batch; correctness, not a
		// performance nicety
		th.FlushDeferredProcessing()

		// advance past the last frame decoded in the previous batch so no
		// frame is ever decoded twice
		s.cursor.advance()
		if !s.cursor.atEnd() {
			n, err := fill(s.cursor, s.mode, batchSize, startIndex, frames)
			if err != nil {
				return startIndex, StateTerminated, err
			}
			if n < 1 {
				return startIndex, StateTerminated, errors.Wrap(ErrDecodeFailure, "no frames in later batch")
			}
			endIndex = startIndex + n
		}
	}
	return endIndex, stateOf(s.cursor), nil
}

// RebindContinuation tells a suspended walk which continuation backs it,
// once that handle exists; the cursor re-derives its position from it.
func RebindContinuation(th *exec.Thread, tok *object.WalkToken, frames []object.Object, cont *exec.Continuation) error {
	if frames == nil {
		return ErrNullBuffer
	}
	s, ok := resolve(th, tok, frames)
	if !ok {
		return errors.Wrap(ErrCorruptedBuffer, "cannot rebind walk")
	}
	log.Debug("rebind continuation", "cursor", s.guard.cursorID, "continuation", cont.Inspect())
	s.cursor.setContinuation(cont)
	return nil
}

func stateOf(cur frameCursor) State {
	if cur.atEnd() {
		return StateTerminated
	}
	return StateResumable
}
