package exec

// FrameDecoder carries the per-walk context a live cursor needs to keep
// decoding successive frames: which stack it reads and where that stack's
// youngest decodable frame currently is. It is the stand-in for the
// register/stack-map state a real frame reader would thread through a walk.
type FrameDecoder struct {
	thread *Thread
	cont   *Continuation
}

func NewThreadDecoder(t *Thread) *FrameDecoder {
	return &FrameDecoder{thread: t}
}

func NewContinuationDecoder(c *Continuation) *FrameDecoder {
	return &FrameDecoder{cont: c}
}

// LastFrame returns the youngest frame of the decoded stack, or nil when
// there is nothing to decode.
func (d *FrameDecoder) LastFrame() *Frame {
	if d.cont != nil {
		return d.cont.TopFrame()
	}
	if d.thread != nil {
		return d.thread.TopFrame()
	}
	return nil
}

// Reseed points the decoder at a different continuation. Used when a walk
// that started before its target continuation was fully established is told
// which continuation backs it.
func (d *FrameDecoder) Reseed(c *Continuation) {
	d.cont = c
	d.thread = nil
}
