package walker

import (
	"github.com/charmbracelet/log"
	"github.com/pkg/errors"

	"strata/internal/exec"
	"strata/internal/object"
)

// fill decodes frames from the cursor's current position into
// frames[startIndex:], retaining at most maxFrames of them, and returns how
// many it wrote. The cursor is left on the last decoded frame, never past
// it, so a later batch resumes by advancing exactly once.
func fill(cur frameCursor, mode Mode, maxFrames, startIndex int, frames []object.Object) (int, error) {
	if maxFrames <= 0 {
		panic("stack walk: fill with non-positive batch size")
	}
	if startIndex+maxFrames > len(frames) {
		panic("stack walk: frames buffer too small for batch")
	}
	log.Debug("fill frames", "limit", maxFrames, "start", startIndex, "buffer", len(frames))

	decoded := 0
	end := startIndex
	for ; !cur.atEnd(); cur.advance() {
		m := cur.method()
		if m == nil {
			continue
		}
		if mode.suppressHidden() && m.Hidden {
			log.Debug("skip hidden frame", "method", m.QualifiedName())
			continue
		}

		index := end
		end++
		log.Debug("decode frame", "index", index, "method", m.QualifiedName(), "bci", cur.bci())

		if mode.ClassOnly && index == startIndex && m.CallerSensitive {
			return 0, errors.Wrapf(ErrUnsupportedCallerSensitive,
				"declaring type requested for %q", m.QualifiedName())
		}
		if err := cur.fillFrame(index, frames, mode); err != nil {
			return 0, err
		}

		decoded++
		if decoded >= maxFrames {
			break
		}
	}
	log.Debug("fill frames done", "decoded", decoded, "at_end", cur.atEnd())
	return decoded, nil
}

// boxSlots materializes raw slot values as runtime objects. Integer-width
// slots box as integers; the value half of a wide pair boxes as the full
// 64-bit value with the index adjusted back by one so the pair is consumed
// as a unit; references pass through unmodified; dead slots get a non-nil
// zero placeholder. Any other kind is a violated precondition upstream.
func boxSlots(slots []exec.Slot) ([]object.Object, error) {
	out := make([]object.Object, len(slots))
	for i, s := range slots {
		switch s.Kind {
		case exec.SlotObject:
			out[i] = s.Ref
		case exec.SlotInt:
			out[i] = &object.Integer{Value: int64(int32(s.Bits))}
		case exec.SlotWide:
			if i == 0 {
				return nil, errors.Wrap(ErrInternalDecode, "wide value without a leading half-slot")
			}
			out[i] = &object.Long{Value: exec.WideValue(slots, i-1)}
		case exec.SlotConflict:
			out[i] = &object.Long{Value: 0}
		default:
			return nil, errors.Wrapf(ErrInternalDecode, "slot %d has kind %s", i, s.Kind)
		}
	}
	return out, nil
}
