package object

import (
	"fmt"
	"strings"
)

// FrameMode says which engine owned a live frame when it was captured.
type FrameMode int

const (
	ModeNone FrameMode = iota
	ModeInterpreted
	ModeCompiled
)

func (m FrameMode) String() string {
	switch m {
	case ModeInterpreted:
		return "interpreted"
	case ModeCompiled:
		return "compiled"
	default:
		return "none"
	}
}

// ClassRef is the fast-path frame record: just the declaring type of the
// frame's method, with no method identity attached.
type ClassRef struct{ Name string }

func (*ClassRef) Type() Type        { return CLASS_REF_OBJ }
func (c *ClassRef) Inspect() string { return c.Name }

// FrameInfo is the full frame record: method identity, bytecode offset, and
// the continuation the frame belonged to at decode time. Records are
// immutable once written into the output buffer.
type FrameInfo struct {
	TypeName     string
	MethodName   string
	BCI          int
	Continuation Object
}

func (*FrameInfo) Type() Type { return FRAME_INFO_OBJ }
func (f *FrameInfo) Inspect() string {
	return fmt.Sprintf("%s.%s@%d", f.TypeName, f.MethodName, f.BCI)
}

// LiveFrameInfo extends FrameInfo with materialized locals, operand-stack
// values, and held monitors. Slices are nil when the frame had none.
type LiveFrameInfo struct {
	FrameInfo
	Mode     FrameMode
	Locals   []Object
	Operands []Object
	Monitors []Object
}

func (*LiveFrameInfo) Type() Type { return LIVE_FRAME_INFO_OBJ }
func (f *LiveFrameInfo) Inspect() string {
	var out strings.Builder
	out.WriteString(f.FrameInfo.Inspect())
	fmt.Fprintf(&out, " [%s", f.Mode)
	if len(f.Locals) > 0 {
		fmt.Fprintf(&out, " locals=%d", len(f.Locals))
	}
	if len(f.Operands) > 0 {
		fmt.Fprintf(&out, " operands=%d", len(f.Operands))
	}
	if len(f.Monitors) > 0 {
		fmt.Fprintf(&out, " monitors=%d", len(f.Monitors))
	}
	out.WriteString("]")
	return out.String()
}
