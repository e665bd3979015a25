package object

import (
	"fmt"
	"strconv"

	"github.com/google/uuid"
)

type Type string

const (
	INTEGER_OBJ         Type = "INTEGER"
	LONG_OBJ            Type = "LONG"
	STRING_OBJ          Type = "STRING"
	NIL_OBJ             Type = "NIL"
	CLASS_REF_OBJ       Type = "CLASS_REF"
	FRAME_INFO_OBJ      Type = "FRAME_INFO"
	LIVE_FRAME_INFO_OBJ Type = "LIVE_FRAME_INFO"
	CONTINUATION_OBJ    Type = "CONTINUATION"
	WALK_TOKEN_OBJ      Type = "WALK_TOKEN"
)

// Object is the boxed-value contract shared by everything a stack walk can
// hand to orchestration code: primitive slot values, decoded frame records,
// continuation references, and the guard token in the reserved buffer slot.
type Object interface {
	Type() Type
	Inspect() string
}

// Integer boxes a single-word integer slot.
type Integer struct{ Value int64 }

func (*Integer) Type() Type        { return INTEGER_OBJ }
func (i *Integer) Inspect() string { return strconv.FormatInt(i.Value, 10) }

// Long boxes a two-word integer slot, and doubles as the non-nil placeholder
// written for dead slots so output sequences never contain holes.
type Long struct{ Value int64 }

func (*Long) Type() Type        { return LONG_OBJ }
func (l *Long) Inspect() string { return strconv.FormatInt(l.Value, 10) }

type String struct{ Value string }

func (*String) Type() Type        { return STRING_OBJ }
func (s *String) Inspect() string { return s.Value }

type Nil struct{}

func (*Nil) Type() Type      { return NIL_OBJ }
func (*Nil) Inspect() string { return "nil" }

// WalkToken is the handshake stored in the reserved slot of a walk buffer.
// It proves that a resumed walk presents the same cursor, owned by the same
// thread, against an uncorrupted buffer. CursorID is process-unique and is
// resolved through the walker's registry; Nonce defeats replay of a stale
// token whose cursor id happens to collide with a later walk.
type WalkToken struct {
	ThreadID int64
	CursorID int64
	Nonce    uuid.UUID
}

func (*WalkToken) Type() Type { return WALK_TOKEN_OBJ }
func (t *WalkToken) Inspect() string {
	return fmt.Sprintf("token(thread=%d cursor=%d)", t.ThreadID, t.CursorID)
}
