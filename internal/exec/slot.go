package exec

import "strata/internal/object"

// SlotKind tags the raw value held in one local-variable or operand-stack
// slot as the frame decoder reports it.
type SlotKind int

const (
	// SlotInt holds a single-word integer value.
	SlotInt SlotKind = iota
	// SlotWide holds the value half of a two-word integer. The preceding
	// slot is its half-slot marker and carries no value of its own.
	SlotWide
	// SlotObject holds a reference.
	SlotObject
	// SlotConflict is a dead or unknown slot: either the half-slot marker in
	// front of a wide value or a genuinely dead local.
	SlotConflict
	// SlotFloat and the kinds after it never reach the walker: local
	// decoding is defined to canonicalize them away before handing slots
	// over. Seeing one is an internal error, not a coercion opportunity.
	SlotFloat
	SlotDouble
	SlotSubWord
)

func (k SlotKind) String() string {
	switch k {
	case SlotInt:
		return "int"
	case SlotWide:
		return "wide"
	case SlotObject:
		return "object"
	case SlotConflict:
		return "conflict"
	case SlotFloat:
		return "float"
	case SlotDouble:
		return "double"
	case SlotSubWord:
		return "subword"
	default:
		return "unknown"
	}
}

// Slot is one raw local or operand value.
type Slot struct {
	Kind SlotKind
	Bits int64
	Ref  object.Object
}

func IntSlot(v int32) Slot { return Slot{Kind: SlotInt, Bits: int64(v)} }

func ObjectSlot(o object.Object) Slot { return Slot{Kind: SlotObject, Ref: o} }

func ConflictSlot() Slot { return Slot{Kind: SlotConflict} }

// WideSlots lays out a two-word integer the way the frame decoder reports
// it: a conflict half-slot marker followed by the slot carrying the value.
func WideSlots(v int64) []Slot {
	return []Slot{{Kind: SlotConflict}, {Kind: SlotWide, Bits: v}}
}

// WideValue reads the two-word integer whose pair starts at index i. The
// value bits live in the second half-slot; callers that land on the value
// half directly adjust the index back by one so the pair is consumed as a
// unit.
func WideValue(slots []Slot, i int) int64 {
	return slots[i+1].Bits
}
