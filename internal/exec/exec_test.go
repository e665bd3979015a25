package exec

import (
	"testing"

	"github.com/stretchr/testify/require"

	"strata/internal/object"
)

func method(typeName, name string) *Method {
	return &Method{TypeName: typeName, Name: name}
}

func TestBuildHostOnlyStack(t *testing.T) {
	th, err := NewStack("main").
		PushFrame(FrameSpec{Method: method("app.Server", "handle"), BCI: 17}).
		PushFrame(FrameSpec{Method: method("app.Main", "main"), BCI: 3}).
		Build()
	require.NoError(t, err)

	require.Nil(t, th.Mounted())
	f := th.TopFrame()
	require.Equal(t, "app.Server.handle", f.Method().QualifiedName())
	require.Nil(t, f.Continuation())

	f = f.Sender()
	require.Equal(t, "app.Main.main", f.Method().QualifiedName())
	require.Nil(t, f.Sender())
}

func TestBuildContinuationChain(t *testing.T) {
	ioScope := NewScope("io")
	th, err := NewStack("worker").
		Continuation("reader", ioScope).
		PushFrame(FrameSpec{Method: method("io.Reader", "pull"), BCI: 9}).
		Host().
		PushFrame(FrameSpec{Method: method("app.Main", "main"), BCI: 3}).
		Build()
	require.NoError(t, err)

	cont := th.Mounted()
	require.NotNil(t, cont)
	require.Equal(t, "reader", cont.Name())
	require.Same(t, ioScope, cont.Scope())
	require.Nil(t, cont.Parent())

	// segment: pull, auto entry frame, then the host frame
	f := th.TopFrame()
	require.Equal(t, "io.Reader.pull", f.Method().QualifiedName())
	require.Same(t, cont, f.Continuation())
	require.False(t, f.IsEntry())

	f = f.Sender()
	require.True(t, f.IsEntry())
	require.True(t, f.Method().ContinuationEnter)
	require.True(t, f.Method().Hidden)
	require.Same(t, cont, f.Continuation())

	f = f.Sender()
	require.Equal(t, "app.Main.main", f.Method().QualifiedName())
	require.Nil(t, f.Continuation())
	require.Nil(t, f.Sender())
}

func TestBuildNestedContinuationsParentLinks(t *testing.T) {
	inner := NewScope("inner")
	outer := NewScope("outer")
	th, err := NewStack("worker").
		Continuation("child", inner).
		PushFrame(FrameSpec{Method: method("gen.Child", "next")}).
		Continuation("parent", outer).
		PushFrame(FrameSpec{Method: method("gen.Parent", "next")}).
		Build()
	require.NoError(t, err)

	child := th.Mounted()
	require.Equal(t, "child", child.Name())
	require.NotNil(t, child.Parent())
	require.Equal(t, "parent", child.Parent().Name())
	require.Nil(t, child.Parent().Parent())

	// entry frame of the child segment crosses into the parent segment
	entry := child.TopFrame().Sender()
	require.True(t, entry.IsEntry())
	require.Same(t, child.Parent(), entry.Sender().Continuation())
}

func TestBuildRejectsHostFramesAboveContinuations(t *testing.T) {
	_, err := NewStack("bad").
		PushFrame(FrameSpec{Method: method("app.Main", "main")}).
		Continuation("late", nil).
		Build()
	require.Error(t, err)
	require.Contains(t, err.Error(), "host frames must come after")
}

func TestDeclaredEnterFrameIsBoundary(t *testing.T) {
	th, err := NewStack("worker").
		Continuation("reader", nil).
		PushFrame(FrameSpec{Method: method("io.Reader", "pull")}).
		PushFrame(FrameSpec{Method: &Method{
			TypeName: "io.Reader", Name: "enter", Hidden: true, ContinuationEnter: true,
		}}).
		Build()
	require.NoError(t, err)

	entry := th.TopFrame().Sender()
	require.Equal(t, "io.Reader.enter", entry.Method().QualifiedName())
	require.True(t, entry.IsEntry())
	// no auto-appended frame after the declared one
	require.Nil(t, entry.Sender())
}

func TestDeferredProcessingFlush(t *testing.T) {
	th, err := NewStack("main").
		PushFrame(FrameSpec{Method: method("app.Server", "handle"), BCI: 17}).
		Build()
	require.NoError(t, err)

	f := th.TopFrame()
	th.DeferRelocation(func() { f.Relocate(42) })
	require.True(t, th.HasDeferred())
	require.Equal(t, 17, f.BCI())

	th.FlushDeferredProcessing()
	require.False(t, th.HasDeferred())
	require.Equal(t, 42, f.BCI())

	// second flush is a no-op
	th.FlushDeferredProcessing()
	require.Equal(t, 42, f.BCI())
}

func TestWideSlotLayout(t *testing.T) {
	slots := WideSlots(1 << 40)
	require.Len(t, slots, 2)
	require.Equal(t, SlotConflict, slots[0].Kind)
	require.Equal(t, SlotWide, slots[1].Kind)
	require.Equal(t, int64(1<<40), WideValue(slots, 0))
}

func TestThreadIDsAreUnique(t *testing.T) {
	a, err := NewStack("a").Build()
	require.NoError(t, err)
	b, err := NewStack("b").Build()
	require.NoError(t, err)
	require.NotEqual(t, a.ID(), b.ID())
}

func TestContinuationIsObjectReference(t *testing.T) {
	th, err := NewStack("w").
		Continuation("reader", nil).
		PushFrame(FrameSpec{Method: method("io.Reader", "pull")}).
		Build()
	require.NoError(t, err)

	var o object.Object = th.Mounted()
	require.Equal(t, object.CONTINUATION_OBJ, o.Type())
	require.Equal(t, "continuation(reader)", o.Inspect())
}
