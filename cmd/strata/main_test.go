package main

import (
	"testing"

	"github.com/stretchr/testify/require"

	"strata/internal/config"
	"strata/internal/exec"
	"strata/internal/object"
	"strata/internal/walker"
)

func TestBuildStackFromScenario(t *testing.T) {
	sc := &config.Scenario{
		Name: "demo",
		Entries: []config.Entry{
			{Cont: &config.ContDecl{Name: "reader", Scope: "io"}},
			{Frame: &config.FrameDecl{TypeName: "io.Reader", Method: "pull", BCI: 9}},
			{Host: true},
			{Frame: &config.FrameDecl{TypeName: "app.Main", Method: "main", BCI: 3}},
		},
	}

	th, scopes, err := buildStack(sc)
	require.NoError(t, err)
	require.Equal(t, "demo", th.Name())
	require.NotNil(t, scopes["io"])
	require.Equal(t, "reader", th.Mounted().Name())
	require.Same(t, scopes["io"], th.Mounted().Scope())
	require.Equal(t, "io.Reader.pull", th.TopFrame().Method().QualifiedName())
}

func TestFrameSpecConversion(t *testing.T) {
	fs := frameSpec(&config.FrameDecl{
		TypeName:  "io.Reader",
		Method:    "pull",
		BCI:       9,
		Hidden:    true,
		Sensitive: true,
		Compiled:  true,
		Locals: []config.SlotSpec{
			{Kind: "int", Int: 4},
			{Kind: "wide", Int: 1 << 40},
			{Kind: "obj", Str: "buf"},
			{Kind: "conflict"},
		},
	})

	require.Equal(t, "io.Reader.pull", fs.Method.QualifiedName())
	require.True(t, fs.Method.Hidden)
	require.True(t, fs.Method.CallerSensitive)
	require.True(t, fs.Compiled)
	// wide locals expand to their two physical slots
	require.Len(t, fs.Locals, 5)
	require.Equal(t, exec.SlotInt, fs.Locals[0].Kind)
	require.Equal(t, exec.SlotConflict, fs.Locals[1].Kind)
	require.Equal(t, exec.SlotWide, fs.Locals[2].Kind)
	require.Equal(t, exec.SlotObject, fs.Locals[3].Kind)
	require.Equal(t, exec.SlotConflict, fs.Locals[4].Kind)
}

func TestPrintBatchesDrainsWholeWalk(t *testing.T) {
	b := exec.NewStack("deep")
	for i := 0; i < 7; i++ {
		b.PushFrame(exec.FrameSpec{Method: &exec.Method{TypeName: "app.F", Name: "f"}, BCI: i})
	}
	th, err := b.Build()
	require.NoError(t, err)

	res, err := walker.Walk(walker.WalkRequest{
		Thread:     th,
		BatchSize:  3,
		StartIndex: 1,
		Frames:     make([]object.Object, 4),
		Consume:    printBatches(th, 3),
	})
	require.NoError(t, err)
	require.Equal(t, &object.Integer{Value: 7}, res)
}
