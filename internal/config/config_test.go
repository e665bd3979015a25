package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeScenario(t *testing.T, text string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.stack")
	require.NoError(t, os.WriteFile(path, []byte(text), 0o644))
	return path
}

func TestLoadScenario(t *testing.T) {
	path := writeScenario(t, `
# demo stack, top frame first
name  = "demo"
cont  = "reader scope=io"
frame = "io.Reader.pull bci=9 local=int:4 local=wide:70000 local=obj:buf local=conflict"
frame = "io.Reader.fill bci=2 hidden compiled"
host  = ""
frame = "sec.Access.check bci=1 sensitive"
frame = "app.Main.main"
`)

	sc, err := LoadScenario(path)
	require.NoError(t, err)
	require.Equal(t, "demo", sc.Name)
	require.Len(t, sc.Entries, 6)

	cont := sc.Entries[0].Cont
	require.NotNil(t, cont)
	require.Equal(t, "reader", cont.Name)
	require.Equal(t, "io", cont.Scope)

	pull := sc.Entries[1].Frame
	require.NotNil(t, pull)
	require.Equal(t, "io.Reader", pull.TypeName)
	require.Equal(t, "pull", pull.Method)
	require.Equal(t, 9, pull.BCI)
	require.Equal(t, []SlotSpec{
		{Kind: "int", Int: 4},
		{Kind: "wide", Int: 70000},
		{Kind: "obj", Str: "buf"},
		{Kind: "conflict"},
	}, pull.Locals)

	fill := sc.Entries[2].Frame
	require.True(t, fill.Hidden)
	require.True(t, fill.Compiled)

	require.True(t, sc.Entries[3].Host)
	require.True(t, sc.Entries[4].Frame.Sensitive)
	require.Equal(t, "app.Main", sc.Entries[5].Frame.TypeName)
}

func TestLoadScenarioErrors(t *testing.T) {
	cases := []struct {
		name string
		text string
	}{
		{"unquoted value", `name = demo`},
		{"missing equals", `name "demo"`},
		{"unknown key", `stack = "x"`},
		{"bad method name", `frame = "nodot"`},
		{"bad bci", `frame = "a.b bci=x"`},
		{"unknown frame field", `frame = "a.b shiny"`},
		{"bad local kind", `frame = "a.b local=blob:1"`},
		{"bad wide value", `frame = "a.b local=wide:zz"`},
		{"cont without name", `cont = ""`},
		{"unknown cont field", `cont = "reader pinned"`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := LoadScenario(writeScenario(t, tc.text))
			require.Error(t, err)
		})
	}
}

func TestLoadScenarioMissingFile(t *testing.T) {
	_, err := LoadScenario(filepath.Join(t.TempDir(), "absent.stack"))
	require.Error(t, err)
}
