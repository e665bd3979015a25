package walker

import (
	"testing"

	"github.com/stretchr/testify/require"

	"strata/internal/exec"
	"strata/internal/object"
)

func method(typeName, name string) *exec.Method {
	return &exec.Method{TypeName: typeName, Name: name}
}

func hiddenMethod(typeName, name string) *exec.Method {
	return &exec.Method{TypeName: typeName, Name: name, Hidden: true}
}

func sensitiveMethod(typeName, name string) *exec.Method {
	return &exec.Method{TypeName: typeName, Name: name, CallerSensitive: true}
}

// hostThread builds a plain stack, youngest first, with bci = frame index.
func hostThread(t *testing.T, methods ...*exec.Method) *exec.Thread {
	t.Helper()
	b := exec.NewStack("test")
	for i, m := range methods {
		b.PushFrame(exec.FrameSpec{Method: m, BCI: i})
	}
	th, err := b.Build()
	require.NoError(t, err)
	return th
}

func recordName(o object.Object) string {
	switch r := o.(type) {
	case *object.ClassRef:
		return r.Name
	case *object.FrameInfo:
		return r.TypeName + "." + r.MethodName
	case *object.LiveFrameInfo:
		return r.TypeName + "." + r.MethodName
	default:
		return "<" + string(o.Type()) + ">"
	}
}

func recordNames(frames []object.Object, start, end int) []string {
	names := make([]string, 0, end-start)
	for i := start; i < end; i++ {
		names = append(names, recordName(frames[i]))
	}
	return names
}

func newBuffer(batch int) []object.Object {
	return make([]object.Object, 1+batch)
}
