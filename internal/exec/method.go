package exec

// Method is the immutable identity of a callable: its declaring type, name,
// and the attributes the walker's filtering policy keys on.
type Method struct {
	TypeName string
	Name     string

	// Hidden marks compiler-generated methods suppressed from default walks.
	Hidden bool

	// CallerSensitive marks methods whose access-control behavior depends on
	// their true caller. Fast-path decoding must refuse to report one as the
	// first frame of a batch.
	CallerSensitive bool

	// ContinuationEnter marks the synthetic entry point pushed when a
	// continuation is mounted; its frame is the boundary between a
	// continuation's segment and its parent.
	ContinuationEnter bool
}

func (m *Method) QualifiedName() string {
	return m.TypeName + "." + m.Name
}

// EnterMethod returns the synthetic method backing a continuation's entry
// boundary frame. It is hidden so default walks never report it.
func EnterMethod() *Method {
	return &Method{
		TypeName:          "runtime.Continuation",
		Name:              "enter",
		Hidden:            true,
		ContinuationEnter: true,
	}
}
