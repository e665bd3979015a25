package config

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Scenario describes a logical call stack, top frame first: continuation
// segments (innermost first) followed by the host thread's own frames.
//
//	name  = "demo"
//	cont  = "reader scope=io"
//	frame = "io.Reader.pull bci=9 local=int:4 local=wide:70000"
//	host  = ""
//	frame = "app.Server.handle bci=17"
type Scenario struct {
	Name    string
	Entries []Entry
}

// Entry is one scenario line: exactly one field is set.
type Entry struct {
	Frame *FrameDecl
	Cont  *ContDecl
	Host  bool
}

type FrameDecl struct {
	TypeName  string
	Method    string
	BCI       int
	Hidden    bool
	Sensitive bool
	Enter     bool
	Compiled  bool
	Locals    []SlotSpec
}

// SlotSpec is one declared local: int:N, wide:N, obj:S, or conflict.
type SlotSpec struct {
	Kind string
	Int  int64
	Str  string
}

type ContDecl struct {
	Name  string
	Scope string
}

func LoadScenario(path string) (*Scenario, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	sc := &Scenario{}
	r := bufio.NewScanner(f)
	lineNo := 0
	for r.Scan() {
		lineNo++
		s := strings.TrimSpace(r.Text())
		if s == "" || strings.HasPrefix(s, "#") {
			continue
		}

		parts := strings.SplitN(s, "=", 2)
		if len(parts) != 2 {
			return nil, fmt.Errorf("%s:%d: invalid line", path, lineNo)
		}
		key := strings.TrimSpace(parts[0])
		val := strings.TrimSpace(parts[1])

		if len(val) < 2 || val[0] != '"' || val[len(val)-1] != '"' {
			return nil, fmt.Errorf("%s:%d: value must be a quoted string", path, lineNo)
		}
		val = val[1 : len(val)-1]

		switch key {
		case "name":
			sc.Name = val
		case "cont":
			cd, err := parseCont(val)
			if err != nil {
				return nil, fmt.Errorf("%s:%d: %v", path, lineNo, err)
			}
			sc.Entries = append(sc.Entries, Entry{Cont: cd})
		case "host":
			sc.Entries = append(sc.Entries, Entry{Host: true})
		case "frame":
			fd, err := parseFrame(val)
			if err != nil {
				return nil, fmt.Errorf("%s:%d: %v", path, lineNo, err)
			}
			sc.Entries = append(sc.Entries, Entry{Frame: fd})
		default:
			return nil, fmt.Errorf("%s:%d: unknown key %q", path, lineNo, key)
		}
	}
	if err := r.Err(); err != nil {
		return nil, err
	}
	return sc, nil
}

func parseCont(val string) (*ContDecl, error) {
	fields := strings.Fields(val)
	if len(fields) == 0 {
		return nil, fmt.Errorf("cont needs a name")
	}
	cd := &ContDecl{Name: fields[0]}
	for _, f := range fields[1:] {
		if rest, ok := strings.CutPrefix(f, "scope="); ok {
			cd.Scope = rest
			continue
		}
		return nil, fmt.Errorf("unknown cont field %q", f)
	}
	return cd, nil
}

func parseFrame(val string) (*FrameDecl, error) {
	fields := strings.Fields(val)
	if len(fields) == 0 {
		return nil, fmt.Errorf("frame needs a qualified method name")
	}
	qn := fields[0]
	dot := strings.LastIndex(qn, ".")
	if dot <= 0 || dot == len(qn)-1 {
		return nil, fmt.Errorf("method %q must be Type.method", qn)
	}
	fd := &FrameDecl{TypeName: qn[:dot], Method: qn[dot+1:]}

	for _, f := range fields[1:] {
		switch {
		case f == "hidden":
			fd.Hidden = true
		case f == "sensitive":
			fd.Sensitive = true
		case f == "enter":
			fd.Enter = true
		case f == "compiled":
			fd.Compiled = true
		case strings.HasPrefix(f, "bci="):
			n, err := strconv.Atoi(f[len("bci="):])
			if err != nil {
				return nil, fmt.Errorf("bad bci in %q", f)
			}
			fd.BCI = n
		case strings.HasPrefix(f, "local="):
			spec, err := parseSlot(f[len("local="):])
			if err != nil {
				return nil, err
			}
			fd.Locals = append(fd.Locals, spec)
		default:
			return nil, fmt.Errorf("unknown frame field %q", f)
		}
	}
	return fd, nil
}

func parseSlot(val string) (SlotSpec, error) {
	if val == "conflict" {
		return SlotSpec{Kind: "conflict"}, nil
	}
	kind, rest, ok := strings.Cut(val, ":")
	if !ok {
		return SlotSpec{}, fmt.Errorf("bad local spec %q", val)
	}
	switch kind {
	case "int", "wide":
		n, err := strconv.ParseInt(rest, 10, 64)
		if err != nil {
			return SlotSpec{}, fmt.Errorf("bad %s value %q", kind, rest)
		}
		return SlotSpec{Kind: kind, Int: n}, nil
	case "obj":
		return SlotSpec{Kind: "obj", Str: rest}, nil
	default:
		return SlotSpec{}, fmt.Errorf("unknown local kind %q", kind)
	}
}
