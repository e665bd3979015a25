package main

import (
	"flag"
	"fmt"
	"os"

	"strata/internal/config"
	"strata/internal/exec"
	"strata/internal/logger"
	"strata/internal/object"
	"strata/internal/walker"
)

func main() {
	liveMode := flag.Bool("live", false, "materialize locals, operands, and monitors")
	classOnly := flag.Bool("class-only", false, "decode declaring types only (fast path)")
	showHidden := flag.Bool("show-hidden", false, "include compiler-generated frames")
	skip := flag.Int("skip", 0, "frames to skip before the first batch")
	batch := flag.Int("batch", 8, "frames per batch")
	scopeName := flag.String("scope", "", "stop at this continuation scope")
	debugMode := flag.Bool("debug", false, "log walk internals")
	noColor := flag.Bool("no-color", false, "disable colored log output")
	flag.Parse()

	logger.Init(*debugMode, *noColor)

	args := flag.Args()
	if len(args) == 2 && args[0] == "walk" {
		args = args[1:]
	}
	if len(args) != 1 {
		fmt.Fprintln(os.Stderr, "usage: strata [flags] walk <file.stack>")
		os.Exit(2)
	}

	sc, err := config.LoadScenario(args[0])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	th, scopes, err := buildStack(sc)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	var scope *exec.Scope
	if *scopeName != "" {
		scope = scopes[*scopeName]
		if scope == nil {
			fmt.Fprintf(os.Stderr, "scenario declares no scope %q\n", *scopeName)
			os.Exit(1)
		}
	}

	mode := walker.Mode{
		LiveFrames: *liveMode,
		ClassOnly:  *classOnly,
		ShowHidden: *showHidden,
	}
	if *batch < 1 {
		fmt.Fprintln(os.Stderr, "batch size must be at least 1")
		os.Exit(2)
	}
	frames := make([]object.Object, 1+*batch)

	res, err := walker.Walk(walker.WalkRequest{
		Thread:     th,
		Scope:      scope,
		Mode:       mode,
		SkipFrames: *skip,
		BatchSize:  *batch,
		StartIndex: 1,
		Frames:     frames,
		Consume:    printBatches(th, *batch),
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if n, ok := res.(*object.Integer); ok {
		fmt.Printf("%d frames\n", n.Value)
	}
}

// printBatches consumes the first batch and pulls the rest of the walk one
// batch at a time, printing every record. Returns the total frame count.
func printBatches(th *exec.Thread, batchSize int) walker.Consumer {
	return func(b walker.Batch) (object.Object, error) {
		total := 0
		start, end := b.StartIndex, b.EndIndex
		for {
			for i := start; i < end; i++ {
				fmt.Printf("%4d  %s\n", total+i-start, b.Frames[i].Inspect())
			}
			total += end - start

			next, _, err := walker.ContinueBatch(th, b.Token, batchSize, b.StartIndex, b.Frames)
			if err != nil {
				return nil, err
			}
			if next == b.StartIndex {
				break
			}
			start, end = b.StartIndex, next
		}
		return &object.Integer{Value: int64(total)}, nil
	}
}

// buildStack turns a scenario into a thread, collecting declared scopes by
// name along the way.
func buildStack(sc *config.Scenario) (*exec.Thread, map[string]*exec.Scope, error) {
	name := sc.Name
	if name == "" {
		name = "main"
	}
	b := exec.NewStack(name)
	scopes := map[string]*exec.Scope{}

	for _, e := range sc.Entries {
		switch {
		case e.Cont != nil:
			var scope *exec.Scope
			if e.Cont.Scope != "" {
				scope = scopes[e.Cont.Scope]
				if scope == nil {
					scope = exec.NewScope(e.Cont.Scope)
					scopes[e.Cont.Scope] = scope
				}
			}
			b.Continuation(e.Cont.Name, scope)
		case e.Host:
			b.Host()
		case e.Frame != nil:
			b.PushFrame(frameSpec(e.Frame))
		}
	}

	th, err := b.Build()
	if err != nil {
		return nil, nil, err
	}
	return th, scopes, nil
}

func frameSpec(fd *config.FrameDecl) exec.FrameSpec {
	fs := exec.FrameSpec{
		Method: &exec.Method{
			TypeName:          fd.TypeName,
			Name:              fd.Method,
			Hidden:            fd.Hidden,
			CallerSensitive:   fd.Sensitive,
			ContinuationEnter: fd.Enter,
		},
		BCI:      fd.BCI,
		Compiled: fd.Compiled,
	}
	for _, l := range fd.Locals {
		switch l.Kind {
		case "int":
			fs.Locals = append(fs.Locals, exec.IntSlot(int32(l.Int)))
		case "wide":
			fs.Locals = append(fs.Locals, exec.WideSlots(l.Int)...)
		case "obj":
			fs.Locals = append(fs.Locals, exec.ObjectSlot(&object.String{Value: l.Str}))
		case "conflict":
			fs.Locals = append(fs.Locals, exec.ConflictSlot())
		}
	}
	return fs
}
