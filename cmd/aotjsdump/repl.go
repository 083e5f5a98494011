package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/chzyer/readline"
	"github.com/spf13/cobra"

	"github.com/redchew/aotjs/pkg/engine"
	"github.com/redchew/aotjs/pkg/value"
)

// replState holds the named bindings a session builds up, the REPL's
// equivalent of purple_go's runREPL `definitions []string` — except here
// each entry is a live Value in the engine's own root set, not source text
// to be recompiled.
type replState struct {
	e        *engine.Engine
	bindings map[string]value.Value
}

func newReplCmd(newEngine func() (*engine.Engine, error)) *cobra.Command {
	return &cobra.Command{
		Use:   "repl",
		Short: "Open an interactive session against a fresh engine",
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := newEngine()
			if err != nil {
				return err
			}
			return runRepl(e)
		},
	}
}

func runRepl(e *engine.Engine) error {
	rl, err := readline.New("aotjs> ")
	if err != nil {
		return err
	}
	defer rl.Close()

	st := &replState{e: e, bindings: map[string]value.Value{"root": e.Root()}}

	fmt.Println("aotjs runtime core REPL. Type 'help' for commands, 'quit' to exit.")
	for {
		line, err := rl.Readline()
		if err != nil { // io.EOF on Ctrl-D, readline.ErrInterrupt on Ctrl-C
			return nil
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		fields := strings.Fields(line)
		switch fields[0] {
		case "quit", "exit":
			return nil
		case "help":
			printReplHelp()
		case "let":
			st.cmdLet(fields[1:])
		case "set":
			st.cmdSet(fields[1:])
		case "get":
			st.cmdGet(fields[1:])
		case "proto":
			st.cmdProto(fields[1:])
		case "show":
			st.cmdShow(fields[1:])
		case "gc":
			stats := st.e.GC()
			fmt.Printf("scanned=%d marked=%d swept=%d\n", stats.Scanned, stats.Marked, stats.Swept)
		case "dump":
			fmt.Print(st.e.Dump())
		default:
			fmt.Printf("unknown command: %s (try 'help')\n", fields[0])
		}
	}
}

func printReplHelp() {
	fmt.Println("Commands:")
	fmt.Println("  let <name> object [protoName]   - allocate an object, optionally with a prototype")
	fmt.Println("  let <name> string <text...>      - allocate a string")
	fmt.Println("  let <name> symbol [desc...]       - allocate a symbol")
	fmt.Println("  let <name> int <n>                 - an immediate int32")
	fmt.Println("  let <name> double <f>              - an immediate (or boxed) double")
	fmt.Println("  set <objName> <key> <valName>    - assign a property on the receiver only")
	fmt.Println("  get <objName> <key>                - walk the prototype chain and print the result")
	fmt.Println("  proto <objName> <protoName|none> - rewire a prototype link")
	fmt.Println("  show <name>                        - print a binding's value")
	fmt.Println("  gc                                  - force a collection, print its Stats")
	fmt.Println("  dump                                - print the engine's live set")
	fmt.Println("  quit                                - exit")
}

func (st *replState) resolveBinding(name string) (value.Value, bool) {
	v, ok := st.bindings[name]
	return v, ok
}

func (st *replState) requireBinding(name string) (value.Value, bool) {
	v, ok := st.resolveBinding(name)
	if !ok {
		fmt.Printf("no such binding: %s\n", name)
	}
	return v, ok
}

func (st *replState) cmdLet(args []string) {
	if len(args) < 2 {
		fmt.Println("usage: let <name> <object|string|symbol|int|double> [args...]")
		return
	}
	name, kind, rest := args[0], args[1], args[2:]

	var v value.Value
	switch kind {
	case "object":
		if len(rest) == 0 {
			v = st.e.NewObject(false, value.Value{})
			break
		}
		proto, ok := st.requireBinding(rest[0])
		if !ok {
			return
		}
		v = st.e.NewObject(true, proto)
	case "string":
		v = st.e.NewString(strings.Join(rest, " "))
	case "symbol":
		v = st.e.NewSymbol(strings.Join(rest, " "))
	case "int":
		if len(rest) != 1 {
			fmt.Println("usage: let <name> int <n>")
			return
		}
		n, err := strconv.ParseInt(rest[0], 10, 32)
		if err != nil {
			fmt.Printf("bad int32: %v\n", err)
			return
		}
		v = st.e.Int32(int32(n))
	case "double":
		if len(rest) != 1 {
			fmt.Println("usage: let <name> double <f>")
			return
		}
		f, err := strconv.ParseFloat(rest[0], 64)
		if err != nil {
			fmt.Printf("bad double: %v\n", err)
			return
		}
		v = st.e.Double(f)
	default:
		fmt.Printf("unknown let kind: %s\n", kind)
		return
	}
	st.e.PushLocal(v)
	st.bindings[name] = v
}

func (st *replState) cmdSet(args []string) {
	if len(args) != 3 {
		fmt.Println("usage: set <objName> <key> <valName>")
		return
	}
	obj, ok := st.requireBinding(args[0])
	if !ok {
		return
	}
	val, ok := st.requireBinding(args[2])
	if !ok {
		return
	}
	st.e.SetProperty(obj, st.e.NewString(args[1]), val)
}

func (st *replState) cmdGet(args []string) {
	if len(args) != 2 {
		fmt.Println("usage: get <objName> <key>")
		return
	}
	obj, ok := st.requireBinding(args[0])
	if !ok {
		return
	}
	got := st.e.GetProperty(obj, st.e.NewString(args[1]))
	fmt.Println(st.e.DumpValue(got))
}

func (st *replState) cmdProto(args []string) {
	if len(args) != 2 {
		fmt.Println("usage: proto <objName> <protoName|none>")
		return
	}
	obj, ok := st.requireBinding(args[0])
	if !ok {
		return
	}
	if args[1] == "none" {
		st.e.SetPrototype(obj, false, value.Value{})
		return
	}
	proto, ok := st.requireBinding(args[1])
	if !ok {
		return
	}
	st.e.SetPrototype(obj, true, proto)
}

func (st *replState) cmdShow(args []string) {
	if len(args) != 1 {
		fmt.Println("usage: show <name>")
		return
	}
	v, ok := st.requireBinding(args[0])
	if !ok {
		return
	}
	fmt.Println(st.e.DumpValue(v))
}
