// Command aotjsdump drives an engine.Engine from the outside: "dump" runs a
// fixed demonstration script and prints the resulting live set, "repl" opens
// an interactive session for poking at the heap by hand. Neither subcommand
// parses or runs JS source — this binary exercises the runtime core
// directly, the way purple_go's own CLI drove its compiler/eval pipeline
// directly rather than through a separate harness.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/redchew/aotjs/pkg/engine"
	"github.com/redchew/aotjs/pkg/heap"
	"github.com/redchew/aotjs/pkg/value"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var forceGC bool
	var gcThreshold int

	root := &cobra.Command{
		Use:   "aotjsdump",
		Short: "Inspect and drive an aotjs runtime engine from the command line",
	}
	root.PersistentFlags().BoolVar(&forceGC, "force-gc", false, "collect on every allocation")
	root.PersistentFlags().IntVar(&gcThreshold, "gc-threshold", 4096, "allocations between automatic collections")

	newEngine := func() (*engine.Engine, error) {
		cfg := engine.DefaultConfig()
		cfg.ForceGC = forceGC
		cfg.GCThreshold = gcThreshold
		return engine.New(cfg)
	}

	root.AddCommand(newDumpCmd(newEngine))
	root.AddCommand(newReplCmd(newEngine))
	return root
}

// newDumpCmd builds a small object graph (a root property, a reachable
// child, an unreachable sibling, a closure over a shared Cell), runs one GC
// cycle, and prints the engine's Dump — a scripted version of spec.md §8's
// "simple GC" scenario, useful for eyeballing that collection actually
// reclaims what it should.
func newDumpCmd(newEngine func() (*engine.Engine, error)) *cobra.Command {
	return &cobra.Command{
		Use:   "dump",
		Short: "Run a demonstration allocation script and print the live set",
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := newEngine()
			if err != nil {
				return err
			}

			reachable := e.NewObject(false, value.Value{})
			e.PushLocal(reachable) // keep it rooted across the key allocation below
			e.SetProperty(e.Root(), e.NewString("child"), reachable)
			e.NewObject(false, value.Value{}) // orphaned on purpose

			cell := e.NewCell(e.NewString("captured"))
			e.NewFunction("demo", 0, []*heap.Cell{cell}, func(*heap.Function, heap.CallContext) value.Value {
				return e.Undefined()
			})

			stats := e.GC()
			fmt.Printf("gc: scanned=%d marked=%d swept=%d\n\n", stats.Scanned, stats.Marked, stats.Swept)
			fmt.Print(e.Dump())
			return nil
		},
	}
}
