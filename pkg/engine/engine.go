// Package engine is the process-wide container an embedder drives: it owns
// the heap's handle table and live-object set, the shadow stack of roots,
// the current-frame pointer, and the five sigil singletons, and exposes
// allocation, property access, invocation, garbage collection, and a
// diagnostic dump. All operations run to completion on the caller. New does
// not limit how many Engines exist; each one owns an independent heap.
package engine

import (
	"fmt"
	"strings"

	"github.com/dolthub/swiss"
	"github.com/redchew/aotjs/pkg/gc"
	"github.com/redchew/aotjs/pkg/heap"
	"github.com/redchew/aotjs/pkg/value"
)

const wordSize = 8

// Config controls an Engine's construction. The zero Config is not valid;
// use DefaultConfig and override fields as needed, mirroring purple_go's
// RuntimeConfig pattern of a single struct of booleans/sizes decided once
// up front.
type Config struct {
	// ShadowStackSlots bounds how many Value slots pushLocal can ever
	// hold live at once. Default: 256 KiB worth of word-sized slots
	// (spec.md §6).
	ShadowStackSlots int
	// ForceGC, when true, runs a full collection on every single
	// allocation (spec.md §4.2's "force GC" build flag) — useful for
	// shaking out missing roots in tests.
	ForceGC bool
	// GCThreshold is the number of allocations between automatic
	// collections when ForceGC is false (spec.md's "simple
	// counter-triggered policy").
	GCThreshold int
}

// DefaultConfig returns the engine's default construction parameters.
func DefaultConfig() Config {
	return Config{
		ShadowStackSlots: (256 * 1024) / wordSize,
		ForceGC:          false,
		GCThreshold:      4096,
	}
}

func (c Config) validate() error {
	if c.ShadowStackSlots <= 0 {
		return fmt.Errorf("engine: ShadowStackSlots must be positive, got %d", c.ShadowStackSlots)
	}
	if c.GCThreshold <= 0 {
		return fmt.Errorf("engine: GCThreshold must be positive, got %d", c.GCThreshold)
	}
	return nil
}

// Singletons are the five pre-allocated sigils every Value root set
// includes (spec.md §4.3 root #1).
type Singletons struct {
	Undefined value.Value
	Null      value.Value
	Deleted   value.Value
	True      value.Value
	False     value.Value
}

// Engine is the embedding API's process-wide handle.
type Engine struct {
	cfg Config

	handles    *swiss.Map[value.Handle, heap.HeapObject]
	reverse    map[heap.HeapObject]value.Handle
	nextHandle uint64

	live *swiss.Map[heap.HeapObject, struct{}]

	shadowStack []value.Value

	currentFrame *heap.Frame

	singletons Singletons
	root       *heap.Obj
	rootVal    value.Value

	// ready gates GC: "GC is never performed before the sigil
	// singletons have been created" (spec.md §4.2).
	ready        bool
	allocSinceGC int

	gcCycles int
}

// New constructs an Engine, allocates its sigil singletons and global
// root object, and returns an error only if cfg itself is invalid —
// spec.md §7 reserves panics for misuse by already-running generated
// code, not for construction-time configuration mistakes.
func New(cfg Config) (*Engine, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	e := &Engine{
		cfg:         cfg,
		handles:     swiss.NewMap[value.Handle, heap.HeapObject](64),
		reverse:     make(map[heap.HeapObject]value.Handle),
		live:        swiss.NewMap[heap.HeapObject, struct{}](64),
		shadowStack: make([]value.Value, 0, cfg.ShadowStackSlots),
	}

	e.singletons = Singletons{
		Undefined: e.allocHandle(heap.NewSigilBox(heap.PrimUndefined)),
		Null:      e.allocHandle(heap.NewSigilBox(heap.PrimNull)),
		Deleted:   e.allocHandle(heap.NewSigilBox(heap.PrimDeleted)),
		True:      e.allocHandle(heap.NewBoolBox(true)),
		False:     e.allocHandle(heap.NewBoolBox(false)),
	}

	e.root = heap.NewObj()
	e.rootVal = e.allocHandle(e.root)
	e.ready = true

	return e, nil
}

// allocHandle registers o in the live set and assigns it a Handle, for
// the kinds a Value can address (Box, String, Symbol, Object, Function).
func (e *Engine) allocHandle(o heap.HeapObject) value.Value {
	e.beforeAllocate()
	e.nextHandle++
	h := value.Handle(e.nextHandle)
	e.handles.Put(h, o)
	e.reverse[o] = h
	e.live.Put(o, struct{}{})
	return value.FromHandle(h)
}

// allocInternal registers o in the live set without a Handle, for the
// kinds only ever reached by direct Go pointer (Cell, Scope, Frame).
func (e *Engine) allocInternal(o heap.HeapObject) {
	e.beforeAllocate()
	e.live.Put(o, struct{}{})
}

// beforeAllocate runs the GC policy check. It runs before the new object
// is registered, never after: a just-allocated object is not yet rooted,
// so collecting right after creating it would immediately reclaim it
// (spec.md §5: "any function that allocates must first root everything
// live in the shadow stack" — between allocations, not mid-allocation).
func (e *Engine) beforeAllocate() {
	if !e.ready {
		return
	}
	e.allocSinceGC++
	if e.cfg.ForceGC || e.allocSinceGC >= e.cfg.GCThreshold {
		e.collect()
	}
}

// GC forces a full mark-and-sweep cycle unconditionally.
func (e *Engine) GC() gc.Stats {
	return e.collect()
}

// MaybeGC runs a cycle only if the configured policy says to.
func (e *Engine) MaybeGC() gc.Stats {
	if e.cfg.ForceGC || e.allocSinceGC >= e.cfg.GCThreshold {
		return e.collect()
	}
	return gc.Stats{}
}

func (e *Engine) collect() gc.Stats {
	stats := gc.Collect(e)
	e.allocSinceGC = 0
	e.gcCycles++
	return stats
}

// Root returns the global root object's Value, reachable from every GC
// cycle (spec.md §4.3 root #2).
func (e *Engine) Root() value.Value { return e.rootVal }

// Singletons exposes the five sigils.
func (e *Engine) Singletons() Singletons { return e.singletons }

// --- gc.Rootser ---

func (e *Engine) Roots(yield func(value.Value)) {
	yield(e.singletons.Undefined)
	yield(e.singletons.Null)
	yield(e.singletons.Deleted)
	yield(e.singletons.True)
	yield(e.singletons.False)
	yield(e.rootVal)
	for _, v := range e.shadowStack {
		yield(v)
	}
}

func (e *Engine) RootObjects(yield func(heap.HeapObject)) {
	if e.currentFrame != nil {
		yield(e.currentFrame)
	}
}

func (e *Engine) Resolve(v value.Value) (heap.HeapObject, bool) {
	return e.handles.Get(v.Handle())
}

func (e *Engine) LiveObjects(yield func(heap.HeapObject)) {
	e.live.Iter(func(o heap.HeapObject, _ struct{}) bool {
		yield(o)
		return false
	})
}

func (e *Engine) Remove(o heap.HeapObject) {
	e.live.Delete(o)
	if h, ok := e.reverse[o]; ok {
		e.handles.Delete(h)
		delete(e.reverse, o)
	}
}

// Dump returns a human-readable description of the engine's live set —
// the embedding API's only diagnostic surface (spec.md §6).
func (e *Engine) Dump() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "engine: %d live objects, %d handles, shadow-stack top=%d, gc cycles=%d\n",
		e.live.Count(), e.handles.Count(), len(e.shadowStack), e.gcCycles)
	e.live.Iter(func(o heap.HeapObject, _ struct{}) bool {
		fmt.Fprintf(&sb, "  %-8s marked=%v\n", o.Kind(), o.Marked())
		return false
	})
	return sb.String()
}

// DumpValue renders a single Value for diagnostics.
func (e *Engine) DumpValue(v value.Value) string {
	switch {
	case v.IsInt32():
		return fmt.Sprintf("int32(%d)", v.Int32Value())
	case v.IsDouble():
		return fmt.Sprintf("double(%v)", v.Float64Value())
	default:
		return fmt.Sprintf("<%s %s>", e.TypeOf(v), e.ToStringValue(v))
	}
}
