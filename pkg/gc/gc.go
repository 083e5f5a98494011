// Package gc implements the synchronous, non-moving mark-and-sweep
// collector described in spec.md §4.3. It depends only on pkg/heap and
// pkg/value — never on pkg/engine — so the engine can call into the
// collector without creating an import cycle; the Rootser interface is
// the seam.
package gc

import (
	"fmt"

	"github.com/redchew/aotjs/pkg/heap"
	"github.com/redchew/aotjs/pkg/value"
)

// Rootser is everything the collector needs from whatever owns the heap.
// pkg/engine.Engine implements it.
type Rootser interface {
	// Roots feeds every Value-encoded root (the sigil singletons, the
	// global root object, every shadow-stack slot) to yield.
	Roots(yield func(value.Value))
	// RootObjects feeds every directly-pointer-linked root (today: the
	// current Frame) to yield. The collector traces its parent chain by
	// following TraceOutgoing, not by RootObjects enumerating it.
	RootObjects(yield func(heap.HeapObject))
	// Resolve turns a pointer Value into the object it addresses. ok is
	// false if the Value's handle is not in the handle table, which is a
	// bug in the core (spec.md §4.3 Failure model) and the collector
	// aborts on it.
	Resolve(v value.Value) (heap.HeapObject, bool)
	// LiveObjects visits every object currently in the live set.
	LiveObjects(yield func(heap.HeapObject))
	// Remove drops o from the live set during sweep.
	Remove(o heap.HeapObject)
}

// Stats summarizes one collection cycle, for diagnostics (engine.Dump)
// and tests.
type Stats struct {
	Scanned int // objects in the live set at sweep time
	Marked  int // objects that survived (reachable)
	Swept   int // objects removed
}

// Collect runs one full mark-and-sweep cycle against r and returns a
// summary. After Collect returns, every surviving object's mark bit is
// false (spec.md invariant: "the mark bit is false outside of an
// in-progress GC").
func Collect(r Rootser) Stats {
	var markValue func(value.Value)
	var markObject func(heap.HeapObject)

	markObject = func(o heap.HeapObject) {
		if o.Marked() {
			return
		}
		o.SetMarked(true)
		o.TraceOutgoing(markValue, markObject)
	}

	markValue = func(v value.Value) {
		if !v.IsPointer() {
			return
		}
		obj, ok := r.Resolve(v)
		if !ok {
			panic(fmt.Sprintf("gc: root value handle %d points outside the live set", v.Handle()))
		}
		markObject(obj)
	}

	r.Roots(markValue)
	r.RootObjects(markObject)

	var dead []heap.HeapObject
	stats := Stats{}
	r.LiveObjects(func(o heap.HeapObject) {
		stats.Scanned++
		if o.Marked() {
			stats.Marked++
			o.SetMarked(false)
		} else {
			dead = append(dead, o)
		}
	})

	for _, o := range dead {
		r.Remove(o)
	}
	stats.Swept = len(dead)
	return stats
}
