package gc

import (
	"testing"

	"github.com/redchew/aotjs/pkg/heap"
	"github.com/redchew/aotjs/pkg/value"
	"github.com/stretchr/testify/require"
)

// fakeEngine is a minimal Rootser used to test Collect without pulling in
// pkg/engine, which would create an import cycle (engine already depends
// on gc).
type fakeEngine struct {
	handles map[value.Handle]heap.HeapObject
	next    uint64
	live    map[heap.HeapObject]bool
	roots   []value.Value
}

func newFakeEngine() *fakeEngine {
	return &fakeEngine{
		handles: map[value.Handle]heap.HeapObject{},
		live:    map[heap.HeapObject]bool{},
	}
}

func (f *fakeEngine) alloc(o heap.HeapObject) value.Value {
	f.next++
	h := value.Handle(f.next)
	f.handles[h] = o
	f.live[o] = true
	return value.FromHandle(h)
}

func (f *fakeEngine) Roots(yield func(value.Value)) {
	for _, r := range f.roots {
		yield(r)
	}
}

func (f *fakeEngine) RootObjects(func(heap.HeapObject)) {}

func (f *fakeEngine) Resolve(v value.Value) (heap.HeapObject, bool) {
	o, ok := f.handles[v.Handle()]
	return o, ok
}

func (f *fakeEngine) LiveObjects(yield func(heap.HeapObject)) {
	for o := range f.live {
		yield(o)
	}
}

func (f *fakeEngine) Remove(o heap.HeapObject) {
	delete(f.live, o)
}

func TestCollectSweepsUnreachable(t *testing.T) {
	f := newFakeEngine()
	root := heap.NewObj()
	rootVal := f.alloc(root)
	f.roots = []value.Value{rootVal}

	child := heap.NewObj()
	childVal := f.alloc(child)
	norm := func(value.Value) (bool, bool, string, error) { return true, false, "x", nil }
	require.NoError(t, root.Props.Set(value.Int32(0), childVal, norm))

	orphan := heap.NewObj()
	f.alloc(orphan)

	stats := Collect(f)
	require.Equal(t, 3, stats.Scanned)
	require.Equal(t, 2, stats.Marked)
	require.Equal(t, 1, stats.Swept)

	require.True(t, f.live[root])
	require.True(t, f.live[child])
	require.False(t, f.live[orphan])
}

func TestCollectClearsMarkBitOnSurvivors(t *testing.T) {
	f := newFakeEngine()
	root := heap.NewObj()
	rootVal := f.alloc(root)
	f.roots = []value.Value{rootVal}

	Collect(f)
	require.False(t, root.Marked())
}

func TestCollectIdempotent(t *testing.T) {
	f := newFakeEngine()
	root := heap.NewObj()
	f.roots = []value.Value{f.alloc(root)}

	first := Collect(f)
	second := Collect(f)
	require.Equal(t, first, second)
}

func TestCollectAbortsOnDanglingRoot(t *testing.T) {
	f := newFakeEngine()
	f.roots = []value.Value{value.FromHandle(999)}
	require.Panics(t, func() { Collect(f) })
}
