package engine

import (
	"math"
	"testing"

	"github.com/redchew/aotjs/pkg/heap"
	"github.com/redchew/aotjs/pkg/value"
	"github.com/stretchr/testify/require"
)

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	e, err := New(DefaultConfig())
	require.NoError(t, err)
	return e
}

func TestRoundTripPredicates(t *testing.T) {
	e := newTestEngine(t)

	i := e.Int32(42)
	d := e.Double(3.14)
	b := e.Bool(true)
	u := e.Undefined()

	require.True(t, i.IsInt32())
	require.False(t, i.IsDouble())
	require.False(t, i.IsPointer())

	require.True(t, d.IsDouble())
	require.False(t, d.IsInt32())

	require.True(t, b.IsPointer())
	require.True(t, u.IsPointer())

	require.Equal(t, int32(42), i.Int32Value())
	require.Equal(t, 3.14, d.Float64Value())
}

func TestSimpleGCReachableVsUnreachable(t *testing.T) {
	e := newTestEngine(t)

	a := e.NewObject(false, value.Value{})
	e.SetProperty(e.Root(), e.NewString("x"), a)

	b := e.NewObject(false, value.Value{}) // unreachable

	aObj, ok := e.Resolve(a)
	require.True(t, ok)

	e.GC()

	_, stillLive := e.Resolve(a)
	require.True(t, stillLive)
	require.False(t, aObj.Marked())

	_, bLive := e.Resolve(b)
	require.False(t, bLive)

	got := e.GetProperty(e.Root(), e.NewString("x"))
	require.True(t, value.RawEqual(a, got))
}

func TestClosureMutationSharedCell(t *testing.T) {
	e := newTestEngine(t)

	cell := e.NewCell(e.NewString("b"))

	inner := e.NewFunction("inner", 0, []*heap.Cell{cell}, func(fn *heap.Function, ctx heap.CallContext) value.Value {
		cell.Set(e.NewString("b plus one"))
		return e.Undefined()
	})

	require.Equal(t, "b", e.ToStringValue(cell.Get()))
	e.Call(inner, e.Undefined(), nil)
	require.Equal(t, "b plus one", e.ToStringValue(cell.Get()))
}

func TestReturnAcrossScope(t *testing.T) {
	e := newTestEngine(t)

	makeString := func(s string) value.Value {
		rs := e.OpenReturnScope()
		defer rs.Close()
		v := rs.PushLocal(e.NewString(s)).Get()
		return rs.Escape(v).Get()
	}

	scope := e.OpenScope()
	defer scope.Close()

	work := scope.PushLocal(makeString("work"))
	play := scope.PushLocal(makeString("play"))

	combined := e.ToStringValue(work.Get()) + e.ToStringValue(play.Get())
	require.Equal(t, "workplay", combined)

	e.GC()

	require.Equal(t, "work", e.ToStringValue(work.Get()))
	require.Equal(t, "play", e.ToStringValue(play.Get()))
}

func TestDeepPrototypeChain(t *testing.T) {
	e := newTestEngine(t)

	a := e.NewObject(true, e.Root())
	b := e.NewObject(true, a)
	c := e.NewObject(true, b)

	e.SetProperty(a, e.NewString("k"), e.Int32(7))

	got := e.GetProperty(c, e.NewString("k"))
	require.True(t, got.IsInt32())
	require.Equal(t, int32(7), got.Int32Value())

	e.SetPrototype(b, true, e.Root()) // drop a from the chain: c -> b -> root

	got2 := e.GetProperty(c, e.NewString("k"))
	require.True(t, value.RawEqual(e.Undefined(), got2))
}

func TestArgumentPadding(t *testing.T) {
	e := newTestEngine(t)

	var seen0, seen1, seen2 value.Value
	var count int

	fn := e.NewFunction("f", 3, nil, func(fn *heap.Function, ctx heap.CallContext) value.Value {
		seen0 = ctx.Arg(0)
		seen1 = ctx.Arg(1)
		seen2 = ctx.Arg(2)
		count = ctx.ArgCount()
		return e.Undefined()
	})

	a0 := e.NewString("zero")
	a1 := e.NewString("one")
	e.Call(fn, e.Undefined(), []value.Value{a0, a1})

	require.True(t, value.RawEqual(a0, seen0))
	require.True(t, value.RawEqual(a1, seen1))
	require.True(t, value.RawEqual(e.Undefined(), seen2))
	require.Equal(t, 2, count)
}

func TestScopeTopRestoredOnClose(t *testing.T) {
	e := newTestEngine(t)
	entry := e.Top()

	scope := e.OpenScope()
	scope.PushLocal(e.Int32(1))
	scope.PushLocal(e.Int32(2))
	scope.Close()

	require.Equal(t, entry, e.Top())
}

func TestReturnScopeParentTopIsEntryPlusOne(t *testing.T) {
	e := newTestEngine(t)
	entry := e.Top()

	rs := e.OpenReturnScope()
	rs.PushLocal(e.Int32(1))
	rs.Escape(e.Int32(9))
	rs.Close()

	require.Equal(t, entry+1, e.Top())
}

func TestArgListIndexesAndPops(t *testing.T) {
	e := newTestEngine(t)
	entry := e.Top()

	args := e.PushArgs([]value.Value{e.Int32(1), e.Int32(2)})
	require.Equal(t, 2, args.Len())
	require.Equal(t, int32(1), args.Arg(0).Int32Value())
	args.Close()

	require.Equal(t, entry, e.Top())
}

func TestNaNNeverEqualIncludingItself(t *testing.T) {
	e := newTestEngine(t)
	nan := e.Double(math.NaN())
	require.False(t, e.Equal(nan, nan))
}

func TestUndefinedAndNullEquality(t *testing.T) {
	e := newTestEngine(t)
	require.True(t, e.Equal(e.Undefined(), e.Undefined()))
	require.True(t, e.Equal(e.Null(), e.Null()))
}
