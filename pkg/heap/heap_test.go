package heap

import (
	"testing"

	"github.com/redchew/aotjs/pkg/value"
	"github.com/stretchr/testify/require"
)

func TestStringContentEquality(t *testing.T) {
	a := NewStr("hello")
	b := NewStr("hello")
	require.NotSame(t, a, b)
	require.True(t, a.Equal(b))
}

func TestBoxTypeOfTag(t *testing.T) {
	require.Equal(t, "undefined", NewSigilBox(PrimUndefined).TypeOfTag())
	require.Equal(t, "object", NewSigilBox(PrimNull).TypeOfTag())
	require.Equal(t, "boolean", NewBoolBox(true).TypeOfTag())
	require.Equal(t, "number", NewDoubleBox(3.14).TypeOfTag())
}

func TestCellMutationVisibleThroughGet(t *testing.T) {
	c := NewCell(value.Int32(1))
	require.Equal(t, int32(1), c.Get().Int32Value())
	c.Set(value.Int32(2))
	require.Equal(t, int32(2), c.Get().Int32Value())
}

func TestCellTraceOutgoingMarksBinding(t *testing.T) {
	c := NewCell(value.Int32(7))
	var marked []value.Value
	c.TraceOutgoing(func(v value.Value) { marked = append(marked, v) }, nil)
	require.Len(t, marked, 1)
	require.Equal(t, int32(7), marked[0].Int32Value())
}

// stringOnlyNormalizer treats every key Value as a string with the given
// fixed content, enough to exercise PropMap without a real engine.
func stringOnlyNormalizer(content string) KeyNormalizer {
	return func(value.Value) (bool, bool, string, error) {
		return true, false, content, nil
	}
}

func TestPropMapSetGet(t *testing.T) {
	o := NewObj()
	norm := stringOnlyNormalizer("x")
	key := value.Int32(0) // placeholder Value; normalizer ignores it
	err := o.Props.Set(key, value.Int32(99), norm)
	require.NoError(t, err)

	got, ok, err := o.Props.Get(key, norm)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, int32(99), got.Int32Value())
}

func TestPropMapRejectsBadKey(t *testing.T) {
	o := NewObj()
	badNorm := func(value.Value) (bool, bool, string, error) { return false, false, "", nil }
	err := o.Props.Set(value.Int32(0), value.Int32(1), badNorm)
	require.Error(t, err)
}

func TestScopeSlotWalksParent(t *testing.T) {
	parent := NewScope(nil)
	parent.Slots = []value.Value{value.Int32(10), value.Int32(11)}
	child := NewScope(parent)
	child.Slots = []value.Value{value.Int32(20)}

	require.Equal(t, int32(20), child.Slot(0).Int32Value())
	require.Equal(t, int32(10), child.Slot(1).Int32Value())
	require.Equal(t, int32(11), child.Slot(2).Int32Value())
}

func TestFunctionTraceOutgoingMarksCapturesAndOwn(t *testing.T) {
	c1 := NewCell(value.Int32(1))
	c2 := NewCell(value.Int32(2))
	fn := NewFunction("f", 2, []*Cell{c1, c2}, func(*Function, CallContext) value.Value { return value.Value{} })

	var objs []HeapObject
	fn.TraceOutgoing(nil, func(o HeapObject) { objs = append(objs, o) })
	require.Len(t, objs, 3) // two captures + its own property object
}
