package value

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestInt32RoundTrip(t *testing.T) {
	for _, i := range []int32{0, 1, -1, math.MinInt32, math.MaxInt32, 42} {
		v := Int32(i)
		require.True(t, v.IsInt32())
		require.False(t, v.IsDouble())
		require.False(t, v.IsPointer())
		require.Equal(t, i, v.Int32Value())
	}
}

func TestDoubleRoundTrip(t *testing.T) {
	for _, f := range []float64{0, 1, -1, 3.14, math.Inf(1), math.NaN()} {
		require.False(t, NeedsBoxing(f), "%v should not need boxing", f)
		v := Double(f)
		require.True(t, v.IsDouble())
		got := v.Float64Value()
		if math.IsNaN(f) {
			require.True(t, math.IsNaN(got))
		} else {
			require.Equal(t, f, got)
		}
	}
}

func TestNegativeInfinityNeedsBoxing(t *testing.T) {
	require.True(t, NeedsBoxing(math.Inf(-1)))
	require.True(t, NeedsBoxing(math.Copysign(math.NaN(), -1)))
}

func TestHandleRoundTrip(t *testing.T) {
	v := FromHandle(Handle(12345))
	require.True(t, v.IsPointer())
	require.False(t, v.IsInt32())
	require.False(t, v.IsDouble())
	require.Equal(t, Handle(12345), v.Handle())
}

func TestExactlyOnePredicateTrue(t *testing.T) {
	vals := []Value{Int32(7), Double(2.5), FromHandle(Handle(3))}
	for _, v := range vals {
		count := 0
		if v.IsInt32() {
			count++
		}
		if v.IsDouble() {
			count++
		}
		if v.IsPointer() {
			count++
		}
		require.Equal(t, 1, count, "value %#v must satisfy exactly one predicate", v)
	}
}

func TestRawEqualAndHash(t *testing.T) {
	a := Int32(42)
	b := Int32(42)
	require.True(t, RawEqual(a, b))
	require.Equal(t, Hash(a), Hash(b))

	c := Int32(43)
	require.False(t, RawEqual(a, c))
}

func TestNaNRawEqualToItself(t *testing.T) {
	// NaN != NaN is a value-level (JS) semantic enforced by the engine's
	// equality operator, not by raw-bit comparison: two NaN Values are
	// RawEqual (same bit pattern) even though JS equality must say false.
	n := Double(math.NaN())
	require.True(t, RawEqual(n, n))
}
