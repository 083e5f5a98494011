package engine

import (
	"fmt"
	"math"
	"strconv"

	"github.com/redchew/aotjs/pkg/heap"
	"github.com/redchew/aotjs/pkg/value"
)

// Undefined, Null and Deleted return the engine's sigil singletons (Bool
// returns the True/False ones). Deleted is an internal tombstone marker (spec.md §3) and is
// not meant to ever reach user-visible code paths.
func (e *Engine) Undefined() value.Value { return e.singletons.Undefined }
func (e *Engine) Null() value.Value      { return e.singletons.Null }
func (e *Engine) Deleted() value.Value   { return e.singletons.Deleted }

// Bool returns the shared True or False singleton.
func (e *Engine) Bool(b bool) value.Value {
	if b {
		return e.singletons.True
	}
	return e.singletons.False
}

// Int32 builds an immediate integer Value. Never needs heap allocation.
func (e *Engine) Int32(i int32) value.Value { return value.Int32(i) }

// Double builds a Value for f, boxing it on the heap if the bit pattern
// would otherwise collide with the reserved tag range after biasing
// (value.NeedsBoxing — the negative-Infinity/NaN family).
func (e *Engine) Double(f float64) value.Value {
	if value.NeedsBoxing(f) {
		return e.allocHandle(heap.NewDoubleBox(f))
	}
	return value.Double(f)
}

// NewString allocates a String heap object from the given content.
func (e *Engine) NewString(s string) value.Value {
	return e.allocHandle(heap.NewStr(s))
}

// NewSymbol allocates a Symbol; identity is the Symbol's own Handle, not
// its description.
func (e *Engine) NewSymbol(description string) value.Value {
	return e.allocHandle(heap.NewSymbol(description))
}

// NewCell allocates a Cell initialized to v. Cells are never JS-visible,
// so this returns the Go pointer, not a Value — captured by reference
// from Function.Captures, never from user code. Frames hold no Cell
// references.
func (e *Engine) NewCell(v value.Value) *heap.Cell {
	c := heap.NewCell(v)
	e.allocInternal(c)
	return c
}

// NewLegacyScope allocates a Scope heap object chained to parent. See
// heap.Scope's doc comment: this is spec.md's older local-variable design,
// kept as a fully GC-traced, independently usable heap kind, but not part
// of the Function/Frame closure-invocation path.
func (e *Engine) NewLegacyScope(parent *heap.Scope) *heap.Scope {
	s := heap.NewScope(parent)
	e.allocInternal(s)
	return s
}

// TypeOf implements spec.md §4.1's typeof(v): tag-derived for non-pointer
// Values, delegated to the object's TypeOfTag for pointers.
func (e *Engine) TypeOf(v value.Value) string {
	if v.IsInt32() || v.IsDouble() {
		return "number"
	}
	obj, ok := e.Resolve(v)
	if !ok {
		fault("TypeOf", "dangling pointer value (handle %d)", v.Handle())
	}
	return obj.TypeOfTag()
}

// numericValue extracts a float64 from v if v is a number by any
// representation (immediate double, immediate int32, or a boxed
// overflow double), and reports whether it was numeric at all.
func (e *Engine) numericValue(v value.Value) (float64, bool) {
	switch {
	case v.IsInt32():
		return float64(v.Int32Value()), true
	case v.IsDouble():
		return v.Float64Value(), true
	case v.IsPointer():
		if obj, ok := e.Resolve(v); ok {
			if b, ok := obj.(*heap.Box); ok && b.Prim == heap.PrimDouble {
				return b.Float, true
			}
		}
	}
	return 0, false
}

// Equal implements spec.md §4.1's equality: two numbers (immediate int32,
// immediate double or boxed double, in any mix) compare by numeric value,
// so NaN is never equal to anything, including a bit-identical copy of
// itself; everything else is raw-bit equality with a string-content
// fallback.
func (e *Engine) Equal(a, b value.Value) bool {
	af, aIsNum := e.numericValue(a)
	bf, bIsNum := e.numericValue(b)
	if aIsNum && bIsNum {
		if math.IsNaN(af) || math.IsNaN(bf) {
			return false
		}
		return af == bf
	}
	if value.RawEqual(a, b) {
		return true
	}
	if a.IsPointer() && b.IsPointer() {
		oa, aok := e.Resolve(a)
		ob, bok := e.Resolve(b)
		if aok && bok {
			sa, saok := oa.(*heap.Str)
			sb, sbok := ob.(*heap.Str)
			if saok && sbok {
				return sa.Equal(sb)
			}
		}
	}
	return false
}

// ToNumber follows JS coercion for the subset this core covers.
func (e *Engine) ToNumber(v value.Value) float64 {
	if f, ok := e.numericValue(v); ok {
		return f
	}
	obj, ok := e.Resolve(v)
	if !ok {
		fault("ToNumber", "dangling pointer value (handle %d)", v.Handle())
	}
	if b, ok := obj.(*heap.Box); ok {
		switch b.Prim {
		case heap.PrimBool:
			if b.Bool {
				return 1
			}
			return 0
		case heap.PrimNull:
			return 0
		}
	}
	return math.NaN()
}

// ToInt32 truncates ToNumber the way JS's ToInt32 abstract operation does
// for values already in float64 range.
func (e *Engine) ToInt32(v value.Value) int32 {
	f := e.ToNumber(v)
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return int32(f)
}

// ToStringValue follows JS coercion for the subset this core covers:
// boxed primitives return their payload's string form, strings return
// themselves, objects return the fixed "[object Object]", functions
// return "[Function: <name>]".
func (e *Engine) ToStringValue(v value.Value) string {
	switch {
	case v.IsInt32():
		return strconv.FormatInt(int64(v.Int32Value()), 10)
	case v.IsDouble():
		return formatNumber(v.Float64Value())
	}
	obj, ok := e.Resolve(v)
	if !ok {
		fault("ToStringValue", "dangling pointer value (handle %d)", v.Handle())
	}
	switch o := obj.(type) {
	case *heap.Str:
		return o.String()
	case *heap.Symbol:
		return o.Description
	case *heap.Function:
		return fmt.Sprintf("[Function: %s]", o.Name)
	case *heap.Box:
		switch o.Prim {
		case heap.PrimUndefined:
			return "undefined"
		case heap.PrimNull:
			return "null"
		case heap.PrimDeleted:
			return "deleted"
		case heap.PrimBool:
			if o.Bool {
				return "true"
			}
			return "false"
		case heap.PrimDouble:
			return formatNumber(o.Float)
		}
	case *heap.Obj:
		return "[object Object]"
	}
	return "[object Object]"
}

func formatNumber(f float64) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	default:
		return strconv.FormatFloat(f, 'g', -1, 64)
	}
}
