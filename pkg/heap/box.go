package heap

import "github.com/redchew/aotjs/pkg/value"

// PrimKind enumerates what a Box wraps. Box exists for exactly two
// reasons: the five sigil singletons (undefined/null/deleted/true/false)
// are boxed so the engine can hand out a stable, GC-rooted Value for each
// one, and an overflow double (one that collides with the tag range after
// NaN-box biasing, see value.NeedsBoxing) needs somewhere on the heap to
// live.
type PrimKind uint8

const (
	PrimUndefined PrimKind = iota
	PrimNull
	PrimDeleted
	PrimBool
	PrimDouble
)

// Box is a heap object wrapping exactly one primitive. It is never
// JS-visible (not addressable by property lookup) but is allocated and
// traced like any other heap object.
type Box struct {
	base
	Prim  PrimKind
	Bool  bool
	Float float64
}

var _ HeapObject = (*Box)(nil)

func NewSigilBox(p PrimKind) *Box { return &Box{Prim: p} }

func NewBoolBox(b bool) *Box { return &Box{Prim: PrimBool, Bool: b} }

func NewDoubleBox(f float64) *Box { return &Box{Prim: PrimDouble, Float: f} }

func (b *Box) Kind() Kind { return KindBox }

func (b *Box) TraceOutgoing(func(value.Value), func(HeapObject)) {}

func (b *Box) TypeOfTag() string {
	switch b.Prim {
	case PrimUndefined:
		return "undefined"
	case PrimNull:
		return "object" // typeof null === "object" in JS
	case PrimDeleted:
		return "undefined" // internal sigil, never observed by user code
	case PrimBool:
		return "boolean"
	case PrimDouble:
		return "number"
	default:
		return "undefined"
	}
}
