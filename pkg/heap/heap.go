// Package heap implements the object hierarchy the engine allocates:
// Box, String, Symbol, Cell, Scope, Object, Function, and Frame. Every
// kind carries a GC mark bit and a TraceOutgoing hook; the mark-and-sweep
// collector in pkg/gc never needs to know about a kind's own fields, only
// that it can enumerate the Values and child objects it reaches.
package heap

import "github.com/redchew/aotjs/pkg/value"

// Kind distinguishes the concrete heap object variants. A tagged-kind
// field plus a small interface stands in for the deep GCThing -> JSThing
// -> ... virtual hierarchy of the original engine.
type Kind uint8

const (
	KindBox Kind = iota
	KindString
	KindSymbol
	KindCell
	KindScope
	KindObject
	KindFunction
	KindFrame
)

func (k Kind) String() string {
	switch k {
	case KindBox:
		return "box"
	case KindString:
		return "string"
	case KindSymbol:
		return "symbol"
	case KindCell:
		return "cell"
	case KindScope:
		return "scope"
	case KindObject:
		return "object"
	case KindFunction:
		return "function"
	case KindFrame:
		return "frame"
	default:
		return "unknown"
	}
}

// HeapObject is the common capability every heap-allocated kind has:
// a mark bit the GC can flip, and a hook that feeds every outgoing
// reference to the collector. Outgoing references come in two shapes:
// Value-encoded (a Handle-addressed, possibly-JS-visible reference, fed to
// mv) and direct-object (an internal Go pointer never wrapped in a Value,
// such as a captured Cell, a parent Scope or Frame, a Frame's callee, or a
// Function's own property Obj, fed to mo). The collector drives the recursion itself
// — TraceOutgoing only needs to report its own immediate edges.
// TypeOfTag backs Value.typeof for pointer Values (spec: "for pointers it
// delegates to the object's virtual typeOfTag").
type HeapObject interface {
	Kind() Kind
	Marked() bool
	SetMarked(bool)
	TraceOutgoing(mv func(value.Value), mo func(HeapObject))
	TypeOfTag() string
}

// base is embedded by every concrete kind; it owns the mark bit so none of
// them have to repeat the bookkeeping.
type base struct {
	marked bool
}

func (b *base) Marked() bool     { return b.marked }
func (b *base) SetMarked(m bool) { b.marked = m }
