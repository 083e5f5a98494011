package heap

import "github.com/redchew/aotjs/pkg/value"

// Frame is an activation record for an in-progress call: the caller's
// frame, the Function being invoked, the receiver, and the (arity-padded)
// arguments plus any additional locals the body allocates. Frame is never
// JS-visible — nothing ever wraps one in a Value — but it is still a
// full heap object: it is allocated through the engine, registered in the
// live set, and participates in mark-and-sweep like every other kind, so
// it is reclaimed once neither the engine's current-frame pointer nor a
// child Frame's Parent link reaches it (Cells and Functions hold no Frame
// references).
type Frame struct {
	base
	Parent  *Frame
	Callee  *Function
	ThisVal value.Value
	Args    []value.Value
	ArgN    int // actual argument count passed by the caller, before arity padding
	Locals  []value.Value
}

var _ HeapObject = (*Frame)(nil)
var _ CallContext = (*Frame)(nil)

// NewFrame builds a Frame. args is already padded (or truncated) to the
// callee's declared arity; argN is the number of arguments the caller
// actually passed, which is what ArgCount reports — JS's `arguments.length`
// reflects the call site, not the declared arity.
func NewFrame(parent *Frame, callee *Function, this value.Value, args []value.Value, argN int) *Frame {
	return &Frame{Parent: parent, Callee: callee, ThisVal: this, Args: args, ArgN: argN}
}

func (fr *Frame) Kind() Kind { return KindFrame }

func (fr *Frame) TraceOutgoing(mv func(value.Value), mo func(HeapObject)) {
	if fr.Parent != nil {
		mo(fr.Parent)
	}
	if fr.Callee != nil {
		mo(fr.Callee)
	}
	mv(fr.ThisVal)
	for _, a := range fr.Args {
		mv(a)
	}
	for _, l := range fr.Locals {
		mv(l)
	}
}

func (fr *Frame) TypeOfTag() string { return "undefined" }

// CallContext implementation, so a Function's native body can be handed a
// *Frame directly.

func (fr *Frame) This() value.Value { return fr.ThisVal }
func (fr *Frame) ArgCount() int     { return fr.ArgN }

func (fr *Frame) Arg(i int) value.Value {
	if i < 0 || i >= len(fr.Args) {
		return value.Value{} // zero Value; callers must treat as undefined via the engine sigil, never read raw
	}
	return fr.Args[i]
}

func (fr *Frame) Capture(i int) value.Value {
	if i < 0 || i >= len(fr.Callee.Captures) {
		panic("heap: capture index out of range")
	}
	return fr.Callee.Captures[i].Get()
}
