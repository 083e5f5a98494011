package heap

import "github.com/redchew/aotjs/pkg/value"

// Scope is the older, pre-Cell local-variable design described in
// spec.md's design notes: a parent pointer plus an ordered array of local
// Value slots. It is a fully GC-traced heap kind, exercised by its own
// tests, but is not used by the Function/Frame closure-invocation path —
// Cells are the sole capture mechanism for real closures (see
// SPEC_FULL.md Open Question (b)). Scope exists so the data model in
// spec.md §3 is complete and so callers that want an old-style flat local
// block independent of any particular Frame still have one available.
type Scope struct {
	base
	Parent *Scope
	Slots  []value.Value
}

var _ HeapObject = (*Scope)(nil)

func NewScope(parent *Scope) *Scope { return &Scope{Parent: parent} }

func (s *Scope) Kind() Kind { return KindScope }

// Slot returns the value at local index i, walking to the parent Scope if
// i is out of range for this Scope's own Slots — Scopes nest the way
// lexical blocks do.
func (s *Scope) Slot(i int) value.Value {
	if i < len(s.Slots) {
		return s.Slots[i]
	}
	if s.Parent != nil {
		return s.Parent.Slot(i - len(s.Slots))
	}
	panic("heap: Scope slot index out of range")
}

func (s *Scope) SetSlot(i int, v value.Value) {
	if i < len(s.Slots) {
		s.Slots[i] = v
		return
	}
	if s.Parent != nil {
		s.Parent.SetSlot(i-len(s.Slots), v)
		return
	}
	panic("heap: Scope slot index out of range")
}

func (s *Scope) TraceOutgoing(mv func(value.Value), mo func(HeapObject)) {
	for _, v := range s.Slots {
		mv(v)
	}
	if s.Parent != nil {
		mo(s.Parent)
	}
}

func (s *Scope) TypeOfTag() string { return "undefined" }
