package heap

import "github.com/redchew/aotjs/pkg/value"

// Cell is the storage for one captured variable: a single mutable Value
// binding, one level of indirection away from the code that declared it.
// It is never JS-visible and is linked only by direct Go pointers from
// Function capture lists, never by a Value. Frames hold no Cell
// references, so a Cell stays alive only while a live Function captures it.
type Cell struct {
	base
	Binding value.Value
}

var _ HeapObject = (*Cell)(nil)

func NewCell(initial value.Value) *Cell { return &Cell{Binding: initial} }

func (c *Cell) Kind() Kind { return KindCell }

// Get reads the current binding. Any intervening GC between writes and
// reads is safe because the slot, not a copy, is what's examined.
func (c *Cell) Get() value.Value { return c.Binding }

// Set mutates the binding. Visible immediately to every other Function
// holding the same Cell.
func (c *Cell) Set(v value.Value) { c.Binding = v }

func (c *Cell) TraceOutgoing(mv func(value.Value), mo func(HeapObject)) { mv(c.Binding) }

func (c *Cell) TypeOfTag() string { return "undefined" } // never observed directly
