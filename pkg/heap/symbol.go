package heap

import "github.com/redchew/aotjs/pkg/value"

// Symbol is identified by its own address (its Handle, assigned by the
// engine at allocation) rather than by its description; two Symbols with
// the same description are still distinct.
type Symbol struct {
	base
	Description string
}

var _ HeapObject = (*Symbol)(nil)

func NewSymbol(description string) *Symbol { return &Symbol{Description: description} }

func (s *Symbol) Kind() Kind { return KindSymbol }

func (s *Symbol) TraceOutgoing(func(value.Value), func(HeapObject)) {}

func (s *Symbol) TypeOfTag() string { return "symbol" }
