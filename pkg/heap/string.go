package heap

import "github.com/redchew/aotjs/pkg/value"

// Str is an immutable byte sequence. Two distinct Str objects with equal
// content are equal by the engine's equality operator even though they
// are different heap objects with different Handles — string identity
// beyond content is explicitly undefined (spec.md §1 Non-goals).
type Str struct {
	base
	Bytes []byte
}

var _ HeapObject = (*Str)(nil)

func NewStr(s string) *Str { return &Str{Bytes: []byte(s)} }

func (s *Str) Kind() Kind { return KindString }

func (s *Str) TraceOutgoing(func(value.Value), func(HeapObject)) {}

func (s *Str) TypeOfTag() string { return "string" }

// String returns the Go string content.
func (s *Str) String() string { return string(s.Bytes) }

// Equal compares two strings by content.
func (s *Str) Equal(o *Str) bool { return string(s.Bytes) == string(o.Bytes) }
