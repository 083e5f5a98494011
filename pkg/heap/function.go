package heap

import "github.com/redchew/aotjs/pkg/value"

// CallContext is what a Function's native body sees: its receiver, its
// actual arguments (already padded to the declared arity by the engine),
// and its captured Cells. Defining this here, instead of importing the
// engine's Frame type, keeps pkg/heap free of any dependency on
// pkg/engine — the engine depends on heap, never the reverse.
type CallContext interface {
	This() value.Value
	Arg(i int) value.Value
	ArgCount() int
	Capture(i int) value.Value
}

// NativeFn is a Function's body.
type NativeFn func(fn *Function, ctx CallContext) value.Value

// Function is a JS-visible callable: name, declared arity, the Cells it
// captured from enclosing scopes, and a native body. It is-a Object (it
// carries its own property map, e.g. for a "length" or "name" property or
// user-attached fields) via its Own *Obj field.
type Function struct {
	base
	Name     string
	Arity    int
	Captures []*Cell
	Body     NativeFn
	Own      *Obj
}

var _ HeapObject = (*Function)(nil)

func NewFunction(name string, arity int, captures []*Cell, body NativeFn) *Function {
	return &Function{
		Name:     name,
		Arity:    arity,
		Captures: captures,
		Body:     body,
		Own:      NewObj(),
	}
}

func (f *Function) Kind() Kind { return KindFunction }

func (f *Function) TraceOutgoing(mv func(value.Value), mo func(HeapObject)) {
	for _, c := range f.Captures {
		mo(c)
	}
	mo(f.Own)
}

func (f *Function) TypeOfTag() string { return "function" }

// Invoke runs the native body against ctx.
func (f *Function) Invoke(ctx CallContext) value.Value {
	return f.Body(f, ctx)
}
