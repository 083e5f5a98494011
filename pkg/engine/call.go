package engine

import (
	"github.com/redchew/aotjs/pkg/heap"
	"github.com/redchew/aotjs/pkg/value"
)

// NewFunction allocates a Function closing over captures, with body as its
// native implementation. Captures are shared Cells, not copies — mutating
// one through any closure that captured it is visible to all of them
// (spec.md §4.5). The Function's own property Obj joins the live set too,
// so the collector clears its mark bit like any other survivor.
func (e *Engine) NewFunction(name string, arity int, captures []*heap.Cell, body heap.NativeFn) value.Value {
	f := heap.NewFunction(name, arity, captures, body)
	v := e.allocHandle(f)
	e.live.Put(f.Own, struct{}{})
	return v
}

// Call invokes fn with the given this-value and arguments. A Frame is
// built with args padded (or truncated) to fn's declared arity —
// spec.md §4.5: "calling with fewer arguments than arity pads the rest
// with undefined; calling with more ignores the extras." The new Frame
// becomes e.currentFrame for the duration of the call and the previous
// one is restored on return, including on panic, so a misuse Fault
// unwinding through nested calls leaves currentFrame consistent for
// whatever recovers it.
func (e *Engine) Call(fn value.Value, this value.Value, args []value.Value) value.Value {
	obj, ok := e.Resolve(fn)
	if !ok {
		fault("Call", "dangling pointer value (handle %d)", fn.Handle())
	}
	f, ok := obj.(*heap.Function)
	if !ok {
		fault("Call", "expected a function, got %s", obj.TypeOfTag())
	}

	padded := make([]value.Value, f.Arity)
	for i := range padded {
		if i < len(args) {
			padded[i] = args[i]
		} else {
			padded[i] = e.Undefined()
		}
	}

	frame := heap.NewFrame(e.currentFrame, f, this, padded, len(args))
	e.allocInternal(frame)

	parent := e.currentFrame
	e.currentFrame = frame
	defer func() { e.currentFrame = parent }()

	return f.Invoke(frame)
}
