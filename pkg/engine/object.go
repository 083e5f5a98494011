package engine

import (
	"fmt"

	"github.com/redchew/aotjs/pkg/heap"
	"github.com/redchew/aotjs/pkg/value"
)

// NewObject allocates an object. If hasProto, proto becomes its
// prototype; pass hasProto=false to build an object with no prototype
// (the end of every chain).
func (e *Engine) NewObject(hasProto bool, proto value.Value) value.Value {
	if hasProto {
		return e.allocHandle(heap.NewObjWithProto(proto))
	}
	return e.allocHandle(heap.NewObj())
}

// normalizeKey is the heap.KeyNormalizer this engine feeds to every
// PropMap operation: it dereferences key and reports whether it is a
// String (by content) or a Symbol (by identity). Anything else is a
// misuse fault — spec.md §9 Open Question (a): no silent coercion.
func (e *Engine) normalizeKey(key value.Value) (isString, isSymbol bool, content string, err error) {
	if !key.IsPointer() {
		return false, false, "", fmt.Errorf("property key must be a string or symbol, got a non-pointer value")
	}
	obj, ok := e.Resolve(key)
	if !ok {
		fault("normalizeKey", "dangling pointer value (handle %d)", key.Handle())
	}
	switch o := obj.(type) {
	case *heap.Str:
		return true, false, o.String(), nil
	case *heap.Symbol:
		return false, true, "", nil
	default:
		return false, false, "", fmt.Errorf("property key must be a string or symbol, got %s", obj.TypeOfTag())
	}
}

// asObject resolves v to its *heap.Obj, or the embedded *heap.Obj of a
// Function, since Function is-a Object for property purposes. Faults if
// v is not an object-shaped heap reference.
func (e *Engine) asObject(op string, v value.Value) *heap.Obj {
	obj, ok := e.Resolve(v)
	if !ok {
		fault(op, "dangling pointer value (handle %d)", v.Handle())
	}
	switch o := obj.(type) {
	case *heap.Obj:
		return o
	case *heap.Function:
		return o.Own
	default:
		fault(op, "expected an object, got %s", obj.TypeOfTag())
		return nil // unreachable
	}
}

// GetProperty walks the prototype chain starting at obj, returning
// undefined if key is not found anywhere in the chain (spec.md §4.6).
func (e *Engine) GetProperty(obj value.Value, key value.Value) value.Value {
	o := e.asObject("GetProperty", obj)
	for {
		v, ok, err := o.Props.Get(key, e.normalizeKey)
		if err != nil {
			fault("GetProperty", "%v", err)
		}
		if ok {
			return v
		}
		if !o.HasProto {
			return e.Undefined()
		}
		o = e.asObject("GetProperty", o.Proto)
	}
}

// SetProperty assigns key=val on obj only — it never writes through to a
// prototype (spec.md §4.6: "Property assignment only updates the
// receiver").
func (e *Engine) SetProperty(obj value.Value, key value.Value, val value.Value) {
	o := e.asObject("SetProperty", obj)
	if err := o.Props.Set(key, val, e.normalizeKey); err != nil {
		fault("SetProperty", "%v", err)
	}
}

// SetPrototype rewires obj's prototype pointer after construction, used
// by the deep-prototype-chain scenario in spec.md §8 (removing a link and
// observing the lookup change).
func (e *Engine) SetPrototype(obj value.Value, hasProto bool, proto value.Value) {
	o := e.asObject("SetPrototype", obj)
	o.HasProto = hasProto
	o.Proto = proto
}
