package heap

import "github.com/redchew/aotjs/pkg/value"

// Obj is a JS-visible object: an optional prototype plus a property map.
// Property lookup walks the prototype chain; assignment only ever touches
// the receiver (spec.md §4.6).
type Obj struct {
	base
	HasProto bool
	Proto    value.Value
	Props    *PropMap
}

var _ HeapObject = (*Obj)(nil)

func NewObj() *Obj { return &Obj{Props: newPropMap()} }

// NewObjWithProto builds an object whose prototype is proto.
func NewObjWithProto(proto value.Value) *Obj {
	return &Obj{HasProto: true, Proto: proto, Props: newPropMap()}
}

func (o *Obj) Kind() Kind { return KindObject }

func (o *Obj) TraceOutgoing(mv func(value.Value), mo func(HeapObject)) {
	if o.HasProto {
		mv(o.Proto)
	}
	o.Props.Each(func(keyIsSymbol bool, keyStr string, keySym value.Value, val value.Value) {
		if keyIsSymbol {
			mv(keySym)
		}
		mv(val)
	})
}

func (o *Obj) TypeOfTag() string { return "object" }
