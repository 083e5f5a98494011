package engine

import (
	"github.com/redchew/aotjs/pkg/heap"
	"github.com/redchew/aotjs/pkg/value"
)

// StackAddr addresses one slot of the shadow stack. It is stable until
// the slot is popped (spec.md §4.4).
type StackAddr int

// PushLocal appends v to the shadow stack and returns the address of the
// new slot. Generated code deposits every heap-referencing local here so
// the GC can see it — the actual machine stack is not scannable,
// especially under a Wasm target (spec.md §9).
func (e *Engine) PushLocal(v value.Value) StackAddr {
	if len(e.shadowStack) >= e.cfg.ShadowStackSlots {
		fault("PushLocal", "shadow stack exhausted (limit %d)", e.cfg.ShadowStackSlots)
	}
	e.shadowStack = append(e.shadowStack, v)
	return StackAddr(len(e.shadowStack) - 1)
}

// PopTo resets the shadow-stack top to base; every slot above it is
// invalid from this instant on.
func (e *Engine) PopTo(base StackAddr) {
	if int(base) > len(e.shadowStack) || base < 0 {
		fault("PopTo", "base %d out of range for stack of length %d", base, len(e.shadowStack))
	}
	e.shadowStack = e.shadowStack[:base]
}

// Top returns the current shadow-stack top address.
func (e *Engine) Top() StackAddr { return StackAddr(len(e.shadowStack)) }

func (e *Engine) readLocal(addr StackAddr) value.Value {
	if int(addr) >= len(e.shadowStack) || addr < 0 {
		fault("readLocal", "address %d out of range for stack of length %d", addr, len(e.shadowStack))
	}
	return e.shadowStack[addr]
}

func (e *Engine) writeLocal(addr StackAddr, v value.Value) {
	if int(addr) >= len(e.shadowStack) || addr < 0 {
		fault("writeLocal", "address %d out of range for stack of length %d", addr, len(e.shadowStack))
	}
	e.shadowStack[addr] = v
}

// Local is an owning reference to a shadow-stack slot: reads and writes
// go through the slot itself, so any intervening GC sees the latest
// value. A Local must never outlive the Scope that pushed it, and is
// never heap-allocated by this package — callers hold it by value on
// their own Go stack, which is exactly where it's meant to live.
type Local struct {
	e    *Engine
	addr StackAddr
}

func (l Local) Get() value.Value { return l.e.readLocal(l.addr) }
func (l Local) Set(v value.Value) { l.e.writeLocal(l.addr, v) }
func (l Local) Addr() StackAddr { return l.addr }

// Retained is a Local statically constrained to hold a pointer of heap
// kind T, with Deref doing the handle resolution and type assertion in
// one step.
type Retained[T heap.HeapObject] struct {
	Local
}

// Deref resolves the Local's current Value and asserts it denotes a T.
// Faults (misuse) if the handle is dangling or the concrete kind is
// wrong — this is the "dereferencing a root pointer with the wrong
// concrete type" case spec.md §7 calls out as a programmer bug.
func (r Retained[T]) Deref() T {
	v := r.Get()
	obj, ok := r.e.Resolve(v)
	if !ok {
		fault("Retained.Deref", "dangling pointer value (handle %d)", v.Handle())
	}
	t, ok := obj.(T)
	if !ok {
		fault("Retained.Deref", "expected %T, got %s", t, obj.Kind())
	}
	return t
}

// Scope is constructed at entry to any function that allocates locals; it
// records the shadow-stack top and, on Close, pops back to it — every
// local pushed while the Scope was open is reclaimed. Go has no
// destructors, so callers invoke Close via defer at the call site, the
// same explicit-release discipline purple_go's memory.Region uses
// (EnterRegion/ExitRegion) rather than scope-exit magic.
type Scope struct {
	e    *Engine
	base StackAddr
}

// OpenScope opens a new Scope rooted at the engine's current shadow-stack
// top.
func (e *Engine) OpenScope() *Scope {
	return &Scope{e: e, base: e.Top()}
}

// PushLocal pushes v within this Scope and returns an owning Local.
func (s *Scope) PushLocal(v value.Value) Local {
	return Local{e: s.e, addr: s.e.PushLocal(v)}
}

// Base returns the shadow-stack address this Scope will pop back to.
func (s *Scope) Base() StackAddr { return s.base }

// Close pops the shadow stack back to the Scope's recorded base.
func (s *Scope) Close() {
	s.e.PopTo(s.base)
}

// ReturnScope is a Scope that pre-reserves one return slot in the parent
// before opening its own inner Scope, so a value produced inside the
// inner Scope can escape it without being popped on Close (spec.md §4.4).
type ReturnScope struct {
	e          *Engine
	parentSlot StackAddr
	inner      *Scope
}

// OpenReturnScope reserves a slot in the current (parent) stack region,
// then opens an inner Scope for the function's own locals.
func (e *Engine) OpenReturnScope() *ReturnScope {
	parentSlot := e.PushLocal(e.Undefined())
	return &ReturnScope{e: e, parentSlot: parentSlot, inner: e.OpenScope()}
}

// PushLocal pushes v within the inner Scope.
func (r *ReturnScope) PushLocal(v value.Value) Local { return r.inner.PushLocal(v) }

// Escape copies v into the reserved parent slot and returns a Local
// handle to it — the handle remains valid in the caller's frame after
// Close pops the inner Scope.
func (r *ReturnScope) Escape(v value.Value) Local {
	r.e.writeLocal(r.parentSlot, v)
	return Local{e: r.e, addr: r.parentSlot}
}

// Close pops the inner Scope only; the reserved parent slot survives.
func (r *ReturnScope) Close() {
	r.inner.Close()
}

// TypedReturnScope is a ReturnScope whose escape handle carries a static
// heap-kind tag, for type-directed callers that know exactly what kind of
// object they're returning.
type TypedReturnScope[T heap.HeapObject] struct {
	*ReturnScope
}

// OpenTypedReturnScope opens a TypedReturnScope[T].
func OpenTypedReturnScope[T heap.HeapObject](e *Engine) *TypedReturnScope[T] {
	return &TypedReturnScope[T]{ReturnScope: e.OpenReturnScope()}
}

// EscapeTyped is Escape plus the static T tag on the returned handle.
func (r *TypedReturnScope[T]) EscapeTyped(v value.Value) Retained[T] {
	return Retained[T]{Local: r.Escape(v)}
}

// ArgList is the contiguous run of actual-argument Values a caller pushes
// onto the shadow stack before a call; the callee addresses argument i by
// index and the ArgList pops its whole run on Close.
type ArgList struct {
	e     *Engine
	base  StackAddr
	count int
}

// PushArgs pushes args as a contiguous run and returns the owning
// ArgList.
func (e *Engine) PushArgs(args []value.Value) *ArgList {
	base := e.Top()
	for _, a := range args {
		e.PushLocal(a)
	}
	return &ArgList{e: e, base: base, count: len(args)}
}

func (a *ArgList) Len() int { return a.count }

func (a *ArgList) Arg(i int) value.Value {
	if i < 0 || i >= a.count {
		fault("ArgList.Arg", "index %d out of range [0,%d)", i, a.count)
	}
	return a.e.readLocal(a.base + StackAddr(i))
}

// Close pops this ArgList's entire run off the shadow stack.
func (a *ArgList) Close() {
	a.e.PopTo(a.base)
}
