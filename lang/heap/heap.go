// Package heap implements the object heap shared by the compiler and the
// virtual machine: an intrusive singly-linked list of *value.Object nodes
// with allocation and an optional mark-and-sweep pass, grounded in the
// teacher project's own lang/machine allocation conventions and kept
// deliberately simple per spec.md's "permanent-allocation arena" design.
package heap

import (
	"fmt"
	"io"

	"github.com/dolthub/swiss"

	"github.com/mna/ilex/lang/value"
)

// Heap owns every allocated Object; Values hold only weak handles into it.
type Heap struct {
	head  *value.Object
	count int

	// CollectEnabled gates Sweep. It defaults to false: spec.md's reference
	// design is a permanent-allocation arena with the mark-and-sweep hook
	// left quiescent (see DESIGN.md's Open Question resolution).
	CollectEnabled bool

	// Natives interns native-function names to their already-allocated
	// Value, so the emitter can resolve a Call to a native name without a
	// linear scan of the constant pool, mirroring spec.md §4.4's
	// "function-name -> Value map" built during native registration.
	Natives *swiss.Map[string, value.Value]
}

// New returns an empty heap.
func New() *Heap {
	return &Heap{Natives: swiss.NewMap[string, value.Value](uint32(8))}
}

func (h *Heap) alloc(obj *value.Object) value.Handle {
	obj.Next = h.head
	h.head = obj
	h.count++
	return obj
}

// AllocString allocates a new string object and returns its Value.
func (h *Heap) AllocString(s string) value.Value {
	return value.Obj(h.alloc(&value.Object{Kind: value.ObjString, Str: s}))
}

// AllocFunction allocates a new function object and returns its Value. The
// returned handle is stable even though fn.Chunk may still be empty —
// callers pre-allocate this way to support forward and recursive
// references (spec.md §9), back-patching fn.Chunk once the body compiles.
func (h *Heap) AllocFunction(fn *value.Function) (value.Value, *value.Function) {
	obj := &value.Object{Kind: value.ObjFunction, Function: fn}
	return value.Obj(h.alloc(obj)), fn
}

// AllocNative allocates a native-function object, interns it by name in
// h.Natives, and returns its Value.
func (h *Heap) AllocNative(n *value.NativeFunction) value.Value {
	v := value.Obj(h.alloc(&value.Object{Kind: value.ObjNative, Native: n}))
	h.Natives.Put(n.Name, v)
	return v
}

// AllocArray allocates a new array object seeded with elems (copied into
// the object, not aliased) and returns its Value.
func (h *Heap) AllocArray(elems []value.Value) value.Value {
	cp := make([]value.Value, len(elems))
	copy(cp, elems)
	return value.Obj(h.alloc(&value.Object{Kind: value.ObjArray, Array: cp}))
}

// AllocInstance allocates a new struct instance with the given field
// values (in declared order) and returns its Value.
func (h *Heap) AllocInstance(structName string, fields []value.Value) value.Value {
	cp := make([]value.Value, len(fields))
	copy(cp, fields)
	inst := &value.Instance{StructName: structName, Fields: cp}
	return value.Obj(h.alloc(&value.Object{Kind: value.ObjInstance, Instance: inst}))
}

// Len reports the number of live objects currently linked into the heap.
func (h *Heap) Len() int { return h.count }

// Sweep walks the object list once, unlinking and discarding every object
// not reachable from roots, and clears the mark bit on every surviving
// object. It is a no-op unless CollectEnabled is set. Marking starts from
// roots and follows array elements, instance fields and function constants
// transitively.
func (h *Heap) Sweep(roots []value.Value) int {
	if !h.CollectEnabled {
		return 0
	}
	for _, r := range roots {
		markValue(r)
	}

	var (
		kept *value.Object
		freed int
	)
	for obj := h.head; obj != nil; {
		next := obj.Next
		if obj.Marked {
			obj.Marked = false
			obj.Next = kept
			kept = obj
		} else {
			freed++
			h.count--
		}
		obj = next
	}
	h.head = kept
	return freed
}

func markValue(v value.Value) {
	if !v.IsObject() {
		return
	}
	markObject(v.AsHandle())
}

func markObject(o *value.Object) {
	if o == nil || o.Marked {
		return
	}
	o.Marked = true
	switch o.Kind {
	case value.ObjArray:
		for _, e := range o.Array {
			markValue(e)
		}
	case value.ObjInstance:
		for _, e := range o.Instance.Fields {
			markValue(e)
		}
	case value.ObjFunction:
		for _, c := range o.Function.Chunk.Constants {
			markValue(c)
		}
	}
}

// DumpLive prints every live string and array object to w, a debug hook in
// the spirit of the teacher's own machine debugger conventions.
func (h *Heap) DumpLive(w io.Writer) {
	for obj := h.head; obj != nil; obj = obj.Next {
		switch obj.Kind {
		case value.ObjString:
			fmt.Fprintf(w, "string %q\n", obj.Str)
		case value.ObjArray:
			fmt.Fprintf(w, "array %s\n", obj.String())
		}
	}
}
