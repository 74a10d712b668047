// Package value defines the runtime representation shared by the compiler
// and the virtual machine: a tagged scalar Value with Copy semantics, and
// the heap-object variants (string, function, native function, array,
// instance) a Value may reference. Object and Value are defined in the same
// package deliberately — Value.obj points at an Object and Object's Array
// and Chunk.Constants fields hold Values, so splitting them across two
// packages the way the heap allocator lives separately would create an
// import cycle; lang/heap instead holds only the allocator and sweep logic
// over *Object, imported on top of this package.
package value

import (
	"fmt"
	"math"
)

// Kind tags the active variant of a Value.
type Kind uint8

const (
	KindNull Kind = iota
	KindBool
	KindInt
	KindUint
	KindFloat
	KindObject
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindUint:
		return "uint"
	case KindFloat:
		return "double"
	case KindObject:
		return "object"
	default:
		return "<invalid kind>"
	}
}

// Handle is a non-owning reference to a heap-allocated Object. Object
// lifetime belongs to the heap that allocated it, never to the Value.
type Handle = *Object

// Value is the tagged union carried on the VM's evaluation stack and in a
// Chunk's constant pool. It is a plain struct with Copy semantics:
// duplicating a Value (by assignment) never touches the heap.
type Value struct {
	kind Kind
	num  uint64 // bit pattern for Bool/Int/Uint/Float
	obj  Handle // valid iff kind == KindObject
}

func Null() Value                { return Value{kind: KindNull} }
func Bool(b bool) Value          { return Value{kind: KindBool, num: boolBits(b)} }
func Int(i int64) Value          { return Value{kind: KindInt, num: uint64(i)} }
func Uint(u uint64) Value        { return Value{kind: KindUint, num: u} }
func Float(f float64) Value      { return Value{kind: KindFloat, num: floatBits(f)} }
func Obj(h Handle) Value         { return Value{kind: KindObject, obj: h} }

func boolBits(b bool) uint64 {
	if b {
		return 1
	}
	return 0
}

func floatBits(f float64) uint64 { return math.Float64bits(f) }

func (v Value) Kind() Kind { return v.kind }

func (v Value) IsNull() bool   { return v.kind == KindNull }
func (v Value) IsBool() bool   { return v.kind == KindBool }
func (v Value) IsInt() bool    { return v.kind == KindInt }
func (v Value) IsUint() bool   { return v.kind == KindUint }
func (v Value) IsFloat() bool  { return v.kind == KindFloat }
func (v Value) IsObject() bool { return v.kind == KindObject }
func (v Value) IsNumeric() bool {
	return v.kind == KindInt || v.kind == KindUint || v.kind == KindFloat
}

func (v Value) AsBool() bool       { return v.num != 0 }
func (v Value) AsInt() int64       { return int64(v.num) }
func (v Value) AsUint() uint64     { return v.num }
func (v Value) AsFloat() float64   { return math.Float64frombits(v.num) }
func (v Value) AsHandle() Handle   { return v.obj }

// AsString returns the string payload of v, assuming v is an object Value
// wrapping an ObjString. Callers must check IsObject and the object's Kind
// first; this mirrors the VM's own discipline of trusting the analyser to
// have ruled out mismatched types ahead of time.
func (v Value) AsString() string { return v.obj.Str }

// Truthy implements the language's notion of a condition value: every value
// is truthy except null, boolean false, and numeric zero.
func (v Value) Truthy() bool {
	switch v.kind {
	case KindNull:
		return false
	case KindBool:
		return v.AsBool()
	case KindInt:
		return v.AsInt() != 0
	case KindUint:
		return v.AsUint() != 0
	case KindFloat:
		return v.AsFloat() != 0
	default:
		return true
	}
}

// TypeName returns the source-level type name of v, for diagnostics.
func (v Value) TypeName() string {
	switch v.kind {
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindUint:
		return "uint"
	case KindFloat:
		return "double"
	case KindObject:
		if v.obj == nil {
			return "object"
		}
		return v.obj.Kind.String()
	default:
		return "<invalid>"
	}
}

// String renders v the way `pr` prints it.
func (v Value) String() string {
	switch v.kind {
	case KindNull:
		return "null"
	case KindBool:
		if v.AsBool() {
			return "true"
		}
		return "false"
	case KindInt:
		return fmt.Sprintf("%d", v.AsInt())
	case KindUint:
		return fmt.Sprintf("%d", v.AsUint())
	case KindFloat:
		return fmt.Sprintf("%g", v.AsFloat())
	case KindObject:
		if v.obj == nil {
			return "null"
		}
		return v.obj.String()
	default:
		return "<invalid value>"
	}
}
