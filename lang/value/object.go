package value

import (
	"fmt"
	"strings"
)

// ObjKind tags the payload variant carried by an Object.
type ObjKind uint8

const (
	ObjString ObjKind = iota
	ObjFunction
	ObjNative
	ObjArray
	ObjInstance
)

func (k ObjKind) String() string {
	switch k {
	case ObjString:
		return "str"
	case ObjFunction:
		return "function"
	case ObjNative:
		return "native function"
	case ObjArray:
		return "array"
	case ObjInstance:
		return "instance"
	default:
		return "<invalid object kind>"
	}
}

// Object is a single heap-allocated node: a mark bit, an intrusive
// next-pointer maintained by lang/heap, and exactly one populated payload
// field selected by Kind.
type Object struct {
	Kind   ObjKind
	Marked bool
	Next   *Object

	Str      string
	Function *Function
	Native   *NativeFunction
	Array    []Value
	Instance *Instance
}

func (o *Object) String() string {
	switch o.Kind {
	case ObjString:
		return o.Str
	case ObjFunction:
		return fmt.Sprintf("<fn %s>", o.Function.Name)
	case ObjNative:
		return fmt.Sprintf("<native fn %s>", o.Native.Name)
	case ObjArray:
		parts := make([]string, len(o.Array))
		for i, e := range o.Array {
			parts[i] = e.String()
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case ObjInstance:
		return fmt.Sprintf("<%s instance>", o.Instance.StructName)
	default:
		return "<invalid object>"
	}
}

// Chunk is a compiled function body: opcode bytes (with operands inlined),
// a parallel per-byte line table, and an append-only constants pool.
type Chunk struct {
	Code      []byte
	Lines     []int
	Constants []Value
}

// Write appends a single byte (an opcode or an operand byte) attributed to
// line.
func (c *Chunk) Write(b byte, line int) {
	c.Code = append(c.Code, b)
	c.Lines = append(c.Lines, line)
}

// AddConstant appends v to the constant pool and returns its index. No
// deduplication is performed, matching spec.md's append-only guarantee.
// It fails once the pool would exceed maxConstants entries (a byte-wide
// operand can address at most 256).
func (c *Chunk) AddConstant(v Value, maxConstants int) (int, bool) {
	if len(c.Constants) >= maxConstants {
		return 0, false
	}
	c.Constants = append(c.Constants, v)
	return len(c.Constants) - 1, true
}

// Function is an immutable-after-compilation callable: a name, arity, local
// slot count, and its compiled Chunk. StructName is non-empty when this is
// a method; slot 0 always holds the callee. For a plain function the
// parameters occupy the slots above it in reverse source order, matching
// the reverse order a call's lowering pushes its arguments in. For a method,
// `self` (always params[0]) and the rest of the parameters occupy the slots
// above it in forward source order, matching method-call lowering pushing
// the receiver first and the explicit arguments in forward order.
type Function struct {
	Name       string
	Arity      int
	NumLocals  int
	Chunk      Chunk
	StructName string
	IsMethod   bool
}

// Allocator is the subset of *heap.Heap a native function needs to
// allocate new heap objects (e.g. a string result), without lang/value
// importing lang/heap.
type Allocator interface {
	AllocString(s string) Value
	AllocArray(elems []Value) Value
}

// NativeFn is the host-implemented callable ABI of spec.md §6: it receives
// arguments in source order plus an allocator for any heap object the call
// needs to produce, and returns a single Value or an error.
type NativeFn func(args []Value, alloc Allocator) (Value, error)

// NativeFunction is a named host callable registered with the emitter.
type NativeFunction struct {
	Name  string
	Arity int
	Fn    NativeFn
}

// Instance is a fixed-size sequence of field Values, one per declared
// struct field, indexed in declaration order.
type Instance struct {
	StructName string
	Fields     []Value
}
