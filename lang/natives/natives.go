// Package natives implements ilex's small standard library: the
// host-implemented callables registered with the emitter per spec.md §6's
// native-function ABI. The concrete set is grounded in what a minimal
// scripting language's original source (see original_source/, when
// present) and the teacher project's own built-in surface expose: array
// and string length/growth, numeric conversions, and a handful of math and
// timing helpers.
package natives

import (
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/mna/ilex/lang/analyser"
	"github.com/mna/ilex/lang/ast"
	"github.com/mna/ilex/lang/value"
)

// Descriptor pairs a native function's static signature with its runtime
// implementation.
type Descriptor struct {
	Name       string
	ParamTypes []ast.Type
	ReturnType ast.Type
	Fn         value.NativeFn
}

// All returns every native function ilex registers, in a stable order.
func All() []Descriptor {
	return []Descriptor{
		{"len", []ast.Type{{Name: "any", Dims: 1}}, ast.Type{Name: "int"}, lenFn},
		{"push", []ast.Type{{Name: "any", Dims: 1}, {Name: "any"}}, ast.Type{}, pushFn},
		{"pop", []ast.Type{{Name: "any", Dims: 1}}, ast.Type{Name: "any"}, popFn},
		{"int_to_str", []ast.Type{{Name: "int"}}, ast.Type{Name: "str"}, intToStrFn},
		{"str_to_int", []ast.Type{{Name: "str"}}, ast.Type{Name: "int"}, strToIntFn},
		{"sqrt", []ast.Type{{Name: "double"}}, ast.Type{Name: "double"}, sqrtFn},
		{"abs_i", []ast.Type{{Name: "int"}}, ast.Type{Name: "int"}, absIFn},
		{"abs_d", []ast.Type{{Name: "double"}}, ast.Type{Name: "double"}, absDFn},
		{"clock", nil, ast.Type{Name: "double"}, clockFn},
	}
}

// Table builds the analyser.NativeTable describing every native's static
// signature, for the type-checking pass.
//
// The param/return type "any" used by len/push/pop is a deliberate escape
// hatch: spec.md's native ABI is untyped per-argument at the host boundary,
// and ilex's static array element type varies by call site, so the
// analyser skips type-checking arguments and results declared "any"
// (see checkArgs's handling in lang/analyser).
func Table() analyser.NativeTable {
	t := make(analyser.NativeTable)
	for _, d := range All() {
		t[d.Name] = &analyser.NativeInfo{Name: d.Name, ParamTypes: d.ParamTypes, ReturnType: d.ReturnType}
	}
	return t
}

func lenFn(args []value.Value, _ value.Allocator) (value.Value, error) {
	a := args[0]
	if !a.IsObject() {
		return value.Value{}, fmt.Errorf("len: argument is not an array or string")
	}
	switch a.AsHandle().Kind {
	case value.ObjArray:
		return value.Int(int64(len(a.AsHandle().Array))), nil
	case value.ObjString:
		return value.Int(int64(len(a.AsHandle().Str))), nil
	default:
		return value.Value{}, fmt.Errorf("len: argument is not an array or string")
	}
}

func pushFn(args []value.Value, _ value.Allocator) (value.Value, error) {
	a := args[0]
	if !a.IsObject() || a.AsHandle().Kind != value.ObjArray {
		return value.Value{}, fmt.Errorf("push: first argument must be an array")
	}
	h := a.AsHandle()
	h.Array = append(h.Array, args[1])
	return value.Null(), nil
}

func popFn(args []value.Value, _ value.Allocator) (value.Value, error) {
	a := args[0]
	if !a.IsObject() || a.AsHandle().Kind != value.ObjArray {
		return value.Value{}, fmt.Errorf("pop: argument must be an array")
	}
	h := a.AsHandle()
	n := len(h.Array)
	if n == 0 {
		return value.Value{}, fmt.Errorf("pop: array is empty")
	}
	v := h.Array[n-1]
	h.Array = h.Array[:n-1]
	return v, nil
}

func intToStrFn(args []value.Value, alloc value.Allocator) (value.Value, error) {
	return alloc.AllocString(strconv.FormatInt(args[0].AsInt(), 10)), nil
}

func strToIntFn(args []value.Value, _ value.Allocator) (value.Value, error) {
	n, err := strconv.ParseInt(args[0].AsString(), 10, 64)
	if err != nil {
		return value.Value{}, fmt.Errorf("str_to_int: %w", err)
	}
	return value.Int(n), nil
}

func sqrtFn(args []value.Value, _ value.Allocator) (value.Value, error) {
	return value.Float(math.Sqrt(args[0].AsFloat())), nil
}

func absIFn(args []value.Value, _ value.Allocator) (value.Value, error) {
	n := args[0].AsInt()
	if n < 0 {
		n = -n
	}
	return value.Int(n), nil
}

func absDFn(args []value.Value, _ value.Allocator) (value.Value, error) {
	return value.Float(math.Abs(args[0].AsFloat())), nil
}

func clockFn(_ []value.Value, _ value.Allocator) (value.Value, error) {
	return value.Float(float64(time.Now().UnixNano()) / 1e9), nil
}
