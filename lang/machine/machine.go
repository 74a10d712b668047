// Package machine implements ilex's stack virtual machine: the dispatch
// loop that walks a compiled value.Function's Chunk, executing one opcode
// per iteration against a fixed-capacity value stack and call-frame array.
// It is grounded in the teacher project's own lang/machine package (the
// frame/thread shape, the one-opcode-at-a-time dispatch, wrapping runtime
// faults with a line-tagged error), simplified to a flat trampoline loop
// instead of a recursive one: ilex has no Starlark-style Thread/Call
// re-entrancy, and spec.md's VM is explicitly "a fixed-capacity call-frame
// array (cap 64)", not a Go call stack.
package machine

import (
	"fmt"
	"io"

	"github.com/mna/ilex/internal/config"
	"github.com/mna/ilex/lang/compiler"
	"github.com/mna/ilex/lang/heap"
	"github.com/mna/ilex/lang/value"
)

// frame records one active call: the function whose chunk is executing, the
// instruction pointer into that chunk's code, and the stack index where
// this frame's slot 0 lives.
type frame struct {
	fn    *value.Function
	ip    int
	slots int
}

// VM is a single-threaded bytecode interpreter. It owns no heap objects
// directly (those belong to the *heap.Heap it was given) but does own its
// value stack and call-frame array, sized once from config.Limits.
type VM struct {
	stack []value.Value
	sp    int

	frames []frame
	fc     int

	h      *heap.Heap
	limits config.Limits
	out    io.Writer
}

// New returns a VM ready to Interpret a compiled top-level function,
// printing to out (spec.md's `pr` statement) and allocating through h.
func New(h *heap.Heap, limits config.Limits, out io.Writer) *VM {
	return &VM{
		stack:  make([]value.Value, limits.MaxStack),
		frames: make([]frame, limits.MaxFrames),
		h:      h,
		limits: limits,
		out:    out,
	}
}

// Interpret runs top to completion: every top-level statement, including
// any `fn main()`-less script body the emitter folded in directly. A
// returned error is always a *value.RuntimeError.
func (vm *VM) Interpret(top *value.Function) error {
	topVal, _ := vm.h.AllocFunction(top)
	vm.sp = 0
	vm.stack[0] = topVal
	vm.sp = 1
	vm.frames[0] = frame{fn: top, ip: 0, slots: 0}
	vm.fc = 1
	return vm.run()
}

func (vm *VM) fault(line int, format string, args ...any) error {
	return &value.RuntimeError{Line: line, Message: fmt.Sprintf(format, args...)}
}

func (vm *VM) push(v value.Value, line int) error {
	if vm.sp >= len(vm.stack) {
		return vm.fault(line, "stack overflow")
	}
	vm.stack[vm.sp] = v
	vm.sp++
	return nil
}

func (vm *VM) pop() value.Value {
	vm.sp--
	return vm.stack[vm.sp]
}

func (vm *VM) peek(distance int) value.Value {
	return vm.stack[vm.sp-1-distance]
}

func readOffset(code []byte, at int) int {
	return int(code[at])<<8 | int(code[at+1])
}

// run is the dispatch loop: one opcode decoded and executed per pass, the
// current frame re-fetched from vm.frames at the top of every pass so a
// FuncCall/Return that changed vm.fc is always reflected on the next
// instruction, per spec.md's "on each iteration refresh the current-frame
// pointer" rule.
func (vm *VM) run() error {
	for vm.fc > 0 {
		fr := &vm.frames[vm.fc-1]
		code := fr.fn.Chunk.Code
		if fr.ip >= len(code) {
			return vm.fault(0, "function %q ran past the end of its code", fr.fn.Name)
		}
		line := fr.fn.Chunk.Lines[fr.ip]
		op := compiler.Opcode(code[fr.ip])
		fr.ip++

		switch op {
		case compiler.OpPop:
			vm.pop()

		case compiler.OpTrue:
			if err := vm.push(value.Bool(true), line); err != nil {
				return err
			}
		case compiler.OpFalse:
			if err := vm.push(value.Bool(false), line); err != nil {
				return err
			}
		case compiler.OpNull:
			if err := vm.push(value.Null(), line); err != nil {
				return err
			}

		case compiler.OpNegate:
			x, err := value.Negate(line, vm.pop())
			if err != nil {
				return err
			}
			if err := vm.push(x, line); err != nil {
				return err
			}
		case compiler.OpNot:
			x, err := value.Not(line, vm.pop())
			if err != nil {
				return err
			}
			if err := vm.push(x, line); err != nil {
				return err
			}

		case compiler.OpAdd:
			b, a := vm.pop(), vm.pop()
			z, err := value.Add(line, a, b, vm.h.AllocString)
			if err != nil {
				return err
			}
			if err := vm.push(z, line); err != nil {
				return err
			}
		case compiler.OpSub:
			if err := vm.binaryNumeric(line, value.Sub); err != nil {
				return err
			}
		case compiler.OpMul:
			if err := vm.binaryNumeric(line, value.Mul); err != nil {
				return err
			}
		case compiler.OpDiv:
			if err := vm.binaryNumeric(line, value.Div); err != nil {
				return err
			}

		case compiler.OpEqual:
			b, a := vm.pop(), vm.pop()
			if err := vm.push(value.Bool(value.Equals(a, b)), line); err != nil {
				return err
			}
		case compiler.OpNotEqual:
			b, a := vm.pop(), vm.pop()
			if err := vm.push(value.Bool(!value.Equals(a, b)), line); err != nil {
				return err
			}
		case compiler.OpLess:
			if err := vm.compare(line, func(c int) bool { return c < 0 }); err != nil {
				return err
			}
		case compiler.OpLessEqual:
			if err := vm.compare(line, func(c int) bool { return c <= 0 }); err != nil {
				return err
			}
		case compiler.OpGreater:
			if err := vm.compare(line, func(c int) bool { return c > 0 }); err != nil {
				return err
			}
		case compiler.OpGreaterEqual:
			if err := vm.compare(line, func(c int) bool { return c >= 0 }); err != nil {
				return err
			}

		case compiler.OpIndexArr:
			i := vm.pop()
			arrV := vm.pop()
			arr, err := vm.asArray(line, arrV)
			if err != nil {
				return err
			}
			idx, err := vm.toIndex(line, i)
			if err != nil {
				return err
			}
			if idx < 0 || idx >= len(arr) {
				return vm.fault(line, "array index %d out of range (length %d)", idx, len(arr))
			}
			if err := vm.push(arr[idx], line); err != nil {
				return err
			}
		case compiler.OpAssignIndex:
			v := vm.pop()
			i := vm.pop()
			arrV := vm.pop()
			arr, err := vm.asArray(line, arrV)
			if err != nil {
				return err
			}
			idx, err := vm.toIndex(line, i)
			if err != nil {
				return err
			}
			if idx < 0 || idx >= len(arr) {
				return vm.fault(line, "array index %d out of range (length %d)", idx, len(arr))
			}
			arr[idx] = v
			if err := vm.push(v, line); err != nil {
				return err
			}

		case compiler.OpAllocArr:
			lengthV := vm.pop()
			n := int(lengthV.AsInt())
			elems := make([]value.Value, n)
			for i := 0; i < n; i++ {
				elems[i] = vm.pop()
			}
			if err := vm.push(vm.h.AllocArray(elems), line); err != nil {
				return err
			}

		case compiler.OpPrint:
			fmt.Fprint(vm.out, vm.pop().String())

		case compiler.OpCastToInt:
			x, err := vm.castTo(line, vm.pop(), value.KindInt)
			if err != nil {
				return err
			}
			if err := vm.push(x, line); err != nil {
				return err
			}
		case compiler.OpCastToUint:
			x, err := vm.castTo(line, vm.pop(), value.KindUint)
			if err != nil {
				return err
			}
			if err := vm.push(x, line); err != nil {
				return err
			}
		case compiler.OpCastToDouble:
			x, err := vm.castTo(line, vm.pop(), value.KindFloat)
			if err != nil {
				return err
			}
			if err := vm.push(x, line); err != nil {
				return err
			}

		case compiler.OpConstant:
			k := code[fr.ip]
			fr.ip++
			if err := vm.push(fr.fn.Chunk.Constants[k], line); err != nil {
				return err
			}
		case compiler.OpGetLocal:
			s := code[fr.ip]
			fr.ip++
			if err := vm.push(vm.stack[fr.slots+int(s)], line); err != nil {
				return err
			}
		case compiler.OpSetLocal:
			s := code[fr.ip]
			fr.ip++
			vm.stack[fr.slots+int(s)] = vm.peek(0)

		case compiler.OpFuncCall:
			argc := int(code[fr.ip])
			fr.ip++
			if err := vm.call(argc, line); err != nil {
				return err
			}

		case compiler.OpAllocInstance:
			n := int(code[fr.ip])
			fr.ip++
			nameV := vm.pop()
			fields := make([]value.Value, n)
			for i := 0; i < n; i++ {
				fields[i] = vm.pop()
			}
			if err := vm.push(vm.h.AllocInstance(nameV.AsString(), fields), line); err != nil {
				return err
			}

		case compiler.OpGetProperty:
			k := code[fr.ip]
			fr.ip++
			instV := vm.pop()
			inst, err := vm.asInstance(line, instV)
			if err != nil {
				return err
			}
			if err := vm.push(inst.Fields[k], line); err != nil {
				return err
			}
		case compiler.OpSetProperty:
			k := code[fr.ip]
			fr.ip++
			v := vm.pop()
			instV := vm.pop()
			inst, err := vm.asInstance(line, instV)
			if err != nil {
				return err
			}
			inst.Fields[k] = v
			if err := vm.push(v, line); err != nil {
				return err
			}

		case compiler.OpReturn:
			result := vm.pop()
			vm.fc--
			if vm.fc == 0 {
				vm.sp = 0
				return nil
			}
			vm.sp = fr.slots
			if err := vm.push(result, line); err != nil {
				return err
			}

		case compiler.OpJump:
			off := readOffset(code, fr.ip)
			fr.ip += 2
			fr.ip += off
		case compiler.OpJumpIfFalse:
			off := readOffset(code, fr.ip)
			fr.ip += 2
			if !vm.peek(0).Truthy() {
				fr.ip += off
			}
		case compiler.OpLoop:
			off := readOffset(code, fr.ip)
			fr.ip += 2
			fr.ip -= off

		default:
			return vm.fault(line, "unimplemented opcode %s", op)
		}
	}
	return nil
}

func (vm *VM) binaryNumeric(line int, op func(int, value.Value, value.Value) (value.Value, error)) error {
	b, a := vm.pop(), vm.pop()
	z, err := op(line, a, b)
	if err != nil {
		return err
	}
	return vm.push(z, line)
}

func (vm *VM) compare(line int, ok func(int) bool) error {
	b, a := vm.pop(), vm.pop()
	c, err := value.Compare(line, a, b)
	if err != nil {
		return err
	}
	return vm.push(value.Bool(ok(c)), line)
}

func (vm *VM) asArray(line int, v value.Value) ([]value.Value, error) {
	if !v.IsObject() || v.AsHandle().Kind != value.ObjArray {
		return nil, vm.fault(line, "cannot index a %s value", v.TypeName())
	}
	return v.AsHandle().Array, nil
}

func (vm *VM) asInstance(line int, v value.Value) (*value.Instance, error) {
	if !v.IsObject() || v.AsHandle().Kind != value.ObjInstance {
		return nil, vm.fault(line, "cannot access a field on a %s value", v.TypeName())
	}
	return v.AsHandle().Instance, nil
}

// toIndex converts a numeric Value to an int index, per spec.md's "i
// converted to unsigned" rule for IndexArr/AssignIndex.
func (vm *VM) toIndex(line int, v value.Value) (int, error) {
	switch v.Kind() {
	case value.KindInt:
		return int(uint64(v.AsInt())), nil
	case value.KindUint:
		return int(v.AsUint()), nil
	case value.KindFloat:
		return int(uint64(v.AsFloat())), nil
	default:
		return 0, vm.fault(line, "array index must be numeric, got %s", v.TypeName())
	}
}

func (vm *VM) castTo(line int, v value.Value, to value.Kind) (value.Value, error) {
	if !v.IsNumeric() {
		return value.Value{}, vm.fault(line, "cannot cast a %s value to a number", v.TypeName())
	}
	var f float64
	switch v.Kind() {
	case value.KindInt:
		f = float64(v.AsInt())
	case value.KindUint:
		f = float64(v.AsUint())
	case value.KindFloat:
		f = v.AsFloat()
	}
	switch to {
	case value.KindInt:
		return value.Int(int64(f)), nil
	case value.KindUint:
		return value.Uint(uint64(f)), nil
	case value.KindFloat:
		return value.Float(f), nil
	default:
		return value.Value{}, vm.fault(line, "unsupported cast target")
	}
}

// call implements FuncCall argc: the callee is stack[sp-argc]; a
// value.Function callee pushes a new frame over the argument window, while
// a value.NativeFunction callee is invoked directly and its argument
// window collapsed in place.
func (vm *VM) call(argc int, line int) error {
	calleeIdx := vm.sp - argc
	calleeV := vm.stack[calleeIdx]
	if !calleeV.IsObject() {
		return vm.fault(line, "value of type %s is not callable", calleeV.TypeName())
	}
	obj := calleeV.AsHandle()
	switch obj.Kind {
	case value.ObjFunction:
		if vm.fc >= len(vm.frames) {
			return vm.fault(line, "call stack overflow")
		}
		vm.frames[vm.fc] = frame{fn: obj.Function, ip: 0, slots: calleeIdx}
		vm.fc++
		return nil
	case value.ObjNative:
		nargs := argc - 1
		args := make([]value.Value, nargs)
		// emitCall pushes arguments in reverse source order (see emitter.go),
		// so the stack window here holds Args[nargs-1] first and Args[0] on
		// top; user functions are compensated by the analyser's reverse
		// parameter declaration, but natives see the raw window and must
		// un-reverse it themselves to honor source-order args.
		window := vm.stack[calleeIdx+1 : calleeIdx+1+nargs]
		for i, v := range window {
			args[nargs-1-i] = v
		}
		result, err := obj.Native.Fn(args, vm.h)
		if err != nil {
			return vm.fault(line, "%s", err)
		}
		vm.sp = calleeIdx
		return vm.push(result, line)
	default:
		return vm.fault(line, "value of type %s is not callable", obj.Kind)
	}
}
