package compiler_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mna/ilex/internal/config"
	"github.com/mna/ilex/lang/analyser"
	"github.com/mna/ilex/lang/compiler"
	"github.com/mna/ilex/lang/natives"
	"github.com/mna/ilex/lang/parser"
	"github.com/mna/ilex/lang/token"
	"github.com/mna/ilex/lang/value"
)

func compileSource(t *testing.T, src string) (*value.Function, *value.Chunk) {
	t.Helper()

	file := token.NewFile("test.ilex")
	ch, err := parser.ParseSource(file, []byte(src))
	require.NoError(t, err)

	res, err := analyser.Analyse(ch, natives.Table())
	require.NoError(t, err)

	impls := make(map[string]value.NativeFn)
	for _, d := range natives.All() {
		impls[d.Name] = d.Fn
	}

	fn, _, err := compiler.Compile(res, impls, config.Default())
	require.NoError(t, err)
	return fn, &fn.Chunk
}

// These tests check each invariant on the root script's chunk only; every
// user function and method chunk is produced by the same emitter code path.

func TestChunkCodeAndLinesStayInLockstep(t *testing.T) {
	_, chunk := compileSource(t, `
var a: int = 1;
var b: int = 2;
pr a + b;
`)
	require.Equal(t, len(chunk.Code), len(chunk.Lines))
}

func TestJumpOffsetsStayWithinCode(t *testing.T) {
	_, chunk := compileSource(t, `
var a: int = 0;
if a == 0 {
	pr 1;
} else {
	pr 2;
}
while a < 3 {
	a = a + 1;
}
`)
	for off := 0; off < len(chunk.Code); {
		op := compiler.Opcode(chunk.Code[off])
		switch op {
		case compiler.OpJump, compiler.OpJumpIfFalse, compiler.OpLoop:
			hi, lo := chunk.Code[off+1], chunk.Code[off+2]
			dist := int(hi)<<8 | int(lo)
			var target int
			if op == compiler.OpLoop {
				target = off + 3 - dist
			} else {
				target = off + 3 + dist
			}
			require.GreaterOrEqual(t, target, 0)
			require.LessOrEqual(t, target, len(chunk.Code))
			off += 3
		case compiler.OpConstant, compiler.OpGetLocal, compiler.OpSetLocal,
			compiler.OpFuncCall, compiler.OpAllocInstance,
			compiler.OpGetProperty, compiler.OpSetProperty:
			off += 2
		default:
			off++
		}
	}
}

func TestSlotZeroIsNeverOverwritten(t *testing.T) {
	_, chunk := compileSource(t, `
var a: int = 1;
var b: int = 2;
a = a + b;
`)
	for off := 0; off < len(chunk.Code); {
		op := compiler.Opcode(chunk.Code[off])
		if op == compiler.OpSetLocal {
			require.NotEqual(t, byte(0), chunk.Code[off+1], "SetLocal 0 at offset %d", off)
		}
		switch op {
		case compiler.OpConstant, compiler.OpGetLocal, compiler.OpSetLocal,
			compiler.OpFuncCall, compiler.OpAllocInstance,
			compiler.OpGetProperty, compiler.OpSetProperty:
			off += 2
		case compiler.OpJump, compiler.OpJumpIfFalse, compiler.OpLoop:
			off += 3
		default:
			off++
		}
	}
}

func TestAllocArrConsumesLengthConstantPlusElements(t *testing.T) {
	_, chunk := compileSource(t, `
var a: int[] = [1, 2, 3];
`)
	found := false
	for off := 0; off < len(chunk.Code); {
		op := compiler.Opcode(chunk.Code[off])
		if op == compiler.OpAllocArr {
			found = true
			// The instruction immediately preceding AllocArr's own position
			// must be the Constant carrying the element count (2 bytes: opcode
			// + 1-byte index), per the array-literal lowering rule.
			require.GreaterOrEqual(t, off, 2)
			require.Equal(t, compiler.OpConstant, compiler.Opcode(chunk.Code[off-2]))
			k := chunk.Code[off-1]
			require.Equal(t, value.Int(3), chunk.Constants[k])
		}
		switch op {
		case compiler.OpConstant, compiler.OpGetLocal, compiler.OpSetLocal,
			compiler.OpFuncCall, compiler.OpAllocInstance,
			compiler.OpGetProperty, compiler.OpSetProperty:
			off += 2
		case compiler.OpJump, compiler.OpJumpIfFalse, compiler.OpLoop:
			off += 3
		default:
			off++
		}
	}
	require.True(t, found, "expected an OpAllocArr instruction")
}

func TestDisassembleDoesNotPanic(t *testing.T) {
	fn, chunk := compileSource(t, `
var a: int = 1;
pr a;
`)
	var sb testingWriter
	compiler.Disassemble(&sb, fn.Name, chunk)
	require.NotEmpty(t, sb.buf)
}

type testingWriter struct{ buf []byte }

func (w *testingWriter) Write(p []byte) (int, error) {
	w.buf = append(w.buf, p...)
	return len(p), nil
}
