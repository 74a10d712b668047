package compiler

import (
	"fmt"
	"io"

	"github.com/mna/ilex/lang/value"
)

// Chunk is the per-function compiled bytecode buffer: opcode/operand bytes,
// a parallel per-byte line table, and an append-only constants pool. It is
// an alias for value.Chunk — the Function heap object embeds a Chunk
// directly, and keeping a single definition avoids an import cycle between
// lang/value and lang/compiler (see DESIGN.md).
type Chunk = value.Chunk

// Disassemble writes a human-readable listing of chunk to w, a debug aid
// grounded in the teacher's own opcode-dump conventions.
func Disassemble(w io.Writer, name string, chunk *Chunk) {
	fmt.Fprintf(w, "== %s ==\n", name)
	for off := 0; off < len(chunk.Code); {
		off = disassembleInstr(w, chunk, off)
	}
}

func disassembleInstr(w io.Writer, chunk *Chunk, off int) int {
	op := Opcode(chunk.Code[off])
	line := chunk.Lines[off]
	fmt.Fprintf(w, "%04d %4d %s", off, line, op)
	switch {
	case op == OpConstant:
		k := chunk.Code[off+1]
		fmt.Fprintf(w, " %d (%s)\n", k, chunk.Constants[k])
		return off + 2
	case op == OpGetLocal || op == OpSetLocal || op == OpFuncCall ||
		op == OpAllocInstance ||
		op == OpGetProperty || op == OpSetProperty:
		fmt.Fprintf(w, " %d\n", chunk.Code[off+1])
		return off + 2
	case op == OpJump || op == OpJumpIfFalse || op == OpLoop:
		hi, lo := chunk.Code[off+1], chunk.Code[off+2]
		fmt.Fprintf(w, " %d\n", int(hi)<<8|int(lo))
		return off + 3
	default:
		fmt.Fprintln(w)
		return off + 1
	}
}
