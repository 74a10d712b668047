// Package ast defines the abstract syntax tree produced by the parser and
// enriched in place by the analyser: every statement and expression node
// carries its source position and, after a successful analysis pass, its
// resolved binding/type information (see Ident, Call, Field).
package ast

import "github.com/mna/ilex/lang/token"

// Node is implemented by every statement and expression node.
type Node interface {
	// Span reports the node's start position.
	Span() token.Pos
	// Walk visits the node's direct children, in source order.
	Walk(v Visitor)
}

// Expr is implemented by every expression node.
type Expr interface {
	Node
	exprNode()
}

// Stmt is implemented by every statement node.
type Stmt interface {
	Node
	stmtNode()
}

// Type describes a declared or inferred type: a base name (double, int,
// uint, bool, str, or a struct name) plus an array dimension count (0 for a
// scalar, 1 for T[], 2 for T[][], ...).
type Type struct {
	Name string
	Dims int
}

func (t Type) String() string {
	s := t.Name
	for i := 0; i < t.Dims; i++ {
		s += "[]"
	}
	return s
}

// Elem returns the type one array dimension down (e.g. int[] -> int).
func (t Type) Elem() Type { return Type{Name: t.Name, Dims: t.Dims - 1} }

// IsArray reports whether t is an array type.
func (t Type) IsArray() bool { return t.Dims > 0 }

// Equal reports whether t and o denote the same type.
func (t Type) Equal(o Type) bool { return t.Name == o.Name && t.Dims == o.Dims }

// Param is a function parameter or a struct field declaration.
type Param struct {
	Name string
	Type Type
	Pos  token.Pos
}

// Chunk is the root of a parsed source file: its top-level statements plus
// any top-level function and struct declarations, which are themselves
// Stmt nodes (FuncDecl, StructDecl) that may appear interspersed with
// ordinary statements.
type Chunk struct {
	Name  string
	Stmts []Stmt
	EOF   token.Pos
}

func (c *Chunk) Span() token.Pos {
	if len(c.Stmts) > 0 {
		return c.Stmts[0].Span()
	}
	return c.EOF
}

func (c *Chunk) Walk(v Visitor) {
	for _, s := range c.Stmts {
		if v.Visit(s) {
			s.Walk(v)
		}
	}
}

// Visitor is implemented by callers that want to walk the tree. Visit is
// called for each node; if it returns true, the node's children are
// visited too.
type Visitor interface {
	Visit(n Node) bool
}
