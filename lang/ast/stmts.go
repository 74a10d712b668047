package ast

import "github.com/mna/ilex/lang/token"

func (*VarDecl) stmtNode()    {}
func (*Block) stmtNode()      {}
func (*If) stmtNode()         {}
func (*While) stmtNode()      {}
func (*For) stmtNode()        {}
func (*Break) stmtNode()      {}
func (*Continue) stmtNode()   {}
func (*Return) stmtNode()     {}
func (*Print) stmtNode()      {}
func (*ExprStmt) stmtNode()   {}
func (*FuncDecl) stmtNode()   {}
func (*StructDecl) stmtNode() {}

type (
	// VarDecl is a `var name[: Type] = init;` declaration.
	VarDecl struct {
		Pos   token.Pos
		Name  string
		Type  Type // zero Type{} if not explicitly annotated
		Init  Expr

		// Set by the analyser: the local slot assigned to this variable.
		Slot int
	}

	// Block is a `{ stmt... }` sequence with its own lexical scope.
	Block struct {
		Pos   token.Pos
		Stmts []Stmt
	}

	// If is an `if cond { then } [else elseStmt]` statement. ElseStmt may be
	// nil, a *Block, or another *If (for `else if`).
	If struct {
		Pos      token.Pos
		Cond     Expr
		Then     *Block
		ElseStmt Stmt
	}

	// While is a `while cond { body }` loop.
	While struct {
		Pos  token.Pos
		Cond Expr
		Body *Block
	}

	// For is a `for name in lo to hi { body }` range loop.
	For struct {
		Pos  token.Pos
		Name string
		Lo   Expr
		Hi   Expr
		Body *Block

		// Set by the analyser: the local slot assigned to the loop variable.
		Slot int
	}

	// Break is a `break;` statement.
	Break struct{ Pos token.Pos }

	// Continue is a `continue;` statement.
	Continue struct{ Pos token.Pos }

	// Return is a `return [value];` statement. Value may be nil.
	Return struct {
		Pos   token.Pos
		Value Expr
	}

	// Print is a `pr value;` statement.
	Print struct {
		Pos   token.Pos
		Value Expr
	}

	// ExprStmt is an expression used as a statement, e.g. a bare call or
	// assignment, discarding its result.
	ExprStmt struct {
		Pos token.Pos
		X   Expr
	}

	// FuncDecl is a `fn name(params) [: ReturnType] { body }` declaration,
	// either at the top level or as a struct method (IsMethod true, in which
	// case the first declared parameter is implicitly `self`).
	FuncDecl struct {
		Pos        token.Pos
		Name       string
		Params     []Param
		ReturnType Type // zero Type{} means no declared return type (implicit null)
		Body       *Block
		IsMethod   bool
		StructName string // set when IsMethod is true

		// Set by the analyser: index of this method within its struct's method
		// table, or unused for top-level functions.
		MethodIndex int
	}

	// StructDecl is a `struct Name { field: Type; ... method(self) {...} }`
	// declaration.
	StructDecl struct {
		Pos     token.Pos
		Name    string
		Fields  []Param
		Methods []*FuncDecl
	}
)

func (n *VarDecl) Span() token.Pos    { return n.Pos }
func (n *Block) Span() token.Pos      { return n.Pos }
func (n *If) Span() token.Pos         { return n.Pos }
func (n *While) Span() token.Pos      { return n.Pos }
func (n *For) Span() token.Pos        { return n.Pos }
func (n *Break) Span() token.Pos      { return n.Pos }
func (n *Continue) Span() token.Pos   { return n.Pos }
func (n *Return) Span() token.Pos     { return n.Pos }
func (n *Print) Span() token.Pos      { return n.Pos }
func (n *ExprStmt) Span() token.Pos   { return n.Pos }
func (n *FuncDecl) Span() token.Pos   { return n.Pos }
func (n *StructDecl) Span() token.Pos { return n.Pos }

func (n *VarDecl) Walk(v Visitor) {
	if n.Init != nil && v.Visit(n.Init) {
		n.Init.Walk(v)
	}
}

func (n *Block) Walk(v Visitor) {
	for _, s := range n.Stmts {
		if v.Visit(s) {
			s.Walk(v)
		}
	}
}

func (n *If) Walk(v Visitor) {
	if v.Visit(n.Cond) {
		n.Cond.Walk(v)
	}
	if v.Visit(n.Then) {
		n.Then.Walk(v)
	}
	if n.ElseStmt != nil && v.Visit(n.ElseStmt) {
		n.ElseStmt.Walk(v)
	}
}

func (n *While) Walk(v Visitor) {
	if v.Visit(n.Cond) {
		n.Cond.Walk(v)
	}
	if v.Visit(n.Body) {
		n.Body.Walk(v)
	}
}

func (n *For) Walk(v Visitor) {
	if v.Visit(n.Lo) {
		n.Lo.Walk(v)
	}
	if v.Visit(n.Hi) {
		n.Hi.Walk(v)
	}
	if v.Visit(n.Body) {
		n.Body.Walk(v)
	}
}

func (n *Break) Walk(Visitor)    {}
func (n *Continue) Walk(Visitor) {}

func (n *Return) Walk(v Visitor) {
	if n.Value != nil && v.Visit(n.Value) {
		n.Value.Walk(v)
	}
}

func (n *Print) Walk(v Visitor) {
	if v.Visit(n.Value) {
		n.Value.Walk(v)
	}
}

func (n *ExprStmt) Walk(v Visitor) {
	if v.Visit(n.X) {
		n.X.Walk(v)
	}
}

func (n *FuncDecl) Walk(v Visitor) {
	if v.Visit(n.Body) {
		n.Body.Walk(v)
	}
}

func (n *StructDecl) Walk(v Visitor) {
	for _, m := range n.Methods {
		if v.Visit(m) {
			m.Walk(v)
		}
	}
}
