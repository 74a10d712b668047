package ast

import "github.com/mna/ilex/lang/token"

func (*IntLit) exprNode()        {}
func (*UintLit) exprNode()       {}
func (*FloatLit) exprNode()      {}
func (*StringLit) exprNode()     {}
func (*BoolLit) exprNode()       {}
func (*NullLit) exprNode()       {}
func (*Ident) exprNode()         {}
func (*Self) exprNode()          {}
func (*Assign) exprNode()        {}
func (*CompoundAssign) exprNode() {}
func (*Unary) exprNode()         {}
func (*Binary) exprNode()        {}
func (*Logical) exprNode()       {}
func (*Call) exprNode()          {}
func (*MethodCall) exprNode()    {}
func (*ArrayLit) exprNode()      {}
func (*Index) exprNode()         {}
func (*IndexAssign) exprNode()   {}
func (*Field) exprNode()         {}
func (*FieldAssign) exprNode()   {}
func (*Cast) exprNode()          {}

// IdentKind classifies how the analyser resolved an Ident.
type IdentKind uint8

const (
	// IdentUnresolved means the analyser has not (yet, or could not) resolve
	// this identifier.
	IdentUnresolved IdentKind = iota
	// IdentLocal means Slot is a valid local-variable slot index.
	IdentLocal
	// IdentFunc means the identifier names a user-defined function.
	IdentFunc
	// IdentNative means the identifier names a native function.
	IdentNative
	// IdentStruct means the identifier names a struct (used in call position
	// for AllocInstance).
	IdentStruct
)

type (
	IntLit    struct {
		Pos   token.Pos
		Value int64
	}
	UintLit struct {
		Pos   token.Pos
		Value uint64
	}
	FloatLit struct {
		Pos   token.Pos
		Value float64
	}
	StringLit struct {
		Pos   token.Pos
		Value string
	}
	BoolLit struct {
		Pos   token.Pos
		Value bool
	}
	NullLit struct{ Pos token.Pos }

	// Ident is a bare identifier reference. After analysis, Kind and Slot (or
	// Name, unchanged) describe its resolution.
	Ident struct {
		Pos  token.Pos
		Name string

		Kind IdentKind
		Slot int // valid iff Kind == IdentLocal
		Type Type
	}

	// Self is the `self` receiver reference inside a method body.
	Self struct {
		Pos  token.Pos
		Type Type

		Slot int // set by the analyser
	}

	// Assign is `name = value`.
	Assign struct {
		Pos   token.Pos
		Name  string
		Value Expr

		Slot int // set by the analyser
	}

	// CompoundAssign is `name op= value` for op in {+ - * /}.
	CompoundAssign struct {
		Pos   token.Pos
		Name  string
		Op    token.Token // the underlying binary op, e.g. PLUS for PLUSEQ
		Value Expr

		Slot int // set by the analyser
	}

	// Unary is a prefix `-x` or `!x`.
	Unary struct {
		Pos token.Pos
		Op  token.Token
		X   Expr
	}

	// Binary is an arithmetic or comparison operator application.
	Binary struct {
		Pos token.Pos
		Op  token.Token
		X, Y Expr
	}

	// Logical is `x and y` / `x or y`, kept distinct from Binary because
	// the emitter lowers it with short-circuiting control flow instead of a
	// single opcode.
	Logical struct {
		Pos  token.Pos
		Op   token.Token // AND or OR
		X, Y Expr
	}

	// Call is a direct call `name(args...)`, where name is resolved by the
	// analyser to a user function, a native function, or (when name matches
	// a struct) an instance allocation.
	Call struct {
		Pos    token.Pos
		Callee string
		Args   []Expr

		Kind IdentKind // IdentFunc, IdentNative, or IdentStruct
	}

	// MethodCall is `recv.method(args...)`, statically dispatched by the
	// analyser to (struct name, method index).
	MethodCall struct {
		Pos    token.Pos
		Recv   Expr
		Method string
		Args   []Expr

		StructName  string
		MethodIndex int
	}

	// ArrayLit is `[e1, e2, ...]`.
	ArrayLit struct {
		Pos   token.Pos
		Elems []Expr

		ElemType Type // set by the analyser
	}

	// Index is `recv[idx]`.
	Index struct {
		Pos  token.Pos
		Recv Expr
		Idx  Expr
	}

	// IndexAssign is `recv[idx] = value`.
	IndexAssign struct {
		Pos   token.Pos
		Recv  Expr
		Idx   Expr
		Value Expr
	}

	// Field is `recv.name` (struct field read).
	Field struct {
		Pos  token.Pos
		Recv Expr
		Name string

		FieldIndex int // set by the analyser
		Type       Type
	}

	// FieldAssign is `recv.name = value`.
	FieldAssign struct {
		Pos   token.Pos
		Recv  Expr
		Name  string
		Value Expr

		FieldIndex int // set by the analyser
	}

	// Cast is `x as Type`.
	Cast struct {
		Pos token.Pos
		X   Expr
		To  Type
	}
)

func (n *IntLit) Span() token.Pos        { return n.Pos }
func (n *UintLit) Span() token.Pos       { return n.Pos }
func (n *FloatLit) Span() token.Pos      { return n.Pos }
func (n *StringLit) Span() token.Pos     { return n.Pos }
func (n *BoolLit) Span() token.Pos       { return n.Pos }
func (n *NullLit) Span() token.Pos       { return n.Pos }
func (n *Ident) Span() token.Pos         { return n.Pos }
func (n *Self) Span() token.Pos          { return n.Pos }
func (n *Assign) Span() token.Pos        { return n.Pos }
func (n *CompoundAssign) Span() token.Pos { return n.Pos }
func (n *Unary) Span() token.Pos         { return n.Pos }
func (n *Binary) Span() token.Pos        { return n.Pos }
func (n *Logical) Span() token.Pos       { return n.Pos }
func (n *Call) Span() token.Pos          { return n.Pos }
func (n *MethodCall) Span() token.Pos    { return n.Pos }
func (n *ArrayLit) Span() token.Pos      { return n.Pos }
func (n *Index) Span() token.Pos         { return n.Pos }
func (n *IndexAssign) Span() token.Pos   { return n.Pos }
func (n *Field) Span() token.Pos         { return n.Pos }
func (n *FieldAssign) Span() token.Pos   { return n.Pos }
func (n *Cast) Span() token.Pos          { return n.Pos }

func (n *IntLit) Walk(Visitor)    {}
func (n *UintLit) Walk(Visitor)   {}
func (n *FloatLit) Walk(Visitor)  {}
func (n *StringLit) Walk(Visitor) {}
func (n *BoolLit) Walk(Visitor)   {}
func (n *NullLit) Walk(Visitor)   {}
func (n *Ident) Walk(Visitor)     {}
func (n *Self) Walk(Visitor)      {}

func (n *Assign) Walk(v Visitor) {
	if v.Visit(n.Value) {
		n.Value.Walk(v)
	}
}

func (n *CompoundAssign) Walk(v Visitor) {
	if v.Visit(n.Value) {
		n.Value.Walk(v)
	}
}

func (n *Unary) Walk(v Visitor) {
	if v.Visit(n.X) {
		n.X.Walk(v)
	}
}

func (n *Binary) Walk(v Visitor) {
	if v.Visit(n.X) {
		n.X.Walk(v)
	}
	if v.Visit(n.Y) {
		n.Y.Walk(v)
	}
}

func (n *Logical) Walk(v Visitor) {
	if v.Visit(n.X) {
		n.X.Walk(v)
	}
	if v.Visit(n.Y) {
		n.Y.Walk(v)
	}
}

func (n *Call) Walk(v Visitor) {
	for _, a := range n.Args {
		if v.Visit(a) {
			a.Walk(v)
		}
	}
}

func (n *MethodCall) Walk(v Visitor) {
	if v.Visit(n.Recv) {
		n.Recv.Walk(v)
	}
	for _, a := range n.Args {
		if v.Visit(a) {
			a.Walk(v)
		}
	}
}

func (n *ArrayLit) Walk(v Visitor) {
	for _, e := range n.Elems {
		if v.Visit(e) {
			e.Walk(v)
		}
	}
}

func (n *Index) Walk(v Visitor) {
	if v.Visit(n.Recv) {
		n.Recv.Walk(v)
	}
	if v.Visit(n.Idx) {
		n.Idx.Walk(v)
	}
}

func (n *IndexAssign) Walk(v Visitor) {
	if v.Visit(n.Recv) {
		n.Recv.Walk(v)
	}
	if v.Visit(n.Idx) {
		n.Idx.Walk(v)
	}
	if v.Visit(n.Value) {
		n.Value.Walk(v)
	}
}

func (n *Field) Walk(v Visitor) {
	if v.Visit(n.Recv) {
		n.Recv.Walk(v)
	}
}

func (n *FieldAssign) Walk(v Visitor) {
	if v.Visit(n.Recv) {
		n.Recv.Walk(v)
	}
	if v.Visit(n.Value) {
		n.Value.Walk(v)
	}
}

func (n *Cast) Walk(v Visitor) {
	if v.Visit(n.X) {
		n.X.Walk(v)
	}
}
