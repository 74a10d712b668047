package ast

import (
	"fmt"
	"io"
	"strings"
)

// Printer renders a Chunk as an indented textual tree, in the spirit of the
// teacher project's own ast.Printer, for the CLI's diagnostic `parse` and
// `analyse` subcommands.
type Printer struct {
	Output io.Writer
}

// Print writes a textual dump of ch to p.Output.
func (p *Printer) Print(ch *Chunk) error {
	if _, err := fmt.Fprintf(p.Output, "Chunk %s\n", ch.Name); err != nil {
		return err
	}
	return p.printChildren(ch, 1)
}

func (p *Printer) printChildren(n Node, depth int) error {
	var err error
	v := WalkFunc(func(child Node) bool {
		if err != nil {
			return false
		}
		if _, werr := fmt.Fprintf(p.Output, "%s%s\n", strings.Repeat("  ", depth), describe(child)); werr != nil {
			err = werr
			return false
		}
		if cerr := p.printChildren(child, depth+1); cerr != nil {
			err = cerr
			return false
		}
		return false
	})
	n.Walk(v)
	return err
}

func describe(n Node) string {
	switch n := n.(type) {
	case *VarDecl:
		return fmt.Sprintf("VarDecl %s %s", n.Name, n.Type)
	case *Block:
		return "Block"
	case *If:
		return "If"
	case *While:
		return "While"
	case *For:
		return fmt.Sprintf("For %s", n.Name)
	case *Break:
		return "Break"
	case *Continue:
		return "Continue"
	case *Return:
		return "Return"
	case *Print:
		return "Print"
	case *ExprStmt:
		return "ExprStmt"
	case *FuncDecl:
		return fmt.Sprintf("FuncDecl %s", n.Name)
	case *StructDecl:
		return fmt.Sprintf("StructDecl %s", n.Name)
	case *IntLit:
		return fmt.Sprintf("IntLit %d", n.Value)
	case *UintLit:
		return fmt.Sprintf("UintLit %d", n.Value)
	case *FloatLit:
		return fmt.Sprintf("FloatLit %g", n.Value)
	case *StringLit:
		return fmt.Sprintf("StringLit %q", n.Value)
	case *BoolLit:
		return fmt.Sprintf("BoolLit %t", n.Value)
	case *NullLit:
		return "NullLit"
	case *Ident:
		return fmt.Sprintf("Ident %s", n.Name)
	case *Self:
		return "Self"
	case *Assign:
		return fmt.Sprintf("Assign %s", n.Name)
	case *CompoundAssign:
		return fmt.Sprintf("CompoundAssign %s %s", n.Name, n.Op)
	case *Unary:
		return fmt.Sprintf("Unary %s", n.Op)
	case *Binary:
		return fmt.Sprintf("Binary %s", n.Op)
	case *Logical:
		return fmt.Sprintf("Logical %s", n.Op)
	case *Call:
		return fmt.Sprintf("Call %s", n.Callee)
	case *MethodCall:
		return fmt.Sprintf("MethodCall %s", n.Method)
	case *ArrayLit:
		return "ArrayLit"
	case *Index:
		return "Index"
	case *IndexAssign:
		return "IndexAssign"
	case *Field:
		return fmt.Sprintf("Field %s", n.Name)
	case *FieldAssign:
		return fmt.Sprintf("FieldAssign %s", n.Name)
	case *Cast:
		return fmt.Sprintf("Cast %s", n.To)
	default:
		return fmt.Sprintf("%T", n)
	}
}
