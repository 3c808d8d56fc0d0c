package printer

import (
	"fmt"
	"io"
	"strings"

	"github.com/KimNorgaard/go-lox/internal/ast"
)

const (
	defaultIndent = 2
)

// Printer writes a Lox AST to an output stream in parenthesized prefix
// form, e.g. (* (- 123) (group 45.67)).
type Printer struct {
	w      io.Writer
	indent string
	depth  int
}

// New returns a new printer that writes to w. With a zero indent every
// node is written on one line. Otherwise operands that are themselves
// operations go on their own line, indented one level deeper.
func New(w io.Writer, indentSpaces *int) *Printer {
	spaces := defaultIndent
	if indentSpaces != nil {
		spaces = *indentSpaces
	}
	var indentStr string
	if spaces > 0 {
		indentStr = strings.Repeat(" ", spaces)
	}
	return &Printer{w: w, indent: indentStr}
}

// Print writes the representation of node to the writer.
func (p *Printer) Print(node ast.Node) error {
	return p.writeNode(node)
}

func (p *Printer) write(s string) error {
	_, err := io.WriteString(p.w, s)
	return err
}

func (p *Printer) writeIndent() error {
	for i := 0; i < p.depth; i++ {
		if err := p.write(p.indent); err != nil {
			return err
		}
	}
	return nil
}

func (p *Printer) writeNode(node ast.Node) error {
	switch n := node.(type) {
	case *ast.Program:
		for i, stmt := range n.Statements {
			if i > 0 {
				if err := p.write("\n"); err != nil {
					return err
				}
			}
			if err := p.writeNode(stmt); err != nil {
				return err
			}
		}
		return nil

	case *ast.ExpressionStatement:
		return p.writeForm(";", n.Expression)

	case *ast.PrintStatement:
		return p.writeForm("print", n.Expression)

	case *ast.VarStatement:
		if n.Initializer == nil {
			return p.write("(var " + n.Name.Lexeme + ")")
		}
		return p.writeForm("var "+n.Name.Lexeme+" =", n.Initializer)

	case *ast.Grouping:
		return p.writeForm("group", n.Expression)

	case *ast.Unary:
		return p.writeForm(n.Operator.Lexeme, n.Right)

	case *ast.Binary:
		return p.writeForm(n.Operator.Lexeme, n.Left, n.Right)

	case *ast.Literal, *ast.Variable:
		return p.write(n.String())

	default:
		return fmt.Errorf("lox: unsupported node type for printing: %T", n)
	}
}

func (p *Printer) writeForm(name string, operands ...ast.Expression) error {
	if err := p.write("(" + name); err != nil {
		return err
	}

	p.depth++
	for _, operand := range operands {
		if p.indent != "" && !isLeaf(operand) {
			if err := p.write("\n"); err != nil {
				return err
			}
			if err := p.writeIndent(); err != nil {
				return err
			}
		} else if err := p.write(" "); err != nil {
			return err
		}
		if err := p.writeNode(operand); err != nil {
			return err
		}
	}
	p.depth--

	return p.write(")")
}

func isLeaf(expr ast.Expression) bool {
	switch expr.(type) {
	case *ast.Literal, *ast.Variable:
		return true
	}
	return false
}
