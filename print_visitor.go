/*
File    : rascal-compiler/print_visitor.go
Author  : Sergio Cezar
*/
package main

import (
	"bytes"
	"fmt"

	"github.com/SergioCezar/rascal-compiler/parser"
	"github.com/SergioCezar/rascal-compiler/scope"
)

// INDENT_SIZE is the number of spaces added per tree depth level
const INDENT_SIZE = 4

// PrintingVisitor renders the annotated AST as an indented tree, one
// node per line, including the (level, offset) or label information the
// semantic analyzer bound to each node. It backs the -pp flag.
type PrintingVisitor struct {
	Indent int
	Buf    bytes.Buffer
}

// indent writes the current indentation prefix
func (p *PrintingVisitor) indent() {
	for i := 0; i < p.Indent; i++ {
		p.Buf.WriteString(" ")
	}
}

// line writes one indented line describing a node
func (p *PrintingVisitor) line(format string, args ...interface{}) {
	p.indent()
	p.Buf.WriteString(fmt.Sprintf(format, args...))
	p.Buf.WriteString("\n")
}

// nested runs fn with the indentation one level deeper
func (p *PrintingVisitor) nested(fn func()) {
	p.Indent += INDENT_SIZE
	fn()
	p.Indent -= INDENT_SIZE
}

// addressOf formats the resolved address of a bound node
func addressOf(entry *scope.SymbolEntry) string {
	if entry == nil {
		return ""
	}
	return fmt.Sprintf(" (level %d, offset %d)", entry.Level, entry.Offset)
}

// String returns the rendered tree.
func (p *PrintingVisitor) String() string {
	return p.Buf.String()
}

// VisitProgramNode prints the program heading and descends.
func (p *PrintingVisitor) VisitProgramNode(node *parser.ProgramNode) {
	p.line("Program [%s]", node.Name)
	p.nested(func() {
		node.Block.Accept(p)
	})
}

// VisitBlockNode prints the block's variable sections, then its
// subroutines, then its compound body; interleaved source sections are
// not shown in their source order.
func (p *PrintingVisitor) VisitBlockNode(node *parser.BlockNode) {
	p.line("Block")
	p.nested(func() {
		for _, decl := range node.VarDeclarations {
			decl.Accept(p)
		}
		for _, sub := range node.Subroutines {
			sub.Accept(p)
		}
		node.Compound.Accept(p)
	})
}

// VisitVarDeclarationNode prints one declaration line with each
// declarator's resolved address.
func (p *PrintingVisitor) VisitVarDeclarationNode(node *parser.VarDeclarationNode) {
	p.line("VarDeclaration [%s]", node.VarType.Name)
	p.nested(func() {
		for _, ident := range node.Identifiers {
			p.line("Var [%s]%s", ident.Name, addressOf(ident.Entry))
		}
	})
}

// VisitTypeNode prints the type name.
func (p *PrintingVisitor) VisitTypeNode(node *parser.TypeNode) {
	p.line("Type [%s]", node.Name)
}

// VisitProcedureDeclarationNode prints the heading, parameters and body.
func (p *PrintingVisitor) VisitProcedureDeclarationNode(node *parser.ProcedureDeclarationNode) {
	if node.Entry != nil {
		p.line("Procedure [%s] (label %s, level %d)", node.Name, node.Entry.Label, node.Entry.Level)
	} else {
		p.line("Procedure [%s]", node.Name)
	}
	p.nested(func() {
		for _, param := range node.Params {
			param.Accept(p)
		}
		node.Block.Accept(p)
	})
}

// VisitFunctionDeclarationNode prints the heading, parameters and body.
func (p *PrintingVisitor) VisitFunctionDeclarationNode(node *parser.FunctionDeclarationNode) {
	if node.Entry != nil {
		p.line("Function [%s : %s] (label %s, level %d)", node.Name, node.ReturnType.Name, node.Entry.Label, node.Entry.Level)
	} else {
		p.line("Function [%s : %s]", node.Name, node.ReturnType.Name)
	}
	p.nested(func() {
		for _, param := range node.Params {
			param.Accept(p)
		}
		node.Block.Accept(p)
	})
}

// VisitCompoundStatementNode prints the statement sequence.
func (p *PrintingVisitor) VisitCompoundStatementNode(node *parser.CompoundStatementNode) {
	p.line("Compound")
	p.nested(func() {
		for _, stmt := range node.Statements {
			stmt.Accept(p)
		}
	})
}

// VisitAssignmentStatementNode prints the target and the expression.
func (p *PrintingVisitor) VisitAssignmentStatementNode(node *parser.AssignmentStatementNode) {
	p.line("Assign [%s]%s", node.Target.Name, addressOf(node.Target.Entry))
	p.nested(func() {
		node.Expr.Accept(p)
	})
}

// VisitIfStatementNode prints the condition and both branches.
func (p *PrintingVisitor) VisitIfStatementNode(node *parser.IfStatementNode) {
	p.line("If")
	p.nested(func() {
		node.Condition.Accept(p)
		if node.Then != nil {
			node.Then.Accept(p)
		}
		if node.Else != nil {
			node.Else.Accept(p)
		}
	})
}

// VisitWhileStatementNode prints the condition and the body.
func (p *PrintingVisitor) VisitWhileStatementNode(node *parser.WhileStatementNode) {
	p.line("While")
	p.nested(func() {
		node.Condition.Accept(p)
		if node.Body != nil {
			node.Body.Accept(p)
		}
	})
}

// VisitProcedureCallStatementNode prints the callee and the arguments.
func (p *PrintingVisitor) VisitProcedureCallStatementNode(node *parser.ProcedureCallStatementNode) {
	if node.Entry != nil {
		p.line("ProcedureCall [%s] (label %s)", node.Name, node.Entry.Label)
	} else {
		p.line("ProcedureCall [%s]", node.Name)
	}
	p.nested(func() {
		for _, arg := range node.Arguments {
			arg.Accept(p)
		}
	})
}

// VisitReadStatementNode prints each read target.
func (p *PrintingVisitor) VisitReadStatementNode(node *parser.ReadStatementNode) {
	p.line("Read")
	p.nested(func() {
		for _, v := range node.Variables {
			p.line("Var [%s]%s", v.Name, addressOf(v.Entry))
		}
	})
}

// VisitWriteStatementNode prints each operand.
func (p *PrintingVisitor) VisitWriteStatementNode(node *parser.WriteStatementNode) {
	p.line("Write")
	p.nested(func() {
		for _, expr := range node.Expressions {
			expr.Accept(p)
		}
	})
}

// VisitBinaryExpressionNode prints the operator and both operands.
func (p *PrintingVisitor) VisitBinaryExpressionNode(node *parser.BinaryExpressionNode) {
	p.line("BinaryOp [%s]", node.Operation.Literal)
	p.nested(func() {
		node.Left.Accept(p)
		node.Right.Accept(p)
	})
}

// VisitUnaryExpressionNode prints the operator and the operand.
func (p *PrintingVisitor) VisitUnaryExpressionNode(node *parser.UnaryExpressionNode) {
	p.line("UnaryOp [%s]", node.Operation.Literal)
	p.nested(func() {
		node.Operand.Accept(p)
	})
}

// VisitVarExpressionNode prints the variable and its resolved address.
func (p *PrintingVisitor) VisitVarExpressionNode(node *parser.VarExpressionNode) {
	p.line("Var [%s]%s", node.Name, addressOf(node.Entry))
}

// VisitNumberLiteralExpressionNode prints the literal value.
func (p *PrintingVisitor) VisitNumberLiteralExpressionNode(node *parser.NumberLiteralExpressionNode) {
	p.line("Number [%d]", node.Value)
}

// VisitBooleanLiteralExpressionNode prints the literal value.
func (p *PrintingVisitor) VisitBooleanLiteralExpressionNode(node *parser.BooleanLiteralExpressionNode) {
	p.line("Boolean [%t]", node.Value)
}

// VisitCallExpressionNode prints the callee and the arguments.
func (p *PrintingVisitor) VisitCallExpressionNode(node *parser.CallExpressionNode) {
	if node.Entry != nil {
		p.line("FunctionCall [%s] (label %s)", node.Name, node.Entry.Label)
	} else {
		p.line("FunctionCall [%s]", node.Name)
	}
	p.nested(func() {
		for _, arg := range node.Arguments {
			arg.Accept(p)
		}
	})
}
