/*
File    : rascal-compiler/parser/node.go
Author  : Sergio Cezar
*/
package parser

import (
	"fmt"
	"strings"

	"github.com/SergioCezar/rascal-compiler/lexer"
	"github.com/SergioCezar/rascal-compiler/scope"
)

// NodeVisitor: implements the Visitor design pattern for traversing the Abstract Syntax Tree (AST)
// Each Visit method processes a specific node type, enabling operations like semantic
// analysis, code generation, or printing. Nodes are passed by pointer so visitors can
// annotate them (the semantic analyzer stamps Entry fields in place).
type NodeVisitor interface {
	// Program structure visitors
	VisitProgramNode(node *ProgramNode)                         // Program heading + main block
	VisitBlockNode(node *BlockNode)                             // Declarations + compound body
	VisitVarDeclarationNode(node *VarDeclarationNode)           // Variable declarations: x, y : integer
	VisitTypeNode(node *TypeNode)                               // Type names: integer, boolean
	VisitProcedureDeclarationNode(node *ProcedureDeclarationNode) // procedure p(...); block
	VisitFunctionDeclarationNode(node *FunctionDeclarationNode)   // function f(...) : type; block

	// Statement visitors
	VisitCompoundStatementNode(node *CompoundStatementNode)           // begin ... end
	VisitAssignmentStatementNode(node *AssignmentStatementNode)       // x := expr
	VisitIfStatementNode(node *IfStatementNode)                       // if cond then stmt else stmt
	VisitWhileStatementNode(node *WhileStatementNode)                 // while cond do stmt
	VisitProcedureCallStatementNode(node *ProcedureCallStatementNode) // p(args)
	VisitReadStatementNode(node *ReadStatementNode)                   // read(x, y)
	VisitWriteStatementNode(node *WriteStatementNode)                 // write(expr, expr)

	// Expression visitors
	VisitBinaryExpressionNode(node *BinaryExpressionNode)               // +, -, *, div, and, or, relations
	VisitUnaryExpressionNode(node *UnaryExpressionNode)                 // not expr, -expr
	VisitVarExpressionNode(node *VarExpressionNode)                     // Variable use: x
	VisitNumberLiteralExpressionNode(node *NumberLiteralExpressionNode) // Integer literals: 42, 0
	VisitBooleanLiteralExpressionNode(node *BooleanLiteralExpressionNode) // true, false
	VisitCallExpressionNode(node *CallExpressionNode)                   // Function calls: f(args)
}

// Node: base interface for all nodes of the AST
// Literal(): returns the string representation of the node
// Accept(): accepts a visitor
type Node interface {
	Literal() string
	Accept(visitor NodeVisitor)
}

// StatementNode: base interface for all statement nodes
// Node: every statement node is a node
// Statement(): marker distinguishing statements from other nodes
type StatementNode interface {
	Node
	Statement()
}

// ExpressionNode: base interface for all expression nodes
// Node: every expression node is a node
// Expression(): marker distinguishing expressions from other nodes
type ExpressionNode interface {
	Node
	Expression()
}

// SubroutineNode: base interface for procedure and function declarations,
// so a Block can hold them in one ordered list.
type SubroutineNode interface {
	Node
	Subroutine()
}

// ProgramNode: the root of the AST (program heading + main block)
// Entry is bound by the semantic analyzer to the program's own symbol.
type ProgramNode struct {
	Name  string             // Program name from the heading
	Block *BlockNode         // The main block
	Entry *scope.SymbolEntry // Bound during semantic analysis
}

// Literal returns the program heading as written in source.
func (node *ProgramNode) Literal() string {
	return fmt.Sprintf("program %s", node.Name)
}

// Accept dispatches the visitor to this node.
func (node *ProgramNode) Accept(visitor NodeVisitor) {
	visitor.VisitProgramNode(node)
}

// BlockNode: one scope's worth of declarations plus its compound body.
// Var declarations and subroutine declarations keep their source order
// inside their own lists; the grammar lets the sections interleave.
type BlockNode struct {
	VarDeclarations []*VarDeclarationNode // Variable sections, in source order
	Subroutines     []SubroutineNode      // Procedure/function declarations, in source order
	Compound        *CompoundStatementNode // The begin...end body
}

func (node *BlockNode) Literal() string {
	return "block"
}

func (node *BlockNode) Accept(visitor NodeVisitor) {
	visitor.VisitBlockNode(node)
}

// VarDeclarationNode: one declaration line, e.g. `x, y : integer`.
// Each identifier site is its own VarExpressionNode and receives its own
// symbol entry during semantic analysis.
type VarDeclarationNode struct {
	Identifiers []*VarExpressionNode // Declarator sites, left to right
	VarType     *TypeNode            // The declared type
}

func (node *VarDeclarationNode) Literal() string {
	names := make([]string, len(node.Identifiers))
	for i, ident := range node.Identifiers {
		names[i] = ident.Name
	}
	return fmt.Sprintf("%s : %s", strings.Join(names, ", "), node.VarType.Name)
}

func (node *VarDeclarationNode) Accept(visitor NodeVisitor) {
	visitor.VisitVarDeclarationNode(node)
}

// TypeNode: a primitive type name (integer or boolean).
type TypeNode struct {
	Name scope.RascalType // integer or boolean
}

func (node *TypeNode) Literal() string {
	return string(node.Name)
}

func (node *TypeNode) Accept(visitor NodeVisitor) {
	visitor.VisitTypeNode(node)
}

// ProcedureDeclarationNode: `procedure name(params); block`.
type ProcedureDeclarationNode struct {
	Name   string                // Procedure name
	Params []*VarDeclarationNode // Parameter sections, left to right
	Block  *BlockNode            // Procedure body
	Entry  *scope.SymbolEntry    // Bound during semantic analysis
}

func (node *ProcedureDeclarationNode) Literal() string {
	return fmt.Sprintf("procedure %s", node.Name)
}

func (node *ProcedureDeclarationNode) Accept(visitor NodeVisitor) {
	visitor.VisitProcedureDeclarationNode(node)
}

// Subroutine marks this node as a subroutine declaration.
func (node *ProcedureDeclarationNode) Subroutine() {}

// FunctionDeclarationNode: `function name(params) : type; block`.
type FunctionDeclarationNode struct {
	Name       string                // Function name
	Params     []*VarDeclarationNode // Parameter sections, left to right
	ReturnType *TypeNode             // Declared return type
	Block      *BlockNode            // Function body
	Entry      *scope.SymbolEntry    // Bound during semantic analysis
}

func (node *FunctionDeclarationNode) Literal() string {
	return fmt.Sprintf("function %s : %s", node.Name, node.ReturnType.Name)
}

func (node *FunctionDeclarationNode) Accept(visitor NodeVisitor) {
	visitor.VisitFunctionDeclarationNode(node)
}

// Subroutine marks this node as a subroutine declaration.
func (node *FunctionDeclarationNode) Subroutine() {}

// CompoundStatementNode: `begin statement; ...; statement end`.
// Empty statements allowed by the grammar are not stored.
type CompoundStatementNode struct {
	Statements []StatementNode // Statements in source order
}

func (node *CompoundStatementNode) Literal() string {
	return "begin...end"
}

func (node *CompoundStatementNode) Accept(visitor NodeVisitor) {
	visitor.VisitCompoundStatementNode(node)
}

// Statement marks this node as a statement.
func (node *CompoundStatementNode) Statement() {}

// AssignmentStatementNode: `target := expr`.
// When the target names the enclosing function, the semantic analyzer
// binds the target to the function's hidden return slot.
type AssignmentStatementNode struct {
	Target *VarExpressionNode // Assignment target
	Expr   ExpressionNode     // Right-hand side
}

func (node *AssignmentStatementNode) Literal() string {
	return fmt.Sprintf("%s := %s", node.Target.Name, node.Expr.Literal())
}

func (node *AssignmentStatementNode) Accept(visitor NodeVisitor) {
	visitor.VisitAssignmentStatementNode(node)
}

func (node *AssignmentStatementNode) Statement() {}

// IfStatementNode: `if cond then stmt` with an optional `else stmt`.
// Then and Else may be nil, since the grammar allows empty statements.
type IfStatementNode struct {
	Condition ExpressionNode // Must type to boolean
	Then      StatementNode  // Then branch (may be nil)
	Else      StatementNode  // Else branch (nil when absent)
}

func (node *IfStatementNode) Literal() string {
	return fmt.Sprintf("if %s", node.Condition.Literal())
}

func (node *IfStatementNode) Accept(visitor NodeVisitor) {
	visitor.VisitIfStatementNode(node)
}

func (node *IfStatementNode) Statement() {}

// WhileStatementNode: `while cond do stmt`.
type WhileStatementNode struct {
	Condition ExpressionNode // Must type to boolean
	Body      StatementNode  // Loop body (may be nil)
}

func (node *WhileStatementNode) Literal() string {
	return fmt.Sprintf("while %s", node.Condition.Literal())
}

func (node *WhileStatementNode) Accept(visitor NodeVisitor) {
	visitor.VisitWhileStatementNode(node)
}

func (node *WhileStatementNode) Statement() {}

// ProcedureCallStatementNode: `name(args)` in statement position.
// The grammar does not distinguish procedure from function calls; the
// semantic analyzer validates the category.
type ProcedureCallStatementNode struct {
	Token     lexer.Token        // The callee identifier token
	Name      string             // Callee name
	Arguments []ExpressionNode   // Arguments in source order
	Entry     *scope.SymbolEntry // Bound during semantic analysis
}

func (node *ProcedureCallStatementNode) Literal() string {
	return fmt.Sprintf("%s(...)", node.Name)
}

func (node *ProcedureCallStatementNode) Accept(visitor NodeVisitor) {
	visitor.VisitProcedureCallStatementNode(node)
}

func (node *ProcedureCallStatementNode) Statement() {}

// ReadStatementNode: `read(x, y)`.
type ReadStatementNode struct {
	Variables []*VarExpressionNode // Targets, left to right
}

func (node *ReadStatementNode) Literal() string {
	return "read(...)"
}

func (node *ReadStatementNode) Accept(visitor NodeVisitor) {
	visitor.VisitReadStatementNode(node)
}

func (node *ReadStatementNode) Statement() {}

// WriteStatementNode: `write(expr, expr)`.
type WriteStatementNode struct {
	Expressions []ExpressionNode // Operands, left to right
}

func (node *WriteStatementNode) Literal() string {
	return "write(...)"
}

func (node *WriteStatementNode) Accept(visitor NodeVisitor) {
	visitor.VisitWriteStatementNode(node)
}

func (node *WriteStatementNode) Statement() {}

// BinaryExpressionNode: `left op right` for every binary operator.
// Operation keeps the operator token, whose Literal is the operator
// spelling used by the type rules and the code generator.
type BinaryExpressionNode struct {
	Operation lexer.Token    // Operator token (+, -, *, div, and, or, =, <>, <, <=, >, >=)
	Left      ExpressionNode // Left operand
	Right     ExpressionNode // Right operand
}

func (node *BinaryExpressionNode) Literal() string {
	return fmt.Sprintf("%s %s %s", node.Left.Literal(), node.Operation.Literal, node.Right.Literal())
}

func (node *BinaryExpressionNode) Accept(visitor NodeVisitor) {
	visitor.VisitBinaryExpressionNode(node)
}

func (node *BinaryExpressionNode) Expression() {}

// UnaryExpressionNode: `not operand` or `-operand`.
type UnaryExpressionNode struct {
	Operation lexer.Token    // Operator token (not or -)
	Operand   ExpressionNode // The operand
}

func (node *UnaryExpressionNode) Literal() string {
	return fmt.Sprintf("%s %s", node.Operation.Literal, node.Operand.Literal())
}

func (node *UnaryExpressionNode) Accept(visitor NodeVisitor) {
	visitor.VisitUnaryExpressionNode(node)
}

func (node *UnaryExpressionNode) Expression() {}

// VarExpressionNode: a variable reference, in expression position, as an
// assignment target, as a read target, or as a declarator site inside a
// VarDeclarationNode.
type VarExpressionNode struct {
	Token lexer.Token        // The identifier token
	Name  string             // Variable name
	Entry *scope.SymbolEntry // Bound during semantic analysis
}

func (node *VarExpressionNode) Literal() string {
	return node.Name
}

func (node *VarExpressionNode) Accept(visitor NodeVisitor) {
	visitor.VisitVarExpressionNode(node)
}

func (node *VarExpressionNode) Expression() {}

// NumberLiteralExpressionNode: an integer literal.
type NumberLiteralExpressionNode struct {
	Token lexer.Token // The literal token
	Value int         // Parsed integer value
}

func (node *NumberLiteralExpressionNode) Literal() string {
	return node.Token.Literal
}

func (node *NumberLiteralExpressionNode) Accept(visitor NodeVisitor) {
	visitor.VisitNumberLiteralExpressionNode(node)
}

func (node *NumberLiteralExpressionNode) Expression() {}

// BooleanLiteralExpressionNode: `true` or `false`.
type BooleanLiteralExpressionNode struct {
	Token lexer.Token // The literal token
	Value bool        // Parsed boolean value
}

func (node *BooleanLiteralExpressionNode) Literal() string {
	return node.Token.Literal
}

func (node *BooleanLiteralExpressionNode) Accept(visitor NodeVisitor) {
	visitor.VisitBooleanLiteralExpressionNode(node)
}

func (node *BooleanLiteralExpressionNode) Expression() {}

// CallExpressionNode: `name(args)` in expression position (function call).
type CallExpressionNode struct {
	Token     lexer.Token        // The callee identifier token
	Name      string             // Callee name
	Arguments []ExpressionNode   // Arguments in source order
	Entry     *scope.SymbolEntry // Bound during semantic analysis
}

func (node *CallExpressionNode) Literal() string {
	return fmt.Sprintf("%s(...)", node.Name)
}

func (node *CallExpressionNode) Accept(visitor NodeVisitor) {
	visitor.VisitCallExpressionNode(node)
}

func (node *CallExpressionNode) Expression() {}
