/*
File    : rascal-compiler/semantic/analyzer.go
Author  : Sergio Cezar
*/

/*
Package semantic implements the semantic analysis pass of the compiler.

The Analyzer is a NodeVisitor that walks the AST once, top-down, and:
  - builds the nested symbol tables (one scope per subroutine body)
  - assigns activation-record offsets: locals take 0, 1, 2, ... in
    declaration order; parameters take the negative offsets of the MEPA
    calling convention; a function additionally gets a hidden return
    slot named @<funcname> just below its left-most parameter
  - assigns every procedure and function a program-unique code label
  - enforces the type rules and reports violations
  - annotates Var, call and declaration nodes with their resolved
    SymbolEntry for the code generator

The walk reports and continues: a violation never unwinds the walk, so
one pass can surface several diagnostics. The pipeline driver checks
HasErrors() before code generation.
*/
package semantic

import (
	"fmt"

	"github.com/SergioCezar/rascal-compiler/parser"
	"github.com/SergioCezar/rascal-compiler/scope"
)

// Parameters sit below three bookkeeping slots of the activation
// record, so the right-most parameter lives at offset -5 and the rest
// stack leftward from there.
const paramBaseOffset = -5

// Analyzer holds the state of one semantic analysis pass.
type Analyzer struct {
	Scope  *scope.SymbolTable // Currently active scope
	Errors []string           // Collected semantic diagnostics

	// Function return-slot tracking. currentFuncName is the name of the
	// innermost function body being visited ("" outside functions);
	// returnAssigned flips when its return slot receives a value. Both
	// are saved and restored around nested function declarations.
	currentFuncName string
	returnAssigned  bool

	// labelCounter numbers subroutine labels program-wide
	labelCounter int

	// lastType carries the type of the most recently visited expression
	// out of the visitor methods (the visitor interface has no return
	// values)
	lastType scope.RascalType
}

// NewAnalyzer creates an analyzer with a fresh outermost scope at
// level 0. Analyzers are single-use: one per compilation.
func NewAnalyzer() *Analyzer {
	return &Analyzer{
		Scope: scope.NewSymbolTable(nil, 0),
	}
}

// Analyze runs the semantic pass over the program AST, annotating nodes
// in place. Diagnostics accumulate in Errors.
func (an *Analyzer) Analyze(root *parser.ProgramNode) {
	if root == nil {
		return
	}
	root.Accept(an)
}

// HasErrors reports whether the pass produced any diagnostics.
func (an *Analyzer) HasErrors() bool {
	return len(an.Errors) > 0
}

// GetErrors returns the collected semantic diagnostics.
func (an *Analyzer) GetErrors() []string {
	return an.Errors
}

// error records a semantic diagnostic. The walk continues afterwards so
// a single pass can report several problems.
func (an *Analyzer) error(format string, args ...interface{}) {
	an.Errors = append(an.Errors, fmt.Sprintf("SEMANTIC: "+format, args...))
}

// typeOf visits an expression and returns the type it produced.
func (an *Analyzer) typeOf(expr parser.ExpressionNode) scope.RascalType {
	if expr == nil {
		return scope.NoType
	}
	an.lastType = scope.NoType
	expr.Accept(an)
	return an.lastType
}

// VisitProgramNode registers the program's own name in the outermost
// scope and descends into the main block.
func (an *Analyzer) VisitProgramNode(node *parser.ProgramNode) {
	entry, _ := an.Scope.Define(node.Name, scope.NoType, scope.ProgramCategory)
	node.Entry = entry
	node.Block.Accept(an)
}

// VisitBlockNode handles a block's declarations in the fixed order the
// language requires, regardless of how sections interleave in source:
//
//  1. variable declarations, so locals get offsets 0, 1, 2, ...
//  2. subroutine pre-declaration: name, category, return type, parameter
//     signature and a program-unique label go into the CURRENT scope,
//     with the entry's level overridden to the level of the subroutine's
//     own body; pre-declaring all siblings first lets any of them call
//     any other
//  3. subroutine bodies
//  4. the compound body of this block
func (an *Analyzer) VisitBlockNode(node *parser.BlockNode) {
	for _, decl := range node.VarDeclarations {
		decl.Accept(an)
	}

	for _, sub := range node.Subroutines {
		switch decl := sub.(type) {
		case *parser.ProcedureDeclarationNode:
			entry, ok := an.Scope.Define(decl.Name, scope.NoType, scope.ProcCategory)
			if !ok {
				an.error("redefinition of '%s'", decl.Name)
				continue
			}
			entry.Level = an.Scope.Level + 1
			entry.Params = parameterSignature(decl.Params)
			entry.Label = an.newSubroutineLabel(decl.Name)
			decl.Entry = entry
		case *parser.FunctionDeclarationNode:
			entry, ok := an.Scope.Define(decl.Name, decl.ReturnType.Name, scope.FuncCategory)
			if !ok {
				an.error("redefinition of '%s'", decl.Name)
				continue
			}
			entry.Level = an.Scope.Level + 1
			entry.Params = parameterSignature(decl.Params)
			entry.Label = an.newSubroutineLabel(decl.Name)
			decl.Entry = entry
		}
	}

	for _, sub := range node.Subroutines {
		sub.Accept(an)
	}

	node.Compound.Accept(an)
}

// VisitVarDeclarationNode defines each declarator site as a variable of
// the declared type, binding the site to its fresh entry.
func (an *Analyzer) VisitVarDeclarationNode(node *parser.VarDeclarationNode) {
	for _, ident := range node.Identifiers {
		entry, ok := an.Scope.Define(ident.Name, node.VarType.Name, scope.VarCategory)
		if !ok {
			an.error("variable '%s' already declared", ident.Name)
			continue
		}
		ident.Entry = entry
	}
}

// VisitTypeNode has nothing to do: types are leaves consumed by their
// owning declarations.
func (an *Analyzer) VisitTypeNode(node *parser.TypeNode) {}

// VisitProcedureDeclarationNode opens the procedure's own scope one
// level down, lays out the parameters, and visits the body.
func (an *Analyzer) VisitProcedureDeclarationNode(node *parser.ProcedureDeclarationNode) {
	parent := an.Scope
	an.Scope = scope.NewSymbolTable(parent, parent.Level+1)

	an.bindParameters(node.Params)
	node.Block.Accept(an)

	an.Scope = parent
}

// VisitFunctionDeclarationNode is the procedure case plus the hidden
// return slot: a variable named @<funcname> of the return type, placed
// immediately below the left-most parameter. The body must assign to
// the function's name at least once, which the assignment visitor
// records in returnAssigned; the flag nests across inner functions.
func (an *Analyzer) VisitFunctionDeclarationNode(node *parser.FunctionDeclarationNode) {
	parent := an.Scope
	prevFunc, prevAssigned := an.currentFuncName, an.returnAssigned
	an.currentFuncName = node.Name
	an.returnAssigned = false
	an.Scope = scope.NewSymbolTable(parent, parent.Level+1)

	total := an.bindParameters(node.Params)
	an.Scope.DefineAt("@"+node.Name, node.ReturnType.Name, scope.VarCategory, paramBaseOffset-total)

	node.Block.Accept(an)

	if !an.returnAssigned {
		an.error("function '%s' never assigns its return value", node.Name)
	}

	an.currentFuncName, an.returnAssigned = prevFunc, prevAssigned
	an.Scope = parent
}

// bindParameters flattens the parameter sections left-to-right and
// defines each site with its calling-convention offset: with T slots in
// total, parameter i (0-based) lives at -5-(T-1-i), so the right-most
// parameter sits at -5. Parameters never advance the scope's variable
// offset counter. Returns T.
func (an *Analyzer) bindParameters(params []*parser.VarDeclarationNode) int {
	type site struct {
		ident *parser.VarExpressionNode
		typ   scope.RascalType
	}
	sites := []site{}
	for _, decl := range params {
		for _, ident := range decl.Identifiers {
			sites = append(sites, site{ident: ident, typ: decl.VarType.Name})
		}
	}
	total := len(sites)
	for i, s := range sites {
		offset := paramBaseOffset - (total - 1 - i)
		entry, ok := an.Scope.DefineAt(s.ident.Name, s.typ, scope.ParamCategory, offset)
		if !ok {
			an.error("parameter '%s' already declared", s.ident.Name)
			continue
		}
		s.ident.Entry = entry
	}
	return total
}

// VisitCompoundStatementNode visits each statement in order.
func (an *Analyzer) VisitCompoundStatementNode(node *parser.CompoundStatementNode) {
	for _, stmt := range node.Statements {
		stmt.Accept(an)
	}
}

// VisitAssignmentStatementNode checks the target and the expression
// type. A target naming the enclosing function is rewritten to that
// function's hidden return slot and marks the return as assigned.
func (an *Analyzer) VisitAssignmentStatementNode(node *parser.AssignmentStatementNode) {
	name := node.Target.Name
	lookup := name
	if an.currentFuncName != "" && name == an.currentFuncName {
		an.returnAssigned = true
		lookup = "@" + name
	}

	entry := an.Scope.Resolve(lookup)
	if entry == nil {
		an.error("undeclared variable '%s'", name)
		return
	}
	if entry.Category != scope.VarCategory && entry.Category != scope.ParamCategory {
		an.error("cannot assign to '%s' (category %s)", name, entry.Category)
		return
	}
	node.Target.Entry = entry

	exprType := an.typeOf(node.Expr)
	if exprType != entry.Type {
		an.error("incompatible assignment to '%s': expected %s, found %s",
			name, entry.Type, exprType)
	}
}

// VisitIfStatementNode requires a boolean condition and visits both
// branches (either may be the empty statement).
func (an *Analyzer) VisitIfStatementNode(node *parser.IfStatementNode) {
	if an.typeOf(node.Condition) != scope.BooleanType {
		an.error("if condition must be boolean")
	}
	if node.Then != nil {
		node.Then.Accept(an)
	}
	if node.Else != nil {
		node.Else.Accept(an)
	}
}

// VisitWhileStatementNode requires a boolean condition and visits the
// body.
func (an *Analyzer) VisitWhileStatementNode(node *parser.WhileStatementNode) {
	if an.typeOf(node.Condition) != scope.BooleanType {
		an.error("while condition must be boolean")
	}
	if node.Body != nil {
		node.Body.Accept(an)
	}
}

// VisitProcedureCallStatementNode resolves the callee, validates its
// category and argument list, and binds the call site to the entry.
func (an *Analyzer) VisitProcedureCallStatementNode(node *parser.ProcedureCallStatementNode) {
	sym := an.Scope.Resolve(node.Name)
	if sym == nil {
		an.error("unknown procedure '%s'", node.Name)
		return
	}
	if sym.Category != scope.ProcCategory {
		an.error("'%s' is not a procedure", node.Name)
		return
	}
	if len(node.Arguments) != len(sym.Params) {
		an.error("wrong argument count for '%s': expected %d, got %d",
			node.Name, len(sym.Params), len(node.Arguments))
		return
	}
	node.Entry = sym
	an.checkArguments(node.Name, node.Arguments, sym.Params)
}

// VisitReadStatementNode requires each target to be a variable or a
// parameter.
func (an *Analyzer) VisitReadStatementNode(node *parser.ReadStatementNode) {
	for _, v := range node.Variables {
		entry := an.Scope.Resolve(v.Name)
		if entry == nil {
			an.error("read of undeclared variable '%s'", v.Name)
			continue
		}
		if entry.Category != scope.VarCategory && entry.Category != scope.ParamCategory {
			an.error("read expects a variable, found '%s' (%s)", v.Name, entry.Category)
			continue
		}
		v.Entry = entry
	}
}

// VisitWriteStatementNode requires each operand to be integer or
// boolean.
func (an *Analyzer) VisitWriteStatementNode(node *parser.WriteStatementNode) {
	for _, expr := range node.Expressions {
		t := an.typeOf(expr)
		if t != scope.IntegerType && t != scope.BooleanType {
			an.error("write does not support type '%s'", t)
		}
	}
}

// VisitBinaryExpressionNode applies the operator's type rule:
// arithmetic needs integers and yields integer; and/or need booleans
// and yield boolean; = and <> need equal types; the ordered relations
// need integers; every relation yields boolean.
func (an *Analyzer) VisitBinaryExpressionNode(node *parser.BinaryExpressionNode) {
	leftType := an.typeOf(node.Left)
	rightType := an.typeOf(node.Right)

	switch node.Operation.Literal {
	case "+", "-", "*", "div":
		if leftType != scope.IntegerType || rightType != scope.IntegerType {
			an.error("operator '%s' requires integer operands, found %s and %s",
				node.Operation.Literal, leftType, rightType)
		}
		an.lastType = scope.IntegerType
	case "and", "or":
		if leftType != scope.BooleanType || rightType != scope.BooleanType {
			an.error("operator '%s' requires boolean operands, found %s and %s",
				node.Operation.Literal, leftType, rightType)
		}
		an.lastType = scope.BooleanType
	case "=", "<>":
		if leftType != rightType {
			an.error("comparison '%s' between different types: %s and %s",
				node.Operation.Literal, leftType, rightType)
		}
		an.lastType = scope.BooleanType
	case "<", "<=", ">", ">=":
		if leftType != scope.IntegerType || rightType != scope.IntegerType {
			an.error("relational operator '%s' requires integer operands, found %s and %s",
				node.Operation.Literal, leftType, rightType)
		}
		an.lastType = scope.BooleanType
	default:
		an.lastType = scope.IntegerType
	}
}

// VisitUnaryExpressionNode: not needs a boolean, unary minus an integer.
func (an *Analyzer) VisitUnaryExpressionNode(node *parser.UnaryExpressionNode) {
	operandType := an.typeOf(node.Operand)
	switch node.Operation.Literal {
	case "not":
		if operandType != scope.BooleanType {
			an.error("'not' requires a boolean operand, found %s", operandType)
		}
		an.lastType = scope.BooleanType
	case "-":
		if operandType != scope.IntegerType {
			an.error("unary '-' requires an integer operand, found %s", operandType)
		}
		an.lastType = scope.IntegerType
	default:
		an.lastType = operandType
	}
}

// VisitVarExpressionNode resolves a variable use. A function name in
// expression position without an argument list is a distinct error; the
// undeclared case defaults to integer so one bad name does not cascade
// into spurious type diagnostics.
func (an *Analyzer) VisitVarExpressionNode(node *parser.VarExpressionNode) {
	entry := an.Scope.Resolve(node.Name)
	if entry == nil {
		an.error("undeclared variable '%s'", node.Name)
		an.lastType = scope.IntegerType
		return
	}
	if entry.Category == scope.FuncCategory {
		an.error("function '%s' used without argument list", node.Name)
		an.lastType = entry.Type
		return
	}
	node.Entry = entry
	an.lastType = entry.Type
}

// VisitNumberLiteralExpressionNode: integer literals are integers.
func (an *Analyzer) VisitNumberLiteralExpressionNode(node *parser.NumberLiteralExpressionNode) {
	an.lastType = scope.IntegerType
}

// VisitBooleanLiteralExpressionNode: true/false are booleans.
func (an *Analyzer) VisitBooleanLiteralExpressionNode(node *parser.BooleanLiteralExpressionNode) {
	an.lastType = scope.BooleanType
}

// VisitCallExpressionNode resolves a function call in expression
// position; the call's type is the function's return type.
func (an *Analyzer) VisitCallExpressionNode(node *parser.CallExpressionNode) {
	sym := an.Scope.Resolve(node.Name)
	if sym == nil {
		an.error("unknown function '%s'", node.Name)
		an.lastType = scope.IntegerType
		return
	}
	if sym.Category != scope.FuncCategory {
		an.error("'%s' is not a function", node.Name)
		an.lastType = sym.Type
		return
	}
	if len(node.Arguments) != len(sym.Params) {
		an.error("wrong argument count for '%s': expected %d, got %d",
			node.Name, len(sym.Params), len(node.Arguments))
		an.lastType = sym.Type
		return
	}
	node.Entry = sym
	an.checkArguments(node.Name, node.Arguments, sym.Params)
	an.lastType = sym.Type
}

// checkArguments types each argument against the declared parameter
// signature, position by position.
func (an *Analyzer) checkArguments(name string, args []parser.ExpressionNode, params []scope.RascalType) {
	for i, arg := range args {
		argType := an.typeOf(arg)
		if argType != params[i] {
			an.error("argument %d of '%s' expects %s, found %s",
				i+1, name, params[i], argType)
		}
	}
}

// newSubroutineLabel allocates a program-unique label for a procedure
// or function, e.g. R_fact_0. Labels are assigned here, during
// analysis, so every call site has one before code generation starts.
func (an *Analyzer) newSubroutineLabel(name string) string {
	label := fmt.Sprintf("R_%s_%d", name, an.labelCounter)
	an.labelCounter++
	return label
}

// parameterSignature flattens parameter sections into the left-to-right
// list of parameter types recorded on proc/func entries.
func parameterSignature(params []*parser.VarDeclarationNode) []scope.RascalType {
	signature := []scope.RascalType{}
	for _, decl := range params {
		for range decl.Identifiers {
			signature = append(signature, decl.VarType.Name)
		}
	}
	return signature
}
