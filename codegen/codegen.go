/*
File    : rascal-compiler/codegen/codegen.go
Author  : Sergio Cezar
*/

/*
Package codegen implements the MEPA code generation pass.

The CodeGenerator is a NodeVisitor that walks the annotated AST a second
time and emits MEPA instructions into an ordered line buffer. It never
consults the symbol tables: every address it needs is the (level, offset)
pair the semantic analyzer stamped onto the nodes, and every subroutine
already carries its unique label. The generator therefore assumes a
well-typed, fully annotated tree and performs no checks of its own.

Output is line-oriented text with two shapes:

	<LABEL>: NADA                     label definition
	     <MNEMONIC> <operands>        instruction, five-space prefix

Control-flow labels are allocated here from a monotonic counter
formatted R00, R01, ...; subroutine entry labels come from the
annotation (R_<name>_<n>).
*/
package codegen

import (
	"fmt"
	"strings"

	"github.com/SergioCezar/rascal-compiler/parser"
)

// binaryOps maps each binary operator spelling to its MEPA mnemonic.
var binaryOps = map[string]string{
	"+":   "SOMA",
	"-":   "SUBT",
	"*":   "MULT",
	"div": "DIVI",
	"and": "CONJ",
	"or":  "DISJ",
	"=":   "CMIG",
	"<>":  "CMDG",
	"<":   "CMME",
	"<=":  "CMEG",
	">":   "CMMA",
	">=":  "CMAG",
}

// CodeGenerator accumulates emitted MEPA lines while walking the AST.
type CodeGenerator struct {
	Code []string // Emitted lines, in order

	// nextLabelNumber feeds the R%02d control-flow label counter
	nextLabelNumber int

	// currentLevel is the static nesting depth of the enclosing
	// subroutine body (0 for the program body); CHPR needs it as the
	// caller's level. Saved and restored around subroutine emission.
	currentLevel int
}

// NewCodeGenerator creates a generator with an empty buffer. Generators
// are single-use: one per compilation.
func NewCodeGenerator() *CodeGenerator {
	return &CodeGenerator{
		Code: []string{},
	}
}

// Generate walks the annotated program and returns the complete MEPA
// listing, lines joined by single newlines.
func (cg *CodeGenerator) Generate(root *parser.ProgramNode) string {
	root.Accept(cg)
	return cg.GetCode()
}

// GetCode returns the emitted program as one newline-joined string.
func (cg *CodeGenerator) GetCode() string {
	return strings.Join(cg.Code, "\n")
}

// emit appends one instruction line: five spaces, the mnemonic, and the
// operands joined by commas.
func (cg *CodeGenerator) emit(instr string, args ...interface{}) {
	if len(args) == 0 {
		cg.Code = append(cg.Code, "     "+instr)
		return
	}
	operands := make([]string, len(args))
	for i, arg := range args {
		operands[i] = fmt.Sprint(arg)
	}
	cg.Code = append(cg.Code, "     "+instr+" "+strings.Join(operands, ","))
}

// emitLabel appends a label definition line.
func (cg *CodeGenerator) emitLabel(label string) {
	cg.Code = append(cg.Code, label+": NADA")
}

// newLabel allocates the next control-flow label (R00, R01, ...).
func (cg *CodeGenerator) newLabel() string {
	label := fmt.Sprintf("R%02d", cg.nextLabelNumber)
	cg.nextLabelNumber++
	return label
}

// VisitProgramNode frames the whole program: INPP, the main block, then
// PARA and FIM.
func (cg *CodeGenerator) VisitProgramNode(node *parser.ProgramNode) {
	cg.emit("INPP")
	node.Block.Accept(cg)
	cg.emit("PARA")
	cg.emit("FIM")
}

// VisitBlockNode allocates the block's locals, jumps over any inline
// subroutine bodies, runs the compound body, and releases the locals:
//
//	AMEM V            when the block declares V > 0 variables
//	DSVS Lmain        when subroutines follow, so they don't run inline
//	<subroutine bodies>
//	Lmain: NADA
//	<compound body>
//	DMEM V            matching the AMEM on the normal exit path
func (cg *CodeGenerator) VisitBlockNode(node *parser.BlockNode) {
	varsCount := 0
	for _, decl := range node.VarDeclarations {
		varsCount += len(decl.Identifiers)
	}
	if varsCount > 0 {
		cg.emit("AMEM", varsCount)
	}

	if len(node.Subroutines) > 0 {
		labMain := cg.newLabel()
		cg.emit("DSVS", labMain)
		for _, sub := range node.Subroutines {
			sub.Accept(cg)
		}
		cg.emitLabel(labMain)
	}

	node.Compound.Accept(cg)

	if varsCount > 0 {
		cg.emit("DMEM", varsCount)
	}
}

// VisitVarDeclarationNode emits nothing: allocation is handled in bulk
// by the enclosing block's AMEM.
func (cg *CodeGenerator) VisitVarDeclarationNode(node *parser.VarDeclarationNode) {}

// VisitTypeNode emits nothing.
func (cg *CodeGenerator) VisitTypeNode(node *parser.TypeNode) {}

// VisitProcedureDeclarationNode emits the procedure body behind its
// entry label, tracking the nesting level while inside it:
//
//	<label>: NADA
//	ENPR <level>
//	<block>
//	RTPR <total parameter slots>
func (cg *CodeGenerator) VisitProcedureDeclarationNode(node *parser.ProcedureDeclarationNode) {
	cg.emitSubroutine(node.Entry.Label, node.Entry.Level, node.Params, node.Block)
}

// VisitFunctionDeclarationNode emits a function body exactly like a
// procedure body; the return slot is just another frame-relative
// location the body assigns to.
func (cg *CodeGenerator) VisitFunctionDeclarationNode(node *parser.FunctionDeclarationNode) {
	cg.emitSubroutine(node.Entry.Label, node.Entry.Level, node.Params, node.Block)
}

// emitSubroutine is the shared body emission of procedures and
// functions.
func (cg *CodeGenerator) emitSubroutine(label string, level int, params []*parser.VarDeclarationNode, block *parser.BlockNode) {
	cg.emitLabel(label)
	cg.emit("ENPR", level)

	previousLevel := cg.currentLevel
	cg.currentLevel = level

	block.Accept(cg)

	cg.currentLevel = previousLevel

	cg.emit("RTPR", totalParamSlots(params))
}

// totalParamSlots counts the flattened parameter sites of a subroutine.
func totalParamSlots(params []*parser.VarDeclarationNode) int {
	total := 0
	for _, decl := range params {
		total += len(decl.Identifiers)
	}
	return total
}

// VisitCompoundStatementNode emits each statement in order.
func (cg *CodeGenerator) VisitCompoundStatementNode(node *parser.CompoundStatementNode) {
	for _, stmt := range node.Statements {
		stmt.Accept(cg)
	}
}

// VisitAssignmentStatementNode evaluates the expression and stores the
// result at the target's address.
func (cg *CodeGenerator) VisitAssignmentStatementNode(node *parser.AssignmentStatementNode) {
	node.Expr.Accept(cg)
	entry := node.Target.Entry
	cg.emit("ARMZ", entry.Level, entry.Offset)
}

// VisitIfStatementNode branches over the then-part on a false
// condition; with an else-part it additionally jumps over it at the end
// of the then-part.
func (cg *CodeGenerator) VisitIfStatementNode(node *parser.IfStatementNode) {
	if node.Else != nil {
		labEnd := cg.newLabel()
		labElse := cg.newLabel()

		node.Condition.Accept(cg)
		cg.emit("DSVF", labElse)

		if node.Then != nil {
			node.Then.Accept(cg)
		}
		cg.emit("DSVS", labEnd)

		cg.emitLabel(labElse)
		node.Else.Accept(cg)

		cg.emitLabel(labEnd)
		return
	}

	labEnd := cg.newLabel()
	node.Condition.Accept(cg)
	cg.emit("DSVF", labEnd)
	if node.Then != nil {
		node.Then.Accept(cg)
	}
	cg.emitLabel(labEnd)
}

// VisitWhileStatementNode emits the back-edge loop shape: label the
// condition, fall out on false, and jump back after the body.
func (cg *CodeGenerator) VisitWhileStatementNode(node *parser.WhileStatementNode) {
	labStart := cg.newLabel()
	labEnd := cg.newLabel()

	cg.emitLabel(labStart)
	node.Condition.Accept(cg)
	cg.emit("DSVF", labEnd)
	if node.Body != nil {
		node.Body.Accept(cg)
	}
	cg.emit("DSVS", labStart)
	cg.emitLabel(labEnd)
}

// VisitProcedureCallStatementNode pushes the arguments in reverse
// source order, so the callee's frame base addresses them in source
// order, then calls.
func (cg *CodeGenerator) VisitProcedureCallStatementNode(node *parser.ProcedureCallStatementNode) {
	for i := len(node.Arguments) - 1; i >= 0; i-- {
		node.Arguments[i].Accept(cg)
	}
	cg.emit("CHPR", node.Entry.Label, cg.currentLevel)
}

// VisitReadStatementNode reads one value per target and stores it.
func (cg *CodeGenerator) VisitReadStatementNode(node *parser.ReadStatementNode) {
	for _, v := range node.Variables {
		cg.emit("LEIT")
		cg.emit("ARMZ", v.Entry.Level, v.Entry.Offset)
	}
}

// VisitWriteStatementNode evaluates and prints each operand in order.
func (cg *CodeGenerator) VisitWriteStatementNode(node *parser.WriteStatementNode) {
	for _, expr := range node.Expressions {
		expr.Accept(cg)
		cg.emit("IMPR")
	}
}

// VisitBinaryExpressionNode evaluates both operands left to right and
// applies the operator's mnemonic.
func (cg *CodeGenerator) VisitBinaryExpressionNode(node *parser.BinaryExpressionNode) {
	node.Left.Accept(cg)
	node.Right.Accept(cg)
	cg.emit(binaryOps[node.Operation.Literal])
}

// VisitUnaryExpressionNode evaluates the operand and applies NEGA (not)
// or INVR (unary minus).
func (cg *CodeGenerator) VisitUnaryExpressionNode(node *parser.UnaryExpressionNode) {
	node.Operand.Accept(cg)
	switch node.Operation.Literal {
	case "not":
		cg.emit("NEGA")
	case "-":
		cg.emit("INVR")
	}
}

// VisitVarExpressionNode loads the variable's value onto the stack.
func (cg *CodeGenerator) VisitVarExpressionNode(node *parser.VarExpressionNode) {
	cg.emit("CRVL", node.Entry.Level, node.Entry.Offset)
}

// VisitNumberLiteralExpressionNode pushes the literal value.
func (cg *CodeGenerator) VisitNumberLiteralExpressionNode(node *parser.NumberLiteralExpressionNode) {
	cg.emit("CRCT", node.Value)
}

// VisitBooleanLiteralExpressionNode pushes 1 for true, 0 for false.
func (cg *CodeGenerator) VisitBooleanLiteralExpressionNode(node *parser.BooleanLiteralExpressionNode) {
	if node.Value {
		cg.emit("CRCT", 1)
	} else {
		cg.emit("CRCT", 0)
	}
}

// VisitCallExpressionNode reserves the return slot with AMEM 1, pushes
// the arguments in reverse source order and calls; on return the
// callee's return slot is the top of stack from the caller's view.
func (cg *CodeGenerator) VisitCallExpressionNode(node *parser.CallExpressionNode) {
	cg.emit("AMEM", 1)
	for i := len(node.Arguments) - 1; i >= 0; i-- {
		node.Arguments[i].Accept(cg)
	}
	cg.emit("CHPR", node.Entry.Label, cg.currentLevel)
}
