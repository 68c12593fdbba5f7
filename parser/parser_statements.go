/*
File    : rascal-compiler/parser/parser_statements.go
Author  : Sergio Cezar
*/
package parser

import (
	"github.com/SergioCezar/rascal-compiler/lexer"
)

// parseStatement parses one statement:
//
//	statement := assignment | if | while | read | write
//	           | proc_call | compound | ε
//
// The empty alternative is returned as nil without consuming input, so
// constructs like `begin end` and a trailing semicolon before `end`
// parse cleanly. Callers must consult HasErrors() to tell an empty
// statement from a failed one.
//
// An identifier opens either an assignment (`id := ...`) or a procedure
// call (`id(...)`); one token of lookahead decides. A bare identifier
// with neither continuation is a syntax error at the following token.
func (par *Parser) parseStatement() StatementNode {
	switch par.CurrToken.Type {
	case lexer.IDENTIFIER_ID:
		if par.NextToken.Type == lexer.ASSIGN_OP {
			return par.parseAssignment()
		}
		if par.NextToken.Type == lexer.LEFT_PAREN {
			return par.parseProcedureCall()
		}
		par.syntaxError(par.NextToken)
		return nil
	case lexer.IF_KEY:
		return par.parseIf()
	case lexer.WHILE_KEY:
		return par.parseWhile()
	case lexer.READ_KEY:
		return par.parseRead()
	case lexer.WRITE_KEY:
		return par.parseWrite()
	case lexer.BEGIN_KEY:
		compound := par.parseCompound()
		if compound == nil {
			return nil
		}
		return compound
	default:
		// Empty statement
		return nil
	}
}

// parseAssignment parses `id ':=' expression`.
func (par *Parser) parseAssignment() StatementNode {
	target := &VarExpressionNode{Token: par.CurrToken, Name: par.CurrToken.Literal}
	par.advance() // identifier
	par.advance() // ':='
	expr := par.parseExpression()
	if expr == nil {
		return nil
	}
	return &AssignmentStatementNode{Target: target, Expr: expr}
}

// parseProcedureCall parses `id '(' expr_list? ')'` in statement
// position. The argument list may be empty, but the parentheses are
// mandatory: a bare identifier is never a call.
func (par *Parser) parseProcedureCall() StatementNode {
	tok := par.CurrToken
	par.advance() // identifier
	par.advance() // '('
	args := []ExpressionNode{}
	if par.CurrToken.Type != lexer.RIGHT_PAREN {
		args = par.parseExpressionList()
		if args == nil {
			return nil
		}
	}
	if !par.expect(lexer.RIGHT_PAREN) {
		return nil
	}
	return &ProcedureCallStatementNode{Token: tok, Name: tok.Literal, Arguments: args}
}

// parseIf parses `IF expression THEN statement (ELSE statement)?`.
// Either branch may be the empty statement.
func (par *Parser) parseIf() StatementNode {
	par.advance() // 'if'
	cond := par.parseExpression()
	if cond == nil {
		return nil
	}
	if !par.expect(lexer.THEN_KEY) {
		return nil
	}
	thenStmt := par.parseStatement()
	if par.HasErrors() {
		return nil
	}
	var elseStmt StatementNode
	if par.CurrToken.Type == lexer.ELSE_KEY {
		par.advance()
		elseStmt = par.parseStatement()
		if par.HasErrors() {
			return nil
		}
	}
	return &IfStatementNode{Condition: cond, Then: thenStmt, Else: elseStmt}
}

// parseWhile parses `WHILE expression DO statement`.
func (par *Parser) parseWhile() StatementNode {
	par.advance() // 'while'
	cond := par.parseExpression()
	if cond == nil {
		return nil
	}
	if !par.expect(lexer.DO_KEY) {
		return nil
	}
	body := par.parseStatement()
	if par.HasErrors() {
		return nil
	}
	return &WhileStatementNode{Condition: cond, Body: body}
}

// parseRead parses `READ '(' id_list ')'`. Only plain identifiers are
// valid read targets.
func (par *Parser) parseRead() StatementNode {
	par.advance() // 'read'
	if !par.expect(lexer.LEFT_PAREN) {
		return nil
	}
	vars := par.parseIdentifierList()
	if vars == nil {
		return nil
	}
	if !par.expect(lexer.RIGHT_PAREN) {
		return nil
	}
	return &ReadStatementNode{Variables: vars}
}

// parseWrite parses `WRITE '(' expr_list ')'`. The expression list is
// mandatory and nonempty.
func (par *Parser) parseWrite() StatementNode {
	par.advance() // 'write'
	if !par.expect(lexer.LEFT_PAREN) {
		return nil
	}
	exprs := par.parseExpressionList()
	if exprs == nil {
		return nil
	}
	if !par.expect(lexer.RIGHT_PAREN) {
		return nil
	}
	return &WriteStatementNode{Expressions: exprs}
}
