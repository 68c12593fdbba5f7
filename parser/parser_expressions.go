/*
File    : rascal-compiler/parser/parser_expressions.go
Author  : Sergio Cezar
*/
package parser

import (
	"strconv"

	"github.com/SergioCezar/rascal-compiler/lexer"
)

// parseExpression parses the loosest tier:
//
//	expression := simple (relop simple)?
//
// Relational operators are non-associative, so at most one comparison
// appears at this level; `a < b < c` is rejected at the second `<`.
func (par *Parser) parseExpression() ExpressionNode {
	left := par.parseSimple()
	if left == nil {
		return nil
	}
	if isRelationalOp(par.CurrToken.Type) {
		op := par.CurrToken
		par.advance()
		right := par.parseSimple()
		if right == nil {
			return nil
		}
		return &BinaryExpressionNode{Operation: op, Left: left, Right: right}
	}
	return left
}

// parseSimple parses the left-associative additive tier:
//
//	simple := simple ('+'|'-'|OR) term | term
func (par *Parser) parseSimple() ExpressionNode {
	left := par.parseTerm()
	if left == nil {
		return nil
	}
	for par.CurrToken.Type == lexer.PLUS_OP ||
		par.CurrToken.Type == lexer.MINUS_OP ||
		par.CurrToken.Type == lexer.OR_KEY {
		op := par.CurrToken
		par.advance()
		right := par.parseTerm()
		if right == nil {
			return nil
		}
		left = &BinaryExpressionNode{Operation: op, Left: left, Right: right}
	}
	return left
}

// parseTerm parses the left-associative multiplicative tier:
//
//	term := term ('*'|DIV|AND) factor | factor
func (par *Parser) parseTerm() ExpressionNode {
	left := par.parseFactor()
	if left == nil {
		return nil
	}
	for par.CurrToken.Type == lexer.MUL_OP ||
		par.CurrToken.Type == lexer.DIV_KEY ||
		par.CurrToken.Type == lexer.AND_KEY {
		op := par.CurrToken
		par.advance()
		right := par.parseFactor()
		if right == nil {
			return nil
		}
		left = &BinaryExpressionNode{Operation: op, Left: left, Right: right}
	}
	return left
}

// parseFactor parses the tightest tier:
//
//	factor := var | number | bool | '(' expression ')'
//	        | NOT factor | '-' factor | id '(' expr_list? ')'
//
// Unary operators recurse into factor, making them right-associative.
// A call-shaped identifier builds a CallExpressionNode; the semantic
// analyzer validates that the callee is in fact a function.
func (par *Parser) parseFactor() ExpressionNode {
	switch par.CurrToken.Type {
	case lexer.IDENTIFIER_ID:
		if par.NextToken.Type == lexer.LEFT_PAREN {
			return par.parseCallExpression()
		}
		node := &VarExpressionNode{Token: par.CurrToken, Name: par.CurrToken.Literal}
		par.advance()
		return node
	case lexer.INT_LIT:
		// The lexer only emits digit runs, so the conversion cannot fail
		value, _ := strconv.Atoi(par.CurrToken.Literal)
		node := &NumberLiteralExpressionNode{Token: par.CurrToken, Value: value}
		par.advance()
		return node
	case lexer.TRUE_KEY:
		node := &BooleanLiteralExpressionNode{Token: par.CurrToken, Value: true}
		par.advance()
		return node
	case lexer.FALSE_KEY:
		node := &BooleanLiteralExpressionNode{Token: par.CurrToken, Value: false}
		par.advance()
		return node
	case lexer.LEFT_PAREN:
		par.advance()
		expr := par.parseExpression()
		if expr == nil {
			return nil
		}
		if !par.expect(lexer.RIGHT_PAREN) {
			return nil
		}
		return expr
	case lexer.NOT_KEY, lexer.MINUS_OP:
		op := par.CurrToken
		par.advance()
		operand := par.parseFactor()
		if operand == nil {
			return nil
		}
		return &UnaryExpressionNode{Operation: op, Operand: operand}
	default:
		par.syntaxError(par.CurrToken)
		return nil
	}
}

// parseCallExpression parses `id '(' expr_list? ')'` in factor position.
func (par *Parser) parseCallExpression() ExpressionNode {
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
	return &CallExpressionNode{Token: tok, Name: tok.Literal, Arguments: args}
}

// parseExpressionList parses `expression (',' expression)*`.
func (par *Parser) parseExpressionList() []ExpressionNode {
	expr := par.parseExpression()
	if expr == nil {
		return nil
	}
	exprs := []ExpressionNode{expr}
	for par.CurrToken.Type == lexer.COMMA_DELIM {
		par.advance()
		expr = par.parseExpression()
		if expr == nil {
			return nil
		}
		exprs = append(exprs, expr)
	}
	return exprs
}

// isRelationalOp reports whether the token type is one of the six
// relational operators.
func isRelationalOp(tokenType lexer.TokenType) bool {
	switch tokenType {
	case lexer.EQ_OP, lexer.NE_OP, lexer.LT_OP, lexer.LE_OP, lexer.GT_OP, lexer.GE_OP:
		return true
	}
	return false
}
