/*
File    : rascal-compiler/parser/parser.go
Author  : Sergio Cezar
*/

/*
Package parser implements the syntactic analyzer for the Rascal language.

The parser converts the token stream produced by the lexer into an
Abstract Syntax Tree (AST). It is a hand-written recursive-descent parser
whose expression layering (expression / simple / term / factor) encodes
the language's precedence and associativity:

  - relational operators (=, <>, <, <=, >, >=) are non-associative and
    bind loosest: an expression is one simple expression optionally
    compared against another
  - additive operators (+, -, or) are left-associative
  - multiplicative operators (*, div, and) are left-associative
  - unary not and unary minus bind tightest and are right-associative

A call-shaped `id(args)` builds a CallExpressionNode in factor position
and a ProcedureCallStatementNode in statement position; the semantic
analyzer later validates the callee's category.

The parser stops at the first syntax error: it records a single
diagnostic pointing at the offending token (or at the unexpected end of
file) and unwinds without attempting recovery.
*/
package parser

import (
	"fmt"

	"github.com/SergioCezar/rascal-compiler/lexer"
	"github.com/SergioCezar/rascal-compiler/scope"
)

// Parser represents the parser state. It owns a lexer and keeps a
// two-token window (current + lookahead) over the stream, which is all
// the grammar needs to pick a production.
type Parser struct {
	Lex       lexer.Lexer // Lexer instance tokenizing the source
	CurrToken lexer.Token // Current token being processed
	NextToken lexer.Token // Next token (for lookahead)

	// Collected diagnostics. Only the first syntax error is recorded;
	// the parser does not attempt recovery after it.
	Errors []string
}

// NewParser creates and initializes a new Parser for the given source.
// The parser is ready to use immediately; call Parse() to build the AST.
func NewParser(src string) *Parser {
	par := &Parser{
		Lex: lexer.NewLexer(src),
	}
	// Prime the two-token window
	par.advance()
	par.advance()
	return par
}

// Parse parses a complete program:
//
//	program := PROGRAM id ';' block '.'
//
// Returns the root ProgramNode, or nil if a syntax error was recorded.
func (par *Parser) Parse() *ProgramNode {
	if !par.expect(lexer.PROGRAM_KEY) {
		return nil
	}
	if par.CurrToken.Type != lexer.IDENTIFIER_ID {
		par.syntaxError(par.CurrToken)
		return nil
	}
	name := par.CurrToken.Literal
	par.advance()
	if !par.expect(lexer.SEMI_DELIM) {
		return nil
	}
	block := par.parseBlock()
	if block == nil {
		return nil
	}
	if !par.expect(lexer.DOT_DELIM) {
		return nil
	}
	// Nothing may follow the terminating dot
	if par.CurrToken.Type != lexer.EOF_TYPE {
		par.syntaxError(par.CurrToken)
		return nil
	}
	return &ProgramNode{Name: name, Block: block}
}

// parseBlock parses one block:
//
//	block := (var_section | proc_decl ';' | func_decl ';')* compound
//
// Variable sections and subroutine declarations may interleave; each
// kind accumulates into its own ordered list on the BlockNode.
func (par *Parser) parseBlock() *BlockNode {
	block := &BlockNode{}
	for {
		switch par.CurrToken.Type {
		case lexer.VAR_KEY:
			decls := par.parseVarSection()
			if decls == nil {
				return nil
			}
			block.VarDeclarations = append(block.VarDeclarations, decls...)
		case lexer.PROCEDURE_KEY:
			sub := par.parseProcedureDeclaration()
			if sub == nil {
				return nil
			}
			if !par.expect(lexer.SEMI_DELIM) {
				return nil
			}
			block.Subroutines = append(block.Subroutines, sub)
		case lexer.FUNCTION_KEY:
			sub := par.parseFunctionDeclaration()
			if sub == nil {
				return nil
			}
			if !par.expect(lexer.SEMI_DELIM) {
				return nil
			}
			block.Subroutines = append(block.Subroutines, sub)
		default:
			compound := par.parseCompound()
			if compound == nil {
				return nil
			}
			block.Compound = compound
			return block
		}
	}
}

// parseVarSection parses `VAR (id_list ':' type ';')+`, one declaration
// line per semicolon. At least one declaration is required.
func (par *Parser) parseVarSection() []*VarDeclarationNode {
	par.advance() // consume 'var'
	if par.CurrToken.Type != lexer.IDENTIFIER_ID {
		par.syntaxError(par.CurrToken)
		return nil
	}
	decls := []*VarDeclarationNode{}
	for par.CurrToken.Type == lexer.IDENTIFIER_ID {
		decl := par.parseVarDeclaration()
		if decl == nil {
			return nil
		}
		if !par.expect(lexer.SEMI_DELIM) {
			return nil
		}
		decls = append(decls, decl)
	}
	return decls
}

// parseVarDeclaration parses one `id_list ':' type` line, shared by
// variable sections and parameter lists.
func (par *Parser) parseVarDeclaration() *VarDeclarationNode {
	idents := par.parseIdentifierList()
	if idents == nil {
		return nil
	}
	if !par.expect(lexer.COLON_DELIM) {
		return nil
	}
	typ := par.parseType()
	if typ == nil {
		return nil
	}
	return &VarDeclarationNode{Identifiers: idents, VarType: typ}
}

// parseIdentifierList parses `id (',' id)*` into declarator/target sites.
func (par *Parser) parseIdentifierList() []*VarExpressionNode {
	if par.CurrToken.Type != lexer.IDENTIFIER_ID {
		par.syntaxError(par.CurrToken)
		return nil
	}
	idents := []*VarExpressionNode{{Token: par.CurrToken, Name: par.CurrToken.Literal}}
	par.advance()
	for par.CurrToken.Type == lexer.COMMA_DELIM {
		par.advance()
		if par.CurrToken.Type != lexer.IDENTIFIER_ID {
			par.syntaxError(par.CurrToken)
			return nil
		}
		idents = append(idents, &VarExpressionNode{Token: par.CurrToken, Name: par.CurrToken.Literal})
		par.advance()
	}
	return idents
}

// parseType parses `INTEGER | BOOLEAN`.
func (par *Parser) parseType() *TypeNode {
	var name scope.RascalType
	switch par.CurrToken.Type {
	case lexer.INTEGER_KEY:
		name = scope.IntegerType
	case lexer.BOOLEAN_KEY:
		name = scope.BooleanType
	default:
		par.syntaxError(par.CurrToken)
		return nil
	}
	par.advance()
	return &TypeNode{Name: name}
}

// parseProcedureDeclaration parses `PROCEDURE id params? ';' block`.
func (par *Parser) parseProcedureDeclaration() *ProcedureDeclarationNode {
	par.advance() // consume 'procedure'
	if par.CurrToken.Type != lexer.IDENTIFIER_ID {
		par.syntaxError(par.CurrToken)
		return nil
	}
	name := par.CurrToken.Literal
	par.advance()
	params := []*VarDeclarationNode{}
	if par.CurrToken.Type == lexer.LEFT_PAREN {
		params = par.parseParams()
		if params == nil {
			return nil
		}
	}
	if !par.expect(lexer.SEMI_DELIM) {
		return nil
	}
	block := par.parseBlock()
	if block == nil {
		return nil
	}
	return &ProcedureDeclarationNode{Name: name, Params: params, Block: block}
}

// parseFunctionDeclaration parses `FUNCTION id params? ':' type ';' block`.
func (par *Parser) parseFunctionDeclaration() *FunctionDeclarationNode {
	par.advance() // consume 'function'
	if par.CurrToken.Type != lexer.IDENTIFIER_ID {
		par.syntaxError(par.CurrToken)
		return nil
	}
	name := par.CurrToken.Literal
	par.advance()
	params := []*VarDeclarationNode{}
	if par.CurrToken.Type == lexer.LEFT_PAREN {
		params = par.parseParams()
		if params == nil {
			return nil
		}
	}
	if !par.expect(lexer.COLON_DELIM) {
		return nil
	}
	returnType := par.parseType()
	if returnType == nil {
		return nil
	}
	if !par.expect(lexer.SEMI_DELIM) {
		return nil
	}
	block := par.parseBlock()
	if block == nil {
		return nil
	}
	return &FunctionDeclarationNode{Name: name, Params: params, ReturnType: returnType, Block: block}
}

// parseParams parses `'(' (id_list ':' type) (';' id_list ':' type)* ')'`.
// Empty parentheses are not valid in a declaration.
func (par *Parser) parseParams() []*VarDeclarationNode {
	par.advance() // consume '('
	decl := par.parseVarDeclaration()
	if decl == nil {
		return nil
	}
	params := []*VarDeclarationNode{decl}
	for par.CurrToken.Type == lexer.SEMI_DELIM {
		par.advance()
		decl = par.parseVarDeclaration()
		if decl == nil {
			return nil
		}
		params = append(params, decl)
	}
	if !par.expect(lexer.RIGHT_PAREN) {
		return nil
	}
	return params
}

// parseCompound parses `BEGIN statement (';' statement)* END`.
// Empty statements allowed by the grammar are parsed but not stored.
func (par *Parser) parseCompound() *CompoundStatementNode {
	if !par.expect(lexer.BEGIN_KEY) {
		return nil
	}
	stmts := []StatementNode{}
	for {
		stmt := par.parseStatement()
		if par.HasErrors() {
			return nil
		}
		if stmt != nil {
			stmts = append(stmts, stmt)
		}
		if par.CurrToken.Type == lexer.SEMI_DELIM {
			par.advance()
			continue
		}
		break
	}
	if !par.expect(lexer.END_KEY) {
		return nil
	}
	return &CompoundStatementNode{Statements: stmts}
}

// advance slides the two-token window one token forward.
func (par *Parser) advance() {
	par.CurrToken = par.NextToken
	par.NextToken = par.Lex.NextToken()
}

// expect consumes the current token when it has the wanted type;
// otherwise it records a syntax error at the current token.
func (par *Parser) expect(tokenType lexer.TokenType) bool {
	if par.CurrToken.Type == tokenType {
		par.advance()
		return true
	}
	par.syntaxError(par.CurrToken)
	return false
}

// syntaxError records a diagnostic for the offending token. Only the
// first error is kept: the parser reports at the first offending token
// and does not attempt recovery.
func (par *Parser) syntaxError(tok lexer.Token) {
	if len(par.Errors) > 0 {
		return
	}
	if tok.Type == lexer.EOF_TYPE {
		par.Errors = append(par.Errors, "SYNTACTIC: unexpected end of file")
		return
	}
	par.Errors = append(par.Errors,
		fmt.Sprintf("SYNTACTIC: error at '%s' line %d", tok.Literal, tok.Line))
}

// HasErrors reports whether parsing recorded a syntax error.
func (par *Parser) HasErrors() bool {
	return len(par.Errors) > 0
}

// GetErrors returns the collected syntax diagnostics.
func (par *Parser) GetErrors() []string {
	return par.Errors
}
