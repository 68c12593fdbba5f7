/*
File    : rascal-compiler/compiler/compiler.go
Author  : Sergio Cezar
*/

/*
Package compiler drives the compilation pipeline:

	lexical pass -> parse -> semantic analysis -> code generation

Each stage collects its own diagnostics; the driver inspects them
between stages and stops at the first stage that reported anything, so
the code generator only ever sees a well-typed, fully annotated AST.

The pipeline is synchronous, in-process and free of shared state: every
Compile call builds fresh lexer, parser, analyzer and generator
instances, so two compilations in sequence (or from different callers)
are fully independent.
*/
package compiler

import (
	"strings"

	"github.com/SergioCezar/rascal-compiler/codegen"
	"github.com/SergioCezar/rascal-compiler/lexer"
	"github.com/SergioCezar/rascal-compiler/parser"
	"github.com/SergioCezar/rascal-compiler/semantic"
)

// Stage names the pipeline stage a failure belongs to.
type Stage string

const (
	// StageLexical is the tokenization stage
	StageLexical Stage = "LEXICAL"
	// StageSyntactic is the parsing stage
	StageSyntactic Stage = "SYNTACTIC"
	// StageSemantic is the analysis stage
	StageSemantic Stage = "SEMANTIC"
)

// Compiler holds the state and results of one compilation.
//
// Fields:
//   - Source: The Rascal source text being compiled
//   - Root: The AST (set after a clean parse; fully annotated only
//     after a clean semantic pass)
//   - Code: The emitted MEPA program (set on success)
//   - Errors: The failing stage's diagnostics (set on failure)
//   - FailedStage: Which stage aborted the pipeline (set on failure)
type Compiler struct {
	Source      string
	Root        *parser.ProgramNode
	Code        string
	Errors      []string
	FailedStage Stage
}

// NewCompiler creates a compiler for the given source text.
func NewCompiler(source string) *Compiler {
	return &Compiler{Source: source}
}

// Compile runs the pipeline to completion or to the first failing
// stage. Returns true on success, in which case Code holds the MEPA
// program and Root the annotated AST; returns false on failure, in
// which case Errors and FailedStage describe what went wrong.
func (c *Compiler) Compile() bool {
	// Lexical pass: scan the whole source once so every illegal
	// character is reported before parsing is attempted.
	lex := lexer.NewLexer(c.Source)
	lex.ConsumeTokens()
	if lex.HasErrors() {
		c.Errors = lex.GetErrors()
		c.FailedStage = StageLexical
		return false
	}

	// Syntactic pass over a fresh token stream.
	par := parser.NewParser(c.Source)
	root := par.Parse()
	if par.HasErrors() || root == nil {
		c.Errors = par.GetErrors()
		if len(c.Errors) == 0 {
			c.Errors = []string{"SYNTACTIC: empty program"}
		}
		c.FailedStage = StageSyntactic
		return false
	}
	c.Root = root

	// Semantic pass: annotates the AST in place.
	analyzer := semantic.NewAnalyzer()
	analyzer.Analyze(root)
	if analyzer.HasErrors() {
		c.Errors = analyzer.GetErrors()
		c.FailedStage = StageSemantic
		return false
	}

	// Code generation assumes the clean, annotated tree.
	generator := codegen.NewCodeGenerator()
	c.Code = generator.Generate(root)
	return true
}

// CompileError is the error a failed Compile call reports: the failing
// stage plus that stage's collected diagnostics.
type CompileError struct {
	Stage    Stage    // The stage that aborted the pipeline
	Messages []string // That stage's diagnostics, in order
}

// Error joins the diagnostics into one newline-separated report.
func (e *CompileError) Error() string {
	return strings.Join(e.Messages, "\n")
}

// Compile is the convenience entry point: source text in, MEPA text
// out, or a *CompileError carrying the failing stage's diagnostics.
func Compile(source string) (string, error) {
	c := NewCompiler(source)
	if !c.Compile() {
		return "", &CompileError{Stage: c.FailedStage, Messages: c.Errors}
	}
	return c.Code, nil
}
