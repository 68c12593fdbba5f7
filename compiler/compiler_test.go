/*
File    : rascal-compiler/compiler/compiler_test.go
Author  : Sergio Cezar
*/
package compiler

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCompile_MinimalProgram(t *testing.T) {

	code, err := Compile(`program p; begin end.`)

	assert.NoError(t, err)
	assert.Equal(t, "     INPP\n     PARA\n     FIM", code)
}

func TestCompile_EndToEndFunction(t *testing.T) {

	src := `
program p;
function f(x : integer) : integer;
begin f := x + 1 end;
var y : integer;
begin y := f(41); write(y) end.`
	code, err := Compile(src)

	assert.NoError(t, err)
	assert.Contains(t, code, "     AMEM 1\n     CRCT 41\n     CHPR R_f_0,0\n     ARMZ 0,0")
	assert.Contains(t, code, "R_f_0: NADA\n     ENPR 1")
}

func TestCompile_IsDeterministic(t *testing.T) {

	src := `
program p;
var i, total : integer;
procedure bump(n : integer); begin total := total + n end;
begin
	total := 0;
	i := 0;
	while i < 10 do begin bump(i); i := i + 1 end;
	write(total)
end.`
	first, err := Compile(src)
	assert.NoError(t, err)
	second, err := Compile(src)
	assert.NoError(t, err)

	// byte-identical output for the same source
	assert.Equal(t, first, second)
}

func TestCompile_StopsAtTheLexicalStage(t *testing.T) {

	_, err := Compile("program p; begin x := @ end.")

	assert.Error(t, err)
	report := err.(*CompileError)
	assert.Equal(t, StageLexical, report.Stage)
	assert.Contains(t, report.Error(), "LEXICAL: illegal character '@' line 1")
}

func TestCompile_StopsAtTheSyntacticStage(t *testing.T) {

	_, err := Compile("program p; begin if then end.")

	assert.Error(t, err)
	report := err.(*CompileError)
	assert.Equal(t, StageSyntactic, report.Stage)
	assert.Contains(t, report.Error(), "SYNTACTIC: error at 'then' line 1")
}

func TestCompile_StopsAtTheSemanticStage(t *testing.T) {

	// assigning an integer to a boolean must fail and produce no code
	code, err := Compile("program p; var b : boolean; begin b := 3 end.")

	assert.Error(t, err)
	assert.Empty(t, code)
	report := err.(*CompileError)
	assert.Equal(t, StageSemantic, report.Stage)
	assert.Contains(t, report.Error(), "incompatible assignment to 'b'")
}

func TestCompile_ReportsEveryLexicalErrorBeforeAborting(t *testing.T) {

	_, err := Compile("program p; begin x := ? + $ end.")

	assert.Error(t, err)
	report := err.(*CompileError)
	assert.Equal(t, StageLexical, report.Stage)
	assert.Equal(t, 2, len(report.Messages))
}

func TestCompile_EmptySourceIsSyntactic(t *testing.T) {

	_, err := Compile("")

	assert.Error(t, err)
	report := err.(*CompileError)
	assert.Equal(t, StageSyntactic, report.Stage)
	assert.Contains(t, report.Error(), "unexpected end of file")
}

func TestCompiler_InstancesAreIndependent(t *testing.T) {

	// a failed compilation leaves no state behind that could affect
	// the next one
	bad := NewCompiler("program p; begin x := 1 end.")
	assert.False(t, bad.Compile())
	assert.Equal(t, StageSemantic, bad.FailedStage)

	good := NewCompiler("program p; var x : integer; begin x := 1 end.")
	assert.True(t, good.Compile())
	assert.NotEmpty(t, good.Code)
	assert.Empty(t, good.Errors)
	assert.NotNil(t, good.Root)
}
