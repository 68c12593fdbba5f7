/*
File    : rascal-compiler/codegen/codegen_test.go
Author  : Sergio Cezar
*/
package codegen

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/SergioCezar/rascal-compiler/parser"
	"github.com/SergioCezar/rascal-compiler/semantic"
)

// generate runs the front half of the pipeline and emits code,
// failing the test if the source is not clean
func generate(t *testing.T, src string) string {
	t.Helper()
	par := parser.NewParser(src)
	root := par.Parse()
	assert.False(t, par.HasErrors(), "unexpected syntax errors: %v", par.GetErrors())
	assert.NotNil(t, root)

	an := semantic.NewAnalyzer()
	an.Analyze(root)
	assert.False(t, an.HasErrors(), "unexpected semantic errors: %v", an.GetErrors())

	return NewCodeGenerator().Generate(root)
}

func TestCodeGenerator_MinimalProgram(t *testing.T) {

	src := `program p; begin end.`
	expected := strings.Join([]string{
		"     INPP",
		"     PARA",
		"     FIM",
	}, "\n")

	assert.Equal(t, expected, generate(t, src))
}

func TestCodeGenerator_AssignAndWrite(t *testing.T) {

	src := `program p; var x : integer; begin x := 3 + 4; write(x) end.`
	expected := strings.Join([]string{
		"     INPP",
		"     AMEM 1",
		"     CRCT 3",
		"     CRCT 4",
		"     SOMA",
		"     ARMZ 0,0",
		"     CRVL 0,0",
		"     IMPR",
		"     DMEM 1",
		"     PARA",
		"     FIM",
	}, "\n")

	assert.Equal(t, expected, generate(t, src))
}

func TestCodeGenerator_IfElse(t *testing.T) {

	src := `program p; var x : integer; begin if x = 0 then x := 1 else x := 2 end.`
	expected := strings.Join([]string{
		"     INPP",
		"     AMEM 1",
		"     CRVL 0,0",
		"     CRCT 0",
		"     CMIG",
		"     DSVF R01",
		"     CRCT 1",
		"     ARMZ 0,0",
		"     DSVS R00",
		"R01: NADA",
		"     CRCT 2",
		"     ARMZ 0,0",
		"R00: NADA",
		"     DMEM 1",
		"     PARA",
		"     FIM",
	}, "\n")

	assert.Equal(t, expected, generate(t, src))
}

func TestCodeGenerator_IfWithoutElse(t *testing.T) {

	src := `program p; var x : integer; begin if x = 0 then x := 1 end.`
	expected := strings.Join([]string{
		"     INPP",
		"     AMEM 1",
		"     CRVL 0,0",
		"     CRCT 0",
		"     CMIG",
		"     DSVF R00",
		"     CRCT 1",
		"     ARMZ 0,0",
		"R00: NADA",
		"     DMEM 1",
		"     PARA",
		"     FIM",
	}, "\n")

	assert.Equal(t, expected, generate(t, src))
}

func TestCodeGenerator_WhileLoop(t *testing.T) {

	src := `program p; var i : integer; begin i := 0; while i < 10 do i := i + 1 end.`
	expected := strings.Join([]string{
		"     INPP",
		"     AMEM 1",
		"     CRCT 0",
		"     ARMZ 0,0",
		"R00: NADA",
		"     CRVL 0,0",
		"     CRCT 10",
		"     CMME",
		"     DSVF R01",
		"     CRVL 0,0",
		"     CRCT 1",
		"     SOMA",
		"     ARMZ 0,0",
		"     DSVS R00",
		"R01: NADA",
		"     DMEM 1",
		"     PARA",
		"     FIM",
	}, "\n")

	assert.Equal(t, expected, generate(t, src))
}

func TestCodeGenerator_FunctionCallAndReturnSlot(t *testing.T) {

	src := `
program p;
function f(x : integer) : integer;
begin f := x + 1 end;
var y : integer;
begin y := f(41); write(y) end.`
	expected := strings.Join([]string{
		"     INPP",
		"     AMEM 1",
		"     DSVS R00",
		"R_f_0: NADA",
		"     ENPR 1",
		"     CRVL 1,-5",
		"     CRCT 1",
		"     SOMA",
		"     ARMZ 1,-6",
		"     RTPR 1",
		"R00: NADA",
		"     AMEM 1",
		"     CRCT 41",
		"     CHPR R_f_0,0",
		"     ARMZ 0,0",
		"     CRVL 0,0",
		"     IMPR",
		"     DMEM 1",
		"     PARA",
		"     FIM",
	}, "\n")

	assert.Equal(t, expected, generate(t, src))
}

func TestCodeGenerator_ProcedureCallPushesArgumentsInReverse(t *testing.T) {

	src := `
program p;
procedure show(a, b : integer);
begin write(a); write(b) end;
begin show(1, 2) end.`
	code := generate(t, src)

	// arguments are pushed right-to-left so the callee's frame sees
	// them in source order
	callSite := strings.Join([]string{
		"     CRCT 2",
		"     CRCT 1",
		"     CHPR R_show_0,0",
	}, "\n")
	assert.Contains(t, code, callSite)

	// inside the body: a at -6, b at -5, the procedure enters at level 1
	assert.Contains(t, code, "     ENPR 1")
	assert.Contains(t, code, "     CRVL 1,-6")
	assert.Contains(t, code, "     CRVL 1,-5")
	assert.Contains(t, code, "     RTPR 2")
}

func TestCodeGenerator_BooleanAndUnaryOperators(t *testing.T) {

	src := `program p; var b : boolean; begin b := not (true and false) or true; b := not b end.`
	code := generate(t, src)

	assert.Contains(t, code, "     CRCT 1\n     CRCT 0\n     CONJ\n     NEGA")
	assert.Contains(t, code, "     DISJ")

	// unary minus emits INVR
	src = `program p; var x : integer; begin x := -x end.`
	code = generate(t, src)
	assert.Contains(t, code, "     CRVL 0,0\n     INVR")
}

func TestCodeGenerator_ReadStoresEachTarget(t *testing.T) {

	src := `program p; var x, y : integer; begin read(x, y) end.`
	code := generate(t, src)

	expected := strings.Join([]string{
		"     LEIT",
		"     ARMZ 0,0",
		"     LEIT",
		"     ARMZ 0,1",
	}, "\n")
	assert.Contains(t, code, expected)
}

func TestCodeGenerator_NestedSubroutineLevels(t *testing.T) {

	// a function nested inside a procedure lives at level 2 and its
	// caller (the procedure body) calls from level 1
	src := `
program p;
procedure outer;
var t : integer;
function double(n : integer) : integer;
begin double := n + n end;
begin t := double(4); write(t) end;
begin outer() end.`
	code := generate(t, src)

	assert.Contains(t, code, "R_double_1: NADA\n     ENPR 2")
	assert.Contains(t, code, "     CHPR R_double_1,1")
	assert.Contains(t, code, "     CHPR R_outer_0,0")
	// the nested parameter is addressed at its own level
	assert.Contains(t, code, "     CRVL 2,-5")
}

func TestCodeGenerator_LabelDefinitionsAreUnique(t *testing.T) {

	src := `
program p;
var i : integer;
procedure q; begin if i = 0 then write(1) else write(2) end;
begin i := 0; while i < 3 do begin q(); i := i + 1 end end.`
	code := generate(t, src)

	defined := map[string]int{}
	referenced := map[string]bool{}
	for _, line := range strings.Split(code, "\n") {
		if strings.HasSuffix(line, ": NADA") {
			label := strings.TrimSuffix(line, ": NADA")
			defined[label]++
			continue
		}
		trimmed := strings.TrimSpace(line)
		for _, branch := range []string{"DSVS ", "DSVF "} {
			if strings.HasPrefix(trimmed, branch) {
				referenced[strings.TrimPrefix(trimmed, branch)] = true
			}
		}
		if strings.HasPrefix(trimmed, "CHPR ") {
			operands := strings.TrimPrefix(trimmed, "CHPR ")
			referenced[strings.Split(operands, ",")[0]] = true
		}
	}

	// every label is defined exactly once
	for label, count := range defined {
		assert.Equal(t, 1, count, "label %s defined %d times", label, count)
	}
	// every branch/call target is a defined label
	for label := range referenced {
		assert.Equal(t, 1, defined[label], "label %s referenced but not defined once", label)
	}
}

func TestCodeGenerator_AmemDmemBalance(t *testing.T) {

	src := `
program p;
var a, b : integer;
procedure q;
var local : boolean;
begin local := true end;
begin q() end.`
	code := generate(t, src)

	// the program block allocates and releases two slots, the
	// procedure block one
	assert.Contains(t, code, "     AMEM 2")
	assert.Contains(t, code, "     DMEM 2")
	assert.Contains(t, code, "     AMEM 1")
	assert.Contains(t, code, "     DMEM 1")

	lines := strings.Split(code, "\n")
	amem := 0
	dmem := 0
	for _, line := range lines {
		if strings.Contains(line, "AMEM") {
			amem++
		}
		if strings.Contains(line, "DMEM") {
			dmem++
		}
	}
	assert.Equal(t, amem, dmem)
}
