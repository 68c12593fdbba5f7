/*
File    : rascal-compiler/scope/scope_test.go
Author  : Sergio Cezar
*/
package scope

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestSymbolTable_DefineAssignsOffsetsInOrder checks that successive
// variable definitions take offsets 0, 1, 2, ...
func TestSymbolTable_DefineAssignsOffsetsInOrder(t *testing.T) {
	st := NewSymbolTable(nil, 0)

	a, ok := st.Define("a", IntegerType, VarCategory)
	assert.True(t, ok)
	b, ok := st.Define("b", IntegerType, VarCategory)
	assert.True(t, ok)
	c, ok := st.Define("c", BooleanType, VarCategory)
	assert.True(t, ok)

	assert.Equal(t, 0, a.Offset)
	assert.Equal(t, 1, b.Offset)
	assert.Equal(t, 2, c.Offset)
	assert.Equal(t, 0, a.Level)
}

// TestSymbolTable_OnlyVarsAdvanceTheCounter checks that proc/func and
// forced-offset definitions leave the variable counter alone
func TestSymbolTable_OnlyVarsAdvanceTheCounter(t *testing.T) {
	st := NewSymbolTable(nil, 1)

	_, ok := st.Define("helper", NoType, ProcCategory)
	assert.True(t, ok)
	_, ok = st.DefineAt("x", IntegerType, ParamCategory, -5)
	assert.True(t, ok)

	v, ok := st.Define("local", IntegerType, VarCategory)
	assert.True(t, ok)
	assert.Equal(t, 0, v.Offset)
}

// TestSymbolTable_DefineRejectsDuplicates checks local redefinition
func TestSymbolTable_DefineRejectsDuplicates(t *testing.T) {
	st := NewSymbolTable(nil, 0)

	_, ok := st.Define("x", IntegerType, VarCategory)
	assert.True(t, ok)
	entry, ok := st.Define("x", BooleanType, VarCategory)
	assert.False(t, ok)
	assert.Nil(t, entry)

	// DefineAt applies the same rule
	entry, ok = st.DefineAt("x", IntegerType, ParamCategory, -5)
	assert.False(t, ok)
	assert.Nil(t, entry)
}

// TestSymbolTable_ResolveWalksTheParentChain checks outward resolution
// and shadowing
func TestSymbolTable_ResolveWalksTheParentChain(t *testing.T) {
	global := NewSymbolTable(nil, 0)
	inner := NewSymbolTable(global, 1)

	outerX, _ := global.Define("x", IntegerType, VarCategory)
	y, _ := global.Define("y", BooleanType, VarCategory)

	// inner sees both through the chain
	assert.Equal(t, outerX, inner.Resolve("x"))
	assert.Equal(t, y, inner.Resolve("y"))

	// a local x shadows the outer one
	innerX, _ := inner.Define("x", BooleanType, VarCategory)
	assert.Equal(t, innerX, inner.Resolve("x"))
	assert.Equal(t, outerX, global.Resolve("x"))

	// unknown names resolve to nil
	assert.Nil(t, inner.Resolve("z"))
}

// TestSymbolTable_SiblingScopesAreIsolated checks that two scopes under
// the same parent never see each other's names
func TestSymbolTable_SiblingScopesAreIsolated(t *testing.T) {
	global := NewSymbolTable(nil, 0)
	left := NewSymbolTable(global, 1)
	right := NewSymbolTable(global, 1)

	leftX, _ := left.Define("x", IntegerType, VarCategory)
	rightX, _ := right.Define("x", IntegerType, VarCategory)

	assert.NotSame(t, leftX, rightX)
	assert.Equal(t, leftX, left.Resolve("x"))
	assert.Equal(t, rightX, right.Resolve("x"))
	assert.Nil(t, global.Resolve("x"))
}
