/*
File    : rascal-compiler/scope/scope.go
Author  : Sergio Cezar
*/

// Package scope implements the nested symbol tables used by the semantic
// analyzer. A SymbolTable maps names to SymbolEntry records and chains to
// its parent, so resolution walks outward through the static nesting of
// procedure and function bodies. Entries carry the (level, offset) pair
// the code generator later turns into MEPA addresses.
package scope

// RascalType identifies a Rascal value type as a string constant.
// Only the two primitive types exist; NoType marks entries that carry
// no value type (the program name, procedures).
type RascalType string

const (
	// IntegerType represents integer values
	IntegerType RascalType = "integer"
	// BooleanType represents boolean (true/false) values
	BooleanType RascalType = "boolean"
	// NoType marks entries without a value type
	NoType RascalType = ""
)

// Category classifies what kind of name a SymbolEntry binds.
type Category string

const (
	// ProgramCategory is the program name itself
	ProgramCategory Category = "program"
	// VarCategory is a declared variable (includes the synthetic
	// function return slot)
	VarCategory Category = "var"
	// ParamCategory is a subroutine parameter
	ParamCategory Category = "param"
	// ProcCategory is a procedure name
	ProcCategory Category = "proc"
	// FuncCategory is a function name
	FuncCategory Category = "func"
)

// SymbolEntry stores the information the compiler keeps about one
// declared name.
//
// Fields:
//   - Name: The declared identifier
//   - Type: Value type for vars/params, return type for functions,
//     NoType otherwise
//   - Category: What kind of name this is (var, param, proc, func, program)
//   - Level: The static nesting level of the defining scope; for proc and
//     func entries it is the nesting level of their own body instead
//   - Offset: Slot index inside the activation record. Variables take
//     0, 1, 2, ... in declaration order; parameters take the negative
//     offsets of the MEPA calling convention
//   - Params: The parameter type signature, for proc and func entries
//   - Label: The unique code label of a proc or func entry, assigned
//     during semantic analysis
type SymbolEntry struct {
	Name     string       // Declared identifier
	Type     RascalType   // Value type (or return type)
	Category Category     // Kind of name
	Level    int          // Static nesting level
	Offset   int          // Slot index within the activation record
	Params   []RascalType // Parameter signature (proc/func only)
	Label    string       // Code label (proc/func only)
}

// SymbolTable is one scope: a mapping from names to entries plus a
// reference to the enclosing scope.
//
// Fields:
//   - Symbols: Name to entry bindings of this scope only
//   - Parent: The enclosing scope, nil for the outermost (program) scope
//   - Level: The static nesting level of this scope (0 for the program)
//   - OffsetCounter: Next free variable slot; advanced only by
//     VarCategory definitions so parameters never disturb local layout
type SymbolTable struct {
	Symbols       map[string]*SymbolEntry // Bindings local to this scope
	Parent        *SymbolTable            // Enclosing scope, or nil
	Level         int                     // Static nesting level
	OffsetCounter int                     // Next variable slot index
}

// NewSymbolTable creates a scope at the given nesting level, chained to
// the given parent (nil for the outermost scope).
//
// Example:
//
//	global := NewSymbolTable(nil, 0)        // program scope
//	inner := NewSymbolTable(global, 1)      // a subroutine body
func NewSymbolTable(parent *SymbolTable, level int) *SymbolTable {
	return &SymbolTable{
		Symbols: make(map[string]*SymbolEntry),
		Parent:  parent,
		Level:   level,
	}
}

// Define inserts a new symbol into the current scope only.
// The offset is taken from the scope's counter, which advances by one
// for VarCategory definitions and stays put for every other category.
//
// Returns the new entry and true, or nil and false when the name already
// exists in this scope (redefinition).
func (st *SymbolTable) Define(name string, typ RascalType, category Category) (*SymbolEntry, bool) {
	if _, has := st.Symbols[name]; has {
		return nil, false
	}
	entry := &SymbolEntry{
		Name:     name,
		Type:     typ,
		Category: category,
		Level:    st.Level,
		Offset:   st.OffsetCounter,
	}
	if category == VarCategory {
		st.OffsetCounter++
	}
	st.Symbols[name] = entry
	return entry, true
}

// DefineAt inserts a new symbol with a forced offset, bypassing the
// scope's counter. Used for parameters and for the synthetic function
// return slot, whose offsets are fixed by the calling convention.
//
// Returns the new entry and true, or nil and false on redefinition.
func (st *SymbolTable) DefineAt(name string, typ RascalType, category Category, offset int) (*SymbolEntry, bool) {
	if _, has := st.Symbols[name]; has {
		return nil, false
	}
	entry := &SymbolEntry{
		Name:     name,
		Type:     typ,
		Category: category,
		Level:    st.Level,
		Offset:   offset,
	}
	st.Symbols[name] = entry
	return entry, true
}

// Resolve searches for a name in this scope and then outward through
// the parent chain, returning the innermost binding or nil.
//
// Inner bindings shadow outer ones, which gives the language its
// standard lexical scoping rules.
func (st *SymbolTable) Resolve(name string) *SymbolEntry {
	if entry, ok := st.Symbols[name]; ok {
		return entry
	}
	if st.Parent != nil {
		return st.Parent.Resolve(name)
	}
	return nil
}
