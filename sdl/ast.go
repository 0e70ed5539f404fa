// Package sdl parses Prisma schema-definition-language datamodels into an
// abstract syntax tree. The grammar covers type and enum blocks, field lines
// with list and required modifiers, and directive suffixes with parenthesized
// key:value argument lists. Parsing is pure: the same source always yields
// the same tree, and a malformed file yields a prisma.SyntaxError.
package sdl

import (
	"fmt"
	"strconv"

	"github.com/alecthomas/participle/v2/lexer"

	"github.com/welevelacademy/prisma"
)

// Source is one named SDL input, usually a .prisma file.
type Source struct {
	Name string
	Text string
}

// File is the parse result of a single source.
type File struct {
	Name      string
	Datamodel *Datamodel
}

// Datamodel is the root of the AST: an ordered list of declarations.
type Datamodel struct {
	Declarations []*Declaration `parser:"@@*"`
}

// Declaration is a single top-level block.
type Declaration struct {
	Type *TypeDecl `parser:"@@"`
	Enum *EnumDecl `parser:"| @@"`
}

// TypeDecl is a `type` block: a name, optional type-level directives, and an
// ordered field list.
type TypeDecl struct {
	Pos        lexer.Position
	Name       string       `parser:"'type' @Ident"`
	Directives []*Directive `parser:"@@*"`
	Fields     []*FieldDecl `parser:"'{' @@* '}'"`
}

// Directive returns the first directive with the given name, or nil.
func (t *TypeDecl) Directive(name string) *Directive {
	for _, d := range t.Directives {
		if d.Name == name {
			return d
		}
	}
	return nil
}

// EnumDecl is an `enum` block: a name and an ordered list of value names.
type EnumDecl struct {
	Pos    lexer.Position
	Name   string       `parser:"'enum' @Ident"`
	Values []*EnumValue `parser:"'{' @@* '}'"`
}

// EnumValue is a single enum member. Trailing commas are tolerated even
// though the documented style separates values by newlines.
type EnumValue struct {
	Pos  lexer.Position
	Name string `parser:"@Ident ','?"`
}

// FieldDecl is one field inside a type block. Fields are separated by
// newlines or optional commas, so single-line type declarations parse too.
type FieldDecl struct {
	Pos        lexer.Position
	Name       string       `parser:"@Ident ':'"`
	Type       *TypeRef     `parser:"@@"`
	Directives []*Directive `parser:"@@* ','?"`
}

// Directive returns the first directive with the given name, or nil.
func (f *FieldDecl) Directive(name string) *Directive {
	for _, d := range f.Directives {
		if d.Name == name {
			return d
		}
	}
	return nil
}

// TypeRef is a field type reference: either `Name` with an optional `!`, or
// a list form `[Name!]` with optional inner and outer `!` modifiers.
type TypeRef struct {
	Pos   lexer.Position
	List  *ListRef  `parser:"@@"`
	Named *NamedRef `parser:"| @@"`
}

// ListRef is the `[Elem!]!` form.
type ListRef struct {
	Elem         string `parser:"'[' @Ident"`
	ElemRequired bool   `parser:"@'!'? ']'"`
	Required     bool   `parser:"@'!'?"`
}

// NamedRef is the plain `Name!` form.
type NamedRef struct {
	Name     string `parser:"@Ident"`
	Required bool   `parser:"@'!'?"`
}

// Name returns the referenced type name.
func (r *TypeRef) Name() string {
	if r.List != nil {
		return r.List.Elem
	}
	return r.Named.Name
}

// IsList reports whether the reference uses the list form.
func (r *TypeRef) IsList() bool { return r.List != nil }

// IsRequired reports whether the outer reference carries a `!` modifier.
func (r *TypeRef) IsRequired() bool {
	if r.List != nil {
		return r.List.Required
	}
	return r.Named.Required
}

// ElemRequired reports whether the list element carries a `!` modifier.
// It is false for non-list references.
func (r *TypeRef) ElemRequired() bool {
	return r.List != nil && r.List.ElemRequired
}

// Directive is an `@name(arg: value, ...)` suffix on a type or field.
type Directive struct {
	Pos  lexer.Position
	Name string      `parser:"'@' @Ident"`
	Args []*Argument `parser:"('(' @@ (',' @@)* ')')?"`
}

// Arg returns the argument with the given name, or nil.
func (d *Directive) Arg(name string) *Argument {
	for _, a := range d.Args {
		if a.Name == name {
			return a
		}
	}
	return nil
}

// Argument is one `name: value` pair in a directive argument list.
type Argument struct {
	Pos   lexer.Position
	Name  string `parser:"@Ident ':'"`
	Value *Value `parser:"@@"`
}

// Boolean captures `true`/`false` literals.
type Boolean bool

// Capture implements the participle capture interface.
func (b *Boolean) Capture(values []string) error {
	*b = values[0] == "true"
	return nil
}

// Value is a directive argument literal: string, float, integer, boolean or
// bare enum-value identifier.
type Value struct {
	Pos    lexer.Position
	Str    *string  `parser:"@String"`
	Float  *float64 `parser:"| @Float"`
	Int    *int64   `parser:"| @Int"`
	Bool   *Boolean `parser:"| @('true' | 'false')"`
	Symbol *string  `parser:"| @Ident"`
}

// StringVal returns the string literal, if the value is one.
func (v *Value) StringVal() (string, bool) {
	if v.Str == nil {
		return "", false
	}
	return *v.Str, true
}

// IntVal returns the integer literal, if the value is one.
func (v *Value) IntVal() (int64, bool) {
	if v.Int == nil {
		return 0, false
	}
	return *v.Int, true
}

// FloatVal returns the float literal, if the value is one. Integer literals
// are accepted where a float is expected.
func (v *Value) FloatVal() (float64, bool) {
	switch {
	case v.Float != nil:
		return *v.Float, true
	case v.Int != nil:
		return float64(*v.Int), true
	}
	return 0, false
}

// BoolVal returns the boolean literal, if the value is one.
func (v *Value) BoolVal() (bool, bool) {
	if v.Bool == nil {
		return false, false
	}
	return bool(*v.Bool), true
}

// SymbolVal returns the bare identifier, if the value is one. Symbols stand
// for enum values such as INLINE, TABLE, CASCADE or user enum members.
func (v *Value) SymbolVal() (string, bool) {
	if v.Symbol == nil {
		return "", false
	}
	return *v.Symbol, true
}

// String renders the literal the way it appeared in the source.
func (v *Value) String() string {
	switch {
	case v.Str != nil:
		return strconv.Quote(*v.Str)
	case v.Float != nil:
		return strconv.FormatFloat(*v.Float, 'f', -1, 64)
	case v.Int != nil:
		return strconv.FormatInt(*v.Int, 10)
	case v.Bool != nil:
		return strconv.FormatBool(bool(*v.Bool))
	case v.Symbol != nil:
		return *v.Symbol
	}
	return ""
}

// Raw renders the literal without string quoting, for use as a column default.
func (v *Value) Raw() string {
	if v.Str != nil {
		return *v.Str
	}
	return v.String()
}

// Pos converts a lexer position into a diagnostic position.
func Pos(p lexer.Position) prisma.Position {
	return prisma.Position{File: p.Filename, Line: p.Line, Column: p.Column}
}

func (t *TypeDecl) String() string  { return fmt.Sprintf("type %s", t.Name) }
func (e *EnumDecl) String() string  { return fmt.Sprintf("enum %s", e.Name) }
func (f *FieldDecl) String() string { return fmt.Sprintf("%s: %s", f.Name, f.Type.Name()) }
