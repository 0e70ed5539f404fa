// Package gen builds the validated datamodel graph that the storage-schema
// synthesizer and the API-surface deriver consume. It merges the parsed SDL
// files of one service into a single graph, validates naming conventions and
// directive placement in one batch pass, and resolves relation fields into
// relation edges with multiplicity, link strategy and delete behavior.
package gen

import (
	"github.com/welevelacademy/prisma"
	"github.com/welevelacademy/prisma/sdl"
)

type (
	// Graph is the validated datamodel: all object types, enums and
	// resolved relations of one service, in declaration order. A Graph is
	// immutable once NewGraph returns it.
	Graph struct {
		// Nodes holds the object types in declaration order across
		// the merged files, @relationTable join types included.
		Nodes []*Type
		// Enums holds the enum declarations in declaration order.
		Enums []*Enum
		// Relations holds the resolved relation edges. Order is
		// deterministic: type-pair groups in first-declaration order,
		// relation names in first-use order within a group.
		Relations []*Relation

		nodes map[string]*Type
		enums map[string]*Enum
	}

	// Type represents one object type of the datamodel and the table it
	// maps to.
	Type struct {
		// Name holds the type name as declared.
		Name string
		// Pos points at the declaration for diagnostics.
		Pos prisma.Position
		// ID holds the @id field of this type. It is nil only for
		// @relationTable join types.
		ID *Field
		// Fields holds the scalar and enum fields in declaration
		// order, excluding the ID field.
		Fields []*Field
		// Edges holds the relation fields in declaration order.
		Edges []*Edge
		// DBName holds the @db(name: ...) table override, if any.
		DBName string
		// JoinTable indicates a @relationTable type: a user-controlled
		// junction table for one many-to-many relation.
		JoinTable bool

		fields map[string]*Field
		decl   *sdl.TypeDecl
	}

	// Field holds a scalar or enum field of a type and the column it
	// maps to.
	Field struct {
		// Name holds the field name as declared.
		Name string
		// Pos points at the field line for diagnostics.
		Pos prisma.Position
		// Kind holds the scalar kind of the field.
		Kind Kind
		// Enum points to the enum declaration for KindEnum fields.
		Enum *Enum
		// List indicates a scalar list field ([String!]!).
		List bool
		// Required indicates the outer `!` modifier.
		Required bool
		// ElemRequired indicates the inner `!` modifier of list fields.
		ElemRequired bool
		// Unique indicates an @unique field.
		Unique bool
		// IsID indicates the @id field.
		IsID bool
		// CreatedAt and UpdatedAt mark the automatic timestamp fields.
		CreatedAt bool
		UpdatedAt bool
		// HasDefault indicates an @default directive; Default holds
		// its literal.
		HasDefault bool
		Default    *sdl.Value
		// DBName holds the @db(name: ...) column override, if any.
		DBName string
		// ScalarList indicates an @scalarList(strategy: RELATION)
		// field, stored in a dedicated value table.
		ScalarList bool

		typ *Type
	}

	// Enum represents an enum declaration.
	Enum struct {
		// Name holds the enum name as declared.
		Name string
		// Pos points at the declaration for diagnostics.
		Pos prisma.Position
		// Values holds the distinct member names in declaration order.
		Values []string
	}
)

// Node returns the type with the given name, or nil.
func (g *Graph) Node(name string) *Type { return g.nodes[name] }

// Enum returns the enum with the given name, or nil.
func (g *Graph) Enum(name string) *Enum { return g.enums[name] }

// Table returns the table name this type maps to: the @db override when
// present, the type name otherwise.
func (t *Type) Table() string {
	if t.DBName != "" {
		return t.DBName
	}
	return t.Name
}

// Label returns the snake_case label of the type, used in diagnostics.
func (t *Type) Label() string { return snake(t.Name) }

// Field returns the scalar field with the given name, or nil. The ID field
// is included.
func (t *Type) Field(name string) *Field { return t.fields[name] }

// Edge returns the relation field with the given name, or nil.
func (t *Type) Edge(name string) *Edge {
	for _, e := range t.Edges {
		if e.Name == name {
			return e
		}
	}
	return nil
}

// UniqueFields returns the @unique scalar fields in declaration order,
// excluding the ID field.
func (t *Type) UniqueFields() []*Field {
	var unique []*Field
	for _, f := range t.Fields {
		if f.Unique {
			unique = append(unique, f)
		}
	}
	return unique
}

// Column returns the column name this field maps to: the @db override when
// present, the field name otherwise.
func (f *Field) Column() string {
	if f.DBName != "" {
		return f.DBName
	}
	return f.Name
}

// Owner returns the type declaring this field.
func (f *Field) Owner() *Type { return f.typ }

// Optional reports whether the column backing this field is nullable.
func (f *Field) Optional() bool { return !f.Required && !f.IsID }

// HasValue reports whether the enum declares the given member.
func (e *Enum) HasValue(name string) bool {
	for _, v := range e.Values {
		if v == name {
			return true
		}
	}
	return false
}
