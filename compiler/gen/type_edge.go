package gen

import (
	"sort"

	"github.com/welevelacademy/prisma"
)

// Kind is the scalar kind of a field.
type Kind uint8

// Scalar kinds supported by the datamodel.
const (
	KindInvalid Kind = iota
	KindString
	KindInt
	KindFloat
	KindBoolean
	KindDateTime
	KindJSON
	KindID
	KindEnum
)

var kindNames = [...]string{
	KindInvalid:  "Invalid",
	KindString:   "String",
	KindInt:      "Int",
	KindFloat:    "Float",
	KindBoolean:  "Boolean",
	KindDateTime: "DateTime",
	KindJSON:     "Json",
	KindID:       "ID",
	KindEnum:     "Enum",
}

// String returns the SDL name of the kind.
func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "Invalid"
}

// scalarKinds maps SDL type names to their scalar kind.
var scalarKinds = map[string]Kind{
	"String":   KindString,
	"Int":      KindInt,
	"Float":    KindFloat,
	"Boolean":  KindBoolean,
	"DateTime": KindDateTime,
	"Json":     KindJSON,
	"ID":       KindID,
}

// Rel is the multiplicity of a relation.
type Rel uint8

// Relation multiplicities.
const (
	O2O Rel = iota // one-to-one
	O2M            // one-to-many
	M2M            // many-to-many
)

// String returns the multiplicity name.
func (r Rel) String() string {
	switch r {
	case O2O:
		return "O2O"
	case O2M:
		return "O2M"
	default:
		return "M2M"
	}
}

// Link is the storage strategy of a relation.
type Link uint8

// Link strategies. LinkNone means no explicit link argument was given.
const (
	LinkNone Link = iota
	Inline
	Table
)

// String returns the SDL argument value of the link strategy.
func (l Link) String() string {
	switch l {
	case Inline:
		return "INLINE"
	case Table:
		return "TABLE"
	default:
		return ""
	}
}

// OnDelete is the delete behavior applied to the other end of a relation
// when a node is deleted.
type OnDelete uint8

// Delete behaviors. SetNull is the documented default.
const (
	SetNull OnDelete = iota
	Cascade
)

// String returns the SDL argument value of the delete behavior.
func (d OnDelete) String() string {
	if d == Cascade {
		return "CASCADE"
	}
	return "SET_NULL"
}

// Edge is a relation field: a field whose type references another object
// type (or the same type for self-relations).
type Edge struct {
	// Owner holds the type declaring the field.
	Owner *Type
	// Name holds the field name as declared.
	Name string
	// Pos points at the field line for diagnostics.
	Pos prisma.Position
	// Type holds the referenced type.
	Type *Type
	// List and Required hold the field modifiers.
	List     bool
	Required bool
	// RelName holds the @relation(name: ...) argument, if any.
	RelName string
	// Link holds the explicit @relation(link: ...) argument, LinkNone
	// when absent.
	Link Link
	// OnDelete holds the @relation(onDelete: ...) argument. Defaults
	// to SetNull.
	OnDelete OnDelete
	// DBName holds the @db(name: ...) column override, if any.
	DBName string
	// Rel points to the resolved relation this edge belongs to.
	Rel *Relation
}

// Column returns the foreign-key column name this edge maps to when stored
// inline: the @db override when present, the field name otherwise.
func (e *Edge) Column() string {
	if e.DBName != "" {
		return e.DBName
	}
	return e.Name
}

// Label returns the owner-qualified label of the edge, used in diagnostics.
func (e *Edge) Label() string { return e.Owner.Name + "." + e.Name }

// Relation is a resolved connection between two types (or one type and
// itself). It is created by relation resolution and immutable afterwards.
type Relation struct {
	// Name holds the relation name: the explicit @relation(name: ...)
	// value, or the derived `<A>To<B>` form with the endpoint type names
	// in alphabetical order.
	Name string
	// Explicit indicates the name was given in the datamodel.
	Explicit bool
	// Type holds the multiplicity.
	Type Rel
	// Link holds the resolved storage strategy.
	Link Link
	// Edges holds the declared endpoints in declaration order: two for
	// bidirectional relations, one for unidirectional ones.
	Edges []*Edge
	// Types holds the endpoint types with Types[0].Name <= Types[1].Name.
	// Self-relations repeat the same type.
	Types [2]*Type
	// Through points to the @relationTable join type bound to this
	// relation, if any.
	Through *Type
}

// Bidirectional reports whether both endpoints are declared as fields.
func (r *Relation) Bidirectional() bool { return len(r.Edges) == 2 }

// SelfRelation reports whether both endpoints are on the same type.
func (r *Relation) SelfRelation() bool { return r.Types[0] == r.Types[1] }

// Owning returns the edge whose table stores the inline foreign key, or nil
// for TABLE-linked relations. For one-to-many relations it is the non-list
// endpoint (the "many" side's table holds the key); for one-to-one relations
// it is the endpoint that declared link: INLINE.
func (r *Relation) Owning() *Edge {
	if r.Link != Inline {
		return nil
	}
	for _, e := range r.Edges {
		if r.Type == O2O && e.Link == Inline {
			return e
		}
		if r.Type == O2M && !e.List {
			return e
		}
	}
	return nil
}

// Inverse returns the opposite endpoint of the given edge, or nil for
// unidirectional relations.
func (r *Relation) Inverse(e *Edge) *Edge {
	for _, other := range r.Edges {
		if other != e {
			return other
		}
	}
	return nil
}

// TableName returns the relation table name: the join type's table for
// @relationTable-backed relations, `_<name>` otherwise. It is meaningful
// only for TABLE-linked relations.
func (r *Relation) TableName() string {
	if r.Through != nil {
		return r.Through.Table()
	}
	return "_" + r.Name
}

// defaultRelName derives the relation name from the endpoint type names,
// alphabetically ordered.
func defaultRelName(a, b string) string {
	names := []string{a, b}
	sort.Strings(names)
	return names[0] + "To" + names[1]
}
