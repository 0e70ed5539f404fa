// Package api derives the operation catalog a datamodel entails: the fixed
// CRUD, exists and subscribe operations every type receives, plus a
// fetch-by-unique-field read variant per @unique scalar field. The catalog
// is a pure derivation of the validated graph and is consumed by external
// client- and API-generation tooling.
package api

import (
	"github.com/welevelacademy/prisma/compiler/gen"
)

// Kind enumerates the derived operation kinds.
type Kind uint8

// Operation kinds. Every type receives one of each except GetByUnique,
// which appears once per @unique scalar field.
const (
	Get Kind = iota
	GetByUnique
	List
	Create
	Update
	Delete
	Exists
	Subscribe
)

var kindNames = [...]string{
	Get:         "get",
	GetByUnique: "getByUnique",
	List:        "list",
	Create:      "create",
	Update:      "update",
	Delete:      "delete",
	Exists:      "exists",
	Subscribe:   "subscribe",
}

// String returns the catalog name of the kind.
func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// Operation is one derived API operation of a type.
type Operation struct {
	Kind Kind   `json:"kind"`
	Name string `json:"name"`
	Type string `json:"type"`
	// UniqueField names the @unique field of a GetByUnique variant;
	// UniqueType carries its scalar (or enum) type for rendering.
	UniqueField string `json:"unique_field,omitempty"`
	UniqueType  string `json:"unique_type,omitempty"`
	// List operations support filtering, ordering and pagination.
	Filter   bool `json:"filter,omitempty"`
	Sort     bool `json:"sort,omitempty"`
	Paginate bool `json:"paginate,omitempty"`
}

// TypeSurface is the operation set of one type.
type TypeSurface struct {
	Type       string       `json:"type"`
	Operations []*Operation `json:"operations"`
}

// Catalog is the full operation catalog of a datamodel, in type
// declaration order.
type Catalog struct {
	Types []*TypeSurface `json:"types"`
}

// Surface returns the operation set of the named type, or nil.
func (c *Catalog) Surface(typeName string) *TypeSurface {
	for _, t := range c.Types {
		if t.Type == typeName {
			return t
		}
	}
	return nil
}

// Operation returns the first operation of the given kind, or nil.
func (t *TypeSurface) Operation(kind Kind) *Operation {
	for _, op := range t.Operations {
		if op.Kind == kind {
			return op
		}
	}
	return nil
}

// ByUnique returns the fetch-by-unique-field variant for the given field,
// or nil.
func (t *TypeSurface) ByUnique(field string) *Operation {
	for _, op := range t.Operations {
		if op.Kind == GetByUnique && op.UniqueField == field {
			return op
		}
	}
	return nil
}

// Derive enumerates the operations of every type in the graph.
// @relationTable join types expose no API; they exist only as storage.
func Derive(g *gen.Graph) *Catalog {
	c := &Catalog{}
	for _, node := range g.Nodes {
		if node.JoinTable {
			continue
		}
		c.Types = append(c.Types, derive(node))
	}
	return c
}

// scalarName is the rendered type name of a scalar field: the enum name
// for enum fields, the kind name otherwise.
func scalarName(f *gen.Field) string {
	if f.Kind == gen.KindEnum {
		return f.Enum.Name
	}
	return f.Kind.String()
}

func derive(node *gen.Type) *TypeSurface {
	var (
		one  = gen.Camel(node.Name)
		many = gen.Camel(gen.Plural(node.Name))
	)
	s := &TypeSurface{Type: node.Name}
	s.Operations = append(s.Operations,
		&Operation{Kind: Get, Name: one, Type: node.Name},
	)
	for _, f := range node.UniqueFields() {
		s.Operations = append(s.Operations, &Operation{
			Kind: GetByUnique, Name: one, Type: node.Name,
			UniqueField: f.Name, UniqueType: scalarName(f),
		})
	}
	s.Operations = append(s.Operations,
		&Operation{Kind: List, Name: many, Type: node.Name, Filter: true, Sort: true, Paginate: true},
		&Operation{Kind: Create, Name: "create" + node.Name, Type: node.Name},
		&Operation{Kind: Update, Name: "update" + node.Name, Type: node.Name},
		&Operation{Kind: Delete, Name: "delete" + node.Name, Type: node.Name},
		&Operation{Kind: Exists, Name: one + "Exists", Type: node.Name},
		&Operation{Kind: Subscribe, Name: one, Type: node.Name},
	)
	return s
}
