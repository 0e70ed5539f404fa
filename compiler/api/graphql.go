package api

import (
	"strings"

	"github.com/vektah/gqlparser/v2/ast"
	"github.com/vektah/gqlparser/v2/formatter"

	"github.com/welevelacademy/prisma/compiler/gen"
)

// Document renders the graph and its catalog as a GraphQL schema document:
// one object type per datamodel type, the declared enums, and the
// Query/Mutation/Subscription roots listing the derived operations. The
// definitions follow declaration order, so the rendering is deterministic.
func Document(g *gen.Graph, c *Catalog) *ast.SchemaDocument {
	doc := &ast.SchemaDocument{}
	doc.Definitions = append(doc.Definitions,
		&ast.Definition{Kind: ast.Scalar, Name: "DateTime"},
		&ast.Definition{Kind: ast.Scalar, Name: "Json"},
	)
	for _, e := range g.Enums {
		def := &ast.Definition{Kind: ast.Enum, Name: e.Name}
		for _, v := range e.Values {
			def.EnumValues = append(def.EnumValues, &ast.EnumValueDefinition{Name: v})
		}
		doc.Definitions = append(doc.Definitions, def)
	}
	for _, node := range g.Nodes {
		if node.JoinTable {
			continue
		}
		doc.Definitions = append(doc.Definitions, objectType(node))
	}
	doc.Definitions = append(doc.Definitions,
		queryType(c), mutationType(c), subscriptionType(c))
	return doc
}

// Render formats the schema document as GraphQL SDL text.
func Render(g *gen.Graph, c *Catalog) string {
	var b strings.Builder
	formatter.NewFormatter(&b).FormatSchemaDocument(Document(g, c))
	return b.String()
}

func objectType(node *gen.Type) *ast.Definition {
	def := &ast.Definition{Kind: ast.Object, Name: node.Name}
	if node.ID != nil {
		def.Fields = append(def.Fields, &ast.FieldDefinition{
			Name: node.ID.Name,
			Type: ast.NonNullNamedType("ID", nil),
		})
	}
	for _, f := range node.Fields {
		def.Fields = append(def.Fields, &ast.FieldDefinition{
			Name: f.Name,
			Type: fieldType(f),
		})
	}
	for _, e := range node.Edges {
		def.Fields = append(def.Fields, &ast.FieldDefinition{
			Name: e.Name,
			Type: refType(e.Type.Name, e.List, e.Required),
		})
	}
	return def
}

func fieldType(f *gen.Field) *ast.Type {
	return refType(scalarName(f), f.List, f.Required)
}

func refType(name string, list, required bool) *ast.Type {
	if list {
		t := ast.ListType(ast.NonNullNamedType(name, nil), nil)
		t.NonNull = required
		return t
	}
	if required {
		return ast.NonNullNamedType(name, nil)
	}
	return ast.NamedType(name, nil)
}

func queryType(c *Catalog) *ast.Definition {
	def := &ast.Definition{Kind: ast.Object, Name: "Query"}
	for _, t := range c.Types {
		for _, op := range t.Operations {
			switch op.Kind {
			case Get:
				def.Fields = append(def.Fields, &ast.FieldDefinition{
					Name:      op.Name,
					Arguments: whereUnique(t, "id"),
					Type:      ast.NamedType(op.Type, nil),
				})
			case List:
				def.Fields = append(def.Fields, &ast.FieldDefinition{
					Name:      op.Name,
					Arguments: listArguments(),
					Type:      ast.NonNullListType(ast.NonNullNamedType(op.Type, nil), nil),
				})
			case Exists:
				def.Fields = append(def.Fields, &ast.FieldDefinition{
					Name:      op.Name,
					Arguments: whereUnique(t, "id"),
					Type:      ast.NonNullNamedType("Boolean", nil),
				})
			}
		}
	}
	return def
}

func mutationType(c *Catalog) *ast.Definition {
	def := &ast.Definition{Kind: ast.Object, Name: "Mutation"}
	for _, t := range c.Types {
		for _, op := range t.Operations {
			switch op.Kind {
			case Create:
				def.Fields = append(def.Fields, &ast.FieldDefinition{
					Name: op.Name,
					Type: ast.NonNullNamedType(op.Type, nil),
				})
			case Update, Delete:
				def.Fields = append(def.Fields, &ast.FieldDefinition{
					Name:      op.Name,
					Arguments: whereUnique(t, "id"),
					Type:      ast.NamedType(op.Type, nil),
				})
			}
		}
	}
	return def
}

func subscriptionType(c *Catalog) *ast.Definition {
	def := &ast.Definition{Kind: ast.Object, Name: "Subscription"}
	for _, t := range c.Types {
		if op := t.Operation(Subscribe); op != nil {
			def.Fields = append(def.Fields, &ast.FieldDefinition{
				Name: op.Name,
				Type: ast.NamedType(op.Type, nil),
			})
		}
	}
	return def
}

// whereUnique builds the selector argument list of a single-node operation:
// the identifier plus every unique field the type exposes a fetch variant
// for.
func whereUnique(t *TypeSurface, idName string) ast.ArgumentDefinitionList {
	args := ast.ArgumentDefinitionList{
		{Name: idName, Type: ast.NamedType("ID", nil)},
	}
	for _, op := range t.Operations {
		if op.Kind == GetByUnique {
			args = append(args, &ast.ArgumentDefinition{
				Name: op.UniqueField,
				Type: ast.NamedType(op.UniqueType, nil),
			})
		}
	}
	return args
}

func listArguments() ast.ArgumentDefinitionList {
	return ast.ArgumentDefinitionList{
		{Name: "where", Type: ast.NamedType("Json", nil)},
		{Name: "orderBy", Type: ast.NamedType("String", nil)},
		{Name: "skip", Type: ast.NamedType("Int", nil)},
		{Name: "first", Type: ast.NamedType("Int", nil)},
		{Name: "last", Type: ast.NamedType("Int", nil)},
	}
}
