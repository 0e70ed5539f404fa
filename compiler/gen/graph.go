package gen

import (
	"errors"
	"fmt"

	"github.com/welevelacademy/prisma"
	"github.com/welevelacademy/prisma/sdl"
)

// graphBuilder accumulates the graph and the batch of diagnostics while the
// merged AST is checked. Validation is all-or-nothing: every violation found
// in the pass is reported, and no graph is produced if any exists.
type graphBuilder struct {
	graph *Graph
	errs  []error
	// relNames tracks resolved relation names across the whole graph.
	// Names are global: the relation table `_<name>` is derived from
	// them, so a reuse between different type pairs would collide.
	relNames map[string]*Relation
}

// NewGraph merges the parsed files of one service into a validated graph.
// Type and enum names must be globally unique across files. On failure it
// returns the joined batch of diagnostics; the individual errors can be
// classified with the prisma.Is* helpers.
func NewGraph(files ...*sdl.File) (*Graph, error) {
	b := &graphBuilder{
		graph: &Graph{
			nodes: make(map[string]*Type),
			enums: make(map[string]*Enum),
		},
		relNames: make(map[string]*Relation),
	}
	var types []*sdl.TypeDecl
	for _, f := range files {
		for _, d := range f.Datamodel.Declarations {
			switch {
			case d.Type != nil:
				types = append(types, d.Type)
			case d.Enum != nil:
				b.addEnum(d.Enum)
			}
		}
	}
	// Register all type names before building fields, so a field may
	// reference a type declared later or in another file.
	for _, decl := range types {
		b.addType(decl)
	}
	for _, node := range b.graph.Nodes {
		b.buildFields(node)
	}
	b.resolveRelations()
	b.bindRelationTables()
	if err := errors.Join(b.errs...); err != nil {
		return nil, err
	}
	return b.graph, nil
}

func (b *graphBuilder) fail(kind string, pos prisma.Position, typeName, fieldName, format string, args ...any) {
	b.errs = append(b.errs, &prisma.ValidationError{
		Kind: kind, Pos: pos, Type: typeName, Field: fieldName,
		Message: fmt.Sprintf(format, args...),
	})
}

func (b *graphBuilder) addEnum(decl *sdl.EnumDecl) {
	pos := sdl.Pos(decl.Pos)
	if !validTypeName(decl.Name) {
		b.fail(prisma.KindNaming, pos, decl.Name, "",
			"enum names must be at most 64 alphanumeric characters starting with an uppercase letter")
	}
	if _, exists := b.graph.enums[decl.Name]; exists {
		b.fail(prisma.KindRedeclared, pos, decl.Name, "", "enum %q redeclared", decl.Name)
		return
	}
	if b.graph.nodes[decl.Name] != nil {
		b.fail(prisma.KindRedeclared, pos, decl.Name, "", "%q declared as both type and enum", decl.Name)
		return
	}
	e := &Enum{Name: decl.Name, Pos: pos}
	seen := make(map[string]struct{}, len(decl.Values))
	for _, v := range decl.Values {
		if !validEnumValue(v.Name) {
			b.fail(prisma.KindNaming, sdl.Pos(v.Pos), decl.Name, "",
				"enum value %q must be at most 191 characters, alphanumeric or underscore, starting with an uppercase letter", v.Name)
		}
		if _, dup := seen[v.Name]; dup {
			b.fail(prisma.KindRedeclared, sdl.Pos(v.Pos), decl.Name, "",
				"duplicate value %q for enum %q", v.Name, decl.Name)
			continue
		}
		seen[v.Name] = struct{}{}
		e.Values = append(e.Values, v.Name)
	}
	b.graph.Enums = append(b.graph.Enums, e)
	b.graph.enums[decl.Name] = e
}

func (b *graphBuilder) addType(decl *sdl.TypeDecl) {
	pos := sdl.Pos(decl.Pos)
	if !validTypeName(decl.Name) {
		b.fail(prisma.KindNaming, pos, decl.Name, "",
			"type names must be at most 64 alphanumeric characters starting with an uppercase letter")
	}
	if b.graph.nodes[decl.Name] != nil || b.graph.enums[decl.Name] != nil {
		b.fail(prisma.KindRedeclared, pos, decl.Name, "", "type %q redeclared", decl.Name)
		return
	}
	node := &Type{
		Name:   decl.Name,
		Pos:    pos,
		fields: make(map[string]*Field),
		decl:   decl,
	}
	for _, d := range decl.Directives {
		if !b.validateDirective(decl.Name, "", hostType, d) {
			continue
		}
		switch d.Name {
		case "db":
			if name, ok := d.Arg("name").Value.StringVal(); ok {
				node.DBName = name
			}
		case "relationTable":
			node.JoinTable = true
		}
	}
	b.graph.Nodes = append(b.graph.Nodes, node)
	b.graph.nodes[decl.Name] = node
}

func (b *graphBuilder) buildFields(node *Type) {
	for _, fd := range node.decl.Fields {
		pos := sdl.Pos(fd.Pos)
		if !validFieldName(fd.Name) {
			b.fail(prisma.KindNaming, pos, node.Name, fd.Name,
				"field names must be at most 64 alphanumeric characters starting with a lowercase letter")
		}
		if node.fields[fd.Name] != nil || node.Edge(fd.Name) != nil {
			b.fail(prisma.KindRedeclared, pos, node.Name, fd.Name,
				"field %q redeclared for type %q", fd.Name, node.Name)
			continue
		}
		ref := fd.Type.Name()
		switch {
		case scalarKinds[ref] != KindInvalid:
			b.addScalarField(node, fd, scalarKinds[ref], nil)
		case b.graph.enums[ref] != nil:
			b.addScalarField(node, fd, KindEnum, b.graph.enums[ref])
		case b.graph.nodes[ref] != nil:
			b.addEdge(node, fd, b.graph.nodes[ref])
		default:
			b.fail(prisma.KindUnknownType, pos, node.Name, fd.Name,
				"unknown type %q", ref)
		}
	}
	if node.JoinTable {
		// Join types carry no @id; their shape is checked when the
		// relation is bound.
		return
	}
	if node.ID == nil {
		b.fail(prisma.KindMissingID, node.Pos, node.Name, "",
			"type %q must declare exactly one @id field", node.Name)
	}
}

func (b *graphBuilder) addScalarField(node *Type, fd *sdl.FieldDecl, kind Kind, enum *Enum) {
	f := &Field{
		Name:         fd.Name,
		Pos:          sdl.Pos(fd.Pos),
		Kind:         kind,
		Enum:         enum,
		List:         fd.Type.IsList(),
		Required:     fd.Type.IsRequired(),
		ElemRequired: fd.Type.ElemRequired(),
		typ:          node,
	}
	for _, d := range fd.Directives {
		if !b.validateDirective(node.Name, fd.Name, hostScalarField, d) {
			continue
		}
		switch d.Name {
		case "id":
			f.IsID = true
			if node.ID != nil {
				b.fail(prisma.KindDuplicateID, sdl.Pos(d.Pos), node.Name, fd.Name,
					"at most one @id field per type (already declared on %q)", node.ID.Name)
				continue
			}
			if f.List || kind != KindID && kind != KindInt {
				b.fail(prisma.KindDirectiveHost, sdl.Pos(d.Pos), node.Name, fd.Name,
					"@id requires a non-list ID or Int field")
				continue
			}
			if !f.Required {
				b.fail(prisma.KindDirectiveHost, sdl.Pos(d.Pos), node.Name, fd.Name,
					"the @id field must be required")
			}
			node.ID = f
		case "unique":
			f.Unique = true
		case "createdAt", "updatedAt":
			if kind != KindDateTime {
				b.fail(prisma.KindDirectiveHost, sdl.Pos(d.Pos), node.Name, fd.Name,
					"@%s requires a DateTime field", d.Name)
				continue
			}
			if d.Name == "createdAt" {
				f.CreatedAt = true
			} else {
				f.UpdatedAt = true
			}
		case "default":
			f.HasDefault = true
			f.Default = d.Arg("value").Value
			b.checkDefault(f, f.Default, sdl.Pos(d.Pos))
		case "db":
			if name, ok := d.Arg("name").Value.StringVal(); ok {
				f.DBName = name
			}
		case "scalarList":
			f.ScalarList = true
			if !f.List {
				b.fail(prisma.KindScalarList, sdl.Pos(d.Pos), node.Name, fd.Name,
					"@scalarList applies only to list fields")
			}
		}
	}
	if f.List && !f.ScalarList {
		b.fail(prisma.KindScalarList, f.Pos, node.Name, fd.Name,
			"scalar list fields must declare @scalarList(strategy: RELATION)")
	}
	node.fields[fd.Name] = f
	if f.IsID {
		return
	}
	node.Fields = append(node.Fields, f)
}

func (b *graphBuilder) addEdge(node *Type, fd *sdl.FieldDecl, target *Type) {
	e := &Edge{
		Owner:    node,
		Name:     fd.Name,
		Pos:      sdl.Pos(fd.Pos),
		Type:     target,
		List:     fd.Type.IsList(),
		Required: fd.Type.IsRequired(),
	}
	for _, d := range fd.Directives {
		if !b.validateDirective(node.Name, fd.Name, hostRelationField, d) {
			continue
		}
		switch d.Name {
		case "relation":
			if a := d.Arg("name"); a != nil {
				e.RelName, _ = a.Value.StringVal()
			}
			if a := d.Arg("link"); a != nil {
				switch sym, _ := a.Value.SymbolVal(); sym {
				case "INLINE":
					e.Link = Inline
				case "TABLE":
					e.Link = Table
				}
			}
			if a := d.Arg("onDelete"); a != nil {
				if sym, _ := a.Value.SymbolVal(); sym == "CASCADE" {
					e.OnDelete = Cascade
				}
			}
		case "db":
			if name, ok := d.Arg("name").Value.StringVal(); ok {
				e.DBName = name
			}
		}
	}
	node.Edges = append(node.Edges, e)
}
