package sqlschema

import (
	"fmt"

	"github.com/welevelacademy/prisma/compiler/gen"
)

// Synthesize derives the storage schema of a validated graph. The output is
// deterministic: tables follow type declaration order, columns follow field
// declaration order with the identifier first and inline foreign keys last,
// relation tables follow relation resolution order.
func Synthesize(g *gen.Graph) *Schema {
	s := &Schema{}
	tables := make(map[string]*Table)
	for _, node := range g.Nodes {
		if node.JoinTable {
			continue
		}
		t := nodeTable(node)
		s.Tables = append(s.Tables, t)
		tables[node.Name] = t
		for _, f := range node.Fields {
			if !f.ScalarList {
				continue
			}
			list, fk := scalarListTable(node, f)
			s.Tables = append(s.Tables, list)
			s.ForeignKeys = append(s.ForeignKeys, fk)
		}
	}
	for _, r := range g.Relations {
		if r.Link == gen.Inline {
			owning := r.Owning()
			col, fk := inlineColumn(r, owning)
			t := tables[owning.Owner.Name]
			t.Columns = append(t.Columns, col)
			s.ForeignKeys = append(s.ForeignKeys, fk)
			continue
		}
		s.RelationTables = append(s.RelationTables, relationTable(r))
	}
	return s
}

// nodeTable maps one object type to its table: the identifier column first,
// then the scalar columns in declaration order. Scalar-list fields have no
// column here; they live in their own value table.
func nodeTable(node *gen.Type) *Table {
	t := &Table{Name: node.Table()}
	if node.ID != nil {
		id := &Column{
			Name:   node.ID.Column(),
			Type:   columnType(node.ID),
			Unique: true,
		}
		t.Columns = append(t.Columns, id)
		t.PrimaryKey = id.Name
	}
	for _, f := range node.Fields {
		if f.ScalarList {
			continue
		}
		t.Columns = append(t.Columns, fieldColumn(f))
		if f.Unique {
			idx := &Index{
				Name:    fmt.Sprintf("%s.%s._UNIQUE", t.Name, f.Column()),
				Columns: []string{f.Column()},
				Unique:  true,
			}
			// Prefix length and collation only apply to text columns.
			if columnType(f) == TypeText {
				idx.Prefix = UniquePrefix
				idx.CaseInsensitive = true
			}
			t.Indexes = append(t.Indexes, idx)
		}
	}
	return t
}

func fieldColumn(f *gen.Field) *Column {
	c := &Column{
		Name:      f.Column(),
		Type:      columnType(f),
		Nullable:  f.Optional(),
		Unique:    f.Unique,
		CreatedAt: f.CreatedAt,
		UpdatedAt: f.UpdatedAt,
	}
	if f.HasDefault {
		v := f.Default.Raw()
		c.Default = &v
	}
	return c
}

// columnType applies the fixed scalar-to-storage mapping.
func columnType(f *gen.Field) string {
	switch f.Kind {
	case gen.KindString, gen.KindJSON:
		return TypeText
	case gen.KindInt:
		return TypeInt
	case gen.KindFloat:
		return TypeDecimal
	case gen.KindBoolean:
		return TypeBool
	case gen.KindDateTime:
		return TypeDateTime
	case gen.KindID:
		return TypeID
	case gen.KindEnum:
		return TypeEnum
	default:
		return TypeText
	}
}

// scalarListTable maps an @scalarList field to its value table: one row per
// list element, keyed by the owning node and the element position. Rows
// follow their node on delete.
func scalarListTable(node *gen.Type, f *gen.Field) (*Table, *ForeignKey) {
	name := fmt.Sprintf("%s_%s", node.Table(), f.Column())
	t := &Table{
		Name: name,
		Columns: []*Column{
			{Name: "nodeId", Type: idColumnType(node)},
			{Name: "position", Type: TypeInt},
			{Name: "value", Type: columnType(f), Nullable: !f.ElemRequired},
		},
	}
	t.Indexes = append(t.Indexes, &Index{
		Name:    fmt.Sprintf("%s.nodeId_position._UNIQUE", name),
		Columns: []string{"nodeId", "position"},
		Unique:  true,
	})
	fk := &ForeignKey{
		Table:     name,
		Column:    "nodeId",
		RefTable:  node.Table(),
		RefColumn: node.ID.Column(),
		OnDelete:  "CASCADE",
	}
	return t, fk
}

// inlineColumn maps an INLINE relation to a foreign-key column on the
// owning side, named after the relation field or its @db override. The
// constraint's delete behavior comes from the inverse endpoint: it applies
// when the referenced node is deleted.
func inlineColumn(r *gen.Relation, owning *gen.Edge) (*Column, *ForeignKey) {
	target := owning.Type
	col := &Column{
		Name:     owning.Column(),
		Type:     idColumnType(target),
		Nullable: !owning.Required,
		Unique:   r.Type == gen.O2O,
	}
	onDelete := gen.SetNull
	if inv := r.Inverse(owning); inv != nil {
		onDelete = inv.OnDelete
	}
	fk := &ForeignKey{
		Table:     owning.Owner.Table(),
		Column:    owning.Column(),
		RefTable:  target.Table(),
		RefColumn: target.ID.Column(),
		OnDelete:  deleteAction(onDelete),
	}
	return col, fk
}

// relationTable maps a TABLE relation to its junction table. Default column
// roles are A and B, assigned to the endpoint types in alphabetical order;
// a bound @relationTable type supplies the table and column names instead.
func relationTable(r *gen.Relation) *RelationTable {
	t := &RelationTable{
		Name:         r.TableName(),
		Relation:     r.Name,
		Multiplicity: r.Type.String(),
		A:            &RelationColumn{Name: "A", RefTable: r.Types[0].Table()},
		B:            &RelationColumn{Name: "B", RefTable: r.Types[1].Table()},
	}
	if r.Through != nil {
		a, b := r.Through.Edges[0], r.Through.Edges[1]
		// Column roles follow the endpoint each join field references.
		// Self-relations fall back to declaration order.
		if !r.SelfRelation() && a.Type != r.Types[0] {
			a, b = b, a
		}
		t.A.Name = a.Column()
		t.B.Name = b.Column()
	}
	t.A.OnDelete = sideDelete(r, r.Types[0], 0)
	t.B.OnDelete = sideDelete(r, r.Types[1], 1)
	return t
}

// sideDelete returns the delete behavior declared on the endpoint owned by
// the given type. Self-relations disambiguate by edge index.
func sideDelete(r *gen.Relation, typ *gen.Type, i int) string {
	if r.SelfRelation() {
		if i < len(r.Edges) {
			return deleteAction(r.Edges[i].OnDelete)
		}
		return deleteAction(gen.SetNull)
	}
	for _, e := range r.Edges {
		if e.Owner == typ {
			return deleteAction(e.OnDelete)
		}
	}
	return deleteAction(gen.SetNull)
}

func idColumnType(node *gen.Type) string {
	if node.ID != nil && node.ID.Kind == gen.KindInt {
		return TypeInt
	}
	return TypeID
}

func deleteAction(d gen.OnDelete) string {
	if d == gen.Cascade {
		return "CASCADE"
	}
	return "SET NULL"
}
