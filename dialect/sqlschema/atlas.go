package sqlschema

import (
	atlas "ariga.io/atlas/sql/schema"
)

// ToAtlas converts the derived schema into atlas schema objects, the form
// the external migration planner consumes to compute DDL change sets.
// Relation tables become ordinary two-column tables with a composite
// primary key and one foreign key per side.
func (s *Schema) ToAtlas(name string) *atlas.Schema {
	out := &atlas.Schema{Name: name}
	byName := make(map[string]*atlas.Table)
	for _, t := range s.Tables {
		at := tableToAtlas(t)
		at.Schema = out
		out.Tables = append(out.Tables, at)
		byName[t.Name] = at
	}
	for _, fk := range s.ForeignKeys {
		from, to := byName[fk.Table], byName[fk.RefTable]
		if from == nil || to == nil {
			continue
		}
		from.ForeignKeys = append(from.ForeignKeys, &atlas.ForeignKey{
			Symbol:     fk.Table + "_" + fk.Column + "_fkey",
			Table:      from,
			Columns:    columnsOf(from, fk.Column),
			RefTable:   to,
			RefColumns: columnsOf(to, fk.RefColumn),
			OnDelete:   referenceOption(fk.OnDelete),
		})
	}
	for _, rt := range s.RelationTables {
		at := relationTableToAtlas(rt, byName)
		at.Schema = out
		out.Tables = append(out.Tables, at)
	}
	return out
}

func tableToAtlas(t *Table) *atlas.Table {
	at := &atlas.Table{Name: t.Name}
	for _, c := range t.Columns {
		ac := &atlas.Column{
			Name: c.Name,
			Type: &atlas.ColumnType{Raw: c.Type, Null: c.Nullable},
		}
		if c.Default != nil {
			ac.Default = &atlas.Literal{V: *c.Default}
		}
		at.Columns = append(at.Columns, ac)
	}
	if t.PrimaryKey != "" {
		at.PrimaryKey = &atlas.Index{
			Table: at,
			Parts: []*atlas.IndexPart{{SeqNo: 1, C: columnOf(at, t.PrimaryKey)}},
		}
	}
	for _, idx := range t.Indexes {
		ai := &atlas.Index{Name: idx.Name, Unique: idx.Unique, Table: at}
		for i, col := range idx.Columns {
			ai.Parts = append(ai.Parts, &atlas.IndexPart{SeqNo: i + 1, C: columnOf(at, col)})
		}
		at.Indexes = append(at.Indexes, ai)
	}
	return at
}

func relationTableToAtlas(rt *RelationTable, byName map[string]*atlas.Table) *atlas.Table {
	at := &atlas.Table{Name: rt.Name}
	for _, side := range []*RelationColumn{rt.A, rt.B} {
		ref := byName[side.RefTable]
		if ref == nil {
			continue
		}
		refID := ref.Columns[0]
		col := &atlas.Column{
			Name: side.Name,
			Type: &atlas.ColumnType{Raw: refID.Type.Raw},
		}
		at.Columns = append(at.Columns, col)
		at.ForeignKeys = append(at.ForeignKeys, &atlas.ForeignKey{
			Symbol:     rt.Name + "_" + side.Name + "_fkey",
			Table:      at,
			Columns:    []*atlas.Column{col},
			RefTable:   ref,
			RefColumns: []*atlas.Column{refID},
			// join rows never outlive their endpoints
			OnDelete: atlas.Cascade,
		})
	}
	pk := &atlas.Index{Table: at}
	for i, c := range at.Columns {
		pk.Parts = append(pk.Parts, &atlas.IndexPart{SeqNo: i + 1, C: c})
	}
	at.PrimaryKey = pk
	return at
}

func columnOf(t *atlas.Table, name string) *atlas.Column {
	for _, c := range t.Columns {
		if c.Name == name {
			return c
		}
	}
	return nil
}

func columnsOf(t *atlas.Table, names ...string) []*atlas.Column {
	cols := make([]*atlas.Column, 0, len(names))
	for _, n := range names {
		if c := columnOf(t, n); c != nil {
			cols = append(cols, c)
		}
	}
	return cols
}

func referenceOption(onDelete string) atlas.ReferenceOption {
	if onDelete == "CASCADE" {
		return atlas.Cascade
	}
	return atlas.SetNull
}
