// Package sqlschema derives the relational storage schema entailed by a
// validated datamodel graph: one table per object type, one column per
// scalar field, foreign keys for inline relations, and relation tables for
// table-linked ones. The derivation is a pure function of the graph; the
// schema is serializable to a stable, diffable representation consumed by
// external migration tooling.
package sqlschema

// Storage types produced by the scalar mapping. String and Json values are
// bounded at 256KB, Int covers the 32-bit signed range, identifiers are
// 25-character cuid strings.
const (
	TypeText     = "mediumtext"
	TypeInt      = "int"
	TypeDecimal  = "decimal(65,30)"
	TypeBool     = "tinyint(1)"
	TypeDateTime = "datetime(3)"
	TypeID       = "char(25)"
	TypeEnum     = "varchar(191)"
)

// UniquePrefix is the prefix length of unique indexes on text columns.
// Longer values
// collide on purpose: the index compares only the first 191 characters,
// case-insensitively.
const UniquePrefix = 191

// Schema is the derived storage schema of one datamodel.
type Schema struct {
	Tables         []*Table         `json:"tables" msgpack:"tables"`
	ForeignKeys    []*ForeignKey    `json:"foreign_keys,omitempty" msgpack:"foreign_keys"`
	RelationTables []*RelationTable `json:"relation_tables,omitempty" msgpack:"relation_tables"`
}

// Table maps one object type (or one scalar-list field) to storage.
type Table struct {
	Name       string    `json:"name" msgpack:"name"`
	Columns    []*Column `json:"columns" msgpack:"columns"`
	PrimaryKey string    `json:"primary_key,omitempty" msgpack:"primary_key"`
	Indexes    []*Index  `json:"indexes,omitempty" msgpack:"indexes"`
}

// Column maps one scalar field or one inline foreign key.
type Column struct {
	Name     string  `json:"name" msgpack:"name"`
	Type     string  `json:"type" msgpack:"type"`
	Nullable bool    `json:"nullable" msgpack:"nullable"`
	Unique   bool    `json:"unique,omitempty" msgpack:"unique"`
	Default  *string `json:"default,omitempty" msgpack:"default"`
	// CreatedAt and UpdatedAt mark automatic timestamp columns.
	CreatedAt bool `json:"created_at,omitempty" msgpack:"created_at"`
	UpdatedAt bool `json:"updated_at,omitempty" msgpack:"updated_at"`
}

// Index is a secondary index. Unique indexes on text columns compare only
// the first Prefix characters and ignore case.
type Index struct {
	Name            string   `json:"name" msgpack:"name"`
	Columns         []string `json:"columns" msgpack:"columns"`
	Unique          bool     `json:"unique" msgpack:"unique"`
	Prefix          int      `json:"prefix,omitempty" msgpack:"prefix"`
	CaseInsensitive bool     `json:"case_insensitive,omitempty" msgpack:"case_insensitive"`
}

// ForeignKey links an inline relation column (or a scalar-list node column)
// to the identifier of the referenced table.
type ForeignKey struct {
	Table     string `json:"table" msgpack:"table"`
	Column    string `json:"column" msgpack:"column"`
	RefTable  string `json:"ref_table" msgpack:"ref_table"`
	RefColumn string `json:"ref_column" msgpack:"ref_column"`
	// OnDelete is "SET NULL" or "CASCADE".
	OnDelete string `json:"on_delete" msgpack:"on_delete"`
}

// RelationTable is a synthesized junction table for a TABLE-linked
// relation. Column roles are alphabetic by endpoint type name unless the
// relation is backed by a @relationTable type with custom column names.
type RelationTable struct {
	Name string `json:"name" msgpack:"name"`
	// Relation holds the relation name the table stores.
	Relation string `json:"relation" msgpack:"relation"`
	// Multiplicity is "O2O", "O2M" or "M2M".
	Multiplicity string          `json:"multiplicity" msgpack:"multiplicity"`
	A            *RelationColumn `json:"a" msgpack:"a"`
	B            *RelationColumn `json:"b" msgpack:"b"`
}

// RelationColumn is one side of a relation table.
type RelationColumn struct {
	Name     string `json:"name" msgpack:"name"`
	RefTable string `json:"ref_table" msgpack:"ref_table"`
	// OnDelete is the delete behavior declared on the endpoint owned by
	// this side's type: "SET NULL" or "CASCADE".
	OnDelete string `json:"on_delete" msgpack:"on_delete"`
}

// Table returns the table with the given name, or nil.
func (s *Schema) Table(name string) *Table {
	for _, t := range s.Tables {
		if t.Name == name {
			return t
		}
	}
	return nil
}

// RelationTable returns the relation table with the given name, or nil.
func (s *Schema) RelationTable(name string) *RelationTable {
	for _, t := range s.RelationTables {
		if t.Name == name {
			return t
		}
	}
	return nil
}

// Column returns the column with the given name, or nil.
func (t *Table) Column(name string) *Column {
	for _, c := range t.Columns {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// Index returns the index with the given name, or nil.
func (t *Table) Index(name string) *Index {
	for _, i := range t.Indexes {
		if i.Name == name {
			return i
		}
	}
	return nil
}
