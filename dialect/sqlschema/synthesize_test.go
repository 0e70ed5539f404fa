package sqlschema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/welevelacademy/prisma/compiler/gen"
	"github.com/welevelacademy/prisma/sdl"
)

func synthesize(t *testing.T, text string) *Schema {
	t.Helper()
	f, err := sdl.Parse(sdl.Source{Name: "datamodel.prisma", Text: text})
	require.NoError(t, err)
	g, err := gen.NewGraph(f)
	require.NoError(t, err)
	return Synthesize(g)
}

const blogModel = `
type User @db(name: "user") {
  id: ID! @id
  email: String! @unique
  name: String
  age: Int
  active: Boolean! @default(value: true)
  role: Role! @default(value: CUSTOMER)
  createdAt: DateTime! @createdAt
  nicknames: [String!]! @scalarList(strategy: RELATION)
  posts: [Post!]! @relation(name: "Authorship", onDelete: CASCADE)
  followers: [User!]! @relation(name: "Follow")
  following: [User!]! @relation(name: "Follow")
}

type Post {
  id: ID! @id
  title: String!
  rating: Float
  author: User! @relation(name: "Authorship") @db(name: "author_id")
}

enum Role { ADMIN CUSTOMER }
`

func TestSynthesize(t *testing.T) {
	require := require.New(t)
	s := synthesize(t, blogModel)

	// One table per type plus the scalar-list value table.
	require.Len(s.Tables, 3)
	assert.Equal(t, "user", s.Tables[0].Name)
	assert.Equal(t, "user_nicknames", s.Tables[1].Name)
	assert.Equal(t, "Post", s.Tables[2].Name)

	user := s.Table("user")
	require.NotNil(user)
	assert.Equal(t, "id", user.PrimaryKey)

	id := user.Column("id")
	require.NotNil(id)
	assert.Equal(t, "char(25)", id.Type)
	assert.True(t, id.Unique)
	assert.False(t, id.Nullable)

	// Scalar mapping and nullability.
	assert.Equal(t, "mediumtext", user.Column("email").Type)
	assert.False(t, user.Column("email").Nullable)
	assert.True(t, user.Column("name").Nullable)
	assert.Equal(t, "int", user.Column("age").Type)
	assert.Equal(t, "tinyint(1)", user.Column("active").Type)
	assert.Equal(t, "varchar(191)", user.Column("role").Type)
	assert.Equal(t, "datetime(3)", user.Column("createdAt").Type)
	assert.True(t, user.Column("createdAt").CreatedAt)
	assert.Equal(t, "decimal(65,30)", s.Table("Post").Column("rating").Type)

	// Defaults keep their source rendering.
	require.NotNil(user.Column("active").Default)
	assert.Equal(t, "true", *user.Column("active").Default)
	require.NotNil(user.Column("role").Default)
	assert.Equal(t, "CUSTOMER", *user.Column("role").Default)

	// Scalar-list fields have no column on the node table.
	assert.Nil(t, user.Column("nicknames"))
}

func TestSynthesizeUniqueIndex(t *testing.T) {
	s := synthesize(t, blogModel)
	user := s.Table("user")
	idx := user.Index("user.email._UNIQUE")
	require.NotNil(t, idx)
	assert.Equal(t, []string{"email"}, idx.Columns)
	assert.True(t, idx.Unique)
	assert.Equal(t, UniquePrefix, idx.Prefix)
	assert.True(t, idx.CaseInsensitive)
}

func TestSynthesizeUniqueIndexNonText(t *testing.T) {
	s := synthesize(t, `
type Account {
  id: ID! @id
  email: String! @unique
  number: Int! @unique
  openedAt: DateTime! @unique
}
`)
	acc := s.Table("Account")
	text := acc.Index("Account.email._UNIQUE")
	require.NotNil(t, text)
	assert.Equal(t, UniquePrefix, text.Prefix)
	assert.True(t, text.CaseInsensitive)

	// Non-text columns index the full value, with no collation metadata.
	num := acc.Index("Account.number._UNIQUE")
	require.NotNil(t, num)
	assert.True(t, num.Unique)
	assert.Zero(t, num.Prefix)
	assert.False(t, num.CaseInsensitive)

	opened := acc.Index("Account.openedAt._UNIQUE")
	require.NotNil(t, opened)
	assert.Zero(t, opened.Prefix)
	assert.False(t, opened.CaseInsensitive)
}

func TestSynthesizeScalarListTable(t *testing.T) {
	require := require.New(t)
	s := synthesize(t, blogModel)

	list := s.Table("user_nicknames")
	require.NotNil(list)
	require.Len(list.Columns, 3)
	assert.Equal(t, "nodeId", list.Columns[0].Name)
	assert.Equal(t, "char(25)", list.Columns[0].Type)
	assert.Equal(t, "position", list.Columns[1].Name)
	assert.Equal(t, "int", list.Columns[1].Type)
	assert.Equal(t, "value", list.Columns[2].Name)
	assert.Equal(t, "mediumtext", list.Columns[2].Type)
	assert.False(t, list.Columns[2].Nullable)

	idx := list.Index("user_nicknames.nodeId_position._UNIQUE")
	require.NotNil(idx)
	assert.Equal(t, []string{"nodeId", "position"}, idx.Columns)

	var fk *ForeignKey
	for _, k := range s.ForeignKeys {
		if k.Table == "user_nicknames" {
			fk = k
		}
	}
	require.NotNil(fk)
	assert.Equal(t, "nodeId", fk.Column)
	assert.Equal(t, "user", fk.RefTable)
	assert.Equal(t, "id", fk.RefColumn)
	assert.Equal(t, "CASCADE", fk.OnDelete)
}

func TestSynthesizeInlineForeignKey(t *testing.T) {
	require := require.New(t)
	s := synthesize(t, blogModel)

	post := s.Table("Post")
	col := post.Column("author_id")
	require.NotNil(col)
	assert.Equal(t, "char(25)", col.Type)
	assert.False(t, col.Nullable)
	assert.False(t, col.Unique)

	var fk *ForeignKey
	for _, k := range s.ForeignKeys {
		if k.Table == "Post" {
			fk = k
		}
	}
	require.NotNil(fk)
	assert.Equal(t, "author_id", fk.Column)
	assert.Equal(t, "user", fk.RefTable)
	assert.Equal(t, "id", fk.RefColumn)
	// Cascade declared on the inverse side: deleting the user deletes the
	// posts.
	assert.Equal(t, "CASCADE", fk.OnDelete)
}

func TestSynthesizeRelationTable(t *testing.T) {
	require := require.New(t)
	s := synthesize(t, blogModel)

	require.Len(s.RelationTables, 1)
	follow := s.RelationTable("_Follow")
	require.NotNil(follow)
	assert.Equal(t, "Follow", follow.Relation)
	assert.Equal(t, "M2M", follow.Multiplicity)
	assert.Equal(t, "A", follow.A.Name)
	assert.Equal(t, "B", follow.B.Name)
	assert.Equal(t, "user", follow.A.RefTable)
	assert.Equal(t, "user", follow.B.RefTable)
	assert.Equal(t, "SET NULL", follow.A.OnDelete)
}

func TestSynthesizeOneToOne(t *testing.T) {
	s := synthesize(t, `
type User {
  id: ID! @id
  profile: Profile @relation(link: INLINE)
}

type Profile {
  id: ID! @id
  user: User @relation(onDelete: CASCADE)
}
`)
	col := s.Table("User").Column("profile")
	require.NotNil(t, col)
	assert.True(t, col.Unique)
	assert.True(t, col.Nullable)
	require.Len(t, s.ForeignKeys, 1)
	assert.Equal(t, "CASCADE", s.ForeignKeys[0].OnDelete)
	assert.Equal(t, "Profile", s.ForeignKeys[0].RefTable)
}

func TestSynthesizeIntID(t *testing.T) {
	s := synthesize(t, `
type Counter { id: Int! @id, posts: [Post!]! }
type Post { id: ID! @id, counter: Counter! }
`)
	assert.Equal(t, "int", s.Table("Counter").Column("id").Type)
	// The foreign key column follows the referenced identifier's type.
	assert.Equal(t, "int", s.Table("Post").Column("counter").Type)
}

func TestSynthesizeBoundRelationTable(t *testing.T) {
	s := synthesize(t, `
type Article {
  id: ID! @id
  authors: [Author!]! @relation(name: "ArticleAuthors", link: TABLE, onDelete: CASCADE)
}

type Author {
  id: ID! @id
  articles: [Article!]! @relation(name: "ArticleAuthors")
}

type ArticleAuthors @relationTable {
  author: Author!
  article: Article!
}
`)
	rt := s.RelationTable("ArticleAuthors")
	require.NotNil(t, rt)
	// Role A belongs to the alphabetically first endpoint; the join
	// type's field order does not matter.
	assert.Equal(t, "Article", rt.A.RefTable)
	assert.Equal(t, "article", rt.A.Name)
	assert.Equal(t, "Author", rt.B.RefTable)
	assert.Equal(t, "author", rt.B.Name)
	assert.Equal(t, "CASCADE", rt.A.OnDelete)
	assert.Equal(t, "SET NULL", rt.B.OnDelete)
}
