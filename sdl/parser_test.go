package sdl

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/welevelacademy/prisma"
)

func TestParse(t *testing.T) {
	require := require.New(t)
	file, err := Parse(Source{Name: "datamodel.prisma", Text: `
# Blog datamodel.
type Post @db(name: "post") {
  id: ID! @id
  title: String!
  published: Boolean! @default(value: false)
  score: Float @default(value: 1.5)
  author: User! @relation(name: "PostAuthor", link: INLINE, onDelete: CASCADE)
  tags: [String!]! @scalarList(strategy: RELATION)
}

type User {
  id: ID! @id
  email: String @unique
  posts: [Post!]! @relation(name: "PostAuthor")
}

enum Role {
  ADMIN
  CUSTOMER
}
`})
	require.NoError(err)
	require.Len(file.Datamodel.Declarations, 3)

	post := file.Datamodel.Declarations[0].Type
	require.NotNil(post)
	require.Equal("Post", post.Name)
	require.Equal(3, post.Pos.Line)
	db := post.Directive("db")
	require.NotNil(db)
	name, ok := db.Arg("name").Value.StringVal()
	require.True(ok)
	require.Equal("post", name)
	require.Len(post.Fields, 6)

	id := post.Fields[0]
	require.Equal("id", id.Name)
	require.Equal("ID", id.Type.Name())
	require.True(id.Type.IsRequired())
	require.False(id.Type.IsList())
	require.NotNil(id.Directive("id"))

	published := post.Fields[2]
	v, ok := published.Directive("default").Arg("value").Value.BoolVal()
	require.True(ok)
	require.False(v)

	score := post.Fields[3]
	require.False(score.Type.IsRequired())
	f, ok := score.Directive("default").Arg("value").Value.FloatVal()
	require.True(ok)
	require.Equal(1.5, f)

	author := post.Fields[4]
	rel := author.Directive("relation")
	require.NotNil(rel)
	link, ok := rel.Arg("link").Value.SymbolVal()
	require.True(ok)
	require.Equal("INLINE", link)
	onDelete, ok := rel.Arg("onDelete").Value.SymbolVal()
	require.True(ok)
	require.Equal("CASCADE", onDelete)

	tags := post.Fields[5]
	require.True(tags.Type.IsList())
	require.True(tags.Type.IsRequired())
	require.True(tags.Type.ElemRequired())
	require.Equal("String", tags.Type.Name())

	role := file.Datamodel.Declarations[2].Enum
	require.NotNil(role)
	require.Equal("Role", role.Name)
	require.Len(role.Values, 2)
	require.Equal("ADMIN", role.Values[0].Name)

	// Positions carry the filename for diagnostics.
	require.Equal("datamodel.prisma", post.Fields[0].Pos.Filename)
}

func TestParseSingleLineFields(t *testing.T) {
	// Fields may be separated by commas instead of newlines.
	file, err := Parse(Source{
		Name: "inline.prisma",
		Text: `type Post { id: ID! @id, author: User! @relation(link: INLINE), title: String }`,
	})
	require.NoError(t, err)
	post := file.Datamodel.Declarations[0].Type
	require.NotNil(t, post)
	require.Len(t, post.Fields, 3)
	assert.Equal(t, "id", post.Fields[0].Name)
	assert.Equal(t, "author", post.Fields[1].Name)
	assert.NotNil(t, post.Fields[1].Directive("relation"))
	assert.Equal(t, "title", post.Fields[2].Name)
	assert.False(t, post.Fields[2].Type.IsRequired())
}

func TestParseSyntaxError(t *testing.T) {
	_, err := Parse(Source{Name: "broken.prisma", Text: "type User {\n  id ID!\n}\n"})
	require.Error(t, err)
	require.True(t, prisma.IsSyntaxError(err))
	var serr *prisma.SyntaxError
	require.ErrorAs(t, err, &serr)
	assert.Equal(t, "broken.prisma", serr.Pos.File)
	assert.Equal(t, 2, serr.Pos.Line)
}

func TestParseFiles(t *testing.T) {
	files, err := ParseFiles([]Source{
		{Name: "a.prisma", Text: "type A { id: ID! @id }"},
		{Name: "b.prisma", Text: "type B { id: ID! @id }"},
		{Name: "c.prisma", Text: "enum Color { RED GREEN }"},
	})
	require.NoError(t, err)
	require.Len(t, files, 3)
	// Declaration order follows source order, not completion order.
	assert.Equal(t, "a.prisma", files[0].Name)
	assert.Equal(t, "A", files[0].Datamodel.Declarations[0].Type.Name)
	assert.Equal(t, "b.prisma", files[1].Name)
	assert.Equal(t, "Color", files[2].Datamodel.Declarations[0].Enum.Name)
}

func TestParseFilesReportsAllErrors(t *testing.T) {
	_, err := ParseFiles([]Source{
		{Name: "a.prisma", Text: "type A {"},
		{Name: "b.prisma", Text: "type B { id: ID! @id }"},
		{Name: "c.prisma", Text: "enum {"},
	})
	require.Error(t, err)
	var serr *prisma.SyntaxError
	require.ErrorAs(t, err, &serr)
	// Both broken files surface, not only the first.
	assert.Contains(t, err.Error(), "a.prisma")
	assert.Contains(t, err.Error(), "c.prisma")
}

func TestValueRendering(t *testing.T) {
	file, err := Parse(Source{Name: "v.prisma", Text: `
type T @note(s: "hi", i: 42, f: 2.5, b: true, e: RED) {
  id: ID! @id
}
`})
	require.NoError(t, err)
	d := file.Datamodel.Declarations[0].Type.Directive("note")
	require.NotNil(t, d)
	assert.Equal(t, `"hi"`, d.Arg("s").Value.String())
	assert.Equal(t, "hi", d.Arg("s").Value.Raw())
	assert.Equal(t, "42", d.Arg("i").Value.String())
	assert.Equal(t, "2.5", d.Arg("f").Value.String())
	assert.Equal(t, "true", d.Arg("b").Value.String())
	assert.Equal(t, "RED", d.Arg("e").Value.String())
}
