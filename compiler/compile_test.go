package compiler_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/welevelacademy/prisma"
	"github.com/welevelacademy/prisma/compiler"
	"github.com/welevelacademy/prisma/compiler/api"
	"github.com/welevelacademy/prisma/sdl"
)

func TestCompile(t *testing.T) {
	require := require.New(t)
	res, err := compiler.Compile(
		sdl.Source{Name: "types.prisma", Text: `
type User {
  id: ID! @id
  email: String! @unique
  role: Role! @default(value: CUSTOMER)
  posts: [Post!]! @relation(name: "Authorship", onDelete: CASCADE)
}

type Post {
  id: ID! @id
  title: String!
  author: User! @relation(name: "Authorship")
}
`},
		sdl.Source{Name: "enums.prisma", Text: `
enum Role { ADMIN CUSTOMER }
`},
	)
	require.NoError(err)
	require.NotNil(res.Graph)
	require.NotNil(res.Schema)
	require.NotNil(res.Catalog)

	require.Len(res.Graph.Nodes, 2)
	require.Len(res.Graph.Relations, 1)

	post := res.Schema.Table("Post")
	require.NotNil(post)
	require.NotNil(post.Column("author"))
	require.Len(res.Schema.ForeignKeys, 1)
	assert.Equal(t, "CASCADE", res.Schema.ForeignKeys[0].OnDelete)

	user := res.Catalog.Surface("User")
	require.NotNil(user)
	require.NotNil(user.ByUnique("email"))
}

func TestCompileSyntaxError(t *testing.T) {
	_, err := compiler.Compile(sdl.Source{Name: "bad.prisma", Text: `type User {`})
	require.Error(t, err)
	assert.True(t, prisma.IsSyntaxError(err))
	assert.False(t, prisma.IsValidationError(err))
}

func TestCompileValidationErrors(t *testing.T) {
	// Validation failures across two sources surface in one batch.
	_, err := compiler.Compile(
		sdl.Source{Name: "a.prisma", Text: `type User { email: String @indexed }`},
		sdl.Source{Name: "b.prisma", Text: `type Post { id: ID! @id, tag: Tag }`},
	)
	require.Error(t, err)
	msg := err.Error()
	assert.Contains(t, msg, "unknown directive @indexed")
	assert.Contains(t, msg, "exactly one @id")
	assert.Contains(t, msg, `unknown type "Tag"`)
}

func TestCompileDeterministic(t *testing.T) {
	src := sdl.Source{Name: "datamodel.prisma", Text: `
type User {
  id: ID! @id
  email: String! @unique
  followers: [User!]! @relation(name: "Follow")
  following: [User!]! @relation(name: "Follow")
}
`}
	first, err := compiler.Compile(src)
	require.NoError(t, err)
	second, err := compiler.Compile(src)
	require.NoError(t, err)

	a, err := first.Schema.MarshalText()
	require.NoError(t, err)
	b, err := second.Schema.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, a, b)

	snapA, err := first.Schema.Snapshot()
	require.NoError(t, err)
	snapB, err := second.Schema.Snapshot()
	require.NoError(t, err)
	assert.Equal(t, snapA, snapB)

	assert.Equal(t,
		api.Render(first.Graph, first.Catalog),
		api.Render(second.Graph, second.Catalog))
}
