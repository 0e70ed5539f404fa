package prisma_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/welevelacademy/prisma"
)

func TestPosition(t *testing.T) {
	assert.Equal(t, "datamodel.prisma:3:7", prisma.Position{File: "datamodel.prisma", Line: 3, Column: 7}.String())
	assert.Equal(t, "3:7", prisma.Position{Line: 3, Column: 7}.String())
	assert.True(t, prisma.Position{}.IsZero())
	assert.False(t, prisma.Position{Line: 1, Column: 1}.IsZero())
}

func TestSyntaxError(t *testing.T) {
	err := &prisma.SyntaxError{
		Pos:     prisma.Position{File: "datamodel.prisma", Line: 4, Column: 12},
		Message: `unexpected token "}"`,
	}
	assert.Equal(t, `prisma: datamodel.prisma:4:12: syntax error: unexpected token "}"`, err.Error())
	assert.True(t, errors.Is(err, prisma.ErrSyntax))
	assert.True(t, prisma.IsSyntaxError(err))

	wrapped := fmt.Errorf("compile: %w", err)
	assert.True(t, prisma.IsSyntaxError(wrapped))
	assert.False(t, prisma.IsSyntaxError(errors.New("other error")))
	assert.False(t, prisma.IsSyntaxError(nil))
}

func TestValidationError(t *testing.T) {
	err := &prisma.ValidationError{
		Kind:    prisma.KindDuplicateID,
		Pos:     prisma.Position{File: "datamodel.prisma", Line: 9, Column: 3},
		Type:    "User",
		Field:   "handle",
		Message: "at most one @id field per type",
	}
	assert.Equal(t, "prisma: datamodel.prisma:9:3: validation error on type User field handle: at most one @id field per type", err.Error())
	assert.True(t, errors.Is(err, prisma.ErrValidation))
	assert.True(t, prisma.IsValidationError(err))
	assert.False(t, prisma.IsValidationError(errors.New("other error")))

	// Batched diagnostics keep their identity through errors.Join.
	joined := errors.Join(err, &prisma.ValidationError{Kind: prisma.KindNaming, Type: "blog_post"})
	assert.True(t, errors.Is(joined, prisma.ErrValidation))
	assert.True(t, prisma.IsValidationError(joined))
}

func TestAmbiguousRelationError(t *testing.T) {
	err := &prisma.AmbiguousRelationError{
		Pos:    prisma.Position{File: "datamodel.prisma", Line: 2, Column: 3},
		Type:   "User",
		Field:  "written",
		Target: "Post",
	}
	assert.Equal(t, "prisma: datamodel.prisma:2:3: ambiguous relation User.written -> Post: explicit @relation(name: ...) required", err.Error())
	assert.True(t, errors.Is(err, prisma.ErrAmbiguousRelation))
	assert.True(t, prisma.IsAmbiguousRelationError(err))
}

func TestInvalidCascadeError(t *testing.T) {
	err := &prisma.InvalidCascadeError{
		Pos:      prisma.Position{File: "datamodel.prisma", Line: 5, Column: 3},
		Relation: "PostAuthor",
		Types:    [2]string{"Post", "User"},
	}
	assert.Equal(t, "prisma: datamodel.prisma:5:3: relation PostAuthor: onDelete CASCADE cannot be set on both ends", err.Error())
	assert.True(t, errors.Is(err, prisma.ErrInvalidCascade))
	assert.True(t, prisma.IsInvalidCascadeError(err))

	unnamed := &prisma.InvalidCascadeError{Types: [2]string{"Post", "User"}}
	assert.Contains(t, unnamed.Error(), "Post <-> User")
}

func TestUnsupportedLinkError(t *testing.T) {
	err := &prisma.UnsupportedLinkError{
		Pos:      prisma.Position{File: "datamodel.prisma", Line: 7, Column: 3},
		Relation: "UserProfile",
		Message:  "one-to-one relations must specify link: INLINE or link: TABLE",
	}
	assert.Equal(t, "prisma: datamodel.prisma:7:3: relation UserProfile: one-to-one relations must specify link: INLINE or link: TABLE", err.Error())
	assert.True(t, errors.Is(err, prisma.ErrUnsupportedLink))
	assert.True(t, prisma.IsUnsupportedLinkError(err))
	assert.False(t, prisma.IsUnsupportedLinkError(prisma.ErrInvalidCascade))
}
