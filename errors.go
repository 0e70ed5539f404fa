package prisma

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for the compilation failure classes. Concrete diagnostic
// types below match these through their Is methods, so callers can classify
// a failure with errors.Is without depending on the concrete type.
var (
	// ErrSyntax indicates malformed SDL source. No AST is produced.
	ErrSyntax = errors.New("prisma: syntax error")
	// ErrValidation indicates a naming, casing, length or directive
	// placement violation. Validation errors are collected in batch.
	ErrValidation = errors.New("prisma: validation failed")
	// ErrAmbiguousRelation indicates a relation grouping that cannot be
	// resolved without a disambiguating name.
	ErrAmbiguousRelation = errors.New("prisma: ambiguous relation")
	// ErrInvalidCascade indicates a relation with CASCADE on both ends.
	ErrInvalidCascade = errors.New("prisma: invalid cascade")
	// ErrUnsupportedLink indicates a relation with no valid link strategy.
	ErrUnsupportedLink = errors.New("prisma: unsupported link")
)

// Position points at a location in an SDL source file.
type Position struct {
	File   string
	Line   int
	Column int
}

// String returns the position in file:line:column form.
func (p Position) String() string {
	if p.File == "" {
		return fmt.Sprintf("%d:%d", p.Line, p.Column)
	}
	return fmt.Sprintf("%s:%d:%d", p.File, p.Line, p.Column)
}

// IsZero reports whether the position carries no location information.
func (p Position) IsZero() bool {
	return p.File == "" && p.Line == 0 && p.Column == 0
}

// SyntaxError represents a parse failure. It is fatal for the file that
// produced it; no AST exists for that file.
type SyntaxError struct {
	Pos     Position
	Message string
}

// Error implements the error interface.
func (e *SyntaxError) Error() string {
	return fmt.Sprintf("prisma: %s: syntax error: %s", e.Pos, e.Message)
}

// Is reports whether the target matches the sentinel error for SyntaxError.
func (e *SyntaxError) Is(target error) bool {
	return target == ErrSyntax
}

// Validation kinds reported by ValidationError.Kind.
const (
	KindUnknownDirective  = "unknown-directive"
	KindDirectiveHost     = "directive-host"
	KindDirectiveArgument = "directive-argument"
	KindDuplicateID       = "duplicate-id"
	KindMissingID         = "missing-id"
	KindNaming            = "naming"
	KindDefaultValue      = "default-value"
	KindRedeclared        = "redeclared"
	KindUnknownType       = "unknown-type"
	KindScalarList        = "scalar-list"
	KindRelationTable     = "relation-table"
)

// ValidationError represents a single datamodel validation violation.
// Compilation collects all of them in one pass before aborting.
type ValidationError struct {
	Kind    string
	Pos     Position
	Type    string // host type name, if any
	Field   string // host field name, if any
	Message string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	var b strings.Builder
	b.WriteString("prisma: ")
	if !e.Pos.IsZero() {
		b.WriteString(e.Pos.String())
		b.WriteString(": ")
	}
	b.WriteString("validation error")
	if e.Type != "" {
		b.WriteString(" on type ")
		b.WriteString(e.Type)
	}
	if e.Field != "" {
		b.WriteString(" field ")
		b.WriteString(e.Field)
	}
	if e.Message != "" {
		b.WriteString(": ")
		b.WriteString(e.Message)
	}
	return b.String()
}

// Is reports whether the target matches the sentinel error for ValidationError.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// AmbiguousRelationError represents a relation field that cannot be paired
// with its counterpart without an explicit @relation name.
type AmbiguousRelationError struct {
	Pos     Position
	Type    string // type that declares the field
	Field   string // the relation field missing a name
	Target  string // the related type
	Message string
}

// Error implements the error interface.
func (e *AmbiguousRelationError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = "explicit @relation(name: ...) required"
	}
	return fmt.Sprintf("prisma: %s: ambiguous relation %s.%s -> %s: %s",
		e.Pos, e.Type, e.Field, e.Target, msg)
}

// Is reports whether the target matches the sentinel error for AmbiguousRelationError.
func (e *AmbiguousRelationError) Is(target error) bool {
	return target == ErrAmbiguousRelation
}

// InvalidCascadeError represents a relation whose endpoints both request
// onDelete: CASCADE.
type InvalidCascadeError struct {
	Pos      Position
	Relation string
	Types    [2]string
}

// Error implements the error interface.
func (e *InvalidCascadeError) Error() string {
	name := e.Relation
	if name == "" {
		name = fmt.Sprintf("%s <-> %s", e.Types[0], e.Types[1])
	}
	return fmt.Sprintf("prisma: %s: relation %s: onDelete CASCADE cannot be set on both ends", e.Pos, name)
}

// Is reports whether the target matches the sentinel error for InvalidCascadeError.
func (e *InvalidCascadeError) Is(target error) bool {
	return target == ErrInvalidCascade
}

// UnsupportedLinkError represents a relation whose link strategy is missing
// or impossible: a one-to-one relation without an explicit link argument, or
// link: INLINE on a many-to-many relation.
type UnsupportedLinkError struct {
	Pos      Position
	Relation string
	Message  string
}

// Error implements the error interface.
func (e *UnsupportedLinkError) Error() string {
	return fmt.Sprintf("prisma: %s: relation %s: %s", e.Pos, e.Relation, e.Message)
}

// Is reports whether the target matches the sentinel error for UnsupportedLinkError.
func (e *UnsupportedLinkError) Is(target error) bool {
	return target == ErrUnsupportedLink
}

// IsSyntaxError reports whether the error is a SyntaxError.
func IsSyntaxError(err error) bool {
	var serr *SyntaxError
	return errors.As(err, &serr)
}

// IsValidationError reports whether the error is a ValidationError.
func IsValidationError(err error) bool {
	var verr *ValidationError
	return errors.As(err, &verr)
}

// IsAmbiguousRelationError reports whether the error is an AmbiguousRelationError.
func IsAmbiguousRelationError(err error) bool {
	var aerr *AmbiguousRelationError
	return errors.As(err, &aerr)
}

// IsInvalidCascadeError reports whether the error is an InvalidCascadeError.
func IsInvalidCascadeError(err error) bool {
	var cerr *InvalidCascadeError
	return errors.As(err, &cerr)
}

// IsUnsupportedLinkError reports whether the error is an UnsupportedLinkError.
func IsUnsupportedLinkError(err error) bool {
	var lerr *UnsupportedLinkError
	return errors.As(err, &lerr)
}
